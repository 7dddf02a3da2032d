package venue_test

import (
	"context"
	"errors"
	"testing"

	"arbmonitor-service/internal/domain"
	"arbmonitor-service/internal/infrastructure/venue"

	"github.com/stretchr/testify/require"
)

const binanceSampleOK = `[
  {"symbol":"BTCUSDT","lastPrice":"97100.10","quoteVolume":"2.5e9"},
  {"symbol":"ETHUSDT","lastPrice":"3600.00","quoteVolume":"9.1e8"}
]`

func TestBinance_Fetch(t *testing.T) {
	t.Parallel()
	a := &venue.BinanceAdapter{
		BaseURL: "https://api.binance.com",
		Client:  httpClient(binanceSampleOK, 200),
	}

	quotes, err := a.Fetch(context.Background(), []string{"BTCUSD", "ETHUSD"})
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	require.Equal(t, domain.VenueBinance, quotes[0].Venue)
	require.Equal(t, "BTCUSD", quotes[0].Symbol)
	require.InDelta(t, 97100.10, quotes[0].Price, 1e-9)
	require.NotNil(t, quotes[0].Volume24h)
}

func TestBinance_UnknownSymbolDropped(t *testing.T) {
	t.Parallel()
	body := `[
	  {"symbol":"BTCUSDT","lastPrice":"97100.10","quoteVolume":"1"},
	  {"symbol":"DOGEUSDT","lastPrice":"0.40","quoteVolume":"1"}
	]`
	a := &venue.BinanceAdapter{BaseURL: "https://api.binance.com", Client: httpClient(body, 200)}

	quotes, err := a.Fetch(context.Background(), []string{"BTCUSD"})
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	require.Equal(t, "BTCUSD", quotes[0].Symbol)
}

func TestBinance_MalformedPriceSkipped(t *testing.T) {
	t.Parallel()
	body := `[
	  {"symbol":"BTCUSDT","lastPrice":"","quoteVolume":"1"},
	  {"symbol":"ETHUSDT","lastPrice":"3600.00","quoteVolume":"1"}
	]`
	a := &venue.BinanceAdapter{BaseURL: "https://api.binance.com", Client: httpClient(body, 200)}

	quotes, err := a.Fetch(context.Background(), []string{"BTCUSD", "ETHUSD"})
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	require.Equal(t, "ETHUSD", quotes[0].Symbol)
}

func TestBinance_NonSuccessStatus(t *testing.T) {
	t.Parallel()
	a := &venue.BinanceAdapter{BaseURL: "https://api.binance.com", Client: httpClient(`{"code":-1003}`, 429)}

	_, err := a.Fetch(context.Background(), []string{"BTCUSD"})
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrSourceUnavailable))
}

func TestBinance_UnparseableBody(t *testing.T) {
	t.Parallel()
	a := &venue.BinanceAdapter{BaseURL: "https://api.binance.com", Client: httpClient(`<html>oops</html>`, 200)}

	_, err := a.Fetch(context.Background(), []string{"BTCUSD"})
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrSourceProtocol))
}
