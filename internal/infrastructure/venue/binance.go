package venue

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"arbmonitor-service/internal/application"
	"arbmonitor-service/internal/domain"
	"arbmonitor-service/internal/infrastructure/httpx"
	"arbmonitor-service/internal/infrastructure/logx"

	"go.uber.org/zap"
)

const (
	binanceDefaultBaseURL = "https://api.binance.com"
	binanceTickerPath     = "/api/v3/ticker/24hr"
)

// BinanceAdapter reads 24h ticker stats in one batched request.
type BinanceAdapter struct {
	BaseURL string
	Client  *httpx.Client
}

var _ application.VenueAdapter = (*BinanceAdapter)(nil)

type binanceTickerResp struct {
	Symbol      string `json:"symbol"`
	LastPrice   string `json:"lastPrice"`
	QuoteVolume string `json:"quoteVolume"`
}

func (a *BinanceAdapter) Venue() string { return domain.VenueBinance }

func (a *BinanceAdapter) Fetch(ctx context.Context, symbols []string) ([]domain.Quote, error) {
	base := a.BaseURL
	if base == "" {
		base = binanceDefaultBaseURL
	}
	client := a.Client
	if client == nil {
		client = &httpx.Client{}
	}

	var tickers []string
	for _, canonical := range symbols {
		if t, ok := domain.VenueSymbol(domain.VenueBinance, canonical); ok {
			tickers = append(tickers, `"`+t+`"`)
		}
	}
	if len(tickers) == 0 {
		return nil, nil
	}

	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("binance: invalid base url: %w", err)
	}
	u.Path = binanceTickerPath
	q := u.Query()
	q.Set("symbols", "["+strings.Join(tickers, ",")+"]")
	u.RawQuery = q.Encode()

	var body []binanceTickerResp
	if err := client.GetJSON(ctx, u.String(), &body); err != nil {
		return nil, fmt.Errorf("binance: %w", err)
	}

	var quotes []domain.Quote
	skipped := 0
	for _, t := range body {
		canonical, ok := domain.Canonical(domain.VenueBinance, t.Symbol)
		if !ok {
			skipped++
			continue
		}
		price, err := strconv.ParseFloat(t.LastPrice, 64)
		if err != nil || price <= 0 {
			skipped++
			continue
		}
		quote := domain.Quote{
			Venue:     domain.VenueBinance,
			Symbol:    canonical,
			Price:     price,
			Timestamp: time.Now().UTC(),
		}
		if vol, err := strconv.ParseFloat(t.QuoteVolume, 64); err == nil && vol >= 0 {
			quote.Volume24h = &vol
		}
		quotes = append(quotes, quote)
	}
	if skipped > 0 {
		logx.L().Debug("venue.records_skipped",
			zap.String("venue", domain.VenueBinance),
			zap.Int("skipped", skipped),
		)
	}
	return quotes, nil
}
