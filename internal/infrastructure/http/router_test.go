package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"arbmonitor-service/internal/application"
	"arbmonitor-service/internal/domain"

	"github.com/stretchr/testify/require"
)

type memStore struct{ opps []domain.Opportunity }

func (m *memStore) Append(_ context.Context, opps []domain.Opportunity) error {
	m.opps = append(m.opps, opps...)
	return nil
}

func (m *memStore) ReadAll(context.Context) ([]domain.Opportunity, error) { return m.opps, nil }

func setup(opps []domain.Opportunity) http.Handler {
	svc := application.NewReportingService(&memStore{opps: opps}, nil)
	srv := NewServer(svc, nil)
	return NewRouter(srv)
}

func TestHealthz(t *testing.T) {
	h := setup(nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())
}

func TestReadyz_PingFails(t *testing.T) {
	svc := application.NewReportingService(&memStore{}, nil)
	srv := NewServer(svc, func(context.Context) error { return errors.New("down") })
	h := NewRouter(srv)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetOpportunities(t *testing.T) {
	now := time.Now().UTC()
	h := setup([]domain.Opportunity{
		{Symbol: "BTCUSD", BuyVenue: "coinbase", SellVenue: "binance", BuyPrice: 100, SellPrice: 102, SpreadPct: 2, Timestamp: now.Add(-5 * time.Minute)},
		{Symbol: "ETHUSD", BuyVenue: "coingecko", SellVenue: "binance", BuyPrice: 50, SellPrice: 51, SpreadPct: 2, Timestamp: now.Add(-2 * time.Hour)},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/opportunities", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var resp struct {
		Success       bool `json:"success"`
		Count         int  `json:"count"`
		Opportunities []struct {
			Symbol    string  `json:"symbol"`
			BuyVenue  string  `json:"buy_venue"`
			SpreadPct float64 `json:"spread_pct"`
		} `json:"opportunities"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, 1, resp.Count)
	require.Equal(t, "BTCUSD", resp.Opportunities[0].Symbol)
	require.Equal(t, "coinbase", resp.Opportunities[0].BuyVenue)
}

func TestGetOpportunities_CustomWindow(t *testing.T) {
	now := time.Now().UTC()
	h := setup([]domain.Opportunity{
		{Symbol: "ETHUSD", BuyVenue: "coingecko", SellVenue: "binance", BuyPrice: 50, SellPrice: 51, SpreadPct: 2, Timestamp: now.Add(-2 * time.Hour)},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/opportunities?window=3h", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
}

func TestGetOpportunities_BadWindow(t *testing.T) {
	h := setup(nil)
	req := httptest.NewRequest(http.MethodGet, "/api/opportunities?window=yesterday", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetStats(t *testing.T) {
	now := time.Now().UTC()
	h := setup([]domain.Opportunity{
		{Symbol: "BTCUSD", SpreadPct: 1, Timestamp: now.Add(-2 * time.Minute)},
		{Symbol: "BTCUSD", SpreadPct: 3, Timestamp: now.Add(-1 * time.Minute)},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var st struct {
		Total      int            `json:"total_opportunities"`
		AvgSpread  float64        `json:"avg_spread"`
		MaxSpread  float64        `json:"max_spread"`
		TopSymbols map[string]int `json:"top_symbols"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	require.Equal(t, 2, st.Total)
	require.InDelta(t, 2.0, st.AvgSpread, 1e-9)
	require.InDelta(t, 3.0, st.MaxSpread, 1e-9)
	require.Equal(t, map[string]int{"BTCUSD": 2}, st.TopSymbols)
}
