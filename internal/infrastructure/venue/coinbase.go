package venue

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"arbmonitor-service/internal/application"
	"arbmonitor-service/internal/domain"
	"arbmonitor-service/internal/infrastructure/httpx"
	"arbmonitor-service/internal/infrastructure/logx"

	"go.uber.org/zap"
)

const coinbaseDefaultBaseURL = "https://api.exchange.coinbase.com"

// CoinbaseAdapter reads spot stats from the Coinbase Exchange API. The
// stats endpoint is per-product, so one fetch issues one request per
// configured symbol.
type CoinbaseAdapter struct {
	BaseURL string
	Client  *httpx.Client
}

var _ application.VenueAdapter = (*CoinbaseAdapter)(nil)

type coinbaseStatsResp struct {
	Last   string `json:"last"`
	Volume string `json:"volume"`
}

func (a *CoinbaseAdapter) Venue() string { return domain.VenueCoinbase }

func (a *CoinbaseAdapter) Fetch(ctx context.Context, symbols []string) ([]domain.Quote, error) {
	base := a.BaseURL
	if base == "" {
		base = coinbaseDefaultBaseURL
	}
	client := a.Client
	if client == nil {
		client = &httpx.Client{}
	}

	var quotes []domain.Quote
	skipped := 0
	var lastErr error
	for _, canonical := range symbols {
		product, ok := domain.VenueSymbol(domain.VenueCoinbase, canonical)
		if !ok {
			skipped++
			continue
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("coinbase: invalid base url: %w", err)
		}
		u.Path = "/products/" + product + "/stats"

		var body coinbaseStatsResp
		if err := client.GetJSON(ctx, u.String(), &body); err != nil {
			skipped++
			lastErr = fmt.Errorf("coinbase: %s: %w", product, err)
			continue
		}
		price, err := strconv.ParseFloat(body.Last, 64)
		if err != nil || price <= 0 {
			skipped++
			continue
		}
		q := domain.Quote{
			Venue:     domain.VenueCoinbase,
			Symbol:    canonical,
			Price:     price,
			Timestamp: time.Now().UTC(),
		}
		if vol, err := strconv.ParseFloat(body.Volume, 64); err == nil && vol >= 0 {
			q.Volume24h = &vol
		}
		quotes = append(quotes, q)
	}

	if len(quotes) == 0 && lastErr != nil {
		return nil, lastErr
	}
	if skipped > 0 {
		logx.L().Debug("venue.records_skipped",
			zap.String("venue", domain.VenueCoinbase),
			zap.Int("skipped", skipped),
		)
	}
	return quotes, nil
}
