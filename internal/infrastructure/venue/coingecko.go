package venue

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"arbmonitor-service/internal/application"
	"arbmonitor-service/internal/domain"
	"arbmonitor-service/internal/infrastructure/httpx"
	"arbmonitor-service/internal/infrastructure/logx"

	"go.uber.org/zap"
)

const (
	coingeckoDefaultBaseURL  = "https://api.coingecko.com"
	coingeckoSimplePricePath = "/api/v3/simple/price"
)

// CoinGeckoAdapter reads USD prices from the aggregator's simple/price
// endpoint in one batched request. CoinGecko keys assets by coin id
// ("bitcoin"), not by trading pair.
type CoinGeckoAdapter struct {
	BaseURL string
	Client  *httpx.Client
}

var _ application.VenueAdapter = (*CoinGeckoAdapter)(nil)

func (a *CoinGeckoAdapter) Venue() string { return domain.VenueCoinGecko }

func (a *CoinGeckoAdapter) Fetch(ctx context.Context, symbols []string) ([]domain.Quote, error) {
	base := a.BaseURL
	if base == "" {
		base = coingeckoDefaultBaseURL
	}
	client := a.Client
	if client == nil {
		client = &httpx.Client{}
	}

	var ids []string
	for _, canonical := range symbols {
		if id, ok := domain.VenueSymbol(domain.VenueCoinGecko, canonical); ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("coingecko: invalid base url: %w", err)
	}
	u.Path = coingeckoSimplePricePath
	q := u.Query()
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", "usd")
	q.Set("include_24hr_vol", "true")
	u.RawQuery = q.Encode()

	// {"bitcoin": {"usd": 97000.1, "usd_24h_vol": 1.2e10}, ...}
	var body map[string]map[string]float64
	if err := client.GetJSON(ctx, u.String(), &body); err != nil {
		return nil, fmt.Errorf("coingecko: %w", err)
	}

	var quotes []domain.Quote
	skipped := 0
	for id, fields := range body {
		canonical, ok := domain.Canonical(domain.VenueCoinGecko, id)
		if !ok {
			skipped++
			continue
		}
		price, ok := fields["usd"]
		if !ok || price <= 0 {
			skipped++
			continue
		}
		quote := domain.Quote{
			Venue:     domain.VenueCoinGecko,
			Symbol:    canonical,
			Price:     price,
			Timestamp: time.Now().UTC(),
		}
		if vol, ok := fields["usd_24h_vol"]; ok && vol >= 0 {
			quote.Volume24h = &vol
		}
		quotes = append(quotes, quote)
	}
	if skipped > 0 {
		logx.L().Debug("venue.records_skipped",
			zap.String("venue", domain.VenueCoinGecko),
			zap.Int("skipped", skipped),
		)
	}
	return quotes, nil
}
