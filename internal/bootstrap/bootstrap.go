package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"arbmonitor-service/internal/application"
	"arbmonitor-service/internal/config"
	"arbmonitor-service/internal/domain"
	"arbmonitor-service/internal/infrastructure/csvstore"
	"arbmonitor-service/internal/infrastructure/httpx"
	"arbmonitor-service/internal/infrastructure/logx"
	"arbmonitor-service/internal/infrastructure/pg"
	redisstore "arbmonitor-service/internal/infrastructure/redis"
	"arbmonitor-service/internal/infrastructure/venue"

	"github.com/redis/go-redis/v9"
)

// Store bundles the history sink with its readiness probe.
type Store struct {
	Opportunities application.OpportunityStore
	Ping          func(ctx context.Context) error
}

// BuildStore builds the history sink based on STORAGE ("pg" or "csv").
func BuildStore(ctx context.Context, cfg config.Config) (Store, func(), error) {
	log := logx.L()

	switch cfg.Storage {
	case "pg":
		if cfg.DatabaseURL == "" {
			return Store{}, func() {}, fmt.Errorf("DATABASE_URL is required for STORAGE=pg")
		}
		db, err := pg.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return Store{}, func() {}, err
		}
		if err := pg.RunMigrations(ctx, db); err != nil {
			db.Close()
			return Store{}, func() {}, err
		}
		cleanup := func() {
			log.Info("closing pg")
			db.Close()
		}
		return Store{Opportunities: pg.NewOpportunityRepo(db), Ping: db.Ping}, cleanup, nil
	case "csv":
		return Store{Opportunities: csvstore.New(cfg.CSVPath)}, func() {}, nil
	default:
		return Store{}, func() {}, fmt.Errorf("unknown STORAGE %q (want pg or csv)", cfg.Storage)
	}
}

// fakePrices backs the "fake" venue for local runs without outbound
// network access.
var fakePrices = map[string]float64{
	"BTCUSD":  97000,
	"ETHUSD":  3400,
	"SOLUSD":  215,
	"AVAXUSD": 42,
}

// BuildAdapters builds one adapter per configured venue, preserving the
// configured order; that order drives detector tie-breaks.
func BuildAdapters(cfg config.Config) ([]application.VenueAdapter, error) {
	client := &httpx.Client{HTTP: &http.Client{Timeout: cfg.FetchTimeout}}

	adapters := make([]application.VenueAdapter, 0, len(cfg.Venues))
	for _, v := range cfg.Venues {
		switch v {
		case domain.VenueCoinbase:
			adapters = append(adapters, &venue.CoinbaseAdapter{Client: client})
		case domain.VenueCoinGecko:
			adapters = append(adapters, &venue.CoinGeckoAdapter{Client: client})
		case domain.VenueBinance:
			adapters = append(adapters, &venue.BinanceAdapter{Client: client})
		case "fake":
			adapters = append(adapters, venue.NewFake("fake", fakePrices))
		default:
			return nil, fmt.Errorf("unknown venue %q", v)
		}
	}
	if len(adapters) == 0 {
		return nil, fmt.Errorf("no venues enabled")
	}
	return adapters, nil
}

// BuildQuoteCache builds the redis quote cache if enabled, else a Noop.
func BuildQuoteCache(cfg config.Config) (application.QuoteCache, func(), error) {
	if cfg.QuoteCache != "redis" {
		return application.NoopQuoteCache{}, func() {}, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	// Cached quotes go stale once a couple of cycles pass without refresh.
	ttl := 3 * cfg.CycleInterval
	if ttl <= 0 {
		ttl = time.Minute
	}
	cache := redisstore.New(rdb, ttl)
	cleanup := func() { _ = rdb.Close() }
	return cache, cleanup, nil
}
