package application

import (
	"context"
	"errors"
	"time"

	"arbmonitor-service/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Orchestrator runs all venue adapters concurrently for one sampling
// cycle. Adapter order is venue-configuration order and determines the
// order of quotes within each symbol group, so detector tie-breaks are
// deterministic regardless of which fetch completes first.
type Orchestrator struct {
	adapters     []VenueAdapter
	fetchTimeout time.Duration
	log          *zap.Logger
}

func NewOrchestrator(adapters []VenueAdapter, fetchTimeout time.Duration, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{adapters: adapters, fetchTimeout: fetchTimeout, log: log}
}

// RunCycle issues one fetch per adapter, waits for all of them to return
// or time out, and groups the quotes by canonical symbol. One venue's
// failure never discards another venue's quotes nor aborts the cycle;
// if every adapter fails the cycle produces an empty grouping, which is
// a normal outcome.
func (o *Orchestrator) RunCycle(ctx context.Context, symbols []string) map[string][]domain.Quote {
	results := make([][]domain.Quote, len(o.adapters))
	failed := make([]bool, len(o.adapters))

	var g errgroup.Group
	for i, a := range o.adapters {
		i, a := i, a
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(ctx, o.fetchTimeout)
			defer cancel()
			quotes, err := a.Fetch(fctx, symbols)
			if err != nil {
				failed[i] = true
				o.log.Warn("venue.fetch_failed",
					zap.String("venue", a.Venue()),
					zap.String("kind", errorKind(err)),
					zap.Error(err),
				)
				return nil
			}
			results[i] = quotes
			return nil
		})
	}
	_ = g.Wait()

	groups := make(map[string][]domain.Quote)
	failures := 0
	for i := range o.adapters {
		if failed[i] {
			failures++
			continue
		}
		// Grouping in adapter index order keeps quotes within a group
		// sorted by venue-configuration order.
		for _, q := range results[i] {
			groups[q.Symbol] = append(groups[q.Symbol], q)
		}
	}
	if failures == len(o.adapters) && len(o.adapters) > 0 {
		o.log.Warn("cycle.all_venues_failed", zap.Int("venues", len(o.adapters)))
	}
	return groups
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrSourceUnavailable):
		return "unavailable"
	case errors.Is(err, domain.ErrSourceProtocol):
		return "protocol"
	default:
		return "unknown"
	}
}
