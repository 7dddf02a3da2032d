package application

import (
	"context"
	"time"

	"arbmonitor-service/internal/domain"
)

// VenueAdapter fetches current prices for canonical symbols from one
// external source. Implementations are stateless across calls and fail
// with domain.ErrSourceUnavailable or domain.ErrSourceProtocol; a single
// malformed record is skipped, not propagated.
type VenueAdapter interface {
	Venue() string
	Fetch(ctx context.Context, symbols []string) ([]domain.Quote, error)
}

// OpportunityStore is the durable, append-only record of detected
// opportunities. Append succeeds or fails atomically per call.
type OpportunityStore interface {
	Append(ctx context.Context, opps []domain.Opportunity) error
	ReadAll(ctx context.Context) ([]domain.Opportunity, error)
}

// QuoteCache receives each cycle's normalized quotes for external
// consumers. Publish failures are logged by the caller, never fatal.
type QuoteCache interface {
	Publish(ctx context.Context, quotes []domain.Quote) error
}

// NoopQuoteCache discards quotes; used when no cache backend is
// configured.
type NoopQuoteCache struct{}

func (NoopQuoteCache) Publish(context.Context, []domain.Quote) error { return nil }

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }
