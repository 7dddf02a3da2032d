package application

import (
	"context"
	"sync"
	"time"

	"arbmonitor-service/internal/domain"
)

type fakeClock struct{ t time.Time }

func (f fakeClock) Now() time.Time { return f.t }

type fakeAdapter struct {
	venue  string
	quotes []domain.Quote
	err    error
	delay  time.Duration

	mu    sync.Mutex
	calls int
}

func (f *fakeAdapter) Venue() string { return f.venue }

func (f *fakeAdapter) Fetch(ctx context.Context, _ []string) ([]domain.Quote, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, domain.ErrSourceUnavailable
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.quotes, nil
}

func (f *fakeAdapter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeStore struct {
	mu   sync.Mutex
	opps []domain.Opportunity
	err  error
}

func (f *fakeStore) Append(_ context.Context, opps []domain.Opportunity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.opps = append(f.opps, opps...)
	return nil
}

func (f *fakeStore) ReadAll(context.Context) ([]domain.Opportunity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Opportunity, len(f.opps))
	copy(out, f.opps)
	return out, nil
}

func (f *fakeStore) appended() []domain.Opportunity {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Opportunity, len(f.opps))
	copy(out, f.opps)
	return out
}

func quote(venue, symbol string, price float64) domain.Quote {
	return domain.Quote{Venue: venue, Symbol: symbol, Price: price, Timestamp: time.Now().UTC()}
}
