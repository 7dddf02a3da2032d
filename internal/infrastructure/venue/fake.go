package venue

import (
	"context"
	"time"

	"arbmonitor-service/internal/application"
	"arbmonitor-service/internal/domain"
)

// Ensure Fake implements application.VenueAdapter.
var _ application.VenueAdapter = (*Fake)(nil)

// Fake quotes a fixed price per symbol; useful for dev runs without
// outbound network access.
type Fake struct {
	Name   string
	Prices map[string]float64
}

func NewFake(name string, prices map[string]float64) *Fake {
	return &Fake{Name: name, Prices: prices}
}

func (f *Fake) Venue() string { return f.Name }

func (f *Fake) Fetch(_ context.Context, symbols []string) ([]domain.Quote, error) {
	var quotes []domain.Quote
	for _, s := range symbols {
		price, ok := f.Prices[s]
		if !ok {
			continue
		}
		quotes = append(quotes, domain.Quote{
			Venue:     f.Name,
			Symbol:    s,
			Price:     price,
			Timestamp: time.Now().UTC(),
		})
	}
	return quotes, nil
}
