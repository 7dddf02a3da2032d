package application

import (
	"context"
	"sort"
	"time"

	"arbmonitor-service/internal/domain"
)

// ReportingService answers read-only queries over the persisted
// opportunity history. It never touches the live engine.
type ReportingService struct {
	store OpportunityStore
	clock Clock
}

func NewReportingService(store OpportunityStore, clock Clock) *ReportingService {
	if clock == nil {
		clock = realClock{}
	}
	return &ReportingService{store: store, clock: clock}
}

// Recent returns opportunities detected within the trailing window,
// oldest first.
func (s *ReportingService) Recent(ctx context.Context, window time.Duration) ([]domain.Opportunity, error) {
	all, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	cutoff := s.clock.Now().Add(-window)
	out := make([]domain.Opportunity, 0, len(all))
	for _, o := range all {
		if o.Timestamp.After(cutoff) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

// Stats summarizes the full history.
type Stats struct {
	Total        int            `json:"total_opportunities"`
	AvgSpreadPct float64        `json:"avg_spread"`
	MaxSpreadPct float64        `json:"max_spread"`
	TopSymbols   map[string]int `json:"top_symbols"`
	LastUpdate   *time.Time     `json:"last_update"`
}

func (s *ReportingService) Stats(ctx context.Context) (Stats, error) {
	all, err := s.store.ReadAll(ctx)
	if err != nil {
		return Stats{}, err
	}
	st := Stats{Total: len(all), TopSymbols: map[string]int{}}
	if len(all) == 0 {
		return st, nil
	}

	counts := map[string]int{}
	var sum float64
	var last time.Time
	for _, o := range all {
		sum += o.SpreadPct
		if o.SpreadPct > st.MaxSpreadPct {
			st.MaxSpreadPct = o.SpreadPct
		}
		counts[o.Symbol]++
		if o.Timestamp.After(last) {
			last = o.Timestamp
		}
	}
	st.AvgSpreadPct = sum / float64(len(all))
	st.LastUpdate = &last
	st.TopSymbols = topN(counts, 5)
	return st, nil
}

func topN(counts map[string]int, n int) map[string]int {
	type kv struct {
		sym string
		n   int
	}
	ranked := make([]kv, 0, len(counts))
	for s, c := range counts {
		ranked = append(ranked, kv{s, c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].n != ranked[j].n {
			return ranked[i].n > ranked[j].n
		}
		return ranked[i].sym < ranked[j].sym
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	out := make(map[string]int, len(ranked))
	for _, r := range ranked {
		out[r.sym] = r.n
	}
	return out
}
