package application

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"arbmonitor-service/internal/domain"

	"go.uber.org/zap"
)

type MonitorState string

const (
	MonitorIdle    MonitorState = "idle"
	MonitorRunning MonitorState = "running"
	MonitorStopped MonitorState = "stopped"
)

// Monitor drives repeated sampling cycles at a fixed interval. A cycle
// is fetch -> detect -> persist; any error inside one cycle is captured
// and logged, and the loop proceeds to the next tick. Only context
// cancellation stops the loop, checked at tick boundaries.
type Monitor struct {
	orch    *Orchestrator
	det     *Detector
	store   OpportunityStore
	cache   QuoteCache
	symbols []string

	interval time.Duration
	log      *zap.Logger

	mu    sync.Mutex
	state MonitorState
}

func NewMonitor(orch *Orchestrator, det *Detector, store OpportunityStore, cache QuoteCache, symbols []string, interval time.Duration, log *zap.Logger) *Monitor {
	if cache == nil {
		cache = NoopQuoteCache{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Monitor{
		orch:     orch,
		det:      det,
		store:    store,
		cache:    cache,
		symbols:  symbols,
		interval: interval,
		log:      log,
		state:    MonitorIdle,
	}
}

func (m *Monitor) State() MonitorState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Monitor) setState(s MonitorState) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// Start blocks until ctx is canceled. The first cycle runs immediately;
// the ticker then paces cycles start-to-start, so a slow cycle
// compresses the following wait without ever overlapping two cycles.
// Cancellation is observed at tick boundaries only: an in-flight cycle,
// its adapter calls and its sink append all run to completion, bounded
// by the per-adapter fetch timeout.
func (m *Monitor) Start(ctx context.Context) {
	m.setState(MonitorRunning)
	m.log.Info("monitor.started",
		zap.Duration("interval", m.interval),
		zap.Strings("symbols", m.symbols),
	)

	t := time.NewTicker(m.interval)
	defer t.Stop()

	// ctx gates the loop, not the work: cycles run on a context that
	// survives the stop signal so fetches are never preempted beyond
	// their own timeout.
	cycleCtx := context.WithoutCancel(ctx)

	m.runCycle(cycleCtx)
	for {
		select {
		case <-ctx.Done():
			m.setState(MonitorStopped)
			m.log.Info("monitor.stopped")
			return
		case <-t.C:
			m.runCycle(cycleCtx)
		}
	}
}

func (m *Monitor) runCycle(ctx context.Context) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			m.log.Error("cycle.panic", zap.Error(fmt.Errorf("%v", r)))
		}
	}()

	groups := m.orch.RunCycle(ctx, m.symbols)

	if err := m.publishQuotes(ctx, groups); err != nil {
		m.log.Warn("cycle.cache_publish_failed", zap.Error(err))
	}

	// Iterate symbols in stable order so logs and sink appends are
	// reproducible for a given set of fetch results.
	syms := make([]string, 0, len(groups))
	for s := range groups {
		syms = append(syms, s)
	}
	sort.Strings(syms)

	var opps []domain.Opportunity
	for _, s := range syms {
		if opp, ok := m.det.Detect(s, groups[s]); ok {
			m.log.Info("opportunity.detected",
				zap.String("symbol", opp.Symbol),
				zap.String("buy_venue", opp.BuyVenue),
				zap.String("sell_venue", opp.SellVenue),
				zap.Float64("buy_price", opp.BuyPrice),
				zap.Float64("sell_price", opp.SellPrice),
				zap.Float64("spread_pct", opp.SpreadPct),
			)
			opps = append(opps, opp)
		}
	}

	if len(opps) > 0 {
		// At-most-once: a failed append is logged and not retried.
		if err := m.store.Append(ctx, opps); err != nil {
			m.log.Warn("sink.append_failed", zap.Int("opportunities", len(opps)), zap.Error(err))
		}
	}

	m.log.Info("cycle.completed",
		zap.Int("symbols", len(groups)),
		zap.Int("opportunities", len(opps)),
		zap.Duration("took", time.Since(start)),
	)
}

func (m *Monitor) publishQuotes(ctx context.Context, groups map[string][]domain.Quote) error {
	var quotes []domain.Quote
	for _, g := range groups {
		quotes = append(quotes, g...)
	}
	if len(quotes) == 0 {
		return nil
	}
	return m.cache.Publish(ctx, quotes)
}
