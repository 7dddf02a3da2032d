package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"arbmonitor-service/internal/application"
	"arbmonitor-service/internal/domain"
)

// Field order is a compatibility contract for reporting consumers.
var header = []string{"timestamp", "symbol", "buy_venue", "sell_venue", "buy_price", "sell_price", "spread_pct"}

// Store is an append-only CSV history sink. The header row is written
// when the file is created; every qualifying cycle appends new rows.
type Store struct {
	path string
	mu   sync.Mutex
}

var _ application.OpportunityStore = (*Store)(nil)

func New(path string) *Store { return &Store{path: path} }

func (s *Store) Append(_ context.Context, opps []domain.Opportunity) error {
	if len(opps) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("csvstore: mkdir: %w", err)
		}
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("csvstore: open: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("csvstore: stat: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("csvstore: write header: %w", err)
		}
	}
	for _, o := range opps {
		rec := []string{
			o.Timestamp.UTC().Format(time.RFC3339Nano),
			o.Symbol,
			o.BuyVenue,
			o.SellVenue,
			formatFloat(o.BuyPrice),
			formatFloat(o.SellPrice),
			formatFloat(o.SpreadPct),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("csvstore: write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csvstore: flush: %w", err)
	}
	return nil
}

func (s *Store) ReadAll(_ context.Context) ([]domain.Opportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csvstore: open: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csvstore: read: %w", err)
	}

	var out []domain.Opportunity
	for i, rec := range records {
		if i == 0 || len(rec) != len(header) {
			continue
		}
		ts, err := time.Parse(time.RFC3339Nano, rec[0])
		if err != nil {
			return nil, fmt.Errorf("csvstore: row %d: bad timestamp: %w", i, err)
		}
		buy, err := strconv.ParseFloat(rec[4], 64)
		if err != nil {
			return nil, fmt.Errorf("csvstore: row %d: bad buy_price: %w", i, err)
		}
		sell, err := strconv.ParseFloat(rec[5], 64)
		if err != nil {
			return nil, fmt.Errorf("csvstore: row %d: bad sell_price: %w", i, err)
		}
		spread, err := strconv.ParseFloat(rec[6], 64)
		if err != nil {
			return nil, fmt.Errorf("csvstore: row %d: bad spread_pct: %w", i, err)
		}
		out = append(out, domain.Opportunity{
			Timestamp: ts,
			Symbol:    rec[1],
			BuyVenue:  rec[2],
			SellVenue: rec[3],
			BuyPrice:  buy,
			SellPrice: sell,
			SpreadPct: spread,
		})
	}
	return out, nil
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
