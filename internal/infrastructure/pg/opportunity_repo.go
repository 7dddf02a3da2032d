package pg

import (
	"context"
	"fmt"

	"arbmonitor-service/internal/application"
	"arbmonitor-service/internal/domain"
)

type OpportunityRepo struct{ db *DB }

var _ application.OpportunityStore = (*OpportunityRepo)(nil)

func NewOpportunityRepo(db *DB) *OpportunityRepo { return &OpportunityRepo{db: db} }

// Append inserts one cycle's opportunities in a single transaction, so
// the write succeeds or fails atomically per call.
func (r *OpportunityRepo) Append(ctx context.Context, opps []domain.Opportunity) error {
	if len(opps) == 0 {
		return nil
	}
	const ins = `
        INSERT INTO opportunities(detected_at, symbol, buy_venue, sell_venue, buy_price, sell_price, spread_pct)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)
	for _, o := range opps {
		if _, err := tx.Exec(ctx, ins,
			o.Timestamp, o.Symbol, o.BuyVenue, o.SellVenue, o.BuyPrice, o.SellPrice, o.SpreadPct,
		); err != nil {
			return fmt.Errorf("insert opportunity: %w", err)
		}
	}
	return tx.Commit(ctx)
}

func (r *OpportunityRepo) ReadAll(ctx context.Context) ([]domain.Opportunity, error) {
	const q = `
        SELECT detected_at, symbol, buy_venue, sell_venue,
               buy_price::float8, sell_price::float8, spread_pct::float8
        FROM opportunities
        ORDER BY detected_at, id`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Opportunity
	for rows.Next() {
		var o domain.Opportunity
		if err := rows.Scan(&o.Timestamp, &o.Symbol, &o.BuyVenue, &o.SellVenue, &o.BuyPrice, &o.SellPrice, &o.SpreadPct); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
