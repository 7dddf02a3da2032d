package domain

import "time"

// Opportunity is a detected cross-venue price discrepancy. SpreadPct is
// (SellPrice - BuyPrice) / BuyPrice * 100; BuyVenue always differs from
// SellVenue and SellPrice >= BuyPrice.
type Opportunity struct {
	Symbol    string
	BuyVenue  string
	SellVenue string
	BuyPrice  float64
	SellPrice float64
	SpreadPct float64
	Timestamp time.Time
}
