package domain

import "time"

// Quote is one venue's observation of one asset at one instant. Symbol is
// always canonical by the time a Quote leaves the venue adapter.
type Quote struct {
	Venue     string
	Symbol    string
	Price     float64
	Timestamp time.Time
	Volume24h *float64
}
