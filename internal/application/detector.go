package application

import (
	"arbmonitor-service/internal/domain"
)

// Detector decides whether a symbol's quotes from two or more venues
// form a reportable opportunity.
type Detector struct {
	// ThresholdPct is the minimum spread percentage, inclusive: a spread
	// exactly equal to it qualifies. Configuration keeps it above zero.
	ThresholdPct float64
	Clock        Clock
}

func NewDetector(thresholdPct float64, clock Clock) *Detector {
	if clock == nil {
		clock = realClock{}
	}
	return &Detector{ThresholdPct: thresholdPct, Clock: clock}
}

// Detect scans the quotes for the minimum and maximum price and reports
// an Opportunity when the spread meets the threshold. Quotes arrive in
// venue-configuration order, so on equal prices the earlier-configured
// venue wins both the buy and the sell side. Fewer than two quotes, or
// min and max being the same quote, never qualify.
func (d *Detector) Detect(symbol string, quotes []domain.Quote) (domain.Opportunity, bool) {
	if len(quotes) < 2 {
		return domain.Opportunity{}, false
	}

	min, max := 0, 0
	for i := 1; i < len(quotes); i++ {
		if quotes[i].Price < quotes[min].Price {
			min = i
		}
		if quotes[i].Price > quotes[max].Price {
			max = i
		}
	}
	if min == max {
		return domain.Opportunity{}, false
	}

	buy, sell := quotes[min], quotes[max]
	spreadPct := (sell.Price - buy.Price) / buy.Price * 100
	if spreadPct < d.ThresholdPct {
		return domain.Opportunity{}, false
	}

	return domain.Opportunity{
		Symbol:    symbol,
		BuyVenue:  buy.Venue,
		SellVenue: sell.Venue,
		BuyPrice:  buy.Price,
		SellPrice: sell.Price,
		SpreadPct: spreadPct,
		Timestamp: d.Clock.Now(),
	}, true
}
