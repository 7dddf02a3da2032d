package domain

// Venue identifiers, in no particular order. The effective venue order
// comes from configuration (config.Venues) and drives detector
// tie-breaks.
const (
	VenueCoinbase  = "coinbase"
	VenueCoinGecko = "coingecko"
	VenueBinance   = "binance"
)

// venueSymbols maps each venue's asset identifiers to canonical symbols.
// This is configuration data, not derived at runtime; review it whenever
// a venue changes its identifier scheme.
var venueSymbols = map[string]map[string]string{
	VenueCoinbase: {
		"BTC-USD":  "BTCUSD",
		"ETH-USD":  "ETHUSD",
		"SOL-USD":  "SOLUSD",
		"AVAX-USD": "AVAXUSD",
	},
	VenueBinance: {
		"BTCUSDT":  "BTCUSD",
		"ETHUSDT":  "ETHUSD",
		"SOLUSDT":  "SOLUSD",
		"AVAXUSDT": "AVAXUSD",
	},
	VenueCoinGecko: {
		"bitcoin":     "BTCUSD",
		"ethereum":    "ETHUSD",
		"solana":      "SOLUSD",
		"avalanche-2": "AVAXUSD",
	},
}

// Canonical maps a venue-specific identifier to the shared canonical
// symbol. Unknown venue/identifier pairs return ok=false; callers drop
// them with a count rather than failing the fetch.
func Canonical(venue, venueID string) (string, bool) {
	table, ok := venueSymbols[venue]
	if !ok {
		return "", false
	}
	sym, ok := table[venueID]
	return sym, ok
}

// VenueSymbol is the inverse mapping, used when building venue requests
// from the canonical symbol universe.
func VenueSymbol(venue, canonical string) (string, bool) {
	table, ok := venueSymbols[venue]
	if !ok {
		return "", false
	}
	for id, sym := range table {
		if sym == canonical {
			return id, true
		}
	}
	return "", false
}
