package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Common
	Env      string
	LogLevel string
	// Reporting API
	Port string
	// Monitor
	Symbols            []string
	Venues             []string
	SpreadThresholdPct float64
	CycleInterval      time.Duration
	FetchTimeout       time.Duration
	// Storage
	Storage     string
	DatabaseURL string
	CSVPath     string
	// Quote cache
	QuoteCache    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func atofDef(s string, def float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Load reads environment variables and applies defaults. Configuration
// is fixed after startup; there is no live reconfiguration. Venue order
// here is the venue-configuration order used for detector tie-breaks.
func Load() Config {
	return Config{
		Env:                getEnv("ENV", "local"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Port:               getEnv("PORT", "8080"),
		Symbols:            splitCSV(getEnv("SYMBOLS", "BTCUSD,ETHUSD,SOLUSD,AVAXUSD")),
		Venues:             splitCSV(getEnv("VENUES", "coinbase,coingecko,binance")),
		SpreadThresholdPct: atofDef(getEnv("SPREAD_THRESHOLD_PCT", "0.5"), 0.5),
		CycleInterval:      time.Duration(atoiDef(getEnv("CYCLE_INTERVAL_MS", "30000"), 30000)) * time.Millisecond,
		FetchTimeout:       time.Duration(atoiDef(getEnv("FETCH_TIMEOUT_MS", "5000"), 5000)) * time.Millisecond,
		Storage:            getEnv("STORAGE", "csv"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		CSVPath:            getEnv("CSV_PATH", "data/opportunities.csv"),
		QuoteCache:         getEnv("QUOTE_CACHE", "none"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            atoiDef(getEnv("REDIS_DB", "0"), 0),
	}
}
