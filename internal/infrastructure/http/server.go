package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"arbmonitor-service/internal/application"
	"arbmonitor-service/internal/domain"
)

// Server exposes read-only queries over the persisted opportunity
// history. It is a consumer of the history sink, not part of the
// monitoring engine.
type Server struct {
	reporting *application.ReportingService
	ping      func(ctx context.Context) error
}

func NewServer(reporting *application.ReportingService, ping func(ctx context.Context) error) *Server {
	return &Server{reporting: reporting, ping: ping}
}

type opportunityJSON struct {
	Timestamp time.Time `json:"timestamp"`
	Symbol    string    `json:"symbol"`
	BuyVenue  string    `json:"buy_venue"`
	SellVenue string    `json:"sell_venue"`
	BuyPrice  float64   `json:"buy_price"`
	SellPrice float64   `json:"sell_price"`
	SpreadPct float64   `json:"spread_pct"`
}

type opportunitiesResponse struct {
	Success       bool              `json:"success"`
	Count         int               `json:"count"`
	Opportunities []opportunityJSON `json:"opportunities"`
}

// GetOpportunities serves opportunities within a trailing window
// (default one hour), e.g. GET /api/opportunities?window=30m.
func (s *Server) GetOpportunities(w http.ResponseWriter, r *http.Request) {
	window := time.Hour
	if raw := r.URL.Query().Get("window"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			writeError(w, http.StatusBadRequest, "invalid window")
			return
		}
		window = d
	}

	opps, err := s.reporting.Recent(r.Context(), window)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "history read failed")
		return
	}

	resp := opportunitiesResponse{
		Success:       true,
		Count:         len(opps),
		Opportunities: make([]opportunityJSON, 0, len(opps)),
	}
	for _, o := range opps {
		resp.Opportunities = append(resp.Opportunities, toJSON(o))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.reporting.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "history read failed")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func toJSON(o domain.Opportunity) opportunityJSON {
	return opportunityJSON{
		Timestamp: o.Timestamp,
		Symbol:    o.Symbol,
		BuyVenue:  o.BuyVenue,
		SellVenue: o.SellVenue,
		BuyPrice:  o.BuyPrice,
		SellPrice: o.SellPrice,
		SpreadPct: o.SpreadPct,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "message": msg})
}
