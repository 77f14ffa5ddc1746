// Package handlers provides HTTP handlers for the financials API.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/Fiscal2/FiscalFundamentals/internal/modules/financials"
)

// Service is the financials surface exposed over HTTP.
// Defined here so tests can substitute a fake.
type Service interface {
	GetFinancials(ctx context.Context, forceRefresh bool) ([]financials.FinancialRecord, error)
	GetFinancialsByTicker(ctx context.Context, ticker string) ([]financials.FinancialRecord, error)
	ListTickers(ctx context.Context) ([]financials.TickerInfo, error)
	CacheStatus() financials.CacheStatus
	ClearCache()
}

// Handler handles financials HTTP requests
type Handler struct {
	service Service
	log     zerolog.Logger
}

// NewHandler creates a new financials handler
func NewHandler(service Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "financials").Logger(),
	}
}

// HandleGetFinancials handles GET /api/financials
// Returns all financial records, cache-first. The force_refresh query
// parameter bypasses the cache.
func (h *Handler) HandleGetFinancials(w http.ResponseWriter, r *http.Request) {
	forceRefresh := false
	if v := r.URL.Query().Get("force_refresh"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			forceRefresh = parsed
		}
	}

	records, err := h.service.GetFinancials(r.Context(), forceRefresh)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch financials")
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch financials: "+err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, records)
}

// HandleGetFinancialsByTicker handles GET /api/financials/{ticker}
// Returns the restricted projection for one ticker symbol, matched
// case-insensitively.
func (h *Handler) HandleGetFinancialsByTicker(w http.ResponseWriter, r *http.Request, ticker string) {
	records, err := h.service.GetFinancialsByTicker(r.Context(), ticker)
	if err != nil {
		h.log.Error().Err(err).Str("ticker", ticker).Msg("Failed to fetch financials for ticker")
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch financials: "+err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, records)
}

// HandleListTickers handles GET /api/tickers
// Returns one entry per distinct ticker symbol.
func (h *Handler) HandleListTickers(w http.ResponseWriter, r *http.Request) {
	tickers, err := h.service.ListTickers(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list tickers")
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch tickers: "+err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, tickers)
}

// HandleCacheStatus handles GET /api/cache/status
func (h *Handler) HandleCacheStatus(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.CacheStatus())
}

// HandleClearCache handles POST /api/cache/clear
func (h *Handler) HandleClearCache(w http.ResponseWriter, r *http.Request) {
	h.service.ClearCache()
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Cache cleared"})
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response. The body shape matches what the
// frontend already consumes: {"detail": "<message>"}.
func (h *Handler) writeError(w http.ResponseWriter, status int, detail string) {
	h.writeJSON(w, status, map[string]string{"detail": detail})
}
