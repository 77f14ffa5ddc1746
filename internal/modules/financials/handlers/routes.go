package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all financials API routes.
// Cache clearing is a POST: it mutates server state, and the observed
// frontend never relied on GET for it.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/financials", h.HandleGetFinancials)
	r.Get("/financials/{ticker}", func(w http.ResponseWriter, r *http.Request) {
		h.HandleGetFinancialsByTicker(w, r, chi.URLParam(r, "ticker"))
	})
	r.Get("/tickers", h.HandleListTickers)

	r.Route("/cache", func(r chi.Router) {
		r.Get("/status", h.HandleCacheStatus)
		r.Post("/clear", h.HandleClearCache)
	})
}
