package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fiscal2/FiscalFundamentals/internal/modules/financials"
)

// fakeService records calls and returns canned data or errors.
type fakeService struct {
	financialsResult []financials.FinancialRecord
	financialsErr    error
	forceFlags       []bool
	tickerArgs       []string
	tickersResult    []financials.TickerInfo
	tickersErr       error
	status           financials.CacheStatus
	clearCalls       int
}

func (f *fakeService) GetFinancials(ctx context.Context, forceRefresh bool) ([]financials.FinancialRecord, error) {
	f.forceFlags = append(f.forceFlags, forceRefresh)
	if f.financialsErr != nil {
		return nil, f.financialsErr
	}
	return f.financialsResult, nil
}

func (f *fakeService) GetFinancialsByTicker(ctx context.Context, ticker string) ([]financials.FinancialRecord, error) {
	f.tickerArgs = append(f.tickerArgs, ticker)
	if f.financialsErr != nil {
		return nil, f.financialsErr
	}
	return f.financialsResult, nil
}

func (f *fakeService) ListTickers(ctx context.Context) ([]financials.TickerInfo, error) {
	if f.tickersErr != nil {
		return nil, f.tickersErr
	}
	return f.tickersResult, nil
}

func (f *fakeService) CacheStatus() financials.CacheStatus {
	return f.status
}

func (f *fakeService) ClearCache() {
	f.clearCalls++
}

func newTestRouter(service Service) http.Handler {
	h := NewHandler(service, zerolog.Nop())
	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		h.RegisterRoutes(r)
	})
	return router
}

func TestHandleGetFinancials(t *testing.T) {
	service := &fakeService{financialsResult: []financials.FinancialRecord{
		{Ticker: "AAPL", Year: 2024, Quarter: "Q1", CompanyName: "Apple Inc"},
	}}
	router := newTestRouter(service)

	req := httptest.NewRequest("GET", "/api/financials", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var records []financials.FinancialRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "AAPL", records[0].Ticker)

	require.Len(t, service.forceFlags, 1)
	assert.False(t, service.forceFlags[0])
}

func TestHandleGetFinancials_ForceRefreshParam(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected bool
	}{
		{"absent defaults to false", "", false},
		{"true", "?force_refresh=true", true},
		{"numeric true", "?force_refresh=1", true},
		{"false", "?force_refresh=false", false},
		{"garbage defaults to false", "?force_refresh=banana", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &fakeService{}
			router := newTestRouter(service)

			req := httptest.NewRequest("GET", "/api/financials"+tt.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			require.Len(t, service.forceFlags, 1)
			assert.Equal(t, tt.expected, service.forceFlags[0])
		})
	}
}

func TestHandleGetFinancials_EmptyResultIsArray(t *testing.T) {
	service := &fakeService{financialsResult: []financials.FinancialRecord{}}
	router := newTestRouter(service)

	req := httptest.NewRequest("GET", "/api/financials", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestHandleGetFinancials_StoreError(t *testing.T) {
	service := &fakeService{financialsErr: errors.New("store unavailable")}
	router := newTestRouter(service)

	req := httptest.NewRequest("GET", "/api/financials", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["detail"], "store unavailable")
}

func TestHandleGetFinancialsByTicker(t *testing.T) {
	service := &fakeService{financialsResult: []financials.FinancialRecord{{Ticker: "AAPL"}}}
	router := newTestRouter(service)

	req := httptest.NewRequest("GET", "/api/financials/aapl", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	// The raw path value is handed to the service; normalization is the
	// service's job
	require.Len(t, service.tickerArgs, 1)
	assert.Equal(t, "aapl", service.tickerArgs[0])
}

func TestHandleGetFinancialsByTicker_StoreError(t *testing.T) {
	service := &fakeService{financialsErr: errors.New("timeout")}
	router := newTestRouter(service)

	req := httptest.NewRequest("GET", "/api/financials/AAPL", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["detail"], "timeout")
}

func TestHandleListTickers(t *testing.T) {
	service := &fakeService{tickersResult: []financials.TickerInfo{
		{Ticker: "AAPL", CompanyName: "Apple Inc", ListedExchange: financials.ExchangeList{"NASDAQ"}},
	}}
	router := newTestRouter(service)

	req := httptest.NewRequest("GET", "/api/tickers", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"ticker":"AAPL","company_name":"Apple Inc","listed_exchange":"NASDAQ"}]`, w.Body.String())
}

func TestHandleCacheStatus(t *testing.T) {
	service := &fakeService{status: financials.CacheStatus{
		Status:     financials.StatusValid,
		Records:    2437,
		AgeMinutes: 12.3,
		TTLMinutes: 1440,
	}}
	router := newTestRouter(service)

	req := httptest.NewRequest("GET", "/api/cache/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"valid","records":2437,"age_minutes":12.3,"ttl_minutes":1440}`, w.Body.String())
}

func TestHandleClearCache(t *testing.T) {
	service := &fakeService{status: financials.CacheStatus{Status: financials.StatusEmpty}}
	router := newTestRouter(service)

	req := httptest.NewRequest("POST", "/api/cache/clear", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Cache cleared"}`, w.Body.String())
	assert.Equal(t, 1, service.clearCalls)
}

func TestHandleClearCache_GetNotAllowed(t *testing.T) {
	service := &fakeService{}
	router := newTestRouter(service)

	req := httptest.NewRequest("GET", "/api/cache/clear", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, 0, service.clearCalls)
}
