package financials

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Repo is the data access surface the service needs.
// Defined here so tests can substitute a fake.
type Repo interface {
	FetchAll(ctx context.Context) ([]FinancialRecord, error)
	FetchByTicker(ctx context.Context, ticker string) ([]FinancialRecord, error)
	FetchTickerRows(ctx context.Context) ([]TickerInfo, error)
}

// Service serves financial records with cache-first reads.
type Service struct {
	repo  Repo
	cache *Cache
	log   zerolog.Logger
}

// NewService creates a financials service.
func NewService(repo Repo, cache *Cache, log zerolog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log.With().Str("service", "financials").Logger(),
	}
}

// GetFinancials returns all rows, serving from cache when fresh unless a
// refresh is forced. A failed refresh leaves the previous cache state intact
// so older data stays servable.
func (s *Service) GetFinancials(ctx context.Context, forceRefresh bool) ([]FinancialRecord, error) {
	if !forceRefresh {
		if records, ok := s.cache.GetFull(); ok {
			s.log.Debug().Int("records", len(records)).Msg("Serving financials from cache")
			return records, nil
		}
	}

	s.log.Info().Bool("force_refresh", forceRefresh).Msg("Cache miss or expired, fetching financials")

	records, err := s.repo.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch financials: %w", err)
	}

	s.cache.SetFull(records)
	s.log.Info().Int("records", len(records)).Msg("Financials cache refreshed")

	return records, nil
}

// GetFinancialsByTicker returns rows for one symbol, matched
// case-insensitively, with the restricted per-ticker projection. On a miss
// the freshly fetched rows are stored in the per-ticker cache and returned.
func (s *Service) GetFinancialsByTicker(ctx context.Context, ticker string) ([]FinancialRecord, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))

	if records, ok := s.cache.GetTicker(symbol); ok {
		s.log.Debug().Str("ticker", symbol).Int("records", len(records)).Msg("Serving ticker from cache")
		return records, nil
	}

	records, err := s.repo.FetchByTicker(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch financials for %s: %w", symbol, err)
	}

	s.cache.SetTicker(symbol, records)

	return records, nil
}

// ListTickers fetches the ticker projection fresh on every call and collapses
// duplicate symbols to the best-scoring row. No caching: the restricted
// projection keeps the fetch cheap.
func (s *Service) ListTickers(ctx context.Context) ([]TickerInfo, error) {
	rows, err := s.repo.FetchTickerRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch tickers: %w", err)
	}

	tickers := dedupeTickers(rows)
	s.log.Debug().Int("rows", len(rows)).Int("tickers", len(tickers)).Msg("Deduplicated ticker list")

	return tickers, nil
}

// CacheStatus reports the state of the full-table cache entry.
func (s *Service) CacheStatus() CacheStatus {
	return s.cache.Status()
}

// ClearCache resets the full-table entry and all per-ticker entries.
func (s *Service) ClearCache() {
	s.cache.Clear()
	s.log.Info().Msg("Cache cleared")
}
