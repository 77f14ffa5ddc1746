package financials

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Fiscal2/FiscalFundamentals/internal/clients/supabase"
)

const (
	financialsTable = "financials"

	// PostgREST caps every response at this many rows, so full-table reads
	// must page through the data in fixed-size ranges.
	pageSize = 1000
)

// tickerProjection is the column set served for per-ticker requests.
var tickerProjection = []string{
	"ticker", "year", "quarter",
	"income_statement", "balance_sheet", "cash_flow",
	"company_name", "listed_exchange",
}

// listProjection is the minimal column set for the ticker list endpoint.
var listProjection = []string{"ticker", "company_name", "listed_exchange"}

// Store is the capability the repository needs from the Supabase client.
type Store interface {
	Select(ctx context.Context, q supabase.Query) (json.RawMessage, error)
}

// Repository reads financial records from the remote store.
type Repository struct {
	store Store
	log   zerolog.Logger
}

// NewRepository creates a financials repository backed by the given store.
func NewRepository(store Store, log zerolog.Logger) *Repository {
	return &Repository{
		store: store,
		log:   log.With().Str("repository", "financials").Logger(),
	}
}

// FetchAll returns every row of the financials table with the full projection.
func (r *Repository) FetchAll(ctx context.Context) ([]FinancialRecord, error) {
	return fetchPaged[FinancialRecord](ctx, r, supabase.Query{Table: financialsTable})
}

// FetchByTicker returns the restricted projection for a single symbol.
// The symbol must already be normalized upper-case; the per-ticker slice is
// small enough to fit in a single response, so no paging is done here.
func (r *Repository) FetchByTicker(ctx context.Context, ticker string) ([]FinancialRecord, error) {
	data, err := r.store.Select(ctx, supabase.Query{
		Table:   financialsTable,
		Columns: tickerProjection,
		Filters: []supabase.Filter{{Column: "ticker", Value: ticker}},
	})
	if err != nil {
		return nil, fmt.Errorf("fetch rows for %s: %w", ticker, err)
	}

	records := make([]FinancialRecord, 0)
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode rows for %s: %w", ticker, err)
	}
	return records, nil
}

// FetchTickerRows returns ticker/company/exchange for every row, ordered by
// ticker so paging is deterministic.
func (r *Repository) FetchTickerRows(ctx context.Context) ([]TickerInfo, error) {
	return fetchPaged[TickerInfo](ctx, r, supabase.Query{
		Table:   financialsTable,
		Columns: listProjection,
		Order:   &supabase.Order{Column: "ticker"},
	})
}

// fetchPaged issues sequential range queries until a short or empty page
// signals the end of data. A table holding an exact multiple of pageSize rows
// takes one extra empty-page request to terminate. Any store error aborts the
// whole fetch; partial results are never returned.
func fetchPaged[T any](ctx context.Context, r *Repository, q supabase.Query) ([]T, error) {
	all := make([]T, 0)
	start := 0
	pages := 0

	for {
		q.Range = &supabase.RowRange{From: start, To: start + pageSize - 1}

		data, err := r.store.Select(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", pages+1, err)
		}

		var page []T
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, fmt.Errorf("decode page %d: %w", pages+1, err)
		}
		pages++

		r.log.Debug().
			Int("page", pages).
			Int("rows", len(page)).
			Int("start", start).
			Msg("Fetched page")

		all = append(all, page...)

		if len(page) < pageSize {
			break
		}
		start += pageSize
	}

	r.log.Debug().
		Int("pages", pages).
		Int("rows", len(all)).
		Str("table", q.Table).
		Msg("Paged fetch complete")

	return all, nil
}
