package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Fiscal2/FiscalFundamentals/internal/modules/financials"
)

// FinancialsRefresher force-refreshes the financials cache.
type FinancialsRefresher interface {
	GetFinancials(ctx context.Context, forceRefresh bool) ([]financials.FinancialRecord, error)
}

// CacheWarmJob refreshes the full-table cache on a schedule so the first
// request after a TTL expiry does not pay the full paginated fetch cost.
type CacheWarmJob struct {
	service FinancialsRefresher
	timeout time.Duration
	log     zerolog.Logger
}

// NewCacheWarmJob creates a cache warm job.
func NewCacheWarmJob(service FinancialsRefresher, log zerolog.Logger) *CacheWarmJob {
	return &CacheWarmJob{
		service: service,
		timeout: 5 * time.Minute,
		log:     log.With().Str("job", "cache_warm").Logger(),
	}
}

// Name returns the job name
func (j *CacheWarmJob) Name() string {
	return "cache_warm"
}

// Run force-refreshes the financials cache
func (j *CacheWarmJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	records, err := j.service.GetFinancials(ctx, true)
	if err != nil {
		return fmt.Errorf("warm financials cache: %w", err)
	}

	j.log.Info().Int("records", len(records)).Msg("Financials cache warmed")
	return nil
}
