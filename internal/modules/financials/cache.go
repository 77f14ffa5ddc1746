package financials

import (
	"math"
	"sync"
	"time"
)

// Cache status values reported by Status.
const (
	StatusEmpty   = "empty"
	StatusValid   = "valid"
	StatusExpired = "expired"
)

// CacheStatus summarizes the full-table cache entry.
type CacheStatus struct {
	Status     string  `json:"status"`
	Records    int     `json:"records"`
	AgeMinutes float64 `json:"age_minutes"`
	TTLMinutes float64 `json:"ttl_minutes"`
}

type cacheEntry struct {
	records   []FinancialRecord
	fetchedAt time.Time
}

// Cache holds one full-table snapshot and per-ticker snapshots, all sharing a
// single TTL. Ticker entries are never evicted individually; stale entries
// are simply overwritten on the next miss, and Clear wipes everything.
type Cache struct {
	mu     sync.RWMutex
	ttl    time.Duration
	now    func() time.Time
	full   cacheEntry
	ticker map[string]cacheEntry
}

// NewCache creates an empty cache with the given TTL.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:    ttl,
		now:    time.Now,
		ticker: make(map[string]cacheEntry),
	}
}

// expired reports whether an entry is stale. An entry with no timestamp is
// trivially expired; otherwise staleness starts exactly at the TTL boundary.
func (c *Cache) expired(e cacheEntry) bool {
	if e.fetchedAt.IsZero() {
		return true
	}
	return c.now().Sub(e.fetchedAt) >= c.ttl
}

// GetFull returns the full-table snapshot if present and fresh.
func (c *Cache) GetFull() ([]FinancialRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.full.records == nil || c.expired(c.full) {
		return nil, false
	}
	return c.full.records, true
}

// SetFull replaces the full-table snapshot and stamps it with the current time.
func (c *Cache) SetFull(records []FinancialRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.full = cacheEntry{records: records, fetchedAt: c.now()}
}

// GetTicker returns the snapshot for one symbol if present and fresh.
// The key is the normalized upper-case ticker.
func (c *Cache) GetTicker(symbol string) ([]FinancialRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.ticker[symbol]
	if !ok || e.records == nil || c.expired(e) {
		return nil, false
	}
	return e.records, true
}

// SetTicker stores a per-ticker snapshot with the current timestamp.
func (c *Cache) SetTicker(symbol string, records []FinancialRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ticker[symbol] = cacheEntry{records: records, fetchedAt: c.now()}
}

// Status reports the state of the full-table entry only; per-ticker entries
// are not included.
func (c *Cache) Status() CacheStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ttlMinutes := c.ttl.Minutes()

	if c.full.records == nil {
		return CacheStatus{Status: StatusEmpty, Records: 0, TTLMinutes: ttlMinutes}
	}

	age := c.now().Sub(c.full.fetchedAt).Minutes()
	status := StatusValid
	if c.expired(c.full) {
		status = StatusExpired
	}

	return CacheStatus{
		Status:     status,
		Records:    len(c.full.records),
		AgeMinutes: math.Round(age*10) / 10,
		TTLMinutes: ttlMinutes,
	}
}

// Clear empties the full-table entry and drops all per-ticker entries.
// Idempotent.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.full = cacheEntry{}
	c.ticker = make(map[string]cacheEntry)
}
