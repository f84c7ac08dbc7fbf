// Package cache holds computed region analyses behind a TTL. Stale entries
// are never evicted in the background; the next reader treats them as a
// miss and the recomputed analysis overwrites in place.
package cache

import (
	"sync"
	"time"

	"github.com/skywatch-ops/riskfeed/internal/domain"
)

// DefaultTTL is the freshness window for a cached analysis.
const DefaultTTL = 15 * time.Minute

// Store is the region-keyed analysis cache.
type Store interface {
	Get(region string) (domain.RegionAnalysis, bool)
	Put(region string, analysis domain.RegionAnalysis) error
}

// memoryStore is the default in-process Store.
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]domain.CacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore builds an in-memory store with the given TTL. A
// non-positive ttl falls back to DefaultTTL.
func NewMemoryStore(ttl time.Duration) Store {
	return newMemoryStore(ttl, time.Now)
}

func newMemoryStore(ttl time.Duration, now func() time.Time) *memoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &memoryStore{
		entries: make(map[string]domain.CacheEntry),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the cached analysis when it is still inside the TTL window.
func (s *memoryStore) Get(region string) (domain.RegionAnalysis, bool) {
	s.mu.RLock()
	entry, ok := s.entries[region]
	s.mu.RUnlock()

	if !ok {
		return domain.RegionAnalysis{}, false
	}
	if s.now().Sub(entry.ComputedAt) > s.ttl {
		return domain.RegionAnalysis{}, false
	}
	return entry.Analysis, true
}

// Put records the analysis, overwriting any previous entry for the region.
func (s *memoryStore) Put(region string, analysis domain.RegionAnalysis) error {
	s.mu.Lock()
	s.entries[region] = domain.CacheEntry{
		Region:     region,
		Analysis:   analysis,
		ComputedAt: s.now(),
	}
	s.mu.Unlock()
	return nil
}
