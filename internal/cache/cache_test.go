package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skywatch-ops/riskfeed/internal/domain"
)

func sampleAnalysis(region string) domain.RegionAnalysis {
	return domain.RegionAnalysis{
		Region:          region,
		RiskLevel:       domain.RiskMedium,
		Summary:         "sample",
		Recommendations: []string{"Continue monitoring regional developments"},
	}
}

func TestMemoryStoreHitWithinTTL(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newMemoryStore(15*time.Minute, func() time.Time { return now })

	_, ok := store.Get("Black Sea")
	require.False(t, ok)

	require.NoError(t, store.Put("Black Sea", sampleAnalysis("Black Sea")))

	now = now.Add(14 * time.Minute)
	got, ok := store.Get("Black Sea")
	require.True(t, ok)
	require.Equal(t, "Black Sea", got.Region)
}

func TestMemoryStoreStaleAfterTTL(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newMemoryStore(15*time.Minute, func() time.Time { return now })

	require.NoError(t, store.Put("Black Sea", sampleAnalysis("Black Sea")))

	// Exactly at the TTL boundary the entry is still usable.
	now = now.Add(15 * time.Minute)
	_, ok := store.Get("Black Sea")
	require.True(t, ok)

	now = now.Add(time.Second)
	_, ok = store.Get("Black Sea")
	require.False(t, ok)
}

func TestMemoryStoreOverwrites(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newMemoryStore(15*time.Minute, func() time.Time { return now })

	first := sampleAnalysis("Black Sea")
	first.RiskLevel = domain.RiskLow
	require.NoError(t, store.Put("Black Sea", first))

	second := sampleAnalysis("Black Sea")
	second.RiskLevel = domain.RiskCritical
	require.NoError(t, store.Put("Black Sea", second))

	got, ok := store.Get("Black Sea")
	require.True(t, ok)
	require.Equal(t, domain.RiskCritical, got.RiskLevel)
}

func TestMemoryStoreDefaultTTL(t *testing.T) {
	store := newMemoryStore(0, time.Now)
	require.Equal(t, DefaultTTL, store.ttl)
}

func TestBoltStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	store, closeStore, err := NewBoltStore(path, 15*time.Minute)
	require.NoError(t, err)
	defer closeStore()

	_, ok := store.Get("Persian Gulf")
	require.False(t, ok)

	require.NoError(t, store.Put("Persian Gulf", sampleAnalysis("Persian Gulf")))

	got, ok := store.Get("Persian Gulf")
	require.True(t, ok)
	require.Equal(t, "Persian Gulf", got.Region)
	require.Equal(t, domain.RiskMedium, got.RiskLevel)
}

func TestBoltStoreExpiry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	store, closeStore, err := NewBoltStore(path, 15*time.Minute)
	require.NoError(t, err)
	defer closeStore()

	bs := store.(*boltStore)
	now := time.Now()
	bs.now = func() time.Time { return now }

	require.NoError(t, store.Put("Black Sea", sampleAnalysis("Black Sea")))

	now = now.Add(16 * time.Minute)
	_, ok := store.Get("Black Sea")
	require.False(t, ok)
}
