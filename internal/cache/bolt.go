package cache

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/skywatch-ops/riskfeed/internal/domain"
)

var analysisBucket = []byte("region_analyses")

// boltStore persists cache entries to a bolt bucket so a restart inside
// the TTL window keeps serving cached analyses. Only the cache entry is
// persisted; articles live no longer than its TTL.
type boltStore struct {
	db  *bolt.DB
	ttl time.Duration
	now func() time.Time
}

// NewBoltStore opens (or creates) the bolt file at path and returns a
// Store backed by it, plus a close func for shutdown.
func NewBoltStore(path string, ttl time.Duration) (Store, func() error, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, nil, fmt.Errorf("open cache db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(analysisBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create cache bucket: %w", err)
	}

	return &boltStore{db: db, ttl: ttl, now: time.Now}, db.Close, nil
}

func (s *boltStore) Get(region string) (domain.RegionAnalysis, bool) {
	var entry domain.CacheEntry
	found := false

	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(analysisBucket).Get([]byte(region))
		if raw == nil {
			return nil
		}
		if err := json.Unmarshal(raw, &entry); err != nil {
			// A corrupt entry is a miss; the next Put overwrites it.
			return nil
		}
		found = true
		return nil
	})
	if err != nil || !found {
		return domain.RegionAnalysis{}, false
	}

	if s.now().Sub(entry.ComputedAt) > s.ttl {
		return domain.RegionAnalysis{}, false
	}
	return entry.Analysis, true
}

func (s *boltStore) Put(region string, analysis domain.RegionAnalysis) error {
	entry := domain.CacheEntry{
		Region:     region,
		Analysis:   analysis,
		ComputedAt: s.now(),
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(analysisBucket).Put([]byte(region), raw)
	})
}
