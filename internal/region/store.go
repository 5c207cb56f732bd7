package region

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a region (or its cached series) is not in
// the store.
var ErrNotFound = errors.New("region not found")

// Store is a concurrency-safe in-memory home for regions and their cached
// series. Persistence is out of scope; regions live as long as the
// process.
type Store struct {
	mu sync.RWMutex

	regions map[uuid.UUID]Region
	cache   map[uuid.UUID]CachedSeries

	// maxCacheAge bounds how stale a cached series may be before
	// GetSeries stops serving it. 0 = unlimited.
	maxCacheAge time.Duration
}

// NewStore creates an empty Store.
func NewStore(maxCacheAge time.Duration) *Store {
	return &Store{
		regions:     make(map[uuid.UUID]Region),
		cache:       make(map[uuid.UUID]CachedSeries),
		maxCacheAge: maxCacheAge,
	}
}

// Save inserts or replaces a region.
func (s *Store) Save(r Region) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regions[r.ID] = r
}

// Get returns the region with the given id.
func (s *Store) Get(id uuid.UUID) (Region, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.regions[id]
	if !ok {
		return Region{}, ErrNotFound
	}
	return r, nil
}

// List returns all regions ordered by creation time.
func (s *Store) List() []Region {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Region, 0, len(s.regions))
	for _, r := range s.regions {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Delete removes a region and any cached series for it.
func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.regions[id]; !ok {
		return ErrNotFound
	}
	delete(s.regions, id)
	delete(s.cache, id)
	return nil
}

// SaveSeries caches the latest computed hourly series for a region.
func (s *Store) SaveSeries(id uuid.UUID, cached CachedSeries) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.regions[id]; !ok {
		// Region was deleted while the refresh was in flight.
		return
	}
	s.cache[id] = cached
}

// GetSeries returns the cached series for a region if one exists and is
// still within the staleness bound.
func (s *Store) GetSeries(id uuid.UUID) (CachedSeries, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cached, ok := s.cache[id]
	if !ok || len(cached.Samples) == 0 {
		return CachedSeries{}, ErrNotFound
	}
	if s.maxCacheAge > 0 && time.Since(cached.ComputedAt) > s.maxCacheAge {
		return CachedSeries{}, ErrNotFound
	}
	return cached, nil
}
