package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/forecast-compare/internal/forecast"
)

var (
	// ErrNotFound is returned when a comparison is unknown or has expired.
	ErrNotFound = errors.New("comparison not found")
)

// MemoryStore is a concurrency-safe in-memory holding area for recent
// comparisons.
type MemoryStore struct {
	mu sync.RWMutex

	data  map[uuid.UUID]forecast.Comparison
	order []uuid.UUID // insertion order, oldest first

	// retention configuration
	maxEntries int           // max number of comparisons kept
	maxAge     time.Duration // max age of a comparison

	now func() time.Time
}

var _ forecast.Store = (*MemoryStore)(nil)

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxEntries or maxAge is <= 0, it is treated as unlimited.
func NewMemoryStore(maxEntries int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[uuid.UUID]forecast.Comparison),
		maxEntries: maxEntries,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// SaveComparison stores c and enforces the entry limit.
func (s *MemoryStore) SaveComparison(c forecast.Comparison) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[c.ID]; !exists {
		s.order = append(s.order, c.ID)
	}
	s.data[c.ID] = c

	// Enforce retention by count.
	if s.maxEntries > 0 && len(s.order) > s.maxEntries {
		over := len(s.order) - s.maxEntries
		for _, id := range s.order[:over] {
			delete(s.data, id)
		}
		s.order = append([]uuid.UUID(nil), s.order[over:]...)
	}
}

// GetComparison returns the comparison with the given id. Expired entries
// are reported as ErrNotFound even before Purge removes them.
func (s *MemoryStore) GetComparison(id uuid.UUID) (forecast.Comparison, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.data[id]
	if !ok || s.expired(c, s.now()) {
		return forecast.Comparison{}, ErrNotFound
	}
	return c, nil
}

// Purge drops every expired comparison and returns how many were removed.
func (s *MemoryStore) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	kept := s.order[:0]
	removed := 0
	for _, id := range s.order {
		if s.expired(s.data[id], now) {
			delete(s.data, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
	return removed
}

// Len reports how many comparisons are held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *MemoryStore) expired(c forecast.Comparison, now time.Time) bool {
	if s.maxAge <= 0 {
		return false
	}
	return c.CreatedAt.Before(now.Add(-s.maxAge))
}
