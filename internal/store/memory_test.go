package store

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/forecast-compare/internal/forecast"
)

func comparison(createdAt time.Time) forecast.Comparison {
	return forecast.Comparison{
		ID:        uuid.New(),
		CreatedAt: createdAt,
		Results:   []*forecast.LocationForecast{nil, {Label: "Denver"}},
	}
}

func TestSaveAndGet(t *testing.T) {
	s := NewMemoryStore(10, time.Hour)
	c := comparison(time.Now())
	s.SaveComparison(c)

	got, err := s.GetComparison(c.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != c.ID || len(got.Results) != 2 || got.Results[0] != nil {
		t.Fatalf("unexpected comparison %+v", got)
	}

	if _, err := s.GetComparison(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRetentionByCount(t *testing.T) {
	s := NewMemoryStore(2, 0)
	now := time.Now()
	a, b, c := comparison(now), comparison(now), comparison(now)
	s.SaveComparison(a)
	s.SaveComparison(b)
	s.SaveComparison(c)

	if s.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", s.Len())
	}
	if _, err := s.GetComparison(a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected the oldest entry to be evicted")
	}
	for _, kept := range []forecast.Comparison{b, c} {
		if _, err := s.GetComparison(kept.ID); err != nil {
			t.Errorf("expected %s to be kept: %v", kept.ID, err)
		}
	}
}

func TestResaveDoesNotDuplicate(t *testing.T) {
	s := NewMemoryStore(0, 0)
	c := comparison(time.Now())
	s.SaveComparison(c)
	s.SaveComparison(c)
	if s.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", s.Len())
	}
}

func TestExpiredEntriesAreHiddenAndPurged(t *testing.T) {
	now := time.Date(2024, time.January, 5, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore(0, 30*time.Minute)
	s.now = func() time.Time { return now }

	old := comparison(now.Add(-time.Hour))
	fresh := comparison(now.Add(-time.Minute))
	s.SaveComparison(old)
	s.SaveComparison(fresh)

	if _, err := s.GetComparison(old.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected expired comparison to be hidden, got %v", err)
	}

	if removed := s.Purge(); removed != 1 {
		t.Fatalf("expected 1 purged entry, got %d", removed)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 remaining entry, got %d", s.Len())
	}
	if _, err := s.GetComparison(fresh.ID); err != nil {
		t.Errorf("expected fresh comparison to survive: %v", err)
	}
}

func TestNoMaxAgeNeverExpires(t *testing.T) {
	s := NewMemoryStore(0, 0)
	c := comparison(time.Unix(0, 0))
	s.SaveComparison(c)

	if removed := s.Purge(); removed != 0 {
		t.Fatalf("expected nothing purged, got %d", removed)
	}
	if _, err := s.GetComparison(c.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
