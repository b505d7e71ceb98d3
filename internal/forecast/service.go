package forecast

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/forecast-compare/internal/log"
)

// Service fetches forecasts for a set of locations and keeps the result
// around for re-aggregation.
type Service struct {
	store        Store
	source       ForecastSource
	geocoder     Geocoder
	fetchTimeout time.Duration
	tz           *time.Location
	now          func() time.Time
}

// NewService creates a new Service. A zero fetchTimeout means no
// per-location deadline beyond the caller's context; a nil tz means
// time.Local.
func NewService(store Store, source ForecastSource, geocoder Geocoder, fetchTimeout time.Duration, tz *time.Location) *Service {
	if tz == nil {
		tz = time.Local
	}
	return &Service{
		store:        store,
		source:       source,
		geocoder:     geocoder,
		fetchTimeout: fetchTimeout,
		tz:           tz,
		now:          time.Now,
	}
}

// TimeZone is the zone used to bucket samples into calendar days.
func (s *Service) TimeZone() *time.Location {
	return s.tz
}

// Compare fetches every location concurrently and stores the comparison.
// A location that fails yields a nil entry; it never fails its siblings.
func (s *Service) Compare(ctx context.Context, locs []Location) (Comparison, error) {
	if len(locs) == 0 {
		return Comparison{}, fmt.Errorf("at least one location is required")
	}
	if s.source == nil {
		return Comparison{}, fmt.Errorf("no forecast source configured")
	}

	results := make([]*LocationForecast, len(locs))

	var wg sync.WaitGroup
	for i, loc := range locs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = s.fetchLocation(ctx, loc)
		}()
	}
	wg.Wait()

	c := Comparison{
		ID:        uuid.New(),
		CreatedAt: s.now().UTC(),
		Locations: locs,
		Results:   results,
	}
	if s.store != nil {
		s.store.SaveComparison(c)
	}

	log.Infow("comparison fetched", "id", c.ID.String(), "locations", len(locs), "failed", countNil(results))
	return c, nil
}

// Get returns a previously stored comparison.
func (s *Service) Get(id uuid.UUID) (Comparison, error) {
	if s.store == nil {
		return Comparison{}, fmt.Errorf("no comparison store configured")
	}
	return s.store.GetComparison(id)
}

// View aggregates a comparison into series of at most days entries.
func (s *Service) View(c Comparison, days int) []*LocationSeries {
	return Aggregate(c.Results, days, s.tz)
}

func (s *Service) fetchLocation(ctx context.Context, loc Location) *LocationForecast {
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	var (
		wg    sync.WaitGroup
		label string
	)
	if loc.HasCoordinates() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			label = s.resolveLabel(ctx, *loc.Lat, *loc.Lon)
		}()
	}

	fc, err := s.source.FetchForecast(ctx, loc)
	wg.Wait()

	switch {
	case errors.Is(err, ErrEmptyResult):
		log.Debugf("provider %s returned no samples for %s", s.source.Name(), loc.Key())
	case err != nil:
		log.Warnf("provider %s forecast failed for %s: %v", s.source.Name(), loc.Key(), err)
		return nil
	}

	if loc.HasCoordinates() {
		fc.Label = label
	} else if fc.Label == "" || fc.Label == PlaceholderLabel {
		fc.Label = loc.Name
	}
	if fc.Samples == nil {
		fc.Samples = []Sample{}
	}
	return &fc
}

func (s *Service) resolveLabel(ctx context.Context, lat, lon float64) string {
	if s.geocoder == nil {
		return PlaceholderLabel
	}
	name, err := s.geocoder.ReverseGeocode(ctx, lat, lon)
	if err != nil || name == "" {
		log.Warnf("reverse geocode failed for %.4f,%.4f: %v", lat, lon, err)
		return PlaceholderLabel
	}
	return name
}

func countNil(results []*LocationForecast) int {
	n := 0
	for _, r := range results {
		if r == nil {
			n++
		}
	}
	return n
}
