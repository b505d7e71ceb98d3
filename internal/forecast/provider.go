package forecast

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrFetchFailure wraps network and HTTP status failures from an upstream.
	ErrFetchFailure = errors.New("forecast fetch failed")
	// ErrMalformedResponse means the upstream JSON lacked the expected sample array.
	ErrMalformedResponse = errors.New("malformed forecast response")
	// ErrEmptyResult means the response was valid but held no samples.
	ErrEmptyResult = errors.New("forecast has no samples")
	// ErrResolutionFailure means reverse geocoding found no candidate.
	ErrResolutionFailure = errors.New("location could not be resolved")
)

// ForecastSource fetches and normalizes the forecast for one location
// (e.g. OpenWeather OneCall for coordinates, the 3-hour forecast for names).
type ForecastSource interface {
	Name() string
	FetchForecast(ctx context.Context, loc Location) (LocationForecast, error)
}

// Geocoder resolves coordinates to a display name.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

// Store holds recent comparisons so they can be re-aggregated without
// fetching again.
type Store interface {
	SaveComparison(c Comparison)
	GetComparison(id uuid.UUID) (Comparison, error)
}
