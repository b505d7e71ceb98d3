package forecast

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// PlaceholderLabel is shown when a location has no resolvable display name.
const PlaceholderLabel = "Unknown location"

// Shape selects which upstream response layout NormalizeResponse expects.
type Shape int

const (
	// ShapeThreeHourly is the 5 day / 3 hour forecast: list[].dt, list[].main.temp.
	ShapeThreeHourly Shape = iota
	// ShapeDaily is the OneCall daily forecast: daily[].dt, daily[].temp.max.
	ShapeDaily
)

func (s Shape) String() string {
	switch s {
	case ShapeThreeHourly:
		return "three-hourly"
	case ShapeDaily:
		return "daily"
	default:
		return "shape(" + strconv.Itoa(int(s)) + ")"
	}
}

// Location is one requested place: either a coordinate pair or, in legacy
// mode, a free-text place name.
type Location struct {
	Lat  *float64 `json:"lat,omitempty"`
	Lon  *float64 `json:"lon,omitempty"`
	Name string   `json:"name,omitempty"`
}

// HasCoordinates reports whether the location was given as lat/lon.
func (l Location) HasCoordinates() bool {
	return l.Lat != nil && l.Lon != nil
}

// Key returns a canonical string for logging and lookups.
func (l Location) Key() string {
	if l.HasCoordinates() {
		return fmt.Sprintf("%.4f,%.4f", *l.Lat, *l.Lon)
	}
	return l.Name
}

// Sample is one forecast reading after unit conversion.
type Sample struct {
	Timestamp    int64   `json:"dt"` // unix seconds, UTC
	TemperatureF float64 `json:"temp"`
}

// Time returns the sample timestamp as a time.Time in UTC.
func (s Sample) Time() time.Time {
	return time.Unix(s.Timestamp, 0).UTC()
}

// LocationForecast is a normalized, pre-aggregation forecast for one place.
type LocationForecast struct {
	Label   string   `json:"label"`
	Samples []Sample `json:"samples"`
}

// DailyHigh is the warmest sample of one calendar date.
type DailyHigh struct {
	Timestamp    int64   `json:"dt"`
	Date         string  `json:"date"`  // 2006-01-02
	Label        string  `json:"label"` // Mon, Jan 2
	TemperatureF float64 `json:"temp"`
}

// LocationSeries pairs a display label with its daily highs, ordered by
// first appearance of each date in the input samples.
type LocationSeries struct {
	Label      string      `json:"label"`
	DailyHighs []DailyHigh `json:"dailyHighs"`
}

// Comparison is one fetch of a set of locations. A nil entry in Results
// means that location could not be fetched.
type Comparison struct {
	ID        uuid.UUID           `json:"id"`
	CreatedAt time.Time           `json:"createdAt"`
	Locations []Location          `json:"locations"`
	Results   []*LocationForecast `json:"results"`
}
