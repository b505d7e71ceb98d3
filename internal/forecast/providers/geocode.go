package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/forecast-compare/internal/forecast"
)

// OpenWeatherGeocoder resolves coordinates with the OpenWeather reverse
// geocoding API.
type OpenWeatherGeocoder struct {
	openWeatherClient
}

var _ forecast.Geocoder = (*OpenWeatherGeocoder)(nil)

func NewOpenWeatherGeocoder(client *http.Client, apiKey string, opts ...Option) *OpenWeatherGeocoder {
	return &OpenWeatherGeocoder{
		openWeatherClient: newOpenWeatherClient("openweather-geo", client, apiKey, opts),
	}
}

func (g *OpenWeatherGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	values := url.Values{}
	values.Set("lat", formatCoord(lat))
	values.Set("lon", formatCoord(lon))
	values.Set("limit", "1")

	body, err := g.get(ctx, "/geo/1.0/reverse", values)
	if err != nil {
		return "", err
	}

	var places []struct {
		Name    string `json:"name"`
		State   string `json:"state"`
		Country string `json:"country"`
	}
	if err := json.Unmarshal(body, &places); err != nil {
		return "", fmt.Errorf("%w: reverse geocode: %v", forecast.ErrMalformedResponse, err)
	}
	if len(places) == 0 || places[0].Name == "" {
		return "", forecast.ErrResolutionFailure
	}
	return places[0].Name, nil
}

// reverseGeocode is swapped out in tests; the geocoder package only talks
// to the Google endpoint.
var reverseGeocode = geocoder.GeocodingReverse

// GoogleGeocoder resolves coordinates with the Google Geocoding API.
type GoogleGeocoder struct{}

var _ forecast.Geocoder = (*GoogleGeocoder)(nil)

// NewGoogleGeocoder configures the geocoder package with apiKey. The key is
// process-wide, so only one GoogleGeocoder should exist.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{}
}

func (g *GoogleGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	type result struct {
		addrs []geocoder.Address
		err   error
	}

	// The geocoder package has no context support.
	lookup := reverseGeocode
	done := make(chan result, 1)
	go func() {
		addrs, err := lookup(geocoder.Location{Latitude: lat, Longitude: lon})
		done <- result{addrs: addrs, err: err}
	}()

	var r result
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", forecast.ErrFetchFailure, ctx.Err())
	case r = <-done:
	}

	if r.err != nil {
		return "", fmt.Errorf("%w: google reverse geocode: %v", forecast.ErrFetchFailure, r.err)
	}
	for _, a := range r.addrs {
		if a.City != "" {
			return a.City, nil
		}
	}
	for _, a := range r.addrs {
		if a.FormattedAddress != "" {
			return a.FormattedAddress, nil
		}
	}
	return "", forecast.ErrResolutionFailure
}
