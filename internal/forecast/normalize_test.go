package forecast

import (
	"errors"
	"testing"
)

func TestKelvinToFahrenheit(t *testing.T) {
	tests := []struct {
		kelvin float64
		want   float64
	}{
		{273.15, 32.0},
		{300, 80.3},
		{310.15, 98.6},
		{0, -459.7},
		{285, 53.3},
		{255.15, -0.4},
	}
	for _, tc := range tests {
		if got := KelvinToFahrenheit(tc.kelvin); got != tc.want {
			t.Errorf("KelvinToFahrenheit(%v) = %v, want %v", tc.kelvin, got, tc.want)
		}
	}
}

func TestRoundTenthHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.25, 0.3},
		{-0.25, -0.3},
		{0.75, 0.8},
		{12.34, 12.3},
		{-12.36, -12.4},
	}
	for _, tc := range tests {
		if got := roundTenth(tc.in); got != tc.want {
			t.Errorf("roundTenth(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestKelvinToFahrenheitMonotonic(t *testing.T) {
	prev := KelvinToFahrenheit(200)
	for k := 200.0; k <= 330; k += 0.37 {
		f := KelvinToFahrenheit(k)
		if f < prev {
			t.Fatalf("conversion not monotonic at %vK: %v < %v", k, f, prev)
		}
		prev = f
	}
}

func TestNormalizeDaily(t *testing.T) {
	raw := []byte(`{
		"lat": 40.71, "lon": -74.01,
		"daily": [
			{"dt": 1704474000, "temp": {"min": 270.1, "max": 300}},
			{"dt": 1704560400, "temp": {"min": 265.0, "max": 273.15}}
		]
	}`)

	got, err := NormalizeResponse(raw, ShapeDaily)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Label != PlaceholderLabel {
		t.Errorf("expected placeholder label, got %q", got.Label)
	}
	want := []Sample{
		{Timestamp: 1704474000, TemperatureF: 80.3},
		{Timestamp: 1704560400, TemperatureF: 32.0},
	}
	if len(got.Samples) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(got.Samples))
	}
	for i := range want {
		if got.Samples[i] != want[i] {
			t.Errorf("sample %d: expected %+v, got %+v", i, want[i], got.Samples[i])
		}
	}
}

func TestNormalizeThreeHourly(t *testing.T) {
	raw := []byte(`{
		"cod": "200",
		"list": [
			{"dt": 1704412800, "main": {"temp": 300, "humidity": 70}},
			{"dt": 1704423600, "main": {"temp": 310.15}}
		],
		"city": {"id": 2988507, "name": "Paris"}
	}`)

	got, err := NormalizeResponse(raw, ShapeThreeHourly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Label != "Paris" {
		t.Errorf("expected label Paris, got %q", got.Label)
	}
	if len(got.Samples) != 2 || got.Samples[0].TemperatureF != 80.3 || got.Samples[1].TemperatureF != 98.6 {
		t.Errorf("unexpected samples %+v", got.Samples)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	got, err := NormalizeResponse([]byte(`{"daily": []}`), ShapeDaily)
	if !errors.Is(err, ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}
	if got.Samples == nil || len(got.Samples) != 0 {
		t.Errorf("expected a valid empty forecast, got %+v", got)
	}
}

func TestNormalizeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		shape Shape
	}{
		{"not json", `<html>`, ShapeDaily},
		{"top level array", `[1,2,3]`, ShapeDaily},
		{"missing daily", `{"list": [{"dt": 1, "main": {"temp": 280}}]}`, ShapeDaily},
		{"missing list", `{"daily": [{"dt": 1, "temp": {"max": 280}}]}`, ShapeThreeHourly},
		{"daily is object", `{"daily": {"dt": 1}}`, ShapeDaily},
		{"daily is null", `{"daily": null}`, ShapeDaily},
		{"list is string", `{"list": "nope"}`, ShapeThreeHourly},
		{"item lacks max", `{"daily": [{"dt": 1, "temp": {"min": 280}}]}`, ShapeDaily},
		{"item lacks dt", `{"list": [{"main": {"temp": 280}}]}`, ShapeThreeHourly},
		{"temp is scalar", `{"daily": [{"dt": 1, "temp": 280}]}`, ShapeDaily},
		{"unknown shape", `{"daily": []}`, Shape(42)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NormalizeResponse([]byte(tc.raw), tc.shape)
			if !errors.Is(err, ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestShapeString(t *testing.T) {
	if ShapeDaily.String() != "daily" || ShapeThreeHourly.String() != "three-hourly" {
		t.Fatalf("unexpected names %q, %q", ShapeDaily, ShapeThreeHourly)
	}
	if Shape(9).String() != "shape(9)" {
		t.Fatalf("unexpected name %q", Shape(9))
	}
}
