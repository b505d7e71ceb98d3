package forecast

import (
	"encoding/json"
	"fmt"
	"math"
)

// KelvinToFahrenheit converts and rounds to the nearest tenth of a degree,
// half away from zero.
func KelvinToFahrenheit(k float64) float64 {
	return roundTenth((k-273.15)*9/5 + 32)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

type threeHourlyItem struct {
	Dt   *int64 `json:"dt"`
	Main *struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
}

type dailyItem struct {
	Dt   *int64 `json:"dt"`
	Temp *struct {
		Max *float64 `json:"max"`
	} `json:"temp"`
}

// NormalizeResponse decodes a raw provider payload of the given shape into
// a LocationForecast with temperatures converted from Kelvin to Fahrenheit.
//
// An empty sample array returns a valid, empty forecast together with
// ErrEmptyResult.
func NormalizeResponse(raw []byte, shape Shape) (LocationForecast, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return LocationForecast{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	out := LocationForecast{Label: PlaceholderLabel}

	switch shape {
	case ShapeThreeHourly:
		var items []threeHourlyItem
		if err := decodeArray(envelope, "list", &items); err != nil {
			return LocationForecast{}, err
		}
		out.Samples = make([]Sample, 0, len(items))
		for i, it := range items {
			if it.Dt == nil || it.Main == nil || it.Main.Temp == nil {
				return LocationForecast{}, fmt.Errorf("%w: list[%d] lacks dt or main.temp", ErrMalformedResponse, i)
			}
			out.Samples = append(out.Samples, Sample{Timestamp: *it.Dt, TemperatureF: KelvinToFahrenheit(*it.Main.Temp)})
		}
		if name := cityName(envelope); name != "" {
			out.Label = name
		}

	case ShapeDaily:
		var items []dailyItem
		if err := decodeArray(envelope, "daily", &items); err != nil {
			return LocationForecast{}, err
		}
		out.Samples = make([]Sample, 0, len(items))
		for i, it := range items {
			if it.Dt == nil || it.Temp == nil || it.Temp.Max == nil {
				return LocationForecast{}, fmt.Errorf("%w: daily[%d] lacks dt or temp.max", ErrMalformedResponse, i)
			}
			out.Samples = append(out.Samples, Sample{Timestamp: *it.Dt, TemperatureF: KelvinToFahrenheit(*it.Temp.Max)})
		}

	default:
		return LocationForecast{}, fmt.Errorf("%w: unsupported shape %s", ErrMalformedResponse, shape)
	}

	if len(out.Samples) == 0 {
		return out, ErrEmptyResult
	}
	return out, nil
}

// decodeArray unmarshals envelope[field] into dst, which must be a pointer
// to a slice. Absent, null and non-array fields are all malformed.
func decodeArray[T any](envelope map[string]json.RawMessage, field string, dst *[]T) error {
	rawField, ok := envelope[field]
	if !ok {
		return fmt.Errorf("%w: missing %q array", ErrMalformedResponse, field)
	}
	if err := json.Unmarshal(rawField, dst); err != nil {
		return fmt.Errorf("%w: %q is not an array of samples: %v", ErrMalformedResponse, field, err)
	}
	if *dst == nil {
		return fmt.Errorf("%w: %q is null", ErrMalformedResponse, field)
	}
	return nil
}

func cityName(envelope map[string]json.RawMessage) string {
	rawCity, ok := envelope["city"]
	if !ok {
		return ""
	}
	var city struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(rawCity, &city); err != nil {
		return ""
	}
	return city.Name
}
