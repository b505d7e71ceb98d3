package forecast

import "time"

const (
	dateLayout  = "2006-01-02"
	labelLayout = "Mon, Jan 2"
)

// ComputeDailyHighs groups samples by calendar date in tz and keeps the
// warmest sample of each date. A nil tz means time.Local.
//
// Dates are emitted in the order they first appear in samples, which is not
// necessarily chronological. On equal temperatures the earlier sample wins.
func ComputeDailyHighs(samples []Sample, tz *time.Location) []DailyHigh {
	if tz == nil {
		tz = time.Local
	}

	highs := make([]DailyHigh, 0, len(samples))
	index := make(map[string]int)

	for _, s := range samples {
		t := s.Time().In(tz)
		day := t.Format(dateLayout)

		i, seen := index[day]
		if !seen {
			index[day] = len(highs)
			highs = append(highs, newDailyHigh(s, t))
			continue
		}
		if s.TemperatureF > highs[i].TemperatureF {
			highs[i] = newDailyHigh(s, t)
		}
	}

	return highs
}

func newDailyHigh(s Sample, local time.Time) DailyHigh {
	return DailyHigh{
		Timestamp:    s.Timestamp,
		Date:         local.Format(dateLayout),
		Label:        local.Format(labelLayout),
		TemperatureF: s.TemperatureF,
	}
}

// Truncate returns the first days entries of series as a new slice.
func Truncate(series []DailyHigh, days int) []DailyHigh {
	if days < 0 {
		days = 0
	}
	if days > len(series) {
		days = len(series)
	}
	out := make([]DailyHigh, days)
	copy(out, series[:days])
	return out
}

// Aggregate turns fetched forecasts into per-location series of at most
// days entries. Nil forecasts stay nil so callers keep row positions.
func Aggregate(results []*LocationForecast, days int, tz *time.Location) []*LocationSeries {
	out := make([]*LocationSeries, len(results))
	for i, r := range results {
		if r == nil {
			continue
		}
		out[i] = &LocationSeries{
			Label:      r.Label,
			DailyHighs: Truncate(ComputeDailyHighs(r.Samples, tz), days),
		}
	}
	return out
}
