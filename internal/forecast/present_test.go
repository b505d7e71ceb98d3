package forecast

import (
	"reflect"
	"testing"
)

func threeDaySeries() *LocationSeries {
	return &LocationSeries{
		Label: "Boulder",
		DailyHighs: []DailyHigh{
			{Timestamp: 1704474000, Date: "2024-01-05", Label: "Fri, Jan 5", TemperatureF: 80.3},
			{Timestamp: 1704560400, Date: "2024-01-06", Label: "Sat, Jan 6", TemperatureF: 32},
			{Timestamp: 1704646800, Date: "2024-01-07", Label: "Sun, Jan 7", TemperatureF: -4.5},
		},
	}
}

func TestChartSeriesSkipsMissing(t *testing.T) {
	got := ChartSeries([]*LocationSeries{nil, threeDaySeries()})

	want := []Series{{
		ID: "Boulder",
		Data: []Point{
			{X: "2024-01-05", Y: 80.3},
			{X: "2024-01-06", Y: 32},
			{X: "2024-01-07", Y: -4.5},
		},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestChartSeriesAllMissing(t *testing.T) {
	got := ChartSeries([]*LocationSeries{nil, nil})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty series list, got %#v", got)
	}
}

func TestBuildTableThreeDays(t *testing.T) {
	got := BuildTable([]*LocationSeries{nil, threeDaySeries()}, 3)

	want := Table{
		Columns: []string{"Fri, Jan 5", "Sat, Jan 6", "Sun, Jan 7"},
		Rows: []Row{
			{Label: PlaceholderLabel, Cells: []string{"-", "-", "-"}},
			{Label: "Boulder", Cells: []string{"80.3°F", "32°F", "-4.5°F"}},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestBuildTablePadsToWindow(t *testing.T) {
	got := BuildTable([]*LocationSeries{threeDaySeries()}, 7)

	if len(got.Columns) != 7 {
		t.Fatalf("expected 7 columns, got %d", len(got.Columns))
	}
	for i := 3; i < 7; i++ {
		if got.Columns[i] != MissingCell {
			t.Errorf("column %d: expected placeholder, got %q", i, got.Columns[i])
		}
		if got.Rows[0].Cells[i] != MissingCell {
			t.Errorf("cell %d: expected placeholder, got %q", i, got.Rows[0].Cells[i])
		}
	}
}

func TestBuildTableEmptySeriesRow(t *testing.T) {
	empty := &LocationSeries{Label: "Quiet Town", DailyHighs: []DailyHigh{}}
	got := BuildTable([]*LocationSeries{nil, empty, threeDaySeries()}, 3)

	if !reflect.DeepEqual(got.Columns, []string{"Fri, Jan 5", "Sat, Jan 6", "Sun, Jan 7"}) {
		t.Errorf("unexpected columns %v", got.Columns)
	}
	if got.Rows[1].Label != "Quiet Town" || !reflect.DeepEqual(got.Rows[1].Cells, []string{"-", "-", "-"}) {
		t.Errorf("unexpected empty row %+v", got.Rows[1])
	}
	if got.Rows[2].Cells[0] != "80.3°F" {
		t.Errorf("unexpected data row %+v", got.Rows[2])
	}
}

func TestBuildTableHeadersFromLongestPrefix(t *testing.T) {
	short := &LocationSeries{
		Label:      "Denver",
		DailyHighs: []DailyHigh{{Date: "2024-01-05", Label: "Fri, Jan 5", TemperatureF: 50}},
	}
	got := BuildTable([]*LocationSeries{short, threeDaySeries()}, 4)

	want := []string{"Fri, Jan 5", "Sat, Jan 6", "Sun, Jan 7", MissingCell}
	if !reflect.DeepEqual(got.Columns, want) {
		t.Errorf("expected columns %v, got %v", want, got.Columns)
	}
	if !reflect.DeepEqual(got.Rows[0].Cells, []string{"50°F", "-", "-", "-"}) {
		t.Errorf("unexpected short row %+v", got.Rows[0])
	}
}

func TestBuildTableNoRows(t *testing.T) {
	got := BuildTable(nil, 3)
	if len(got.Rows) != 0 || len(got.Columns) != 3 {
		t.Fatalf("unexpected table %+v", got)
	}
}

func TestFormatFahrenheit(t *testing.T) {
	tests := map[float64]string{
		80.3:  "80.3°F",
		32:    "32°F",
		-0.4:  "-0.4°F",
		101.0: "101°F",
	}
	for in, want := range tests {
		if got := FormatFahrenheit(in); got != want {
			t.Errorf("FormatFahrenheit(%v) = %q, want %q", in, got, want)
		}
	}
}
