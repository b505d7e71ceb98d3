package forecast

import "strconv"

// MissingCell marks a table cell with no data.
const MissingCell = "-"

// Point is one chart coordinate: x is a 2006-01-02 date, y is °F.
type Point struct {
	X string  `json:"x"`
	Y float64 `json:"y"`
}

// Series is one line of the chart.
type Series struct {
	ID   string  `json:"id"`
	Data []Point `json:"data"`
}

// ChartSeries builds one chart line per available series. Nil entries are
// skipped.
func ChartSeries(series []*LocationSeries) []Series {
	out := make([]Series, 0, len(series))
	for _, s := range series {
		if s == nil {
			continue
		}
		points := make([]Point, 0, len(s.DailyHighs))
		for _, h := range s.DailyHighs {
			points = append(points, Point{X: h.Date, Y: h.TemperatureF})
		}
		out = append(out, Series{ID: s.Label, Data: points})
	}
	return out
}

// Row is one location in the table view.
type Row struct {
	Label string   `json:"label"`
	Cells []string `json:"cells"`
}

// Table is a fixed-width grid with one column per requested day.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// BuildTable lays series out with exactly days columns. Each column header
// comes from the first series with a daily high at that index. Nil series still get a row, filled with
// MissingCell.
func BuildTable(series []*LocationSeries, days int) Table {
	if days < 0 {
		days = 0
	}

	columns := filled(days)
	for i := range columns {
		for _, s := range series {
			if s != nil && i < len(s.DailyHighs) {
				columns[i] = s.DailyHighs[i].Label
				break
			}
		}
	}

	rows := make([]Row, 0, len(series))
	for _, s := range series {
		row := Row{Label: PlaceholderLabel, Cells: filled(days)}
		if s != nil {
			row.Label = s.Label
			for i := 0; i < days && i < len(s.DailyHighs); i++ {
				row.Cells[i] = FormatFahrenheit(s.DailyHighs[i].TemperatureF)
			}
		}
		rows = append(rows, row)
	}

	return Table{Columns: columns, Rows: rows}
}

// FormatFahrenheit renders a temperature the way the table shows it, e.g. "80.3°F".
func FormatFahrenheit(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64) + "°F"
}

func filled(n int) []string {
	cells := make([]string, n)
	for i := range cells {
		cells[i] = MissingCell
	}
	return cells
}
