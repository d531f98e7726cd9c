package exporter

import (
	"strconv"
	"time"

	"sheetpulse/internal/dataprocessing"
)

// Date layouts for exported cells. A date column whose values all fall on
// midnight is written without the time part.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// formatFloat renders a number with the fewest digits that round-trip
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// dateLayoutFor picks the layout used for every cell of a column
func dateLayoutFor(col *dataprocessing.Column) string {
	for _, v := range col.Values {
		t, ok := v.Time()
		if !ok {
			continue
		}
		if t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0 {
			return DateTimeLayout
		}
	}
	return DateLayout
}

// formatCell renders one cell for CSV output. Null renders as "".
func formatCell(v dataprocessing.Value, dateLayout string) string {
	if n, ok := v.Number(); ok {
		return formatFloat(n)
	}
	if t, ok := v.Time(); ok {
		return t.In(time.UTC).Format(dateLayout)
	}
	return v.String()
}
