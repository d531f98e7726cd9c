package dataprocessing

import (
	"math"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// dateLayouts are tried in order. Ambiguous numeric dates are read
// month first, so 03/04/2024 is March 4th.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04 PM",
	"1/2/2006",
	"1-2-2006 15:04:05",
	"1-2-2006",
	"1.2.2006",
	"1/2/06 15:04",
	"1/2/06",
	"1-2-06",
	"Jan 2, 2006 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"January 2 2006",
	"2 Jan 2006",
	"2 January 2006",
	"2-Jan-2006",
	"2-Jan-06",
	"Mon, 02 Jan 2006 15:04:05 MST",
	"Mon Jan 2 15:04:05 2006",
	"Jan 2006",
	"January 2006",
	"2006-01",
	"2006/01",
	"2006",
}

// parseDateText parses a date string against the month-first layouts
func parseDateText(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// toDate coerces one cell to a date. Numbers are read as nanoseconds since
// the Unix epoch; anything that does not parse becomes null.
func toDate(v Value) Value {
	switch v.typ {
	case valueDate:
		return v
	case valueNumber:
		if math.IsNaN(v.num) || v.num > math.MaxInt64 || v.num < math.MinInt64 {
			return Null()
		}
		return Date(time.Unix(0, int64(v.num)).UTC())
	case valueText:
		if t, ok := parseDateText(v.str); ok {
			return Date(t)
		}
	}
	return Null()
}

// coerceDates returns a date typed copy of col
func coerceDates(col *Column) *Column {
	values := make([]Value, len(col.Values))
	for i, v := range col.Values {
		values[i] = toDate(v)
	}
	return &Column{Name: col.Name, Kind: KindDate, Values: values}
}

// builtinDateFormats are the predefined number format ids that render dates or times
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// isDateFormatCode reports whether a custom number format renders a date
func isDateFormatCode(code string) bool {
	var b strings.Builder
	inQuote, inBracket, escaped := false, false, false
	for _, r := range code {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		default:
			b.WriteRune(r)
		}
	}
	stripped := strings.ToLower(b.String())
	if stripped == "general" {
		return false
	}
	return strings.ContainsAny(stripped, "dmyhs")
}

// dateStyleCache memoizes which cell styles carry a date number format
type dateStyleCache struct {
	file   *excelize.File
	styles map[int]bool
}

func newDateStyleCache(f *excelize.File) *dateStyleCache {
	return &dateStyleCache{file: f, styles: make(map[int]bool)}
}

func (c *dateStyleCache) isDate(sheet, axis string) bool {
	idx, err := c.file.GetCellStyle(sheet, axis)
	if err != nil || idx == 0 {
		return false
	}
	if known, ok := c.styles[idx]; ok {
		return known
	}

	isDate := false
	if style, err := c.file.GetStyle(idx); err == nil && style != nil {
		switch {
		case style.CustomNumFmt != nil:
			isDate = isDateFormatCode(*style.CustomNumFmt)
		default:
			isDate = builtinDateFormats[style.NumFmt]
		}
	}
	c.styles[idx] = isDate
	return isDate
}
