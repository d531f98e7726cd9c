package dataprocessing

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind is the inferred storage type of a column
type Kind int

const (
	KindNumeric Kind = iota
	KindText
	KindDate
)

// String returns the dtype name used in logs and summaries
func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindText:
		return "text"
	case KindDate:
		return "date"
	default:
		return "unknown"
	}
}

type valueType uint8

const (
	valueNull valueType = iota
	valueNumber
	valueText
	valueDate
)

// Value is a single typed cell. The zero Value is null.
type Value struct {
	typ valueType
	num float64
	str string
	at  time.Time
}

// Null returns the null marker
func Null() Value { return Value{} }

// Number wraps a numeric cell
func Number(f float64) Value { return Value{typ: valueNumber, num: f} }

// Text wraps a textual cell
func Text(s string) Value { return Value{typ: valueText, str: s} }

// Date wraps a date/time cell. The offset is kept so the wall clock
// decides the calendar month.
func Date(t time.Time) Value { return Value{typ: valueDate, at: t.Round(0)} }

// IsNull reports whether the cell holds no value
func (v Value) IsNull() bool { return v.typ == valueNull }

// Number returns the numeric payload
func (v Value) Number() (float64, bool) { return v.num, v.typ == valueNumber }

// Text returns the textual payload
func (v Value) Text() (string, bool) { return v.str, v.typ == valueText }

// Time returns the date payload
func (v Value) Time() (time.Time, bool) { return v.at, v.typ == valueDate }

// Interface returns the cell as a JSON friendly value
func (v Value) Interface() interface{} {
	switch v.typ {
	case valueNumber:
		return v.num
	case valueText:
		return v.str
	case valueDate:
		return v.at.Format(time.RFC3339)
	default:
		return nil
	}
}

// String renders the cell for text exports. Null renders as "".
func (v Value) String() string {
	switch v.typ {
	case valueNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case valueText:
		return v.str
	case valueDate:
		return v.at.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}

// valueKey is a comparable identity used for grouping and distinct counts
type valueKey struct {
	typ  valueType
	num  float64
	str  string
	nano int64
}

func (v Value) key() valueKey {
	switch v.typ {
	case valueNumber:
		return valueKey{typ: valueNumber, num: v.num}
	case valueText:
		return valueKey{typ: valueText, str: v.str}
	case valueDate:
		return valueKey{typ: valueDate, nano: v.at.UnixNano()}
	default:
		return valueKey{}
	}
}

// parseNumber parses decimal text the way a spreadsheet user would expect.
// Hex literals, digit separators and non-finite values are rejected.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "_xXpP") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// Column is a named, typed sequence of cells
type Column struct {
	Name   string
	Kind   Kind
	Values []Value
}

// Clone returns a deep copy of the column
func (c *Column) Clone() *Column {
	values := make([]Value, len(c.Values))
	copy(values, c.Values)
	return &Column{Name: c.Name, Kind: c.Kind, Values: values}
}

// Distinct counts the distinct non-null cells
func (c *Column) Distinct() int {
	seen := make(map[valueKey]struct{}, len(c.Values))
	for _, v := range c.Values {
		if v.IsNull() {
			continue
		}
		seen[v.key()] = struct{}{}
	}
	return len(seen)
}

// NullCount counts null cells
func (c *Column) NullCount() int {
	n := 0
	for _, v := range c.Values {
		if v.IsNull() {
			n++
		}
	}
	return n
}

// inferKind derives a column dtype from its cells: numeric when every
// non-null cell is a number (or the column is empty), date when every
// non-null cell is a date, text otherwise.
func inferKind(values []Value) Kind {
	numbers, dates, present := 0, 0, 0
	for _, v := range values {
		switch v.typ {
		case valueNull:
			continue
		case valueNumber:
			numbers++
		case valueDate:
			dates++
		}
		present++
	}
	switch {
	case numbers == present:
		return KindNumeric
	case dates == present:
		return KindDate
	default:
		return KindText
	}
}

// Dataset is an ordered set of equally long columns
type Dataset struct {
	columns []*Column
	index   map[string]int
}

// NewDataset builds a dataset from columns. Columns shorter than the
// longest one are padded with nulls.
func NewDataset(columns ...*Column) *Dataset {
	rows := 0
	for _, c := range columns {
		if len(c.Values) > rows {
			rows = len(c.Values)
		}
	}
	for _, c := range columns {
		for len(c.Values) < rows {
			c.Values = append(c.Values, Null())
		}
	}
	d := &Dataset{columns: columns}
	d.reindex()
	return d
}

// reindex rebuilds the name lookup; the first column with a name wins
func (d *Dataset) reindex() {
	d.index = make(map[string]int, len(d.columns))
	for i, c := range d.columns {
		if _, exists := d.index[c.Name]; !exists {
			d.index[c.Name] = i
		}
	}
}

// Columns returns the columns in order
func (d *Dataset) Columns() []*Column {
	return d.columns
}

// Names returns the column names in order
func (d *Dataset) Names() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// Len returns the row count
func (d *Dataset) Len() int {
	if len(d.columns) == 0 {
		return 0
	}
	return len(d.columns[0].Values)
}

// Width returns the column count
func (d *Dataset) Width() int {
	return len(d.columns)
}

// Column looks up a column by name
func (d *Dataset) Column(name string) (*Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.columns[i], true
}

// SetColumn replaces the column of the same name in place, or appends it
func (d *Dataset) SetColumn(col *Column) {
	if i, ok := d.index[col.Name]; ok {
		d.columns[i] = col
		return
	}
	d.columns = append(d.columns, col)
	d.index[col.Name] = len(d.columns) - 1
}

// Rename changes every column name through fn and rebuilds the lookup
func (d *Dataset) Rename(fn func(string) string) {
	for _, c := range d.columns {
		c.Name = fn(c.Name)
	}
	d.reindex()
}

// Clone returns a deep copy of the dataset
func (d *Dataset) Clone() *Dataset {
	columns := make([]*Column, len(d.columns))
	for i, c := range d.columns {
		columns[i] = c.Clone()
	}
	clone := &Dataset{columns: columns}
	clone.reindex()
	return clone
}
