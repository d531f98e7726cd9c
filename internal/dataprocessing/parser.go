package dataprocessing

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Format identifies a supported source file format
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
)

// ErrUnsupportedFormat is matched by every UnsupportedFormatError
var ErrUnsupportedFormat = errors.New("unsupported format")

// UnsupportedFormatError is returned when a file extension is not one of
// .csv, .xls or .xlsx. It is raised before the file is read.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return "unsupported format: file has no extension"
	}
	return fmt.Sprintf("unsupported format: %s", e.Extension)
}

// Is makes errors.Is(err, ErrUnsupportedFormat) work
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// ParseError wraps a failure to read a file of a supported format
type ParseError struct {
	Filename string
	Format   Format
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s file %q: %v", e.Format, e.Filename, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DetectFormat maps a filename to its format by extension, case-insensitively
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return FormatCSV, nil
	case ".xls", ".xlsx":
		return FormatExcel, nil
	default:
		return "", &UnsupportedFormatError{Extension: ext}
	}
}

// Loader reads CSV and Excel files into datasets
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With(slog.String("component", "loader"))}
}

// LoadFile opens path and parses it. The format is taken from filename,
// which defaults to the base name of path.
func (l *Loader) LoadFile(ctx context.Context, path, filename string) (*Dataset, error) {
	if filename == "" {
		filename = filepath.Base(path)
	}
	if _, err := DetectFormat(filename); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return l.Load(ctx, f, filename)
}

// Load parses r according to the extension of filename
func (l *Loader) Load(ctx context.Context, r io.Reader, filename string) (*Dataset, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		l.logger.WarnContext(ctx, "rejected file",
			slog.String("filename", filename),
			slog.String("error", err.Error()))
		return nil, err
	}

	var ds *Dataset
	switch format {
	case FormatCSV:
		ds, err = readCSV(r)
	case FormatExcel:
		ds, err = readWorkbook(r)
	}
	if err != nil {
		return nil, &ParseError{Filename: filename, Format: format, Err: err}
	}

	l.logger.DebugContext(ctx, "file loaded",
		slog.String("filename", filename),
		slog.String("format", string(format)),
		slog.Int("rows", ds.Len()),
		slog.Int("columns", ds.Width()))

	return ds, nil
}

// readCSV parses delimited text. The first record is the header, empty
// cells and missing tokens are null, and a column is numeric when all its
// other cells parse as numbers.
func readCSV(r io.Reader) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("no header row")
	}

	header := headerNames(records[0])
	raw := make([][]string, len(header))
	for _, record := range records[1:] {
		for i := range header {
			cell := ""
			if i < len(record) {
				cell = record[i]
			}
			raw[i] = append(raw[i], cell)
		}
	}

	columns := make([]*Column, len(header))
	for i, name := range header {
		columns[i] = csvColumn(name, raw[i])
	}
	return NewDataset(columns...), nil
}

func csvColumn(name string, cells []string) *Column {
	values := make([]Value, len(cells))
	numeric := true
	for i, cell := range cells {
		if isMissingToken(cell) {
			continue
		}
		f, ok := parseNumber(cell)
		if !ok {
			numeric = false
			break
		}
		values[i] = Number(f)
	}

	if !numeric {
		for i, cell := range cells {
			if isMissingToken(cell) {
				values[i] = Null()
			} else {
				values[i] = Text(cell)
			}
		}
		return &Column{Name: name, Kind: KindText, Values: values}
	}
	return &Column{Name: name, Kind: KindNumeric, Values: values}
}

// missingTokens are the cell texts read as null on load. They match
// exactly, so "NONE" or " NA" stay text.
var missingTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

func isMissingToken(cell string) bool {
	_, ok := missingTokens[cell]
	return ok
}

// headerNames fills blank headers with positional names and suffixes
// repeated headers with their occurrence count.
func headerNames(cells []string) []string {
	names := make([]string, len(cells))
	seen := make(map[string]int, len(cells))
	for i, cell := range cells {
		name := cell
		if strings.TrimSpace(name) == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n)
		} else {
			seen[name] = 1
		}
		names[i] = name
	}
	return names
}

// readWorkbook parses the first worksheet of a workbook
func readWorkbook(r io.Reader) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	header := headerNames(rows[0])
	styles := newDateStyleCache(f)
	columns := make([]*Column, len(header))
	for i, name := range header {
		columns[i] = &Column{Name: name, Values: make([]Value, 0, len(rows)-1)}
	}

	for row := 1; row < len(rows); row++ {
		for c := range header {
			raw := ""
			if c < len(rows[row]) {
				raw = rows[row][c]
			}
			columns[c].Values = append(columns[c].Values, workbookCell(f, sheet, styles, c, row, raw))
		}
	}

	for _, col := range columns {
		col.Kind = inferKind(col.Values)
	}
	return NewDataset(columns...), nil
}

// workbookCell types one raw cell value using the cell type and number format
func workbookCell(f *excelize.File, sheet string, styles *dateStyleCache, col, row int, raw string) Value {
	if isMissingToken(raw) {
		return Null()
	}
	axis, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return Text(raw)
	}

	cellType, err := f.GetCellType(sheet, axis)
	if err != nil {
		return Text(raw)
	}
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeError:
		return Text(raw)
	case excelize.CellTypeDate:
		if t, ok := parseDateText(raw); ok {
			return Date(t)
		}
		return Text(raw)
	}

	num, ok := parseNumber(raw)
	if !ok {
		return Text(raw)
	}
	if cellType != excelize.CellTypeBool && styles.isDate(sheet, axis) {
		if t, err := excelize.ExcelDateToTime(num, false); err == nil {
			return Date(t)
		}
	}
	return Number(num)
}
