package dataprocessing

import (
	"context"
	"log/slog"
	"strings"
)

// CalculatedRevenueColumn is the name of the derived price x quantity column
const CalculatedRevenueColumn = "calculated_revenue"

// UnknownLabel fills textual gaps left after cleaning
const UnknownLabel = "Unknown"

var (
	// sentinelTokens are exact cell values treated as missing
	sentinelTokens = map[string]struct{}{
		"N/A":  {},
		"n/a":  {},
		"-":    {},
		"None": {},
		"none": {},
	}

	// scrubKeywords mark columns coerced to numbers
	scrubKeywords = []string{"price", "sales", "revenue", "quantity", "amount", "cost"}

	priceKeywords    = []string{"price", "unit_price"}
	quantityKeywords = []string{"quantity", "qty"}

	currencyStripper = strings.NewReplacer("$", "", ",", "", " ", "")
)

// RevenueDerivation records which columns produced calculated_revenue
type RevenueDerivation struct {
	PriceColumn    string `json:"price_column"`
	QuantityColumn string `json:"quantity_column"`
}

// CleanResult is the output of the cleaning stage
type CleanResult struct {
	Dataset    *Dataset
	Derivation *RevenueDerivation
}

// Cleaner normalizes headers, strips sentinel tokens, coerces monetary and
// quantity columns to numbers, derives revenue and fills textual gaps.
type Cleaner struct {
	logger *slog.Logger
}

// NewCleaner creates a cleaner
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{logger: logger.With(slog.String("component", "cleaner"))}
}

// Clean runs every cleaning step on a copy of raw
func (c *Cleaner) Clean(ctx context.Context, raw *Dataset) *CleanResult {
	ds := raw.Clone()

	ds.Rename(NormalizeHeader)
	ReplaceSentinels(ds)
	scrubbed := ScrubNumeric(ds)
	derivation := DeriveRevenue(ds)
	FillTextGaps(ds)

	if derivation != nil {
		c.logger.InfoContext(ctx, "derived metric created",
			slog.String("column", CalculatedRevenueColumn),
			slog.String("price_column", derivation.PriceColumn),
			slog.String("quantity_column", derivation.QuantityColumn))
	}
	c.logger.DebugContext(ctx, "dataset cleaned",
		slog.Int("rows", ds.Len()),
		slog.Int("columns", ds.Width()),
		slog.Any("scrubbed_columns", scrubbed))

	return &CleanResult{Dataset: ds, Derivation: derivation}
}

// NormalizeHeader trims, lowercases, turns spaces into underscores and
// drops parentheses. Applying it twice gives the same result.
func NormalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "(", "")
	return strings.ReplaceAll(name, ")", "")
}

// ReplaceSentinels nulls cells whose text exactly matches a sentinel token
func ReplaceSentinels(ds *Dataset) {
	for _, col := range ds.Columns() {
		for i, v := range col.Values {
			if s, ok := v.Text(); ok {
				if _, sentinel := sentinelTokens[s]; sentinel {
					col.Values[i] = Null()
				}
			}
		}
	}
}

// ScrubNumeric coerces keyword columns to numbers. Currency symbols,
// thousands separators and spaces are stripped from text cells, and any cell
// that still fails to parse becomes 0. It returns the scrubbed column names.
func ScrubNumeric(ds *Dataset) []string {
	var scrubbed []string
	for _, col := range ds.Columns() {
		if !containsAny(col.Name, scrubKeywords) {
			continue
		}
		textual := col.Kind == KindText
		for i, v := range col.Values {
			col.Values[i] = Number(scrubCell(v, textual))
		}
		col.Kind = KindNumeric
		scrubbed = append(scrubbed, col.Name)
	}
	return scrubbed
}

func scrubCell(v Value, textual bool) float64 {
	switch v.typ {
	case valueNumber:
		return v.num
	case valueDate:
		return float64(v.at.UnixNano())
	case valueText:
		s := v.str
		if textual {
			s = currencyStripper.Replace(s)
		}
		if f, ok := parseNumber(s); ok {
			return f
		}
	}
	return 0
}

// DeriveRevenue appends calculated_revenue as the product of the first
// price-like and first quantity-like columns. A row where either operand is
// not a number yields null. Nothing is added when either column is missing.
func DeriveRevenue(ds *Dataset) *RevenueDerivation {
	price := firstColumnMatching(ds, priceKeywords)
	qty := firstColumnMatching(ds, quantityKeywords)
	if price == nil || qty == nil {
		return nil
	}

	values := make([]Value, ds.Len())
	for i := range values {
		p, pok := price.Values[i].Number()
		q, qok := qty.Values[i].Number()
		if pok && qok {
			values[i] = Number(p * q)
		}
	}
	ds.SetColumn(&Column{Name: CalculatedRevenueColumn, Kind: KindNumeric, Values: values})

	return &RevenueDerivation{PriceColumn: price.Name, QuantityColumn: qty.Name}
}

// FillTextGaps replaces nulls in textual columns with UnknownLabel
func FillTextGaps(ds *Dataset) {
	for _, col := range ds.Columns() {
		if col.Kind != KindText {
			continue
		}
		for i, v := range col.Values {
			if v.IsNull() {
				col.Values[i] = Text(UnknownLabel)
			}
		}
	}
}

func firstColumnMatching(ds *Dataset, keywords []string) *Column {
	for _, col := range ds.Columns() {
		if containsAny(col.Name, keywords) {
			return col
		}
	}
	return nil
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
