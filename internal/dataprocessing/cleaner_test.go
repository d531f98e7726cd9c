package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textColumn(name string, cells ...string) *Column {
	values := make([]Value, len(cells))
	for i, c := range cells {
		if c == "" {
			values[i] = Null()
			continue
		}
		values[i] = Text(c)
	}
	return &Column{Name: name, Kind: KindText, Values: values}
}

func numberColumn(name string, cells ...float64) *Column {
	values := make([]Value, len(cells))
	for i, c := range cells {
		values[i] = Number(c)
	}
	return &Column{Name: name, Kind: KindNumeric, Values: values}
}

func numbersOf(t *testing.T, col *Column) []float64 {
	t.Helper()
	out := make([]float64, len(col.Values))
	for i, v := range col.Values {
		n, ok := v.Number()
		require.True(t, ok, "cell %d of %s is not a number", i, col.Name)
		out[i] = n
	}
	return out
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Unit Price ", "unit_price"},
		{"Revenue (USD)", "revenue_usd"},
		{"Order Date", "order_date"},
		{"already_normal", "already_normal"},
		{"Qty((x))", "qtyx"},
		{"MIXED Case Name", "mixed_case_name"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := NormalizeHeader(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizeHeader(got), "normalization must be idempotent")
		})
	}
}

func TestReplaceSentinels(t *testing.T) {
	ds := NewDataset(textColumn("notes", "N/A", "n/a", "-", "None", "none", "NA", "null", "NaN", "ok"))

	ReplaceSentinels(ds)

	col, _ := ds.Column("notes")
	for i := 0; i < 5; i++ {
		assert.True(t, col.Values[i].IsNull(), "token %d should be null", i)
	}
	for i, want := range []string{"NA", "null", "NaN", "ok"} {
		got, ok := col.Values[5+i].Text()
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, KindText, col.Kind)
}

func TestScrubNumeric(t *testing.T) {
	ds := NewDataset(
		textColumn("unit_price", "$1,234.50", " 12 ", ""),
		textColumn("cost", "n/a", "??", "$ 3"),
		numberColumn("quantity", 1, 2, 3),
		textColumn("region", "North", "South", "East"),
	)

	ReplaceSentinels(ds)
	scrubbed := ScrubNumeric(ds)

	assert.Equal(t, []string{"unit_price", "cost", "quantity"}, scrubbed)

	price, _ := ds.Column("unit_price")
	assert.Equal(t, KindNumeric, price.Kind)
	assert.Equal(t, []float64{1234.5, 12, 0}, numbersOf(t, price))

	cost, _ := ds.Column("cost")
	assert.Equal(t, []float64{0, 0, 3}, numbersOf(t, cost))

	qty, _ := ds.Column("quantity")
	assert.Equal(t, []float64{1, 2, 3}, numbersOf(t, qty))

	region, _ := ds.Column("region")
	assert.Equal(t, KindText, region.Kind, "non keyword columns are untouched")
}

func TestScrubNumeric_UnparseableBecomesZero(t *testing.T) {
	ds := NewDataset(textColumn("cost", "n/a", "??"))

	ReplaceSentinels(ds)
	ScrubNumeric(ds)

	cost, _ := ds.Column("cost")
	assert.Equal(t, []float64{0, 0}, numbersOf(t, cost))
}

func TestDeriveRevenue(t *testing.T) {
	tests := []struct {
		name       string
		columns    []*Column
		wantDerive *RevenueDerivation
		wantValues []float64
	}{
		{
			name: "price and qty",
			columns: []*Column{
				numberColumn("unit_price", 10, 5),
				numberColumn("qty", 2, 3),
			},
			wantDerive: &RevenueDerivation{PriceColumn: "unit_price", QuantityColumn: "qty"},
			wantValues: []float64{20, 15},
		},
		{
			name: "first matching columns win",
			columns: []*Column{
				numberColumn("quantity_ordered", 1, 1),
				numberColumn("list_price", 7, 8),
				numberColumn("sale_price", 100, 100),
				numberColumn("qty_shipped", 50, 50),
			},
			wantDerive: &RevenueDerivation{PriceColumn: "list_price", QuantityColumn: "quantity_ordered"},
			wantValues: []float64{7, 8},
		},
		{
			name:    "no quantity column",
			columns: []*Column{numberColumn("price", 1)},
		},
		{
			name:    "no price column",
			columns: []*Column{numberColumn("qty", 1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := NewDataset(tt.columns...)
			width := ds.Width()

			got := DeriveRevenue(ds)

			assert.Equal(t, tt.wantDerive, got)
			col, ok := ds.Column(CalculatedRevenueColumn)
			if tt.wantDerive == nil {
				assert.False(t, ok)
				assert.Equal(t, width, ds.Width())
				return
			}
			require.True(t, ok)
			assert.Equal(t, width+1, ds.Width())
			assert.Equal(t, CalculatedRevenueColumn, ds.Names()[ds.Width()-1], "derived column is appended")
			assert.Equal(t, tt.wantValues, numbersOf(t, col))
		})
	}
}

func TestDeriveRevenue_OverwritesExisting(t *testing.T) {
	ds := NewDataset(
		numberColumn("calculated_revenue", 1, 1),
		numberColumn("price", 3, 4),
		numberColumn("qty", 2, 2),
	)

	DeriveRevenue(ds)

	assert.Equal(t, []string{"calculated_revenue", "price", "qty"}, ds.Names())
	col, _ := ds.Column(CalculatedRevenueColumn)
	assert.Equal(t, []float64{6, 8}, numbersOf(t, col))
}

func TestDeriveRevenue_NonNumericOperandIsNull(t *testing.T) {
	ds := NewDataset(
		numberColumn("price", 3, 4),
		textColumn("qty", "2", "lots"),
	)

	DeriveRevenue(ds)

	col, _ := ds.Column(CalculatedRevenueColumn)
	assert.True(t, col.Values[0].IsNull())
	assert.True(t, col.Values[1].IsNull())
}

func TestFillTextGaps(t *testing.T) {
	numbers := numberColumn("score", 1, 2)
	numbers.Values[1] = Null()
	ds := NewDataset(textColumn("region", "North", ""), numbers)

	FillTextGaps(ds)

	region, _ := ds.Column("region")
	s, _ := region.Values[1].Text()
	assert.Equal(t, UnknownLabel, s)

	score, _ := ds.Column("score")
	assert.True(t, score.Values[1].IsNull(), "numeric columns keep their nulls")
}

func TestCleaner_Clean(t *testing.T) {
	raw := NewDataset(
		textColumn("Product Category", "A", "B", "N/A"),
		textColumn("Unit Price", "$10", "5", "-"),
		numberColumn("Qty", 2, 3, 4),
	)

	result := NewCleaner(testLogger()).Clean(context.Background(), raw)

	require.NotNil(t, result.Derivation)
	assert.Equal(t, "unit_price", result.Derivation.PriceColumn)
	assert.Equal(t, "qty", result.Derivation.QuantityColumn)

	ds := result.Dataset
	assert.Equal(t, []string{"product_category", "unit_price", "qty", "calculated_revenue"}, ds.Names())

	revenue, _ := ds.Column(CalculatedRevenueColumn)
	assert.Equal(t, []float64{20, 15, 0}, numbersOf(t, revenue))

	category, _ := ds.Column("product_category")
	s, _ := category.Values[2].Text()
	assert.Equal(t, UnknownLabel, s)

	// The loaded dataset is left untouched.
	assert.Equal(t, []string{"Product Category", "Unit Price", "Qty"}, raw.Names())
	rawPrice, _ := raw.Column("Unit Price")
	s, _ = rawPrice.Values[0].Text()
	assert.Equal(t, "$10", s)
}
