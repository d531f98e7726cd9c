package dataprocessing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetpulse/pkg/contracts/domain"
)

func repeatText(name string, n int, cells ...string) *Column {
	values := make([]string, 0, n)
	for i := 0; i < n; i++ {
		values = append(values, cells[i%len(cells)])
	}
	return textColumn(name, values...)
}

func TestDefaultRules_Precedence(t *testing.T) {
	tests := []struct {
		name   string
		column *Column
		want   string
	}{
		{name: "sku", column: numberColumn("sku", 1), want: domain.ClassIdentity},
		{name: "order id", column: numberColumn("order_id", 1), want: domain.ClassIdentity},
		{name: "identity beats temporal", column: numberColumn("date_code", 1), want: domain.ClassIdentity},
		{name: "customer id is not identity", column: numberColumn("customer_id", 1), want: ""},
		{name: "customer code is not identity", column: numberColumn("customer_code", 1), want: ""},
		{name: "date", column: textColumn("order_date", "x"), want: domain.ClassTemporal},
		{name: "temporal beats financial", column: numberColumn("sales_month", 1), want: domain.ClassTemporal},
		{name: "revenue", column: numberColumn("calculated_revenue", 1), want: domain.ClassFinancial},
		{name: "profit", column: numberColumn("gross_profit", 1), want: domain.ClassFinancial},
		{name: "amount", column: numberColumn("amount", 1), want: domain.ClassFinancial},
		{name: "numeric unmatched", column: numberColumn("score", 1), want: ""},
		{name: "substring id matches", column: textColumn("paid", "x"), want: domain.ClassIdentity},
	}

	c := NewClassifier(testLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.match(tt.column, 100))
		})
	}
}

func TestCategoricalThreshold(t *testing.T) {
	tests := []struct {
		name string
		col  *Column
		want bool
	}{
		{name: "two values over eleven rows", col: repeatText("region", 11, "A", "B"), want: true},
		{name: "two values over ten rows is not below 20%", col: repeatText("region", 10, "A", "B"), want: false},
		{name: "two values over two rows", col: repeatText("region", 2, "A", "B"), want: false},
		{name: "numeric column", col: numberColumn("region", 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isCategorical(tt.col, len(tt.col.Values)))
		})
	}
}

func TestEvaluationOrder(t *testing.T) {
	ds := NewDataset(
		numberColumn("price", 1),
		numberColumn("qty", 1),
		numberColumn("calculated_revenue", 1),
	)
	assert.Equal(t, []string{"calculated_revenue", "price", "qty"}, EvaluationOrder(ds))

	plain := NewDataset(numberColumn("a", 1), numberColumn("b", 1))
	assert.Equal(t, []string{"a", "b"}, EvaluationOrder(plain))
}

func TestClassifier_Classify(t *testing.T) {
	ds := NewDataset(
		repeatText("order_date", 12, "03/04/2024", "garbage", "2024-05-20"),
		repeatText("product_category", 12, "A", "B"),
		numberColumn("unit_price", 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12),
		numberColumn("customer_id", 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12),
		numberColumn("sku", 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12),
		numberColumn("calculated_revenue", 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12),
	)

	result := NewClassifier(testLogger()).Classify(context.Background(), ds)

	assert.Equal(t, []string{"order_date"}, result.Classes.Temporal)
	assert.Equal(t, []string{"calculated_revenue", "unit_price"}, result.Classes.Financial)
	assert.Equal(t, []string{"product_category"}, result.Classes.Categorical)
	assert.Equal(t, []string{"sku"}, result.Classes.Identity)
	assert.Empty(t, result.Classes.ClassOf("customer_id"))

	dates, _ := result.Dataset.Column("order_date")
	assert.Equal(t, KindDate, dates.Kind)
	first, ok := dates.Values[0].Time()
	require.True(t, ok)
	assert.Equal(t, time.March, first.Month(), "ambiguous dates are read month first")
	assert.Equal(t, 4, first.Day())
	assert.True(t, dates.Values[1].IsNull(), "unparseable dates become null")
	third, ok := dates.Values[2].Time()
	require.True(t, ok)
	assert.Equal(t, time.May, third.Month())

	original, _ := ds.Column("order_date")
	assert.Equal(t, KindText, original.Kind, "the cleaned dataset is not modified")
}

func TestClassifier_EmptyListsNotNil(t *testing.T) {
	result := NewClassifier(testLogger()).Classify(context.Background(), NewDataset(numberColumn("score", 1)))

	assert.NotNil(t, result.Classes.Temporal)
	assert.NotNil(t, result.Classes.Financial)
	assert.NotNil(t, result.Classes.Categorical)
	assert.NotNil(t, result.Classes.Identity)
}

func TestClassifier_CustomRules(t *testing.T) {
	rules := []Rule{
		{Class: domain.ClassFinancial, Match: nameContains("score")},
	}
	result := NewClassifierWithRules(rules, testLogger()).Classify(context.Background(),
		NewDataset(numberColumn("score", 1), numberColumn("sku", 1)))

	assert.Equal(t, []string{"score"}, result.Classes.Financial)
	assert.Empty(t, result.Classes.Identity)
}

func TestToDate(t *testing.T) {
	ref := time.Date(2023, 7, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input Value
		want  time.Time
		null  bool
	}{
		{name: "iso date", input: Text("2023-07-01"), want: time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)},
		{name: "us date", input: Text("07/01/2023"), want: time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)},
		{name: "short us date", input: Text("7/1/23"), want: time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)},
		{name: "month name", input: Text("Jul 1, 2023"), want: time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)},
		{name: "bare year", input: Text("2023"), want: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "year month", input: Text("2023-07"), want: time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)},
		{name: "date kept", input: Date(ref), want: ref},
		{name: "number as epoch nanoseconds", input: Number(float64(ref.UnixNano())), want: ref},
		{name: "garbage", input: Text("soon"), null: true},
		{name: "null", input: Null(), null: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toDate(tt.input)
			if tt.null {
				assert.True(t, got.IsNull())
				return
			}
			at, ok := got.Time()
			require.True(t, ok)
			assert.True(t, tt.want.Equal(at), "want %s got %s", tt.want, at)
		})
	}
}

func TestIsDateFormatCode(t *testing.T) {
	assert.True(t, isDateFormatCode("yyyy-mm-dd"))
	assert.True(t, isDateFormatCode(`[$-409]mmm d, yyyy;@`))
	assert.True(t, isDateFormatCode("h:mm AM/PM"))
	assert.False(t, isDateFormatCode("#,##0.00"))
	assert.False(t, isDateFormatCode(`0.00 "days"`))
	assert.False(t, isDateFormatCode("General"))
	assert.False(t, isDateFormatCode(`[Red]0.00`))
}
