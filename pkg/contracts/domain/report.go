package domain

// Semantic column classes assigned by the classifier.
const (
	ClassIdentity    = "identity"
	ClassTemporal    = "temporal"
	ClassFinancial   = "financial"
	ClassCategorical = "categorical"
)

// Fixed chart titles
const (
	BarChartTitleFormat = "Top %s by Sales"
	LineChartTitle      = "Revenue Growth Over Time"
)

// Report is the chart-ready document produced for one analyzed upload
type Report struct {
	Metadata ReportMetadata `json:"metadata"`
	Charts   ReportCharts   `json:"charts"`
}

// ReportMetadata describes the analyzed dataset
type ReportMetadata struct {
	Filename          string        `json:"filename" validate:"required"`
	ColumnsClassified ColumnClasses `json:"columns_classified"`
	RowCount          int           `json:"row_count" validate:"gte=0"`
}

// ColumnClasses maps each semantic class to the ordered column names it holds.
// Lists are never nil so they always encode as JSON arrays.
type ColumnClasses struct {
	Temporal    []string `json:"temporal"`
	Financial   []string `json:"financial"`
	Categorical []string `json:"categorical"`
	Identity    []string `json:"identity"`
}

// NewColumnClasses returns a classification with every list empty
func NewColumnClasses() ColumnClasses {
	return ColumnClasses{
		Temporal:    []string{},
		Financial:   []string{},
		Categorical: []string{},
		Identity:    []string{},
	}
}

// Add appends a column name to the list of the given class.
// Unknown classes are ignored.
func (c *ColumnClasses) Add(class, column string) {
	switch class {
	case ClassTemporal:
		c.Temporal = append(c.Temporal, column)
	case ClassFinancial:
		c.Financial = append(c.Financial, column)
	case ClassCategorical:
		c.Categorical = append(c.Categorical, column)
	case ClassIdentity:
		c.Identity = append(c.Identity, column)
	}
}

// Of returns the column list of a class
func (c ColumnClasses) Of(class string) []string {
	switch class {
	case ClassTemporal:
		return c.Temporal
	case ClassFinancial:
		return c.Financial
	case ClassCategorical:
		return c.Categorical
	case ClassIdentity:
		return c.Identity
	}
	return nil
}

// ClassOf returns the class a column was assigned to, or "" when unclassified
func (c ColumnClasses) ClassOf(column string) string {
	for _, class := range []string{ClassIdentity, ClassTemporal, ClassFinancial, ClassCategorical} {
		for _, name := range c.Of(class) {
			if name == column {
				return class
			}
		}
	}
	return ""
}

// ReportCharts holds the optional chart payloads
type ReportCharts struct {
	BarChart  *ChartPayload `json:"bar_chart,omitempty"`
	LineChart *ChartPayload `json:"line_chart,omitempty"`
}

// ChartPayload is a labelled series ready for a chart widget.
// Labels keep the JSON type of the source cells (string, number).
type ChartPayload struct {
	Labels []interface{} `json:"labels"`
	Values []float64     `json:"values"`
	Title  string        `json:"title"`
}
