package dataprocessing

import (
	"fmt"
	"io"
	"time"
)

// RunSummary condenses a pipeline result for logs and the CLI evaluation block
type RunSummary struct {
	RunID          string             `json:"run_id"`
	Filename       string             `json:"filename"`
	Format         Format             `json:"format"`
	Duration       time.Duration      `json:"duration_ns"`
	Rows           int                `json:"rows"`
	Columns        int                `json:"columns"`
	Temporal       []string           `json:"temporal"`
	Financial      []string           `json:"financial"`
	Categorical    []string           `json:"categorical"`
	Identity       []string           `json:"identity"`
	Derivation     *RevenueDerivation `json:"derivation,omitempty"`
	CategoryColumn string             `json:"category_column,omitempty"`
	MetricColumn   string             `json:"metric_column,omitempty"`
	TopPerformers  *TopPerformers     `json:"-"`
}

// Summarize builds a RunSummary from a completed result
func Summarize(r *Result) RunSummary {
	s := RunSummary{
		RunID:    r.Run.RunID,
		Filename: r.Run.Filename,
		Format:   r.Run.Format,
		Duration: r.Duration,
		Rows:     r.RowCount(),
	}
	if ds := r.Dataset(); ds != nil {
		s.Columns = ds.Width()
	}
	if r.Cleaned != nil {
		s.Derivation = r.Cleaned.Derivation
	}
	if r.Classification != nil {
		classes := r.Classification.Classes
		s.Temporal = classes.Temporal
		s.Financial = classes.Financial
		s.Categorical = classes.Categorical
		s.Identity = classes.Identity
	}
	if r.Insights != nil && r.Insights.TopPerformers != nil {
		s.TopPerformers = r.Insights.TopPerformers
		s.CategoryColumn = r.Insights.TopPerformers.CategoryColumn
		s.MetricColumn = r.Insights.TopPerformers.MetricColumn
	}
	return s
}

// WriteEvaluation prints the human readable evaluation block
func (s RunSummary) WriteEvaluation(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"\n[EVALUATION]\n- Time to Process: %.4fs\n- Identified %d Financial columns: %q\n- Identified %d Categories: %q\n",
		s.Duration.Seconds(),
		len(s.Financial), s.Financial,
		len(s.Categorical), s.Categorical,
	)
	if err != nil {
		return err
	}
	if s.Derivation != nil {
		if _, err := fmt.Fprintf(w, "- Calculated %q from %s * %s\n",
			CalculatedRevenueColumn, s.Derivation.PriceColumn, s.Derivation.QuantityColumn); err != nil {
			return err
		}
	}

	if s.TopPerformers == nil {
		return nil
	}
	_, err = fmt.Fprintf(w, "\n[INSIGHTS PREVIEW]\nTop Grouping (%s) by (%s):\n%s\n",
		s.CategoryColumn, s.MetricColumn, s.TopPerformers)
	return err
}
