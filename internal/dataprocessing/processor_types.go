package dataprocessing

import (
	"time"
)

// Stage names used in logs, spans and metrics
const (
	StageLoad     = "load"
	StageClean    = "clean"
	StageClassify = "classify"
	StageAnalyze  = "analyze"
)

// RunContext is the record threaded through every stage of one run
type RunContext struct {
	RunID     string
	Filename  string
	Format    Format
	StartedAt time.Time
}

// Result is everything a run produced. Each field is the value returned by
// one stage; later stages never modify the values of earlier ones.
type Result struct {
	Run            RunContext
	Raw            *Dataset
	Cleaned        *CleanResult
	Classification *Classification
	Insights       *Insights
	Duration       time.Duration
}

// Dataset returns the final working dataset (cleaned, dates coerced)
func (r *Result) Dataset() *Dataset {
	if r.Classification != nil {
		return r.Classification.Dataset
	}
	if r.Cleaned != nil {
		return r.Cleaned.Dataset
	}
	return r.Raw
}

// RowCount returns the number of rows in the cleaned dataset
func (r *Result) RowCount() int {
	if ds := r.Dataset(); ds != nil {
		return ds.Len()
	}
	return 0
}
