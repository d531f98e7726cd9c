package exporter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	"sheetpulse/internal/dataprocessing"
	"sheetpulse/pkg/contracts/domain"
)

// ReportIndent is the indentation used for serialized reports
const ReportIndent = "    "

// BuildReport assembles the chart-ready report for a completed run.
// Charts whose insight was not computed are left out.
func BuildReport(result *dataprocessing.Result) *domain.Report {
	report := &domain.Report{
		Metadata: domain.ReportMetadata{
			Filename:          result.Run.Filename,
			ColumnsClassified: domain.NewColumnClasses(),
			RowCount:          result.RowCount(),
		},
	}
	if result.Classification != nil {
		report.Metadata.ColumnsClassified = result.Classification.Classes
	}

	if result.Insights == nil {
		return report
	}
	if top := result.Insights.TopPerformers; top != nil {
		report.Charts.BarChart = chartPayload(top.Points, fmt.Sprintf(domain.BarChartTitleFormat, TitleCase(top.CategoryColumn)))
	}
	if trend := result.Insights.MonthlyTrend; trend != nil {
		report.Charts.LineChart = chartPayload(trend.Points, domain.LineChartTitle)
	}
	return report
}

func chartPayload(points []dataprocessing.Point, title string) *domain.ChartPayload {
	payload := &domain.ChartPayload{
		Labels: make([]interface{}, len(points)),
		Values: make([]float64, len(points)),
		Title:  title,
	}
	for i, p := range points {
		payload.Labels[i] = p.Label.Interface()
		payload.Values[i] = p.Value
	}
	return payload
}

// TitleCase turns a normalized column name into a display name:
// underscores become spaces and each word is capitalized.
func TitleCase(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	prevLetter := false
	for _, r := range strings.ReplaceAll(name, "_", " ") {
		switch {
		case !unicode.IsLetter(r):
			b.WriteRune(r)
			prevLetter = false
		case prevLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(unicode.ToTitle(r))
			prevLetter = true
		}
	}
	return b.String()
}

// WriteReport writes a report as indented JSON followed by a newline
func WriteReport(w io.Writer, report *domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", ReportIndent)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
