package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"sheetpulse/pkg/contracts/domain"
)

// DefaultTopN is the number of groups kept by the top performers insight
const DefaultTopN = 5

// MonthLabelFormat renders a calendar month as YYYY-MM
const MonthLabelFormat = "2006-01"

// Point is one labelled aggregate
type Point struct {
	Label Value
	Value float64
}

// TopPerformers is the metric summed per category, largest first
type TopPerformers struct {
	CategoryColumn string
	MetricColumn   string
	Points         []Point
}

// MonthlyTrend is the metric summed per calendar month, oldest first
type MonthlyTrend struct {
	DateColumn   string
	MetricColumn string
	Points       []Point
}

// Insights holds the optional insight results of a run
type Insights struct {
	TopPerformers *TopPerformers
	MonthlyTrend  *MonthlyTrend
}

// InsightConfig holds configuration options for the InsightEngine
type InsightConfig struct {
	TopN int // Number of categories kept by top performers
}

// DefaultInsightConfig returns the standard insight configuration
func DefaultInsightConfig() InsightConfig {
	return InsightConfig{TopN: DefaultTopN}
}

// InsightEngine computes aggregates over a classified dataset
type InsightEngine struct {
	topN   int
	logger *slog.Logger
}

// NewInsightEngine creates an insight engine
func NewInsightEngine(logger *slog.Logger, config InsightConfig) *InsightEngine {
	if logger == nil {
		logger = slog.Default()
	}
	if config.TopN <= 0 {
		config.TopN = DefaultTopN
	}
	return &InsightEngine{
		topN:   config.TopN,
		logger: logger.With(slog.String("component", "insight_engine")),
	}
}

// Analyze computes every insight whose prerequisite classes are present.
// Missing prerequisites leave the corresponding result nil.
func (e *InsightEngine) Analyze(ctx context.Context, c *Classification) *Insights {
	insights := &Insights{}

	if len(c.Classes.Financial) > 0 && len(c.Classes.Categorical) > 0 {
		insights.TopPerformers = e.TopPerformers(c.Dataset, MainCategory(c.Classes), c.Classes.Financial[0])
	}
	if len(c.Classes.Temporal) > 0 && len(c.Classes.Financial) > 0 {
		insights.MonthlyTrend = e.MonthlyTrend(c.Dataset, c.Classes.Temporal[0], c.Classes.Financial[0])
	}

	e.logger.DebugContext(ctx, "insights computed",
		slog.Bool("top_performers", insights.TopPerformers != nil),
		slog.Bool("monthly_trend", insights.MonthlyTrend != nil))

	return insights
}

// MainCategory picks the first categorical column whose name mentions
// "category", falling back to the first categorical column.
func MainCategory(classes domain.ColumnClasses) string {
	for _, name := range classes.Categorical {
		if strings.Contains(name, "category") {
			return name
		}
	}
	if len(classes.Categorical) == 0 {
		return ""
	}
	return classes.Categorical[0]
}

// TopPerformers groups rows by category, sums the metric and keeps the
// largest groups. Ties keep the order in which groups first appear.
func (e *InsightEngine) TopPerformers(ds *Dataset, category, metric string) *TopPerformers {
	catCol, ok := ds.Column(category)
	if !ok {
		return nil
	}
	metricCol, ok := ds.Column(metric)
	if !ok {
		return nil
	}

	var points []Point
	slots := make(map[valueKey]int)
	for i, label := range catCol.Values {
		if label.IsNull() {
			continue
		}
		k := label.key()
		slot, seen := slots[k]
		if !seen {
			slot = len(points)
			slots[k] = slot
			points = append(points, Point{Label: label})
		}
		if v, ok := metricCol.Values[i].Number(); ok {
			points[slot].Value += v
		}
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Value > points[j].Value
	})
	if len(points) > e.topN {
		points = points[:e.topN]
	}

	return &TopPerformers{CategoryColumn: category, MetricColumn: metric, Points: points}
}

// MonthlyTrend sums the metric per calendar month of the date column.
// Rows without a date are dropped and only months with rows are emitted.
func (e *InsightEngine) MonthlyTrend(ds *Dataset, dateColumn, metric string) *MonthlyTrend {
	dateCol, ok := ds.Column(dateColumn)
	if !ok {
		return nil
	}
	metricCol, ok := ds.Column(metric)
	if !ok {
		return nil
	}

	sums := make(map[time.Time]float64)
	for i, cell := range dateCol.Values {
		t, ok := cell.Time()
		if !ok {
			continue
		}
		month := monthEnd(t)
		v, _ := metricCol.Values[i].Number()
		sums[month] += v
	}

	months := make([]time.Time, 0, len(sums))
	for m := range sums {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	points := make([]Point, len(months))
	for i, m := range months {
		points[i] = Point{Label: Text(m.Format(MonthLabelFormat)), Value: sums[m]}
	}

	return &MonthlyTrend{DateColumn: dateColumn, MetricColumn: metric, Points: points}
}

// monthEnd anchors a time to the last day of its month in its own offset.
// The anchor is in UTC so equal months from different offsets share a key.
func monthEnd(t time.Time) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1)
}

// String renders the points the way the CLI preview prints them
func (tp *TopPerformers) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", tp.CategoryColumn)
	for _, p := range tp.Points {
		fmt.Fprintf(&b, "%-20s %g\n", p.Label.String(), p.Value)
	}
	fmt.Fprintf(&b, "Name: %s", tp.MetricColumn)
	return b.String()
}
