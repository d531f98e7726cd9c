package dataprocessing

import (
	"context"
	"log/slog"
	"strings"

	"sheetpulse/pkg/contracts/domain"
)

// CategoricalRatio is the distinct/row ratio below which a textual column is categorical
const CategoricalRatio = 0.2

// Rule assigns Class to every column Match accepts
type Rule struct {
	Class string
	Match func(col *Column, rows int) bool
}

// DefaultRules is the classification table in priority order
var DefaultRules = []Rule{
	{Class: domain.ClassIdentity, Match: isIdentity},
	{Class: domain.ClassTemporal, Match: nameContains("date", "time", "year", "month")},
	{Class: domain.ClassFinancial, Match: nameContains("revenue", "sales", "price", "profit", "amount")},
	{Class: domain.ClassCategorical, Match: isCategorical},
}

func isIdentity(col *Column, _ int) bool {
	name := strings.ToLower(col.Name)
	return containsAny(name, []string{"id", "sku", "code"}) && !strings.Contains(name, "customer")
}

func isCategorical(col *Column, rows int) bool {
	return col.Kind == KindText && float64(col.Distinct()) < float64(rows)*CategoricalRatio
}

func nameContains(keywords ...string) func(*Column, int) bool {
	return func(col *Column, _ int) bool {
		return containsAny(strings.ToLower(col.Name), keywords)
	}
}

// Classification is the output of the classification stage. Dataset is the
// cleaned data with temporal columns retyped to dates.
type Classification struct {
	Dataset *Dataset
	Classes domain.ColumnClasses
}

// Classifier assigns semantic classes to columns
type Classifier struct {
	rules  []Rule
	logger *slog.Logger
}

// NewClassifier creates a classifier using DefaultRules
func NewClassifier(logger *slog.Logger) *Classifier {
	return NewClassifierWithRules(DefaultRules, logger)
}

// NewClassifierWithRules creates a classifier with a custom rule table
func NewClassifierWithRules(rules []Rule, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		rules:  rules,
		logger: logger.With(slog.String("component", "classifier")),
	}
}

// EvaluationOrder returns the column names in the order they are classified:
// dataset order with calculated_revenue moved to the front.
func EvaluationOrder(ds *Dataset) []string {
	names := ds.Names()
	for i, name := range names {
		if name == CalculatedRevenueColumn {
			order := make([]string, 0, len(names))
			order = append(order, name)
			order = append(order, names[:i]...)
			return append(order, names[i+1:]...)
		}
	}
	return names
}

// Classify evaluates each column against the rule table; the first matching
// rule wins. Temporal columns are converted to dates in the returned dataset.
func (c *Classifier) Classify(ctx context.Context, cleaned *Dataset) *Classification {
	ds := cleaned.Clone()
	classes := domain.NewColumnClasses()
	rows := ds.Len()

	for _, name := range EvaluationOrder(ds) {
		col, _ := ds.Column(name)
		class := c.match(col, rows)
		if class == "" {
			continue
		}
		classes.Add(class, name)
		if class == domain.ClassTemporal {
			ds.SetColumn(coerceDates(col))
		}
	}

	c.logger.DebugContext(ctx, "columns classified",
		slog.Any("temporal", classes.Temporal),
		slog.Any("financial", classes.Financial),
		slog.Any("categorical", classes.Categorical),
		slog.Any("identity", classes.Identity))

	return &Classification{Dataset: ds, Classes: classes}
}

func (c *Classifier) match(col *Column, rows int) string {
	for _, rule := range c.rules {
		if rule.Match(col, rows) {
			return rule.Class
		}
	}
	return ""
}
