package analysis

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Insight kinds, in the order facts are emitted.
const (
	InsightTopComplexity = "top_complexity"
	InsightTopUsage      = "top_usage"
	InsightCostSkew      = "cost_skew"
	InsightAverageCost   = "average_cost"
	InsightCostliestPart = "costliest_component"
)

// Insight is one deterministic, metric-backed summary fact.
type Insight struct {
	Kind    string
	Message string

	// Value is the backing metric rendered as text.
	Value string
}

// GenerateInsights derives the insight list from the finished stage outputs.
// costs may be nil when the cost stage had too little data; facts whose
// inputs are unavailable are skipped, never fabricated. Zero products
// yields an empty, non-nil list.
func GenerateInsights(products *ProductReport, components *ComponentReport, costs *CostSummary) []Insight {
	insights := []Insight{}
	if products == nil || len(products.Products) == 0 {
		return insights
	}

	top := products.Products[0]
	insights = append(insights, Insight{
		Kind:    InsightTopComplexity,
		Message: fmt.Sprintf("Product %s has the highest complexity score (%.2f)", top.ProductID, top.ComplexityScore),
		Value:   fmt.Sprintf("%.2f", top.ComplexityScore),
	})

	if components != nil && len(components.Components) > 0 {
		c := components.Components[0]
		insights = append(insights, Insight{
			Kind:    InsightTopUsage,
			Message: fmt.Sprintf("Component %s is used in %d of %d products", c.ComponentID, c.UsageCount, len(products.Products)),
			Value:   fmt.Sprintf("%d", c.UsageCount),
		})
	}

	if costs != nil {
		skew := skewDirection(costs.AverageCost, costs.MedianCost)
		insights = append(insights, Insight{
			Kind: InsightCostSkew,
			Message: fmt.Sprintf("Product costs are %s (mean %s, median %s)",
				skew, costs.AverageCost.StringFixed(2), costs.MedianCost.StringFixed(2)),
			Value: skew,
		})
	}

	insights = append(insights, Insight{
		Kind:    InsightAverageCost,
		Message: fmt.Sprintf("Average product cost is %s", products.AverageCost.StringFixed(2)),
		Value:   products.AverageCost.StringFixed(2),
	})

	if components != nil && len(components.Components) > 0 {
		c := costliestComponent(components.Components)
		insights = append(insights, Insight{
			Kind:    InsightCostliestPart,
			Message: fmt.Sprintf("Component %s carries the highest total cost (%s)", c.ComponentID, c.TotalCost.StringFixed(2)),
			Value:   c.TotalCost.StringFixed(2),
		})
	}

	return insights
}

func skewDirection(mean, median decimal.Decimal) string {
	switch mean.Cmp(median) {
	case 1:
		return "right-skewed"
	case -1:
		return "left-skewed"
	default:
		return "symmetric"
	}
}

func costliestComponent(components []ComponentMetrics) ComponentMetrics {
	best := components[0]
	for _, c := range components[1:] {
		if c.TotalCost.GreaterThan(best.TotalCost) ||
			(c.TotalCost.Equal(best.TotalCost) && c.ComponentID < best.ComponentID) {
			best = c
		}
	}
	return best
}
