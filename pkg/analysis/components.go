package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/bomlens/bomlens/pkg/bom"
)

// ComponentMetrics is the cross-product view of one component.
type ComponentMetrics struct {
	ComponentID string
	Name        string

	// UsageCount is the number of distinct products referencing the
	// component.
	UsageCount int

	TotalQuantity int

	// AverageUnitCost is a straight per-line mean, not quantity-weighted:
	// BOM lines may price the same part differently across suppliers.
	AverageUnitCost decimal.Decimal

	TotalCost decimal.Decimal
}

// CostQuantityPoint is one scatter point: a component's total cost against
// its total quantity. One point per component, no binning.
type CostQuantityPoint struct {
	ComponentID   string
	TotalCost     decimal.Decimal
	TotalQuantity int
}

// ComponentReport holds the ranked component table and the scatter data.
type ComponentReport struct {
	// Components is ranked by usage count descending, ties broken by total
	// quantity descending, then component id.
	Components []ComponentMetrics

	// Points follows the same order as Components.
	Points []CostQuantityPoint
}

// CalculateComponents aggregates component usage across all products.
// An empty batch yields an empty report, not an error: the component table
// has no minimum-size requirement.
func CalculateComponents(batch *bom.Batch) *ComponentReport {
	type acc struct {
		name     string
		products map[string]struct{}
		quantity int
		costSum  decimal.Decimal
		lines    int
		total    decimal.Decimal
	}

	byID := make(map[string]*acc)
	var order []string
	for _, r := range batch.Records {
		a, ok := byID[r.ComponentID]
		if !ok {
			a = &acc{name: r.ComponentName, products: make(map[string]struct{})}
			byID[r.ComponentID] = a
			order = append(order, r.ComponentID)
		}
		a.products[r.ProductID] = struct{}{}
		a.quantity += r.Quantity
		a.costSum = a.costSum.Add(r.UnitCost)
		a.lines++
		a.total = a.total.Add(r.LineCost())
	}

	report := &ComponentReport{}
	for _, id := range order {
		a := byID[id]
		report.Components = append(report.Components, ComponentMetrics{
			ComponentID:     id,
			Name:            a.name,
			UsageCount:      len(a.products),
			TotalQuantity:   a.quantity,
			AverageUnitCost: a.costSum.Div(decimal.NewFromInt(int64(a.lines))),
			TotalCost:       a.total,
		})
	}

	sort.SliceStable(report.Components, func(i, j int) bool {
		a, b := report.Components[i], report.Components[j]
		if a.UsageCount != b.UsageCount {
			return a.UsageCount > b.UsageCount
		}
		if a.TotalQuantity != b.TotalQuantity {
			return a.TotalQuantity > b.TotalQuantity
		}
		return a.ComponentID < b.ComponentID
	})

	for _, c := range report.Components {
		report.Points = append(report.Points, CostQuantityPoint{
			ComponentID:   c.ComponentID,
			TotalCost:     c.TotalCost,
			TotalQuantity: c.TotalQuantity,
		})
	}
	return report
}
