// Package analysis computes per-product, per-component and cross-product
// cost metrics over a normalized BOM batch and packages them into a single
// immutable result.
package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/bomlens/bomlens/pkg/bom"
)

// ProductMetrics is the computed view of one product.
type ProductMetrics struct {
	ProductID      string
	ComponentCount int

	// Variety is ComponentCount plus the distinct sub-level codes tied to
	// the product's lines. It equals ComponentCount when no sub-component
	// columns are configured.
	Variety int

	TotalCost   decimal.Decimal
	MinQuantity int
	MaxQuantity int

	// ComplexityScore is on a 0-1 scale; see complexityScore.
	ComplexityScore float64
}

// ProductReport holds the ranked product table and the overview mean.
type ProductReport struct {
	// Products is ranked by complexity: score descending, ties broken by
	// component count, then total cost, then product id. The order is
	// stable across runs on the same input.
	Products []ProductMetrics

	AverageCost decimal.Decimal
}

// CalculateProducts computes the per-product metrics table for a batch.
// It returns InsufficientDataError when the batch holds no products.
func CalculateProducts(batch *bom.Batch, cfg Config) (*ProductReport, error) {
	cfg = cfg.withDefaults()

	ids := batch.ProductIDs()
	if len(ids) == 0 {
		return nil, &bom.InsufficientDataError{Metric: "average product cost", Need: 1, Got: 0}
	}

	report := &ProductReport{}
	for _, id := range ids {
		m, err := productMetrics(id, batch.RecordsFor(id))
		if err != nil {
			return nil, err
		}
		report.Products = append(report.Products, m)
	}

	// Complexity needs the batch-wide maxima, so score after the first pass.
	maxCount := 0
	maxCost := decimal.Zero
	for _, m := range report.Products {
		if m.ComponentCount > maxCount {
			maxCount = m.ComponentCount
		}
		if m.TotalCost.GreaterThan(maxCost) {
			maxCost = m.TotalCost
		}
	}
	total := decimal.Zero
	for i := range report.Products {
		report.Products[i].ComplexityScore = complexityScore(report.Products[i], maxCount, maxCost, cfg)
		total = total.Add(report.Products[i].TotalCost)
	}
	report.AverageCost = total.Div(decimal.NewFromInt(int64(len(report.Products))))

	rankProducts(report.Products)
	return report, nil
}

func productMetrics(id string, records []bom.Record) (ProductMetrics, error) {
	if len(records) == 0 {
		return ProductMetrics{}, &bom.EmptyProductError{ProductID: id}
	}

	components := make(map[string]struct{})
	subs := make(map[string]struct{})
	total := decimal.Zero
	minQty, maxQty := records[0].Quantity, records[0].Quantity

	for _, r := range records {
		components[r.ComponentID] = struct{}{}
		for _, code := range r.SubComponents {
			subs[code] = struct{}{}
		}
		total = total.Add(r.LineCost())
		if r.Quantity < minQty {
			minQty = r.Quantity
		}
		if r.Quantity > maxQty {
			maxQty = r.Quantity
		}
	}

	return ProductMetrics{
		ProductID:      id,
		ComponentCount: len(components),
		Variety:        len(components) + len(subs),
		TotalCost:      total,
		MinQuantity:    minQty,
		MaxQuantity:    maxQty,
	}, nil
}

// complexityScore blends part count and relative cost concentration:
//
//	score = CountWeight*(count/maxCount) + CostWeight*(cost/maxCost)
//
// With the default weights (0.6/0.4) the score stays on a 0-1 scale and
// only a product that is both the largest and the most expensive reaches 1.
func complexityScore(m ProductMetrics, maxCount int, maxCost decimal.Decimal, cfg Config) float64 {
	countTerm := float64(m.ComponentCount) / float64(maxCount)

	costTerm := 0.0
	if maxCost.IsPositive() {
		costTerm, _ = m.TotalCost.Div(maxCost).Float64()
	}

	return cfg.CountWeight*countTerm + cfg.CostWeight*costTerm
}

func rankProducts(products []ProductMetrics) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if a.ComplexityScore != b.ComplexityScore {
			return a.ComplexityScore > b.ComplexityScore
		}
		if a.ComponentCount != b.ComponentCount {
			return a.ComponentCount > b.ComponentCount
		}
		if !a.TotalCost.Equal(b.TotalCost) {
			return a.TotalCost.GreaterThan(b.TotalCost)
		}
		return a.ProductID < b.ProductID
	})
}
