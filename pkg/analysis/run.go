package analysis

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/bomlens/bomlens/pkg/bom"
)

// Overview holds the headline metrics of one run.
type Overview struct {
	Products   int
	Components int
	Records    int

	TotalCost   decimal.Decimal
	AverageCost decimal.Decimal
}

// Result is the packaged output of one analysis run. It is fully populated
// and internally consistent once Run returns; callers must treat it as
// read-only.
type Result struct {
	Overview   Overview
	Products   []ProductMetrics
	Components []ComponentMetrics

	// Costs is nil when the batch was too small for distribution
	// statistics; Notes then says which metric needed more data.
	Costs  *CostSummary
	Points []CostQuantityPoint

	Insights []Insight

	// Notes carries the non-fatal insufficiency messages of this run.
	Notes []string
}

// Run normalizes nothing: it takes a finished batch, fans the three
// calculators out as parallel goroutines over the shared read-only records,
// joins, generates insights and packages everything into one Result.
//
// Statistical insufficiency (single-product uploads, empty batches) is
// surfaced through Result.Notes rather than failing the run; any other
// stage failure aborts with a StageFailureError naming the stage.
func Run(batch *bom.Batch, cfg Config) (*Result, error) {
	cfg = cfg.withDefaults()

	if len(batch.Records) == 0 {
		// Nothing to compute. Insights are an empty list, not an error.
		return &Result{
			Insights: []Insight{},
			Notes: []string{
				(&bom.InsufficientDataError{Metric: "average product cost", Need: 1, Got: 0}).Error(),
				(&bom.InsufficientDataError{Metric: "cost distribution", Need: 2, Got: 0}).Error(),
			},
		}, nil
	}

	var (
		products   *ProductReport
		components *ComponentReport
		costs      *CostSummary

		productsErr error
		costsErr    error
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		products, productsErr = CalculateProducts(batch, cfg)
	}()
	go func() {
		defer wg.Done()
		components = CalculateComponents(batch)
	}()
	go func() {
		defer wg.Done()
		costs, costsErr = AnalyzeCosts(batch, cfg.Buckets)
	}()
	wg.Wait()

	result := &Result{}

	// Stage errors are checked in a fixed order so the first failure
	// reported is deterministic.
	if productsErr != nil {
		return nil, &bom.StageFailureError{Stage: "product metrics", Err: productsErr}
	}
	if costsErr != nil {
		var insufficient *bom.InsufficientDataError
		if !errors.As(costsErr, &insufficient) {
			return nil, &bom.StageFailureError{Stage: "cost analysis", Err: costsErr}
		}
		costs = nil
		result.Notes = append(result.Notes, insufficient.Error())
	}

	result.Products = products.Products
	result.Components = components.Components
	result.Costs = costs
	result.Points = components.Points
	result.Insights = GenerateInsights(products, components, costs)

	total := decimal.Zero
	for _, p := range products.Products {
		total = total.Add(p.TotalCost)
	}
	result.Overview = Overview{
		Products:    len(products.Products),
		Components:  len(components.Components),
		Records:     len(batch.Records),
		TotalCost:   total,
		AverageCost: products.AverageCost,
	}

	// The packaged total and the cost stage's total are computed
	// independently; they must agree exactly, not approximately.
	if costs != nil && !costs.TotalCost.Equal(total) {
		return nil, &bom.StageFailureError{
			Stage: "packaging",
			Err:   fmt.Errorf("total cost mismatch: products sum to %s, cost analysis reports %s", total, costs.TotalCost),
		}
	}

	return result, nil
}
