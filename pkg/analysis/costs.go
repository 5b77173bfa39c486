package analysis

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/bomlens/bomlens/pkg/bom"
)

// Bucket is one fixed-width histogram bucket over [Low, High). The last
// bucket is right-closed so the maximum value is counted.
type Bucket struct {
	Low   float64
	High  float64
	Count int
}

// BoxPlot summarizes the product cost distribution: quartiles by linear
// interpolation, whiskers at 1.5 IQR, outliers beyond the whiskers.
type BoxPlot struct {
	Q1          float64
	Q2          float64
	Q3          float64
	IQR         float64
	LowWhisker  float64
	HighWhisker float64
	Outliers    []float64
}

// CostSummary is the cost analyzer output. Totals, mean and median are
// exact decimals; the histogram and box plot are float64 presentation
// statistics.
type CostSummary struct {
	TotalCost   decimal.Decimal
	AverageCost decimal.Decimal
	MedianCost  decimal.Decimal
	Histogram   []Bucket
	Box         BoxPlot
}

// AnalyzeCosts computes the distribution of per-product total costs. It is
// a pure function of the batch so it can run alongside the other
// calculators. Fewer than 2 products is InsufficientDataError: median and
// quartiles are undefined on a single value.
func AnalyzeCosts(batch *bom.Batch, buckets int) (*CostSummary, error) {
	if buckets <= 0 {
		buckets = DefaultConfig().Buckets
	}

	totals := productTotals(batch)
	if len(totals) < 2 {
		return nil, &bom.InsufficientDataError{Metric: "cost distribution", Need: 2, Got: len(totals)}
	}

	sort.Slice(totals, func(i, j int) bool { return totals[i].LessThan(totals[j]) })

	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t)
	}
	n := len(totals)

	summary := &CostSummary{
		TotalCost:   sum,
		AverageCost: sum.Div(decimal.NewFromInt(int64(n))),
		MedianCost:  medianDecimal(totals),
	}

	vals := make([]float64, n)
	for i, t := range totals {
		vals[i], _ = t.Float64()
	}
	summary.Box = boxPlot(vals)
	summary.Histogram = histogram(vals, buckets)

	return summary, nil
}

func productTotals(batch *bom.Batch) []decimal.Decimal {
	byProduct := make(map[string]decimal.Decimal)
	var order []string
	for _, r := range batch.Records {
		if _, ok := byProduct[r.ProductID]; !ok {
			order = append(order, r.ProductID)
		}
		byProduct[r.ProductID] = byProduct[r.ProductID].Add(r.LineCost())
	}
	totals := make([]decimal.Decimal, 0, len(order))
	for _, id := range order {
		totals = append(totals, byProduct[id])
	}
	return totals
}

// medianDecimal expects sorted input. Even counts average the two middle
// values exactly.
func medianDecimal(sorted []decimal.Decimal) decimal.Decimal {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	two := decimal.NewFromInt(2)
	return sorted[n/2-1].Add(sorted[n/2]).Div(two)
}

// quantile interpolates linearly at position (n-1)*q on sorted values,
// the same percentile semantics most stats tooling defaults to.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := float64(n-1) * q
	lo := int(math.Floor(pos))
	frac := pos - float64(lo)
	if lo+1 >= n {
		return sorted[n-1]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

func boxPlot(sorted []float64) BoxPlot {
	box := BoxPlot{
		Q1: quantile(sorted, 0.25),
		Q2: quantile(sorted, 0.5),
		Q3: quantile(sorted, 0.75),
	}
	box.IQR = box.Q3 - box.Q1
	box.LowWhisker = box.Q1 - 1.5*box.IQR
	box.HighWhisker = box.Q3 + 1.5*box.IQR

	for _, v := range sorted {
		if v < box.LowWhisker || v > box.HighWhisker {
			box.Outliers = append(box.Outliers, v)
		}
	}
	return box
}

func histogram(sorted []float64, buckets int) []Bucket {
	min, max := sorted[0], sorted[len(sorted)-1]

	// All products cost the same: one degenerate bucket holds everything.
	if min == max {
		return []Bucket{{Low: min, High: max, Count: len(sorted)}}
	}

	width := (max - min) / float64(buckets)
	out := make([]Bucket, buckets)
	for i := range out {
		out[i].Low = min + float64(i)*width
		out[i].High = min + float64(i+1)*width
	}
	out[buckets-1].High = max

	for _, v := range sorted {
		idx := int((v - min) / width)
		if idx >= buckets {
			idx = buckets - 1
		}
		out[idx].Count++
	}
	return out
}
