// Package export serializes an analysis result into its export-ready table
// set: one JSON document, or one CSV file per table for spreadsheet
// consumers.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bomlens/bomlens/pkg/analysis"
)

// ---- export document schema ----

type Document struct {
	Overview   Overview    `json:"overview"`
	Products   []Product   `json:"products"`
	Components []Component `json:"components"`
	Costs      *Costs      `json:"costs,omitempty"`
	Scatter    []Point     `json:"scatter"`
	Insights   []Insight   `json:"insights"`
	Notes      []string    `json:"notes,omitempty"`
}

type Overview struct {
	Products    int    `json:"products"`
	Components  int    `json:"components"`
	Records     int    `json:"records"`
	TotalCost   string `json:"totalCost"`
	AverageCost string `json:"averageCost"`
}

type Product struct {
	ProductID       string `json:"productId"`
	ComponentCount  int    `json:"componentCount"`
	Variety         int    `json:"variety"`
	TotalCost       string `json:"totalCost"`
	MinQuantity     int    `json:"minQuantity"`
	MaxQuantity     int    `json:"maxQuantity"`
	ComplexityScore string `json:"complexityScore"`
}

type Component struct {
	ComponentID     string `json:"componentId"`
	Name            string `json:"name"`
	UsageCount      int    `json:"usageCount"`
	TotalQuantity   int    `json:"totalQuantity"`
	AverageUnitCost string `json:"averageUnitCost"`
	TotalCost       string `json:"totalCost"`
}

type Costs struct {
	TotalCost   string    `json:"totalCost"`
	AverageCost string    `json:"averageCost"`
	MedianCost  string    `json:"medianCost"`
	Histogram   []Bucket  `json:"histogram"`
	Q1          float64   `json:"q1"`
	Q2          float64   `json:"q2"`
	Q3          float64   `json:"q3"`
	IQR         float64   `json:"iqr"`
	LowWhisker  float64   `json:"lowWhisker"`
	HighWhisker float64   `json:"highWhisker"`
	Outliers    []float64 `json:"outliers,omitempty"`
}

type Bucket struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

type Point struct {
	ComponentID   string `json:"componentId"`
	TotalCost     string `json:"totalCost"`
	TotalQuantity int    `json:"totalQuantity"`
}

type Insight struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Value   string `json:"value"`
}

// BuildDocument converts a Result into the export schema. Money renders as
// decimal strings so no precision is lost in transit.
func BuildDocument(res *analysis.Result) *Document {
	doc := &Document{
		Overview: Overview{
			Products:    res.Overview.Products,
			Components:  res.Overview.Components,
			Records:     res.Overview.Records,
			TotalCost:   res.Overview.TotalCost.String(),
			AverageCost: res.Overview.AverageCost.String(),
		},
		Products:   []Product{},
		Components: []Component{},
		Scatter:    []Point{},
		Insights:   []Insight{},
		Notes:      res.Notes,
	}

	for _, p := range res.Products {
		doc.Products = append(doc.Products, Product{
			ProductID:       p.ProductID,
			ComponentCount:  p.ComponentCount,
			Variety:         p.Variety,
			TotalCost:       p.TotalCost.String(),
			MinQuantity:     p.MinQuantity,
			MaxQuantity:     p.MaxQuantity,
			ComplexityScore: strconv.FormatFloat(p.ComplexityScore, 'f', 4, 64),
		})
	}
	for _, c := range res.Components {
		doc.Components = append(doc.Components, Component{
			ComponentID:     c.ComponentID,
			Name:            c.Name,
			UsageCount:      c.UsageCount,
			TotalQuantity:   c.TotalQuantity,
			AverageUnitCost: c.AverageUnitCost.StringFixed(4),
			TotalCost:       c.TotalCost.String(),
		})
	}
	if res.Costs != nil {
		costs := &Costs{
			TotalCost:   res.Costs.TotalCost.String(),
			AverageCost: res.Costs.AverageCost.String(),
			MedianCost:  res.Costs.MedianCost.String(),
			Q1:          res.Costs.Box.Q1,
			Q2:          res.Costs.Box.Q2,
			Q3:          res.Costs.Box.Q3,
			IQR:         res.Costs.Box.IQR,
			LowWhisker:  res.Costs.Box.LowWhisker,
			HighWhisker: res.Costs.Box.HighWhisker,
			Outliers:    res.Costs.Box.Outliers,
		}
		for _, b := range res.Costs.Histogram {
			costs.Histogram = append(costs.Histogram, Bucket{Low: b.Low, High: b.High, Count: b.Count})
		}
		doc.Costs = costs
	}
	for _, p := range res.Points {
		doc.Scatter = append(doc.Scatter, Point{
			ComponentID:   p.ComponentID,
			TotalCost:     p.TotalCost.String(),
			TotalQuantity: p.TotalQuantity,
		})
	}
	for _, i := range res.Insights {
		doc.Insights = append(doc.Insights, Insight{Kind: i.Kind, Message: i.Message, Value: i.Value})
	}

	return doc
}

// WriteJSON writes the export document with two-space indentation.
func WriteJSON(res *analysis.Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDocument(res))
}

// WriteCSV writes one CSV file per table into dir, creating it if needed.
// File order and row order match the ranked tables, so repeated exports of
// the same analysis are byte-identical.
func WriteCSV(res *analysis.Result, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	doc := BuildDocument(res)

	overview := [][]string{
		{"metric", "value"},
		{"products", strconv.Itoa(doc.Overview.Products)},
		{"components", strconv.Itoa(doc.Overview.Components)},
		{"records", strconv.Itoa(doc.Overview.Records)},
		{"total_cost", doc.Overview.TotalCost},
		{"average_cost", doc.Overview.AverageCost},
	}
	if err := writeTable(dir, "overview.csv", overview); err != nil {
		return err
	}

	products := [][]string{{"product", "components", "variety", "total_cost", "min_quantity", "max_quantity", "complexity"}}
	for _, p := range doc.Products {
		products = append(products, []string{
			p.ProductID, strconv.Itoa(p.ComponentCount), strconv.Itoa(p.Variety),
			p.TotalCost, strconv.Itoa(p.MinQuantity), strconv.Itoa(p.MaxQuantity), p.ComplexityScore,
		})
	}
	if err := writeTable(dir, "product_metrics.csv", products); err != nil {
		return err
	}

	components := [][]string{{"component", "name", "used_in_products", "total_quantity", "average_unit_cost", "total_cost"}}
	for _, c := range doc.Components {
		components = append(components, []string{
			c.ComponentID, c.Name, strconv.Itoa(c.UsageCount),
			strconv.Itoa(c.TotalQuantity), c.AverageUnitCost, c.TotalCost,
		})
	}
	if err := writeTable(dir, "component_usage.csv", components); err != nil {
		return err
	}

	costs := [][]string{{"metric", "value"}}
	if doc.Costs != nil {
		costs = append(costs,
			[]string{"total_cost", doc.Costs.TotalCost},
			[]string{"average_cost", doc.Costs.AverageCost},
			[]string{"median_cost", doc.Costs.MedianCost},
			[]string{"q1", formatFloat(doc.Costs.Q1)},
			[]string{"q2", formatFloat(doc.Costs.Q2)},
			[]string{"q3", formatFloat(doc.Costs.Q3)},
			[]string{"iqr", formatFloat(doc.Costs.IQR)},
			[]string{"low_whisker", formatFloat(doc.Costs.LowWhisker)},
			[]string{"high_whisker", formatFloat(doc.Costs.HighWhisker)},
		)
		for i, b := range doc.Costs.Histogram {
			name := fmt.Sprintf("bucket_%d [%s, %s]", i+1, formatFloat(b.Low), formatFloat(b.High))
			costs = append(costs, []string{name, strconv.Itoa(b.Count)})
		}
		for _, o := range doc.Costs.Outliers {
			costs = append(costs, []string{"outlier", formatFloat(o)})
		}
	} else {
		for _, n := range doc.Notes {
			costs = append(costs, []string{"note", n})
		}
	}
	if err := writeTable(dir, "cost_distribution.csv", costs); err != nil {
		return err
	}

	insights := [][]string{{"kind", "message", "value"}}
	for _, i := range doc.Insights {
		insights = append(insights, []string{i.Kind, i.Message, i.Value})
	}
	return writeTable(dir, "insights.csv", insights)
}

func writeTable(dir, name string, rows [][]string) error {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
