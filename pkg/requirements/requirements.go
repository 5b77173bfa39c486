// Package requirements answers "can we build N units of product X": it
// scales the product's BOM quantities by the desired unit count and compares
// them against on-hand stock.
package requirements

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bomlens/bomlens/pkg/analysis"
	"github.com/bomlens/bomlens/pkg/bom"
)

// Line is the requirement row for one component of the product.
type Line struct {
	ComponentID string
	Name        string

	// Required is the BOM quantity per unit times the desired unit count.
	Required int

	// InStock is the on-hand quantity, 0 for components absent from the
	// stock table.
	InStock int

	Sufficient bool
}

// Calculate computes the component requirements for building desired units
// of productID. Rows follow the usage ranking of the component report so
// the most shared parts list first.
func Calculate(batch *bom.Batch, components *analysis.ComponentReport, productID string, desired int, stock map[string]int) ([]Line, error) {
	if desired <= 0 {
		return nil, fmt.Errorf("desired quantity must be positive, got %d", desired)
	}

	records := batch.RecordsFor(productID)
	if len(records) == 0 {
		return nil, fmt.Errorf("unknown product %s", productID)
	}

	perComponent := make(map[string]bom.Record, len(records))
	for _, r := range records {
		perComponent[r.ComponentID] = r
	}

	var lines []Line
	appendLine := func(r bom.Record) {
		required := r.Quantity * desired
		inStock := stock[r.ComponentID]
		lines = append(lines, Line{
			ComponentID: r.ComponentID,
			Name:        r.ComponentName,
			Required:    required,
			InStock:     inStock,
			Sufficient:  inStock >= required,
		})
	}

	if components != nil {
		for _, c := range components.Components {
			if r, ok := perComponent[c.ComponentID]; ok {
				appendLine(r)
				delete(perComponent, c.ComponentID)
			}
		}
	}
	// Components missing from the report (or when no report is given) keep
	// their batch order.
	for _, r := range records {
		if _, ok := perComponent[r.ComponentID]; ok {
			appendLine(r)
			delete(perComponent, r.ComponentID)
		}
	}

	return lines, nil
}

// ParseStock reads a stock table: a CSV with "component" and "on_hand"
// columns (matched like BOM headers, case-insensitively). Duplicate
// component rows sum their quantities.
func ParseStock(src bom.Source) (map[string]int, error) {
	reader := csv.NewReader(bytes.NewReader(src.Data))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, &bom.ValidationError{File: src.Name, Field: "header", Reason: "cannot read CSV header: " + err.Error()}
	}

	componentCol, onHandCol := -1, -1
	for i, h := range headers {
		switch foldHeader(h) {
		case "component":
			componentCol = i
		case "on_hand":
			onHandCol = i
		}
	}
	if componentCol < 0 {
		return nil, &bom.ValidationError{File: src.Name, Field: "component", Reason: "missing column"}
	}
	if onHandCol < 0 {
		return nil, &bom.ValidationError{File: src.Name, Field: "on_hand", Reason: "missing column"}
	}

	stock := make(map[string]int)
	row := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, &bom.ValidationError{File: src.Name, Row: row, Field: "row", Reason: "malformed CSV row: " + err.Error()}
		}
		if componentCol >= len(fields) || onHandCol >= len(fields) {
			return nil, &bom.ValidationError{File: src.Name, Row: row, Field: "row", Reason: "missing fields"}
		}

		id := strings.ToUpper(strings.TrimSpace(fields[componentCol]))
		if id == "" {
			return nil, &bom.ValidationError{File: src.Name, Row: row, Field: "component", Reason: "missing component identifier"}
		}
		qty, err := strconv.Atoi(strings.TrimSpace(fields[onHandCol]))
		if err != nil {
			return nil, &bom.ValidationError{File: src.Name, Row: row, Field: "on_hand", Reason: "non-integer quantity " + strconv.Quote(fields[onHandCol])}
		}
		if qty < 0 {
			return nil, &bom.ValidationError{File: src.Name, Row: row, Field: "on_hand", Reason: "negative quantity " + strconv.Itoa(qty)}
		}
		stock[id] += qty
	}
	return stock, nil
}

func foldHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
