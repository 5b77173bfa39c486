package requirements

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bomlens/bomlens/pkg/analysis"
	"github.com/bomlens/bomlens/pkg/bom"
)

func rec(product, component string, qty int) bom.Record {
	return bom.Record{
		ProductID:     product,
		ComponentID:   component,
		ComponentName: component,
		UnitCost:      decimal.NewFromInt(1),
		Quantity:      qty,
		SourceFile:    "test.csv",
	}
}

func TestCalculate(t *testing.T) {
	batch := &bom.Batch{Records: []bom.Record{
		rec("P1", "C1", 2),
		rec("P1", "C2", 5),
		rec("P2", "C1", 1),
	}}
	stock := map[string]int{"C1": 10, "C2": 12}

	lines, err := Calculate(batch, analysis.CalculateComponents(batch), "P1", 3, stock)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	// C1 is used in both products so it ranks first.
	c1 := lines[0]
	if c1.ComponentID != "C1" {
		t.Fatalf("expected C1 first, got %s", c1.ComponentID)
	}
	if c1.Required != 6 || c1.InStock != 10 || !c1.Sufficient {
		t.Fatalf("unexpected C1 line: %+v", c1)
	}

	c2 := lines[1]
	if c2.Required != 15 || c2.InStock != 12 || c2.Sufficient {
		t.Fatalf("expected C2 short (15 > 12): %+v", c2)
	}
}

func TestCalculateMissingStock(t *testing.T) {
	batch := &bom.Batch{Records: []bom.Record{rec("P1", "C1", 1)}}

	lines, err := Calculate(batch, nil, "P1", 1, map[string]int{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines[0].InStock != 0 || lines[0].Sufficient {
		t.Fatalf("component absent from stock should be short: %+v", lines[0])
	}
}

func TestCalculateUnknownProduct(t *testing.T) {
	batch := &bom.Batch{Records: []bom.Record{rec("P1", "C1", 1)}}

	if _, err := Calculate(batch, nil, "P9", 1, nil); err == nil {
		t.Fatal("expected error for unknown product")
	}
}

func TestCalculateNonPositiveQuantity(t *testing.T) {
	batch := &bom.Batch{Records: []bom.Record{rec("P1", "C1", 1)}}

	if _, err := Calculate(batch, nil, "P1", 0, nil); err == nil {
		t.Fatal("expected error for zero desired quantity")
	}
}

func TestParseStock(t *testing.T) {
	stock, err := ParseStock(bom.Source{Name: "stock.csv", Data: []byte(
		"Component,On Hand\n" +
			"c1,10\n" +
			"c1,5\n" +
			"c2,3\n")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stock["C1"] != 15 {
		t.Fatalf("duplicate rows should sum: got %d", stock["C1"])
	}
	if stock["C2"] != 3 {
		t.Fatalf("expected 3, got %d", stock["C2"])
	}
}

func TestParseStockRejectsNegative(t *testing.T) {
	_, err := ParseStock(bom.Source{Name: "stock.csv", Data: []byte(
		"component,on_hand\nc1,-2\n")})

	var verr *bom.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Row != 1 || verr.Field != "on_hand" {
		t.Fatalf("unexpected error detail: %+v", verr)
	}
}

func TestParseStockMissingColumn(t *testing.T) {
	_, err := ParseStock(bom.Source{Name: "stock.csv", Data: []byte("component\nc1\n")})

	var verr *bom.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "on_hand" {
		t.Fatalf("expected on_hand column error, got %+v", verr)
	}
}
