package analysis

import (
	"errors"
	"testing"

	"github.com/bomlens/bomlens/pkg/bom"
)

func TestCalculateProducts(t *testing.T) {
	batch := mkBatch(
		rec("P1", "C1", "10", 2),
		rec("P1", "C2", "5", 4),
		rec("P2", "C1", "10", 1),
	)

	report, err := CalculateProducts(batch, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(report.Products))
	}

	// P1: 2 components, cost 10*2+5*4 = 40, quantities 2..4. It has both
	// the most components and the highest cost, so it ranks first.
	p1 := report.Products[0]
	if p1.ProductID != "P1" {
		t.Fatalf("expected P1 first, got %s", p1.ProductID)
	}
	if p1.ComponentCount != 2 {
		t.Fatalf("expected 2 components, got %d", p1.ComponentCount)
	}
	if p1.TotalCost.String() != "40" {
		t.Fatalf("expected total cost 40, got %s", p1.TotalCost)
	}
	if p1.MinQuantity != 2 || p1.MaxQuantity != 4 {
		t.Fatalf("expected quantity range 2-4, got %d-%d", p1.MinQuantity, p1.MaxQuantity)
	}
	if p1.ComplexityScore != 1.0 {
		t.Fatalf("max product should score 1.0, got %f", p1.ComplexityScore)
	}

	// Average cost: (40 + 10) / 2 = 25.
	if report.AverageCost.String() != "25" {
		t.Fatalf("expected average 25, got %s", report.AverageCost)
	}
}

func TestQuantityRangeInvariant(t *testing.T) {
	batch := mkBatch(
		rec("P1", "C1", "1", 0),
		rec("P1", "C2", "1", 7),
		rec("P2", "C1", "1", 3),
	)

	report, err := CalculateProducts(batch, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range report.Products {
		if p.MinQuantity > p.MaxQuantity {
			t.Fatalf("%s: min %d > max %d", p.ProductID, p.MinQuantity, p.MaxQuantity)
		}
		if p.MinQuantity < 0 {
			t.Fatalf("%s: negative min quantity", p.ProductID)
		}
	}
}

func TestComplexityRankingTieBreaks(t *testing.T) {
	// Identical component counts and total costs: scores tie exactly, so
	// the lexicographic product id decides.
	batch := mkBatch(
		rec("PB", "C1", "10", 1),
		rec("PA", "C2", "10", 1),
		rec("PC", "C3", "10", 1),
	)

	report, err := CalculateProducts(batch, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := []string{report.Products[0].ProductID, report.Products[1].ProductID, report.Products[2].ProductID}
	want := []string{"PA", "PB", "PC"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestComplexityRankingDeterministic(t *testing.T) {
	batch := mkBatch(
		rec("P1", "C1", "10", 1), rec("P1", "C2", "1", 1),
		rec("P2", "C1", "8", 1), rec("P2", "C3", "3", 1),
		rec("P3", "C4", "11", 1),
	)

	first, err := CalculateProducts(batch, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for run := 0; run < 10; run++ {
		again, err := CalculateProducts(batch, Config{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := range first.Products {
			if again.Products[i].ProductID != first.Products[i].ProductID {
				t.Fatalf("ranking changed between runs: %v vs %v", first.Products, again.Products)
			}
		}
	}
}

func TestComplexityCountBeatsCostTie(t *testing.T) {
	// Same score is impossible here, but equal scores by construction:
	// disable the cost term so only counts matter, then P2's higher count
	// must win over P1's higher cost.
	batch := mkBatch(
		rec("P1", "C1", "100", 1),
		rec("P2", "C1", "10", 1),
		rec("P2", "C2", "10", 1),
	)

	report, err := CalculateProducts(batch, Config{CountWeight: 1, CostWeight: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Products[0].ProductID != "P2" {
		t.Fatalf("expected P2 (more components) first, got %s", report.Products[0].ProductID)
	}
}

func TestVarietyCountsSubComponents(t *testing.T) {
	r := rec("P1", "C1", "10", 1)
	r.SubComponents = []string{"S1", "S2"}
	batch := mkBatch(r, rec("P1", "C2", "5", 1))

	report, err := CalculateProducts(batch, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := report.Products[0]
	if p.ComponentCount != 2 || p.Variety != 4 {
		t.Fatalf("expected count 2 variety 4, got %d %d", p.ComponentCount, p.Variety)
	}
}

func TestCalculateProductsEmptyBatch(t *testing.T) {
	_, err := CalculateProducts(mkBatch(), Config{})

	var ierr *bom.InsufficientDataError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
	if ierr.Got != 0 {
		t.Fatalf("expected got=0, got %d", ierr.Got)
	}
}

func TestProductMetricsEmptyProduct(t *testing.T) {
	_, err := productMetrics("P1", nil)

	var perr *bom.EmptyProductError
	if !errors.As(err, &perr) {
		t.Fatalf("expected EmptyProductError, got %v", err)
	}
}
