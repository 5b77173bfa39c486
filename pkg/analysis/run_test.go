package analysis

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRunTotalCostConsistency(t *testing.T) {
	batch := mkBatch(
		rec("P1", "C1", "10.37", 3),
		rec("P1", "C2", "0.01", 99),
		rec("P2", "C1", "10.37", 7),
		rec("P3", "C3", "123.45", 2),
	)

	res, err := Run(batch, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum := decimal.Zero
	for _, p := range res.Products {
		sum = sum.Add(p.TotalCost)
	}
	if !sum.Equal(res.Overview.TotalCost) {
		t.Fatalf("product totals %s != packaged total %s", sum, res.Overview.TotalCost)
	}
	if res.Costs == nil {
		t.Fatal("expected cost summary for 3 products")
	}
	if !res.Costs.TotalCost.Equal(res.Overview.TotalCost) {
		t.Fatalf("cost stage total %s != packaged total %s", res.Costs.TotalCost, res.Overview.TotalCost)
	}
}

func TestRunEmptyBatch(t *testing.T) {
	res, err := Run(mkBatch(), Config{})
	if err != nil {
		t.Fatalf("an empty batch is not an error: %v", err)
	}

	if res.Insights == nil || len(res.Insights) != 0 {
		t.Fatalf("expected empty non-nil insights, got %v", res.Insights)
	}
	if res.Costs != nil {
		t.Fatal("expected no cost summary")
	}
	if len(res.Notes) == 0 {
		t.Fatal("expected insufficiency notes")
	}
}

func TestRunSingleProduct(t *testing.T) {
	batch := mkBatch(rec("P1", "C1", "10", 2), rec("P1", "C2", "4", 1))

	res, err := Run(batch, Config{})
	if err != nil {
		t.Fatalf("single-product insufficiency must not fail the run: %v", err)
	}

	if res.Costs != nil {
		t.Fatal("expected nil cost summary for a single product")
	}
	if len(res.Notes) != 1 {
		t.Fatalf("expected one note, got %v", res.Notes)
	}
	if len(res.Products) != 1 || res.Products[0].TotalCost.String() != "24" {
		t.Fatalf("product table should still publish: %+v", res.Products)
	}
	if len(res.Insights) == 0 {
		t.Fatal("expected insights for a single product")
	}
}

func TestRunDeterministic(t *testing.T) {
	batch := mkBatch(
		rec("P2", "C1", "10", 1), rec("P2", "C2", "10", 1),
		rec("P1", "C1", "10", 1), rec("P1", "C3", "10", 1),
		rec("P3", "C4", "20", 1),
	)

	first, err := Run(batch, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Run(batch, Config{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for j := range first.Products {
			if again.Products[j].ProductID != first.Products[j].ProductID {
				t.Fatal("product ranking changed between identical runs")
			}
		}
		for j := range first.Components {
			if again.Components[j].ComponentID != first.Components[j].ComponentID {
				t.Fatal("component ranking changed between identical runs")
			}
		}
		for j := range first.Insights {
			if again.Insights[j].Message != first.Insights[j].Message {
				t.Fatal("insights changed between identical runs")
			}
		}
	}
}

func TestRunOverviewCounts(t *testing.T) {
	batch := mkBatch(
		rec("P1", "C1", "1", 1),
		rec("P1", "C2", "1", 1),
		rec("P2", "C1", "1", 1),
	)

	res, err := Run(batch, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Overview.Products != 2 || res.Overview.Components != 2 || res.Overview.Records != 3 {
		t.Fatalf("unexpected overview: %+v", res.Overview)
	}
}
