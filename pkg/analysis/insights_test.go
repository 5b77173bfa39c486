package analysis

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestGenerateInsightsOrder(t *testing.T) {
	batch := mkBatch(
		rec("P1", "C1", "10", 1), rec("P1", "C2", "20", 1), rec("P1", "C3", "30", 1),
		rec("P2", "C1", "5", 1), rec("P2", "C2", "5", 1),
	)

	products, err := CalculateProducts(batch, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	components := CalculateComponents(batch)
	costs, err := AnalyzeCosts(batch, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	insights := GenerateInsights(products, components, costs)
	if len(insights) != 5 {
		t.Fatalf("expected 5 insights, got %d", len(insights))
	}
	if insights[0].Kind != InsightTopComplexity {
		t.Fatalf("expected complexity insight first, got %s", insights[0].Kind)
	}
	if !strings.Contains(insights[0].Message, "P1") {
		t.Fatalf("expected P1 as most complex: %s", insights[0].Message)
	}
	if insights[1].Kind != InsightTopUsage {
		t.Fatalf("expected usage insight second, got %s", insights[1].Kind)
	}
	if !strings.Contains(insights[1].Message, "used in 2 of 2 products") {
		t.Fatalf("unexpected usage message: %s", insights[1].Message)
	}
}

func TestSkewDirection(t *testing.T) {
	d := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	if got := skewDirection(d("10"), d("5")); got != "right-skewed" {
		t.Fatalf("mean > median should be right-skewed, got %s", got)
	}
	if got := skewDirection(d("5"), d("10")); got != "left-skewed" {
		t.Fatalf("mean < median should be left-skewed, got %s", got)
	}
	if got := skewDirection(d("10"), d("10.0")); got != "symmetric" {
		t.Fatalf("equal mean and median should be symmetric, got %s", got)
	}
}

func TestInsightsWithoutCosts(t *testing.T) {
	batch := mkBatch(rec("P1", "C1", "10", 1))

	products, err := CalculateProducts(batch, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	components := CalculateComponents(batch)

	insights := GenerateInsights(products, components, nil)
	for _, i := range insights {
		if i.Kind == InsightCostSkew {
			t.Fatalf("skew insight should be skipped without cost stats")
		}
	}
	if len(insights) != 4 {
		t.Fatalf("expected 4 insights, got %d", len(insights))
	}
}

func TestInsightsEmptyProducts(t *testing.T) {
	insights := GenerateInsights(nil, nil, nil)
	if insights == nil {
		t.Fatal("insights must be an empty list, not nil")
	}
	if len(insights) != 0 {
		t.Fatalf("expected no insights, got %d", len(insights))
	}
}
