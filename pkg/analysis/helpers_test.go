package analysis

import (
	"github.com/shopspring/decimal"

	"github.com/bomlens/bomlens/pkg/bom"
)

func rec(product, component, cost string, qty int) bom.Record {
	return bom.Record{
		ProductID:     product,
		ComponentID:   component,
		ComponentName: component,
		UnitCost:      decimal.RequireFromString(cost),
		Quantity:      qty,
		SourceFile:    "test.csv",
	}
}

func mkBatch(records ...bom.Record) *bom.Batch {
	return &bom.Batch{Records: records, Sources: []string{"test.csv"}}
}
