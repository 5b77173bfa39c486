package bom

import "github.com/shopspring/decimal"

// Record is a single normalized BOM line: one component used by one product.
type Record struct {
	ProductID     string
	ComponentID   string
	ComponentName string
	UnitCost      decimal.Decimal
	Quantity      int
	SourceFile    string

	// SubComponents holds the distinct sub-level codes (e.g. L3/L4 part
	// columns) seen on the merged lines for this pair. They contribute to
	// product variety but are not records of their own.
	SubComponents []string
}

// LineCost returns unit cost times quantity for this record.
func (r Record) LineCost() decimal.Decimal {
	return r.UnitCost.Mul(decimal.NewFromInt(int64(r.Quantity)))
}

// Batch is one immutable upload batch: the normalized records of every
// source file, in first-seen order. All analysis stages read it without
// mutating it, so a single Batch can be shared across goroutines.
type Batch struct {
	Records []Record
	Sources []string
}

// ProductIDs returns the distinct product ids in first-seen order.
func (b *Batch) ProductIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, r := range b.Records {
		if _, ok := seen[r.ProductID]; !ok {
			seen[r.ProductID] = struct{}{}
			ids = append(ids, r.ProductID)
		}
	}
	return ids
}

// RecordsFor returns the records belonging to one product, in batch order.
func (b *Batch) RecordsFor(productID string) []Record {
	var out []Record
	for _, r := range b.Records {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out
}

// Source is one raw uploaded file: a name for error reporting and the raw
// bytes. The caller reads the file (or URL) and hands the bytes in; the
// normalizer never touches the filesystem.
type Source struct {
	Name string
	Data []byte
}
