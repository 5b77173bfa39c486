// Package bom normalizes raw uploaded BOM files into a canonical record set
// and defines the error kinds shared by the analysis stages.
package bom

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/bomlens/bomlens/internal/utils"
)

// Columns maps the canonical record fields onto the column names used by the
// uploaded files. CSV headers are matched case-insensitively with spaces and
// hyphens folded to underscores; JSON keys are matched as given.
type Columns struct {
	Product   string
	Component string
	Name      string
	Cost      string
	Quantity  string

	// SubComponents lists optional sub-level part columns (e.g. "l3_code",
	// "l4_code") whose distinct codes count toward product variety.
	SubComponents []string
}

// DefaultColumns returns the column names assumed when no mapping is
// configured.
func DefaultColumns() Columns {
	return Columns{
		Product:   "product",
		Component: "component",
		Name:      "name",
		Cost:      "unit_cost",
		Quantity:  "quantity",
	}
}

// rawRow is one parsed input row before validation.
type rawRow struct {
	product   string
	component string
	name      string
	cost      string
	quantity  string
	subs      []string
}

// Normalize converts one or more raw sources into a single Batch. Duplicate
// (product, component) pairs sum their quantities, within a file and across
// files alike. Any malformed row fails the whole batch: a corrupt upload is
// never partially analyzed.
func Normalize(sources []Source, cols Columns) (*Batch, error) {
	batch := &Batch{}
	index := make(map[string]int)

	for _, src := range sources {
		batch.Sources = append(batch.Sources, src.Name)

		rows, err := parseSource(src, cols)
		if err != nil {
			return nil, err
		}

		for i, row := range rows {
			rec, err := buildRecord(src.Name, i+1, row)
			if err != nil {
				return nil, err
			}

			key := rec.ProductID + "\x00" + rec.ComponentID
			if at, ok := index[key]; ok {
				mergeRecord(&batch.Records[at], rec)
				continue
			}
			index[key] = len(batch.Records)
			batch.Records = append(batch.Records, rec)
		}
	}

	return batch, nil
}

// buildRecord validates one raw row and converts it into a Record.
// row is the 1-based data row index used in error messages.
func buildRecord(file string, row int, raw rawRow) (Record, error) {
	productID := canonicalID(raw.product)
	if productID == "" {
		return Record{}, &ValidationError{File: file, Row: row, Field: "product", Reason: "missing product identifier"}
	}
	componentID := canonicalID(raw.component)
	if componentID == "" {
		return Record{}, &ValidationError{File: file, Row: row, Field: "component", Reason: "missing component identifier"}
	}

	costStr := strings.TrimSpace(raw.cost)
	if costStr == "" {
		return Record{}, &ValidationError{File: file, Row: row, Field: "unit_cost", Reason: "missing unit cost"}
	}
	cost, err := decimal.NewFromString(costStr)
	if err != nil {
		return Record{}, &ValidationError{File: file, Row: row, Field: "unit_cost", Reason: "non-numeric unit cost " + strconv.Quote(costStr)}
	}
	if cost.IsNegative() {
		return Record{}, &ValidationError{File: file, Row: row, Field: "unit_cost", Reason: "negative unit cost " + cost.String()}
	}

	qtyStr := strings.TrimSpace(raw.quantity)
	if qtyStr == "" {
		return Record{}, &ValidationError{File: file, Row: row, Field: "quantity", Reason: "missing quantity"}
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		// Quantity is a unit count; fractional values are rejected, not rounded.
		return Record{}, &ValidationError{File: file, Row: row, Field: "quantity", Reason: "non-integer quantity " + strconv.Quote(qtyStr)}
	}
	if qty < 0 {
		return Record{}, &ValidationError{File: file, Row: row, Field: "quantity", Reason: "negative quantity " + qtyStr}
	}

	name := strings.TrimSpace(raw.name)
	if name == "" {
		name = componentID
	}

	rec := Record{
		ProductID:     productID,
		ComponentID:   componentID,
		ComponentName: name,
		UnitCost:      cost,
		Quantity:      qty,
		SourceFile:    file,
	}
	for _, s := range raw.subs {
		if code := canonicalID(s); code != "" {
			rec.SubComponents = append(rec.SubComponents, code)
		}
	}
	return rec, nil
}

// mergeRecord folds a duplicate BOM line into the record seen first. Multiple
// lines for the same part are a normal BOM occurrence, so quantities add up;
// the first line's unit cost and name win.
func mergeRecord(dst *Record, src Record) {
	dst.Quantity += src.Quantity
	if !dst.UnitCost.Equal(src.UnitCost) {
		utils.Log.Warnf("conflicting unit cost for %s/%s: keeping %s, ignoring %s (%s)",
			dst.ProductID, dst.ComponentID, dst.UnitCost, src.UnitCost, src.SourceFile)
	}
	for _, code := range src.SubComponents {
		if !containsString(dst.SubComponents, code) {
			dst.SubComponents = append(dst.SubComponents, code)
		}
	}
}

// parseSource sniffs the source format and parses it into raw rows. Data
// starting with '[' or '{' is JSON; everything else is CSV.
func parseSource(src Source, cols Columns) ([]rawRow, error) {
	trimmed := bytes.TrimLeft(src.Data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return parseJSON(src, cols)
	}
	return parseCSV(src, cols)
}

func parseCSV(src Source, cols Columns) ([]rawRow, error) {
	reader := csv.NewReader(bytes.NewReader(src.Data))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, &ValidationError{File: src.Name, Field: "header", Reason: "cannot read CSV header: " + err.Error()}
	}

	at := make(map[string]int)
	for i, h := range headers {
		at[foldHeader(h)] = i
	}

	find := func(name string) (int, bool) {
		i, ok := at[foldHeader(name)]
		return i, ok
	}

	required := []string{cols.Product, cols.Component, cols.Cost, cols.Quantity}
	for _, name := range required {
		if _, ok := find(name); !ok {
			return nil, &ValidationError{File: src.Name, Field: name, Reason: "missing column"}
		}
	}

	cell := func(row []string, name string) string {
		i, ok := find(name)
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var rows []rawRow
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ValidationError{File: src.Name, Row: len(rows) + 1, Field: "row", Reason: "malformed CSV row: " + err.Error()}
		}

		raw := rawRow{
			product:   cell(row, cols.Product),
			component: cell(row, cols.Component),
			name:      cell(row, cols.Name),
			cost:      cell(row, cols.Cost),
			quantity:  cell(row, cols.Quantity),
		}
		for _, sub := range cols.SubComponents {
			if v := strings.TrimSpace(cell(row, sub)); v != "" {
				raw.subs = append(raw.subs, v)
			}
		}
		rows = append(rows, raw)
	}
	return rows, nil
}

// parseJSON accepts either a top-level array of row objects or an object
// with a "records" array.
func parseJSON(src Source, cols Columns) ([]rawRow, error) {
	parsed := gjson.ParseBytes(src.Data)
	if parsed.IsObject() {
		parsed = parsed.Get("records")
	}
	if !parsed.IsArray() {
		return nil, &ValidationError{File: src.Name, Field: "records", Reason: "expected a JSON array of BOM rows"}
	}

	var rows []rawRow
	for _, el := range parsed.Array() {
		raw := rawRow{
			product:   el.Get(cols.Product).String(),
			component: el.Get(cols.Component).String(),
			name:      el.Get(cols.Name).String(),
			cost:      el.Get(cols.Cost).String(),
			quantity:  el.Get(cols.Quantity).String(),
		}
		for _, sub := range cols.SubComponents {
			if v := strings.TrimSpace(el.Get(sub).String()); v != "" {
				raw.subs = append(raw.subs, v)
			}
		}
		rows = append(rows, raw)
	}
	return rows, nil
}

// canonicalID applies the identity rules for product and component codes:
// surrounding whitespace trimmed, letters uppercased, so "abc-1 " and
// "ABC-1" collapse to the same key.
func canonicalID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// foldHeader normalizes a CSV header for matching: lowercase, with spaces
// and hyphens folded to underscores.
func foldHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
