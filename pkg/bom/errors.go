package bom

import "fmt"

// ValidationError reports a malformed or missing input field. Row is the
// 1-based data row index within the named file; row 0 means the failure is
// about the file itself (e.g. a missing column).
type ValidationError struct {
	File   string
	Row    int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("%s: %s: %s", e.File, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: row %d: %s: %s", e.File, e.Row, e.Field, e.Reason)
}

// EmptyProductError reports a product that resolved to zero records. The
// normalizer never emits such products, so hitting this means a calculator
// was fed a batch it did not build.
type EmptyProductError struct {
	ProductID string
}

func (e *EmptyProductError) Error() string {
	return fmt.Sprintf("product %s has no records", e.ProductID)
}

// InsufficientDataError reports a statistic computed on too few data points.
type InsufficientDataError struct {
	Metric string
	Need   int
	Got    int
}

func (e *InsufficientDataError) Error() string {
	noun := "products"
	if e.Need == 1 {
		noun = "product"
	}
	return fmt.Sprintf("%s requires at least %d %s; got %d", e.Metric, e.Need, noun, e.Got)
}

// StageFailureError wraps a failure from one analysis stage with its name.
type StageFailureError struct {
	Stage string
	Err   error
}

func (e *StageFailureError) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
}

func (e *StageFailureError) Unwrap() error {
	return e.Err
}
