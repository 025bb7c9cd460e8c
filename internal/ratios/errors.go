package ratios

import "fmt"

// LengthMismatchError reports numerator and denominator sequences of
// different lengths.
type LengthMismatchError struct {
	Numerators   int
	Denominators int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("length of numerators (%d) must equal length of denominators (%d)", e.Numerators, e.Denominators)
}

// DivisionByZeroError reports a zero denominator at Index.
type DivisionByZeroError struct {
	Index int
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("division by zero at position %d", e.Index)
}

// MissingYearError is returned by free cash flow when one of its operands
// does not cover a requested year.
type MissingYearError struct {
	Year int
	Row  string
}

func (e *MissingYearError) Error() string {
	return fmt.Sprintf("free cash flow: year %d missing from %q", e.Year, e.Row)
}
