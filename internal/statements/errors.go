package statements

import (
	"fmt"
	"strconv"
	"strings"
)

// UnknownRowError is returned when a statement table lacks an expected line
// item. It usually means the upstream schema changed.
type UnknownRowError struct {
	Kind Kind
	Row  string
}

func (e *UnknownRowError) Error() string {
	return fmt.Sprintf("%s statement has no row %q", e.Kind, e.Row)
}

// UnknownYearError is returned when a requested year is not covered by a
// line item's history.
type UnknownYearError struct {
	Row       string
	Year      int
	Available []int
}

func (e *UnknownYearError) Error() string {
	years := make([]string, len(e.Available))
	for i, y := range e.Available {
		years[i] = strconv.Itoa(y)
	}
	return fmt.Sprintf("year %d not available for %q (available: [%s])", e.Year, e.Row, strings.Join(years, ", "))
}
