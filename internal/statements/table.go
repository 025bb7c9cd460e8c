// Package statements turns provider-supplied financial statement tables into
// typed per-year records.
package statements

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies one of the three financial statements.
type Kind string

const (
	KindIncome       Kind = "income"
	KindBalanceSheet Kind = "balance_sheet"
	KindCashFlow     Kind = "cash_flow"
)

// Kinds lists the statements in the order they are fetched.
var Kinds = []Kind{KindIncome, KindBalanceSheet, KindCashFlow}

// Table is a statement keyed by row name and reporting date. Cells may be
// missing; a row is known as soon as any cell for it has been set.
type Table struct {
	Kind     Kind
	Currency string

	rows  map[string]map[time.Time]decimal.Decimal
	dates map[time.Time]struct{}
}

// NewTable creates an empty table for the given statement kind.
func NewTable(kind Kind, currency string) *Table {
	return &Table{
		Kind:     kind,
		Currency: currency,
		rows:     make(map[string]map[time.Time]decimal.Decimal),
		dates:    make(map[time.Time]struct{}),
	}
}

// Set records a cell. An invalid value registers the row and the reporting
// date without a number, so the year stays uncovered for that row.
func (t *Table) Set(row string, date time.Time, value decimal.NullDecimal) {
	date = date.UTC()
	cells, ok := t.rows[row]
	if !ok {
		cells = make(map[time.Time]decimal.Decimal)
		t.rows[row] = cells
	}
	t.dates[date] = struct{}{}
	if value.Valid {
		cells[date] = value.Decimal
	}
}

// HasRow reports whether the table carries the named row.
func (t *Table) HasRow(row string) bool {
	_, ok := t.rows[row]
	return ok
}

// Rows returns every row name in lexical order.
func (t *Table) Rows() []string {
	rows := make([]string, 0, len(t.rows))
	for row := range t.rows {
		rows = append(rows, row)
	}
	sort.Strings(rows)
	return rows
}

// Dates returns the reporting dates in ascending order.
func (t *Table) Dates() []time.Time {
	dates := make([]time.Time, 0, len(t.dates))
	for d := range t.dates {
		dates = append(dates, d)
	}
	sortDates(dates)
	return dates
}

// Value returns a single cell.
func (t *Table) Value(row string, date time.Time) (decimal.Decimal, bool) {
	cells, ok := t.rows[row]
	if !ok {
		return decimal.Decimal{}, false
	}
	v, ok := cells[date.UTC()]
	return v, ok
}

// Extract builds the year -> value map for one row. Dates are visited in
// ascending order, so when two reporting dates share a calendar year the
// later one wins regardless of how the provider ordered its columns.
func (t *Table) Extract(row string) (YearValues, error) {
	cells, ok := t.rows[row]
	if !ok {
		return YearValues{}, &UnknownRowError{Kind: t.Kind, Row: row}
	}

	dates := make([]time.Time, 0, len(cells))
	for d := range cells {
		dates = append(dates, d)
	}
	sortDates(dates)

	values := make(map[int]decimal.Decimal, len(dates))
	for _, d := range dates {
		values[d.Year()] = cells[d]
	}
	return NewYearValues(row, values), nil
}

func sortDates(dates []time.Time) {
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
}
