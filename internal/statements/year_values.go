package statements

import (
	"sort"

	"github.com/shopspring/decimal"
)

// YearValues is an immutable year -> amount map for one line item. Its
// natural order is ascending by year.
type YearValues struct {
	row    string
	years  []int
	values map[int]decimal.Decimal
}

// NewYearValues copies values into a new snapshot.
func NewYearValues(row string, values map[int]decimal.Decimal) YearValues {
	v := YearValues{
		row:    row,
		years:  make([]int, 0, len(values)),
		values: make(map[int]decimal.Decimal, len(values)),
	}
	for year, amount := range values {
		v.years = append(v.years, year)
		v.values[year] = amount
	}
	sort.Ints(v.years)
	return v
}

// Row returns the source row name.
func (v YearValues) Row() string { return v.row }

// Len returns the number of covered years.
func (v YearValues) Len() int { return len(v.years) }

// Years returns the covered years in ascending order.
func (v YearValues) Years() []int {
	out := make([]int, len(v.years))
	copy(out, v.years)
	return out
}

// Get returns the amount for a single year.
func (v YearValues) Get(year int) (decimal.Decimal, bool) {
	amount, ok := v.values[year]
	return amount, ok
}

// Select returns one amount per requested year, in request order. With no
// years it returns every amount in natural order. A year that is not covered
// fails with *UnknownYearError.
func (v YearValues) Select(years ...int) ([]decimal.Decimal, error) {
	if len(years) == 0 {
		years = v.years
	}
	out := make([]decimal.Decimal, 0, len(years))
	for _, year := range years {
		amount, ok := v.values[year]
		if !ok {
			return nil, &UnknownYearError{Row: v.row, Year: year, Available: v.Years()}
		}
		out = append(out, amount)
	}
	return out, nil
}
