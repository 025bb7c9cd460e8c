package statements

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amounts(vals ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(vals))
	for i, v := range vals {
		out[i] = decimal.NewFromInt(v)
	}
	return out
}

func assertAmounts(t *testing.T, want, got []decimal.Decimal) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "index %d: got %s want %s", i, got[i], want[i])
	}
}

func TestYearValues_Select(t *testing.T) {
	v := NewYearValues(RowNetIncome, map[int]decimal.Decimal{
		2022: decimal.NewFromInt(30),
		2020: decimal.NewFromInt(10),
		2021: decimal.NewFromInt(20),
	})

	t.Run("no years returns natural order", func(t *testing.T) {
		got, err := v.Select()
		require.NoError(t, err)
		assertAmounts(t, amounts(10, 20, 30), got)
	})

	t.Run("requested order is kept", func(t *testing.T) {
		got, err := v.Select(2022, 2020)
		require.NoError(t, err)
		assertAmounts(t, amounts(30, 10), got)
	})

	t.Run("repeated year", func(t *testing.T) {
		got, err := v.Select(2021, 2021)
		require.NoError(t, err)
		assertAmounts(t, amounts(20, 20), got)
	})
}

func TestYearValues_SelectUnknownYearFails(t *testing.T) {
	v := NewYearValues(RowNetIncome, map[int]decimal.Decimal{
		2021: decimal.NewFromInt(-1),
	})

	for _, year := range []int{0, 1999, 2020, 2022} {
		got, err := v.Select(2021, year)
		assert.Nil(t, got, "year %d must not return values", year)

		var yearErr *UnknownYearError
		require.True(t, errors.As(err, &yearErr), "year %d", year)
		assert.Equal(t, year, yearErr.Year)
		assert.Equal(t, []int{2021}, yearErr.Available)
	}
}

func TestYearValues_IsSnapshot(t *testing.T) {
	src := map[int]decimal.Decimal{2021: decimal.NewFromInt(1)}
	v := NewYearValues(RowCash, src)

	src[2022] = decimal.NewFromInt(2)
	years := v.Years()
	years[0] = 1900

	assert.Equal(t, []int{2021}, v.Years())
	_, ok := v.Get(2022)
	assert.False(t, ok)
}

func TestYearValues_Empty(t *testing.T) {
	var v YearValues

	got, err := v.Select()
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, v.Len())
}
