package statements_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacson-f/stock-bot/internal/statements"
	"github.com/isaacson-f/stock-bot/internal/statements/statementstest"
)

var years = []int{2020, 2021, 2022}

func TestNewIncomeStatement(t *testing.T) {
	table := statementstest.Table(statements.KindIncome, years, statementstest.Rows{
		statements.RowTotalRevenue: {2020: 1000, 2021: 1100, 2022: 1300},
		statements.RowNetIncome:    {2020: 90, 2021: 120, 2022: 150},
	})

	s, err := statements.NewIncomeStatement(table)
	require.NoError(t, err)

	assert.Equal(t, "USD", s.Currency())
	assert.Equal(t, years, s.Years())

	sales, err := s.NetSales(2022, 2020)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.True(t, decimal.NewFromInt(1300).Equal(sales[0]))
	assert.True(t, decimal.NewFromInt(1000).Equal(sales[1]))

	income, err := s.NetIncome()
	require.NoError(t, err)
	assert.Len(t, income, 3)
}

func TestNewBalanceSheet(t *testing.T) {
	table := statementstest.Table(statements.KindBalanceSheet, []int{2021, 2022}, statementstest.Rows{
		statements.RowTotalCurrentAssets:      {2021: 200, 2022: 240},
		statements.RowTotalCurrentLiabilities: {2021: 100, 2022: 120},
	})

	s, err := statements.NewBalanceSheet(table)
	require.NoError(t, err)

	assets, err := s.CurrentAssets()
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(200).Equal(assets[0]))
	assert.True(t, decimal.NewFromInt(240).Equal(assets[1]))

	_, err = s.CurrentLiabilities(2019)
	var yearErr *statements.UnknownYearError
	require.True(t, errors.As(err, &yearErr))
	assert.Equal(t, statements.RowTotalCurrentLiabilities, yearErr.Row)
}

func TestNewCashFlow(t *testing.T) {
	table := statementstest.Table(statements.KindCashFlow, []int{2021}, statementstest.Rows{
		statements.RowOperatingActivities: {2021: 500},
		statements.RowCapitalExpenditures: {2021: -150},
	})

	s, err := statements.NewCashFlow(table)
	require.NoError(t, err)

	assert.Equal(t, []int{2021}, s.OperatingActivityYears())
	capex, err := s.CapitalExpenditures(2021)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(-150).Equal(capex[0]))
}

func TestRecords_MissingRowFails(t *testing.T) {
	for _, kind := range statements.Kinds {
		for _, row := range statementstest.RequiredRows(kind) {
			table := statementstest.Without(kind, years, row)

			var err error
			switch kind {
			case statements.KindIncome:
				_, err = statements.NewIncomeStatement(table)
			case statements.KindBalanceSheet:
				_, err = statements.NewBalanceSheet(table)
			case statements.KindCashFlow:
				_, err = statements.NewCashFlow(table)
			}

			var rowErr *statements.UnknownRowError
			require.True(t, errors.As(err, &rowErr), "%s without %s", kind, row)
			assert.Equal(t, row, rowErr.Row)
		}
	}
}

func TestRecords_WrongKindFails(t *testing.T) {
	table := statementstest.Table(statements.KindCashFlow, years, nil)

	_, err := statements.NewIncomeStatement(table)
	assert.Error(t, err)

	_, err = statements.NewBalanceSheet(nil)
	assert.Error(t, err)
}
