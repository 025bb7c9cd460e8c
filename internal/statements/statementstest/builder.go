// Package statementstest builds statement tables for tests.
package statementstest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/isaacson-f/stock-bot/internal/statements"
)

// Rows maps a row name to per-year amounts.
type Rows map[string]map[int]int64

var requiredRows = map[statements.Kind][]string{
	statements.KindIncome: {
		statements.RowTotalRevenue,
		statements.RowCostOfRevenue,
		statements.RowGrossProfit,
		statements.RowTotalOperatingExpenses,
		statements.RowOperatingIncome,
		statements.RowIncomeBeforeTax,
		statements.RowIncomeTaxExpense,
		statements.RowNetIncome,
	},
	statements.KindBalanceSheet: {
		statements.RowTotalLiabilities,
		statements.RowTotalStockholderEquity,
		statements.RowTotalAssets,
		statements.RowCommonStock,
		statements.RowCash,
		statements.RowTotalCurrentLiabilities,
		statements.RowTotalCurrentAssets,
		statements.RowRetainedEarnings,
	},
	statements.KindCashFlow: {
		statements.RowInvestingActivities,
		statements.RowFinancingActivities,
		statements.RowOperatingActivities,
		statements.RowChangeToLiabilities,
		statements.RowNetIncome,
		statements.RowChangeInCash,
		statements.RowCapitalExpenditures,
	},
}

// RequiredRows returns the rows a record of kind extracts.
func RequiredRows(kind statements.Kind) []string {
	return append([]string(nil), requiredRows[kind]...)
}

// YearEnd returns December 31st of year in UTC.
func YearEnd(year int) time.Time {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// Table returns a complete table of kind. Required rows that rows does not
// mention are filled with zero for every year; rows listed in rows only
// cover the years they name.
func Table(kind statements.Kind, years []int, rows Rows) *statements.Table {
	t := statements.NewTable(kind, "USD")
	for _, row := range requiredRows[kind] {
		if _, ok := rows[row]; ok {
			continue
		}
		for _, y := range years {
			t.Set(row, YearEnd(y), decimal.NewNullDecimal(decimal.Zero))
		}
	}
	for row, values := range rows {
		for y, v := range values {
			t.Set(row, YearEnd(y), decimal.NewNullDecimal(decimal.NewFromInt(v)))
		}
	}
	return t
}

// Without returns a copy of kind's complete table minus one row.
func Without(kind statements.Kind, years []int, missing string) *statements.Table {
	t := statements.NewTable(kind, "USD")
	for _, row := range requiredRows[kind] {
		if row == missing {
			continue
		}
		for _, y := range years {
			t.Set(row, YearEnd(y), decimal.NewNullDecimal(decimal.NewFromInt(1)))
		}
	}
	return t
}
