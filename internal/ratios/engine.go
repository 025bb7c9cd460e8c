// Package ratios computes cross-statement metrics from typed statements.
package ratios

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/isaacson-f/stock-bot/internal/statements"
)

// Places is the number of decimal places kept on every quotient.
const Places = 8

// Ratio divides numerators by denominators element-wise.
func Ratio(numerators, denominators []decimal.Decimal) ([]decimal.Decimal, error) {
	if len(numerators) != len(denominators) {
		return nil, &LengthMismatchError{Numerators: len(numerators), Denominators: len(denominators)}
	}
	out := make([]decimal.Decimal, len(numerators))
	for i := range numerators {
		if denominators[i].IsZero() {
			return nil, &DivisionByZeroError{Index: i}
		}
		out[i] = numerators[i].DivRound(denominators[i], Places)
	}
	return out, nil
}

// Engine computes ratios over one company's statements.
type Engine struct {
	income  *statements.IncomeStatement
	balance *statements.BalanceSheet
	cash    *statements.CashFlow
}

// NewEngine returns an engine over the three statements.
func NewEngine(income *statements.IncomeStatement, balance *statements.BalanceSheet, cash *statements.CashFlow) *Engine {
	return &Engine{income: income, balance: balance, cash: cash}
}

// CurrentRatio returns current assets over current liabilities per year.
// With no years, every year covered by current assets is used.
func (e *Engine) CurrentRatio(years ...int) ([]decimal.Decimal, error) {
	if len(years) == 0 {
		years = e.balance.CurrentAssetYears()
	}
	assets, err := e.balance.CurrentAssets(years...)
	if err != nil {
		return nil, fmt.Errorf("current ratio: %w", err)
	}
	liabilities, err := e.balance.CurrentLiabilities(years...)
	if err != nil {
		return nil, fmt.Errorf("current ratio: %w", err)
	}
	return Ratio(assets, liabilities)
}

// GrossProfitPercentage returns net income over total assets per year.
// The name is historical; gross profit is not involved.
func (e *Engine) GrossProfitPercentage(years ...int) ([]decimal.Decimal, error) {
	if len(years) == 0 {
		years = e.income.Years()
	}
	income, err := e.income.NetIncome(years...)
	if err != nil {
		return nil, fmt.Errorf("gross profit percentage: %w", err)
	}
	assets, err := e.balance.TotalAssets(years...)
	if err != nil {
		return nil, fmt.Errorf("gross profit percentage: %w", err)
	}
	return Ratio(income, assets)
}

// FreeCashFlow returns operating cash flow plus capital expenditures per
// year. Capital expenditures are negative outflows. With no years, every
// year covered by operating cash flow is used.
func (e *Engine) FreeCashFlow(years ...int) ([]decimal.Decimal, error) {
	if len(years) == 0 {
		years = e.cash.OperatingActivityYears()
	}
	operating, err := e.cash.OperatingActivities(years...)
	if err != nil {
		return nil, missingYear(err)
	}
	capex, err := e.cash.CapitalExpenditures(years...)
	if err != nil {
		return nil, missingYear(err)
	}
	out := make([]decimal.Decimal, len(years))
	for i := range years {
		out[i] = operating[i].Add(capex[i])
	}
	return out, nil
}

// FreeCashFlowByYear is FreeCashFlow keyed by year.
func (e *Engine) FreeCashFlowByYear(years ...int) (map[int]decimal.Decimal, error) {
	if len(years) == 0 {
		years = e.cash.OperatingActivityYears()
	}
	values, err := e.FreeCashFlow(years...)
	if err != nil {
		return nil, err
	}
	out := make(map[int]decimal.Decimal, len(years))
	for i, y := range years {
		out[y] = values[i]
	}
	return out, nil
}

func missingYear(err error) error {
	var yearErr *statements.UnknownYearError
	if errors.As(err, &yearErr) {
		return &MissingYearError{Year: yearErr.Year, Row: yearErr.Row}
	}
	return err
}
