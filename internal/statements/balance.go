package statements

import "github.com/shopspring/decimal"

// Balance sheet rows.
const (
	RowTotalLiabilities        = "totalLiab"
	RowTotalStockholderEquity  = "totalStockholderEquity"
	RowTotalAssets             = "totalAssets"
	RowCommonStock             = "commonStock"
	RowCash                    = "cash"
	RowTotalCurrentLiabilities = "totalCurrentLiabilities"
	RowTotalCurrentAssets      = "totalCurrentAssets"
	RowRetainedEarnings        = "retainedEarnings"
)

// BalanceSheet holds the yearly balance sheet line items.
type BalanceSheet struct {
	currency           string
	totalLiabilities   YearValues
	stockholderEquity  YearValues
	totalAssets        YearValues
	commonStock        YearValues
	cash               YearValues
	currentLiabilities YearValues
	currentAssets      YearValues
	retainedEarnings   YearValues
}

// NewBalanceSheet extracts every balance sheet line item from t.
func NewBalanceSheet(t *Table) (*BalanceSheet, error) {
	s := &BalanceSheet{}
	err := extractLineItems(t, KindBalanceSheet, []lineItem{
		{RowTotalLiabilities, &s.totalLiabilities},
		{RowTotalStockholderEquity, &s.stockholderEquity},
		{RowTotalAssets, &s.totalAssets},
		{RowCommonStock, &s.commonStock},
		{RowCash, &s.cash},
		{RowTotalCurrentLiabilities, &s.currentLiabilities},
		{RowTotalCurrentAssets, &s.currentAssets},
		{RowRetainedEarnings, &s.retainedEarnings},
	})
	if err != nil {
		return nil, err
	}
	s.currency = t.Currency
	return s, nil
}

func (s *BalanceSheet) Currency() string { return s.currency }

// Years returns the years covered by total assets.
func (s *BalanceSheet) Years() []int { return s.totalAssets.Years() }

// CurrentAssetYears returns the years covered by current assets.
func (s *BalanceSheet) CurrentAssetYears() []int { return s.currentAssets.Years() }

func (s *BalanceSheet) TotalLiabilities(years ...int) ([]decimal.Decimal, error) {
	return s.totalLiabilities.Select(years...)
}

func (s *BalanceSheet) TotalStockholderEquity(years ...int) ([]decimal.Decimal, error) {
	return s.stockholderEquity.Select(years...)
}

func (s *BalanceSheet) TotalAssets(years ...int) ([]decimal.Decimal, error) {
	return s.totalAssets.Select(years...)
}

func (s *BalanceSheet) CommonStock(years ...int) ([]decimal.Decimal, error) {
	return s.commonStock.Select(years...)
}

func (s *BalanceSheet) Cash(years ...int) ([]decimal.Decimal, error) {
	return s.cash.Select(years...)
}

func (s *BalanceSheet) CurrentLiabilities(years ...int) ([]decimal.Decimal, error) {
	return s.currentLiabilities.Select(years...)
}

func (s *BalanceSheet) CurrentAssets(years ...int) ([]decimal.Decimal, error) {
	return s.currentAssets.Select(years...)
}

func (s *BalanceSheet) RetainedEarnings(years ...int) ([]decimal.Decimal, error) {
	return s.retainedEarnings.Select(years...)
}
