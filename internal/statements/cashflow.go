package statements

import "github.com/shopspring/decimal"

// Cash flow rows. RowNetIncome is shared with the income statement.
const (
	RowInvestingActivities = "totalCashflowsFromInvestingActivities"
	RowFinancingActivities = "totalCashFromFinancingActivities"
	RowOperatingActivities = "totalCashFromOperatingActivities"
	RowChangeToLiabilities = "changeToLiabilities"
	RowChangeInCash        = "changeInCash"
	RowCapitalExpenditures = "capitalExpenditures"
)

// CashFlow holds the yearly cash flow statement line items. Capital
// expenditures follow the cash flow sign convention: outflows are negative.
type CashFlow struct {
	currency            string
	investingActivities YearValues
	financingActivities YearValues
	operatingActivities YearValues
	changeToLiabilities YearValues
	netIncome           YearValues
	changeInCash        YearValues
	capitalExpenditures YearValues
}

// NewCashFlow extracts every cash flow line item from t.
func NewCashFlow(t *Table) (*CashFlow, error) {
	s := &CashFlow{}
	err := extractLineItems(t, KindCashFlow, []lineItem{
		{RowInvestingActivities, &s.investingActivities},
		{RowFinancingActivities, &s.financingActivities},
		{RowOperatingActivities, &s.operatingActivities},
		{RowChangeToLiabilities, &s.changeToLiabilities},
		{RowNetIncome, &s.netIncome},
		{RowChangeInCash, &s.changeInCash},
		{RowCapitalExpenditures, &s.capitalExpenditures},
	})
	if err != nil {
		return nil, err
	}
	s.currency = t.Currency
	return s, nil
}

func (s *CashFlow) Currency() string { return s.currency }

// OperatingActivityYears returns the years covered by operating cash flow.
func (s *CashFlow) OperatingActivityYears() []int { return s.operatingActivities.Years() }

// CapitalExpenditureYears returns the years covered by capital expenditures.
func (s *CashFlow) CapitalExpenditureYears() []int { return s.capitalExpenditures.Years() }

func (s *CashFlow) InvestingActivities(years ...int) ([]decimal.Decimal, error) {
	return s.investingActivities.Select(years...)
}

func (s *CashFlow) FinancingActivities(years ...int) ([]decimal.Decimal, error) {
	return s.financingActivities.Select(years...)
}

func (s *CashFlow) OperatingActivities(years ...int) ([]decimal.Decimal, error) {
	return s.operatingActivities.Select(years...)
}

func (s *CashFlow) ChangeToLiabilities(years ...int) ([]decimal.Decimal, error) {
	return s.changeToLiabilities.Select(years...)
}

func (s *CashFlow) NetIncome(years ...int) ([]decimal.Decimal, error) {
	return s.netIncome.Select(years...)
}

func (s *CashFlow) ChangeInCash(years ...int) ([]decimal.Decimal, error) {
	return s.changeInCash.Select(years...)
}

func (s *CashFlow) CapitalExpenditures(years ...int) ([]decimal.Decimal, error) {
	return s.capitalExpenditures.Select(years...)
}
