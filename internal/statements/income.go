package statements

import "github.com/shopspring/decimal"

// Income statement rows.
const (
	RowTotalRevenue           = "totalRevenue"
	RowCostOfRevenue          = "costOfRevenue"
	RowGrossProfit            = "grossProfit"
	RowTotalOperatingExpenses = "totalOperatingExpenses"
	RowOperatingIncome        = "operatingIncome"
	RowIncomeBeforeTax        = "incomeBeforeTax"
	RowIncomeTaxExpense       = "incomeTaxExpense"
	RowNetIncome              = "netIncome"
)

// IncomeStatement holds the yearly income statement line items.
type IncomeStatement struct {
	currency          string
	netSales          YearValues
	costOfGoodsSold   YearValues
	grossProfit       YearValues
	operatingExpenses YearValues
	operatingIncome   YearValues
	incomeBeforeTax   YearValues
	incomeTaxExpense  YearValues
	netIncome         YearValues
}

// NewIncomeStatement extracts every income statement line item from t.
func NewIncomeStatement(t *Table) (*IncomeStatement, error) {
	s := &IncomeStatement{}
	err := extractLineItems(t, KindIncome, []lineItem{
		{RowTotalRevenue, &s.netSales},
		{RowCostOfRevenue, &s.costOfGoodsSold},
		{RowGrossProfit, &s.grossProfit},
		{RowTotalOperatingExpenses, &s.operatingExpenses},
		{RowOperatingIncome, &s.operatingIncome},
		{RowIncomeBeforeTax, &s.incomeBeforeTax},
		{RowIncomeTaxExpense, &s.incomeTaxExpense},
		{RowNetIncome, &s.netIncome},
	})
	if err != nil {
		return nil, err
	}
	s.currency = t.Currency
	return s, nil
}

// Currency returns the reporting currency.
func (s *IncomeStatement) Currency() string { return s.currency }

// Years returns the years covered by net income.
func (s *IncomeStatement) Years() []int { return s.netIncome.Years() }

func (s *IncomeStatement) NetSales(years ...int) ([]decimal.Decimal, error) {
	return s.netSales.Select(years...)
}

func (s *IncomeStatement) CostOfGoodsSold(years ...int) ([]decimal.Decimal, error) {
	return s.costOfGoodsSold.Select(years...)
}

func (s *IncomeStatement) GrossProfit(years ...int) ([]decimal.Decimal, error) {
	return s.grossProfit.Select(years...)
}

func (s *IncomeStatement) OperatingExpenses(years ...int) ([]decimal.Decimal, error) {
	return s.operatingExpenses.Select(years...)
}

func (s *IncomeStatement) OperatingIncome(years ...int) ([]decimal.Decimal, error) {
	return s.operatingIncome.Select(years...)
}

// IncomeBeforeTax returns earnings before income tax.
func (s *IncomeStatement) IncomeBeforeTax(years ...int) ([]decimal.Decimal, error) {
	return s.incomeBeforeTax.Select(years...)
}

func (s *IncomeStatement) IncomeTaxExpense(years ...int) ([]decimal.Decimal, error) {
	return s.incomeTaxExpense.Select(years...)
}

func (s *IncomeStatement) NetIncome(years ...int) ([]decimal.Decimal, error) {
	return s.netIncome.Select(years...)
}
