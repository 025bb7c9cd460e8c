package eodhd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/isaacson-f/stock-bot/internal/models"
	"github.com/isaacson-f/stock-bot/internal/statements"
)

// BondSymbols maps each horizon to the government bond quoted for it.
var BondSymbols = map[models.Horizon]string{
	models.Horizon5Y:  "US5Y.GBOND",
	models.Horizon10Y: "US10Y.GBOND",
	models.Horizon30Y: "US30Y.GBOND",
}

var statementFilters = map[statements.Kind]string{
	statements.KindIncome:       FilterIncomeStatement,
	statements.KindBalanceSheet: FilterBalanceSheet,
	statements.KindCashFlow:     FilterCashFlow,
}

// Fields in a yearly entry that are not line items.
var statementMetaFields = map[string]bool{
	"date":            true,
	"filing_date":     true,
	"currency_symbol": true,
}

// GetStatement fetches the yearly columns of one statement as a table.
func (c *Client) GetStatement(ctx context.Context, ticker string, kind statements.Kind) (*statements.Table, error) {
	filter, ok := statementFilters[kind]
	if !ok {
		return nil, fmt.Errorf("unknown statement kind %q", kind)
	}

	symbol := c.Symbol(ticker)
	fs, err := c.GetFinancialStatement(ctx, symbol, filter)
	if err != nil {
		return nil, fmt.Errorf("%s for %s: %w", kind, symbol, err)
	}
	if len(fs.Yearly) == 0 {
		return nil, fmt.Errorf("%s for %s: no yearly data: %w", kind, symbol, models.ErrSymbolNotFound)
	}

	table, err := toTable(kind, fs)
	if err != nil {
		return nil, fmt.Errorf("%s for %s: %w", kind, symbol, err)
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("symbol", symbol).
			Str("kind", string(kind)).
			Int("columns", len(table.Dates())).
			Msg("Statement fetched")
	}
	return table, nil
}

func toTable(kind statements.Kind, fs *FinancialStatement) (*statements.Table, error) {
	table := statements.NewTable(kind, fs.Currency)
	for key, entry := range fs.Yearly {
		date, err := time.Parse("2006-01-02", key)
		if err != nil {
			return nil, fmt.Errorf("reporting date %q: %w", key, err)
		}
		if table.Currency == "" {
			if cur, ok := entry["currency_symbol"].(string); ok {
				table.Currency = cur
			}
		}
		for field, raw := range entry {
			if statementMetaFields[field] {
				continue
			}
			value, ok := parseAmount(raw)
			if !ok {
				continue
			}
			// Capex is an outflow whatever sign EODHD reports.
			if field == statements.RowCapitalExpenditures && value.Valid {
				value.Decimal = value.Decimal.Abs().Neg()
			}
			table.Set(field, date, value)
		}
	}
	return table, nil
}

// parseAmount reads a statement cell. A null cell is reported as an
// invalid NullDecimal; non-numeric cells report ok=false.
func parseAmount(raw interface{}) (decimal.NullDecimal, bool) {
	switch v := raw.(type) {
	case nil:
		return decimal.NullDecimal{}, true
	case float64:
		return decimal.NewNullDecimal(decimal.NewFromFloat(v)), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" || strings.EqualFold(s, "none") || strings.EqualFold(s, "na") {
			return decimal.NullDecimal{}, true
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.NullDecimal{}, false
		}
		return decimal.NewNullDecimal(d), true
	}
	return decimal.NullDecimal{}, false
}

// GetQuote returns the latest close and the beta for a ticker.
func (c *Client) GetQuote(ctx context.Context, ticker string) (models.Quote, error) {
	symbol := c.Symbol(ticker)

	rt, err := c.GetRealTimeQuote(ctx, symbol)
	if err != nil {
		return models.Quote{}, fmt.Errorf("quote for %s: %w", symbol, err)
	}
	if !rt.Close.Valid {
		return models.Quote{}, fmt.Errorf("quote for %s: no price: %w", symbol, models.ErrSymbolNotFound)
	}

	tech, err := c.GetTechnicals(ctx, symbol)
	if err != nil {
		return models.Quote{}, fmt.Errorf("technicals for %s: %w", symbol, err)
	}
	if !tech.Beta.Valid {
		return models.Quote{}, fmt.Errorf("technicals for %s: no beta: %w", symbol, models.ErrSymbolNotFound)
	}

	q := models.Quote{
		Symbol: symbol,
		Price:  decimal.NewFromFloat(rt.Close.Value),
		Beta:   decimal.NewFromFloat(tech.Beta.Value),
	}
	if rt.Timestamp.Valid {
		q.Timestamp = time.Unix(int64(rt.Timestamp.Value), 0).UTC()
	}
	return q, nil
}

// TreasuryYield returns the latest yield, in percent, of the government
// bond matching the horizon.
func (c *Client) TreasuryYield(ctx context.Context, horizon models.Horizon) (decimal.Decimal, error) {
	symbol, ok := BondSymbols[horizon]
	if !ok {
		return decimal.Decimal{}, &models.UnsupportedHorizonError{Horizon: int(horizon)}
	}
	rt, err := c.GetRealTimeQuote(ctx, symbol)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("treasury yield %s: %w", symbol, err)
	}
	if !rt.Close.Valid {
		return decimal.Decimal{}, fmt.Errorf("treasury yield %s: no close", symbol)
	}
	return decimal.NewFromFloat(rt.Close.Value), nil
}
