package ratios

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/isaacson-f/stock-bot/internal/models"
)

// DefaultMarketReturn is the assumed annual market return in percent.
var DefaultMarketReturn = decimal.RequireFromString("5.6")

// RiskFreeSource supplies the risk-free rate for a horizon, in percent.
type RiskFreeSource interface {
	RiskFreeRate(ctx context.Context, horizon models.Horizon) (decimal.Decimal, error)
}

// ExpectedReturn applies the CAPM formula rf + beta*(market - rf).
func ExpectedReturn(riskFree, beta, marketReturn decimal.Decimal) decimal.Decimal {
	return riskFree.Add(beta.Mul(marketReturn.Sub(riskFree)))
}

// CAPMExpectedReturn validates horizonYears and applies CAPM using the
// risk-free rate for that horizon.
func CAPMExpectedReturn(ctx context.Context, rates RiskFreeSource, horizonYears int, beta, marketReturn decimal.Decimal) (decimal.Decimal, error) {
	horizon, err := models.ParseHorizon(horizonYears)
	if err != nil {
		return decimal.Decimal{}, err
	}
	rf, err := rates.RiskFreeRate(ctx, horizon)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("risk-free rate (%s): %w", horizon, err)
	}
	return ExpectedReturn(rf, beta, marketReturn), nil
}
