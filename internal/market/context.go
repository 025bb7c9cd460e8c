// Package market supplies macroeconomic inputs and index membership.
package market

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/ternarybob/arbor"

	"github.com/isaacson-f/stock-bot/internal/interfaces"
	"github.com/isaacson-f/stock-bot/internal/models"
)

// Figures are the rate inputs for one horizon, all in percent.
type Figures struct {
	Horizon       models.Horizon  `json:"horizon"`
	TreasuryYield decimal.Decimal `json:"treasury_yield"`
	InflationRate decimal.Decimal `json:"inflation_rate"`
	RiskFreeRate  decimal.Decimal `json:"risk_free_rate"`
}

// Context holds the treasury yield and inflation figures used during one
// request. Each horizon is fetched at most once per Context.
type Context struct {
	yields    interfaces.YieldProvider
	inflation interfaces.InflationProvider
	logger    arbor.ILogger

	mu      sync.Mutex
	figures map[models.Horizon]Figures
}

// NewContext creates an empty request-scoped market context.
func NewContext(yields interfaces.YieldProvider, inflation interfaces.InflationProvider, logger arbor.ILogger) *Context {
	return &Context{
		yields:    yields,
		inflation: inflation,
		logger:    logger,
		figures:   make(map[models.Horizon]Figures),
	}
}

// Figures returns the rate inputs for h, fetching them on first use.
func (c *Context) Figures(ctx context.Context, h models.Horizon) (Figures, error) {
	if _, err := models.ParseHorizon(int(h)); err != nil {
		return Figures{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if f, ok := c.figures[h]; ok {
		return f, nil
	}

	yield, err := c.yields.TreasuryYield(ctx, h)
	if err != nil {
		return Figures{}, fmt.Errorf("treasury yield %s: %w", h, err)
	}
	inflation, err := c.inflation.InflationRate(ctx, h)
	if err != nil {
		return Figures{}, fmt.Errorf("inflation rate %s: %w", h, err)
	}

	f := Figures{
		Horizon:       h,
		TreasuryYield: yield,
		InflationRate: inflation,
		RiskFreeRate:  yield.Sub(inflation),
	}
	c.figures[h] = f

	if c.logger != nil {
		c.logger.Debug().
			Str("horizon", h.String()).
			Str("yield", yield.String()).
			Str("inflation", inflation.String()).
			Msg("Market rates loaded")
	}
	return f, nil
}

// RiskFreeRate returns treasury yield minus inflation for h.
func (c *Context) RiskFreeRate(ctx context.Context, h models.Horizon) (decimal.Decimal, error) {
	f, err := c.Figures(ctx, h)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return f.RiskFreeRate, nil
}

// TreasuryYield returns the treasury yield for h.
func (c *Context) TreasuryYield(ctx context.Context, h models.Horizon) (decimal.Decimal, error) {
	f, err := c.Figures(ctx, h)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return f.TreasuryYield, nil
}

// InflationRate returns the inflation rate for h.
func (c *Context) InflationRate(ctx context.Context, h models.Horizon) (decimal.Decimal, error) {
	f, err := c.Figures(ctx, h)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return f.InflationRate, nil
}
