package company

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/isaacson-f/stock-bot/internal/market"
	"github.com/isaacson-f/stock-bot/internal/models"
	"github.com/isaacson-f/stock-bot/internal/news"
	"github.com/isaacson-f/stock-bot/internal/ratios"
	"github.com/isaacson-f/stock-bot/internal/statements"
)

// State is a profile's lifecycle stage.
type State int

const (
	StateUninitialized State = iota
	StatePopulated
)

func (s State) String() string {
	if s == StatePopulated {
		return "populated"
	}
	return "uninitialized"
}

// Listing is index data known before population.
type Listing struct {
	Name      string          `json:"name,omitempty"`
	MarketCap decimal.Decimal `json:"market_cap"`
	Price     decimal.Decimal `json:"price"`
}

// Profile is one company. It starts Uninitialized and becomes Populated
// after a successful Populate; it never goes back.
type Profile struct {
	id      string
	svc     *Service
	market  *market.Context
	listing Listing

	mu    sync.Mutex
	state State
	data  *populated
}

type populated struct {
	income  *statements.IncomeStatement
	balance *statements.BalanceSheet
	cash    *statements.CashFlow
	quote   models.Quote
	news    *news.Feed
	engine  *ratios.Engine
	fetched time.Time
}

// Identifier returns the normalized ticker.
func (p *Profile) Identifier() string { return p.id }

// Listing returns the index data the profile was built with.
func (p *Profile) Listing() Listing { return p.listing }

// Market returns the profile's market context.
func (p *Profile) Market() *market.Context { return p.market }

// State returns the current lifecycle stage.
func (p *Profile) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Populate fetches the income statement, balance sheet and cash flow, then
// the quote, then company news. Calls are sequential. On any failure the
// profile stays Uninitialized and may be populated again.
func (p *Profile) Populate(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StatePopulated {
		return &AlreadyPopulatedError{Identifier: p.id}
	}

	start := time.Now()
	logger := p.svc.logger
	if logger != nil {
		logger.Info().Str("ticker", p.id).Msg("Populating company profile")
	}

	d := &populated{}
	var err error

	if d.income, err = p.loadIncome(ctx); err != nil {
		return p.fail("income statement", err)
	}
	if d.balance, err = p.loadBalance(ctx); err != nil {
		return p.fail("balance sheet", err)
	}
	if d.cash, err = p.loadCashFlow(ctx); err != nil {
		return p.fail("cash flow", err)
	}

	if d.quote, err = p.svc.quotes.GetQuote(ctx, p.id); err != nil {
		return p.fail("quote", err)
	}

	to := p.svc.now()
	stories, err := p.svc.news.CompanyNews(ctx, p.id, to.Add(-p.svc.newsLookback), to)
	if err != nil {
		return p.fail("news", err)
	}
	d.news = news.NewFeed(p.id, stories)

	d.engine = ratios.NewEngine(d.income, d.balance, d.cash)
	d.fetched = to
	p.data = d
	p.state = StatePopulated

	if logger != nil {
		logger.Info().
			Str("ticker", p.id).
			Str("price", d.quote.Price.String()).
			Str("beta", d.quote.Beta.String()).
			Int("stories", d.news.Len()).
			Dur("duration", time.Since(start)).
			Msg("Company profile populated")
	}
	return nil
}

func (p *Profile) loadIncome(ctx context.Context) (*statements.IncomeStatement, error) {
	t, err := p.svc.statements.GetStatement(ctx, p.id, statements.KindIncome)
	if err != nil {
		return nil, err
	}
	return statements.NewIncomeStatement(t)
}

func (p *Profile) loadBalance(ctx context.Context) (*statements.BalanceSheet, error) {
	t, err := p.svc.statements.GetStatement(ctx, p.id, statements.KindBalanceSheet)
	if err != nil {
		return nil, err
	}
	return statements.NewBalanceSheet(t)
}

func (p *Profile) loadCashFlow(ctx context.Context) (*statements.CashFlow, error) {
	t, err := p.svc.statements.GetStatement(ctx, p.id, statements.KindCashFlow)
	if err != nil {
		return nil, err
	}
	return statements.NewCashFlow(t)
}

func (p *Profile) fail(step string, err error) error {
	if p.svc.logger != nil {
		p.svc.logger.Warn().
			Err(err).
			Str("ticker", p.id).
			Str("step", step).
			Msg("Company profile population failed")
	}
	if errors.Is(err, models.ErrSymbolNotFound) {
		return &InvalidIdentifierError{Identifier: p.id, Err: err}
	}
	return fmt.Errorf("populate %s (%s): %w", p.id, step, err)
}

func (p *Profile) loaded(op string) (*populated, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StatePopulated {
		return nil, &NotInitializedError{Identifier: p.id, Operation: op}
	}
	return p.data, nil
}

// Quote returns the quote captured during population.
func (p *Profile) Quote() (models.Quote, error) {
	d, err := p.loaded("quote")
	if err != nil {
		return models.Quote{}, err
	}
	return d.quote, nil
}

// Price returns the share price captured during population.
func (p *Profile) Price() (decimal.Decimal, error) {
	d, err := p.loaded("price")
	if err != nil {
		return decimal.Decimal{}, err
	}
	return d.quote.Price, nil
}

// Beta returns the beta captured during population.
func (p *Profile) Beta() (decimal.Decimal, error) {
	d, err := p.loaded("beta")
	if err != nil {
		return decimal.Decimal{}, err
	}
	return d.quote.Beta, nil
}

// IncomeStatement returns the income statement.
func (p *Profile) IncomeStatement() (*statements.IncomeStatement, error) {
	d, err := p.loaded("income statement")
	if err != nil {
		return nil, err
	}
	return d.income, nil
}

// BalanceSheet returns the balance sheet.
func (p *Profile) BalanceSheet() (*statements.BalanceSheet, error) {
	d, err := p.loaded("balance sheet")
	if err != nil {
		return nil, err
	}
	return d.balance, nil
}

// CashFlow returns the cash flow statement.
func (p *Profile) CashFlow() (*statements.CashFlow, error) {
	d, err := p.loaded("cash flow")
	if err != nil {
		return nil, err
	}
	return d.cash, nil
}

// News returns the company news feed.
func (p *Profile) News() (*news.Feed, error) {
	d, err := p.loaded("news")
	if err != nil {
		return nil, err
	}
	return d.news, nil
}

// CurrentRatio returns current assets over current liabilities per year.
func (p *Profile) CurrentRatio(years ...int) ([]decimal.Decimal, error) {
	d, err := p.loaded("current ratio")
	if err != nil {
		return nil, err
	}
	return d.engine.CurrentRatio(years...)
}

// GrossProfitPercentage returns net income over total assets per year.
func (p *Profile) GrossProfitPercentage(years ...int) ([]decimal.Decimal, error) {
	d, err := p.loaded("gross profit percentage")
	if err != nil {
		return nil, err
	}
	return d.engine.GrossProfitPercentage(years...)
}

// FreeCashFlow returns operating cash flow plus capital expenditures per year.
func (p *Profile) FreeCashFlow(years ...int) ([]decimal.Decimal, error) {
	d, err := p.loaded("free cash flow")
	if err != nil {
		return nil, err
	}
	return d.engine.FreeCashFlow(years...)
}

// CAPMExpectedReturn returns the expected return, in percent, over a 5, 10
// or 30 year horizon.
func (p *Profile) CAPMExpectedReturn(ctx context.Context, horizonYears int) (decimal.Decimal, error) {
	d, err := p.loaded("CAPM expected return")
	if err != nil {
		return decimal.Decimal{}, err
	}
	return ratios.CAPMExpectedReturn(ctx, p.market, horizonYears, d.quote.Beta, p.svc.marketReturn)
}
