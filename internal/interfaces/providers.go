package interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/isaacson-f/stock-bot/internal/models"
	"github.com/isaacson-f/stock-bot/internal/statements"
)

// StatementProvider fetches yearly financial statements for a ticker.
type StatementProvider interface {
	GetStatement(ctx context.Context, ticker string, kind statements.Kind) (*statements.Table, error)
}

// QuoteProvider fetches the current price and beta for a ticker.
type QuoteProvider interface {
	GetQuote(ctx context.Context, ticker string) (models.Quote, error)
}

// YieldProvider fetches the treasury yield, in percent, for a horizon.
type YieldProvider interface {
	TreasuryYield(ctx context.Context, horizon models.Horizon) (decimal.Decimal, error)
}

// InflationProvider fetches the expected inflation rate, in percent, for a
// horizon.
type InflationProvider interface {
	InflationRate(ctx context.Context, horizon models.Horizon) (decimal.Decimal, error)
}

// NewsProvider fetches company and market headlines.
type NewsProvider interface {
	CompanyNews(ctx context.Context, ticker string, from, to time.Time) ([]models.NewsStory, error)
	MarketNews(ctx context.Context, category string) ([]models.NewsStory, error)
}

// IndexProvider lists the constituents of a market index.
type IndexProvider interface {
	Constituents(ctx context.Context) ([]models.Constituent, error)
}
