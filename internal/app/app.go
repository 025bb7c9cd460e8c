package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/isaacson-f/stock-bot/internal/common"
	"github.com/isaacson-f/stock-bot/internal/company"
	"github.com/isaacson-f/stock-bot/internal/eodhd"
	"github.com/isaacson-f/stock-bot/internal/finnhub"
	"github.com/isaacson-f/stock-bot/internal/fred"
	"github.com/isaacson-f/stock-bot/internal/handlers"
	"github.com/isaacson-f/stock-bot/internal/interfaces"
	"github.com/isaacson-f/stock-bot/internal/market"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Provider clients
	EODHDClient   *eodhd.Client
	FinnhubClient *finnhub.Client
	FREDClient    *fred.Client

	// Domain services
	CompanyService *company.Service
	Roster         *market.Roster

	// HTTP handlers
	APIHandler     *handlers.APIHandler
	CompanyHandler *handlers.CompanyHandler
	MarketHandler  *handlers.MarketHandler
}

// New wires clients, services and handlers from cfg. No provider calls are
// made and no background work is started; see StartBackground.
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	app.initClients()

	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()

	logger.Info().
		Str("exchange", cfg.EODHD.Exchange).
		Str("index_source", cfg.Market.IndexSource).
		Str("market_return", cfg.Market.MarketReturn).
		Msg("Application initialization complete")

	return app, nil
}

func (a *App) initClients() {
	httpClient := &http.Client{Timeout: common.Duration(a.Config.EODHD.Timeout, eodhd.DefaultTimeout)}

	a.EODHDClient = eodhd.NewClient(a.Config.EODHD.APIKey,
		eodhd.WithBaseURL(a.Config.EODHD.BaseURL),
		eodhd.WithExchange(a.Config.EODHD.Exchange),
		eodhd.WithRateLimit(a.Config.EODHD.RateLimit),
		eodhd.WithHTTPClient(httpClient),
		eodhd.WithLogger(a.Logger),
	)

	a.FinnhubClient = finnhub.NewClient(a.Config.Finnhub.APIKey,
		finnhub.WithBaseURL(a.Config.Finnhub.BaseURL),
		finnhub.WithRateLimit(a.Config.Finnhub.RateLimit),
		finnhub.WithHTTPClient(httpClient),
		finnhub.WithLogger(a.Logger),
	)

	a.FREDClient = fred.NewClient(
		fred.WithBaseURL(a.Config.FRED.BaseURL),
		fred.WithRateLimit(a.Config.FRED.RateLimit),
		fred.WithHTTPClient(httpClient),
		fred.WithLogger(a.Logger),
	)

	a.Logger.Debug().
		Int("eodhd_rate_limit", a.Config.EODHD.RateLimit).
		Int("finnhub_rate_limit", a.Config.Finnhub.RateLimit).
		Int("fred_rate_limit", a.Config.FRED.RateLimit).
		Msg("Provider clients created")
}

func (a *App) initServices() error {
	marketReturn, err := a.Config.MarketReturn()
	if err != nil {
		return err
	}

	a.CompanyService = company.NewService(company.Providers{
		Statements: a.EODHDClient,
		Quotes:     a.EODHDClient,
		News:       a.FinnhubClient,
		Yields:     a.EODHDClient,
		Inflation:  a.FREDClient,
	}, a.Logger).
		WithMarketReturn(marketReturn).
		WithNewsLookback(common.Duration(a.Config.Finnhub.NewsLookback, company.DefaultNewsLookback))

	var index interfaces.IndexProvider
	switch a.Config.Market.IndexSource {
	case "file":
		index = market.NewFileIndex(a.Config.Market.IndexFile)
	default:
		url := a.Config.Market.IndexURL
		if url == "" {
			url = market.DefaultSP500URL
		}
		index = market.NewWikipediaIndex(url, &http.Client{Timeout: 30 * time.Second}, a.Logger)
	}
	a.Roster = market.NewRoster(index, a.Logger)

	return nil
}

func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler(a.Logger)
	a.CompanyHandler = handlers.NewCompanyHandler(a.CompanyService, a.Logger)
	a.MarketHandler = handlers.NewMarketHandler(a.FinnhubClient, a.CompanyService, a.Roster, a.Logger)
}

// StartBackground loads the index roster and schedules its refresh.
func (a *App) StartBackground() error {
	if err := a.Roster.Start(a.Config.Market.RefreshSchedule); err != nil {
		return fmt.Errorf("failed to schedule index refresh: %w", err)
	}

	common.SafeGo(a.Logger, "roster-initial-load", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := a.Roster.Refresh(ctx); err != nil {
			a.Logger.Warn().Err(err).Msg("Initial index load failed, will retry on demand")
		}
	})
	return nil
}

// Close stops background work.
func (a *App) Close() error {
	if a.Roster != nil {
		a.Roster.Stop()
	}
	a.Logger.Info().Msg("Application closed")
	return nil
}
