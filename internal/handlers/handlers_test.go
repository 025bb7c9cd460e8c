package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/isaacson-f/stock-bot/internal/company"
	"github.com/isaacson-f/stock-bot/internal/eodhd"
	"github.com/isaacson-f/stock-bot/internal/market"
	"github.com/isaacson-f/stock-bot/internal/models"
	"github.com/isaacson-f/stock-bot/internal/ratios"
	"github.com/isaacson-f/stock-bot/internal/statements"
	"github.com/isaacson-f/stock-bot/internal/statements/statementstest"
)

var years = []int{2021, 2022}

type fakeProviders struct {
	tables     map[statements.Kind]*statements.Table
	stmtErr    error
	newsErr    error
	stories    []models.NewsStory
	categories []string
}

func newFakeProviders() *fakeProviders {
	return &fakeProviders{
		tables: map[statements.Kind]*statements.Table{
			statements.KindIncome: statementstest.Table(statements.KindIncome, years, statementstest.Rows{
				statements.RowNetIncome: {2021: 50, 2022: 80},
			}),
			statements.KindBalanceSheet: statementstest.Table(statements.KindBalanceSheet, years, statementstest.Rows{
				statements.RowTotalAssets:             {2021: 1000, 2022: 1600},
				statements.RowTotalCurrentAssets:      {2021: 200, 2022: 240},
				statements.RowTotalCurrentLiabilities: {2021: 100, 2022: 120},
			}),
			statements.KindCashFlow: statementstest.Table(statements.KindCashFlow, years, statementstest.Rows{
				statements.RowOperatingActivities: {2021: 500, 2022: 600},
				statements.RowCapitalExpenditures: {2021: -150, 2022: -100},
			}),
		},
		stories: []models.NewsStory{{Headline: "one"}, {Headline: "two"}, {Headline: "three"}},
	}
}

func (f *fakeProviders) GetStatement(_ context.Context, _ string, kind statements.Kind) (*statements.Table, error) {
	if f.stmtErr != nil {
		return nil, f.stmtErr
	}
	return f.tables[kind], nil
}

func (f *fakeProviders) GetQuote(_ context.Context, ticker string) (models.Quote, error) {
	return models.Quote{Symbol: ticker, Price: decimal.NewFromInt(100), Beta: decimal.RequireFromString("1.2")}, nil
}

func (f *fakeProviders) CompanyNews(_ context.Context, _ string, _, _ time.Time) ([]models.NewsStory, error) {
	return f.stories, f.newsErr
}

func (f *fakeProviders) MarketNews(_ context.Context, category string) ([]models.NewsStory, error) {
	f.categories = append(f.categories, category)
	return f.stories, f.newsErr
}

func (f *fakeProviders) TreasuryYield(_ context.Context, h models.Horizon) (decimal.Decimal, error) {
	return decimal.RequireFromString("4.0"), nil
}

func (f *fakeProviders) InflationRate(_ context.Context, h models.Horizon) (decimal.Decimal, error) {
	return decimal.RequireFromString("2.0"), nil
}

type fakeIndex struct {
	members []models.Constituent
	err     error
}

func (f *fakeIndex) Constituents(context.Context) ([]models.Constituent, error) {
	return f.members, f.err
}

func newService(f *fakeProviders) *company.Service {
	return company.NewService(company.Providers{
		Statements: f,
		Quotes:     f,
		News:       f,
		Yields:     f,
		Inflation:  f,
	}, arbor.NewLogger())
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body["status"])
	return body
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err    error
		status int
		kind   string
	}{
		{&company.InvalidIdentifierError{Identifier: "X"}, http.StatusNotFound, KindInvalidIdentifier},
		{fmt.Errorf("quote: %w", models.ErrSymbolNotFound), http.StatusNotFound, KindInvalidIdentifier},
		{&models.UnsupportedHorizonError{Horizon: 7}, http.StatusBadRequest, KindUnsupportedHorizon},
		{&statements.UnknownYearError{Row: "netIncome", Year: 1999}, http.StatusBadRequest, KindUnknownYear},
		{&ratios.MissingYearError{Year: 1999}, http.StatusBadRequest, KindMissingYear},
		{&QueryError{Param: "years", Value: "x"}, http.StatusBadRequest, KindBadRequest},
		{&ratios.DivisionByZeroError{Index: 0}, http.StatusUnprocessableEntity, KindDivisionByZero},
		{&ratios.LengthMismatchError{Numerators: 1}, http.StatusUnprocessableEntity, KindLengthMismatch},
		{&statements.UnknownRowError{Kind: statements.KindIncome, Row: "x"}, http.StatusUnprocessableEntity, KindUnknownRow},
		{&eodhd.RateLimitError{RetryAfter: time.Minute}, http.StatusTooManyRequests, KindRateLimited},
		{fmt.Errorf("fetch: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, KindTimeout},
		{errors.New("connection refused"), http.StatusBadGateway, KindProvider},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			status, kind := classify(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestAPIHandler(t *testing.T) {
	h := NewAPIHandler(arbor.NewLogger())

	rec := httptest.NewRecorder()
	h.HealthHandler(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.VersionHandler(rec, httptest.NewRequest(http.MethodPost, "/api/version", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, KindMethodNotAllowed, decodeError(t, rec)["kind"])
}

func TestCompanyHandler_Report(t *testing.T) {
	h := NewCompanyHandler(newService(newFakeProviders()), arbor.NewLogger())

	rec := httptest.NewRecorder()
	h.ReportHandler(rec, httptest.NewRequest(http.MethodGet, "/api/company?ticker=aapl&years=2022&horizons=10&news=2", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report company.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "AAPL", report.Ticker)
	assert.Equal(t, []int{2022}, report.CurrentRatio.Years)
	require.Len(t, report.CurrentRatio.Values, 1)
	assert.True(t, decimal.NewFromInt(2).Equal(report.CurrentRatio.Values[0]))
	require.Len(t, report.FreeCashFlow.Values, 1)
	assert.True(t, decimal.NewFromInt(500).Equal(report.FreeCashFlow.Values[0]))
	// 4.0 - 2.0 + 1.2 * (5.6 - 2.0)
	assert.True(t, decimal.RequireFromString("6.32").Equal(report.CAPM["10Y"]))
	assert.Len(t, report.News, 2)
}

func TestCompanyHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		setup  func(*fakeProviders)
		status int
		kind   string
	}{
		{"missing ticker", "", nil, http.StatusBadRequest, KindBadRequest},
		{"bad ticker", "ticker=A%2FB", nil, http.StatusNotFound, KindInvalidIdentifier},
		{"bad years", "ticker=AAPL&years=twenty", nil, http.StatusBadRequest, KindBadRequest},
		{"unknown year", "ticker=AAPL&years=1999", nil, http.StatusBadRequest, KindUnknownYear},
		{"bad horizon", "ticker=AAPL&horizons=7", nil, http.StatusBadRequest, KindUnsupportedHorizon},
		{"too many headlines", "ticker=AAPL&news=10", nil, http.StatusBadRequest, KindBadRequest},
		{"unknown symbol", "ticker=ZZZZ", func(f *fakeProviders) {
			f.stmtErr = &eodhd.APIError{StatusCode: http.StatusNotFound, Message: "Ticker Not Found"}
		}, http.StatusNotFound, KindInvalidIdentifier},
		{"provider down", "ticker=AAPL", func(f *fakeProviders) {
			f.stmtErr = errors.New("connection reset")
		}, http.StatusBadGateway, KindProvider},
		{"schema change", "ticker=AAPL", func(f *fakeProviders) {
			f.tables[statements.KindBalanceSheet] = statementstest.Without(statements.KindBalanceSheet, years, statements.RowTotalCurrentAssets)
		}, http.StatusUnprocessableEntity, KindUnknownRow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeProviders()
			if tt.setup != nil {
				tt.setup(f)
			}
			h := NewCompanyHandler(newService(f), arbor.NewLogger())

			rec := httptest.NewRecorder()
			h.ReportHandler(rec, httptest.NewRequest(http.MethodGet, "/api/company?"+tt.query, nil))

			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.kind, decodeError(t, rec)["kind"])
		})
	}
}

func TestMarketHandler_News(t *testing.T) {
	f := newFakeProviders()
	h := NewMarketHandler(f, newService(f), nil, arbor.NewLogger())

	rec := httptest.NewRecorder()
	h.NewsHandler(rec, httptest.NewRequest(http.MethodGet, "/api/market/news?category=Forex&count=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp newsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "forex", resp.Source)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "one", resp.Stories[0].Headline)

	rec = httptest.NewRecorder()
	h.NewsHandler(rec, httptest.NewRequest(http.MethodGet, "/api/market/news", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"forex", "general"}, f.categories)

	rec = httptest.NewRecorder()
	h.NewsHandler(rec, httptest.NewRequest(http.MethodGet, "/api/market/news?count=4", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarketHandler_Rates(t *testing.T) {
	f := newFakeProviders()
	h := NewMarketHandler(f, newService(f), nil, arbor.NewLogger())

	rec := httptest.NewRecorder()
	h.RatesHandler(rec, httptest.NewRequest(http.MethodGet, "/api/market/rates", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ratesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Rates, 3)
	assert.Equal(t, models.Horizon30Y, resp.Rates[2].Horizon)
	assert.True(t, decimal.NewFromInt(2).Equal(resp.Rates[0].RiskFreeRate))
	assert.True(t, decimal.RequireFromString("5.6").Equal(resp.MarketReturn))

	rec = httptest.NewRecorder()
	h.RatesHandler(rec, httptest.NewRequest(http.MethodGet, "/api/market/rates?horizon=20", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, KindUnsupportedHorizon, decodeError(t, rec)["kind"])
}

func TestMarketHandler_Index(t *testing.T) {
	f := newFakeProviders()
	index := &fakeIndex{members: []models.Constituent{
		{Symbol: "AAPL", Name: "Apple Inc.", Sector: "Information Technology"},
		{Symbol: "BRK-B", Name: "Berkshire Hathaway", Sector: "Financials"},
		{Symbol: "BAD SYMBOL", Name: "Broken", Sector: "Financials"},
	}}
	roster := market.NewRoster(index, arbor.NewLogger())
	h := NewMarketHandler(f, newService(f), roster, arbor.NewLogger())

	rec := httptest.NewRecorder()
	h.IndexHandler(rec, httptest.NewRequest(http.MethodGet, "/api/market/index", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp indexResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "BRK-B", resp.Constituents[1].Symbol)
	assert.Equal(t, "Financials", resp.Constituents[1].Sector)

	rec = httptest.NewRecorder()
	h.IndexHandler(rec, httptest.NewRequest(http.MethodGet, "/api/market/index?sector=financials", nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "Berkshire Hathaway", resp.Constituents[0].Name)
}

func TestMarketHandler_IndexUnavailable(t *testing.T) {
	f := newFakeProviders()
	roster := market.NewRoster(&fakeIndex{err: errors.New("wikipedia unreachable")}, arbor.NewLogger())
	h := NewMarketHandler(f, newService(f), roster, arbor.NewLogger())

	rec := httptest.NewRecorder()
	h.IndexHandler(rec, httptest.NewRequest(http.MethodGet, "/api/market/index", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, KindProvider, decodeError(t, rec)["kind"])
}
