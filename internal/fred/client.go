// Package fred reads breakeven inflation rates from FRED series pages.
package fred

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/isaacson-f/stock-bot/internal/models"
)

const (
	// DefaultBaseURL is the FRED series page root.
	DefaultBaseURL = "https://fred.stlouisfed.org/series"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 20 * time.Second

	// DefaultRateLimit is the default rate limit in requests per minute.
	DefaultRateLimit = 30

	observationSelector = "span.series-meta-observation-value"
)

// Series maps each horizon to its breakeven inflation series.
var Series = map[models.Horizon]string{
	models.Horizon5Y:  "T5YIE",
	models.Horizon10Y: "T10YIE",
	models.Horizon30Y: "T30YIEM",
}

// PageError is returned when a series page cannot be fetched or read.
type PageError struct {
	SeriesID   string
	StatusCode int
	Message    string
}

func (e *PageError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("FRED series %s: %s (status: %d)", e.SeriesID, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("FRED series %s: %s", e.SeriesID, e.Message)
}

// Client scrapes the latest observation from FRED series pages.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets a custom rate limit in requests per minute.
func WithRateLimit(requestsPerMinute int) ClientOption {
	return func(c *Client) {
		c.limiter = newLimiter(requestsPerMinute)
	}
}

func newLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	// One token per interval with no burst: at most requestsPerMinute calls
	// start in any minute.
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
}

// NewClient creates a FRED page client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: newLimiter(DefaultRateLimit),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InflationRate returns the latest breakeven inflation, in percent, for the
// horizon.
func (c *Client) InflationRate(ctx context.Context, horizon models.Horizon) (decimal.Decimal, error) {
	id, ok := Series[horizon]
	if !ok {
		return decimal.Decimal{}, &models.UnsupportedHorizonError{Horizon: int(horizon)}
	}
	return c.LatestObservation(ctx, id)
}

// LatestObservation returns the headline observation of a series page.
func (c *Client) LatestObservation(ctx context.Context, seriesID string) (decimal.Decimal, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return decimal.Decimal{}, fmt.Errorf("rate limiter: %w", err)
	}

	pageURL := c.baseURL + "/" + seriesID
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to create request: %w", err)
	}

	if c.logger != nil {
		c.logger.Debug().Str("url", pageURL).Msg("FRED page request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return decimal.Decimal{}, &PageError{SeriesID: seriesID, StatusCode: resp.StatusCode, Message: resp.Status}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to parse page: %w", err)
	}

	text := strings.TrimSpace(doc.Find(observationSelector).First().Text())
	if text == "" {
		return decimal.Decimal{}, &PageError{SeriesID: seriesID, Message: "no observation on page"}
	}
	value, err := decimal.NewFromString(strings.TrimSuffix(text, "%"))
	if err != nil {
		return decimal.Decimal{}, &PageError{SeriesID: seriesID, Message: fmt.Sprintf("observation %q is not a number", text)}
	}
	return value, nil
}
