// Package finnhub provides a news client for the Finnhub API.
package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/isaacson-f/stock-bot/internal/models"
)

const (
	// DefaultBaseURL is the base URL for the Finnhub API.
	DefaultBaseURL = "https://finnhub.io/api/v1"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 15 * time.Second

	// DefaultRateLimit is the free-tier limit in requests per minute.
	DefaultRateLimit = 60

	// DefaultLookback is the company news window ending today.
	DefaultLookback = 7 * 24 * time.Hour
)

// Client is a Finnhub API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
	now        func() time.Time
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

// NewClient creates a new Finnhub client.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: newLimiter(DefaultRateLimit),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("token", c.apiKey)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("url", c.baseURL+path).
			Msg("Finnhub API request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// CompanyNews returns stories about a ticker published between from and to.
func (c *Client) CompanyNews(ctx context.Context, ticker string, from, to time.Time) ([]models.NewsStory, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	params := url.Values{}
	params.Set("symbol", ticker)
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))

	var result []newsItem
	if err := c.get(ctx, "/company-news", params, &result); err != nil {
		return nil, fmt.Errorf("company news for %s: %w", ticker, err)
	}
	return toStories(result), nil
}

// RecentCompanyNews returns stories about a ticker over DefaultLookback.
func (c *Client) RecentCompanyNews(ctx context.Context, ticker string) ([]models.NewsStory, error) {
	to := c.now()
	return c.CompanyNews(ctx, ticker, to.Add(-DefaultLookback), to)
}

// MarketNews returns the latest stories for a market category. A category
// that is not general, forex, crypto or merger is treated as a ticker.
func (c *Client) MarketNews(ctx context.Context, category string) ([]models.NewsStory, error) {
	category = strings.TrimSpace(category)
	if !models.IsMarketNewsCategory(strings.ToLower(category)) {
		return c.RecentCompanyNews(ctx, category)
	}

	params := url.Values{}
	params.Set("category", strings.ToLower(category))
	params.Set("minId", "0")

	var result []newsItem
	if err := c.get(ctx, "/news", params, &result); err != nil {
		return nil, fmt.Errorf("market news %s: %w", category, err)
	}
	return toStories(result), nil
}

func toStories(items []newsItem) []models.NewsStory {
	stories := make([]models.NewsStory, len(items))
	for i, it := range items {
		stories[i] = models.NewsStory{
			ID:       it.ID,
			Category: it.Category,
			Datetime: time.Unix(it.Datetime, 0).UTC(),
			Headline: it.Headline,
			Image:    it.Image,
			Related:  it.Related,
			Source:   it.Source,
			Summary:  it.Summary,
			URL:      it.URL,
		}
	}
	return stories
}
