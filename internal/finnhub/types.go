package finnhub

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/isaacson-f/stock-bot/internal/models"
)

// newsItem is one story as returned by /news and /company-news.
type newsItem struct {
	Category string `json:"category"`
	Datetime int64  `json:"datetime"`
	Headline string `json:"headline"`
	ID       int64  `json:"id"`
	Image    string `json:"image"`
	Related  string `json:"related"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
}

// APIError represents an error from the Finnhub API.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Finnhub API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// Unwrap maps 404 to models.ErrSymbolNotFound and 429 to ErrRateLimited.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return models.ErrSymbolNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}
	return nil
}

// ErrRateLimited is wrapped by APIError on HTTP 429.
var ErrRateLimited = errors.New("finnhub rate limit exceeded")
