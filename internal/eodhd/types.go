// Package eodhd provides a client for the EODHD (End of Day Historical Data) API.
// It supplies yearly financial statements, quotes with beta, and government
// bond yields.
package eodhd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/isaacson-f/stock-bot/internal/models"
)

// APIError represents an error from the EODHD API.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("EODHD API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// Unwrap maps a 404 to models.ErrSymbolNotFound.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return models.ErrSymbolNotFound
	}
	return nil
}

// RateLimitError is returned when EODHD answers 429.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("EODHD rate limit exceeded, retry after %v", e.RetryAfter)
}
