package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/isaacson-f/stock-bot/internal/company"
	"github.com/isaacson-f/stock-bot/internal/eodhd"
	"github.com/isaacson-f/stock-bot/internal/finnhub"
	"github.com/isaacson-f/stock-bot/internal/models"
	"github.com/isaacson-f/stock-bot/internal/news"
	"github.com/isaacson-f/stock-bot/internal/ratios"
	"github.com/isaacson-f/stock-bot/internal/statements"
)

// Error kinds reported in the "kind" field of error responses.
const (
	KindInvalidIdentifier  = "invalid_identifier"
	KindUnsupportedHorizon = "unsupported_horizon"
	KindUnknownYear        = "unknown_year"
	KindMissingYear        = "missing_year"
	KindBadRequest         = "bad_request"
	KindDivisionByZero     = "division_by_zero"
	KindLengthMismatch     = "length_mismatch"
	KindUnknownRow         = "unknown_row"
	KindRateLimited        = "rate_limited"
	KindTimeout            = "timeout"
	KindProvider           = "provider"
	KindInternal           = "internal"
	KindMethodNotAllowed   = "method_not_allowed"
	KindNotFound           = "not_found"
)

// classify maps an error to its HTTP status and kind.
func classify(err error) (int, string) {
	var (
		invalid  *company.InvalidIdentifierError
		horizon  *models.UnsupportedHorizonError
		year     *statements.UnknownYearError
		missing  *ratios.MissingYearError
		query    *QueryError
		count    *news.CountError
		div      *ratios.DivisionByZeroError
		length   *ratios.LengthMismatchError
		row      *statements.UnknownRowError
		limited  *eodhd.RateLimitError
		notReady *company.NotInitializedError
		twice    *company.AlreadyPopulatedError
	)

	switch {
	case errors.As(err, &invalid), errors.Is(err, models.ErrSymbolNotFound):
		return http.StatusNotFound, KindInvalidIdentifier
	case errors.As(err, &horizon):
		return http.StatusBadRequest, KindUnsupportedHorizon
	case errors.As(err, &year):
		return http.StatusBadRequest, KindUnknownYear
	case errors.As(err, &missing):
		return http.StatusBadRequest, KindMissingYear
	case errors.As(err, &query), errors.As(err, &count):
		return http.StatusBadRequest, KindBadRequest
	case errors.As(err, &div):
		return http.StatusUnprocessableEntity, KindDivisionByZero
	case errors.As(err, &length):
		return http.StatusUnprocessableEntity, KindLengthMismatch
	case errors.As(err, &row):
		return http.StatusUnprocessableEntity, KindUnknownRow
	case errors.As(err, &limited), errors.Is(err, finnhub.ErrRateLimited):
		return http.StatusTooManyRequests, KindRateLimited
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, KindTimeout
	case errors.As(err, &notReady), errors.As(err, &twice):
		return http.StatusInternalServerError, KindInternal
	}
	return http.StatusBadGateway, KindProvider
}

// writeFailure logs err and writes the matching error response.
func writeFailure(w http.ResponseWriter, logger arbor.ILogger, r *http.Request, err error) {
	status, kind := classify(err)
	if logger != nil {
		event := logger.Warn()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.Err(err).
			Str("path", r.URL.Path).
			Str("kind", kind).
			Int("status", status).
			Msg("Request failed")
	}
	WriteError(w, status, kind, err.Error())
}
