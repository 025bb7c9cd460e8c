package handlers

import (
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/isaacson-f/stock-bot/internal/company"
)

// CompanyHandler serves company reports. Every request builds and populates
// its own profile.
type CompanyHandler struct {
	service *company.Service
	logger  arbor.ILogger
}

func NewCompanyHandler(service *company.Service, logger arbor.ILogger) *CompanyHandler {
	return &CompanyHandler{
		service: service,
		logger:  logger,
	}
}

// ReportHandler handles GET /api/company?ticker=AAPL&years=2021,2022&horizons=5,10&news=5
func (h *CompanyHandler) ReportHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	ticker := q.Get("ticker")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, KindBadRequest, "ticker is required")
		return
	}

	var opts company.ReportOptions
	var err error
	if opts.Years, err = queryInts(r, "years"); err != nil {
		writeFailure(w, h.logger, r, err)
		return
	}
	if opts.Horizons, err = queryInts(r, "horizons"); err != nil {
		writeFailure(w, h.logger, r, err)
		return
	}
	if opts.NewsCount, err = queryInt(r, "news", 0); err != nil {
		writeFailure(w, h.logger, r, err)
		return
	}

	profile, err := h.service.NewProfile(ticker)
	if err != nil {
		writeFailure(w, h.logger, r, err)
		return
	}

	start := time.Now()
	if err := profile.Populate(r.Context()); err != nil {
		writeFailure(w, h.logger, r, err)
		return
	}

	report, err := profile.Report(r.Context(), opts)
	if err != nil {
		writeFailure(w, h.logger, r, err)
		return
	}

	h.logger.Info().
		Str("ticker", profile.Identifier()).
		Dur("duration", time.Since(start)).
		Msg("Company report built")

	WriteJSON(w, http.StatusOK, report)
}
