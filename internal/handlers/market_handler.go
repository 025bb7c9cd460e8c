package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ternarybob/arbor"

	"github.com/isaacson-f/stock-bot/internal/company"
	"github.com/isaacson-f/stock-bot/internal/interfaces"
	"github.com/isaacson-f/stock-bot/internal/market"
	"github.com/isaacson-f/stock-bot/internal/models"
	"github.com/isaacson-f/stock-bot/internal/news"
)

// MarketHandler serves market-wide news, rates and the index roster.
type MarketHandler struct {
	news    interfaces.NewsProvider
	service *company.Service
	roster  *market.Roster
	logger  arbor.ILogger
}

func NewMarketHandler(newsProvider interfaces.NewsProvider, service *company.Service, roster *market.Roster, logger arbor.ILogger) *MarketHandler {
	return &MarketHandler{
		news:    newsProvider,
		service: service,
		roster:  roster,
		logger:  logger,
	}
}

type newsResponse struct {
	Source  string             `json:"source"`
	Count   int                `json:"count"`
	Stories []models.NewsStory `json:"stories"`
}

// NewsHandler handles GET /api/market/news?category=general&count=10.
// A category that is not a market feed is looked up as a company symbol.
func (h *MarketHandler) NewsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		category = models.NewsCategoryGeneral
	}
	if !models.IsMarketNewsCategory(strings.ToLower(category)) {
		if _, err := company.NormalizeIdentifier(category); err != nil {
			writeFailure(w, h.logger, r, err)
			return
		}
	} else {
		category = strings.ToLower(category)
	}

	count, err := queryInt(r, "count", 0)
	if err != nil {
		writeFailure(w, h.logger, r, err)
		return
	}

	stories, err := h.news.MarketNews(r.Context(), category)
	if err != nil {
		writeFailure(w, h.logger, r, err)
		return
	}

	feed := news.NewFeed(category, stories)
	selected, err := feed.Stories(count)
	if err != nil {
		writeFailure(w, h.logger, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, newsResponse{
		Source:  feed.Source(),
		Count:   len(selected),
		Stories: selected,
	})
}

type ratesResponse struct {
	MarketReturn decimal.Decimal  `json:"market_return"`
	Rates        []market.Figures `json:"rates"`
}

// RatesHandler handles GET /api/market/rates?horizon=10. Without a horizon
// every supported horizon is returned.
func (h *MarketHandler) RatesHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	requested, err := queryInts(r, "horizon")
	if err != nil {
		writeFailure(w, h.logger, r, err)
		return
	}
	if len(requested) == 0 {
		for _, hz := range models.Horizons {
			requested = append(requested, int(hz))
		}
	}

	mc := h.service.NewMarketContext()
	resp := ratesResponse{MarketReturn: h.service.MarketReturn()}
	for _, years := range requested {
		hz, err := models.ParseHorizon(years)
		if err != nil {
			writeFailure(w, h.logger, r, err)
			return
		}
		figures, err := mc.Figures(r.Context(), hz)
		if err != nil {
			writeFailure(w, h.logger, r, err)
			return
		}
		resp.Rates = append(resp.Rates, figures)
	}

	WriteJSON(w, http.StatusOK, resp)
}

type indexResponse struct {
	RefreshedAt  time.Time            `json:"refreshed_at"`
	Count        int                  `json:"count"`
	Constituents []models.Constituent `json:"constituents"`
}

// IndexHandler handles GET /api/market/index?sector=Information+Technology.
func (h *MarketHandler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	members, refreshed, err := h.roster.Constituents(r.Context())
	if err != nil {
		writeFailure(w, h.logger, r, err)
		return
	}

	if sector := strings.TrimSpace(r.URL.Query().Get("sector")); sector != "" {
		filtered := members[:0]
		for _, m := range members {
			if strings.EqualFold(m.Sector, sector) {
				filtered = append(filtered, m)
			}
		}
		members = filtered
	}

	// Only symbols a profile can be built for are listed.
	hollow := h.service.HollowProfiles(members)
	listed := make([]models.Constituent, 0, len(hollow))
	bySymbol := make(map[string]models.Constituent, len(members))
	for _, m := range members {
		bySymbol[strings.ToUpper(strings.TrimSpace(m.Symbol))] = m
	}
	for _, p := range hollow {
		m := bySymbol[p.Identifier()]
		m.Symbol = p.Identifier()
		listed = append(listed, m)
	}

	WriteJSON(w, http.StatusOK, indexResponse{
		RefreshedAt:  refreshed,
		Count:        len(listed),
		Constituents: listed,
	})
}
