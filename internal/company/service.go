// Package company builds company profiles: a ticker's statements, quote and
// news, plus the ratios derived from them.
package company

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/ternarybob/arbor"

	"github.com/isaacson-f/stock-bot/internal/interfaces"
	"github.com/isaacson-f/stock-bot/internal/market"
	"github.com/isaacson-f/stock-bot/internal/models"
	"github.com/isaacson-f/stock-bot/internal/ratios"
)

// DefaultNewsLookback is the company news window used during population.
const DefaultNewsLookback = 7 * 24 * time.Hour

// Service creates profiles and holds the providers they populate from.
type Service struct {
	statements interfaces.StatementProvider
	quotes     interfaces.QuoteProvider
	news       interfaces.NewsProvider
	yields     interfaces.YieldProvider
	inflation  interfaces.InflationProvider
	logger     arbor.ILogger

	marketReturn decimal.Decimal
	newsLookback time.Duration
	now          func() time.Time
}

// Providers groups the collaborators a Service needs.
type Providers struct {
	Statements interfaces.StatementProvider
	Quotes     interfaces.QuoteProvider
	News       interfaces.NewsProvider
	Yields     interfaces.YieldProvider
	Inflation  interfaces.InflationProvider
}

// NewService creates a company service.
func NewService(p Providers, logger arbor.ILogger) *Service {
	return &Service{
		statements:   p.Statements,
		quotes:       p.Quotes,
		news:         p.News,
		yields:       p.Yields,
		inflation:    p.Inflation,
		logger:       logger,
		marketReturn: ratios.DefaultMarketReturn,
		newsLookback: DefaultNewsLookback,
		now:          time.Now,
	}
}

// WithMarketReturn sets the market return, in percent, used by CAPM.
func (s *Service) WithMarketReturn(r decimal.Decimal) *Service {
	s.marketReturn = r
	return s
}

// WithNewsLookback sets the company news window.
func (s *Service) WithNewsLookback(d time.Duration) *Service {
	if d > 0 {
		s.newsLookback = d
	}
	return s
}

// MarketReturn returns the configured market return.
func (s *Service) MarketReturn() decimal.Decimal {
	return s.marketReturn
}

// NewMarketContext returns a fresh request-scoped market context backed by
// the service's rate providers.
func (s *Service) NewMarketContext() *market.Context {
	return market.NewContext(s.yields, s.inflation, s.logger)
}

// ProfileOption configures a profile at construction.
type ProfileOption func(*Profile)

// WithMarket shares a market context between profiles built for one request.
func WithMarket(mc *market.Context) ProfileOption {
	return func(p *Profile) {
		p.market = mc
	}
}

// WithListing records index listing data on a hollow profile.
func WithListing(name string, marketCap, price decimal.Decimal) ProfileOption {
	return func(p *Profile) {
		p.listing = Listing{Name: name, MarketCap: marketCap, Price: price}
	}
}

// NewProfile returns an Uninitialized profile. It makes no provider calls.
func (s *Service) NewProfile(identifier string, opts ...ProfileOption) (*Profile, error) {
	id, err := NormalizeIdentifier(identifier)
	if err != nil {
		return nil, err
	}
	p := &Profile{
		id:    id,
		svc:   s,
		state: StateUninitialized,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.market == nil {
		p.market = s.NewMarketContext()
	}
	return p, nil
}

// NormalizeIdentifier trims and upper-cases a ticker, rejecting blanks and
// embedded whitespace.
func NormalizeIdentifier(identifier string) (string, error) {
	id := strings.ToUpper(strings.TrimSpace(identifier))
	if id == "" {
		return "", &InvalidIdentifierError{}
	}
	if strings.IndexFunc(id, unicode.IsSpace) >= 0 || strings.ContainsAny(id, "/?#&") {
		return "", &InvalidIdentifierError{Identifier: identifier}
	}
	return id, nil
}

// HollowProfiles builds one Uninitialized profile per constituent, all
// sharing a single market context. Constituents with unusable symbols are
// skipped.
func (s *Service) HollowProfiles(members []models.Constituent) []*Profile {
	mc := s.NewMarketContext()
	out := make([]*Profile, 0, len(members))
	for _, m := range members {
		p, err := s.NewProfile(m.Symbol, WithMarket(mc), WithListing(m.Name, m.MarketCap, m.Price))
		if err != nil {
			if s.logger != nil {
				s.logger.Warn().Err(err).Str("symbol", m.Symbol).Msg("Skipping constituent")
			}
			continue
		}
		out = append(out, p)
	}
	return out
}
