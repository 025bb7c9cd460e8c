package company

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/isaacson-f/stock-bot/internal/models"
)

// Series is a metric aligned with the years it covers.
type Series struct {
	Years  []int             `json:"years"`
	Values []decimal.Decimal `json:"values"`
}

// Report is the JSON view of a populated profile.
type Report struct {
	Ticker                string                     `json:"ticker"`
	Currency              string                     `json:"currency"`
	Price                 decimal.Decimal            `json:"price"`
	Beta                  decimal.Decimal            `json:"beta"`
	FetchedAt             time.Time                  `json:"fetched_at"`
	CurrentRatio          Series                     `json:"current_ratio"`
	GrossProfitPercentage Series                     `json:"gross_profit_percentage"`
	FreeCashFlow          Series                     `json:"free_cash_flow"`
	CAPM                  map[string]decimal.Decimal `json:"capm_expected_return"`
	News                  []models.NewsStory         `json:"news"`
}

// ReportOptions selects what goes into a report.
type ReportOptions struct {
	// Years restricts every metric to these years. Empty means each
	// metric's own default years.
	Years []int
	// Horizons lists the CAPM horizons in years. Empty means 5, 10 and 30.
	Horizons []int
	// NewsCount limits the headlines. Zero means all.
	NewsCount int
}

// Report builds the report for a populated profile. Any metric failure is
// returned rather than omitted.
func (p *Profile) Report(ctx context.Context, opts ReportOptions) (*Report, error) {
	d, err := p.loaded("report")
	if err != nil {
		return nil, err
	}

	r := &Report{
		Ticker:    p.id,
		Currency:  d.income.Currency(),
		Price:     d.quote.Price,
		Beta:      d.quote.Beta,
		FetchedAt: d.fetched,
		CAPM:      make(map[string]decimal.Decimal),
	}

	years := func(defaults []int) []int {
		if len(opts.Years) > 0 {
			return opts.Years
		}
		return defaults
	}

	crYears := years(d.balance.CurrentAssetYears())
	cr, err := d.engine.CurrentRatio(crYears...)
	if err != nil {
		return nil, err
	}
	r.CurrentRatio = Series{Years: crYears, Values: cr}

	gpYears := years(d.income.Years())
	gp, err := d.engine.GrossProfitPercentage(gpYears...)
	if err != nil {
		return nil, err
	}
	r.GrossProfitPercentage = Series{Years: gpYears, Values: gp}

	fcfYears := years(d.cash.OperatingActivityYears())
	fcf, err := d.engine.FreeCashFlow(fcfYears...)
	if err != nil {
		return nil, err
	}
	r.FreeCashFlow = Series{Years: fcfYears, Values: fcf}

	horizons := opts.Horizons
	if len(horizons) == 0 {
		for _, h := range models.Horizons {
			horizons = append(horizons, int(h))
		}
	}
	for _, h := range horizons {
		v, err := p.CAPMExpectedReturn(ctx, h)
		if err != nil {
			return nil, err
		}
		r.CAPM[models.Horizon(h).String()] = v
	}

	r.News, err = d.news.Stories(opts.NewsCount)
	if err != nil {
		return nil, err
	}
	return r, nil
}
