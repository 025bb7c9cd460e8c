package fred

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacson-f/stock-bot/internal/models"
)

const seriesPage = `<!DOCTYPE html>
<html><body>
<div class="series-meta">
  <span class="series-meta-observation-value">2.34</span>
  <span class="series-meta-observation-value">2.31</span>
</div>
</body></html>`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(WithBaseURL(srv.URL), WithRateLimit(0))
}

func TestClient_InflationRate(t *testing.T) {
	paths := map[models.Horizon]string{
		models.Horizon5Y:  "/T5YIE",
		models.Horizon10Y: "/T10YIE",
		models.Horizon30Y: "/T30YIEM",
	}
	for h, want := range paths {
		t.Run(h.String(), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, want, r.URL.Path)
				w.Write([]byte(seriesPage))
			})

			got, err := c.InflationRate(context.Background(), h)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString("2.34").Equal(got), "got %s", got)
		})
	}
}

func TestClient_InflationRate_UnsupportedHorizon(t *testing.T) {
	c := NewClient()

	_, err := c.InflationRate(context.Background(), models.Horizon(15))

	var horizonErr *models.UnsupportedHorizonError
	require.True(t, errors.As(err, &horizonErr))
	assert.Equal(t, 15, horizonErr.Horizon)
}

func TestClient_LatestObservation_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, ""},
		{"no observation", http.StatusOK, "<html><body>moved</body></html>"},
		{"not a number", http.StatusOK, `<span class="series-meta-observation-value">n/a</span>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.LatestObservation(context.Background(), "T10YIE")

			var pageErr *PageError
			require.True(t, errors.As(err, &pageErr), "%v", err)
			assert.Equal(t, "T10YIE", pageErr.SeriesID)
		})
	}
}
