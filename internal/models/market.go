package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrSymbolNotFound is wrapped by provider errors when a symbol is not
// recognized upstream.
var ErrSymbolNotFound = errors.New("symbol not found")

// Horizon is a risk-free-rate lookback window in years.
type Horizon int

// Supported horizons.
const (
	Horizon5Y  Horizon = 5
	Horizon10Y Horizon = 10
	Horizon30Y Horizon = 30
)

// Horizons lists every supported horizon in ascending order.
var Horizons = []Horizon{Horizon5Y, Horizon10Y, Horizon30Y}

// UnsupportedHorizonError is returned for horizons outside 5, 10 and 30.
type UnsupportedHorizonError struct {
	Horizon int
}

func (e *UnsupportedHorizonError) Error() string {
	return fmt.Sprintf("unsupported horizon %d: must be one of 5, 10, 30", e.Horizon)
}

// ParseHorizon validates a horizon given in years.
func ParseHorizon(years int) (Horizon, error) {
	switch Horizon(years) {
	case Horizon5Y, Horizon10Y, Horizon30Y:
		return Horizon(years), nil
	}
	return 0, &UnsupportedHorizonError{Horizon: years}
}

// String returns the horizon as "10Y".
func (h Horizon) String() string {
	return fmt.Sprintf("%dY", int(h))
}

// Quote is a point-in-time market snapshot for one symbol.
type Quote struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Beta      decimal.Decimal `json:"beta"`
	Timestamp time.Time       `json:"timestamp"`
}
