package models

import "github.com/shopspring/decimal"

// Constituent is one member of a market index. MarketCap and Price are
// zero when the source does not list them.
type Constituent struct {
	Symbol    string          `json:"symbol" yaml:"symbol"`
	Name      string          `json:"name" yaml:"name"`
	Sector    string          `json:"sector,omitempty" yaml:"sector,omitempty"`
	MarketCap decimal.Decimal `json:"market_cap" yaml:"market_cap"`
	Price     decimal.Decimal `json:"price" yaml:"price"`
}
