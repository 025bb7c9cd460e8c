package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTicker(t *testing.T) {
	tests := []struct {
		input        string
		wantExchange string
		wantCode     string
		wantEODHD    string
	}{
		// Venue prefix
		{"NYSE:IBM", "US", "IBM", "IBM.US"},
		{"NASDAQ:MSFT", "US", "MSFT", "MSFT.US"},
		{"ASX:BHP", "AU", "BHP", "BHP.AU"},
		{"MCX:SBER", "MCX", "SBER", "SBER.MCX"},

		// EODHD form
		{"AAPL.US", "US", "AAPL", "AAPL.US"},
		{"bhp.au", "AU", "BHP", "BHP.AU"},

		// Bare ticker takes the default exchange
		{"aapl", "", "AAPL", "AAPL.US"},
		{"  msft ", "", "MSFT", "MSFT.US"},
		{"BRK-B", "", "BRK-B", "BRK-B.US"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseTicker(tt.input)
			assert.Equal(t, tt.wantExchange, got.Exchange)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantEODHD, got.EODHDSymbol("us"))
		})
	}
}

func TestParseTicker_Empty(t *testing.T) {
	assert.Equal(t, Ticker{}, ParseTicker("   "))
	assert.Equal(t, "", Ticker{}.EODHDSymbol("US"))
	assert.Equal(t, "AAPL", Ticker{Code: "AAPL"}.EODHDSymbol(""))
}
