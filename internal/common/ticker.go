// Package common provides shared utilities across the application.
package common

import (
	"strings"
)

// Ticker represents a parsed ticker with an optional listing exchange.
// Exchange holds the EODHD exchange code (e.g. "US", "AU").
type Ticker struct {
	Exchange string
	Code     string
}

// ExchangeToSuffix maps venue names to EODHD exchange codes.
var ExchangeToSuffix = map[string]string{
	"NYSE":   "US",
	"NASDAQ": "US",
	"AMEX":   "US",
	"ASX":    "AU",
	"LSE":    "LSE",
	"TSX":    "TO",
	"XETRA":  "XETRA",
}

// ParseTicker parses a ticker string.
// Supports formats:
//   - "NASDAQ:AAPL" -> Exchange="US", Code="AAPL" (venue prefix)
//   - "AAPL.US" -> Exchange="US", Code="AAPL" (EODHD form)
//   - "aapl" -> Exchange="", Code="AAPL"
//
// Unknown venue prefixes are kept as the exchange code.
func ParseTicker(ticker string) Ticker {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return Ticker{}
	}

	if idx := strings.Index(ticker, ":"); idx > 0 {
		exchange := ticker[:idx]
		if suffix, ok := ExchangeToSuffix[exchange]; ok {
			exchange = suffix
		}
		return Ticker{Exchange: exchange, Code: ticker[idx+1:]}
	}

	if idx := strings.LastIndex(ticker, "."); idx > 0 && idx < len(ticker)-1 {
		return Ticker{Exchange: ticker[idx+1:], Code: ticker[:idx]}
	}

	return Ticker{Code: ticker}
}

// EODHDSymbol returns CODE.EXCHANGE, using defaultExchange when the ticker
// names none.
func (t Ticker) EODHDSymbol(defaultExchange string) string {
	if t.Code == "" {
		return ""
	}
	exchange := t.Exchange
	if exchange == "" {
		exchange = strings.ToUpper(defaultExchange)
	}
	if exchange == "" {
		return t.Code
	}
	return t.Code + "." + exchange
}
