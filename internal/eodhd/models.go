package eodhd

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Fundamentals filters understood by the fundamentals endpoint.
const (
	FilterIncomeStatement = "Financials::Income_Statement"
	FilterBalanceSheet    = "Financials::Balance_Sheet"
	FilterCashFlow        = "Financials::Cash_Flow"
	FilterTechnicals      = "Technicals"
)

// Technicals contains technical analysis data.
type Technicals struct {
	Beta             Float `json:"Beta"`
	FiftyTwoWeekHigh Float `json:"52WeekHigh"`
	FiftyTwoWeekLow  Float `json:"52WeekLow"`
	FiftyDayMA       Float `json:"50DayMA"`
	TwoHundredDayMA  Float `json:"200DayMA"`
}

// FinancialStatement is one statement as returned by a Financials filter.
// Yearly is keyed by reporting date ("2006-01-02"); each entry maps a line
// item to a number, a numeric string, or null.
type FinancialStatement struct {
	Currency  string                            `json:"currency_symbol"`
	Quarterly map[string]map[string]interface{} `json:"quarterly"`
	Yearly    map[string]map[string]interface{} `json:"yearly"`
}

// RealTimeQuote is the payload of the real-time endpoint.
type RealTimeQuote struct {
	Code          string `json:"code"`
	Timestamp     Float  `json:"timestamp"`
	GMTOffset     int    `json:"gmtoffset"`
	Open          Float  `json:"open"`
	High          Float  `json:"high"`
	Low           Float  `json:"low"`
	Close         Float  `json:"close"`
	Volume        Float  `json:"volume"`
	PreviousClose Float  `json:"previousClose"`
	Change        Float  `json:"change"`
	ChangePercent Float  `json:"change_p"`
}

// Float is a JSON number that EODHD may also send as a string, "NA" or
// null. Valid is false for anything that is not a number.
type Float struct {
	Value float64
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Float) UnmarshalJSON(data []byte) error {
	*f = Float{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f.Value, f.Valid = v, true
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.Value, f.Valid = v, true
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
