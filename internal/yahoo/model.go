package yahoo

import "time"

// Response is the raw JSON body of the Yahoo Finance v8 chart endpoint.
// Price arrays hold null for sessions without a print, hence the pointers.
type Response struct {
	Chart Chart `json:"chart"`
}

// Chart wraps the result list and the optional API error.
type Chart struct {
	Result []Result `json:"result"`
	Error  *Error   `json:"error"`
}

// Error is the error object Yahoo returns in place of a result.
type Error struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Result is the chart of one symbol.
type Result struct {
	Meta       Meta       `json:"meta"`
	Timestamp  []int64    `json:"timestamp"`
	Indicators Indicators `json:"indicators"`
}

// Meta describes the instrument.
type Meta struct {
	Currency     string `json:"currency"`
	Symbol       string `json:"symbol"`
	ExchangeName string `json:"exchangeName"`
}

// Indicators holds the price arrays, parallel to Result.Timestamp.
type Indicators struct {
	Quote    []Quote    `json:"quote"`
	AdjClose []AdjClose `json:"adjclose"`
}

// Quote is the OHLC block.
type Quote struct {
	Open  []*float64 `json:"open"`
	Close []*float64 `json:"close"`
	High  []*float64 `json:"high"`
	Low   []*float64 `json:"low"`
}

// AdjClose is the dividend and split adjusted close block.
type AdjClose struct {
	AdjClose []*float64 `json:"adjclose"`
}

// PriceChart is the parsed form of a Response.
type PriceChart struct {
	Symbol   string
	Currency string
	Points   []PricePoint
}

// PricePoint is one trading session.
type PricePoint struct {
	Date          time.Time
	Close         float64
	AdjustedClose float64
}
