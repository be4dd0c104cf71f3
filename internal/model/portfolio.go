package model

import (
	"encoding/json"
	"time"
)

// Position labels the sign of a security's net quantity.
type Position string

const (
	PositionBuy     Position = "Buy"
	PositionSell    Position = "Sell"
	PositionNeutral Position = "Neutral"
)

// PositionFor classifies a net quantity.
func PositionFor(quantity float64) Position {
	switch {
	case quantity > 0:
		return PositionBuy
	case quantity < 0:
		return PositionSell
	default:
		return PositionNeutral
	}
}

// SecuritySummary is the consolidated position of one security.
// All monetary values are rounded to two decimal places.
type SecuritySummary struct {
	Symbol       string         `json:"symbol"`
	Quantity     float64        `json:"quantity"`
	Totals       CurrencyValues `json:"totals"`       // Sum of transaction values
	Position     Position       `json:"position"`     // Buy, Sell or Neutral
	XIRR         Estimate       `json:"xirr"`         // Annualised return in percent
	LatestPrice  float64        `json:"latestPrice"`  // Last traded USD price
	HoldingValue CurrencyValues `json:"holdingValue"` // Quantity * LatestPrice at the valuation rate
}

// PortfolioSnapshot is the portfolio valuation at the end of one calendar day.
type PortfolioSnapshot struct {
	Date  string         `json:"date"` // YYYY-MM-DD
	Value CurrencyValues `json:"value"`
}

// TimeSeries is an ordered list of daily snapshots. It is encoded as an
// object keyed by ISO date.
type TimeSeries []PortfolioSnapshot

// MarshalJSON encodes the series as {"YYYY-MM-DD": {"USD": ..., ...}}.
func (ts TimeSeries) MarshalJSON() ([]byte, error) {
	m := make(map[string]CurrencyValues, len(ts))
	for _, s := range ts {
		m[s.Date] = s.Value
	}
	return json.Marshal(m)
}

// Last returns the final snapshot of the series.
func (ts TimeSeries) Last() (PortfolioSnapshot, bool) {
	if len(ts) == 0 {
		return PortfolioSnapshot{}, false
	}
	return ts[len(ts)-1], true
}

// Report is the full result of processing one upload.
type Report struct {
	ID           string                `json:"id"`
	GeneratedAt  time.Time             `json:"generatedAt"`
	Summary      []SecuritySummary     `json:"summary"`
	Transactions []EnrichedTransaction `json:"transactions"`
	TimeSeries   TimeSeries            `json:"timeseries"`
	DroppedRows  int                   `json:"droppedRows"`
}
