package model

// ReferenceData is the exported view of the reference tables.
type ReferenceData struct {
	Splits        []SplitEvent       `json:"splits"`
	ExchangeRates map[string]float64 `json:"exchangeRates"` // Home-currency units per USD, keyed by YYYY-MM-DD
	DefaultRate   float64            `json:"defaultRate"`
	Factors       map[string]float64 `json:"factors"` // USD conversion factor per currency
	HomeCurrency  string             `json:"homeCurrency"`
}
