package model

import "time"

// Transaction represents a single trade row from a brokerage statement.
// Quantity is signed (positive = buy) and Price is the unit price in USD.
type Transaction struct {
	Symbol   string    `json:"symbol"`
	Quantity float64   `json:"quantity"`
	Price    float64   `json:"price"`
	Date     time.Time `json:"date"`
	Source   string    `json:"source,omitempty"` // Name of the file the row came from
	Row      int       `json:"row,omitempty"`    // 1-based data row within Source
}

// EnrichedTransaction is a Transaction with its market lookup and converted values.
// CashFlow is the negated home-currency total: buys are outflows, sells inflows.
type EnrichedTransaction struct {
	Transaction
	AdjustedPrice Estimate       `json:"adjustedPrice"`
	ExchangeRate  float64        `json:"exchangeRate"`
	Prices        CurrencyValues `json:"prices"`
	Totals        CurrencyValues `json:"totals"`
	CashFlow      float64        `json:"cashFlow"`
}

// SplitEvent is a stock split that rescales every earlier transaction of Symbol.
type SplitEvent struct {
	Symbol        string    `json:"symbol"`
	EffectiveDate time.Time `json:"effectiveDate"`
	Ratio         int       `json:"ratio"`
}
