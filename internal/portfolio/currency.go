package portfolio

import (
	"time"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/model"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/reference"
)

// Converter turns USD amounts into every supported currency. The home
// currency uses the date-indexed rate, the others a fixed factor.
type Converter struct {
	tables *reference.Tables
}

// NewConverter creates a converter over a reference snapshot.
func NewConverter(tables *reference.Tables) Converter {
	return Converter{tables: tables}
}

// Values converts a USD amount at the rate of date.
func (c Converter) Values(usd float64, date time.Time) model.CurrencyValues {
	return model.CurrencyValues{
		USD: usd,
		INR: usd * c.tables.RateOn(date),
		EUR: usd * c.tables.Factor(model.EUR),
		GBP: usd * c.tables.Factor(model.GBP),
	}
}

// Enrich derives the per-currency price, total and cash flow of tx.
func (c Converter) Enrich(tx model.Transaction, adjusted model.Estimate) model.EnrichedTransaction {
	prices := c.Values(tx.Price, tx.Date)
	totals := prices.Scale(tx.Quantity)
	return model.EnrichedTransaction{
		Transaction:   tx,
		AdjustedPrice: adjusted,
		ExchangeRate:  c.tables.RateOn(tx.Date),
		Prices:        prices,
		Totals:        totals,
		CashFlow:      -totals.Get(model.HomeCurrency),
	}
}
