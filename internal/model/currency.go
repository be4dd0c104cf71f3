package model

import "github.com/Rhymond/go-money"

// Supported report currencies. USD is the source currency of every statement
// and INR is the home currency used for cash-flow signing.
const (
	USD = money.USD
	INR = money.INR
	EUR = money.EUR
	GBP = money.GBP

	HomeCurrency = INR
)

// Currencies lists the supported currencies in report order.
var Currencies = []string{USD, INR, EUR, GBP}

// CurrencyValues holds one amount per supported currency.
type CurrencyValues struct {
	USD float64 `json:"USD"`
	INR float64 `json:"INR"`
	EUR float64 `json:"EUR"`
	GBP float64 `json:"GBP"`
}

// Get returns the amount for a currency code, or 0 for unsupported codes.
func (c CurrencyValues) Get(code string) float64 {
	switch code {
	case USD:
		return c.USD
	case INR:
		return c.INR
	case EUR:
		return c.EUR
	case GBP:
		return c.GBP
	}
	return 0
}

// Add returns the element-wise sum.
func (c CurrencyValues) Add(o CurrencyValues) CurrencyValues {
	return CurrencyValues{USD: c.USD + o.USD, INR: c.INR + o.INR, EUR: c.EUR + o.EUR, GBP: c.GBP + o.GBP}
}

// Scale multiplies every amount by f.
func (c CurrencyValues) Scale(f float64) CurrencyValues {
	return CurrencyValues{USD: c.USD * f, INR: c.INR * f, EUR: c.EUR * f, GBP: c.GBP * f}
}

// Map applies fn to every amount.
func (c CurrencyValues) Map(fn func(float64) float64) CurrencyValues {
	return CurrencyValues{USD: fn(c.USD), INR: fn(c.INR), EUR: fn(c.EUR), GBP: fn(c.GBP)}
}
