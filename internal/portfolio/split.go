package portfolio

import (
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/model"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/reference"
)

// ApplySplits rewrites txs in place so every quantity and price is expressed in
// post-split shares. A transaction dated strictly before a split's effective
// date has its quantity multiplied and its price divided by the ratio.
//
// Symbols are visited in sorted order and each symbol's splits in ascending
// effective date, so a transaction older than several splits is scaled by the
// product of their ratios regardless of how the table was built.
func ApplySplits(txs []model.Transaction, tables *reference.Tables) {
	for _, symbol := range tables.Symbols() {
		for _, split := range tables.SplitsFor(symbol) {
			ratio := float64(split.Ratio)
			for i := range txs {
				if txs[i].Symbol != symbol || !txs[i].Date.Before(split.EffectiveDate) {
					continue
				}
				txs[i].Quantity *= ratio
				txs[i].Price /= ratio
			}
		}
	}
}
