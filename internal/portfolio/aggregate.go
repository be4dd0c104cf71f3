package portfolio

import (
	"math"
	"slices"
	"time"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/model"
)

// Holding is the aggregated state of one security across all its transactions.
type Holding struct {
	Symbol      string
	Quantity    float64
	Totals      model.CurrencyValues
	LatestPrice float64   // USD price of the most recent transaction
	LatestDate  time.Time // date of the most recent transaction
	Flows       []CashFlow
}

// quantityEpsilon absorbs float residue left by buys and sells that cancel out.
const quantityEpsilon = 1e-9

// Position classifies the holding by the sign of its net quantity.
func (h Holding) Position() model.Position {
	if math.Abs(h.Quantity) < quantityEpsilon {
		return model.PositionNeutral
	}
	return model.PositionFor(h.Quantity)
}

// Aggregate groups transactions by symbol. Holdings are returned sorted by
// symbol; flows inside a holding are in date order. When several transactions
// share the latest date the one listed last wins the latest price.
func Aggregate(txs []model.EnrichedTransaction) []Holding {
	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(a, b model.EnrichedTransaction) int {
		return a.Date.Compare(b.Date)
	})

	bySymbol := make(map[string]*Holding)
	var symbols []string
	for _, tx := range sorted {
		h, ok := bySymbol[tx.Symbol]
		if !ok {
			h = &Holding{Symbol: tx.Symbol}
			bySymbol[tx.Symbol] = h
			symbols = append(symbols, tx.Symbol)
		}
		h.Quantity += tx.Quantity
		h.Totals = h.Totals.Add(tx.Totals)
		h.LatestPrice = tx.Price
		h.LatestDate = tx.Date
		h.Flows = append(h.Flows, CashFlow{Date: tx.Date, Amount: tx.CashFlow})
	}

	slices.Sort(symbols)
	out := make([]Holding, len(symbols))
	for i, sym := range symbols {
		out[i] = *bySymbol[sym]
	}
	return out
}
