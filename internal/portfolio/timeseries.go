package portfolio

import (
	"slices"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/model"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/reference"
)

// BuildTimeSeries values the portfolio at the end of every calendar day from
// the first to the last transaction day, inclusive.
//
// Transactions are walked once in date order. A running quantity and the last
// traded price are kept per symbol; each day's snapshot is the sum of
// quantity * last price over every symbol seen so far, converted at that
// day's exchange rate.
func BuildTimeSeries(txs []model.EnrichedTransaction, tables *reference.Tables) model.TimeSeries {
	if len(txs) == 0 {
		return model.TimeSeries{}
	}

	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(a, b model.EnrichedTransaction) int {
		return a.Date.Compare(b.Date)
	})

	conv := NewConverter(tables)
	start := dayOf(sorted[0].Date)
	end := dayOf(sorted[len(sorted)-1].Date)

	quantity := make(map[string]float64)
	lastPrice := make(map[string]float64)
	var symbols []string

	series := make(model.TimeSeries, 0, int(end.Sub(start).Hours()/24)+1)
	next := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		for next < len(sorted) && !dayOf(sorted[next].Date).After(day) {
			tx := sorted[next]
			if _, seen := quantity[tx.Symbol]; !seen {
				symbols = append(symbols, tx.Symbol)
			}
			quantity[tx.Symbol] += tx.Quantity
			lastPrice[tx.Symbol] = tx.Price
			next++
		}

		var usd float64
		for _, sym := range symbols {
			usd += quantity[sym] * lastPrice[sym]
		}
		series = append(series, model.PortfolioSnapshot{
			Date:  day.Format(reference.DateLayout),
			Value: conv.Values(usd, day).Map(round),
		})
	}
	return series
}
