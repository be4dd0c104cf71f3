package portfolio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/model"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/reference"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func tx(symbol string, qty, price float64, d time.Time) model.Transaction {
	return model.Transaction{Symbol: symbol, Quantity: qty, Price: price, Date: d}
}

// flatTables has no splits, a default rate of 75 and the standard factors.
func flatTables(t *testing.T) *reference.Tables {
	t.Helper()
	tables, err := reference.NewBuilder(75).
		Factor(model.EUR, 0.85).
		Factor(model.GBP, 0.75).
		Build()
	require.NoError(t, err)
	return tables
}

func enrichAll(tables *reference.Tables, txs ...model.Transaction) []model.EnrichedTransaction {
	conv := NewConverter(tables)
	out := make([]model.EnrichedTransaction, len(txs))
	for i, t := range txs {
		out[i] = conv.Enrich(t, model.Estimate{})
	}
	return out
}
