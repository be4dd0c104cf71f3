package portfolio

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/model"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/reference"
)

// errPricesDisabled marks adjusted prices when no lookup is configured.
var errPricesDisabled = errors.New("price lookup disabled")

// PriceLookup resolves the adjusted market price of every transaction.
// The result has one entry per transaction, in the same order; a failed
// lookup is an unavailable estimate, never an error.
type PriceLookup interface {
	AdjustedPrices(ctx context.Context, txs []model.Transaction) []model.Estimate
}

// Result is the output of one pipeline run.
type Result struct {
	Summary      []model.SecuritySummary
	Transactions []model.EnrichedTransaction
	TimeSeries   model.TimeSeries
}

// Pipeline runs split adjustment, enrichment, conversion, aggregation, XIRR
// and the time series over a reference snapshot.
type Pipeline struct {
	tables *reference.Tables
	prices PriceLookup
	log    *logrus.Logger
	now    func() time.Time
}

// NewPipeline creates a pipeline. prices may be nil to skip market lookups.
func NewPipeline(tables *reference.Tables, prices PriceLookup, log *logrus.Logger) *Pipeline {
	return &Pipeline{
		tables: tables,
		prices: prices,
		log:    log,
		now:    time.Now,
	}
}

// WithClock overrides the valuation date used for holding values.
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// Run processes txs. The split adjustment rewrites txs in place before any
// derived value is computed.
func (p *Pipeline) Run(ctx context.Context, txs []model.Transaction) Result {
	ApplySplits(txs, p.tables)

	adjusted := p.adjustedPrices(ctx, txs)
	conv := NewConverter(p.tables)

	enriched := make([]model.EnrichedTransaction, len(txs))
	for i, tx := range txs {
		enriched[i] = conv.Enrich(tx, adjusted[i])
	}
	slices.SortStableFunc(enriched, func(a, b model.EnrichedTransaction) int {
		return a.Date.Compare(b.Date)
	})

	return Result{
		Summary:      p.summarize(Aggregate(enriched), conv),
		Transactions: enriched,
		TimeSeries:   BuildTimeSeries(enriched, p.tables),
	}
}

func (p *Pipeline) adjustedPrices(ctx context.Context, txs []model.Transaction) []model.Estimate {
	if p.prices == nil {
		out := make([]model.Estimate, len(txs))
		for i := range out {
			out[i] = model.Unavailable(errPricesDisabled)
		}
		return out
	}
	return p.prices.AdjustedPrices(ctx, txs)
}

func (p *Pipeline) summarize(holdings []Holding, conv Converter) []model.SecuritySummary {
	valuationDate := p.now()
	out := make([]model.SecuritySummary, len(holdings))
	for i, h := range holdings {
		holdingUSD := h.Quantity * h.LatestPrice

		// The position is valued at its summed home-currency totals on the
		// last trade date.
		terminal := CashFlow{Date: h.LatestDate, Amount: h.Totals.Get(model.HomeCurrency)}
		flows := append(slices.Clone(h.Flows), terminal)
		xirr := ReturnPercent(flows)
		if !xirr.Available {
			p.log.WithFields(logrus.Fields{
				"symbol": h.Symbol,
				"reason": xirr.Reason,
			}).Debug("xirr unavailable")
		}

		out[i] = model.SecuritySummary{
			Symbol:       h.Symbol,
			Quantity:     round(h.Quantity),
			Totals:       h.Totals.Map(round),
			Position:     h.Position(),
			XIRR:         xirr,
			LatestPrice:  round(h.LatestPrice),
			HoldingValue: conv.Values(holdingUSD, valuationDate).Map(round),
		}
	}
	return out
}
