package pricing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/apperrors"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/model"
)

// Enricher looks up the market close of every transaction. It satisfies the
// pipeline's PriceLookup.
type Enricher struct {
	source      QuoteSource
	cache       QuoteCache
	windowDays  int
	concurrency int
	log         *logrus.Logger
}

// NewEnricher creates an Enricher. cache may be nil. The lookup window spans
// windowDays either side of the trade date.
func NewEnricher(source QuoteSource, cache QuoteCache, windowDays, concurrency int, log *logrus.Logger) *Enricher {
	if concurrency < 1 {
		concurrency = 1
	}
	if windowDays < 0 {
		windowDays = 0
	}
	return &Enricher{
		source:      source,
		cache:       cache,
		windowDays:  windowDays,
		concurrency: concurrency,
		log:         log,
	}
}

type lookupKey struct {
	symbol string
	day    time.Time
}

// AdjustedPrices returns one estimate per transaction, in order. Transactions
// sharing a symbol and trade day are looked up once.
func (e *Enricher) AdjustedPrices(ctx context.Context, txs []model.Transaction) []model.Estimate {
	keys := make([]lookupKey, len(txs))
	var unique []lookupKey
	seen := make(map[lookupKey]struct{})
	for i, tx := range txs {
		k := lookupKey{symbol: tx.Symbol, day: tx.Date.UTC().Truncate(24 * time.Hour)}
		keys[i] = k
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			unique = append(unique, k)
		}
	}

	var mu sync.Mutex
	results := make(map[lookupKey]model.Estimate, len(unique))

	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for _, k := range unique {
		g.Go(func() error {
			est := e.lookup(ctx, k)
			mu.Lock()
			results[k] = est
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	out := make([]model.Estimate, len(txs))
	for i, k := range keys {
		out[i] = results[k]
	}
	return out
}

func (e *Enricher) lookup(ctx context.Context, k lookupKey) model.Estimate {
	fields := logrus.Fields{
		"symbol": k.symbol,
		"date":   k.day.Format(time.DateOnly),
	}

	if e.cache != nil {
		v, err := e.cache.Get(ctx, k.symbol, k.day)
		if err == nil {
			return model.Known(v)
		}
		if !errors.Is(err, apperrors.ErrCacheMiss) {
			e.log.WithFields(fields).WithError(err).Warn("quote cache read failed")
		}
	}

	price, err := e.fetch(ctx, k)
	if err != nil {
		e.log.WithFields(fields).WithError(err).Warn("price lookup failed")
		return model.Unavailable(err)
	}

	if e.cache != nil {
		if err := e.cache.Set(ctx, k.symbol, k.day, price); err != nil {
			e.log.WithFields(fields).WithError(err).Warn("quote cache write failed")
		}
	}
	return model.Known(price)
}

// fetch returns the first close on or after the window start, rounded to cents.
func (e *Enricher) fetch(ctx context.Context, k lookupKey) (float64, error) {
	start := k.day.AddDate(0, 0, -e.windowDays)
	end := k.day.AddDate(0, 0, e.windowDays)
	if !end.After(start) {
		end = start.AddDate(0, 0, 1)
	}

	obs, err := e.source.History(ctx, k.symbol, start, end)
	if err != nil {
		return 0, fmt.Errorf("%w: %s on %s: %w", apperrors.ErrPriceUnavailable, k.symbol, k.day.Format(time.DateOnly), err)
	}
	for _, o := range obs {
		if !o.Date.Before(start) {
			return decimal.NewFromFloat(o.Close).Round(2).InexactFloat64(), nil
		}
	}
	return 0, fmt.Errorf("%w: %s on %s: no sessions in window", apperrors.ErrPriceUnavailable, k.symbol, k.day.Format(time.DateOnly))
}
