// Package reference holds the static lookup tables used by the report pipeline:
// stock splits, the date-indexed home-currency exchange rate and the fixed
// USD conversion factors.
//
// A Tables value is immutable once built. The pipeline receives one snapshot
// per run so results never depend on a reload happening mid-request.
package reference

import (
	"fmt"
	"slices"
	"time"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/apperrors"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/model"
)

// DateLayout is the key format of the exchange-rate table.
const DateLayout = "2006-01-02"

// Tables is a snapshot of all reference data.
type Tables struct {
	splits      map[string][]model.SplitEvent
	rates       map[string]float64
	defaultRate float64
	factors     map[string]float64
}

// Builder collects reference rows and produces an immutable Tables.
type Builder struct {
	splits      []model.SplitEvent
	rates       map[string]float64
	defaultRate float64
	factors     map[string]float64
}

// NewBuilder starts an empty table set with the given default exchange rate.
func NewBuilder(defaultRate float64) *Builder {
	return &Builder{
		rates:       make(map[string]float64),
		defaultRate: defaultRate,
		factors:     make(map[string]float64),
	}
}

// Split records a split event.
func (b *Builder) Split(symbol string, effective time.Time, ratio int) *Builder {
	b.splits = append(b.splits, model.SplitEvent{Symbol: symbol, EffectiveDate: effective, Ratio: ratio})
	return b
}

// Rate records the home-currency rate for a calendar date.
func (b *Builder) Rate(date time.Time, rate float64) *Builder {
	b.rates[date.Format(DateLayout)] = rate
	return b
}

// Factor records the fixed USD conversion factor for a currency.
func (b *Builder) Factor(currency string, factor float64) *Builder {
	b.factors[currency] = factor
	return b
}

// Build validates the collected rows. Splits are sorted per symbol by
// ascending effective date.
func (b *Builder) Build() (*Tables, error) {
	t := &Tables{
		splits:      make(map[string][]model.SplitEvent),
		rates:       make(map[string]float64, len(b.rates)),
		defaultRate: b.defaultRate,
		factors:     make(map[string]float64, len(b.factors)),
	}
	if b.defaultRate <= 0 {
		return nil, fmt.Errorf("default exchange rate must be positive, got %v", b.defaultRate)
	}
	for _, s := range b.splits {
		if s.Ratio < 1 {
			return nil, fmt.Errorf("%w: %s on %s has ratio %d",
				apperrors.ErrInvalidSplitRatio, s.Symbol, s.EffectiveDate.Format(DateLayout), s.Ratio)
		}
		t.splits[s.Symbol] = append(t.splits[s.Symbol], s)
	}
	for sym := range t.splits {
		slices.SortStableFunc(t.splits[sym], func(a, b model.SplitEvent) int {
			return a.EffectiveDate.Compare(b.EffectiveDate)
		})
	}
	for k, v := range b.rates {
		t.rates[k] = v
	}
	for _, cur := range []string{model.EUR, model.GBP} {
		f, ok := b.factors[cur]
		if !ok || f <= 0 {
			return nil, fmt.Errorf("missing conversion factor for %s", cur)
		}
	}
	for k, v := range b.factors {
		t.factors[k] = v
	}
	return t, nil
}

// Defaults returns the built-in tables used when no reference database is configured.
func Defaults() *Tables {
	t, err := NewBuilder(75.0).
		Split("AAPL", day(2020, time.August, 31), 4).
		Split("TSLA", day(2020, time.August, 31), 5).
		Split("TSLA", day(2022, time.August, 25), 3).
		Rate(day(2020, time.August, 31), 74.0).
		Rate(day(2022, time.August, 25), 79.0).
		Factor(model.EUR, 0.85).
		Factor(model.GBP, 0.75).
		Build()
	if err != nil {
		panic(err)
	}
	return t
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Symbols returns the symbols that have split events, sorted.
func (t *Tables) Symbols() []string {
	out := make([]string, 0, len(t.splits))
	for sym := range t.splits {
		out = append(out, sym)
	}
	slices.Sort(out)
	return out
}

// SplitsFor returns the splits of symbol in ascending effective-date order.
func (t *Tables) SplitsFor(symbol string) []model.SplitEvent {
	return slices.Clone(t.splits[symbol])
}

// Splits returns every split, ordered by symbol then effective date.
func (t *Tables) Splits() []model.SplitEvent {
	var out []model.SplitEvent
	for _, sym := range t.Symbols() {
		out = append(out, t.splits[sym]...)
	}
	return out
}

// LookupRate returns the explicit rate for the calendar date of d.
func (t *Tables) LookupRate(d time.Time) (float64, error) {
	key := d.Format(DateLayout)
	if r, ok := t.rates[key]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("%w: %s", apperrors.ErrExchangeRateNotFound, key)
}

// RateOn returns the home-currency rate for d, or the default rate when the
// date has no explicit entry.
func (t *Tables) RateOn(d time.Time) float64 {
	if r, err := t.LookupRate(d); err == nil {
		return r
	}
	return t.defaultRate
}

// DefaultRate returns the fallback exchange rate.
func (t *Tables) DefaultRate() float64 { return t.defaultRate }

// Rates returns a copy of the explicit rate table keyed by YYYY-MM-DD.
func (t *Tables) Rates() map[string]float64 {
	out := make(map[string]float64, len(t.rates))
	for k, v := range t.rates {
		out[k] = v
	}
	return out
}

// Factor returns the fixed USD conversion factor of currency. USD is 1.
func (t *Tables) Factor(currency string) float64 {
	if currency == model.USD {
		return 1
	}
	return t.factors[currency]
}

// Export returns a serialisable copy of the tables.
func (t *Tables) Export() model.ReferenceData {
	factors := make(map[string]float64, len(model.Currencies))
	for _, cur := range model.Currencies {
		if cur == model.HomeCurrency {
			continue
		}
		factors[cur] = t.Factor(cur)
	}
	splits := t.Splits()
	if splits == nil {
		splits = []model.SplitEvent{}
	}
	return model.ReferenceData{
		Splits:        splits,
		ExchangeRates: t.Rates(),
		DefaultRate:   t.defaultRate,
		Factors:       factors,
		HomeCurrency:  model.HomeCurrency,
	}
}
