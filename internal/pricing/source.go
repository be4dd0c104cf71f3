// Package pricing resolves the market price of each transaction on its trade
// date. Lookups go to a QuoteSource, optionally through a QuoteCache, and are
// fanned out with a bounded number of workers.
package pricing

import (
	"context"
	"time"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/yahoo"
)

// Observation is one daily session of a symbol.
type Observation struct {
	Date  time.Time
	Close float64
}

// QuoteSource returns the sessions of symbol within [start, end).
type QuoteSource interface {
	History(ctx context.Context, symbol string, start, end time.Time) ([]Observation, error)
}

// YahooSource reads adjusted closes from the Yahoo chart API.
type YahooSource struct {
	client *yahoo.Client
}

// NewYahooSource creates a QuoteSource backed by client.
func NewYahooSource(client *yahoo.Client) *YahooSource {
	return &YahooSource{client: client}
}

// History implements QuoteSource.
func (s *YahooSource) History(ctx context.Context, symbol string, start, end time.Time) ([]Observation, error) {
	chart, err := s.client.QuerySymbolByDateRange(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]Observation, len(chart.Points))
	for i, p := range chart.Points {
		out[i] = Observation{Date: p.Date, Close: p.AdjustedClose}
	}
	return out, nil
}
