package pricing

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimited throttles calls to the wrapped source. One limiter is shared by
// every request so concurrent reports cannot exceed the upstream budget.
type RateLimited struct {
	next    QuoteSource
	limiter *rate.Limiter
}

// NewRateLimited allows perSecond calls with the given burst. A non-positive
// perSecond disables throttling.
func NewRateLimited(next QuoteSource, perSecond float64, burst int) *RateLimited {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{next: next, limiter: rate.NewLimiter(limit, burst)}
}

// History waits for a token, then delegates.
func (r *RateLimited) History(ctx context.Context, symbol string, start, end time.Time) ([]Observation, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.next.History(ctx, symbol, start, end)
}
