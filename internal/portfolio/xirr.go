package portfolio

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/apperrors"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/model"
)

const (
	daysPerYear     = 365.0
	newtonGuess     = 0.1
	newtonMaxIter   = 100
	bisectMaxIter   = 500
	rateTolerance   = 1e-10
	npvTolerance    = 1e-7 // relative to the sum of absolute flows
	lowestRate      = -0.999999999
	highestRateSeed = 1.0
	highestRate     = 1e9
)

// CashFlow is a dated amount in the home currency. Negative amounts are
// money paid into the position.
type CashFlow struct {
	Date   time.Time
	Amount float64
}

// XIRR returns the annualised rate r solving
//
//	sum(amount_i / (1+r)^(days_i/365)) = 0
//
// where days_i counts calendar days from the earliest flow. Newton-Raphson is
// tried first; bracketed bisection takes over when it diverges.
func XIRR(flows []CashFlow) (float64, error) {
	if len(flows) < 2 {
		return 0, fmt.Errorf("%w: need at least two flows, got %d", apperrors.ErrDegenerateCashFlows, len(flows))
	}

	first := slices.MinFunc(flows, func(a, b CashFlow) int { return a.Date.Compare(b.Date) }).Date
	start := dayOf(first)

	years := make([]float64, len(flows))
	amounts := make([]float64, len(flows))
	var hasPos, hasNeg, spansDays bool
	var scale float64
	for i, f := range flows {
		days := dayOf(f.Date).Sub(start).Hours() / 24
		years[i] = days / daysPerYear
		amounts[i] = f.Amount
		scale += math.Abs(f.Amount)
		switch {
		case f.Amount > 0:
			hasPos = true
		case f.Amount < 0:
			hasNeg = true
		}
		if days > 0 {
			spansDays = true
		}
	}
	if !hasPos || !hasNeg {
		return 0, fmt.Errorf("%w: flows do not change sign", apperrors.ErrDegenerateCashFlows)
	}
	if !spansDays {
		return 0, fmt.Errorf("%w: all flows fall on one day", apperrors.ErrDegenerateCashFlows)
	}

	npv := func(r float64) float64 {
		var sum float64
		for i, a := range amounts {
			sum += a * math.Pow(1+r, -years[i])
		}
		return sum
	}
	dnpv := func(r float64) float64 {
		var sum float64
		for i, a := range amounts {
			sum -= years[i] * a * math.Pow(1+r, -years[i]-1)
		}
		return sum
	}
	tol := npvTolerance * scale

	if r, ok := newton(npv, dnpv, tol); ok {
		return r, nil
	}
	if r, ok := bisect(npv); ok {
		return r, nil
	}
	return 0, apperrors.ErrNoConvergence
}

func newton(f, df func(float64) float64, tol float64) (float64, bool) {
	r := newtonGuess
	for range newtonMaxIter {
		v := f(r)
		d := df(r)
		if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return 0, false
		}
		next := r - v/d
		if next <= -1 || math.IsNaN(next) || math.IsInf(next, 0) {
			return 0, false
		}
		if math.Abs(next-r) < rateTolerance*math.Max(1, math.Abs(next)) {
			if math.Abs(f(next)) <= tol {
				return next, true
			}
			return 0, false
		}
		r = next
	}
	return 0, false
}

func bisect(f func(float64) float64) (float64, bool) {
	lo, hi := lowestRate, highestRateSeed
	flo, fhi := f(lo), f(hi)
	for sameSign(flo, fhi) && hi < highestRate {
		hi *= 2
		fhi = f(hi)
	}
	if sameSign(flo, fhi) || math.IsNaN(flo) || math.IsNaN(fhi) {
		return 0, false
	}

	for range bisectMaxIter {
		mid := lo + (hi-lo)/2
		fm := f(mid)
		if fm == 0 || hi-lo < rateTolerance*math.Max(1, math.Abs(mid)) {
			return mid, true
		}
		if sameSign(flo, fm) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}
	return 0, false
}

func sameSign(a, b float64) bool {
	return (a > 0 && b > 0) || (a < 0 && b < 0)
}

// ReturnPercent solves XIRR and reports it as a percentage rounded to two
// decimals. Solver failures become an unavailable estimate.
func ReturnPercent(flows []CashFlow) model.Estimate {
	r, err := XIRR(flows)
	if err != nil {
		return model.Unavailable(err)
	}
	return model.Known(round(r * 100))
}
