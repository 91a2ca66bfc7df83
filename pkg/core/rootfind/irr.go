// Package rootfind computes annualized internal rates of return from short,
// explicit cash-flow timelines.
package rootfind

import (
	"errors"
	"fmt"
	"math"
)

// CashFlow is a single dated amount on the timeline. Years is measured from
// time zero; Amount is negative for outflows and positive for inflows.
type CashFlow struct {
	Years  float64
	Amount float64
}

// Solver bounds. Rates below -100% are not economically meaningful, and a
// 1,000,000% annual return comfortably brackets anything this engine models.
const (
	minRate       = -0.9999
	maxRate       = 10_000.0
	maxIterations = 200
	tolerance     = 1e-9
)

var (
	// ErrSameSign means the timeline has no sign change, so NPV(r) = 0 has no root.
	ErrSameSign = errors.New("cash flows must contain at least one outflow and one inflow")
	// ErrNoConvergence means the bounded search exhausted its iteration cap.
	ErrNoConvergence = errors.New("IRR search did not converge within iteration cap")
)

// NPV discounts the timeline at rate r: sum of amount_i / (1+r)^years_i.
func NPV(flows []CashFlow, r float64) float64 {
	total := 0.0
	for _, cf := range flows {
		total += cf.Amount / math.Pow(1.0+r, cf.Years)
	}
	return total
}

// IRR finds the rate r such that NPV(flows, r) = 0, via bisection on the
// bracketed interval. The timeline must contain at least one negative and one
// positive amount; otherwise no root exists and ErrSameSign is returned.
func IRR(flows []CashFlow) (float64, error) {
	if len(flows) < 2 {
		return 0, fmt.Errorf("need at least 2 cash flows, got %d", len(flows))
	}

	hasNeg, hasPos := false, false
	for _, cf := range flows {
		if cf.Amount < 0 {
			hasNeg = true
		}
		if cf.Amount > 0 {
			hasPos = true
		}
	}
	if !hasNeg || !hasPos {
		return 0, ErrSameSign
	}

	// Bisection requires a sign change across the bracket.
	lo, hi := minRate, maxRate
	npvLo := NPV(flows, lo)
	npvHi := NPV(flows, hi)
	if npvLo*npvHi > 0 {
		return 0, ErrNoConvergence
	}

	for i := 0; i < maxIterations; i++ {
		mid := (lo + hi) / 2
		npvMid := NPV(flows, mid)

		if math.Abs(npvMid) < tolerance || (hi-lo)/2 < tolerance {
			return mid, nil
		}

		if npvLo*npvMid < 0 {
			hi = mid
		} else {
			lo = mid
			npvLo = npvMid
		}
	}

	return 0, ErrNoConvergence
}

// TwoPointIRR solves the two-flow case in closed form:
//
//	r = (returned / invested)^(1/years) - 1
//
// This is exact for a single outflow at time 0 and a single inflow at time
// `years`, and is preferred over the numeric search for speed and determinism.
// Years must be positive and invested must be positive; a zero return is
// valid and yields r = -1 asymptotically (reported as -1 exactly when
// returned is 0).
func TwoPointIRR(invested, returned, years float64) (float64, error) {
	if invested <= 0 {
		return 0, fmt.Errorf("invested amount must be positive, got %g", invested)
	}
	if years <= 0 {
		return 0, fmt.Errorf("holding period must be positive, got %g", years)
	}
	if returned < 0 {
		return 0, fmt.Errorf("returned amount must be non-negative, got %g", returned)
	}
	if returned == 0 {
		// Total loss: -100% annualized regardless of horizon.
		return -1.0, nil
	}
	return math.Pow(returned/invested, 1.0/years) - 1.0, nil
}
