package waterfall

import (
	"sort"

	"investment_waterfall/pkg/core/validate"
)

// Threshold search parameters. The solver converges to within one currency
// unit on the sale price, or stops at the iteration cap.
const (
	ThresholdTolerance     = 1.0
	thresholdMaxIterations = 64
)

// ThresholdTable solves, for each target MOIC, the minimal sale price at which
// the fund result reaches that target, searching [0, maxSalePrice]. Targets
// that even maxSalePrice cannot reach come back with Unreachable set rather
// than a wrong number.
//
// The bisection relies on MOIC being monotonically non-decreasing in sale
// price under the current formulas. Any future change that breaks that
// monotonicity (for example per-tranche payout caps) invalidates this search.
func ThresholdTable(inputs DealInputs, a FixedAssumptions, targets []float64, maxSalePrice float64) ([]ThresholdRow, error) {
	if err := inputs.Validate(a); err != nil {
		return nil, err
	}
	if err := validate.CheckPositive("max_sale_price", maxSalePrice); err != nil {
		return nil, err
	}
	for _, target := range targets {
		if err := validate.CheckNonNegative("target_moic", target); err != nil {
			return nil, err
		}
	}

	moicAt := func(price float64) float64 {
		point := inputs
		point.SalePrice = price
		deal := calculateDeal(point, a)
		return CalculateFund(deal, point, a).MOIC
	}

	// Solve targets in ascending order; report rows in input order.
	sorted := append([]float64(nil), targets...)
	sort.Float64s(sorted)

	solved := make(map[float64]ThresholdRow, len(sorted))
	for _, target := range sorted {
		if _, done := solved[target]; done {
			continue
		}
		solved[target] = solveThreshold(moicAt, target, maxSalePrice, a)
	}

	rows := make([]ThresholdRow, len(targets))
	for i, target := range targets {
		rows[i] = solved[target]
	}
	return rows, nil
}

func solveThreshold(moicAt func(float64) float64, target, maxSalePrice float64, a FixedAssumptions) ThresholdRow {
	row := ThresholdRow{TargetMOIC: target}

	if moicAt(maxSalePrice) < target {
		row.Unreachable = true
		return row
	}
	if moicAt(0) >= target {
		row.RequiredSalePrice = 0
		return row
	}

	// Invariant: moicAt(lo) < target <= moicAt(hi).
	lo, hi := 0.0, maxSalePrice
	for i := 0; i < thresholdMaxIterations && !validate.WithinTolerance(lo, hi, ThresholdTolerance); i++ {
		mid := (lo + hi) / 2
		if moicAt(mid) >= target {
			hi = mid
		} else {
			lo = mid
		}
	}

	row.RequiredSalePrice = hi
	row.ExitMultiple = hi / a.PostMoneyValuation
	return row
}
