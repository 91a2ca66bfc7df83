package waterfall

import (
	"iter"

	"investment_waterfall/pkg/core/validate"
)

// SensitivitySeries sweeps the sale price across an inclusive [lo, hi] grid of
// `steps` evenly spaced samples, holding the other inputs fixed. The returned
// sequence is lazy and restartable: each range re-runs the stateless
// calculation, and every point is an independent CalculateDeal+CalculateFund.
//
// steps is the number of samples. With steps == 1 only lo is sampled.
func SensitivitySeries(inputs DealInputs, a FixedAssumptions, lo, hi float64, steps int) (iter.Seq[SensitivityPoint], error) {
	if err := inputs.Validate(a); err != nil {
		return nil, err
	}
	if err := validate.CheckNonNegative("price_range_low", lo); err != nil {
		return nil, err
	}
	if hi < lo {
		return nil, validate.NewValidationError("price_range_high", hi, "must not be below the range low")
	}
	if steps < 1 {
		return nil, validate.NewValidationError("steps", float64(steps), "must be at least 1")
	}

	return func(yield func(SensitivityPoint) bool) {
		for i := 0; i < steps; i++ {
			price := lo
			if steps > 1 {
				price = lo + (hi-lo)*float64(i)/float64(steps-1)
			}

			point := inputs
			point.SalePrice = price
			deal := calculateDeal(point, a)
			fund := CalculateFund(deal, point, a)

			if !yield(SensitivityPoint{
				SalePrice:       price,
				TotalToInvestor: fund.TotalToInvestor,
				MOIC:            fund.MOIC,
			}) {
				return
			}
		}
	}, nil
}

// CollectSensitivity materializes the sweep into a slice, in input order.
// Convenience for the API and CLI layers.
func CollectSensitivity(inputs DealInputs, a FixedAssumptions, lo, hi float64, steps int) ([]SensitivityPoint, error) {
	seq, err := SensitivitySeries(inputs, a, lo, hi, steps)
	if err != nil {
		return nil, err
	}
	points := make([]SensitivityPoint, 0, steps)
	for p := range seq {
		points = append(points, p)
	}
	return points, nil
}
