package waterfall

import (
	"math"

	"investment_waterfall/pkg/core/rootfind"
)

// CalculateDeal runs the preference-vs-pro-rata comparison for one scenario.
// Pure function: same inputs always produce the same DealResult. The only
// failure path is a validation error on the inputs.
func CalculateDeal(inputs DealInputs, a FixedAssumptions) (DealResult, error) {
	if err := inputs.Validate(a); err != nil {
		return DealResult{}, err
	}
	return calculateDeal(inputs, a), nil
}

// calculateDeal assumes inputs already validated. The sensitivity sweep and
// threshold search call this directly after validating once up front.
func calculateDeal(inputs DealInputs, a FixedAssumptions) DealResult {
	// 1. Management carve-out off the top of the sale price
	carveOut := inputs.SalePrice * inputs.CarveOutPct
	netProceeds := inputs.SalePrice - carveOut

	// 2. 2x non-participating preference on the invested amount
	liqPref := a.LiquidationMultiple * inputs.InitialInvestment

	// 3. Pro-rata share of net proceeds
	ownership := inputs.OwnershipPct(a)
	proRata := ownership * netProceeds

	// 4. Greater of the two; tie breaks toward the preference
	preferenceBinding := liqPref >= proRata
	proceeds := math.Max(liqPref, proRata)

	// 5. Cap at net proceeds. The per-slice formula assumes enough proceeds
	// exist to satisfy the preference across the whole cap table; the investor
	// can never receive more than the company's net proceeds allow.
	if proceeds > netProceeds {
		proceeds = netProceeds
	}

	return DealResult{
		CarveOutAmount:    carveOut,
		NetProceeds:       netProceeds,
		OwnershipPct:      ownership,
		LiquidationPref:   liqPref,
		ProRataAmount:     proRata,
		PreferenceBinding: preferenceBinding,
		InvestorProceeds:  proceeds,
	}
}

// CalculateFund applies the fund-level waterfall to the deal proceeds:
// management fees off the top, return of capital, then the LP/GP profit split.
func CalculateFund(deal DealResult, inputs DealInputs, a FixedAssumptions) FundResult {
	// 1. Management fees accrue annually on the invested amount
	fees := a.AnnualManagementFeePct * inputs.InitialInvestment * inputs.HoldingYears

	// 2. Fees are borne before any distribution
	afterFees := deal.InvestorProceeds - fees
	if afterFees < 0 {
		afterFees = 0
	}

	// 3. Capital comes back before profit, never more than was invested
	returnOfCapital := math.Min(inputs.InitialInvestment, afterFees)

	// 4. Whatever remains is distributable profit
	profit := afterFees - returnOfCapital

	// 5. 80/20 split. GP share is computed as the remainder so that
	// LP + GP equals the profit exactly, with no floating-point residue.
	lpShare := a.LPSharePct * profit
	gpShare := profit - lpShare

	// 6. Investor take: capital back plus the LP share of profit, never more
	// than the proceeds left after fees.
	total := returnOfCapital + lpShare
	if total > afterFees {
		total = afterFees
	}

	moic := total / inputs.InitialInvestment

	// 7. IRR over the two-point timeline: -investment at t=0, +total at exit.
	// Undefined (nil) when the holding period is zero.
	var irr *float64
	if inputs.HoldingYears > 0 {
		if r, err := rootfind.TwoPointIRR(inputs.InitialInvestment, total, inputs.HoldingYears); err == nil {
			irr = &r
		}
	}

	return FundResult{
		TotalManagementFees: fees,
		ReturnOfCapital:     returnOfCapital,
		DistributableProfit: profit,
		LPProfitShare:       lpShare,
		GPProfitShare:       gpShare,
		TotalToInvestor:     total,
		MOIC:                moic,
		IRR:                 irr,
	}
}

// CalculateScenario is the combined entrypoint used by the API and CLI:
// one validation pass, then deal- and fund-level results together.
func CalculateScenario(inputs DealInputs, a FixedAssumptions) (DealResult, FundResult, error) {
	deal, err := CalculateDeal(inputs, a)
	if err != nil {
		return DealResult{}, FundResult{}, err
	}
	fund := CalculateFund(deal, inputs, a)
	return deal, fund, nil
}
