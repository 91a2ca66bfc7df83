// Package waterfall implements the deal- and fund-level return calculation
// for a single venture investment routed through a fund, under a 2x
// non-participating liquidation preference and an 80/20 LP/GP profit split.
package waterfall

import (
	"investment_waterfall/pkg/core/validate"
)

// =============================================================================
// INPUTS
// =============================================================================

// DealInputs holds the caller-supplied scalars for one scenario.
// OwnershipPct is derived (InitialInvestment / PostMoneyValuation), never set.
type DealInputs struct {
	SalePrice         float64 `json:"sale_price"`         // Company exit price, currency units
	CarveOutPct       float64 `json:"carve_out_pct"`      // Management carve-out, fraction of sale price
	InitialInvestment float64 `json:"initial_investment"` // Fund investment into the company
	HoldingYears      float64 `json:"holding_years"`      // Time from investment to exit
}

// FixedAssumptions are the process-wide constants of the fund structure.
// They are never mutated at runtime.
type FixedAssumptions struct {
	PostMoneyValuation     float64 `json:"post_money_valuation"`
	LiquidationMultiple    float64 `json:"liquidation_multiple"`
	LPSharePct             float64 `json:"lp_share_pct"`
	GPSharePct             float64 `json:"gp_share_pct"`
	AnnualManagementFeePct float64 `json:"annual_management_fee_pct"`
}

// DefaultAssumptions is the fund structure this engine models:
// $80M post-money, 2x non-participating preference, 80/20 split, 2% annual fee.
var DefaultAssumptions = FixedAssumptions{
	PostMoneyValuation:     80_000_000,
	LiquidationMultiple:    2.0,
	LPSharePct:             0.80,
	GPSharePct:             0.20,
	AnnualManagementFeePct: 0.02,
}

// OwnershipPct returns the fund's ownership of the company implied by the
// investment and the post-money valuation.
func (in DealInputs) OwnershipPct(a FixedAssumptions) float64 {
	return in.InitialInvestment / a.PostMoneyValuation
}

// Validate checks every scalar against its documented domain. The engine
// never clamps: a violation aborts the whole computation for that input set.
func (in DealInputs) Validate(a FixedAssumptions) error {
	if err := validate.CheckNonNegative("sale_price", in.SalePrice); err != nil {
		return err
	}
	if err := validate.CheckFraction("carve_out_pct", in.CarveOutPct); err != nil {
		return err
	}
	if err := validate.CheckPositive("initial_investment", in.InitialInvestment); err != nil {
		return err
	}
	if err := validate.CheckMax("initial_investment", in.InitialInvestment, a.PostMoneyValuation); err != nil {
		return err
	}
	if err := validate.CheckNonNegative("holding_years", in.HoldingYears); err != nil {
		return err
	}
	return nil
}

// =============================================================================
// RESULTS
// =============================================================================

// DealResult is the per-deal outcome of the preference-vs-pro-rata comparison.
type DealResult struct {
	CarveOutAmount    float64 `json:"carve_out_amount"`
	NetProceeds       float64 `json:"net_proceeds"`       // After management carve-out
	OwnershipPct      float64 `json:"ownership_pct"`      // Derived fund ownership
	LiquidationPref   float64 `json:"liquidation_pref"`   // Multiple x investment
	ProRataAmount     float64 `json:"pro_rata_amount"`    // Ownership x net proceeds
	PreferenceBinding bool    `json:"preference_binding"` // True when the preference >= pro-rata
	InvestorProceeds  float64 `json:"investor_proceeds"`  // Greater of the two, capped at net proceeds
}

// FundResult is the fund-level waterfall applied to the deal proceeds.
// IRR is nil when undefined (zero holding period); it is never NaN.
type FundResult struct {
	TotalManagementFees float64  `json:"total_management_fees"`
	ReturnOfCapital     float64  `json:"return_of_capital"`
	DistributableProfit float64  `json:"distributable_profit"`
	LPProfitShare       float64  `json:"lp_profit_share"`
	GPProfitShare       float64  `json:"gp_profit_share"`
	TotalToInvestor     float64  `json:"total_to_investor"` // Return of capital + LP profit share
	MOIC                float64  `json:"moic"`
	IRR                 *float64 `json:"irr"`
}

// SensitivityPoint is one sampled sale price in a sensitivity sweep.
type SensitivityPoint struct {
	SalePrice       float64 `json:"sale_price"`
	TotalToInvestor float64 `json:"total_to_investor"`
	MOIC            float64 `json:"moic"`
}

// ThresholdRow reports the minimal sale price that achieves a target MOIC.
// When Unreachable is true no price within the searched range achieves the
// target and RequiredSalePrice/ExitMultiple carry no meaning.
type ThresholdRow struct {
	TargetMOIC        float64 `json:"target_moic"`
	RequiredSalePrice float64 `json:"required_sale_price"`
	ExitMultiple      float64 `json:"exit_multiple"` // RequiredSalePrice / post-money valuation
	Unreachable       bool    `json:"unreachable"`
}
