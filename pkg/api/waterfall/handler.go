// Package waterfall exposes the calculation engine over thin JSON endpoints.
// The UI layer consumes these as plain numeric/tabular data; all financial
// logic lives in pkg/core.
package waterfall

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	core "investment_waterfall/pkg/core/waterfall"
	"investment_waterfall/pkg/core/validate"
)

// Defaults are the caller-overridable sweep and threshold settings, loaded
// from config/engine.yaml at startup.
type Defaults struct {
	SensitivityLow   float64   `json:"sensitivity_low" yaml:"sensitivity_low"`
	SensitivityHigh  float64   `json:"sensitivity_high" yaml:"sensitivity_high"`
	SensitivitySteps int       `json:"sensitivity_steps" yaml:"sensitivity_steps"`
	TargetMOICs      []float64 `json:"target_moics" yaml:"target_moics"`
	MaxSalePrice     float64   `json:"max_sale_price" yaml:"max_sale_price"`
}

// StandardDefaults mirrors the ranges of the reference calculator:
// sweep 25M..1000M, targets {1, 1.5, 2, 3, 5}x.
var StandardDefaults = Defaults{
	SensitivityLow:   25_000_000,
	SensitivityHigh:  1_000_000_000,
	SensitivitySteps: 40,
	TargetMOICs:      []float64{1.0, 1.5, 2.0, 3.0, 5.0},
	MaxSalePrice:     1_000_000_000,
}

// Handler holds the engine assumptions and sweep defaults for the endpoints.
type Handler struct {
	Assumptions core.FixedAssumptions
	Defaults    Defaults
}

// NewHandler creates a waterfall API handler.
func NewHandler(defaults Defaults) *Handler {
	return &Handler{
		Assumptions: core.DefaultAssumptions,
		Defaults:    defaults,
	}
}

// ReportResponse pairs the deal- and fund-level results for one scenario.
type ReportResponse struct {
	Inputs core.DealInputs `json:"inputs"`
	Deal   core.DealResult `json:"deal"`
	Fund   core.FundResult `json:"fund"`
}

// SensitivityRequest sweeps the sale price over a grid; omitted range fields
// fall back to the configured defaults.
type SensitivityRequest struct {
	core.DealInputs
	PriceLow  *float64 `json:"price_low"`
	PriceHigh *float64 `json:"price_high"`
	Steps     *int     `json:"steps"`
}

// ThresholdsRequest solves required sale prices for target MOIC multiples.
type ThresholdsRequest struct {
	core.DealInputs
	Targets      []float64 `json:"targets"`
	MaxSalePrice *float64  `json:"max_sale_price"`
}

// HandleReport computes the base case: POST five scalars, get the
// DealResult + FundResult breakdown.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	if !allowPost(w, r) {
		return
	}

	var inputs core.DealInputs
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	reqID := shortID()
	fmt.Printf("[WATERFALL] (%s) Report: sale=%.0f invest=%.0f carve=%.3f years=%.1f\n",
		reqID, inputs.SalePrice, inputs.InitialInvestment, inputs.CarveOutPct, inputs.HoldingYears)

	deal, fund, err := core.CalculateScenario(inputs, h.Assumptions)
	if err != nil {
		writeEngineError(w, reqID, err)
		return
	}

	writeJSON(w, ReportResponse{Inputs: inputs, Deal: deal, Fund: fund})
}

// HandleSensitivity runs the sale-price sweep and returns one point per
// sampled price, in grid order.
func (h *Handler) HandleSensitivity(w http.ResponseWriter, r *http.Request) {
	if !allowPost(w, r) {
		return
	}

	var req SensitivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	lo := h.Defaults.SensitivityLow
	hi := h.Defaults.SensitivityHigh
	steps := h.Defaults.SensitivitySteps
	if req.PriceLow != nil {
		lo = *req.PriceLow
	}
	if req.PriceHigh != nil {
		hi = *req.PriceHigh
	}
	if req.Steps != nil {
		steps = *req.Steps
	}

	reqID := shortID()
	fmt.Printf("[WATERFALL] (%s) Sensitivity: %.0f..%.0f in %d steps\n", reqID, lo, hi, steps)

	points, err := core.CollectSensitivity(req.DealInputs, h.Assumptions, lo, hi, steps)
	if err != nil {
		writeEngineError(w, reqID, err)
		return
	}

	writeJSON(w, points)
}

// HandleThresholds solves the sale price needed for each target MOIC.
func (h *Handler) HandleThresholds(w http.ResponseWriter, r *http.Request) {
	if !allowPost(w, r) {
		return
	}

	var req ThresholdsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	targets := req.Targets
	if len(targets) == 0 {
		targets = h.Defaults.TargetMOICs
	}
	maxPrice := h.Defaults.MaxSalePrice
	if req.MaxSalePrice != nil {
		maxPrice = *req.MaxSalePrice
	}

	reqID := shortID()
	fmt.Printf("[WATERFALL] (%s) Thresholds: %d targets up to %.0f\n", reqID, len(targets), maxPrice)

	rows, err := core.ThresholdTable(req.DealInputs, h.Assumptions, targets, maxPrice)
	if err != nil {
		writeEngineError(w, reqID, err)
		return
	}

	writeJSON(w, rows)
}

// allowPost applies the CORS headers and method gate shared by all endpoints.
func allowPost(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return false
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func writeEngineError(w http.ResponseWriter, reqID string, err error) {
	if validate.IsValidationError(err) {
		fmt.Printf("[WATERFALL] (%s) Rejected: %v\n", reqID, err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	fmt.Printf("[ERROR] (%s) Calculation failed: %v\n", reqID, err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func shortID() string {
	return uuid.NewString()[:8]
}
