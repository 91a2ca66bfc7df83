// Package config serves the fixed fund assumptions and sweep defaults so the
// UI can label its widgets without hardcoding engine constants.
package config

import (
	"encoding/json"
	"net/http"

	apiwaterfall "investment_waterfall/pkg/api/waterfall"
	core "investment_waterfall/pkg/core/waterfall"
)

// Response describes the engine's constant assumptions and default ranges.
type Response struct {
	Assumptions core.FixedAssumptions `json:"assumptions"`
	Defaults    apiwaterfall.Defaults `json:"defaults"`
}

// Handler holds dependencies for config endpoints.
type Handler struct {
	Assumptions core.FixedAssumptions
	Defaults    apiwaterfall.Defaults
}

// NewHandler creates a new config handler.
func NewHandler(defaults apiwaterfall.Defaults) *Handler {
	return &Handler{
		Assumptions: core.DefaultAssumptions,
		Defaults:    defaults,
	}
}

func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	// Add CORS headers for local dev
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	resp := Response{
		Assumptions: h.Assumptions,
		Defaults:    h.Defaults,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
