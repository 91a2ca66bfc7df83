// calc-engine is a one-shot CLI over the waterfall engine. It reads a scenario
// payload from the -data flag (JSON or hand-typed Hjson), runs the requested
// mode, and prints the result as JSON to stdout.
//
// Examples:
//
//	calc-engine -mode report -data '{sale_price: 200000000, carve_out_pct: 0.10, initial_investment: 2000000, holding_years: 2}'
//	calc-engine -mode thresholds -data '{carve_out_pct: 0.10, initial_investment: 10000000, holding_years: 5}'
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	apiwaterfall "investment_waterfall/pkg/api/waterfall"
	"investment_waterfall/pkg/core/utils"
	core "investment_waterfall/pkg/core/waterfall"
)

func main() {
	mode := flag.String("mode", "report", "Mode: report, sensitivity or thresholds")
	dataStr := flag.String("data", "", "Scenario payload (JSON or Hjson)")
	flag.Parse()

	if *dataStr == "" {
		fmt.Println("Error: No data provided")
		os.Exit(1)
	}

	switch *mode {
	case "report":
		runReport(*dataStr)
	case "sensitivity":
		runSensitivity(*dataStr)
	case "thresholds":
		runThresholds(*dataStr)
	default:
		fmt.Printf("Unknown mode: %s\n", *mode)
		os.Exit(1)
	}
}

func runReport(data string) {
	var inputs core.DealInputs
	if err := utils.ParseLenientJSON(data, &inputs); err != nil {
		fail(err)
	}

	deal, fund, err := core.CalculateScenario(inputs, core.DefaultAssumptions)
	if err != nil {
		fail(err)
	}
	printJSON(apiwaterfall.ReportResponse{Inputs: inputs, Deal: deal, Fund: fund})
}

func runSensitivity(data string) {
	var req apiwaterfall.SensitivityRequest
	if err := utils.ParseLenientJSON(data, &req); err != nil {
		fail(err)
	}

	defaults := apiwaterfall.StandardDefaults
	lo, hi, steps := defaults.SensitivityLow, defaults.SensitivityHigh, defaults.SensitivitySteps
	if req.PriceLow != nil {
		lo = *req.PriceLow
	}
	if req.PriceHigh != nil {
		hi = *req.PriceHigh
	}
	if req.Steps != nil {
		steps = *req.Steps
	}

	points, err := core.CollectSensitivity(req.DealInputs, core.DefaultAssumptions, lo, hi, steps)
	if err != nil {
		fail(err)
	}
	printJSON(points)
}

func runThresholds(data string) {
	var req apiwaterfall.ThresholdsRequest
	if err := utils.ParseLenientJSON(data, &req); err != nil {
		fail(err)
	}

	defaults := apiwaterfall.StandardDefaults
	targets := req.Targets
	if len(targets) == 0 {
		targets = defaults.TargetMOICs
	}
	maxPrice := defaults.MaxSalePrice
	if req.MaxSalePrice != nil {
		maxPrice = *req.MaxSalePrice
	}

	rows, err := core.ThresholdTable(req.DealInputs, core.DefaultAssumptions, targets, maxPrice)
	if err != nil {
		fail(err)
	}
	printJSON(rows)
}

func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fail(err)
	}
	fmt.Println(string(out))
}

func fail(err error) {
	fmt.Printf("Error: %v\n", err)
	os.Exit(1)
}
