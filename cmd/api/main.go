package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	apiconfig "investment_waterfall/pkg/api/config"
	apiwaterfall "investment_waterfall/pkg/api/waterfall"
)

type serverConfig struct {
	ListenAddr string                `yaml:"listen_addr"`
	Defaults   apiwaterfall.Defaults `yaml:"defaults"`
}

func main() {
	// Load environment variables
	godotenv.Load()

	// Seed with built-in defaults, then layer the yaml config on top.
	cfg := serverConfig{
		ListenAddr: ":8080",
		Defaults:   apiwaterfall.StandardDefaults,
	}
	if data, err := os.ReadFile("config/engine.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			fmt.Printf("[WARNING] Failed to parse config/engine.yaml: %v\n", err)
			fmt.Println("  Falling back to built-in defaults")
		} else {
			fmt.Println("[CONFIG] Loaded config/engine.yaml")
		}
	} else {
		fmt.Println("[CONFIG] config/engine.yaml not found, using built-in defaults")
	}
	if addr := os.Getenv("WATERFALL_LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}

	// Waterfall endpoints
	waterfallHandler := apiwaterfall.NewHandler(cfg.Defaults)
	http.HandleFunc("/api/waterfall/report", waterfallHandler.HandleReport)
	http.HandleFunc("/api/waterfall/sensitivity", waterfallHandler.HandleSensitivity)
	http.HandleFunc("/api/waterfall/thresholds", waterfallHandler.HandleThresholds)

	// Config endpoint
	configHandler := apiconfig.NewHandler(cfg.Defaults)
	http.HandleFunc("/api/config", configHandler.HandleConfig)

	fmt.Printf("API server starting on %s...\n", cfg.ListenAddr)
	fmt.Println("  - POST /api/waterfall/report       (deal + fund breakdown)")
	fmt.Println("  - POST /api/waterfall/sensitivity  (exit-price sweep)")
	fmt.Println("  - POST /api/waterfall/thresholds   (required price per target MOIC)")
	fmt.Println("  - GET  /api/config                 (fixed assumptions + defaults)")

	if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
