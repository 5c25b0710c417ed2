package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	apiforecast "longrun_forecast/pkg/api/forecast"
	"longrun_forecast/pkg/core/store"
)

// ServiceConfig is loaded from config/service.yaml.
type ServiceConfig struct {
	Addr       string `yaml:"addr"`
	NumSamples int    `yaml:"num_samples"`
}

func main() {
	// Load environment variables
	godotenv.Load()

	// Load service config
	cfg := ServiceConfig{Addr: ":8080"}
	configData, err := os.ReadFile("config/service.yaml")
	if err != nil {
		fmt.Printf("[CONFIG] config/service.yaml not found, using defaults: %v\n", err)
	} else if err := yaml.Unmarshal(configData, &cfg); err != nil {
		fmt.Printf("[CONFIG] Failed to parse config/service.yaml: %v\n", err)
		os.Exit(1)
	}

	// Persistence is optional: without DATABASE_URL the service still
	// serves forecasts, it just keeps no run history.
	var repo *store.ForecastRepo
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(context.Background()); err != nil {
			fmt.Printf("[STORE] Database init failed, continuing without persistence: %v\n", err)
		} else {
			repo = store.NewForecastRepo()
			defer store.Close()
			fmt.Println("[STORE] Run history enabled")
		}
	}

	// Forecast endpoints
	forecastHandler := apiforecast.NewHandler(repo, cfg.NumSamples)
	http.HandleFunc("/api/forecast", forecastHandler.HandleForecast)
	http.HandleFunc("/api/forecast/evaluate", forecastHandler.HandleEvaluate)
	http.HandleFunc("/api/forecast/runs", forecastHandler.HandleRuns)

	fmt.Printf("[API] Forecast service listening on %s\n", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, nil); err != nil {
		fmt.Printf("[API] Server stopped: %v\n", err)
		os.Exit(1)
	}
}
