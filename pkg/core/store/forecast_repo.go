package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"longrun_forecast/pkg/core/forecast"
)

// RunRecord is the persisted summary of one fitted model run: the inputs
// that identify it, the fitted coefficients and, when an evaluation was
// requested, the goodness-of-fit metrics.
type RunRecord struct {
	ID         string    `json:"id"`
	Ticker     string    `json:"ticker"`
	Years      float64   `json:"years"`
	NumSamples int       `json:"num_samples"`
	A          float64   `json:"a"`
	B          float64   `json:"b"`
	Metrics    *Metrics  `json:"metrics,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Metrics holds the evaluation statistics of a run.
type Metrics struct {
	MAE      forecast.ErrorComparison `json:"mae"`
	MSE      forecast.ErrorComparison `json:"mse"`
	RSquared float64                  `json:"r_squared"`
}

// ForecastRepo handles the storage of forecast-run summaries.
type ForecastRepo struct{}

// NewForecastRepo creates a new repository instance.
func NewForecastRepo() *ForecastRepo {
	return &ForecastRepo{}
}

// Save persists a run summary. It uses an upsert strategy based on the
// run ID.
//
// Schema assumption:
//
//	CREATE TABLE IF NOT EXISTS forecast_runs (
//	  id UUID PRIMARY KEY,
//	  ticker TEXT,
//	  years DOUBLE PRECISION,
//	  run_json JSONB,
//	  created_at TIMESTAMPTZ
//	);
func (r *ForecastRepo) Save(ctx context.Context, run *RunRecord) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	query := `
		INSERT INTO forecast_runs (id, ticker, years, run_json, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET
			ticker = EXCLUDED.ticker,
			years = EXCLUDED.years,
			run_json = EXCLUDED.run_json,
			created_at = EXCLUDED.created_at;
	`

	_, err = pool.Exec(ctx, query, run.ID, run.Ticker, run.Years, jsonData, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	return nil
}

// Load retrieves a run summary by its ID.
func (r *ForecastRepo) Load(ctx context.Context, id string) (*RunRecord, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT run_json FROM forecast_runs WHERE id = $1`

	var jsonData []byte
	err := pool.QueryRow(ctx, query, id).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no run found for id %s", id)
		}
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	var run RunRecord
	if err := json.Unmarshal(jsonData, &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run: %w", err)
	}

	return &run, nil
}

// ListByTicker retrieves all run summaries for a ticker, newest first.
func (r *ForecastRepo) ListByTicker(ctx context.Context, ticker string) ([]*RunRecord, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT run_json FROM forecast_runs WHERE ticker = $1 ORDER BY created_at DESC`

	rows, err := pool.Query(ctx, query, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*RunRecord
	for rows.Next() {
		var jsonData []byte
		if err := rows.Scan(&jsonData); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		var run RunRecord
		if err := json.Unmarshal(jsonData, &run); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run: %w", err)
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}
