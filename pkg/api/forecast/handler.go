// Package forecast exposes the forecasting model over HTTP. Requests carry
// the already-cleaned numeric arrays; responses carry the fitted
// coefficients, the forecast arrays and, for evaluation, the
// goodness-of-fit statistics.
package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	core "longrun_forecast/pkg/core/forecast"
	"longrun_forecast/pkg/core/store"
)

// Handler holds dependencies for the forecast endpoints.
type Handler struct {
	// Repo persists run summaries when non-nil. The endpoints work
	// without a database; persistence failures are logged, not fatal.
	Repo *store.ForecastRepo

	// DefaultNumSamples overrides the model default when positive.
	DefaultNumSamples int
}

// NewHandler creates a new forecast handler.
func NewHandler(repo *store.ForecastRepo, defaultNumSamples int) *Handler {
	return &Handler{
		Repo:              repo,
		DefaultNumSamples: defaultNumSamples,
	}
}

// FitRequest carries the fitting inputs plus the P/Sales grid to forecast.
type FitRequest struct {
	Ticker        string    `json:"ticker"`
	DividendYield []float64 `json:"dividend_yield"`
	SalesGrowth   []float64 `json:"sales_growth"`
	PSales        []float64 `json:"psales"`
	Years         float64   `json:"years"`
	PSalesT       []float64 `json:"psales_t"`
	NumSamples    int       `json:"num_samples,omitempty"`
	Seed          *int64    `json:"seed,omitempty"`
}

// EvaluateRequest additionally carries the realized annualized returns
// matched to psales_t.
type EvaluateRequest struct {
	FitRequest
	AnnRets []float64 `json:"ann_rets"`
}

// ForecastResponse carries the fitted coefficients and forecast arrays.
type ForecastResponse struct {
	RunID string    `json:"run_id"`
	A     float64   `json:"a"`
	B     float64   `json:"b"`
	Mean  []float64 `json:"mean"`
	Std   []float64 `json:"std"`
}

// EvaluateResponse adds the evaluation statistics.
type EvaluateResponse struct {
	ForecastResponse
	MAE      core.ErrorComparison `json:"mae"`
	MSE      core.ErrorComparison `json:"mse"`
	RSquared float64              `json:"r_squared"`
}

// HandleForecast fits a model and forecasts the supplied P/Sales grid.
func (h *Handler) HandleForecast(w http.ResponseWriter, r *http.Request) {
	if !beginPOST(w, r) {
		return
	}

	var req FitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	model, err := h.fit(&req)
	if err != nil {
		writeModelError(w, err)
		return
	}

	resp := h.buildForecastResponse(model, req.PSalesT)
	h.persist(r.Context(), &req, model, resp.RunID, nil)
	json.NewEncoder(w).Encode(resp)
}

// HandleEvaluate fits a model and evaluates it against realized returns.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	if !beginPOST(w, r) {
		return
	}

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	model, err := h.fit(&req.FitRequest)
	if err != nil {
		writeModelError(w, err)
		return
	}

	mae, err := model.MAE(req.PSalesT, req.AnnRets)
	if err != nil {
		writeModelError(w, err)
		return
	}
	mse, err := model.MSE(req.PSalesT, req.AnnRets)
	if err != nil {
		writeModelError(w, err)
		return
	}
	r2, err := model.RSquared(req.PSalesT, req.AnnRets)
	if err != nil {
		writeModelError(w, err)
		return
	}

	resp := EvaluateResponse{
		ForecastResponse: h.buildForecastResponse(model, req.PSalesT),
		MAE:              mae,
		MSE:              mse,
		RSquared:         r2,
	}
	h.persist(r.Context(), &req.FitRequest, model, resp.RunID, &store.Metrics{MAE: mae, MSE: mse, RSquared: r2})
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) fit(req *FitRequest) (*core.Model, error) {
	opts := []core.Option{core.WithNumSamples(h.effectiveNumSamples(req))}
	if req.Seed != nil {
		opts = append(opts, core.WithSeed(*req.Seed))
	}
	return core.Fit(req.DividendYield, req.SalesGrowth, req.PSales, req.Years, opts...)
}

// effectiveNumSamples resolves the trial count actually used for a fit:
// the request's override, then the service default, then the model
// default. The persisted run record uses the same resolution.
func (h *Handler) effectiveNumSamples(req *FitRequest) int {
	if req.NumSamples > 0 {
		return req.NumSamples
	}
	if h.DefaultNumSamples > 0 {
		return h.DefaultNumSamples
	}
	return core.DefaultNumSamples
}

func (h *Handler) buildForecastResponse(model *core.Model, psalesT []float64) ForecastResponse {
	mean, std := model.Forecast(psalesT)
	return ForecastResponse{
		RunID: uuid.NewString(),
		A:     model.A(),
		B:     model.B(),
		Mean:  mean,
		Std:   std,
	}
}

func (h *Handler) persist(ctx context.Context, req *FitRequest, model *core.Model, runID string, metrics *store.Metrics) {
	if h.Repo == nil {
		return
	}

	run := &store.RunRecord{
		ID:         runID,
		Ticker:     strings.ToUpper(req.Ticker),
		Years:      req.Years,
		NumSamples: h.effectiveNumSamples(req),
		A:          model.A(),
		B:          model.B(),
		Metrics:    metrics,
		CreatedAt:  time.Now(),
	}

	if err := h.Repo.Save(ctx, run); err != nil {
		fmt.Printf("[FORECAST] Failed to persist run for %s: %v\n", run.Ticker, err)
	}
}

// beginPOST applies the CORS headers and filters out non-POST requests.
func beginPOST(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return false
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// writeModelError maps the model's error taxonomy onto HTTP statuses:
// invalid input is the client's fault, degenerate statistics mean the data
// cannot support the requested computation.
func writeModelError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, core.ErrDegenerateStatistics):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
