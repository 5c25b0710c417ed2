package returns

import (
	"errors"
	"math"
	"testing"

	"longrun_forecast/pkg/core/forecast"
)

func TestOnePeriod(t *testing.T) {
	prices := []float64{100, 105, 94.5}

	past := OnePeriod(prices, false)
	if !math.IsNaN(past[0]) {
		t.Errorf("Expected NaN for the first past return, got %v", past[0])
	}
	if math.Abs(past[1]-1.05) > 1e-12 || math.Abs(past[2]-0.90) > 1e-12 {
		t.Errorf("Expected gross returns [_, 1.05, 0.90], got %v", past)
	}

	future := OnePeriod(prices, true)
	if math.Abs(future[0]-1.05) > 1e-12 || math.Abs(future[1]-0.90) > 1e-12 {
		t.Errorf("Expected gross returns [1.05, 0.90, _], got %v", future)
	}
	if !math.IsNaN(future[2]) {
		t.Errorf("Expected NaN for the last future return, got %v", future[2])
	}
}

func TestAnnualizedGeometricSeries(t *testing.T) {
	// A series growing by a constant factor g per period has a constant
	// annualized return of g - 1 at every start index.
	g := 1.07
	series := make([]float64, 12)
	series[0] = 100
	for i := 1; i < len(series); i++ {
		series[i] = series[i-1] * g
	}

	ann, err := Annualized(series, 1, 3)
	if err != nil {
		t.Fatalf("Annualized failed: %v", err)
	}
	if len(ann) != len(series) {
		t.Fatalf("Expected output length %d, got %d", len(series), len(ann))
	}

	for i := 0; i < len(series)-3; i++ {
		if math.Abs(ann[i]-(g-1)) > 1e-12 {
			t.Errorf("Expected annualized return %v at index %d, got %v", g-1, i, ann[i])
		}
	}
	// The last 3 indexes have no realized 3-year return.
	for i := len(series) - 3; i < len(series); i++ {
		if !math.IsNaN(ann[i]) {
			t.Errorf("Expected NaN tail at index %d, got %v", i, ann[i])
		}
	}
}

func TestAnnualizedInvalidInput(t *testing.T) {
	series := []float64{100, 110}

	if _, err := Annualized(series, 1, 0); !errors.Is(err, forecast.ErrInvalidInput) {
		t.Errorf("zero years: expected ErrInvalidInput, got %v", err)
	}
	if _, err := Annualized(series, 0, 3); !errors.Is(err, forecast.ErrInvalidInput) {
		t.Errorf("zero periods per year: expected ErrInvalidInput, got %v", err)
	}
}

func TestPreparePairsDropsNaN(t *testing.T) {
	g := 1.05
	totalReturn := make([]float64, 10)
	totalReturn[0] = 100
	for i := 1; i < len(totalReturn); i++ {
		totalReturn[i] = totalReturn[i-1] * g
	}

	psales := []float64{2.0, math.NaN(), 2.2, 2.3, 2.4, 2.5, 2.6, 2.7, 2.8, 2.9}

	psalesT, annRets, err := PreparePairs(psales, totalReturn, 1, 2)
	if err != nil {
		t.Fatalf("PreparePairs failed: %v", err)
	}

	// Indexes 0..7 have realized 2-year returns; index 1 is dropped for
	// its NaN multiple, leaving 7 matched observations.
	if len(psalesT) != 7 || len(annRets) != 7 {
		t.Fatalf("Expected 7 matched pairs, got %d and %d", len(psalesT), len(annRets))
	}
	for i, p := range psalesT {
		if math.IsNaN(p) || math.IsNaN(annRets[i]) {
			t.Errorf("NaN survived at pair %d: (%v, %v)", i, p, annRets[i])
		}
	}
	for _, r := range annRets {
		if math.Abs(r-(g-1)) > 1e-12 {
			t.Errorf("Expected annualized return %v, got %v", g-1, r)
		}
	}
}

func TestPreparePairsMismatchedLengths(t *testing.T) {
	_, _, err := PreparePairs([]float64{2.0}, []float64{100, 110}, 1, 1)
	if !errors.Is(err, forecast.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}
