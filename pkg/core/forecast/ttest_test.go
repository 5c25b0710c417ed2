package forecast

import (
	"errors"
	"math"
	"testing"
)

func TestPairedTTestSymmetricDifferences(t *testing.T) {
	// a - b has mean exactly zero, so t = 0 and the one-sided p-value is
	// exactly one half.
	a := []float64{1.1, 0.9, 1.2, 0.8}
	b := []float64{1.0, 1.0, 1.0, 1.0}

	p, err := pairedTTestLess(a, b)
	if err != nil {
		t.Fatalf("pairedTTestLess failed: %v", err)
	}
	if math.Abs(p-0.5) > 1e-12 {
		t.Errorf("Expected p == 0.5 for zero mean difference, got %v", p)
	}
}

func TestPairedTTestDirection(t *testing.T) {
	base := []float64{1.0, 1.1, 0.9, 1.05, 0.95, 1.0, 1.02, 0.98}

	// a consistently below b: strong evidence for the "less" alternative.
	lower := make([]float64, len(base))
	for i, v := range base {
		lower[i] = v * 0.5
	}
	p, err := pairedTTestLess(lower, base)
	if err != nil {
		t.Fatalf("pairedTTestLess failed: %v", err)
	}
	if p >= 0.01 {
		t.Errorf("Expected p near 0 when a is consistently lower, got %v", p)
	}

	// a consistently above b: the one-sided p-value goes to 1.
	p, err = pairedTTestLess(base, lower)
	if err != nil {
		t.Fatalf("pairedTTestLess failed: %v", err)
	}
	if p <= 0.99 {
		t.Errorf("Expected p near 1 when a is consistently higher, got %v", p)
	}
}

func TestPairedTTestErrors(t *testing.T) {
	if _, err := pairedTTestLess([]float64{1, 2}, []float64{1}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("mismatched lengths: expected ErrInvalidInput, got %v", err)
	}
	if _, err := pairedTTestLess([]float64{1}, []float64{2}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("single observation: expected ErrInvalidInput, got %v", err)
	}

	// Constant differences have zero variance and an undefined statistic.
	a := []float64{1.0, 2.0, 3.0}
	b := []float64{1.5, 2.5, 3.5}
	if _, err := pairedTTestLess(a, b); !errors.Is(err, ErrDegenerateStatistics) {
		t.Errorf("zero-variance differences: expected ErrDegenerateStatistics, got %v", err)
	}
}
