package forecast

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// pairedTTestLess runs a matched-pairs t-test with the one-sided
// alternative that the mean of a is less than the mean of b, and returns
// the p-value.
//
// The hypothesis direction is deliberate: the caller passes the model's
// errors as a and the baseline's as b, so a small p-value means the
// model's error is systematically lower.
func pairedTTestLess(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: paired test needs equal-length arrays, got %d and %d",
			ErrInvalidInput, len(a), len(b))
	}
	n := len(a)
	if n < 2 {
		return 0, fmt.Errorf("%w: paired test needs at least 2 observations, got %d", ErrInvalidInput, n)
	}

	diff := make([]float64, n)
	for i := range a {
		diff[i] = a[i] - b[i]
	}

	mean, std := stat.MeanStdDev(diff, nil)
	if std == 0 {
		return 0, fmt.Errorf("%w: paired differences have zero variance, t statistic is undefined", ErrDegenerateStatistics)
	}

	t := mean / (std / math.Sqrt(float64(n)))
	if math.IsNaN(t) {
		return 0, fmt.Errorf("%w: t statistic is NaN", ErrDegenerateStatistics)
	}

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	return dist.CDF(t), nil
}
