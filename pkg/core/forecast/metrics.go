package forecast

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrorComparison holds an error metric for the model and for the naive
// baseline (the historical mean of the observed returns), together with
// the p-value of the paired one-sided test that the model's per-observation
// error is smaller than the baseline's. A p-value near zero is strong
// evidence the model beats the baseline; near one, that it loses to it.
type ErrorComparison struct {
	Forecast float64 `json:"forecast"`
	Baseline float64 `json:"baseline"`
	PValue   float64 `json:"p_value"`
}

// MAE computes the mean absolute error of the model's mean forecast and of
// the baseline against the observed annualized returns, plus the p-value
// of the paired test on the two per-observation error arrays.
//
// psalesT holds the P/Sales multiples at the time of purchase and annRets
// the realized annualized returns over the model's horizon; the two arrays
// are matched by observation and must have equal length.
func (m *Model) MAE(psalesT, annRets []float64) (ErrorComparison, error) {
	errForecast, errBaseline, err := m.pairedErrors(psalesT, annRets, false)
	if err != nil {
		return ErrorComparison{}, err
	}
	return compareErrors(errForecast, errBaseline)
}

// MSE is MAE with squared instead of absolute per-observation errors.
func (m *Model) MSE(psalesT, annRets []float64) (ErrorComparison, error) {
	errForecast, errBaseline, err := m.pairedErrors(psalesT, annRets, true)
	if err != nil {
		return ErrorComparison{}, err
	}
	return compareErrors(errForecast, errBaseline)
}

// RSquared computes the coefficient of determination of the mean forecast
// against the observed annualized returns.
//
// A value of 1 means a perfect fit. Because the forecast is non-linear the
// value can be negative when the model fits worse than the baseline mean
// on high-variance data; negative values are returned as-is. A constant
// annRets array makes the statistic undefined and yields
// ErrDegenerateStatistics.
func (m *Model) RSquared(psalesT, annRets []float64) (float64, error) {
	errForecast, errBaseline, err := m.pairedErrors(psalesT, annRets, true)
	if err != nil {
		return 0, err
	}

	// The degenerate baseline must be detected structurally: for constant
	// observed returns the mean carries a rounding residue, so the
	// accumulated total sum of squares is a tiny non-zero value rather
	// than exact zero.
	if floats.Min(annRets) == floats.Max(annRets) {
		return 0, fmt.Errorf("%w: observed returns have zero variance, R^2 is undefined", ErrDegenerateStatistics)
	}

	sse := floats.Sum(errForecast)
	sst := floats.Sum(errBaseline)

	return 1.0 - sse/sst, nil
}

// pairedErrors returns the per-observation errors of the mean forecast and
// of the baseline, matched by observation. squared selects squared errors,
// otherwise absolute errors are returned.
func (m *Model) pairedErrors(psalesT, annRets []float64, squared bool) (errForecast, errBaseline []float64, err error) {
	if len(psalesT) != len(annRets) {
		return nil, nil, fmt.Errorf("%w: psales_t has %d observations but ann_rets has %d",
			ErrInvalidInput, len(psalesT), len(annRets))
	}
	if len(psalesT) == 0 {
		return nil, nil, fmt.Errorf("%w: evaluation arrays are empty", ErrInvalidInput)
	}

	meanForecast, _ := m.Forecast(psalesT)
	baseline := stat.Mean(annRets, nil)

	errForecast = make([]float64, len(annRets))
	errBaseline = make([]float64, len(annRets))
	for i, ret := range annRets {
		df := ret - meanForecast[i]
		db := ret - baseline
		if squared {
			errForecast[i] = df * df
			errBaseline[i] = db * db
		} else {
			errForecast[i] = math.Abs(df)
			errBaseline[i] = math.Abs(db)
		}
	}
	return errForecast, errBaseline, nil
}

func compareErrors(errForecast, errBaseline []float64) (ErrorComparison, error) {
	pValue, err := pairedTTestLess(errForecast, errBaseline)
	if err != nil {
		return ErrorComparison{}, err
	}
	return ErrorComparison{
		Forecast: stat.Mean(errForecast, nil),
		Baseline: stat.Mean(errBaseline, nil),
		PValue:   pValue,
	}, nil
}
