// Package returns provides the numeric transforms that turn a total-return
// price series into the annualized-return observations consumed by the
// forecast model.
package returns

import (
	"fmt"
	"math"

	"longrun_forecast/pkg/core/forecast"
)

// OnePeriod computes gross one-period returns for a price series, so 1.05
// means a one-period gain of 5% and 0.98 a 2% loss. The output has the
// same length as the input with NaN where no return can be computed: the
// first element for past returns, the last for future returns.
func OnePeriod(prices []float64, future bool) []float64 {
	rets := make([]float64, len(prices))
	for i := range rets {
		rets[i] = math.NaN()
	}
	if future {
		for i := 0; i+1 < len(prices); i++ {
			rets[i] = prices[i+1] / prices[i]
		}
	} else {
		for i := 1; i < len(prices); i++ {
			rets[i] = prices[i] / prices[i-1]
		}
	}
	return rets
}

// Annualized computes, for every start index, the annualized return of
// holding from that index for the given number of years:
//
//	ann[t] = (x[t+h] / x[t]) ^ (1/years) - 1
//
// where h = years * periodsPerYear. totalReturn must be a total-return
// series (adjusted for splits and reinvested dividends). The output has
// the same length as the input; the unfillable tail is NaN.
func Annualized(totalReturn []float64, periodsPerYear int, years float64) ([]float64, error) {
	if years <= 0 {
		return nil, fmt.Errorf("%w: years must be positive, got %v", forecast.ErrInvalidInput, years)
	}
	if periodsPerYear <= 0 {
		return nil, fmt.Errorf("%w: periods per year must be positive, got %d", forecast.ErrInvalidInput, periodsPerYear)
	}

	horizon := int(years * float64(periodsPerYear))
	inv := 1.0 / years

	ann := make([]float64, len(totalReturn))
	for i := range ann {
		if i+horizon < len(totalReturn) {
			ann[i] = math.Pow(totalReturn[i+horizon]/totalReturn[i], inv) - 1.0
		} else {
			ann[i] = math.NaN()
		}
	}
	return ann, nil
}

// PreparePairs builds the matched (P/Sales at purchase, realized
// annualized return) observations used for model evaluation. psales and
// totalReturn are index-aligned series of equal length; observations where
// either value is NaN (including the tail with no realized return yet) are
// dropped.
func PreparePairs(psales, totalReturn []float64, periodsPerYear int, years float64) (psalesT, annRets []float64, err error) {
	if len(psales) != len(totalReturn) {
		return nil, nil, fmt.Errorf("%w: psales has %d rows but total return has %d",
			forecast.ErrInvalidInput, len(psales), len(totalReturn))
	}

	ann, err := Annualized(totalReturn, periodsPerYear, years)
	if err != nil {
		return nil, nil, err
	}

	for i := range psales {
		if math.IsNaN(psales[i]) || math.IsNaN(ann[i]) {
			continue
		}
		psalesT = append(psalesT, psales[i])
		annRets = append(annRets, ann[i])
	}
	return psalesT, annRets, nil
}
