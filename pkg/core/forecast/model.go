// Package forecast implements a statistical model for long-horizon stock
// returns. The model is fitted from empirical distributions of dividend
// yield, sales growth and the P/Sales valuation multiple, and predicts the
// mean and standard deviation of the annualized return for a given P/Sales
// at the time of purchase.
package forecast

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrInvalidInput flags non-positive horizons, empty input arrays and
	// mismatched evaluation arrays.
	ErrInvalidInput = errors.New("forecast: invalid input")

	// ErrDegenerateStatistics flags computations that are undefined for the
	// supplied data, e.g. a zero-variance baseline or a NaN dispersion.
	ErrDegenerateStatistics = errors.New("forecast: degenerate statistics")
)

// DefaultNumSamples is the number of Monte Carlo trials used to estimate
// the dispersion parameter when no override is given.
const DefaultNumSamples = 10000

// Model holds the fitted parameters for a single (stock, horizon) pair.
// It is immutable after Fit and safe for concurrent use.
type Model struct {
	// Gross factors, i.e. raw rates with 1.0 added.
	dividendYield []float64
	salesGrowth   []float64

	// P/Sales multiples, stored as given.
	psales []float64

	// Investment horizon in years.
	years float64

	// Fitted coefficients for the mean and std formulas.
	a float64
	b float64
}

// Option configures the fitting procedure.
type Option func(*fitConfig)

type fitConfig struct {
	numSamples int
	seed       int64
	seeded     bool
}

// WithNumSamples sets the number of Monte Carlo trials for the dispersion
// estimate. More trials give a more accurate estimate at higher cost.
func WithNumSamples(n int) Option {
	return func(c *fitConfig) { c.numSamples = n }
}

// WithSeed fixes the random source of the Monte Carlo sampler so that
// repeated fits on the same data produce identical coefficients.
func WithSeed(seed int64) Option {
	return func(c *fitConfig) { c.seeded, c.seed = true, seed }
}

// Fit estimates a model from historical per-period samples.
//
// dividendYield and salesGrowth are raw per-period rates (0.02 means 2%);
// they are shifted to gross factors internally. psales holds historically
// observed P/Sales multiples and is used as given. The three arrays need
// not have equal lengths. years is the investment horizon and must be
// positive.
func Fit(dividendYield, salesGrowth, psales []float64, years float64, opts ...Option) (*Model, error) {
	if years <= 0 {
		return nil, fmt.Errorf("%w: years must be positive, got %v", ErrInvalidInput, years)
	}
	if len(dividendYield) == 0 || len(salesGrowth) == 0 || len(psales) == 0 {
		return nil, fmt.Errorf("%w: dividend_yield, sales_growth and psales must be non-empty (%d, %d, %d)",
			ErrInvalidInput, len(dividendYield), len(salesGrowth), len(psales))
	}

	cfg := fitConfig{numSamples: DefaultNumSamples}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.numSamples <= 0 {
		return nil, fmt.Errorf("%w: num_samples must be positive, got %d", ErrInvalidInput, cfg.numSamples)
	}

	m := &Model{
		dividendYield: grossFactors(dividendYield),
		salesGrowth:   grossFactors(salesGrowth),
		psales:        append([]float64(nil), psales...),
		years:         years,
	}

	m.a = m.meanParameter()

	b, err := m.stdParameter(cfg)
	if err != nil {
		return nil, err
	}
	m.b = b

	return m, nil
}

// grossFactors converts raw rates to gross growth factors (rate + 1).
func grossFactors(rates []float64) []float64 {
	gross := make([]float64, len(rates))
	for i, r := range rates {
		gross[i] = r + 1.0
	}
	return gross
}

// A returns the fitted mean-model coefficient.
func (m *Model) A() float64 { return m.a }

// B returns the fitted dispersion coefficient.
func (m *Model) B() float64 { return m.b }

// Years returns the investment horizon the model was fitted for.
func (m *Model) Years() float64 { return m.years }

// meanParameter estimates the coefficient `a` of the mean formula as the
// product of the mean gross dividend factor, the mean gross sales-growth
// factor and the mean annualized P/Sales. This is the expectation of the
// compounded return multiple under the assumption that the three factors
// are independent and identically distributed across periods.
func (m *Model) meanParameter() float64 {
	inv := 1.0 / m.years

	psalesAnn := make([]float64, len(m.psales))
	for i, p := range m.psales {
		psalesAnn[i] = math.Pow(p, inv)
	}

	return stat.Mean(m.dividendYield, nil) *
		stat.Mean(m.salesGrowth, nil) *
		stat.Mean(psalesAnn, nil)
}

// Forecast predicts the mean and standard deviation of the annualized
// return for each P/Sales multiple at the time of purchase.
//
// Zero or negative multiples are not rejected: a negative multiple raised
// to a fractional power yields NaN and a zero multiple yields Inf, both of
// which propagate into the output unchanged. Callers are expected to
// pre-filter their inputs.
func (m *Model) Forecast(psalesT []float64) (mean, std []float64) {
	inv := 1.0 / m.years

	mean = make([]float64, len(psalesT))
	std = make([]float64, len(psalesT))
	for i, p := range psalesT {
		pAnn := math.Pow(p, inv)
		mean[i] = m.a/pAnn - 1.0
		std[i] = m.b / pAnn
	}
	return mean, std
}
