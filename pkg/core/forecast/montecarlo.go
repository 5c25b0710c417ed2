package forecast

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/stat"
)

// stdParameter estimates the coefficient `b` of the std formula by Monte
// Carlo resampling of the fitted distributions.
//
// Each trial draws one gross dividend factor and one gross sales-growth
// factor per year of the horizon (with replacement, compounded by product)
// and a single P/Sales multiple, because the entry multiple is a one-time
// event at purchase. The trials decouple the three array lengths and only
// assume year-to-year independence, unlike a direct std over the raw
// arrays which would need equal-length, time-aligned data.
func (m *Model) stdParameter(cfg fitConfig) (float64, error) {
	seed := cfg.seed
	if !cfg.seeded {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// Number of per-trial draws for the compounded factors. The horizon is
	// integer-valued in practice; a fractional horizon still compounds over
	// whole resampled periods.
	draws := int(math.Ceil(m.years))

	inv := 1.0 / m.years
	combined := make([]float64, cfg.numSamples)
	for i := range combined {
		dividendFactor := 1.0
		salesFactor := 1.0
		for j := 0; j < draws; j++ {
			dividendFactor *= m.dividendYield[rng.Intn(len(m.dividendYield))]
			salesFactor *= m.salesGrowth[rng.Intn(len(m.salesGrowth))]
		}
		psalesSample := m.psales[rng.Intn(len(m.psales))]

		combined[i] = math.Pow(dividendFactor*salesFactor*psalesSample, inv)
	}

	b := stat.PopStdDev(combined, nil)
	if math.IsNaN(b) {
		return 0, fmt.Errorf("%w: monte carlo dispersion is NaN, input arrays contain NaN or negative values", ErrDegenerateStatistics)
	}
	return b, nil
}
