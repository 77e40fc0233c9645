package breakpoints

import (
	"github.com/shopspring/decimal"

	"airaware/core/types"
	"airaware/internal/errors"
)

// Interpolate maps a concentration onto the pollutant's index scale.
// The concentration is truncated to the table's precision, matched to
// the first row whose band contains it, then interpolated linearly
// across that row and rounded to the nearest integer. Concentrations
// above the last row saturate to the scheme maximum.
//
// A negative concentration is an input error. A pollutant the scheme
// has no table for returns a NOT_SUPPORTED error; the engine layer
// decides whether that skips the reading or fails the computation.
func (s *Scheme) Interpolate(p types.Pollutant, concentration float64) (int, error) {
	if concentration < 0 {
		return 0, errors.Inputf("negative concentration %v for %s", concentration, p)
	}
	table, ok := s.rows[p]
	if !ok {
		return 0, errors.NotSupported("pollutant " + p.String())
	}

	c := decimal.NewFromFloat(concentration).Truncate(s.precision[p])

	for _, r := range table {
		lo := decimal.NewFromFloat(r.ConcLow)
		hi := decimal.NewFromFloat(r.ConcHigh)
		if c.GreaterThanOrEqual(lo) && c.LessThanOrEqual(hi) {
			return interpolateRow(r, c, lo, hi), nil
		}
	}

	// Beyond the last band the index saturates.
	last := table[len(table)-1]
	if c.GreaterThan(decimal.NewFromFloat(last.ConcHigh)) {
		return s.maxIndex, nil
	}
	return 0, errors.Internal("concentration fell between breakpoint rows", nil).
		WithContext("pollutant", p.String()).
		WithContext("concentration", concentration)
}

// interpolateRow computes
//
//	((IndexHigh-IndexLow) / (ConcHigh-ConcLow)) * (c-ConcLow) + IndexLow
//
// in decimal arithmetic, rounded half away from zero.
func interpolateRow(r Row, c, lo, hi decimal.Decimal) int {
	iLo := decimal.NewFromFloat(r.IndexLow)
	iHi := decimal.NewFromFloat(r.IndexHigh)

	span := hi.Sub(lo)
	if span.IsZero() {
		return int(iLo.Round(0).IntPart())
	}

	index := iHi.Sub(iLo).Mul(c.Sub(lo)).Div(span).Add(iLo)
	return int(index.Round(0).IntPart())
}
