package forecast

import (
	"math"

	"airaware/internal/errors"
)

// degree of the trend polynomial; three coefficients c0 + c1·x + c2·x².
const coefficients = 3

// fitPolynomial fits y ≈ c0 + c1·x + c2·x² by least squares. It builds
// the 3×3 normal equations from the power sums of x and solves them
// with Gaussian elimination under partial pivoting. Series whose
// offsets do not span three distinct values produce a singular system
// and an error; the caller maps that to its forecast-unavailable path.
func fitPolynomial(xs, ys []float64) ([coefficients]float64, error) {
	var out [coefficients]float64
	if len(xs) != len(ys) || len(xs) < coefficients {
		return out, errors.Newf(errors.TypeInternal, "polynomial fit needs %d paired samples, got %d/%d",
			coefficients, len(xs), len(ys))
	}

	// Power sums S_k = Σ x^k for k in 0..4 and moment sums
	// T_k = Σ x^k·y for k in 0..2.
	var s [2*coefficients - 1]float64
	var t [coefficients]float64
	for i, x := range xs {
		pow := 1.0
		for k := range s {
			s[k] += pow
			if k < coefficients {
				t[k] += pow * ys[i]
			}
			pow *= x
		}
	}

	var m [coefficients][coefficients + 1]float64
	for r := 0; r < coefficients; r++ {
		for c := 0; c < coefficients; c++ {
			m[r][c] = s[r+c]
		}
		m[r][coefficients] = t[r]
	}

	if err := solve(&m); err != nil {
		return out, err
	}
	for i := range out {
		out[i] = m[i][coefficients]
	}
	return out, nil
}

// solve reduces the augmented matrix in place. The pivot tolerance is
// relative to the largest entry so that long offset ranges, whose
// power sums grow quickly, do not get misread as singular.
func solve(m *[coefficients][coefficients + 1]float64) error {
	scale := 0.0
	for r := 0; r < coefficients; r++ {
		for c := 0; c < coefficients; c++ {
			if abs := math.Abs(m[r][c]); abs > scale {
				scale = abs
			}
		}
	}
	tolerance := 1e-9 * scale

	for col := 0; col < coefficients; col++ {
		pivot := col
		for r := col + 1; r < coefficients; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(m[pivot][col]) <= tolerance {
			return errors.New(errors.TypeForecastUnavailable, "normal equations are singular")
		}
		m[col], m[pivot] = m[pivot], m[col]

		for r := 0; r < coefficients; r++ {
			if r == col {
				continue
			}
			factor := m[r][col] / m[col][col]
			for c := col; c <= coefficients; c++ {
				m[r][c] -= factor * m[col][c]
			}
		}
	}

	for r := 0; r < coefficients; r++ {
		m[r][coefficients] /= m[r][r]
	}
	return nil
}

// evaluate computes the polynomial at x.
func evaluate(c [coefficients]float64, x float64) float64 {
	return c[0] + c[1]*x + c[2]*x*x
}

// rSquared is the coefficient of determination of the fit over the
// training samples. A series with zero variance reports 0.
func rSquared(c [coefficients]float64, xs, ys []float64) float64 {
	var mean float64
	for _, y := range ys {
		mean += y
	}
	mean /= float64(len(ys))

	var ssRes, ssTot float64
	for i, y := range ys {
		r := y - evaluate(c, xs[i])
		ssRes += r * r
		d := y - mean
		ssTot += d * d
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}
