// Package breakpoints defines piecewise-linear pollutant index tables
// and the interpolation over them. A Scheme maps each pollutant to an
// ordered sequence of breakpoint rows; schemes are immutable once
// constructed and safe for concurrent use.
package breakpoints

import (
	"github.com/shopspring/decimal"

	"airaware/core/types"
	"airaware/internal/errors"
)

// Row is one breakpoint band: concentrations in [ConcLow, ConcHigh]
// map linearly onto indices in [IndexLow, IndexHigh].
type Row struct {
	ConcLow   float64 `json:"conc_low"`
	ConcHigh  float64 `json:"conc_high"`
	IndexLow  float64 `json:"index_low"`
	IndexHigh float64 `json:"index_high"`
}

// Scheme is an immutable set of per-pollutant breakpoint tables.
type Scheme struct {
	name     string
	maxIndex int
	rows     map[types.Pollutant][]Row

	// precision caches, per pollutant, the number of decimal places
	// the table is expressed in. Concentrations are truncated to this
	// precision before matching, which is what makes a table with
	// bounds like 12.0/12.1 contiguous in practice.
	precision map[types.Pollutant]int32
}

// NewScheme builds and validates a scheme. Row slices are copied; the
// caller keeps no handle into the scheme's state.
func NewScheme(name string, maxIndex int, rows map[types.Pollutant][]Row) (*Scheme, error) {
	if name == "" {
		return nil, errors.InvalidScheme("scheme name must not be empty")
	}
	if maxIndex <= 0 {
		return nil, errors.Newf(errors.TypeInvalidScheme, "scheme %s: max index must be positive, got %d", name, maxIndex)
	}
	if len(rows) == 0 {
		return nil, errors.Newf(errors.TypeInvalidScheme, "scheme %s: no pollutant tables", name)
	}

	s := &Scheme{
		name:      name,
		maxIndex:  maxIndex,
		rows:      make(map[types.Pollutant][]Row, len(rows)),
		precision: make(map[types.Pollutant]int32, len(rows)),
	}
	for pollutant, table := range rows {
		copied := make([]Row, len(table))
		copy(copied, table)
		s.rows[pollutant] = copied
		s.precision[pollutant] = tablePrecision(copied)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Name returns the scheme name.
func (s *Scheme) Name() string {
	return s.name
}

// MaxIndex returns the saturation index for concentrations above the
// last row of a table.
func (s *Scheme) MaxIndex() int {
	return s.maxIndex
}

// Pollutants returns the species this scheme has tables for, in the
// canonical pollutant order.
func (s *Scheme) Pollutants() []types.Pollutant {
	out := make([]types.Pollutant, 0, len(s.rows))
	for _, p := range types.AllPollutants() {
		if _, ok := s.rows[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Rows returns a copy of the pollutant's breakpoint table, or nil when
// the scheme has no table for it.
func (s *Scheme) Rows(p types.Pollutant) []Row {
	table, ok := s.rows[p]
	if !ok {
		return nil
	}
	out := make([]Row, len(table))
	copy(out, table)
	return out
}

// Supports reports whether the scheme has a table for the pollutant.
func (s *Scheme) Supports(p types.Pollutant) bool {
	_, ok := s.rows[p]
	return ok
}

// validate checks every table for the structural invariants: rows are
// non-empty, start at zero, are ordered ascending, never overlap, and
// leave no hole wider than one step at the table's precision. Index
// bounds must ascend within each row and stay inside [0, maxIndex].
func (s *Scheme) validate() error {
	for pollutant, table := range s.rows {
		if len(table) == 0 {
			return errors.Newf(errors.TypeInvalidScheme, "scheme %s: %s has no rows", s.name, pollutant)
		}

		step := stepAt(s.precision[pollutant])
		for i, r := range table {
			if r.ConcLow < 0 || r.IndexLow < 0 {
				return s.rowError(pollutant, i, "negative bound")
			}
			if r.ConcLow > r.ConcHigh {
				return s.rowError(pollutant, i, "concentration bounds inverted")
			}
			if r.IndexLow > r.IndexHigh {
				return s.rowError(pollutant, i, "index bounds inverted")
			}
			if r.IndexHigh > float64(s.maxIndex) {
				return s.rowError(pollutant, i, "index bound above scheme maximum")
			}
			if i == 0 {
				if r.ConcLow != 0 {
					return s.rowError(pollutant, i, "first row must start at 0")
				}
				continue
			}

			prev := table[i-1]
			gap := decimal.NewFromFloat(r.ConcLow).Sub(decimal.NewFromFloat(prev.ConcHigh))
			if gap.IsNegative() {
				return s.rowError(pollutant, i, "overlaps previous row")
			}
			if gap.GreaterThan(step) {
				return s.rowError(pollutant, i, "leaves a gap after previous row")
			}
		}
	}
	return nil
}

func (s *Scheme) rowError(p types.Pollutant, row int, msg string) error {
	return errors.Newf(errors.TypeInvalidScheme, "scheme %s: %s row %d: %s", s.name, p, row, msg)
}

// tablePrecision returns the most decimal places used by any
// concentration bound in the table.
func tablePrecision(table []Row) int32 {
	var prec int32
	for _, r := range table {
		for _, bound := range []float64{r.ConcLow, r.ConcHigh} {
			if exp := decimal.NewFromFloat(bound).Exponent(); -exp > prec {
				prec = -exp
			}
		}
	}
	return prec
}

// stepAt returns the smallest representable increment at a precision,
// e.g. 0.1 at precision 1.
func stepAt(precision int32) decimal.Decimal {
	return decimal.New(1, -precision)
}
