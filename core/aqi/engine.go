package aqi

import (
	"airaware/core/breakpoints"
	"airaware/core/types"
	"airaware/internal/errors"
)

// Options configures an Engine.
type Options struct {
	// Scheme is the breakpoint scheme to interpolate against; nil
	// selects the built-in EPA scheme.
	Scheme *breakpoints.Scheme

	// DefaultIndex is the overall index reported when no reading
	// produced a usable value.
	DefaultIndex int

	// Strict fails the computation on unknown pollutants and empty
	// input instead of skipping and defaulting.
	Strict bool

	// Location is an optional place name for alert messages.
	Location string
}

// DefaultOptions returns the standard engine configuration: EPA
// scheme, permissive aggregation, default index 50.
func DefaultOptions() Options {
	return Options{
		Scheme:       breakpoints.EPA(),
		DefaultIndex: 50,
	}
}

// Engine computes AQI results from pollutant readings. Engines are
// stateless beyond their options and safe for concurrent use.
type Engine struct {
	opts Options
}

// New creates an engine. A nil scheme in the options falls back to the
// built-in EPA scheme.
func New(opts Options) *Engine {
	if opts.Scheme == nil {
		opts.Scheme = breakpoints.EPA()
	}
	return &Engine{opts: opts}
}

// Compute interpolates every reading, aggregates to the overall index
// (the maximum across pollutants) and classifies it.
//
// Aggregation is permissive by default: readings for species the
// scheme has no table for are skipped and recorded in the result, and
// an input with no usable readings reports the configured default
// index. In strict mode both conditions fail instead. A negative
// concentration always fails; corrupt values never flow into the
// aggregate.
func (e *Engine) Compute(readings []types.PollutantReading) (*types.AqiResult, error) {
	perPollutant := make(map[types.Pollutant]int)
	var skipped []string

	best := -1
	var dominant types.Pollutant

	for _, r := range readings {
		index, err := e.opts.Scheme.Interpolate(r.Pollutant, r.Concentration)
		if err != nil {
			if errors.IsType(err, errors.TypeNotSupported) {
				if e.opts.Strict {
					return nil, errors.Wrapf(errors.TypeInput, err, "unknown pollutant %s", r.Pollutant)
				}
				skipped = append(skipped, r.Pollutant.String())
				continue
			}
			return nil, err
		}

		// Repeated readings for one species keep the worst case.
		if existing, ok := perPollutant[r.Pollutant]; !ok || index > existing {
			perPollutant[r.Pollutant] = index
		}
		if index > best {
			best = index
			dominant = r.Pollutant
		}
	}

	result := &types.AqiResult{
		PerPollutant: perPollutant,
		Skipped:      skipped,
	}

	if best < 0 {
		if e.opts.Strict {
			return nil, errors.InsufficientData("no usable pollutant readings")
		}
		result.OverallIndex = e.opts.DefaultIndex
		result.Defaulted = true
	} else {
		result.OverallIndex = best
		result.Dominant = dominant
	}

	result.Category = Classify(result.OverallIndex)
	result.Alerts = GenerateAlerts(result.OverallIndex, e.opts.Location)
	return result, nil
}
