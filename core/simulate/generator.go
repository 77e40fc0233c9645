// Package simulate generates deterministic synthetic pollutant data
// for demos, piping into the CLI, and tests. Generated histories are
// computed by the real engine over generated readings, so they are
// always consistent with the active breakpoint tables.
package simulate

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"airaware/core/aqi"
	"airaware/core/types"
	"airaware/internal/errors"
)

// Profile selects the pollution baseline of generated data.
type Profile string

const (
	// ProfileClean stays in the Good band
	ProfileClean Profile = "clean"

	// ProfileUrban hovers around Moderate
	ProfileUrban Profile = "urban"

	// ProfileIndustrial reaches Unhealthy for Sensitive Groups and up
	ProfileIndustrial Profile = "industrial"
)

// String returns the string representation of the profile
func (p Profile) String() string {
	return string(p)
}

// IsValid checks if the profile is a known baseline
func (p Profile) IsValid() bool {
	switch p {
	case ProfileClean, ProfileUrban, ProfileIndustrial:
		return true
	default:
		return false
	}
}

// ParseProfile canonicalizes a profile name.
func ParseProfile(s string) (Profile, bool) {
	p := Profile(s)
	return p, p.IsValid()
}

// baselines returns the mean concentration per pollutant for the
// profile, in each pollutant's table unit.
func (p Profile) baselines() map[types.Pollutant]float64 {
	switch p {
	case ProfileClean:
		return map[types.Pollutant]float64{
			types.PollutantPM25: 6,
			types.PollutantPM10: 20,
			types.PollutantO3:   30,
			types.PollutantNO2:  15,
			types.PollutantSO2:  10,
			types.PollutantCO:   1.5,
		}
	case ProfileIndustrial:
		return map[types.Pollutant]float64{
			types.PollutantPM25: 60,
			types.PollutantPM10: 180,
			types.PollutantO3:   90,
			types.PollutantNO2:  120,
			types.PollutantSO2:  90,
			types.PollutantCO:   10,
		}
	default:
		return map[types.Pollutant]float64{
			types.PollutantPM25: 22,
			types.PollutantPM10: 80,
			types.PollutantO3:   60,
			types.PollutantNO2:  40,
			types.PollutantSO2:  30,
			types.PollutantCO:   4,
		}
	}
}

// jitter is the relative spread around a baseline.
const jitter = 0.3

// Options configures a Generator.
type Options struct {
	// Profile selects the pollution baseline; unknown profiles fall
	// back to urban.
	Profile Profile

	// Seed drives the generator. The same options reproduce the same
	// datasets.
	Seed int64

	// Now is the reference time generated data ends at; zero means
	// the current time.
	Now time.Time
}

// Dataset is a generated batch, tagged so downstream output can name
// its provenance. The ID is derived from the generating options, not
// random, keeping equal inputs byte-identical.
type Dataset struct {
	// ID identifies the dataset
	ID uuid.UUID `json:"id"`

	// Profile is the baseline the data was drawn from
	Profile Profile `json:"profile"`

	// Seed reproduces the dataset
	Seed int64 `json:"seed"`

	// GeneratedAt is the generator's reference time
	GeneratedAt time.Time `json:"generated_at"`

	// Readings holds generated current readings, if requested
	Readings []types.PollutantReading `json:"readings,omitempty"`

	// History holds a generated index series, if requested
	History []types.HistoricalPoint `json:"history,omitempty"`
}

// Generator produces synthetic datasets. A Generator is not safe for
// concurrent use; create one per goroutine.
type Generator struct {
	opts   Options
	rng    *rand.Rand
	engine *aqi.Engine
}

// New creates a generator.
func New(opts Options) *Generator {
	if !opts.Profile.IsValid() {
		opts.Profile = ProfileUrban
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}
	return &Generator{
		opts:   opts,
		rng:    rand.New(rand.NewSource(opts.Seed)),
		engine: aqi.New(aqi.DefaultOptions()),
	}
}

// GenerateReadings produces one reading per pollutant around the
// profile baseline.
func (g *Generator) GenerateReadings() *Dataset {
	d := g.newDataset("readings")
	d.Readings = g.readings()
	return d
}

// GenerateHistory produces n index points spaced step apart, ending at
// the generator's reference time truncated to the step.
func (g *Generator) GenerateHistory(n int, step time.Duration) (*Dataset, error) {
	if n <= 0 {
		return nil, errors.Inputf("history length must be positive, got %d", n)
	}
	if step <= 0 {
		return nil, errors.Inputf("history step must be positive, got %v", step)
	}

	end := g.opts.Now.Truncate(step)
	points := make([]types.HistoricalPoint, n)
	for i := 0; i < n; i++ {
		result, err := g.engine.Compute(g.readings())
		if err != nil {
			return nil, err
		}
		points[i] = types.HistoricalPoint{
			Timestamp: end.Add(-time.Duration(n-1-i) * step),
			Index:     float64(result.OverallIndex),
		}
	}

	d := g.newDataset(fmt.Sprintf("history:%d:%s", n, step))
	d.History = points
	return d, nil
}

// readings draws one value per pollutant in the canonical order, so a
// given seed always produces the same sequence.
func (g *Generator) readings() []types.PollutantReading {
	base := g.opts.Profile.baselines()
	out := make([]types.PollutantReading, 0, len(base))
	for _, p := range types.AllPollutants() {
		mean, ok := base[p]
		if !ok {
			continue
		}
		value := mean * (1 + jitter*(2*g.rng.Float64()-1))
		if value < 0 {
			value = 0
		}
		out = append(out, types.PollutantReading{
			Pollutant:     p,
			Concentration: math.Round(value*10) / 10,
			Unit:          p.Info().Unit,
		})
	}
	return out
}

func (g *Generator) newDataset(kind string) *Dataset {
	name := fmt.Sprintf("airaware:%s:%s:%d", kind, g.opts.Profile, g.opts.Seed)
	return &Dataset{
		ID:          uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)),
		Profile:     g.opts.Profile,
		Seed:        g.opts.Seed,
		GeneratedAt: g.opts.Now,
	}
}
