// Package forecast fits a degree-2 polynomial trend model to an
// ordered historical index series and projects it forward.
package forecast

import (
	"math"
	"time"

	"airaware/core/types"
)

// Granularity is the spacing of a series' timestamps.
type Granularity string

const (
	// GranularityAuto detects the spacing from the series itself
	GranularityAuto Granularity = "auto"

	// GranularityHourly spaces points one hour apart
	GranularityHourly Granularity = "hourly"

	// GranularityDaily spaces points one day apart
	GranularityDaily Granularity = "daily"
)

// String returns the string representation of the granularity
func (g Granularity) String() string {
	return string(g)
}

// IsValid checks if the granularity is a known value
func (g Granularity) IsValid() bool {
	switch g {
	case GranularityAuto, GranularityHourly, GranularityDaily:
		return true
	default:
		return false
	}
}

// Step returns the duration of one offset unit. Auto has no fixed
// step; it resolves against a series first.
func (g Granularity) Step() time.Duration {
	if g == GranularityHourly {
		return time.Hour
	}
	return 24 * time.Hour
}

// DetectGranularity resolves the spacing of a series, for callers that
// need the concrete granularity an auto fit would settle on.
func DetectGranularity(history []types.HistoricalPoint) Granularity {
	return detectGranularity(history)
}

// detectGranularity inspects the smallest positive gap between
// consecutive timestamps: anything under a day reads as hourly data,
// otherwise daily. Series too short to have a gap default to daily.
func detectGranularity(history []types.HistoricalPoint) Granularity {
	smallest := time.Duration(math.MaxInt64)
	for i := 1; i < len(history); i++ {
		gap := history[i].Timestamp.Sub(history[i-1].Timestamp)
		if gap > 0 && gap < smallest {
			smallest = gap
		}
	}
	if smallest < 24*time.Hour {
		return GranularityHourly
	}
	return GranularityDaily
}

// encoder maps timestamps onto integer step offsets from the series
// epoch, and back. One encoder serves both the fit and the predict
// phase, so the feature the model was trained on is exactly the
// feature it predicts on.
type encoder struct {
	epoch time.Time
	step  time.Duration
}

func newEncoder(epoch time.Time, g Granularity) encoder {
	return encoder{epoch: epoch, step: g.Step()}
}

// offset returns the whole number of steps between the epoch and t.
func (e encoder) offset(t time.Time) float64 {
	return math.Round(float64(t.Sub(e.epoch)) / float64(e.step))
}

// timestamp decodes an integer offset back to a point in time.
func (e encoder) timestamp(offset int64) time.Time {
	return e.epoch.Add(time.Duration(offset) * e.step)
}
