package forecast

import (
	"testing"
	"time"

	"airaware/core/types"
)

func TestDetectGranularity(t *testing.T) {
	at := func(d time.Duration) types.HistoricalPoint {
		return types.HistoricalPoint{Timestamp: base.Add(d), Index: 1}
	}

	tests := []struct {
		name    string
		history []types.HistoricalPoint
		want    Granularity
	}{
		{"hour gaps", []types.HistoricalPoint{at(0), at(time.Hour), at(2 * time.Hour)}, GranularityHourly},
		{"day gaps", []types.HistoricalPoint{at(0), at(24 * time.Hour), at(48 * time.Hour)}, GranularityDaily},
		{"mixed gaps use the smallest", []types.HistoricalPoint{at(0), at(time.Hour), at(25 * time.Hour)}, GranularityHourly},
		{"uneven day gaps", []types.HistoricalPoint{at(0), at(36 * time.Hour), at(96 * time.Hour)}, GranularityDaily},
		{"single point", []types.HistoricalPoint{at(0)}, GranularityDaily},
		{"duplicate timestamps only", []types.HistoricalPoint{at(0), at(0)}, GranularityDaily},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectGranularity(tt.history); got != tt.want {
				t.Errorf("detectGranularity = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEncoderRoundTrip(t *testing.T) {
	enc := newEncoder(base, GranularityHourly)

	for n := int64(0); n < 48; n++ {
		ts := enc.timestamp(n)
		if got := enc.offset(ts); got != float64(n) {
			t.Fatalf("offset(timestamp(%d)) = %v, want %d", n, got, n)
		}
	}

	// Offsets round to the nearest step, so slightly unaligned
	// observations still land on the grid.
	if got := enc.offset(base.Add(89 * time.Minute)); got != 1 {
		t.Errorf("offset(+89m) = %v, want 1", got)
	}
	if got := enc.offset(base.Add(151 * time.Minute)); got != 3 {
		t.Errorf("offset(+151m) = %v, want 3", got)
	}
}

func TestEncoderPreservesOrdering(t *testing.T) {
	enc := newEncoder(base, GranularityDaily)

	prev := -1.0
	for day := 0; day < 30; day++ {
		got := enc.offset(base.AddDate(0, 0, day))
		if got <= prev {
			t.Fatalf("offset for day %d = %v, not increasing past %v", day, got, prev)
		}
		prev = got
	}
}

func TestGranularityValues(t *testing.T) {
	if !GranularityHourly.IsValid() || !GranularityDaily.IsValid() || !GranularityAuto.IsValid() {
		t.Error("standard granularities should be valid")
	}
	if Granularity("weekly").IsValid() {
		t.Error("unknown granularity should be invalid")
	}
	if GranularityHourly.Step() != time.Hour {
		t.Errorf("hourly step = %v", GranularityHourly.Step())
	}
	if GranularityDaily.Step() != 24*time.Hour {
		t.Errorf("daily step = %v", GranularityDaily.Step())
	}
}
