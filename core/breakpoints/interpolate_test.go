package breakpoints

import (
	"testing"

	"airaware/core/types"
	"airaware/internal/errors"
)

func TestInterpolateEPA(t *testing.T) {
	tests := []struct {
		name          string
		pollutant     types.Pollutant
		concentration float64
		want          int
	}{
		{"pm25 zero", types.PollutantPM25, 0, 0},
		{"pm25 top of good band", types.PollutantPM25, 12.0, 50},
		{"pm25 bottom of moderate band", types.PollutantPM25, 12.1, 51},
		{"pm25 inside moderate band", types.PollutantPM25, 35.0, 99},
		{"pm25 sensitive band", types.PollutantPM25, 40.0, 112},
		{"pm25 between rows truncates down", types.PollutantPM25, 12.05, 50},
		{"pm10 integer table truncation", types.PollutantPM10, 54.5, 50},
		{"pm10 band start", types.PollutantPM10, 155, 101},
		{"o3 band start", types.PollutantO3, 55, 51},
		{"no2 top of moderate band", types.PollutantNO2, 100, 100},
		{"so2 good band", types.PollutantSO2, 35, 50},
		{"co exact interior point", types.PollutantCO, 9.0, 96},
	}

	scheme := EPA()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scheme.Interpolate(tt.pollutant, tt.concentration)
			if err != nil {
				t.Fatalf("Interpolate(%s, %v) returned error: %v", tt.pollutant, tt.concentration, err)
			}
			if got != tt.want {
				t.Errorf("Interpolate(%s, %v) = %d, want %d", tt.pollutant, tt.concentration, got, tt.want)
			}
		})
	}
}

func TestInterpolateSaturation(t *testing.T) {
	tests := []struct {
		name          string
		pollutant     types.Pollutant
		concentration float64
	}{
		{"pm25 just above table", types.PollutantPM25, 500.5},
		{"pm25 far above table", types.PollutantPM25, 2000},
		{"o3 above its short table", types.PollutantO3, 250},
		{"co above table", types.PollutantCO, 50.5},
	}

	scheme := EPA()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scheme.Interpolate(tt.pollutant, tt.concentration)
			if err != nil {
				t.Fatalf("Interpolate returned error: %v", err)
			}
			if got != scheme.MaxIndex() {
				t.Errorf("Interpolate(%s, %v) = %d, want saturation at %d",
					tt.pollutant, tt.concentration, got, scheme.MaxIndex())
			}
		})
	}
}

func TestInterpolateErrors(t *testing.T) {
	scheme := EPA()

	t.Run("negative concentration", func(t *testing.T) {
		_, err := scheme.Interpolate(types.PollutantPM25, -0.1)
		if !errors.IsType(err, errors.TypeInput) {
			t.Errorf("expected INVALID_INPUT, got %v", err)
		}
	})

	t.Run("unknown pollutant", func(t *testing.T) {
		_, err := scheme.Interpolate(types.Pollutant("nh3"), 10)
		if !errors.IsType(err, errors.TypeNotSupported) {
			t.Errorf("expected NOT_SUPPORTED, got %v", err)
		}
	})
}

// Adjacent rows may share a boundary value; the first matching row in
// ascending order wins.
func TestInterpolateSharedBoundaryPrefersLowerRow(t *testing.T) {
	scheme, err := NewScheme("touching", 100, map[types.Pollutant][]Row{
		types.PollutantPM25: {
			{0, 10, 0, 50},
			{10, 20, 51, 100},
		},
	})
	if err != nil {
		t.Fatalf("NewScheme: %v", err)
	}

	got, err := scheme.Interpolate(types.PollutantPM25, 10)
	if err != nil {
		t.Fatalf("Interpolate: %v", err)
	}
	if got != 50 {
		t.Errorf("shared boundary resolved to %d, want 50 (lower row)", got)
	}
}

func TestEPABoundaryContiguity(t *testing.T) {
	// Consecutive EPA rows must hand off without gaps in the index
	// scale: the top of one band and the bottom of the next differ by
	// exactly one index point.
	scheme := EPA()
	for _, p := range scheme.Pollutants() {
		rows := scheme.Rows(p)
		for i := 1; i < len(rows); i++ {
			lowEnd, err := scheme.Interpolate(p, rows[i-1].ConcHigh)
			if err != nil {
				t.Fatalf("%s row %d high: %v", p, i-1, err)
			}
			highStart, err := scheme.Interpolate(p, rows[i].ConcLow)
			if err != nil {
				t.Fatalf("%s row %d low: %v", p, i, err)
			}
			if highStart-lowEnd != 1 {
				t.Errorf("%s rows %d/%d: index handoff %d -> %d, want adjacent",
					p, i-1, i, lowEnd, highStart)
			}
		}
	}
}
