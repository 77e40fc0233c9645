package simulate

import (
	"math"
	"reflect"
	"testing"
	"time"

	"airaware/core/types"
	"airaware/internal/errors"
)

var testNow = time.Date(2026, 8, 10, 15, 30, 0, 0, time.UTC)

func TestGeneratorDeterminism(t *testing.T) {
	opts := Options{Profile: ProfileUrban, Seed: 42, Now: testNow}

	a := New(opts).GenerateReadings()
	b := New(opts).GenerateReadings()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same options produced different readings datasets:\n%+v\n%+v", a, b)
	}

	ha, err := New(opts).GenerateHistory(10, 24*time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hb, err := New(opts).GenerateHistory(10, 24*time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ha, hb) {
		t.Errorf("same options produced different history datasets")
	}

	c := New(Options{Profile: ProfileUrban, Seed: 43, Now: testNow}).GenerateReadings()
	if reflect.DeepEqual(a.Readings, c.Readings) {
		t.Errorf("different seeds produced identical readings")
	}
	if a.ID == c.ID {
		t.Errorf("different seeds produced identical dataset IDs")
	}
}

func TestGenerateReadings(t *testing.T) {
	d := New(Options{Profile: ProfileClean, Seed: 7, Now: testNow}).GenerateReadings()

	if d.Profile != ProfileClean {
		t.Errorf("expected profile clean, got %s", d.Profile)
	}
	if d.Seed != 7 {
		t.Errorf("expected seed 7, got %d", d.Seed)
	}
	if !d.GeneratedAt.Equal(testNow) {
		t.Errorf("expected reference time %v, got %v", testNow, d.GeneratedAt)
	}

	all := types.AllPollutants()
	if len(d.Readings) != len(all) {
		t.Fatalf("expected %d readings, got %d", len(all), len(d.Readings))
	}
	for i, r := range d.Readings {
		if r.Pollutant != all[i] {
			t.Errorf("reading %d: expected pollutant %s, got %s", i, all[i], r.Pollutant)
		}
		if r.Concentration < 0 {
			t.Errorf("reading %d: negative concentration %f", i, r.Concentration)
		}
		if rem := math.Abs(r.Concentration*10 - math.Round(r.Concentration*10)); rem > 1e-9 {
			t.Errorf("reading %d: concentration %f not rounded to one decimal", i, r.Concentration)
		}
		if want := r.Pollutant.Info().Unit; r.Unit != want {
			t.Errorf("reading %d: expected unit %s, got %s", i, want, r.Unit)
		}
	}
}

func TestProfileBands(t *testing.T) {
	tests := []struct {
		profile Profile
		minIdx  float64
		maxIdx  float64
	}{
		{ProfileClean, 0, 50},
		{ProfileUrban, 51, 149},
		{ProfileIndustrial, 101, 500},
	}

	for _, tt := range tests {
		t.Run(string(tt.profile), func(t *testing.T) {
			for seed := int64(0); seed < 20; seed++ {
				g := New(Options{Profile: tt.profile, Seed: seed, Now: testNow})
				d, err := g.GenerateHistory(5, 24*time.Hour)
				if err != nil {
					t.Fatalf("seed %d: unexpected error: %v", seed, err)
				}
				for _, p := range d.History {
					if p.Index < tt.minIdx || p.Index > tt.maxIdx {
						t.Errorf("seed %d: index %.0f outside [%v, %v]",
							seed, p.Index, tt.minIdx, tt.maxIdx)
					}
				}
			}
		})
	}
}

func TestGenerateHistoryShape(t *testing.T) {
	g := New(Options{Profile: ProfileUrban, Seed: 1, Now: testNow})
	d, err := g.GenerateHistory(7, 24*time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(d.History) != 7 {
		t.Fatalf("expected 7 points, got %d", len(d.History))
	}

	wantEnd := testNow.Truncate(24 * time.Hour)
	if last := d.History[len(d.History)-1].Timestamp; !last.Equal(wantEnd) {
		t.Errorf("expected series to end at %v, got %v", wantEnd, last)
	}
	for i := 1; i < len(d.History); i++ {
		gap := d.History[i].Timestamp.Sub(d.History[i-1].Timestamp)
		if gap != 24*time.Hour {
			t.Errorf("point %d: expected 24h spacing, got %v", i, gap)
		}
	}
}

func TestGenerateHistoryHourly(t *testing.T) {
	g := New(Options{Profile: ProfileClean, Seed: 3, Now: testNow})
	d, err := g.GenerateHistory(4, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantEnd := time.Date(2026, 8, 10, 15, 0, 0, 0, time.UTC)
	if last := d.History[3].Timestamp; !last.Equal(wantEnd) {
		t.Errorf("expected series to end at %v, got %v", wantEnd, last)
	}
	if first := d.History[0].Timestamp; !first.Equal(wantEnd.Add(-3 * time.Hour)) {
		t.Errorf("expected series to start at %v, got %v", wantEnd.Add(-3*time.Hour), first)
	}
}

func TestGenerateHistoryInvalidArgs(t *testing.T) {
	g := New(Options{Profile: ProfileUrban, Seed: 1, Now: testNow})

	tests := []struct {
		name string
		n    int
		step time.Duration
	}{
		{"zero length", 0, 24 * time.Hour},
		{"negative length", -3, 24 * time.Hour},
		{"zero step", 5, 0},
		{"negative step", 5, -time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.GenerateHistory(tt.n, tt.step)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.IsType(err, errors.TypeInput) {
				t.Errorf("expected %s, got %v", errors.TypeInput, err)
			}
		})
	}
}

func TestDatasetIdentity(t *testing.T) {
	opts := Options{Profile: ProfileIndustrial, Seed: 99, Now: testNow}

	r1 := New(opts).GenerateReadings()
	r2 := New(opts).GenerateReadings()
	if r1.ID != r2.ID {
		t.Errorf("same options produced different readings IDs")
	}

	h, err := New(opts).GenerateHistory(5, 24*time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.ID == r1.ID {
		t.Errorf("readings and history datasets share an ID")
	}
}

func TestUnknownProfileFallsBack(t *testing.T) {
	g := New(Options{Profile: Profile("volcanic"), Seed: 5, Now: testNow})
	d := g.GenerateReadings()
	if d.Profile != ProfileUrban {
		t.Errorf("expected fallback to urban, got %s", d.Profile)
	}
}

func TestParseProfile(t *testing.T) {
	tests := []struct {
		in    string
		want  Profile
		valid bool
	}{
		{"clean", ProfileClean, true},
		{"urban", ProfileUrban, true},
		{"industrial", ProfileIndustrial, true},
		{"rural", Profile("rural"), false},
		{"", Profile(""), false},
	}

	for _, tt := range tests {
		got, ok := ParseProfile(tt.in)
		if got != tt.want || ok != tt.valid {
			t.Errorf("ParseProfile(%q) = (%s, %v), expected (%s, %v)",
				tt.in, got, ok, tt.want, tt.valid)
		}
	}
}
