package datafile

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"airaware/core/types"
	"airaware/internal/errors"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestReadReadingsArray(t *testing.T) {
	path := writeFixture(t, "readings.json", `[
  {"pollutant": "PM2.5", "concentration": 40.0},
  {"pollutant": "o3", "concentration": 30, "unit": "ppb"}
]`)

	file, err := ReadReadings(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if file.Location != "" {
		t.Errorf("expected no location, got %q", file.Location)
	}
	if len(file.Readings) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(file.Readings))
	}

	first := file.Readings[0]
	if first.Pollutant != types.PollutantPM25 {
		t.Errorf("expected PM2.5 to canonicalize to pm25, got %s", first.Pollutant)
	}
	if first.Concentration != 40.0 {
		t.Errorf("expected concentration 40.0, got %f", first.Concentration)
	}
	if first.Unit != types.PollutantPM25.Info().Unit {
		t.Errorf("expected default unit, got %q", first.Unit)
	}

	if file.Readings[1].Unit != "ppb" {
		t.Errorf("expected explicit unit to survive, got %q", file.Readings[1].Unit)
	}
}

func TestReadReadingsMap(t *testing.T) {
	path := writeFixture(t, "readings.json", `{"nh3": 5, "co": 2.1, "pm2_5": 40}`)

	file, err := ReadReadings(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(file.Readings) != 3 {
		t.Fatalf("expected 3 readings, got %d", len(file.Readings))
	}

	// Canonical species come first, unknown codes trail alphabetically.
	wantOrder := []types.Pollutant{types.PollutantPM25, types.PollutantCO, types.Pollutant("nh3")}
	for i, want := range wantOrder {
		if file.Readings[i].Pollutant != want {
			t.Errorf("reading %d: expected %s, got %s", i, want, file.Readings[i].Pollutant)
		}
	}
	if file.Readings[1].Concentration != 2.1 {
		t.Errorf("expected co 2.1, got %f", file.Readings[1].Concentration)
	}
}

func TestReadReadingsEnvelope(t *testing.T) {
	path := writeFixture(t, "readings.json", `{
  "location": "Lagos",
  "pollutants": {"pm25": 12.0}
}`)

	file, err := ReadReadings(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if file.Location != "Lagos" {
		t.Errorf("expected location Lagos, got %q", file.Location)
	}
	if len(file.Readings) != 1 || file.Readings[0].Pollutant != types.PollutantPM25 {
		t.Errorf("unexpected readings: %+v", file.Readings)
	}
}

func TestReadReadingsDatasetEnvelope(t *testing.T) {
	path := writeFixture(t, "dataset.json", `{
  "id": "7cb31779-5f8e-55a3-a18c-b19b6c5a2c1f",
  "profile": "urban",
  "seed": 1,
  "generated_at": "2026-08-10T15:30:00Z",
  "readings": [
    {"pollutant": "pm25", "concentration": 22.4, "unit": "µg/m³"},
    {"pollutant": "o3", "concentration": 58.1, "unit": "µg/m³"}
  ]
}`)

	file, err := ReadReadings(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(file.Readings) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(file.Readings))
	}
	if file.Readings[0].Pollutant != types.PollutantPM25 || file.Readings[0].Concentration != 22.4 {
		t.Errorf("unexpected first reading: %+v", file.Readings[0])
	}
}

func TestReadReadingsErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantType errors.Type
	}{
		{"empty file", "", errors.TypeParsing},
		{"scalar", "42", errors.TypeParsing},
		{"malformed", `{"pm25": }`, errors.TypeParsing},
		{"reading without pollutant", `[{"concentration": 4}]`, errors.TypeParsing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFixture(t, "bad.json", tt.content)
			_, err := ReadReadings(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.IsType(err, tt.wantType) {
				t.Errorf("expected %s, got %v", tt.wantType, err)
			}
		})
	}

	_, err := ReadReadings(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("expected %s, got %v", errors.TypeNotFound, err)
	}
}

func TestReadHistoryArray(t *testing.T) {
	path := writeFixture(t, "history.json", `[
  {"date": "2026-08-03", "aqi": 60},
  {"date": "2026-08-01", "aqi": 40},
  {"timestamp": "2026-08-02T00:00:00Z", "index": 50}
]`)

	points, err := ReadHistory(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}

	// Sorted ascending regardless of file order.
	wantIndices := []float64{40, 50, 60}
	for i, want := range wantIndices {
		if points[i].Index != want {
			t.Errorf("point %d: expected index %v, got %v", i, want, points[i].Index)
		}
	}
	wantFirst := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	if !points[0].Timestamp.Equal(wantFirst) {
		t.Errorf("expected first timestamp %v, got %v", wantFirst, points[0].Timestamp)
	}
}

func TestReadHistoryJSONL(t *testing.T) {
	path := writeFixture(t, "history.jsonl", `{"date": "2026-08-01", "aqi": 40}

{"timestamp": "2026-08-02T06:00:00Z", "index": 50}
{"date": "2026-08-03", "aqi": 60}
`)

	points, err := ReadHistory(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	if points[1].Index != 50 {
		t.Errorf("expected middle index 50, got %v", points[1].Index)
	}
	wantMiddle := time.Date(2026, 8, 2, 6, 0, 0, 0, time.UTC)
	if !points[1].Timestamp.Equal(wantMiddle) {
		t.Errorf("expected middle timestamp %v, got %v", wantMiddle, points[1].Timestamp)
	}
}

func TestReadHistoryDatasetEnvelope(t *testing.T) {
	pretty := `{
  "id": "7cb31779-5f8e-55a3-a18c-b19b6c5a2c1f",
  "profile": "urban",
  "seed": 1,
  "history": [
    {"timestamp": "2026-08-02T00:00:00Z", "index": 58},
    {"timestamp": "2026-08-01T00:00:00Z", "index": 52}
  ]
}`
	compact := `{"history": [{"timestamp": "2026-08-01T00:00:00Z", "index": 52}, {"timestamp": "2026-08-02T00:00:00Z", "index": 58}]}`

	for name, content := range map[string]string{"pretty": pretty, "compact": compact} {
		t.Run(name, func(t *testing.T) {
			path := writeFixture(t, "dataset.json", content)

			points, err := ReadHistory(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(points) != 2 {
				t.Fatalf("expected 2 points, got %d", len(points))
			}
			if points[0].Index != 52 || points[1].Index != 58 {
				t.Errorf("expected points sorted ascending, got %+v", points)
			}
		})
	}
}

func TestReadHistoryEnvelopeWithoutHistory(t *testing.T) {
	path := writeFixture(t, "dataset.json", `{
  "profile": "urban",
  "readings": [{"pollutant": "pm25", "concentration": 22.4}]
}`)

	_, err := ReadHistory(path)
	if !errors.IsType(err, errors.TypeParsing) {
		t.Fatalf("expected parsing error, got %v", err)
	}
}

func TestReadHistoryGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.jsonl.gz")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte(`{"date": "2026-08-01", "aqi": 40}
{"date": "2026-08-02", "aqi": 44}
`)); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("failed to close gzip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}

	points, err := ReadHistory(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 || points[1].Index != 44 {
		t.Errorf("unexpected points: %+v", points)
	}
}

func TestReadHistoryEmptyArray(t *testing.T) {
	path := writeFixture(t, "history.json", `[]`)

	points, err := ReadHistory(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 0 {
		t.Errorf("expected no points, got %d", len(points))
	}
}

func TestReadHistoryErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantType errors.Type
	}{
		{"empty file", "", errors.TypeParsing},
		{"bad timestamp", `[{"date": "last tuesday", "aqi": 40}]`, errors.TypeParsing},
		{"missing value", `[{"date": "2026-08-01"}]`, errors.TypeParsing},
		{"missing timestamp", `[{"aqi": 40}]`, errors.TypeParsing},
		{"bad jsonl record", `{"date": "2026-08-01", "aqi": 40}
not json
`, errors.TypeParsing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFixture(t, "bad.json", tt.content)
			_, err := ReadHistory(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.IsType(err, tt.wantType) {
				t.Errorf("expected %s, got %v", tt.wantType, err)
			}
		})
	}

	// A .gz suffix without gzip content fails up front.
	path := writeFixture(t, "fake.json.gz", `{"date": "2026-08-01", "aqi": 40}`)
	if _, err := ReadHistory(path); err == nil {
		t.Fatal("expected error for fake gzip")
	} else if !errors.IsType(err, errors.TypeParsing) {
		t.Errorf("expected %s, got %v", errors.TypeParsing, err)
	}
}
