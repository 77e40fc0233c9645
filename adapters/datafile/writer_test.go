package datafile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"airaware/core/forecast"
	"airaware/core/types"
)

func forecastPoints() []types.ForecastPoint {
	return []types.ForecastPoint{
		{Timestamp: time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC), Predicted: 58.2},
		{Timestamp: time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC), Predicted: 61.7},
	}
}

func TestWriteForecastDaily(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteForecast(&buf, forecastPoints(), forecast.GranularityDaily); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var docs []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &docs); err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(docs))
	}

	if docs[0]["date"] != "2026-08-11" {
		t.Errorf("expected date 2026-08-11, got %v", docs[0]["date"])
	}
	if _, ok := docs[0]["timestamp"]; ok {
		t.Error("daily output should not carry timestamps")
	}
	if docs[1]["predicted"] != 61.7 {
		t.Errorf("expected predicted 61.7, got %v", docs[1]["predicted"])
	}
}

func TestWriteForecastHourly(t *testing.T) {
	points := []types.ForecastPoint{
		{Timestamp: time.Date(2026, 8, 11, 16, 0, 0, 0, time.UTC), Predicted: 42},
	}

	var buf bytes.Buffer
	if err := WriteForecast(&buf, points, forecast.GranularityHourly); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var docs []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &docs); err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}
	if docs[0]["timestamp"] != "2026-08-11T16:00:00Z" {
		t.Errorf("expected RFC3339 timestamp, got %v", docs[0]["timestamp"])
	}
	if _, ok := docs[0]["date"]; ok {
		t.Error("hourly output should not carry date-only fields")
	}
}

func TestSaveForecast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forecast.json")
	if err := SaveForecast(path, forecastPoints(), forecast.GranularityDaily); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	var docs []map[string]interface{}
	if err := json.Unmarshal(data, &docs); err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("expected 2 docs, got %d", len(docs))
	}
}
