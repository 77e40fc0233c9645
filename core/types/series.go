package types

import "time"

// HistoricalPoint is one observed index value in a time series.
// Series are ordered ascending by timestamp.
type HistoricalPoint struct {
	// Timestamp is when the index was observed
	Timestamp time.Time `json:"timestamp"`

	// Index is the observed AQI value
	Index float64 `json:"index"`
}

// ForecastPoint is one predicted index value
type ForecastPoint struct {
	// Timestamp is the moment the prediction applies to
	Timestamp time.Time `json:"timestamp"`

	// Predicted is the predicted index, clamped to [0, 500]
	Predicted float64 `json:"predicted"`
}
