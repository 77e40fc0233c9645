package datafile

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"airaware/core/forecast"
	"airaware/core/types"
	"airaware/internal/errors"
	"airaware/internal/logging"
)

// forecastDoc is the on-disk shape of one forecast point.
type forecastDoc struct {
	Timestamp string  `json:"timestamp,omitempty"`
	Date      string  `json:"date,omitempty"`
	Predicted float64 `json:"predicted"`
}

// WriteForecast encodes forecast points as a JSON array. Daily points
// are written date-only; anything finer keeps the full timestamp.
func WriteForecast(w io.Writer, points []types.ForecastPoint, g forecast.Granularity) error {
	docs := make([]forecastDoc, len(points))
	for i, p := range points {
		if g == forecast.GranularityDaily {
			docs[i].Date = p.Timestamp.Format("2006-01-02")
		} else {
			docs[i].Timestamp = p.Timestamp.Format(time.RFC3339)
		}
		docs[i].Predicted = p.Predicted
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(docs); err != nil {
		return errors.Internal("failed to encode forecast", err)
	}
	return nil
}

// SaveForecast writes the forecast to a file.
func SaveForecast(path string, points []types.ForecastPoint, g forecast.Granularity) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(errors.TypeInternal, err, "cannot create %s", path)
	}
	defer f.Close()

	if err := WriteForecast(f, points, g); err != nil {
		return err
	}
	logging.Debugf("wrote %d forecast points to %s", len(points), path)
	return nil
}
