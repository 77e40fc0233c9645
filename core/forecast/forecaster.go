package forecast

import (
	"math"

	"airaware/core/types"
	"airaware/internal/errors"
)

// maxIndex bounds predictions to the valid index scale.
const maxIndex = 500

// minSamples is the series length below which fitting is skipped in
// favor of a persistence forecast.
const minSamples = 3

// Options configures a Forecaster.
type Options struct {
	// Granularity fixes the series step; auto detects it from the
	// timestamps.
	Granularity Granularity

	// Strict turns an empty history into an error instead of an empty
	// forecast.
	Strict bool
}

// DefaultOptions returns the standard forecaster configuration.
func DefaultOptions() Options {
	return Options{Granularity: GranularityAuto}
}

// TrendModel describes a fitted trend for diagnostics. Persistence
// forecasts carry no model.
type TrendModel struct {
	// Coefficients are the fitted polynomial terms: index ≈
	// Coefficients[0] + Coefficients[1]·x + Coefficients[2]·x²
	Coefficients [coefficients]float64 `json:"coefficients"`

	// Granularity is the offset step the model was trained on
	Granularity Granularity `json:"granularity"`

	// Samples is the training series length
	Samples int `json:"samples"`

	// R2 is the coefficient of determination over the training series
	R2 float64 `json:"r2"`
}

// Forecaster projects historical index series forward. Each call is
// stateless given its input; forecasters are safe for concurrent use.
type Forecaster struct {
	opts Options
}

// New creates a forecaster. An unset granularity means auto-detect.
func New(opts Options) *Forecaster {
	if opts.Granularity == "" {
		opts.Granularity = GranularityAuto
	}
	return &Forecaster{opts: opts}
}

// Forecast predicts the next horizon points after the end of history.
//
// History must be ordered ascending by timestamp and hold finite index
// values. Series shorter than three points fall back to a persistence
// forecast that repeats the last observation. Otherwise a degree-2
// polynomial is fitted over the step offsets of the series and
// evaluated at the following offsets; predictions clamp to [0, 500].
// A series whose offsets collapse (duplicate timestamps) cannot be
// fitted and returns a FORECAST_UNAVAILABLE error.
func (f *Forecaster) Forecast(history []types.HistoricalPoint, horizon int) ([]types.ForecastPoint, *TrendModel, error) {
	if horizon < 0 {
		return nil, nil, errors.Inputf("horizon must be non-negative, got %d", horizon)
	}
	if err := checkSeries(history); err != nil {
		return nil, nil, err
	}
	if len(history) == 0 {
		if f.opts.Strict {
			return nil, nil, errors.InsufficientData("forecast requested with empty history")
		}
		return nil, nil, nil
	}
	if horizon == 0 {
		return nil, nil, nil
	}

	granularity := f.opts.Granularity
	if granularity == GranularityAuto {
		granularity = detectGranularity(history)
	}
	enc := newEncoder(history[0].Timestamp, granularity)
	lastOffset := int64(enc.offset(history[len(history)-1].Timestamp))

	if len(history) < minSamples {
		return persistence(history, horizon, enc, lastOffset), nil, nil
	}

	xs := make([]float64, len(history))
	ys := make([]float64, len(history))
	for i, p := range history {
		xs[i] = enc.offset(p.Timestamp)
		ys[i] = p.Index
	}

	coeffs, err := fitPolynomial(xs, ys)
	if err != nil {
		if errors.IsType(err, errors.TypeForecastUnavailable) {
			return nil, nil, err
		}
		return nil, nil, errors.ForecastUnavailable("trend fit failed", err)
	}

	points := make([]types.ForecastPoint, horizon)
	for k := 0; k < horizon; k++ {
		offset := lastOffset + int64(k) + 1
		points[k] = types.ForecastPoint{
			Timestamp: enc.timestamp(offset),
			Predicted: clamp(evaluate(coeffs, float64(offset))),
		}
	}

	model := &TrendModel{
		Coefficients: coeffs,
		Granularity:  granularity,
		Samples:      len(history),
		R2:           rSquared(coeffs, xs, ys),
	}
	return points, model, nil
}

// persistence repeats the last observed value across the horizon.
func persistence(history []types.HistoricalPoint, horizon int, enc encoder, lastOffset int64) []types.ForecastPoint {
	last := history[len(history)-1].Index
	points := make([]types.ForecastPoint, horizon)
	for k := 0; k < horizon; k++ {
		points[k] = types.ForecastPoint{
			Timestamp: enc.timestamp(lastOffset + int64(k) + 1),
			Predicted: clamp(last),
		}
	}
	return points
}

// checkSeries rejects series the numeric model must never see:
// out-of-order timestamps and non-finite index values.
func checkSeries(history []types.HistoricalPoint) error {
	for i, p := range history {
		if math.IsNaN(p.Index) || math.IsInf(p.Index, 0) {
			return errors.Inputf("history point %d has non-finite index", i)
		}
		if i > 0 && p.Timestamp.Before(history[i-1].Timestamp) {
			return errors.Inputf("history not ordered ascending at point %d", i)
		}
	}
	return nil
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > maxIndex {
		return maxIndex
	}
	return v
}
