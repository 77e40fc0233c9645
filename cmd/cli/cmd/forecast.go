// Package cmd - forecast command
package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"airaware/adapters/datafile"
	"airaware/core/forecast"
	"airaware/core/output"
	"airaware/internal/config"
	"airaware/internal/errors"
	"airaware/internal/logging"
)

var (
	forecastInput       string
	forecastFormat      string
	forecastHorizon     int
	forecastGranularity string
	forecastStrict      bool
	forecastSave        string
)

// forecastCmd represents the forecast command
var forecastCmd = &cobra.Command{
	Use:   "forecast [history-file]",
	Short: "Project future index values from a historical series",
	Long: `Fit a trend to historical index values and project it forward.

The history file is a JSON array or a JSONL stream of points, plain or
gzipped. Series with fewer than three points fall back to repeating the
last observed value.

Examples:
  airaware forecast history.json
  airaware forecast --horizon 48 --granularity hourly history.jsonl
  airaware forecast --save forecast.json history.jsonl.gz`,
	Args: cobra.MaximumNArgs(1),
	RunE: runForecast,
}

func init() {
	forecastCmd.Flags().StringVarP(&forecastInput, "input", "i", "", "history file (JSON or JSONL, optionally gzipped)")
	forecastCmd.Flags().StringVarP(&forecastFormat, "output", "o", "", "output format (text, json)")
	forecastCmd.Flags().IntVarP(&forecastHorizon, "horizon", "n", 0, "number of future points to predict")
	forecastCmd.Flags().StringVarP(&forecastGranularity, "granularity", "g", "", "series step (auto, hourly, daily)")
	forecastCmd.Flags().BoolVar(&forecastStrict, "strict", false, "treat an empty history as an error")
	forecastCmd.Flags().StringVar(&forecastSave, "save", "", "also write the forecast to a JSON file")
}

func runForecast(cmd *cobra.Command, args []string) error {
	startTime := time.Now()
	cfg := config.Get()

	path := forecastInput
	if len(args) > 0 {
		if path != "" {
			return errors.Input("give the history file either as an argument or with --input, not both")
		}
		path = args[0]
	}
	if path == "" {
		return errors.Input("no history given: pass a history file")
	}

	history, err := datafile.ReadHistory(path)
	if err != nil {
		return err
	}

	horizon := cfg.Forecast.Horizon
	if cmd.Flags().Changed("horizon") {
		horizon = forecastHorizon
	}

	granularity, err := resolveGranularity(forecastGranularity)
	if err != nil {
		return err
	}

	logging.Info("Forecasting index trend")

	forecaster := forecast.New(forecast.Options{
		Granularity: granularity,
		Strict:      forecastStrict,
	})
	points, model, err := forecaster.Forecast(history, horizon)
	if err != nil {
		return err
	}

	if forecastSave != "" {
		resolved := granularity
		if resolved == forecast.GranularityAuto {
			if model != nil {
				resolved = model.Granularity
			} else {
				resolved = forecast.DetectGranularity(history)
			}
		}
		if err := datafile.SaveForecast(forecastSave, points, resolved); err != nil {
			return err
		}
	}

	report := &output.Report{
		Forecast: points,
		Model:    model,
		Metadata: output.ReportMetadata{
			Timestamp: time.Now().Format(time.RFC3339),
			Duration:  time.Since(startTime).String(),
			Source:    path,
			Version:   version,
		},
	}
	return renderReport(forecastFormat, report)
}

// resolveGranularity parses a granularity name, falling back to the
// configured value and then to auto-detection.
func resolveGranularity(name string) (forecast.Granularity, error) {
	if name == "" {
		name = config.Get().Forecast.Granularity
	}
	g := forecast.Granularity(strings.ToLower(strings.TrimSpace(name)))
	if g == "" {
		return forecast.GranularityAuto, nil
	}
	if !g.IsValid() {
		return g, errors.Inputf("unknown granularity %q, want auto, hourly or daily", name)
	}
	return g, nil
}
