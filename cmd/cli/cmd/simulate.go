// Package cmd - simulate command
package cmd

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"airaware/core/simulate"
	"airaware/core/ui"
	"airaware/internal/config"
	"airaware/internal/errors"
	"airaware/internal/logging"
)

var (
	simProfile string
	simSeed    int64
	simHistory int
	simStep    time.Duration
	simFormat  string
	simSave    string
)

// simulateCmd represents the simulate command
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Generate synthetic pollutant data",
	Long: `Generate a reproducible synthetic dataset: a snapshot of pollutant
readings, or with --history a series of past index values.

The same profile and seed always produce the same dataset. JSON output
feeds straight back into compute and forecast.

Examples:
  airaware simulate --profile clean
  airaware simulate --profile industrial --seed 7 -o json
  airaware simulate --history 30 --save history.json
  airaware simulate --history 48 --step 1h -o json | airaware forecast -i /dev/stdin`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVarP(&simProfile, "profile", "p", "", "pollution baseline (clean, urban, industrial)")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "random seed; the same seed reproduces the same data")
	simulateCmd.Flags().IntVar(&simHistory, "history", 0, "generate a history of n index points instead of readings")
	simulateCmd.Flags().DurationVar(&simStep, "step", 24*time.Hour, "spacing between history points")
	simulateCmd.Flags().StringVarP(&simFormat, "output", "o", "", "output format (text, json)")
	simulateCmd.Flags().StringVar(&simSave, "save", "", "write the dataset to a JSON file instead of stdout")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	name := simProfile
	if name == "" {
		name = cfg.Simulate.Profile
	}
	profile, ok := simulate.ParseProfile(strings.ToLower(strings.TrimSpace(name)))
	if !ok {
		return errors.Inputf("unknown profile %q, want clean, urban or industrial", name)
	}

	seed := cfg.Simulate.Seed
	if cmd.Flags().Changed("seed") {
		seed = simSeed
	}

	generator := simulate.New(simulate.Options{
		Profile: profile,
		Seed:    seed,
	})

	var (
		dataset *simulate.Dataset
		err     error
	)
	if cmd.Flags().Changed("history") {
		points := simHistory
		if points <= 0 {
			points = cfg.Simulate.HistoryDays
		}
		dataset, err = generator.GenerateHistory(points, simStep)
		if err != nil {
			return err
		}
	} else {
		dataset = generator.GenerateReadings()
	}

	logging.Debugf("generated dataset %s (profile %s, seed %d)", dataset.ID, dataset.Profile, dataset.Seed)

	if simSave != "" {
		if err := saveDataset(simSave, dataset); err != nil {
			return err
		}
		ui.NewWriter(os.Stdout, noColor).Success("Wrote dataset %s to %s", dataset.ID, simSave)
		return nil
	}

	format := simFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(dataset); err != nil {
			return errors.Internal("failed to encode dataset", err)
		}
		return nil
	case "text", "":
		printDataset(dataset)
		return nil
	default:
		return errors.Inputf("unknown output format: %s", format)
	}
}

func printDataset(dataset *simulate.Dataset) {
	w := ui.NewWriter(os.Stdout, noColor)

	if len(dataset.History) > 0 {
		w.Header("SIMULATED HISTORY")
	} else {
		w.Header("SIMULATED READINGS")
	}
	w.Println("Dataset %s (profile %s, seed %d)", dataset.ID, dataset.Profile, dataset.Seed)
	w.Println("")

	if len(dataset.History) > 0 {
		table := w.NewTable("TIMESTAMP", "INDEX")
		for _, p := range dataset.History {
			table.AddRow(p.Timestamp.Format("2006-01-02 15:04"), strconv.FormatFloat(p.Index, 'f', 0, 64))
		}
		table.Render()
		return
	}

	table := w.NewTable("POLLUTANT", "CONCENTRATION", "UNIT")
	for _, r := range dataset.Readings {
		table.AddRow(r.Pollutant.String(), strconv.FormatFloat(r.Concentration, 'f', 1, 64), r.Unit)
	}
	table.Render()
}

func saveDataset(path string, dataset *simulate.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(errors.TypeInternal, err, "cannot create %s", path)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dataset); err != nil {
		return errors.Internal("failed to encode dataset", err)
	}
	return nil
}
