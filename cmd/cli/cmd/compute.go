// Package cmd - compute command
package cmd

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"airaware/adapters/datafile"
	"airaware/core/aqi"
	"airaware/core/breakpoints"
	"airaware/core/output"
	"airaware/core/types"
	"airaware/internal/config"
	"airaware/internal/errors"
	"airaware/internal/logging"
)

var (
	computeInput        string
	computeFormat       string
	computeScheme       string
	computeStrict       bool
	computeDefaultIndex int
	computeLocation     string
	computeReadings     []string
)

// computeCmd represents the compute command
var computeCmd = &cobra.Command{
	Use:   "compute [readings-file]",
	Short: "Compute the air quality index from pollutant readings",
	Long: `Compute the overall air quality index from pollutant concentrations.

Readings come from a JSON file (an array of reading objects or a map of
pollutant codes to concentrations) or from repeated --reading flags.

Examples:
  airaware compute readings.json
  airaware compute --input readings.json --output json
  airaware compute -r pm25=35.4 -r o3=61 --location "Lagos"
  airaware compute --scheme custom --schemes schemes.hcl readings.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompute,
}

func init() {
	computeCmd.Flags().StringVarP(&computeInput, "input", "i", "", "readings file (JSON)")
	computeCmd.Flags().StringVarP(&computeFormat, "output", "o", "", "output format (text, json)")
	computeCmd.Flags().StringVarP(&computeScheme, "scheme", "s", "", "breakpoint scheme to compute against")
	computeCmd.Flags().BoolVar(&computeStrict, "strict", false, "fail on unknown pollutants instead of skipping them")
	computeCmd.Flags().IntVar(&computeDefaultIndex, "default-index", 0, "index reported when no reading is usable")
	computeCmd.Flags().StringVarP(&computeLocation, "location", "l", "", "location name for alert messages")
	computeCmd.Flags().StringArrayVarP(&computeReadings, "reading", "r", nil, "inline reading as pollutant=concentration (repeatable)")
}

func runCompute(cmd *cobra.Command, args []string) error {
	startTime := time.Now()
	cfg := config.Get()

	path := computeInput
	if len(args) > 0 {
		if path != "" {
			return errors.Input("give the readings file either as an argument or with --input, not both")
		}
		path = args[0]
	}

	location := computeLocation
	if location == "" {
		location = cfg.Engine.Location
	}

	var (
		readings []types.PollutantReading
		source   string
	)
	switch {
	case path != "":
		file, err := datafile.ReadReadings(path)
		if err != nil {
			return err
		}
		readings = file.Readings
		source = path
		if location == "" {
			location = file.Location
		}
	case len(computeReadings) > 0:
		parsed, err := parseInlineReadings(computeReadings)
		if err != nil {
			return err
		}
		readings = parsed
		source = "inline"
	default:
		return errors.Input("no readings given: pass a readings file or --reading pairs")
	}

	scheme, err := resolveScheme(computeScheme)
	if err != nil {
		return err
	}

	strict := cfg.Engine.Strict
	if cmd.Flags().Changed("strict") {
		strict = computeStrict
	}
	defaultIndex := cfg.Engine.DefaultIndex
	if cmd.Flags().Changed("default-index") {
		defaultIndex = computeDefaultIndex
	}

	logging.Info("Computing air quality index")

	engine := aqi.New(aqi.Options{
		Scheme:       scheme,
		DefaultIndex: defaultIndex,
		Strict:       strict,
		Location:     location,
	})
	result, err := engine.Compute(readings)
	if err != nil {
		return err
	}
	if !cfg.Output.ShowPollutants {
		result.PerPollutant = nil
	}

	report := &output.Report{
		Result: result,
		Metadata: output.ReportMetadata{
			Timestamp: time.Now().Format(time.RFC3339),
			Duration:  time.Since(startTime).String(),
			Scheme:    scheme.Name(),
			Location:  location,
			Source:    source,
			Version:   version,
		},
	}
	return renderReport(computeFormat, report)
}

// resolveScheme finds a registered scheme by name, defaulting to the
// configured scheme.
func resolveScheme(name string) (*breakpoints.Scheme, error) {
	if name == "" {
		name = config.Get().Engine.Scheme
	}
	scheme, ok := breakpoints.Lookup(name)
	if !ok {
		return nil, errors.NotFound("scheme", name).
			WithContext("registered", strings.Join(breakpoints.Names(), ", "))
	}
	return scheme, nil
}

// parseInlineReadings decodes repeated --reading pollutant=concentration
// pairs. Unknown pollutant codes pass through for the engine to skip or
// reject.
func parseInlineReadings(pairs []string) ([]types.PollutantReading, error) {
	readings := make([]types.PollutantReading, 0, len(pairs))
	for _, pair := range pairs {
		code, value, ok := strings.Cut(pair, "=")
		code = strings.TrimSpace(code)
		if !ok || code == "" {
			return nil, errors.Inputf("bad reading %q, want pollutant=concentration", pair)
		}
		concentration, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, errors.Inputf("bad concentration in %q", pair)
		}
		p, _ := types.ParsePollutant(code)
		readings = append(readings, types.PollutantReading{
			Pollutant:     p,
			Concentration: concentration,
			Unit:          p.Info().Unit,
		})
	}
	return readings, nil
}

// renderReport resolves the output format against the config default
// and writes the report to stdout.
func renderReport(name string, report *output.Report) error {
	if name == "" {
		name = config.Get().Output.DefaultFormat
	}
	format, ok := output.ParseFormat(name)
	if !ok {
		return errors.Inputf("unknown output format: %s", name)
	}
	formatter, err := output.New(format)
	if err != nil {
		return err
	}
	return formatter.Render(os.Stdout, report)
}
