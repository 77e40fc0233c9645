// Package cmd - scheme command
package cmd

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"airaware/adapters/schemefile"
	"airaware/core/aqi"
	"airaware/core/breakpoints"
	"airaware/core/ui"
)

// schemeCmd groups breakpoint scheme operations
var schemeCmd = &cobra.Command{
	Use:   "scheme",
	Short: "Inspect and validate breakpoint schemes",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var schemeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered schemes",
	Args:  cobra.NoArgs,
	RunE:  runSchemeList,
}

var schemeShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show the breakpoint table of a scheme",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSchemeShow,
}

var schemeValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate an HCL scheme file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchemeValidate,
}

func init() {
	schemeCmd.AddCommand(schemeListCmd)
	schemeCmd.AddCommand(schemeShowCmd)
	schemeCmd.AddCommand(schemeValidateCmd)
}

func runSchemeList(cmd *cobra.Command, args []string) error {
	w := ui.NewWriter(os.Stdout, noColor)
	w.Header("REGISTERED SCHEMES")

	table := w.NewTable("NAME", "MAX INDEX", "POLLUTANTS")
	for _, name := range breakpoints.Names() {
		scheme, ok := breakpoints.Lookup(name)
		if !ok {
			continue
		}
		codes := make([]string, len(scheme.Pollutants()))
		for i, p := range scheme.Pollutants() {
			codes[i] = p.String()
		}
		table.AddRow(scheme.Name(), strconv.Itoa(scheme.MaxIndex()), strings.Join(codes, ", "))
	}
	table.Render()
	return nil
}

func runSchemeShow(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	scheme, err := resolveScheme(name)
	if err != nil {
		return err
	}

	w := ui.NewWriter(os.Stdout, noColor)
	w.Header("SCHEME " + strings.ToUpper(scheme.Name()))
	w.Println("Max index: %d", scheme.MaxIndex())

	for _, p := range scheme.Pollutants() {
		title := p.Info().DisplayName
		if title == "" {
			title = strings.ToUpper(p.String())
		}
		if unit := p.Info().Unit; unit != "" {
			title += " (" + unit + ")"
		}

		w.Println("")
		w.SubHeader(title)
		table := w.NewTable("LOW", "HIGH", "INDEX LOW", "INDEX HIGH")
		for _, row := range scheme.Rows(p) {
			table.AddRow(
				formatBound(row.ConcLow),
				formatBound(row.ConcHigh),
				formatBound(row.IndexLow),
				formatBound(row.IndexHigh),
			)
		}
		table.Render()
	}

	w.Println("")
	w.SubHeader("Index categories")
	for _, b := range aqi.Bands() {
		w.Print("%3d-%-3d ", b.Low, b.High)
		w.Category(b.Info)
	}
	return nil
}

func runSchemeValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	w := ui.NewWriter(os.Stdout, noColor)
	if verbose {
		w.SetVerbosity(2)
	}
	w.Info("Validating %s", path)

	schemes, err := schemefile.NewLoader().Load(path)
	if err != nil {
		return err
	}

	for _, s := range schemes {
		w.Success("scheme %q is valid (%d pollutants, max index %d)",
			s.Name(), len(s.Pollutants()), s.MaxIndex())
		for _, p := range s.Pollutants() {
			w.Debug("%s: %d rows", p, len(s.Rows(p)))
		}
	}
	return nil
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
