package output

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"airaware/core/types"
	"airaware/internal/errors"
)

// Inner width of the report boxes, between the border runes.
const boxWidth = 73

// textFormatter renders a fixed-width terminal report.
type textFormatter struct{}

// Format returns the format type
func (f *textFormatter) Format() Format {
	return FormatText
}

// Render produces the terminal report
func (f *textFormatter) Render(w io.Writer, report *Report) error {
	if report == nil {
		return errors.Input("nothing to render")
	}

	if report.Result != nil {
		f.renderResult(w, report.Result)
	}
	if len(report.Forecast) > 0 {
		f.renderForecast(w, report)
	}

	meta := report.Metadata
	if meta.Duration != "" {
		fmt.Fprintf(w, "\nReport generated in %s\n", meta.Duration)
	}
	if meta.Scheme != "" {
		fmt.Fprintf(w, "Scheme: %s\n", meta.Scheme)
	}
	if meta.Source != "" {
		fmt.Fprintf(w, "Source: %s\n", meta.Source)
	}
	return nil
}

func (f *textFormatter) renderResult(w io.Writer, r *types.AqiResult) {
	fmt.Fprintln(w, border("┌", "┐"))
	fmt.Fprintln(w, title("AIR QUALITY SUMMARY"))
	fmt.Fprintln(w, border("├", "┤"))

	row(w, "Overall index", strconv.Itoa(r.OverallIndex))
	row(w, "Category", string(r.Category.Level))
	if r.Dominant != "" {
		row(w, "Dominant pollutant", r.Dominant.String())
	}
	if r.Defaulted {
		row(w, "Note", "no usable readings, default used")
	}

	if len(r.PerPollutant) > 0 {
		fmt.Fprintln(w, border("├", "┤"))
		for _, p := range sortPollutants(r.PerPollutant) {
			fmt.Fprintf(w, "│   └─ %-25s %40s │\n", truncate(p.String(), 25), strconv.Itoa(r.PerPollutant[p]))
		}
	}
	fmt.Fprintln(w, border("└", "┘"))

	for _, a := range r.Alerts {
		icon := "⚠"
		if a.Severity == types.SeverityDanger {
			icon = "✗"
		}
		fmt.Fprintf(w, "%s %s: %s\n", icon, a.Title, a.Message)
	}
	if len(r.Skipped) > 0 {
		fmt.Fprintf(w, "Skipped unsupported pollutants: %s\n", strings.Join(r.Skipped, ", "))
	}
}

func (f *textFormatter) renderForecast(w io.Writer, report *Report) {
	if report.Result != nil {
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, border("┌", "┐"))
	fmt.Fprintln(w, title("FORECAST"))
	fmt.Fprintln(w, border("├", "┤"))
	for _, p := range report.Forecast {
		row(w, p.Timestamp.Format("2006-01-02 15:04"), strconv.Itoa(int(math.Round(p.Predicted))))
	}
	fmt.Fprintln(w, border("└", "┘"))

	if m := report.Model; m != nil {
		fmt.Fprintf(w, "Trend model: degree-2 fit over %d samples (%s), R²=%.4f\n",
			m.Samples, m.Granularity, m.R2)
	} else {
		fmt.Fprintln(w, "Trend model: persistence (too few samples for a fit)")
	}
}

// sortPollutants orders the per-pollutant keys canonically, with any
// species outside the canonical set appended alphabetically.
func sortPollutants(perPollutant map[types.Pollutant]int) []types.Pollutant {
	out := make([]types.Pollutant, 0, len(perPollutant))
	seen := make(map[types.Pollutant]bool, len(perPollutant))
	for _, p := range types.AllPollutants() {
		if _, ok := perPollutant[p]; ok {
			out = append(out, p)
			seen[p] = true
		}
	}

	var extra []types.Pollutant
	for p := range perPollutant {
		if !seen[p] {
			extra = append(extra, p)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

func border(left, right string) string {
	return left + strings.Repeat("─", boxWidth) + right
}

func title(s string) string {
	pad := boxWidth - len(s)
	if pad < 0 {
		pad = 0
	}
	left := pad / 2
	return "│" + strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left) + "│"
}

func row(w io.Writer, label, value string) {
	fmt.Fprintf(w, "│ %-30s %40s │\n", truncate(label, 30), truncate(value, 40))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

