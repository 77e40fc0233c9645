// Package output provides output formatting interfaces.
// This package produces human and machine-readable reports.
package output

import (
	"io"
	"strings"

	"airaware/core/forecast"
	"airaware/core/types"
	"airaware/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatText is a human-readable terminal report
	FormatText Format = "text"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// ParseFormat canonicalizes a format name.
func ParseFormat(s string) (Format, bool) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatText, FormatJSON:
		return f, true
	default:
		return f, false
	}
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *Report) error
}

// New returns the formatter for a format type. An empty format selects
// the text formatter.
func New(format Format) (Formatter, error) {
	switch format {
	case FormatText, Format(""):
		return &textFormatter{}, nil
	case FormatJSON:
		return &jsonFormatter{}, nil
	default:
		return nil, errors.Inputf("unknown output format: %s", format)
	}
}

// Report contains the complete output of one run
type Report struct {
	// Result is the computed air quality result
	Result *types.AqiResult `json:"result,omitempty"`

	// Forecast holds predicted index points, when forecasting ran
	Forecast []types.ForecastPoint `json:"forecast,omitempty"`

	// Model describes the trend model behind the forecast; nil when the
	// forecast fell back to persistence
	Model *forecast.TrendModel `json:"model,omitempty"`

	// Metadata contains execution context
	Metadata ReportMetadata `json:"metadata"`
}

// ReportMetadata contains execution context
type ReportMetadata struct {
	// Timestamp is when the report was produced
	Timestamp string `json:"timestamp"`

	// Duration is how long the run took
	Duration string `json:"duration,omitempty"`

	// Scheme is the breakpoint scheme that was used
	Scheme string `json:"scheme,omitempty"`

	// Location is the place the readings describe
	Location string `json:"location,omitempty"`

	// Source identifies the input: a file path or a generated dataset ID
	Source string `json:"source,omitempty"`

	// Version is the tool version
	Version string `json:"version"`
}
