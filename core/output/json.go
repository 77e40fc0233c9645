package output

import (
	"encoding/json"
	"io"

	"airaware/internal/errors"
)

// jsonFormatter renders the report as indented JSON.
type jsonFormatter struct{}

// Format returns the format type
func (f *jsonFormatter) Format() Format {
	return FormatJSON
}

// Render encodes the report
func (f *jsonFormatter) Render(w io.Writer, report *Report) error {
	if report == nil {
		return errors.Input("nothing to render")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return errors.Internal("failed to encode report", err)
	}
	return nil
}
