// Package schemefile - HCL value conversion
// Values are never blindly passed through; unknown and null values are
// rejected with the offending position.
package schemefile

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"airaware/internal/errors"
)

// attrNumber evaluates an attribute to a concrete float. Scheme files
// are static documents, so expressions are evaluated without a context
// and anything that needs one fails here.
func attrNumber(attr *hcl.Attribute, filename string) (float64, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return 0, diagError(filename, diags)
	}

	line := attr.Range.Start.Line
	if !val.IsKnown() {
		return 0, errors.Newf(errors.TypeParsing, "%s:%d: %s is not a constant value", filename, line, attr.Name)
	}
	if val.IsNull() {
		return 0, errors.Newf(errors.TypeParsing, "%s:%d: %s is null", filename, line, attr.Name)
	}
	if val.Type() != cty.Number {
		return 0, errors.Newf(errors.TypeParsing, "%s:%d: %s must be a number, got %s",
			filename, line, attr.Name, val.Type().FriendlyName())
	}

	f, _ := val.AsBigFloat().Float64()
	return f, nil
}

// diagError folds HCL diagnostics into a single parsing error.
func diagError(filename string, diags hcl.Diagnostics) error {
	var parts []string
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		line := 0
		if diag.Subject != nil {
			line = diag.Subject.Start.Line
		}
		msg := diag.Summary
		if diag.Detail != "" {
			msg += ": " + diag.Detail
		}
		parts = append(parts, fmt.Sprintf("%s:%d: %s", filename, line, msg))
	}
	if len(parts) == 0 {
		parts = append(parts, diags.Error())
	}
	return errors.New(errors.TypeParsing, strings.Join(parts, "; ")).WithContext("file", filename)
}
