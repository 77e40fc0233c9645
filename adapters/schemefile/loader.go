// Package schemefile loads breakpoint schemes from HCL files.
//
// A scheme file holds one or more scheme blocks:
//
//	scheme "epa" {
//	  max_index = 500
//
//	  pollutant "pm25" {
//	    row {
//	      low        = 0
//	      high       = 12.0
//	      index_low  = 0
//	      index_high = 50
//	    }
//	  }
//	}
//
// Rows keep their file order, which must be ascending; structural
// validation is the scheme's own.
package schemefile

import (
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"

	"airaware/core/breakpoints"
	"airaware/core/types"
	"airaware/internal/errors"
	"airaware/internal/logging"
)

// defaultMaxIndex applies when a scheme block has no max_index.
const defaultMaxIndex = 500

// fileSchema matches the top level of a scheme file.
var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "scheme", LabelNames: []string{"name"}},
	},
}

// schemeSchema matches the body of a scheme block.
var schemeSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "max_index"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "pollutant", LabelNames: []string{"code"}},
	},
}

// pollutantSchema matches the body of a pollutant block.
var pollutantSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "row"},
	},
}

// rowSchema matches the body of a row block.
var rowSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "low", Required: true},
		{Name: "high", Required: true},
		{Name: "index_low", Required: true},
		{Name: "index_high", Required: true},
	},
}

// Loader parses scheme files
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a scheme file loader
func NewLoader() *Loader {
	return &Loader{
		parser: hclparse.NewParser(),
	}
}

// Load reads and parses every scheme in a file.
func (l *Loader) Load(path string) ([]*breakpoints.Scheme, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeNotFound, err, "cannot read scheme file %s", path)
	}
	return l.LoadBytes(src, path)
}

// LoadBytes parses scheme blocks from raw HCL source. The filename is
// used in diagnostics only.
func (l *Loader) LoadBytes(src []byte, filename string) ([]*breakpoints.Scheme, error) {
	file, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diagError(filename, diags)
	}

	content, _, diags := file.Body.PartialContent(fileSchema)
	if diags.HasErrors() {
		return nil, diagError(filename, diags)
	}
	if len(content.Blocks) == 0 {
		return nil, errors.Newf(errors.TypeParsing, "no scheme blocks in %s", filename)
	}

	schemes := make([]*breakpoints.Scheme, 0, len(content.Blocks))
	seen := make(map[string]bool, len(content.Blocks))
	for _, block := range content.Blocks {
		scheme, err := l.parseScheme(block, filename)
		if err != nil {
			return nil, err
		}
		if seen[scheme.Name()] {
			return nil, errors.Newf(errors.TypeInvalidScheme, "%s: duplicate scheme %q", filename, scheme.Name())
		}
		seen[scheme.Name()] = true
		schemes = append(schemes, scheme)
	}
	return schemes, nil
}

// LoadAndRegister loads a scheme file and registers everything it
// defines with the default registry.
func (l *Loader) LoadAndRegister(path string) ([]*breakpoints.Scheme, error) {
	schemes, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	for _, s := range schemes {
		if err := breakpoints.Register(s); err != nil {
			return nil, errors.Wrapf(errors.TypeInvalidScheme, err, "cannot register scheme %s from %s", s.Name(), path)
		}
	}
	return schemes, nil
}

func (l *Loader) parseScheme(block *hcl.Block, filename string) (*breakpoints.Scheme, error) {
	name := block.Labels[0]

	content, _, diags := block.Body.PartialContent(schemeSchema)
	if diags.HasErrors() {
		return nil, diagError(filename, diags)
	}

	maxIndex := defaultMaxIndex
	if attr, ok := content.Attributes["max_index"]; ok {
		v, err := attrNumber(attr, filename)
		if err != nil {
			return nil, err
		}
		maxIndex = int(v)
	}

	rows := make(map[types.Pollutant][]breakpoints.Row, len(content.Blocks))
	for _, pb := range content.Blocks {
		code, _ := types.ParsePollutant(pb.Labels[0])
		if code == "" {
			return nil, errors.Newf(errors.TypeParsing, "%s:%d: empty pollutant code",
				filename, pb.DefRange.Start.Line)
		}
		if _, dup := rows[code]; dup {
			return nil, errors.Newf(errors.TypeInvalidScheme, "%s: scheme %q: duplicate pollutant %s",
				filename, name, code)
		}

		table, err := l.parseRows(pb, filename)
		if err != nil {
			return nil, err
		}
		rows[code] = table
	}

	scheme, err := breakpoints.NewScheme(name, maxIndex, rows)
	if err != nil {
		return nil, err
	}

	logging.Debugf("loaded scheme %s from %s (%d pollutants)", name, filename, len(rows))
	return scheme, nil
}

func (l *Loader) parseRows(block *hcl.Block, filename string) ([]breakpoints.Row, error) {
	content, _, diags := block.Body.PartialContent(pollutantSchema)
	if diags.HasErrors() {
		return nil, diagError(filename, diags)
	}

	table := make([]breakpoints.Row, 0, len(content.Blocks))
	for _, rb := range content.Blocks {
		rowContent, _, diags := rb.Body.PartialContent(rowSchema)
		if diags.HasErrors() {
			return nil, diagError(filename, diags)
		}

		var row breakpoints.Row
		for _, f := range []struct {
			name string
			dst  *float64
		}{
			{"low", &row.ConcLow},
			{"high", &row.ConcHigh},
			{"index_low", &row.IndexLow},
			{"index_high", &row.IndexHigh},
		} {
			attr, ok := rowContent.Attributes[f.name]
			if !ok {
				return nil, errors.Newf(errors.TypeParsing, "%s:%d: row is missing %s",
					filename, rb.DefRange.Start.Line, f.name)
			}
			v, err := attrNumber(attr, filename)
			if err != nil {
				return nil, err
			}
			*f.dst = v
		}
		table = append(table, row)
	}
	return table, nil
}
