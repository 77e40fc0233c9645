// Package datafile reads pollutant readings and index histories from
// local JSON files, and writes forecast output. History files may be a
// JSON array or JSONL, plain or gzipped.
package datafile

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"airaware/core/types"
	"airaware/internal/errors"
	"airaware/internal/logging"
)

// maxLineSize bounds one JSONL record.
const maxLineSize = 1024 * 1024

// ReadingsFile is a decoded readings document.
type ReadingsFile struct {
	// Location is an optional place name carried by the file
	Location string

	// Readings are the decoded measurements
	Readings []types.PollutantReading
}

// readingDoc is one element of the array-shaped readings file.
type readingDoc struct {
	Pollutant     string  `json:"pollutant"`
	Concentration float64 `json:"concentration"`
	Unit          string  `json:"unit"`
}

// pointDoc is one history record. Both the timestamp/index and the
// date/aqi spellings are accepted.
type pointDoc struct {
	Timestamp string   `json:"timestamp"`
	Date      string   `json:"date"`
	Index     *float64 `json:"index"`
	Aqi       *float64 `json:"aqi"`
}

// ReadReadings decodes pollutant readings from a JSON file. Accepted
// shapes: an array of reading objects, an object mapping pollutant
// codes to concentrations (optionally wrapped as {"location": ...,
// "pollutants": {...}}), or a simulated dataset envelope carrying a
// "readings" array.
func ReadReadings(path string) (*ReadingsFile, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Parsing(fmt.Sprintf("failed reading %s", path), err)
	}
	return parseReadings(data, path)
}

func parseReadings(data []byte, filename string) (*ReadingsFile, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.Newf(errors.TypeParsing, "%s is empty", filename)
	}

	switch trimmed[0] {
	case '[':
		var docs []readingDoc
		if err := json.Unmarshal(trimmed, &docs); err != nil {
			return nil, errors.Parsing(fmt.Sprintf("cannot decode readings from %s", filename), err)
		}
		readings, err := readingsFromDocs(docs, filename)
		if err != nil {
			return nil, err
		}
		return &ReadingsFile{Readings: readings}, nil

	case '{':
		var envelope struct {
			Location   string             `json:"location"`
			Pollutants map[string]float64 `json:"pollutants"`
			Readings   []readingDoc       `json:"readings"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, errors.Parsing(fmt.Sprintf("cannot decode readings from %s", filename), err)
		}

		// Dataset envelope, as written by the simulate command.
		if len(envelope.Readings) > 0 {
			readings, err := readingsFromDocs(envelope.Readings, filename)
			if err != nil {
				return nil, err
			}
			return &ReadingsFile{Location: envelope.Location, Readings: readings}, nil
		}

		values := envelope.Pollutants
		if len(values) == 0 && envelope.Location == "" {
			// Plain code-to-concentration map.
			if err := json.Unmarshal(trimmed, &values); err != nil {
				return nil, errors.Parsing(fmt.Sprintf("cannot decode readings from %s", filename), err)
			}
		}
		return &ReadingsFile{
			Location: envelope.Location,
			Readings: readingsFromMap(values),
		}, nil

	default:
		return nil, errors.Newf(errors.TypeParsing, "%s: expected a JSON object or array", filename)
	}
}

func readingsFromDocs(docs []readingDoc, filename string) ([]types.PollutantReading, error) {
	readings := make([]types.PollutantReading, 0, len(docs))
	for i, d := range docs {
		if d.Pollutant == "" {
			return nil, errors.Newf(errors.TypeParsing, "%s: reading %d has no pollutant", filename, i)
		}
		code, _ := types.ParsePollutant(d.Pollutant)
		unit := d.Unit
		if unit == "" {
			unit = code.Info().Unit
		}
		readings = append(readings, types.PollutantReading{
			Pollutant:     code,
			Concentration: d.Concentration,
			Unit:          unit,
		})
	}
	return readings, nil
}

// readingsFromMap flattens a code-to-concentration map into readings in
// a stable order: canonical species first, anything else alphabetical.
func readingsFromMap(values map[string]float64) []types.PollutantReading {
	type entry struct {
		code types.Pollutant
		val  float64
	}
	entries := make([]entry, 0, len(values))
	for code, val := range values {
		canon, _ := types.ParsePollutant(code)
		entries = append(entries, entry{canon, val})
	}

	rank := make(map[types.Pollutant]int, len(types.AllPollutants()))
	for i, p := range types.AllPollutants() {
		rank[p] = i
	}
	sort.Slice(entries, func(i, j int) bool {
		ri, iKnown := rank[entries[i].code]
		rj, jKnown := rank[entries[j].code]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return entries[i].code < entries[j].code
		}
	})

	out := make([]types.PollutantReading, len(entries))
	for i, e := range entries {
		out[i] = types.PollutantReading{
			Pollutant:     e.code,
			Concentration: e.val,
			Unit:          e.code.Info().Unit,
		}
	}
	return out
}

// ReadHistory decodes an index series from a JSON array, a JSONL file
// or a dataset envelope, and returns it sorted ascending by timestamp.
func ReadHistory(path string) ([]types.HistoricalPoint, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReaderSize(f, maxLineSize)
	first, err := sniff(br)
	if err != nil {
		return nil, errors.Newf(errors.TypeParsing, "%s is empty", path)
	}

	var points []types.HistoricalPoint
	if first == '[' {
		points, err = readHistoryArray(br, path)
	} else {
		points, err = readHistoryObject(br, path)
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})
	logging.Debugf("read %d history points from %s", len(points), path)
	return points, nil
}

func readHistoryArray(r io.Reader, path string) ([]types.HistoricalPoint, error) {
	var docs []pointDoc
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return nil, errors.Parsing(fmt.Sprintf("cannot decode history from %s", path), err)
	}

	points := make([]types.HistoricalPoint, 0, len(docs))
	for i, d := range docs {
		p, err := d.point()
		if err != nil {
			return nil, errors.Wrapf(errors.TypeParsing, err, "%s: point %d", path, i)
		}
		points = append(points, p)
	}
	return points, nil
}

// readHistoryObject handles files whose first byte opens an object:
// either a JSONL stream of point records, or a dataset envelope whose
// "history" array carries them. A first line that is not complete JSON
// on its own means the document spans lines and must be an envelope.
func readHistoryObject(br *bufio.Reader, path string) ([]types.HistoricalPoint, error) {
	line, err := br.ReadBytes('\n')
	if err != nil && err != io.EOF {
		return nil, errors.Parsing(fmt.Sprintf("failed reading %s", path), err)
	}

	if trimmed := bytes.TrimSpace(line); json.Valid(trimmed) {
		if points, ok, err := historyEnvelope(trimmed, path); ok {
			return points, err
		}
		return readHistoryLines(io.MultiReader(bytes.NewReader(line), br), path)
	}

	rest, err := io.ReadAll(br)
	if err != nil {
		return nil, errors.Parsing(fmt.Sprintf("failed reading %s", path), err)
	}
	points, ok, err := historyEnvelope(append(line, rest...), path)
	if !ok {
		return nil, errors.Newf(errors.TypeParsing, "%s: expected history records or a dataset envelope", path)
	}
	return points, err
}

// historyEnvelope decodes a {"history": [...]} document. ok reports
// whether the document was such an envelope at all.
func historyEnvelope(doc []byte, path string) ([]types.HistoricalPoint, bool, error) {
	var envelope struct {
		History []pointDoc `json:"history"`
	}
	if err := json.Unmarshal(doc, &envelope); err != nil || len(envelope.History) == 0 {
		return nil, false, nil
	}

	points := make([]types.HistoricalPoint, 0, len(envelope.History))
	for i, d := range envelope.History {
		p, err := d.point()
		if err != nil {
			return nil, true, errors.Wrapf(errors.TypeParsing, err, "%s: point %d", path, i)
		}
		points = append(points, p)
	}
	return points, true, nil
}

// readHistoryLines consumes one JSON object per line, so large exports
// stream without loading the whole file.
func readHistoryLines(r io.Reader, path string) ([]types.HistoricalPoint, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, maxLineSize), maxLineSize)

	var points []types.HistoricalPoint
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		var doc pointDoc
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, errors.Wrapf(errors.TypeParsing, err, "%s:%d: bad history record", path, line)
		}
		p, err := doc.point()
		if err != nil {
			return nil, errors.Wrapf(errors.TypeParsing, err, "%s:%d", path, line)
		}
		points = append(points, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Parsing(fmt.Sprintf("failed reading %s", path), err)
	}
	return points, nil
}

func (d pointDoc) point() (types.HistoricalPoint, error) {
	raw := d.Timestamp
	if raw == "" {
		raw = d.Date
	}
	if raw == "" {
		return types.HistoricalPoint{}, errors.New(errors.TypeParsing, "missing timestamp")
	}

	ts, err := parseTimestamp(raw)
	if err != nil {
		return types.HistoricalPoint{}, err
	}

	value := d.Index
	if value == nil {
		value = d.Aqi
	}
	if value == nil {
		return types.HistoricalPoint{}, errors.New(errors.TypeParsing, "missing index value")
	}
	return types.HistoricalPoint{Timestamp: ts, Index: *value}, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, errors.Newf(errors.TypeParsing, "unrecognized timestamp %q", raw)
}

// sniff returns the first non-whitespace byte without consuming it.
func sniff(br *bufio.Reader) (byte, error) {
	chunk, err := br.Peek(512)
	for _, b := range chunk {
		switch b {
		case ' ', '\t', '\r', '\n':
		default:
			return b, nil
		}
	}
	if err == nil || err == io.EOF {
		return 0, io.EOF
	}
	return 0, err
}

// fileReader closes the gzip layer and the file beneath it.
type fileReader struct {
	io.Reader
	closers []io.Closer
}

func (r *fileReader) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeNotFound, err, "cannot open %s", path)
	}
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.Parsing(fmt.Sprintf("%s is not a valid gzip file", path), err)
		}
		return &fileReader{Reader: gz, closers: []io.Closer{gz, f}}, nil
	}
	return f, nil
}
