package records

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/spektr-org/wordgroup/grouping"
)

// ============================================================================
// RECORDS LOADER: Parses JSON or CSV data into []grouping.Record
// ============================================================================
// Consumer reads the data from wherever it lives (file, stdin, HTTP).
// These helpers convert the raw bytes into schemaless Records for GroupBy.
// ============================================================================

// ErrUnknownFormat is returned for inputs that are neither JSON nor CSV.
var ErrUnknownFormat = errors.New("records: unknown input format")

// ParseJSON parses a JSON array of objects.
func ParseJSON(data []byte) ([]grouping.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON records: %w", err)
	}

	records := make([]grouping.Record, 0, len(raw))
	for _, r := range raw {
		if r == nil {
			r = map[string]any{}
		}
		records = append(records, grouping.Record(r))
	}
	return records, nil
}

// ParseCSV parses CSV with a header row. Header cells name the fields.
// Finite numeric cells become float64, so "Inf" and "NaN" stay text. Empty
// cells are left out of the record, and malformed rows are skipped.
func ParseCSV(data []byte) ([]grouping.Record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	keys := make([]string, len(headers))
	for i, h := range headers {
		keys[i] = strings.TrimSpace(h)
	}

	var records []grouping.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}

		rec := make(grouping.Record, len(keys))
		for i, val := range row {
			if i >= len(keys) {
				break
			}
			val = strings.TrimSpace(val)
			if val == "" || keys[i] == "" {
				continue
			}
			if f, err := strconv.ParseFloat(val, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
				rec[keys[i]] = f
			} else {
				rec[keys[i]] = val
			}
		}
		records = append(records, rec)
	}

	return records, nil
}

// Parse picks a parser by format: "json", "csv", or "" to sniff the data.
func Parse(data []byte, format string) ([]grouping.Record, error) {
	switch strings.ToLower(format) {
	case "json":
		return ParseJSON(data)
	case "csv":
		return ParseCSV(data)
	case "":
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			return ParseJSON(data)
		}
		return ParseCSV(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Read parses all of r, sniffing the format.
func Read(r io.Reader) ([]grouping.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return Parse(data, "")
}

// Load reads records from path. A .json or .csv extension picks the format,
// anything else is sniffed. "-" reads stdin.
func Load(path string) ([]grouping.Record, error) {
	if path == "-" {
		return Read(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format != "json" && format != "csv" {
		format = ""
	}
	return Parse(data, format)
}
