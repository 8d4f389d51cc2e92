package smacread

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// RunResultCodes maps the textual run result of a runs_and_results file to
// the numeric code stored in its place in the table.  Matching is by
// substring, checking TIMEOUT, then UNSAT, then SAT (UNSAT contains SAT, so
// the order matters); any other result (ABORT, CRASHED, ...) gets Other.
type RunResultCodes struct {
	Timeout float64 `yaml:"timeout" default:"0"`
	Unsat   float64 `yaml:"unsat" default:"1"`
	Sat     float64 `yaml:"sat" default:"2"`
	Other   float64 `yaml:"other" default:"-1"`
}

// DefaultRunResultCodes is the mapping SMAC's own tooling uses.
var DefaultRunResultCodes = RunResultCodes{Timeout: 0, Unsat: 1, Sat: 2, Other: -1}

// Code returns the numeric code for a run result literal.
func (c RunResultCodes) Code(result string) float64 {
	switch {
	case strings.Contains(result, "TIMEOUT"):
		return c.Timeout
	case strings.Contains(result, "UNSAT"):
		return c.Unsat
	case strings.Contains(result, "SAT"):
		return c.Sat
	default:
		return c.Other
	}
}

// Positions of the relevant columns in a runs_and_results file.  The first
// column (run number) and the empty 'algorithm run data' column are dropped
// from the output.
const (
	runResultColumn  = 13
	lastKeptColumn   = 15
	minRunLogColumns = 16
	numRunLogColumns = 14
)

// ReadRunsAndResults converts a runs_and_results file into a numeric table,
// mapping the run result column through DefaultRunResultCodes.  The header
// row is skipped; every output row holds columns 1 to 13 of the input
// followed by column 15.
func ReadRunsAndResults(path string) ([][]float64, error) {
	return DefaultRunResultCodes.ReadRunsAndResults(path)
}

// ReadRunsAndResults is like the package-level function but uses c to map
// the run result column.
func (c RunResultCodes) ReadRunsAndResults(path string) ([][]float64, error) {
	in, err := OpenArtifact(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	rd := csv.NewReader(in)
	rd.FieldsPerRecord = -1
	rd.TrimLeadingSpace = true

	table := [][]float64{}
	for lineNo := 1; ; lineNo++ {
		record, err := rd.Read()
		if err == io.EOF {
			return table, nil
		}
		if err != nil {
			return nil, decorate(err, path)
		}
		if lineNo == 1 {
			// Header row
			continue
		}
		if len(record) < minRunLogColumns {
			return nil, fmt.Errorf("%s line %d: expected at least %d columns, got %d",
				path, lineNo, minRunLogColumns, len(record))
		}
		row := make([]float64, 0, numRunLogColumns)
		for i := 1; i <= runResultColumn; i++ {
			if i == runResultColumn {
				row = append(row, c.Code(record[i]))
				continue
			}
			x, err := parseRunLogField(record[i])
			if err != nil {
				return nil, fmt.Errorf("%s line %d column %d: %w", path, lineNo, i, err)
			}
			row = append(row, x)
		}
		x, err := parseRunLogField(record[lastKeptColumn])
		if err != nil {
			return nil, fmt.Errorf("%s line %d column %d: %w", path, lineNo, lastKeptColumn, err)
		}
		row = append(row, x)
		table = append(table, row)
	}
}

func parseRunLogField(field string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(field), 64)
}
