package smacread

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ReadValidationObjectiveMatrix reads a validationObjectiveMatrix file into
// a map from instance identifier to the objective value of each validated
// configuration.  The number of configurations is taken from the header
// line; every data line must match the positional pattern
//
//	"id_<n>","<seed>","<objective>",...
//
// with one objective column per configuration.
func ReadValidationObjectiveMatrix(path string) (map[int][]float64, error) {
	in, err := OpenArtifact(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	sc := lineScanner(in)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, decorate(err, path)
		}
		return nil, fmt.Errorf("%s: missing header line", path)
	}
	numConfigs := len(strings.Split(sc.Text(), ",")) - 2
	if numConfigs < 1 {
		return nil, fmt.Errorf("%s: header has no configuration columns", path)
	}

	pieces := []string{`"id_(\d+)"`, `"(\d+)"`}
	for i := 0; i < numConfigs; i++ {
		pieces = append(pieces, `"([0-9.]*)"`)
	}
	linePattern, err := regexp.Compile(`^` + strings.Join(pieces, `\w?,\w?`))
	if err != nil {
		return nil, decorate(err, path)
	}

	values := make(map[int][]float64)
	for lineNo := 2; sc.Scan(); lineNo++ {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := linePattern.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("%s line %d: does not match the objective matrix format", path, lineNo)
		}
		id, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, lineNo, err)
		}
		scores := make([]float64, numConfigs)
		for i := range scores {
			scores[i], err = strconv.ParseFloat(m[3+i], 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d configuration %d: %w", path, lineNo, i+1, err)
			}
		}
		values[id] = scores
	}
	if err := sc.Err(); err != nil {
		return nil, decorate(err, path)
	}
	return values, nil
}
