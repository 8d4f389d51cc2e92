package smacread

import (
	"fmt"
	"strconv"
	"strings"
)

// ReadInstances reads the instance names from an instance file.  Each
// returned entry holds the instance name followed by any additional tokens
// on the same line.
func ReadInstances(path string) ([][]string, error) {
	in, err := OpenArtifact(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	instances := [][]string{}
	sc := lineScanner(in)
	for sc.Scan() {
		instances = append(instances, strings.Fields(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, decorate(err, path)
	}
	return instances, nil
}

// ReadInstanceFeatures reads an instance feature file.  The header line
// names the features; every following line holds an instance name and its
// numeric feature vector, comma separated.
func ReadInstanceFeatures(path string) ([]string, map[string][]float64, error) {
	in, err := OpenArtifact(path)
	if err != nil {
		return nil, nil, err
	}
	defer in.Close()

	sc := lineScanner(in)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, nil, decorate(err, path)
		}
		return nil, nil, fmt.Errorf("%s: missing header line", path)
	}
	header := strings.Split(sc.Text(), ",")
	names := make([]string, 0, len(header)-1)
	for _, name := range header[1:] {
		names = append(names, strings.TrimSpace(name))
	}

	features := make(map[string][]float64)
	for lineNo := 2; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		cols := strings.Split(line, ",")
		vector := make([]float64, 0, len(cols)-1)
		for i, col := range cols[1:] {
			x, err := strconv.ParseFloat(strings.TrimSpace(col), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%s line %d feature %d: %w", path, lineNo, i+1, err)
			}
			vector = append(vector, x)
		}
		features[strings.TrimSpace(cols[0])] = vector
	}
	if err := sc.Err(); err != nil {
		return nil, nil, decorate(err, path)
	}
	return names, features, nil
}
