package smacread

import (
	"fmt"
	"strings"
)

// ReadParamStrings reads a paramstrings file.  Every line holds a full
// configuration prefixed by a run identifier:
//
//	12: param1='value1', param2='value2', ...
//
// The prefix and the single quotes are stripped and one name to value map is
// returned per line.  Values are kept as strings: without the parameter
// space definition, converting them to any other type would be guessing.
func ReadParamStrings(path string) ([]map[string]string, error) {
	in, err := OpenArtifact(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	configs := []map[string]string{}
	sc := lineScanner(in)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		// Drop the run identifier prefix; Index returning -1 keeps the
		// whole line.
		line = line[strings.Index(line, ":")+1:]
		line = strings.ReplaceAll(line, "'", "")
		params := make(map[string]string)
		for _, pair := range strings.Split(line, ",") {
			pair = strings.TrimSpace(pair)
			name, value, ok := strings.Cut(pair, "=")
			if !ok {
				return nil, fmt.Errorf("%s line %d: expected 'name=value', got %q", path, lineNo, pair)
			}
			params[name] = value
		}
		configs = append(configs, params)
	}
	if err := sc.Err(); err != nil {
		return nil, decorate(err, path)
	}
	return configs, nil
}

// ReadValidationCallStrings reads a validationCallStrings file.  After a
// header line, each line holds a quoted call string in its second comma
// field:
//
//	"-param1 'value1' -param2 'value2' ..."
//
// One name to value map is returned per line, with flag dashes and value
// quotes stripped.
func ReadValidationCallStrings(path string) ([]map[string]string, error) {
	in, err := OpenArtifact(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	configs := []map[string]string{}
	sc := lineScanner(in)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := sc.Text()
		if lineNo == 1 || strings.TrimSpace(line) == "" {
			// Header line
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			return nil, fmt.Errorf("%s line %d: expected at least 2 columns, got %d", path, lineNo, len(parts))
		}
		callString := strings.Trim(strings.TrimSpace(parts[1]), `"`)
		tokens := strings.Split(callString, " ")
		if len(tokens)%2 != 0 {
			return nil, fmt.Errorf("%s line %d: flag without a value in call string", path, lineNo)
		}
		params := make(map[string]string)
		for i := 0; i < len(tokens); i += 2 {
			name := strings.TrimLeft(tokens[i], "-")
			params[name] = strings.Trim(tokens[i+1], "'")
		}
		configs = append(configs, params)
	}
	if err := sc.Err(); err != nil {
		return nil, decorate(err, path)
	}
	return configs, nil
}
