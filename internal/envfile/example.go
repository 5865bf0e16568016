package envfile

import (
	"fmt"
	"os"
	"strings"
)

// exampleHeader tops a freshly created example file.
var exampleHeader = []string{
	"# Environment variables used by this project.",
	"# Copy this file to .env and fill in the values.",
}

// SyncExample mirrors keys into the example file at path as bare KEY=
// lines, appending only keys the file does not already declare. Values
// never cross over: the example documents which variables exist, not what
// they hold. When nothing is missing the file is left untouched. It
// returns the number of keys appended.
func SyncExample(path string, keys []string) (int, error) {
	var lines []string
	fresh := false
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		lines = splitLines(string(data))
	case os.IsNotExist(err):
		fresh = true
	default:
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	present := make(map[string]struct{})
	for _, line := range lines {
		if key, _, ok := parseLine(line); ok {
			present[key] = struct{}{}
		}
	}

	var missing []string
	for _, key := range keys {
		if _, ok := present[key]; ok {
			continue
		}
		present[key] = struct{}{}
		missing = append(missing, key)
	}
	if len(missing) == 0 {
		return 0, nil
	}

	switch {
	case fresh:
		lines = append(lines, exampleHeader...)
	case len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) != "":
		lines = append(lines, "")
	}
	for _, key := range missing {
		lines = append(lines, key+"=")
	}

	if err := writeLines(path, lines); err != nil {
		return 0, err
	}
	return len(missing), nil
}
