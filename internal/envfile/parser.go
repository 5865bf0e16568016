package envfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/soldal/envfill/internal/patterns"
)

// ConventionalNames are the file names, in precedence order, that mark a
// directory as carrying environment configuration. Shallow scans and
// folder discovery both consult this list.
var ConventionalNames = []string{
	".env",
	".env.local",
	".env.development",
	".env.production",
	".env.test",
	".env.staging",
	".env.example",
	".env.sample",
	".env.template",
	"env.example",
}

// Parse reads a KEY=VALUE file into an ordered document. A missing file
// yields an empty document, not an error: "no configuration yet" is a
// normal starting state.
func Parse(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDocument(), nil
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	doc, err := parseReader(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return doc, nil
}

// ParseText parses configuration-file-formatted text, such as a block
// pasted into a bulk prompt.
func ParseText(text string) *Document {
	// A strings.Reader never fails mid-scan.
	doc, _ := parseReader(strings.NewReader(text))
	return doc
}

func parseReader(r io.Reader) (*Document, error) {
	doc := NewDocument()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key, value, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		doc.Set(key, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

// parseLine applies the line grammar: blank lines and # comments carry no
// entry, everything else splits on the first '='. Lines without '=' or
// with an empty key are skipped rather than rejected, so prose and shell
// fragments inside a file never abort a read.
func parseLine(raw string) (key, value string, ok bool) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}

	k, v, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}

	key = strings.TrimSpace(k)
	if key == "" {
		return "", "", false
	}
	return key, unquote(strings.TrimSpace(v)), true
}

// unquote strips one layer of matching surrounding quotes. Double-quoted
// values additionally reverse the writer's escapes; single-quoted values
// keep their inner bytes untouched. Unquoted and mismatched values pass
// through as-is.
func unquote(v string) string {
	if len(v) < 2 {
		return v
	}
	last := len(v) - 1
	switch {
	case v[0] == '"' && v[last] == '"':
		return unescape(v[1:last])
	case v[0] == '\'' && v[last] == '\'':
		return v[1:last]
	}
	return v
}

// unescape reverses the three escapes the writer emits inside double
// quotes. Unknown backslash sequences stay literal.
func unescape(v string) string {
	if !strings.Contains(v, `\`) {
		return v
	}
	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		if v[i] == '\\' && i+1 < len(v) {
			switch v[i+1] {
			case '\\':
				b.WriteByte('\\')
				i++
				continue
			case '"':
				b.WriteByte('"')
				i++
				continue
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			}
		}
		b.WriteByte(v[i])
	}
	return b.String()
}

// Keys extracts only the keys declared in a configuration file, keeping
// those that look like project variable names. Shallow scans treat these
// files as the source of truth for "declared somewhere", so values are
// discarded and the usual name filter applies.
func Keys(path string) ([]string, error) {
	doc, err := Parse(path)
	if err != nil {
		return nil, err
	}

	var keys []string
	for _, key := range doc.Keys() {
		if patterns.Accept(key) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}
