package envfile

import (
	"fmt"
	"os"
	"strings"
	"unicode"
)

// Separator precedes the block of appended keys so tool-written entries
// stay visually apart from hand-edited content.
const Separator = "# --- added by envfill ---"

// Write patches path with entries: every existing line whose key appears
// in entries is rewritten in place, keys the file never declares are
// appended under a separator comment. All untouched lines keep their exact
// bytes, including comments, blank runs, and unusual spacing. The file is
// rewritten in a single operation and always ends with exactly one
// newline. It returns the number of distinct keys written.
func Write(path string, entries []Entry) (int, error) {
	var lines []string
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		lines = splitLines(string(data))
	case os.IsNotExist(err):
		// First write creates the file.
	default:
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	values := make(map[string]string, len(entries))
	order := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := values[e.Key]; ok {
			continue
		}
		values[e.Key] = e.Value
		order = append(order, e.Key)
	}

	// Update in place. A key declared on several lines gets every
	// declaration rewritten, so the file never disagrees with itself.
	updated := make(map[string]struct{})
	for i, line := range lines {
		key, _, ok := parseLine(line)
		if !ok {
			continue
		}
		value, wanted := values[key]
		if !wanted {
			continue
		}
		lines[i] = key + "=" + FormatValue(value)
		updated[key] = struct{}{}
	}

	var appended []string
	for _, key := range order {
		if _, ok := updated[key]; ok {
			continue
		}
		appended = append(appended, key)
	}

	if len(appended) > 0 {
		if len(lines) > 0 {
			if strings.TrimSpace(lines[len(lines)-1]) != "" {
				lines = append(lines, "")
			}
			lines = append(lines, Separator)
		}
		for _, key := range appended {
			lines = append(lines, key+"="+FormatValue(values[key]))
		}
	}

	if err := writeLines(path, lines); err != nil {
		return 0, err
	}
	return len(updated) + len(appended), nil
}

// splitLines breaks file content into lines without treating the trailing
// newline as an extra empty line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// writeLines joins lines and lands them on disk in one write, normalizing
// the tail to exactly one newline.
func writeLines(path string, lines []string) error {
	content := strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// FormatValue renders a value for a KEY=VALUE line. Empty values become an
// explicit pair of double quotes so "set but empty" survives a re-read.
// Values carrying whitespace, quote or comment characters, '=', '!', or
// backslashes are double-quoted with backslash escapes; everything else is
// written byte for byte.
func FormatValue(v string) string {
	if v == "" {
		return `""`
	}
	if !needsQuoting(v) {
		return v
	}

	var b strings.Builder
	b.Grow(len(v) + 2)
	b.WriteByte('"')
	for i := 0; i < len(v); i++ {
		switch c := v[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func needsQuoting(v string) bool {
	for _, r := range v {
		switch r {
		case '#', '=', '\\', '\'', '"', '`', '!':
			return true
		}
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}
