// Package reconcile compares scan-discovered variables against an
// existing configuration and derives coverage.
package reconcile

import (
	"strings"

	"github.com/soldal/envfill/internal/envfile"
	"github.com/soldal/envfill/internal/scan"
)

// Summary reports how much of a discovered variable set the configuration
// on disk already satisfies.
type Summary struct {
	Total      int
	AlreadySet int
	Missing    int
}

// Coverage is the satisfied share as a percentage. An empty variable set
// counts as fully covered.
func (s Summary) Coverage() float64 {
	if s.Total == 0 {
		return 100
	}
	return float64(s.AlreadySet) / float64(s.Total) * 100
}

// isSet reports whether doc satisfies key: the key must be declared and
// its value non-empty after trimming. A declared-but-blank key still needs
// a value, so it counts as missing.
func isSet(doc *envfile.Document, key string) bool {
	value, ok := doc.Get(key)
	return ok && strings.TrimSpace(value) != ""
}

// Summarize counts result's names against doc. It is pure; callers rerun
// it after each accepted value to keep coverage live.
func Summarize(result scan.Result, doc *envfile.Document) Summary {
	s := Summary{Total: len(result)}
	for name := range result {
		if isSet(doc, name) {
			s.AlreadySet++
		}
	}
	s.Missing = s.Total - s.AlreadySet
	return s
}

// MissingKeys returns the discovered names doc does not satisfy, sorted
// for a stable session order.
func MissingKeys(result scan.Result, doc *envfile.Document) []string {
	var keys []string
	for _, name := range result.Names() {
		if !isSet(doc, name) {
			keys = append(keys, name)
		}
	}
	return keys
}

// SetKeys returns the discovered names doc already satisfies, sorted.
func SetKeys(result scan.Result, doc *envfile.Document) []string {
	var keys []string
	for _, name := range result.Names() {
		if isSet(doc, name) {
			keys = append(keys, name)
		}
	}
	return keys
}
