// Package patterns holds the matcher catalog that recognizes environment
// variable references in source text, plus the filter that suppresses
// false positives.
package patterns

import "regexp"

// Matcher recognizes one syntactic convention for referencing an
// environment variable. Matchers are independent and additive: each one
// extracts candidates on its own and the scanner unions the results, so a
// single line may contribute matches from several conventions.
type Matcher struct {
	Convention string // e.g. "call-access"
	re         *regexp.Regexp
}

// Extract returns every candidate name the matcher finds in text.
// Candidates are raw: callers are expected to run them through Accept.
func (m Matcher) Extract(text string) []string {
	var names []string
	for _, groups := range m.re.FindAllStringSubmatch(text, -1) {
		for _, name := range groups[1:] {
			if name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

// The catalog is ordered and fixed. New conventions are added by appending
// a matcher, never by widening an existing expression. Every expression
// captures only uppercase snake-case identifiers so arbitrary property
// access does not leak in.
var catalog = []Matcher{
	{
		// process.env.NAME, import.meta.env.NAME
		Convention: "member-access",
		re:         regexp.MustCompile(`(?:process\.env|import\.meta\.env)\.([A-Z][A-Z0-9_]+)\b`),
	},
	{
		// process.env["NAME"], os.environ['NAME'], ENV["NAME"]
		Convention: "bracket-access",
		re:         regexp.MustCompile(`(?:process\.env|os\.environ|ENV)\[["']([A-Z][A-Z0-9_]+)["']\]`),
	},
	{
		// os.getenv("NAME"), os.environ.get("NAME"), os.Getenv("NAME"),
		// System.getenv("NAME"), std::env::var("NAME"), ENV.fetch("NAME"),
		// Deno.env.get("NAME") and plain getenv("NAME")
		Convention: "call-access",
		re:         regexp.MustCompile(`\b(?:getenv|os\.environ\.get|os\.Getenv|os\.LookupEnv|(?:std::)?env::var(?:_os)?|ENV\.fetch|Deno\.env\.get)\s*\(\s*["']([A-Z][A-Z0-9_]+)["']`),
	},
	{
		// Build-tool prefixes that mark variables for client-side exposure;
		// these appear as bare identifiers outside any accessor syntax.
		Convention: "public-prefix",
		re:         regexp.MustCompile(`\b((?:NEXT_PUBLIC|VITE|REACT_APP|EXPO_PUBLIC|NUXT_PUBLIC)_[A-Z0-9_]+)\b`),
	},
	{
		// ${NAME} and $NAME in shell scripts, compose files and templates
		Convention: "interpolation",
		re:         regexp.MustCompile(`\$(?:\{([A-Z][A-Z0-9_]+)\}|([A-Z][A-Z0-9_]+)\b)`),
	},
}

// Catalog returns the ordered matcher list applied during deep scans.
func Catalog() []Matcher {
	return catalog
}
