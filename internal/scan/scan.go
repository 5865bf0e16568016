// Package scan walks a project tree and discovers which environment
// variables its files reference.
package scan

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/soldal/envfill/internal/envfile"
	"github.com/soldal/envfill/internal/logging"
	"github.com/soldal/envfill/internal/patterns"
)

// Mode selects what a scan treats as evidence of a variable.
type Mode int

const (
	// Deep runs the matcher catalog over source and template files.
	Deep Mode = iota
	// Shallow reads only the keys declared in conventional env files at
	// the root, without touching source code.
	Shallow
)

// maxDepth bounds directory recursion so degenerate trees cannot wedge a
// scan.
const maxDepth = 32

// defaultExcludeDirs are directory names skipped wholesale: dependency
// trees, build output, VCS metadata, and editor state.
var defaultExcludeDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	".git":         true,
	".hg":          true,
	".svn":         true,
	"build":        true,
	"dist":         true,
	"bin":          true,
	"out":          true,
	"target":       true,
	".next":        true,
	".nuxt":        true,
	".cache":       true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
	".idea":        true,
	".vscode":      true,
	"coverage":     true,
	".terraform":   true,
}

// allowedExts are the file extensions deep scans read. Everything else is
// presumed binary or irrelevant.
var allowedExts = map[string]bool{
	".js": true, ".jsx": true, ".mjs": true, ".cjs": true,
	".ts": true, ".tsx": true,
	".py": true, ".rb": true, ".go": true, ".rs": true,
	".java": true, ".kt": true, ".php": true, ".cs": true,
	".sh": true, ".bash": true, ".zsh": true,
	".yml": true, ".yaml": true, ".json": true, ".toml": true,
	".ini": true, ".cfg": true, ".conf": true, ".tf": true,
	".vue": true, ".svelte": true, ".html": true,
	".md": true, ".txt": true,
}

// wellKnownNames are extensionless files worth reading.
var wellKnownNames = map[string]bool{
	"Dockerfile":  true,
	"Makefile":    true,
	"Procfile":    true,
	"Jenkinsfile": true,
	"Vagrantfile": true,
}

// IsExcludedDirName reports whether name is on the fixed directory
// deny-list shared by deep scanning and folder discovery.
func IsExcludedDirName(name string) bool {
	return defaultExcludeDirs[name]
}

// Scanner discovers environment variable references under a root
// directory.
type Scanner struct {
	excludeDirs  map[string]bool
	excludePaths []string // root-relative glob patterns
	includeGlobs []string
	excludeGlobs []string
	ignoreVars   map[string]bool
}

// NewScanner returns a scanner with the default exclusions.
func NewScanner() *Scanner {
	excludeDirs := make(map[string]bool, len(defaultExcludeDirs))
	for name := range defaultExcludeDirs {
		excludeDirs[name] = true
	}
	return &Scanner{
		excludeDirs: excludeDirs,
		ignoreVars:  make(map[string]bool),
	}
}

// AddExcludeDirs widens the directory exclusions. Bare names exclude any
// directory with that name; entries containing a separator are treated as
// root-relative glob patterns.
func (s *Scanner) AddExcludeDirs(dirs []string) {
	for _, dir := range dirs {
		if strings.ContainsAny(dir, `/\`) {
			s.excludePaths = append(s.excludePaths, filepath.ToSlash(dir))
		} else {
			s.excludeDirs[dir] = true
		}
	}
}

// AddIgnoredVars suppresses names from every report, on top of the
// built-in deny-list.
func (s *Scanner) AddIgnoredVars(names []string) {
	for _, name := range names {
		s.ignoreVars[name] = true
	}
}

// SetIncludeGlobs restricts deep scans to files matching at least one
// pattern. Include patterns win over exclude patterns.
func (s *Scanner) SetIncludeGlobs(globs []string) {
	s.includeGlobs = globs
}

// SetExcludeGlobs drops files matching any pattern from deep scans.
func (s *Scanner) SetExcludeGlobs(globs []string) {
	s.excludeGlobs = globs
}

// Scan discovers variable references under root. An unreadable root is an
// error; unreadable entries below it are skipped so one bad subtree cannot
// sink a scan.
func (s *Scanner) Scan(root string, mode Mode) (Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s: not a directory", root)
	}

	if mode == Shallow {
		return s.scanShallow(root)
	}
	return s.scanDeep(root)
}

// scanShallow collects keys declared in the conventional env files
// directly under root.
func (s *Scanner) scanShallow(root string) (Result, error) {
	result := make(Result)
	for _, name := range envfile.ConventionalNames {
		keys, err := envfile.Keys(filepath.Join(root, name))
		if err != nil {
			logging.Debug("skipping unreadable env file", "file", name, "error", err)
			continue
		}
		for _, key := range keys {
			if s.ignoreVars[key] {
				continue
			}
			result.Add(key, name)
		}
	}
	return result, nil
}

// scanDeep walks the tree and runs the matcher catalog over every eligible
// file's content.
func (s *Scanner) scanDeep(root string) (Result, error) {
	result := make(Result)
	selfTree := isOwnSource(root)
	catalog := patterns.Catalog()

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("scan root %s: %w", root, err)
			}
			logging.Debug("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if s.excludeDirs[d.Name()] || s.matchesExcludePath(rel) {
				return filepath.SkipDir
			}
			if pathDepth(rel) >= maxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.eligible(rel, d.Name()) {
			return nil
		}
		if selfTree && isOwnNoisyFile(rel) {
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			logging.Debug("skipping unreadable file", "path", rel, "error", readErr)
			return nil
		}
		if bytes.IndexByte(data, 0) != -1 {
			// NUL byte means binary, whatever the extension claims.
			return nil
		}

		text := string(data)
		for _, m := range catalog {
			for _, name := range m.Extract(text) {
				if !patterns.Accept(name) || s.ignoreVars[name] {
					continue
				}
				result.Add(name, rel)
			}
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return result, nil
}

// eligible decides whether a deep scan reads the file at rel.
func (s *Scanner) eligible(rel, name string) bool {
	// Env files are declarations, not usages; deep mode never reads them.
	if strings.HasPrefix(name, ".env") || name == "env.example" {
		return false
	}

	if !wellKnownNames[name] && !allowedExts[strings.ToLower(filepath.Ext(name))] {
		return false
	}
	if s.matchesExcludePath(rel) {
		return false
	}

	if len(s.includeGlobs) > 0 {
		return matchesGlob(rel, name, s.includeGlobs)
	}
	if len(s.excludeGlobs) > 0 {
		return !matchesGlob(rel, name, s.excludeGlobs)
	}
	return true
}

func (s *Scanner) matchesExcludePath(rel string) bool {
	return matchesGlob(rel, filepath.Base(rel), s.excludePaths)
}

// matchesGlob matches patterns against the root-relative path, falling
// back to the bare file name so "*.test.js" works without a ** prefix.
func matchesGlob(rel, name string, globs []string) bool {
	for _, glob := range globs {
		if ok, err := doublestar.Match(glob, rel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(glob, name); err == nil && ok {
			return true
		}
	}
	return false
}

func pathDepth(rel string) int {
	if rel == "." {
		return 0
	}
	return strings.Count(rel, "/") + 1
}

// ownModulePath identifies this tool's own repository during scans.
const ownModulePath = "github.com/soldal/envfill"

// isOwnSource reports whether root is this tool's own source tree,
// detected by the module line of its go.mod.
func isOwnSource(root string) bool {
	file, err := os.Open(filepath.Join(root, "go.mod"))
	if err != nil {
		return false
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if rest, ok := strings.CutPrefix(line, "module "); ok {
			return strings.TrimSpace(rest) == ownModulePath
		}
	}
	return false
}

// isOwnNoisyFile reports files in this repository whose text enumerates
// the very names the catalog searches for. Scanning them would report the
// matcher fixtures as real variables.
func isOwnNoisyFile(rel string) bool {
	if strings.HasSuffix(rel, "_test.go") || strings.HasSuffix(rel, ".md") {
		return true
	}
	return strings.HasPrefix(rel, "internal/patterns/") || strings.HasPrefix(rel, "e2e/")
}
