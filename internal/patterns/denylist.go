package patterns

import "regexp"

// nameRe is the shape every accepted variable name must have.
var nameRe = regexp.MustCompile(`^[A-Z][A-Z0-9_]+$`)

// minNameLen discards one and two character names, which are almost always
// loop variables or format placeholders rather than configuration.
const minNameLen = 3

// denied holds names provided by the operating system, the shell, or a
// language runtime. A reference to one of these is ambient machinery, not
// configuration the project owns, so it never reaches a report.
var denied = map[string]struct{}{
	// shell and session
	"PATH":          {},
	"HOME":          {},
	"USER":          {},
	"SHELL":         {},
	"PWD":           {},
	"OLDPWD":        {},
	"TERM":          {},
	"TMPDIR":        {},
	"TMP":           {},
	"TEMP":          {},
	"LANG":          {},
	"LOGNAME":       {},
	"HOSTNAME":      {},
	"DISPLAY":       {},
	"EDITOR":        {},
	"PAGER":         {},
	"SHLVL":         {},
	"SSH_AUTH_SOCK": {},
	"COLORTERM":     {},

	// locale and XDG
	"LC_ALL":          {},
	"LC_CTYPE":        {},
	"XDG_CONFIG_HOME": {},
	"XDG_DATA_HOME":   {},
	"XDG_CACHE_HOME":  {},

	// dynamic linkers
	"LD_LIBRARY_PATH":   {},
	"DYLD_LIBRARY_PATH": {},

	// language runtimes and toolchains
	"PYTHONPATH":   {},
	"VIRTUAL_ENV":  {},
	"NODE_PATH":    {},
	"NODE_OPTIONS": {},
	"GOPATH":       {},
	"GOROOT":       {},
	"GOOS":         {},
	"GOARCH":       {},
	"CGO_ENABLED":  {},
	"JAVA_HOME":    {},
	"CLASSPATH":    {},
	"CARGO_HOME":   {},
	"RUSTUP_HOME":  {},
	"MAVEN_OPTS":   {},
	"GRADLE_OPTS":  {},

	// CI and packaging
	"CI":              {},
	"DEBIAN_FRONTEND": {},

	// Windows
	"USERPROFILE":  {},
	"APPDATA":      {},
	"LOCALAPPDATA": {},
	"COMSPEC":      {},
	"SYSTEMROOT":   {},
	"PROGRAMFILES": {},

	// POSIX oddities
	"POSIXLY_CORRECT": {},
}

// Denied reports whether name is on the fixed deny-list.
func Denied(name string) bool {
	_, ok := denied[name]
	return ok
}

// Accept reports whether a candidate survives filtering: uppercase
// snake-case shape, minimum length, and absence from the deny-list. The
// same filter runs on every candidate regardless of which matcher or file
// produced it.
func Accept(name string) bool {
	if len(name) < minNameLen {
		return false
	}
	if !nameRe.MatchString(name) {
		return false
	}
	return !Denied(name)
}
