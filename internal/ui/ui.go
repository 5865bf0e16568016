// Package ui renders reports and prompts for the terminal.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	headerColor   = color.New(color.Bold)
	missingColor  = color.New(color.FgRed)
	missingHeader = color.New(color.Bold, color.FgRed)
	setColor      = color.New(color.FgGreen)
	setHeader     = color.New(color.Bold, color.FgGreen)
	keyColor      = color.New(color.FgCyan)
	dimColor      = color.New(color.Faint)
	warnColor     = color.New(color.FgYellow)
)

// IsInteractive reports whether both ends of the conversation are a
// terminal, which gates the prompting session.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// banner is printed once at the top of interactive runs.
const banner = `  ____ __  __ __ __  ____ __ __    __
 ||    ||\ || || || ||    || ||    ||
 ||==  ||\\|| \\ // ||==  || ||    ||
 ||___ || \||  \V/  ||    || ||__  ||__

`

// PrintBanner writes the tool header with its version.
func PrintBanner(w io.Writer, version string) {
	headerColor.Fprint(w, banner)
	fmt.Fprintf(w, "Version: %s\n\n", version)
}

// Redact hides most of a value while hinting at its shape, for listings
// that would otherwise echo secrets back to the screen.
func Redact(value string) string {
	if value == "" {
		return `""`
	}
	if len(value) > 20 {
		return "[redacted]"
	}
	if strings.ContainsAny(value, "=+/") && len(value) > 10 {
		return "[redacted]"
	}
	if len(value) > 4 {
		return string(value[0]) + "..." + string(value[len(value)-1])
	}
	return "***"
}

// Errorf writes a uniform error line.
func Errorf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", missingColor.Sprint("Error:"), fmt.Sprintf(format, args...))
}
