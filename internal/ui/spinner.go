package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// Progress shows a spinner on stderr while a long scan runs. Off a
// terminal it degrades to a single plain line so logs stay readable.
type Progress struct {
	s *spinner.Spinner
}

// StartProgress begins the indicator. Always pair with Stop.
func StartProgress(message string) *Progress {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		fmt.Fprintf(os.Stderr, "%s...\n", message)
		return &Progress{}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	s.Start()
	return &Progress{s: s}
}

// Stop clears the indicator.
func (p *Progress) Stop() {
	if p.s != nil {
		p.s.Stop()
	}
}
