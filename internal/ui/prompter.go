package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/soldal/envfill/internal/session"
)

// Prompter reads session responses from an input stream, usually the
// terminal. It implements session.Collector.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	helped bool
}

// NewPrompter wires a prompter to its streams. Tests pass buffers.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Collect renders one variable and reads the response. Plain text becomes
// the value, a blank line skips, and colon commands steer the session.
// A closed input stream stops the session, keeping everything already
// written.
func (p *Prompter) Collect(prompt session.Prompt) (session.Response, error) {
	p.render(prompt)

	for {
		fmt.Fprint(p.out, "> ")
		line, err := p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return session.Response{}, fmt.Errorf("reading response: %w", err)
		}
		eof := errors.Is(err, io.EOF)

		trimmed := strings.TrimSpace(line)
		if eof && trimmed == "" {
			fmt.Fprintln(p.out)
			return session.Response{Kind: session.KindStop}, nil
		}
		if trimmed == ":bulk" {
			return p.readBulk()
		}
		if resp, ok := p.parse(trimmed); ok {
			return resp, nil
		}
		if eof {
			return session.Response{Kind: session.KindStop}, nil
		}
	}
}

// parse maps one input line to a response. It returns false when the line
// was consumed without producing a response, after printing help.
func (p *Prompter) parse(line string) (session.Response, bool) {
	switch line {
	case "", ":skip", ":s":
		return session.Response{Kind: session.KindSkip}, true
	case ":back", ":b":
		return session.Response{Kind: session.KindBack}, true
	case ":clear":
		return session.Response{Kind: session.KindClear}, true
	case ":stop", ":q":
		return session.Response{Kind: session.KindStop}, true
	case ":help", "?":
		p.printHelp()
		return session.Response{}, false
	}
	if strings.HasPrefix(line, ":") {
		warnColor.Fprintf(p.out, "unknown command %s\n", line)
		p.printHelp()
		return session.Response{}, false
	}
	return session.Response{Kind: session.KindValue, Value: line}, true
}

// readBulk collects lines until a lone '.' and submits them as one block.
func (p *Prompter) readBulk() (session.Response, error) {
	dimColor.Fprintln(p.out, "Paste KEY=VALUE lines, finish with a single '.' on its own line:")

	var block strings.Builder
	for {
		line, err := p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return session.Response{}, fmt.Errorf("reading bulk block: %w", err)
		}
		eof := errors.Is(err, io.EOF)

		trimmed := strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(trimmed) == "." {
			break
		}
		if trimmed != "" || !eof {
			block.WriteString(trimmed)
			block.WriteByte('\n')
		}
		if eof {
			break
		}
	}
	return session.Response{Kind: session.KindBulk, Value: block.String()}, nil
}

func (p *Prompter) render(prompt session.Prompt) {
	fmt.Fprintln(p.out)
	headerColor.Fprintf(p.out, "[%d/%d] ", prompt.Index+1, prompt.Total)
	keyColor.Fprintln(p.out, prompt.Key)

	for _, file := range prompt.Occurrences {
		fmt.Fprintf(p.out, "  %s %s\n", dimColor.Sprint("used in:"), file)
	}
	if prompt.HasCurrent {
		fmt.Fprintf(p.out, "  %s %s\n", dimColor.Sprint("current:"), prompt.Current)
	}
	if !p.helped {
		dimColor.Fprintln(p.out, "  enter a value, blank to skip, :help for commands")
		p.helped = true
	}
}

func (p *Prompter) printHelp() {
	help := `  <value>    save the value and continue
  (blank)    skip this variable
  :skip, :s  skip this variable
  :back, :b  return to the previous variable
  :clear     save an explicit empty value
  :bulk      paste a whole KEY=VALUE block
  :stop, :q  stop now, keeping everything saved so far`
	dimColor.Fprintln(p.out, help)
}
