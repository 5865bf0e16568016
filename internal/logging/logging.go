// Package logging configures the process-wide structured logger. Messages
// go to stderr so they never mix with report output or prompts.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Setup installs the logger writing to w. Verbose lowers the threshold to
// debug; otherwise only warnings and errors surface.
func Setup(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(newPrettyHandler(w, level))
}

// Debug logs fine-grained scan decisions, visible only with --verbose.
func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

// Info logs progress notes.
func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

// Warn logs recoverable trouble, like a skipped unreadable file.
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// Error logs failures that abort an operation.
func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}

var (
	debugColor = color.New(color.FgMagenta)
	infoColor  = color.New(color.FgBlue)
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed)
	attrColor  = color.New(color.Faint)
)

// prettyHandler renders records as a short human-readable line instead of
// logfmt or JSON. Attribute values print with %v; nobody is expected to
// machine-parse this output.
type prettyHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	level slog.Level
	attrs []slog.Attr
}

func newPrettyHandler(w io.Writer, level slog.Level) *prettyHandler {
	return &prettyHandler{mu: &sync.Mutex{}, w: w, level: level}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	if !r.Time.IsZero() {
		b.WriteString(r.Time.Format(time.TimeOnly))
		b.WriteByte(' ')
	}
	b.WriteString(levelTag(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	appendAttr := func(a slog.Attr) bool {
		b.WriteByte(' ')
		b.WriteString(attrColor.Sprintf("%s=%v", a.Key, a.Value.Any()))
		return true
	}
	for _, a := range h.attrs {
		appendAttr(a)
	}
	r.Attrs(appendAttr)

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.w, b.String())
	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup flattens groups; this handler's output has no nesting to
// express them.
func (h *prettyHandler) WithGroup(string) slog.Handler {
	return h
}

func levelTag(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return errorColor.Sprint("ERROR")
	case level >= slog.LevelWarn:
		return warnColor.Sprint("WARN")
	case level >= slog.LevelInfo:
		return infoColor.Sprint("INFO")
	default:
		return debugColor.Sprint("DEBUG")
	}
}
