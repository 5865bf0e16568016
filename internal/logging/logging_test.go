package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestPrettyHandlerOutput(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	h := newPrettyHandler(&buf, slog.LevelDebug)
	log := slog.New(h)

	log.Warn("skipping unreadable file", "path", "src/app.py", "count", 3)

	got := buf.String()
	for _, want := range []string{"WARN", "skipping unreadable file", "path=src/app.py", "count=3"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
	if !strings.HasSuffix(got, "\n") {
		t.Errorf("output %q should end with newline", got)
	}
}

func TestPrettyHandlerLevelThreshold(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	h := newPrettyHandler(&buf, slog.LevelWarn)

	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug enabled at warn threshold")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error disabled at warn threshold")
	}

	log := slog.New(h)
	log.Debug("hidden")
	log.Warn("shown")

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("output %q contains suppressed debug line", got)
	}
	if !strings.Contains(got, "shown") {
		t.Errorf("output %q missing warn line", got)
	}
}

func TestPrettyHandlerWithAttrs(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	log := slog.New(newPrettyHandler(&buf, slog.LevelDebug)).With("folder", "services/api")

	log.Info("scan complete", "files", 12)

	got := buf.String()
	if !strings.Contains(got, "folder=services/api") || !strings.Contains(got, "files=12") {
		t.Errorf("output %q missing bound or inline attrs", got)
	}
}

func TestSetupRoutesPackageHelpers(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	Setup(&buf, true)
	defer Setup(&buf, false)

	Debug("fine detail")
	Warn("louder")

	got := buf.String()
	if !strings.Contains(got, "fine detail") || !strings.Contains(got, "louder") {
		t.Errorf("output %q missing helper lines", got)
	}
}
