package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/soldal/envfill/internal/reconcile"
	"github.com/soldal/envfill/internal/session"
)

func collectOne(t *testing.T, input string, prompt session.Prompt) (session.Response, string) {
	t.Helper()
	color.NoColor = true
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(input), &out)
	resp, err := p.Collect(prompt)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	return resp, out.String()
}

func samplePrompt() session.Prompt {
	return session.Prompt{
		Key:         "API_KEY",
		Index:       1,
		Total:       3,
		Occurrences: []string{"app.py", "src/config.js"},
		Summary:     reconcile.Summary{Total: 3, Missing: 3},
	}
}

func TestPrompterResponses(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantKind  session.ResponseKind
		wantValue string
	}{
		{"plain value", "sk-123\n", session.KindValue, "sk-123"},
		{"value with spaces", "hello world\n", session.KindValue, "hello world"},
		{"blank skips", "\n", session.KindSkip, ""},
		{"skip command", ":skip\n", session.KindSkip, ""},
		{"skip shorthand", ":s\n", session.KindSkip, ""},
		{"back command", ":back\n", session.KindBack, ""},
		{"back shorthand", ":b\n", session.KindBack, ""},
		{"clear command", ":clear\n", session.KindClear, ""},
		{"stop command", ":stop\n", session.KindStop, ""},
		{"stop shorthand", ":q\n", session.KindStop, ""},
		{"closed input stops", "", session.KindStop, ""},
		{"value without trailing newline", "sk-123", session.KindValue, "sk-123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := collectOne(t, tt.input, samplePrompt())
			if resp.Kind != tt.wantKind || resp.Value != tt.wantValue {
				t.Errorf("Collect(%q) = {%v %q}, want {%v %q}",
					tt.input, resp.Kind, resp.Value, tt.wantKind, tt.wantValue)
			}
		})
	}
}

func TestPrompterBulk(t *testing.T) {
	input := ":bulk\nAPI_KEY=abc\nDB_HOST=localhost\n.\n"
	resp, out := collectOne(t, input, samplePrompt())

	if resp.Kind != session.KindBulk {
		t.Fatalf("Kind = %v, want KindBulk", resp.Kind)
	}
	if resp.Value != "API_KEY=abc\nDB_HOST=localhost\n" {
		t.Errorf("Value = %q", resp.Value)
	}
	if !strings.Contains(out, "finish with a single '.'") {
		t.Errorf("output %q missing bulk instructions", out)
	}
}

func TestPrompterBulkTerminatedByEOF(t *testing.T) {
	resp, _ := collectOne(t, ":bulk\nAPI_KEY=abc\n", samplePrompt())
	if resp.Kind != session.KindBulk || resp.Value != "API_KEY=abc\n" {
		t.Errorf("Collect() = {%v %q}", resp.Kind, resp.Value)
	}
}

func TestPrompterHelpThenValue(t *testing.T) {
	resp, out := collectOne(t, ":help\nsk-123\n", samplePrompt())
	if resp.Kind != session.KindValue || resp.Value != "sk-123" {
		t.Errorf("Collect() = {%v %q}, want the value after help", resp.Kind, resp.Value)
	}
	if !strings.Contains(out, ":bulk") || !strings.Contains(out, ":back") {
		t.Errorf("help output %q missing commands", out)
	}
}

func TestPrompterUnknownCommandReprompts(t *testing.T) {
	resp, out := collectOne(t, ":frobnicate\nsk-123\n", samplePrompt())
	if resp.Kind != session.KindValue || resp.Value != "sk-123" {
		t.Errorf("Collect() = {%v %q}", resp.Kind, resp.Value)
	}
	if !strings.Contains(out, "unknown command :frobnicate") {
		t.Errorf("output %q missing unknown-command notice", out)
	}
}

func TestPrompterRendersPromptContext(t *testing.T) {
	prompt := samplePrompt()
	prompt.HasCurrent = true
	prompt.Current = "old-value"

	_, out := collectOne(t, "v\n", prompt)

	for _, want := range []string{"[2/3]", "API_KEY", "used in: app.py", "used in: src/config.js", "current: old-value"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestPrompterHintShownOnce(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("a\nb\n"), &out)

	if _, err := p.Collect(samplePrompt()); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Collect(samplePrompt()); err != nil {
		t.Fatal(err)
	}

	if got := strings.Count(out.String(), "blank to skip"); got != 1 {
		t.Errorf("hint shown %d times, want 1", got)
	}
}
