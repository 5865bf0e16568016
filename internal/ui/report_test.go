package ui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/soldal/envfill/internal/envfile"
	"github.com/soldal/envfill/internal/reconcile"
	"github.com/soldal/envfill/internal/scan"
)

func sampleReportData() (scan.Result, *envfile.Document) {
	result := make(scan.Result)
	result.Add("API_KEY", "app.py")
	result.Add("API_KEY", "src/config.js")
	result.Add("DB_HOST", "docker-compose.yml")

	doc := envfile.NewDocument()
	doc.Set("DB_HOST", "localhost")
	return result, doc
}

func TestFormatHumanReadable(t *testing.T) {
	color.NoColor = true
	result, doc := sampleReportData()

	var out bytes.Buffer
	if err := Format(&out, result, doc, false, false); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Missing environment variables:",
		"API_KEY",
		"used in: app.py",
		"used in: src/config.js",
		"Already set:",
		"DB_HOST",
		"Coverage: 1/2 variables set (50.0%)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "localhost") {
		t.Errorf("output leaks raw value:\n%s", got)
	}
}

func TestFormatJSON(t *testing.T) {
	color.NoColor = true
	result, doc := sampleReportData()

	var out bytes.Buffer
	if err := Format(&out, result, doc, true, false); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var report JSONOutput
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}

	if report.Total != 2 || report.AlreadySet != 1 || report.Missing != 1 {
		t.Errorf("summary = %+v", report)
	}
	if report.Coverage != 50 {
		t.Errorf("Coverage = %v, want 50", report.Coverage)
	}
	if len(report.MissingVars) != 1 || report.MissingVars[0].Key != "API_KEY" {
		t.Errorf("MissingVars = %+v", report.MissingVars)
	}
	if locs := report.MissingVars[0].Locations; len(locs) != 2 {
		t.Errorf("Locations = %v, want both files", locs)
	}
	if len(report.SetVars) != 1 || report.SetVars[0].Key != "DB_HOST" {
		t.Errorf("SetVars = %+v", report.SetVars)
	}
	if report.SetVars[0].Value == "localhost" {
		t.Error("JSON output leaks raw value")
	}
}

func TestFormatSilent(t *testing.T) {
	result, doc := sampleReportData()

	var out bytes.Buffer
	if err := Format(&out, result, doc, false, true); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("silent output = %q, want none", out.String())
	}
}

func TestFormatNothingDiscovered(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	if err := Format(&out, make(scan.Result), envfile.NewDocument(), false, false); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(out.String(), "No environment variable references found.") {
		t.Errorf("output = %q", out.String())
	}
}

func TestFormatAllCovered(t *testing.T) {
	color.NoColor = true
	result := make(scan.Result)
	result.Add("API_KEY", "app.py")
	doc := envfile.NewDocument()
	doc.Set("API_KEY", "abc")

	var out bytes.Buffer
	if err := Format(&out, result, doc, false, false); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	got := out.String()
	if strings.Contains(got, "Missing environment variables:") {
		t.Errorf("output reports missing section with full coverage:\n%s", got)
	}
	if !strings.Contains(got, "✓ Coverage: 1/1 variables set (100.0%)") {
		t.Errorf("output = %q", got)
	}
}

func TestRedact(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"empty", "", `""`},
		{"long secret", strings.Repeat("k", 32), "[redacted]"},
		{"base64ish", "abc=def+ghi/jk", "[redacted]"},
		{"short word", "local", "l...l"},
		{"tiny", "abc", "***"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Redact(tt.value); got != tt.want {
				t.Errorf("Redact(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestPrintSessionSummary(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	PrintSessionSummary(&out, 3, ".env", reconcile.Summary{Total: 4, AlreadySet: 4})

	got := out.String()
	if !strings.Contains(got, "Wrote 3 values to .env.") {
		t.Errorf("output = %q", got)
	}
	if !strings.Contains(got, "100.0%") {
		t.Errorf("output = %q missing coverage", got)
	}
}
