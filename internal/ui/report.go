package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/soldal/envfill/internal/envfile"
	"github.com/soldal/envfill/internal/reconcile"
	"github.com/soldal/envfill/internal/scan"
)

// JSONOutput represents the JSON report format
type JSONOutput struct {
	Total       int         `json:"total"`
	AlreadySet  int         `json:"already_set"`
	Missing     int         `json:"missing"`
	Coverage    float64     `json:"coverage"`
	MissingVars []ReportVar `json:"missing_vars"`
	SetVars     []ReportVar `json:"set_vars"`
}

// ReportVar is one variable with the files referencing it
type ReportVar struct {
	Key       string   `json:"key"`
	Value     string   `json:"value,omitempty"` // redacted, set variables only
	Locations []string `json:"locations"`
}

// Format renders the reconciliation report for a scan. In silent mode
// nothing is printed and the caller signals problems via its exit code.
func Format(w io.Writer, result scan.Result, doc *envfile.Document, jsonOutput, silent bool) error {
	if silent {
		return nil
	}
	if jsonOutput {
		return formatJSON(w, result, doc)
	}
	formatHumanReadable(w, result, doc)
	return nil
}

func formatJSON(w io.Writer, result scan.Result, doc *envfile.Document) error {
	summary := reconcile.Summarize(result, doc)
	output := JSONOutput{
		Total:       summary.Total,
		AlreadySet:  summary.AlreadySet,
		Missing:     summary.Missing,
		Coverage:    summary.Coverage(),
		MissingVars: []ReportVar{},
		SetVars:     []ReportVar{},
	}

	for _, key := range reconcile.MissingKeys(result, doc) {
		output.MissingVars = append(output.MissingVars, ReportVar{
			Key:       key,
			Locations: result[key].Files(),
		})
	}
	for _, key := range reconcile.SetKeys(result, doc) {
		value, _ := doc.Get(key)
		output.SetVars = append(output.SetVars, ReportVar{
			Key:       key,
			Value:     Redact(value),
			Locations: result[key].Files(),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func formatHumanReadable(w io.Writer, result scan.Result, doc *envfile.Document) {
	summary := reconcile.Summarize(result, doc)

	if summary.Total == 0 {
		dimColor.Fprintln(w, "No environment variable references found.")
		return
	}

	missing := reconcile.MissingKeys(result, doc)
	if len(missing) > 0 {
		missingHeader.Fprint(w, "Missing environment variables:")
		fmt.Fprint(w, "\n\n")
		for _, key := range missing {
			fmt.Fprintf(w, "  %s\n", missingColor.Sprint(key))
			for _, file := range result[key].Files() {
				fmt.Fprintf(w, "    %s %s\n", dimColor.Sprint("used in:"), keyColor.Sprint(file))
			}
		}
		fmt.Fprintln(w)
	}

	set := reconcile.SetKeys(result, doc)
	if len(set) > 0 {
		setHeader.Fprint(w, "Already set:")
		fmt.Fprint(w, "\n\n")
		for _, key := range set {
			value, _ := doc.Get(key)
			fmt.Fprintf(w, "  %s %s\n", setColor.Sprint(key), dimColor.Sprintf("= %s", Redact(value)))
		}
		fmt.Fprintln(w)
	}

	printCoverage(w, summary)
}

func printCoverage(w io.Writer, summary reconcile.Summary) {
	line := fmt.Sprintf("Coverage: %d/%d variables set (%.1f%%)",
		summary.AlreadySet, summary.Total, summary.Coverage())
	switch {
	case summary.Missing == 0:
		setColor.Fprintf(w, "✓ %s\n", line)
	case summary.AlreadySet == 0:
		missingColor.Fprintln(w, line)
	default:
		warnColor.Fprintln(w, line)
	}
}

// PrintSaved acknowledges one persisted value during a session.
func PrintSaved(w io.Writer, key string) {
	fmt.Fprintf(w, "  %s %s\n", setColor.Sprint("✓ saved"), key)
}

// PrintSessionSummary closes out an interactive session.
func PrintSessionSummary(w io.Writer, written int, path string, summary reconcile.Summary) {
	fmt.Fprintln(w)
	switch {
	case written == 0:
		dimColor.Fprintln(w, "Nothing written.")
	case written == 1:
		fmt.Fprintf(w, "Wrote %s to %s.\n", headerColor.Sprint("1 value"), path)
	default:
		fmt.Fprintf(w, "Wrote %s to %s.\n", headerColor.Sprintf("%d values", written), path)
	}
	printCoverage(w, summary)
}
