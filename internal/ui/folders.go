package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/soldal/envfill/internal/project"
)

// ListFolders prints the directories discovered to carry env files.
func ListFolders(w io.Writer, folders []project.Folder, jsonOutput bool) error {
	if jsonOutput {
		type jsonFolder struct {
			Path     string   `json:"path"`
			EnvFiles []string `json:"env_files"`
		}
		out := make([]jsonFolder, 0, len(folders))
		for _, f := range folders {
			out = append(out, jsonFolder{Path: f.RelPath, EnvFiles: f.EnvFiles})
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	}

	if len(folders) == 0 {
		dimColor.Fprintln(w, "No folders with environment files found.")
		return nil
	}

	headerColor.Fprint(w, "Folders with environment files:")
	fmt.Fprint(w, "\n\n")
	for _, f := range folders {
		fmt.Fprintf(w, "  %s %s\n", keyColor.Sprint(f.RelPath), dimColor.Sprint(strings.Join(f.EnvFiles, ", ")))
	}
	return nil
}

// PrintFolderHeading separates per-folder output when a run walks several
// folders in one go.
func PrintFolderHeading(w io.Writer, relPath string) {
	fmt.Fprintln(w)
	headerColor.Fprintf(w, "── %s ──", relPath)
	fmt.Fprint(w, "\n\n")
}
