// Package project locates the directories inside a tree that carry their
// own environment configuration, so monorepos can be handled folder by
// folder.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/soldal/envfill/internal/envfile"
	"github.com/soldal/envfill/internal/scan"
)

// Folder is a directory holding at least one conventional env file.
type Folder struct {
	// RelPath is the slash-separated path relative to the discovery root;
	// "." for the root itself.
	RelPath string
	// AbsPath is the resolved location on disk.
	AbsPath string
	// EnvFiles lists the conventional file names found, in precedence
	// order.
	EnvFiles []string
}

// maxDepth mirrors the scan ceiling so discovery and scanning agree on
// what part of the tree exists.
const maxDepth = 32

// Discover walks root and returns every directory carrying conventional
// env files, parents before their children. Nested qualifying directories
// each get their own entry; hidden directories below the root and the
// shared directory deny-list are skipped. ignoreGlobs drops additional folders by
// root-relative pattern. An unreadable root is an error; unreadable
// directories below it are silently skipped.
func Discover(root string, ignoreGlobs []string) ([]Folder, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("discovery root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("discovery root %s: not a directory", root)
	}

	var folders []Folder
	walk(root, ".", 0, ignoreGlobs, &folders)
	return folders, nil
}

func walk(abs, rel string, depth int, ignoreGlobs []string, folders *[]Folder) {
	if depth > maxDepth {
		return
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		// A directory that vanished or denies access mid-walk is not
		// worth failing the whole discovery for.
		return
	}

	names := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names[entry.Name()] = struct{}{}
		}
	}

	var envFiles []string
	for _, name := range envfile.ConventionalNames {
		if _, ok := names[name]; ok {
			envFiles = append(envFiles, name)
		}
	}
	if len(envFiles) > 0 {
		*folders = append(*folders, Folder{RelPath: rel, AbsPath: abs, EnvFiles: envFiles})
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if scan.IsExcludedDirName(name) {
			continue
		}
		if strings.HasPrefix(name, ".") {
			continue
		}

		childRel := name
		if rel != "." {
			childRel = rel + "/" + name
		}
		if matchesAny(childRel, name, ignoreGlobs) {
			continue
		}
		walk(filepath.Join(abs, name), childRel, depth+1, ignoreGlobs, folders)
	}
}

func matchesAny(rel, name string, globs []string) bool {
	for _, glob := range globs {
		if ok, err := doublestar.Match(glob, rel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(glob, name); err == nil && ok {
			return true
		}
	}
	return false
}
