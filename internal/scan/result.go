package scan

import "sort"

// OccurrenceSet is the set of root-relative file paths that reference one
// variable. Several references inside a single file collapse to one entry.
type OccurrenceSet map[string]struct{}

// Add records one referencing file.
func (o OccurrenceSet) Add(path string) {
	o[path] = struct{}{}
}

// Files returns the occurrence paths sorted for stable output.
func (o OccurrenceSet) Files() []string {
	files := make([]string, 0, len(o))
	for path := range o {
		files = append(files, path)
	}
	sort.Strings(files)
	return files
}

// Result maps each discovered variable name to the files referencing it.
type Result map[string]OccurrenceSet

// Add records that file references name.
func (r Result) Add(name, file string) {
	set, ok := r[name]
	if !ok {
		set = make(OccurrenceSet)
		r[name] = set
	}
	set.Add(file)
}

// Names returns the discovered names sorted for stable iteration.
func (r Result) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FileCount reports how many distinct files contributed a reference.
func (r Result) FileCount() int {
	files := make(map[string]struct{})
	for _, set := range r {
		for path := range set {
			files[path] = struct{}{}
		}
	}
	return len(files)
}
