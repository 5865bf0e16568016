// Package envfile reads and writes line-oriented KEY=VALUE configuration
// files. One grammar covers every file the tool touches: reading preserves
// declaration order, writing preserves every untouched byte.
package envfile

// Entry is one key=value pair destined for a configuration file.
type Entry struct {
	Key   string
	Value string
}

// Document is the parsed contents of a configuration file: keys in
// declaration order mapped to their unquoted values. The zero value is not
// usable; construct with NewDocument or Parse.
type Document struct {
	keys   []string
	values map[string]string
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{values: make(map[string]string)}
}

// Set stores value under key. A new key is appended to the order; an
// existing key keeps its position, matching how a later duplicate line in
// a file overrides an earlier one without re-declaring it.
func (d *Document) Set(key, value string) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Get returns the value stored under key and whether the key is declared.
// A declared key may hold an empty value.
func (d *Document) Get(key string) (string, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Has reports whether key is declared, regardless of its value.
func (d *Document) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Keys returns the declared keys in declaration order. The slice is a
// copy; callers may mutate it freely.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.keys))
	copy(keys, d.keys)
	return keys
}

// Len returns the number of declared keys.
func (d *Document) Len() int {
	return len(d.keys)
}

// Entries returns the document as an ordered entry list.
func (d *Document) Entries() []Entry {
	entries := make([]Entry, 0, len(d.keys))
	for _, key := range d.keys {
		entries = append(entries, Entry{Key: key, Value: d.values[key]})
	}
	return entries
}
