// Package session drives interactive value collection for the variables a
// scan found missing: a cursor over an ordered key list, a pure transition
// function, and a runner that persists every accepted value immediately.
package session

import (
	"github.com/soldal/envfill/internal/envfile"
	"github.com/soldal/envfill/internal/reconcile"
	"github.com/soldal/envfill/internal/scan"
)

// ResponseKind tags what a collector's reply means.
type ResponseKind int

const (
	// KindValue accepts a literal value for the current variable.
	KindValue ResponseKind = iota
	// KindSkip moves on without writing anything.
	KindSkip
	// KindBack returns to the previous variable.
	KindBack
	// KindClear stores an explicit empty value and moves on.
	KindClear
	// KindStop ends the session, keeping everything written so far.
	KindStop
	// KindBulk submits a whole configuration-formatted block at once.
	KindBulk
)

// Response is one reply from a collector.
type Response struct {
	Kind ResponseKind
	// Value holds the literal value for KindValue and the pasted block
	// for KindBulk.
	Value string
}

// WriteOp instructs the runner to persist one key.
type WriteOp struct {
	Key   string
	Value string
}

// State is the cursor over the keys a session resolves. The key list is
// fixed when the session starts; values accepted mid-session do not
// reorder it, which keeps Back predictable.
type State struct {
	Keys  []string
	Index int
}

// Instruction is what a single step asks the runner to do.
type Instruction struct {
	// Write persists one value; nil when the step writes nothing.
	Write *WriteOp
	// BulkText is a pasted block to parse and persist as one batch.
	BulkText string
	// Done ends the session after this step.
	Done bool
}

// Step advances the cursor by one response. It is pure: every file write
// happens in the runner consuming the returned instruction.
func Step(st State, resp Response) (State, Instruction) {
	switch resp.Kind {
	case KindValue:
		op := &WriteOp{Key: st.Keys[st.Index], Value: resp.Value}
		st.Index++
		return st, Instruction{Write: op, Done: st.Index >= len(st.Keys)}
	case KindClear:
		op := &WriteOp{Key: st.Keys[st.Index]}
		st.Index++
		return st, Instruction{Write: op, Done: st.Index >= len(st.Keys)}
	case KindSkip:
		st.Index++
		return st, Instruction{Done: st.Index >= len(st.Keys)}
	case KindBack:
		// Back at the first variable stays put.
		if st.Index > 0 {
			st.Index--
		}
		return st, Instruction{}
	case KindBulk:
		return st, Instruction{BulkText: resp.Value, Done: true}
	case KindStop:
		return st, Instruction{Done: true}
	}
	return st, Instruction{}
}

// Prompt carries everything a collector needs to present one variable.
type Prompt struct {
	Key   string
	Index int // zero-based position in the session order
	Total int
	// Current is the value on disk when re-visiting an already answered
	// variable, e.g. after Back.
	Current     string
	HasCurrent  bool
	Occurrences []string
	Summary     reconcile.Summary
}

// Collector supplies one response per presented variable. Implementations
// range from the terminal prompter to scripted test doubles.
type Collector interface {
	Collect(p Prompt) (Response, error)
}

// Runner walks the missing variables of one folder. Each accepted value is
// written to the target file before the next prompt appears, so an
// interrupted session keeps its progress.
type Runner struct {
	// Path is the configuration file values are persisted to.
	Path      string
	Result    scan.Result
	Doc       *envfile.Document
	Collector Collector
	// OnSaved, when set, is invoked synchronously after each persisted
	// value.
	OnSaved func(key, value string)
}

// Run executes the session and returns how many values were persisted.
// Writes that already happened stay on disk when a later step fails.
func (r *Runner) Run() (int, error) {
	st := State{Keys: reconcile.MissingKeys(r.Result, r.Doc)}
	written := 0

	for st.Index < len(st.Keys) {
		key := st.Keys[st.Index]
		current, has := r.Doc.Get(key)
		prompt := Prompt{
			Key:         key,
			Index:       st.Index,
			Total:       len(st.Keys),
			Current:     current,
			HasCurrent:  has,
			Occurrences: r.Result[key].Files(),
			Summary:     reconcile.Summarize(r.Result, r.Doc),
		}

		resp, err := r.Collector.Collect(prompt)
		if err != nil {
			return written, err
		}

		var ins Instruction
		st, ins = Step(st, resp)

		if ins.Write != nil {
			if err := r.persist(ins.Write.Key, ins.Write.Value); err != nil {
				return written, err
			}
			written++
		}
		if ins.BulkText != "" {
			n, err := r.applyBulk(ins.BulkText)
			written += n
			if err != nil {
				return written, err
			}
		}
		if ins.Done {
			break
		}
	}
	return written, nil
}

func (r *Runner) persist(key, value string) error {
	if _, err := envfile.Write(r.Path, []envfile.Entry{{Key: key, Value: value}}); err != nil {
		return err
	}
	r.Doc.Set(key, value)
	if r.OnSaved != nil {
		r.OnSaved(key, value)
	}
	return nil
}

// applyBulk parses a pasted block with the usual file grammar and persists
// every entry it declares, including ones the scan never asked about.
func (r *Runner) applyBulk(text string) (int, error) {
	entries := envfile.ParseText(text).Entries()
	if len(entries) == 0 {
		return 0, nil
	}
	if _, err := envfile.Write(r.Path, entries); err != nil {
		return 0, err
	}
	for _, e := range entries {
		r.Doc.Set(e.Key, e.Value)
		if r.OnSaved != nil {
			r.OnSaved(e.Key, e.Value)
		}
	}
	return len(entries), nil
}
