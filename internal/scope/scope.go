// Package scope implements Luz's flat binding store (C4): a single
// name -> binding map with no lexical nesting, plus the snapshot/restore
// mechanism block and loop bodies use to undo their local declarations —
// "every key not present in the snapshot is removed" (spec §3). Writes to
// names that existed before the snapshot are never undone, which is what
// gives the language its non-lexical "inner writes leak outward" scoping.
package scope

import "github.com/aledsdavies/luz/internal/value"

// Binding is a name's current value and const flag. The type tag is not
// stored separately — it is always the value's own kind.
type Binding struct {
	Value value.Value
	Const bool
}

// Scope is the single flat store. It is never copied; Snapshot/Restore
// operate on the live map in place.
type Scope struct {
	vars map[string]Binding
}

func New() *Scope {
	return &Scope{vars: make(map[string]Binding)}
}

func (s *Scope) Get(name string) (Binding, bool) {
	b, ok := s.vars[name]
	return b, ok
}

// Names returns every currently bound name, for undefined-variable
// "did you mean" suggestions.
func (s *Scope) Names() []string {
	out := make([]string, 0, len(s.vars))
	for k := range s.vars {
		out = append(out, k)
	}
	return out
}

// Declare binds name for the first time (plain `=` on a fresh name, or
// `const name = ...`). Overwrites any existing binding unconditionally;
// callers are responsible for checking const-ness before calling this for
// an existing name.
func (s *Scope) Declare(name string, v value.Value, isConst bool) {
	s.vars[name] = Binding{Value: v, Const: isConst}
}

// Set updates an existing binding's value in place, preserving its Const
// flag slot (callers must have already rejected writes to const names).
func (s *Scope) Set(name string, v value.Value) {
	b := s.vars[name]
	b.Value = v
	s.vars[name] = b
}

// Delete removes a binding (`del name`).
func (s *Scope) Delete(name string) {
	delete(s.vars, name)
}

// Snapshot captures the current key set. Pass the result to Restore when
// the block/iteration that took it exits, by any path (normal, break,
// continue, or a thrown error) — spec §4.5 requires cleanup on every exit.
type Snapshot map[string]bool

func (s *Scope) Snapshot() Snapshot {
	snap := make(Snapshot, len(s.vars))
	for k := range s.vars {
		snap[k] = true
	}
	return snap
}

// Restore deletes every binding introduced since snap was taken. It does
// NOT restore prior values of shadowed names — there is no lexical
// shadowing in Luz, only "new since snapshot" cleanup (spec §9).
func (s *Scope) Restore(snap Snapshot) {
	for k := range s.vars {
		if !snap[k] {
			delete(s.vars, k)
		}
	}
}
