package interp

import "github.com/aledsdavies/luz/internal/value"

// SignalKind distinguishes the two non-local exits the control-flow engine
// (C7) has to thread back up through arbitrary expression nesting. This is
// the StepOutcome redesign spec §9 calls for in place of thrown signal
// objects: a *Signal return value the caller must check before continuing
// to evaluate sibling subexpressions.
type SignalKind int

const (
	SigBreak SignalKind = iota
	SigContinue
)

// Signal is non-nil exactly when evaluation hit `break` or `continue`.
// Every eval call site must check for it (same as an error) and stop
// evaluating further subexpressions, propagating it up to the nearest
// enclosing loop boundary.
type Signal struct {
	Kind  SignalKind
	Value value.Value // break's carried value; zero value for continue
}

func (s SignalKind) String() string {
	if s == SigBreak {
		return "break"
	}
	return "continue"
}
