package interp

import (
	"github.com/aledsdavies/luz/internal/ast"
	"github.com/aledsdavies/luz/internal/luzerr"
	"github.com/aledsdavies/luz/internal/scope"
	"github.com/aledsdavies/luz/internal/token"
	"github.com/aledsdavies/luz/internal/value"
)

// evalIf evaluates an `if`/`else if`/`else` chain as an expression. The
// non-taken branch is simply a subtree the walk never enters; an `if`
// with no taken branch evaluates to null (spec §4.4).
func (in *Interpreter) evalIf(n *ast.IfExpr, s *scope.Scope) (value.Value, *Signal, *luzerr.Error) {
	cond, sig, err := in.eval(n.Cond, s)
	if err != nil || sig != nil {
		return value.Null(), sig, err
	}
	if cond.Truthy() {
		return in.evalBlock(n.Then, s)
	}
	if n.Else != nil {
		return in.eval(n.Else, s)
	}
	return value.Null(), nil, nil
}

// evalBlock runs the statements of a `{ ... }` body under a scope
// snapshot, restoring it on every exit path — normal completion, break,
// continue, or error (spec §4.5). The block's value is its last
// statement's value, or null when empty.
func (in *Interpreter) evalBlock(n *ast.Block, s *scope.Scope) (value.Value, *Signal, *luzerr.Error) {
	snap := s.Snapshot()
	defer s.Restore(snap)

	last := value.Null()
	for _, stmt := range n.Stmts {
		v, sig, err := in.eval(stmt, s)
		if err != nil || sig != nil {
			return value.Null(), sig, err
		}
		last = v
	}
	return last, nil, nil
}

func (in *Interpreter) evalBreak(n *ast.BreakExpr, s *scope.Scope) (value.Value, *Signal, *luzerr.Error) {
	if n.Value == nil {
		return value.Null(), &Signal{Kind: SigBreak, Value: value.Null()}, nil
	}
	v, sig, err := in.eval(n.Value, s)
	if err != nil || sig != nil {
		return value.Null(), sig, err
	}
	return value.Null(), &Signal{Kind: SigBreak, Value: v}, nil
}

// evalLoop drives the three loop shapes of spec §4.5. Break and continue
// arrive as *Signal returns from the body; this is the loop boundary that
// absorbs them. Any error propagates untouched.
func (in *Interpreter) evalLoop(n *ast.LoopExpr, s *scope.Scope) (value.Value, *Signal, *luzerr.Error) {
	switch n.Kind {
	case ast.LoopInfinite:
		return in.loopInfinite(n, s)
	case ast.LoopWhile:
		return in.loopWhile(n, s)
	case ast.LoopForIn:
		return in.loopForIn(n, s)
	default:
		return value.Null(), nil, luzerr.Runtime(n.Pos(), "unknown loop kind")
	}
}

func (in *Interpreter) loopInfinite(n *ast.LoopExpr, s *scope.Scope) (value.Value, *Signal, *luzerr.Error) {
	iterations := 0
	for {
		iterations++
		brkVal, broke, err := in.runIteration(n.Body, s)
		if err != nil {
			return value.Null(), nil, err
		}
		if broke {
			in.logger.Debug("loop finished", "shape", "infinite", "iterations", iterations)
			return brkVal, nil, nil
		}
	}
}

func (in *Interpreter) loopWhile(n *ast.LoopExpr, s *scope.Scope) (value.Value, *Signal, *luzerr.Error) {
	iterations := 0
	for {
		// The condition subtree is re-walked each pass — the AST stands
		// in for the source's cursor rewind to the captured token start.
		cond, sig, err := in.eval(n.Cond, s)
		if err != nil || sig != nil {
			return value.Null(), sig, err
		}
		if !cond.Truthy() {
			break
		}
		iterations++
		brkVal, broke, err := in.runIteration(n.Body, s)
		if err != nil {
			return value.Null(), nil, err
		}
		if broke {
			return brkVal, nil, nil
		}
	}
	in.logger.Debug("loop finished", "shape", "while", "iterations", iterations)
	return value.Null(), nil, nil
}

func (in *Interpreter) loopForIn(n *ast.LoopExpr, s *scope.Scope) (value.Value, *Signal, *luzerr.Error) {
	iterVal, sig, err := in.eval(n.Iter, s)
	if err != nil || sig != nil {
		return value.Null(), sig, err
	}
	elems, lerr := iterElements(iterVal, n.Pos())
	if lerr != nil {
		return value.Null(), nil, lerr
	}
	for _, elem := range elems {
		brkVal, broke, err := in.runBoundIteration(n.VarName, elem, n.Body, s)
		if err != nil {
			return value.Null(), nil, err
		}
		if broke {
			return brkVal, nil, nil
		}
	}
	in.logger.Debug("loop finished", "shape", "for-in", "iterations", len(elems))
	return value.Null(), nil, nil
}

// iterElements materialises the for-in iteration sequence. Sets are not
// iterable here — a language quirk spec §4.5 preserves on purpose.
func iterElements(v value.Value, pos token.Pos) ([]value.Value, *luzerr.Error) {
	switch v.Kind {
	case value.KindRan, value.KindXRan:
		var out []value.Value
		v.Iterate(func(f float64) bool {
			out = append(out, value.Num(f))
			return true
		})
		return out, nil
	case value.KindStr:
		var out []value.Value
		for _, r := range v.Str {
			out = append(out, value.Str(string(r)))
		}
		return out, nil
	case value.KindArr, value.KindVec:
		// Iterate over a copy of the element slice so body mutations of
		// the container don't shift the sequence mid-loop.
		out := make([]value.Value, v.Agg.Len())
		copy(out, v.Agg.Items)
		return out, nil
	case value.KindSet:
		return nil, luzerr.Semantic(pos, "set is not iterable in a for-in loop")
	default:
		return nil, luzerr.Semantic(pos, "cannot iterate over %s", v.Kind)
	}
}

// runIteration runs one loop-body pass under its own per-iteration scope
// snapshot and translates break/continue at this boundary: broke=true
// carries break's value, continue just ends the pass.
func (in *Interpreter) runIteration(body *ast.Block, s *scope.Scope) (value.Value, bool, *luzerr.Error) {
	_, sig, err := in.evalBlock(body, s)
	if err != nil {
		return value.Null(), false, err
	}
	if sig != nil && sig.Kind == SigBreak {
		return sig.Value, true, nil
	}
	return value.Null(), false, nil
}

// runBoundIteration is runIteration with a loop variable bound first. The
// binding lives inside the iteration snapshot, so it — and any `const`
// declared in the body — is removed when the pass ends (spec §4.5).
func (in *Interpreter) runBoundIteration(name string, elem value.Value, body *ast.Block, s *scope.Scope) (value.Value, bool, *luzerr.Error) {
	snap := s.Snapshot()
	defer s.Restore(snap)

	s.Declare(name, elem, false)
	_, sig, err := in.evalBlock(body, s)
	if err != nil {
		return value.Null(), false, err
	}
	if sig != nil && sig.Kind == SigBreak {
		return sig.Value, true, nil
	}
	return value.Null(), false, nil
}
