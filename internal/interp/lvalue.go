package interp

import (
	"github.com/aledsdavies/luz/internal/ast"
	"github.com/aledsdavies/luz/internal/luzerr"
	"github.com/aledsdavies/luz/internal/operators"
	"github.com/aledsdavies/luz/internal/scope"
	"github.com/aledsdavies/luz/internal/token"
	"github.com/aledsdavies/luz/internal/value"
)

// compoundBase maps a compound assignment operator to the binary operator
// it combines with the current value (spec §4.4's `<op>=` family).
var compoundBase = map[token.Kind]token.Kind{
	token.PLUSEQ: token.PLUS, token.MINUSEQ: token.MINUS, token.STAREQ: token.STAR,
	token.SLASHEQ: token.SLASH, token.FLOOREQ: token.FLOORDIV, token.PERCENTEQ: token.PERCENT,
	token.POWEQ: token.POW, token.CARETEQ: token.CARET,
}

// readLValue reads the current value of an l-value target (Ident or
// Index) — it is exactly expression evaluation, so it's just eval.
func (in *Interpreter) readLValue(target ast.Node, s *scope.Scope) (value.Value, *Signal, *luzerr.Error) {
	return in.eval(target, s)
}

// writeLValue stores val into the l-value target, which must be an Ident
// or an Index chain rooted at one (the parser's tryLValue guarantees this
// shape; the evaluator re-checks it defensively).
func (in *Interpreter) writeLValue(target ast.Node, val value.Value, s *scope.Scope) *luzerr.Error {
	switch t := target.(type) {
	case *ast.Ident:
		return in.assignIdent(t, val, s)
	case *ast.Index:
		return in.writeIndex(t, val, s)
	default:
		return luzerr.Semantic(target.Pos(), "invalid assignment target")
	}
}

func (in *Interpreter) assignIdent(t *ast.Ident, val value.Value, s *scope.Scope) *luzerr.Error {
	if token.IsReserved(t.Name) {
		return luzerr.Semantic(t.Pos(), "cannot assign to reserved word %q", t.Name)
	}
	if b, ok := s.Get(t.Name); ok {
		if b.Const {
			return luzerr.Semantic(t.Pos(), "cannot reassign const %q", t.Name)
		}
		s.Set(t.Name, val)
		return nil
	}
	s.Declare(t.Name, val, false)
	return nil
}

// writeIndex implements `container[key] = val` / `container.N = val`.
// Only single-element writes are supported (spec never describes slice
// assignment); Arr/Vec bounds are checked per spec §3/§7, Set and scalar
// containers reject index-assignment outright.
func (in *Interpreter) writeIndex(t *ast.Index, val value.Value, s *scope.Scope) *luzerr.Error {
	container, sig, err := in.eval(t.Target, s)
	if err != nil {
		return err
	}
	if sig != nil {
		return luzerr.Semantic(t.Pos(), "'%s' is not valid inside an index expression", sig.Kind)
	}
	keyVal, sig, err := in.eval(t.Key, s)
	if err != nil {
		return err
	}
	if sig != nil {
		return luzerr.Semantic(t.Pos(), "'%s' is not valid inside an index expression", sig.Kind)
	}
	idx, ok := toInt(keyVal)
	if !ok {
		return luzerr.Semantic(t.Pos(), "index must be a number, got %s", keyVal.Kind)
	}
	switch container.Kind {
	case value.KindArr:
		if idx < 0 || idx >= container.Agg.Len() {
			return luzerr.Invalid(t.Pos(), "index %d out of bounds for arr of length %d", idx, container.Agg.Len())
		}
		container.Agg.Items[idx] = val
		return nil
	case value.KindVec:
		if idx < 0 || idx >= container.Agg.Len() {
			return luzerr.Invalid(t.Pos(), "index %d out of bounds for vec of length %d", idx, container.Agg.Len())
		}
		container.Agg.Items[idx] = val
		return nil
	default:
		return luzerr.Semantic(t.Pos(), "cannot index-assign into %s", container.Kind)
	}
}

func (in *Interpreter) evalAssign(n *ast.Assign, s *scope.Scope) (value.Value, *Signal, *luzerr.Error) {
	if n.Const {
		id, ok := n.Target.(*ast.Ident)
		if !ok {
			return value.Null(), nil, luzerr.Semantic(n.Pos(), "const declaration requires a plain name")
		}
		val, sig, err := in.eval(n.Value, s)
		if err != nil || sig != nil {
			return value.Null(), sig, err
		}
		if token.IsReserved(id.Name) {
			return value.Null(), nil, luzerr.Semantic(id.Pos(), "cannot assign to reserved word %q", id.Name)
		}
		if b, ok := s.Get(id.Name); ok && b.Const {
			return value.Null(), nil, luzerr.Semantic(id.Pos(), "cannot reassign const %q", id.Name)
		}
		s.Declare(id.Name, val, true)
		return val, nil, nil
	}

	if n.Op == token.ASSIGN {
		val, sig, err := in.eval(n.Value, s)
		if err != nil || sig != nil {
			return value.Null(), sig, err
		}
		if err := in.writeLValue(n.Target, val, s); err != nil {
			return value.Null(), nil, err
		}
		return val, nil, nil
	}

	cur, sig, err := in.readLValue(n.Target, s)
	if err != nil || sig != nil {
		return value.Null(), sig, err
	}
	rhs, sig, err := in.eval(n.Value, s)
	if err != nil || sig != nil {
		return value.Null(), sig, err
	}
	newVal, operr := operators.Binary(compoundBase[n.Op], cur, rhs, n.Pos())
	if operr != nil {
		return value.Null(), nil, operr.ToLuzErr()
	}
	if err := in.writeLValue(n.Target, newVal, s); err != nil {
		return value.Null(), nil, err
	}
	return newVal, nil, nil
}

// evalSwap implements `a <=> b`: both sides are read, then written back
// exchanged. Result is false when the two cells already held equal
// values (spec §4.4).
func (in *Interpreter) evalSwap(n *ast.Swap, s *scope.Scope) (value.Value, *Signal, *luzerr.Error) {
	lv, sig, err := in.eval(n.Left, s)
	if err != nil || sig != nil {
		return value.Null(), sig, err
	}
	rv, sig, err := in.eval(n.Right, s)
	if err != nil || sig != nil {
		return value.Null(), sig, err
	}
	equal := value.Equal(lv, rv)
	if err := in.writeLValue(n.Left, rv, s); err != nil {
		return value.Null(), nil, err
	}
	if err := in.writeLValue(n.Right, lv, s); err != nil {
		return value.Null(), nil, err
	}
	return value.Bool(!equal), nil, nil
}

// evalIndex implements `container[key]` / `container.N` reads. A
// Ran/XRan key slices the container instead of addressing one element
// (spec §4.4).
func (in *Interpreter) evalIndex(n *ast.Index, s *scope.Scope) (value.Value, *Signal, *luzerr.Error) {
	container, sig, err := in.eval(n.Target, s)
	if err != nil || sig != nil {
		return value.Null(), sig, err
	}
	key, sig, err := in.eval(n.Key, s)
	if err != nil || sig != nil {
		return value.Null(), sig, err
	}
	if key.Kind == value.KindRan || key.Kind == value.KindXRan {
		out, lerr := sliceByRange(container, key, n.Pos())
		return out, nil, lerr
	}
	idx, ok := toInt(key)
	if !ok {
		return value.Null(), nil, luzerr.Semantic(n.Pos(), "index must be a number, got %s", key.Kind)
	}
	out, lerr := indexRead(container, idx, n.Pos())
	return out, nil, lerr
}

func indexRead(container value.Value, idx int, pos token.Pos) (value.Value, *luzerr.Error) {
	switch container.Kind {
	case value.KindStr:
		runes := []rune(container.Str)
		if idx < 0 || idx >= len(runes) {
			return value.Null(), nil
		}
		return value.Str(string(runes[idx])), nil
	case value.KindArr, value.KindVec, value.KindSet:
		if idx < 0 || idx >= container.Agg.Len() {
			return value.Null(), nil
		}
		return container.Agg.Items[idx], nil
	case value.KindRan, value.KindXRan:
		n := container.RangeLen()
		if idx < 0 || idx >= n {
			return value.Null(), nil
		}
		var out value.Value
		i := 0
		container.Iterate(func(f float64) bool {
			if i == idx {
				out = value.Num(f)
				return false
			}
			i++
			return true
		})
		return out, nil
	default:
		return value.Null(), luzerr.Semantic(pos, "cannot index into %s", container.Kind)
	}
}

func sliceByRange(container, rng value.Value, pos token.Pos) (value.Value, *luzerr.Error) {
	switch container.Kind {
	case value.KindStr:
		runes := []rune(container.Str)
		var out []rune
		rng.Iterate(func(f float64) bool {
			i := int(f)
			if i >= 0 && i < len(runes) {
				out = append(out, runes[i])
			}
			return true
		})
		return value.Str(string(out)), nil
	case value.KindArr, value.KindVec, value.KindSet:
		var items []value.Value
		rng.Iterate(func(f float64) bool {
			i := int(f)
			if i >= 0 && i < container.Agg.Len() {
				items = append(items, container.Agg.Items[i])
			}
			return true
		})
		switch container.Kind {
		case value.KindArr:
			return value.Value{Kind: value.KindArr, Agg: value.NewArr(items)}, nil
		case value.KindVec:
			return value.Value{Kind: value.KindVec, Agg: value.NewVec(items)}, nil
		default:
			return value.Value{Kind: value.KindSet, Agg: value.NewSet(items)}, nil
		}
	default:
		return value.Null(), luzerr.Semantic(pos, "cannot slice %s with a range", container.Kind)
	}
}
