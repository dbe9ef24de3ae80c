package interp

import (
	"github.com/aledsdavies/luz/internal/ast"
	"github.com/aledsdavies/luz/internal/luzerr"
	"github.com/aledsdavies/luz/internal/scope"
	"github.com/aledsdavies/luz/internal/token"
	"github.com/aledsdavies/luz/internal/value"
)

// evalIntrinsic dispatches the operator-like prefix keywords of spec §4.3:
// the I/O pair log/logln and get/getln, the value inspectors lenof,
// sizeof, typeof, copyof, firstof, lastof, and the scope/element remover
// del. These live here rather than in package operators because they need
// the interpreter's callbacks and binding store.
func (in *Interpreter) evalIntrinsic(n *ast.Intrinsic, s *scope.Scope) (value.Value, *Signal, *luzerr.Error) {
	switch n.Op {
	case token.LOG, token.LOGLN:
		return in.evalLog(n, s)
	case token.GET, token.GETLN:
		return in.evalGet(n, s)
	case token.DEL:
		return in.evalDel(n, s)
	}

	v, sig, err := in.eval(n.Operand, s)
	if err != nil || sig != nil {
		return value.Null(), sig, err
	}
	switch n.Op {
	case token.TYPEOF:
		return value.Str(v.Kind.String()), nil, nil
	case token.COPYOF:
		return value.CopyOf(v), nil, nil
	case token.SIZEOF:
		return value.Num(float64(value.Sizeof(v))), nil, nil
	case token.LENOF:
		return lenOf(v, n.Pos())
	case token.FIRSTOF:
		return firstOf(v, n.Pos())
	case token.LASTOF:
		return lastOf(v, n.Pos())
	default:
		return value.Null(), nil, luzerr.Runtime(n.Pos(), "unknown intrinsic %s", n.Op)
	}
}

func (in *Interpreter) evalLog(n *ast.Intrinsic, s *scope.Scope) (value.Value, *Signal, *luzerr.Error) {
	out := ""
	if n.Operand != nil {
		v, sig, err := in.eval(n.Operand, s)
		if err != nil || sig != nil {
			return value.Null(), sig, err
		}
		out = value.FormatPlain(v)
	}
	if n.Op == token.LOGLN {
		out += "\n"
	}
	in.opts.LogFn(out)
	return value.Null(), nil, nil
}

func (in *Interpreter) evalGet(n *ast.Intrinsic, s *scope.Scope) (value.Value, *Signal, *luzerr.Error) {
	prompt := ""
	if n.Operand != nil {
		v, sig, err := in.eval(n.Operand, s)
		if err != nil || sig != nil {
			return value.Null(), sig, err
		}
		prompt = value.FormatPlain(v)
	}
	if n.Op == token.GETLN {
		line, err := in.opts.ReadLine(prompt)
		if err != nil {
			return value.Null(), nil, nil
		}
		return value.Str(line), nil, nil
	}
	tok, ok := in.nextGetToken(prompt)
	if !ok {
		return value.Null(), nil, nil
	}
	return value.Str(tok), nil, nil
}

// evalDel operates on the operand NODE, not its value: `del name` unbinds,
// `del name[i]` removes an element. Arr refuses (fixed length), Vec
// splices, Set removes by insertion-order position (spec §4.3).
func (in *Interpreter) evalDel(n *ast.Intrinsic, s *scope.Scope) (value.Value, *Signal, *luzerr.Error) {
	switch t := n.Operand.(type) {
	case *ast.Ident:
		if _, ok := s.Get(t.Name); !ok {
			return value.Null(), nil, luzerr.UndefinedVariable(t.Pos(), t.Name, s.Names())
		}
		s.Delete(t.Name)
		return value.Null(), nil, nil
	case *ast.Index:
		container, sig, err := in.eval(t.Target, s)
		if err != nil || sig != nil {
			return value.Null(), sig, err
		}
		key, sig, err := in.eval(t.Key, s)
		if err != nil || sig != nil {
			return value.Null(), sig, err
		}
		idx, ok := toInt(key)
		if !ok {
			return value.Null(), nil, luzerr.Semantic(t.Pos(), "del index must be a number, got %s", key.Kind)
		}
		switch container.Kind {
		case value.KindArr:
			return value.Null(), nil, luzerr.Invalid(t.Pos(), "cannot delete elements from a fixed-size arr")
		case value.KindVec, value.KindSet:
			if idx < 0 || idx >= container.Agg.Len() {
				return value.Null(), nil, luzerr.Invalid(t.Pos(), "index %d out of bounds for %s of length %d", idx, container.Kind, container.Agg.Len())
			}
			return container.Agg.RemoveAt(idx), nil, nil
		default:
			return value.Null(), nil, luzerr.Semantic(t.Pos(), "cannot delete elements from %s", container.Kind)
		}
	default:
		return value.Null(), nil, luzerr.Semantic(n.Pos(), "del requires a variable or element target")
	}
}

func lenOf(v value.Value, pos token.Pos) (value.Value, *Signal, *luzerr.Error) {
	switch v.Kind {
	case value.KindStr:
		return value.Num(float64(len([]rune(v.Str)))), nil, nil
	case value.KindArr, value.KindVec, value.KindSet:
		return value.Num(float64(v.Agg.Len())), nil, nil
	default:
		return value.Null(), nil, luzerr.Semantic(pos, "'lenof' is not defined for %s", v.Kind)
	}
}

func firstOf(v value.Value, pos token.Pos) (value.Value, *Signal, *luzerr.Error) {
	switch v.Kind {
	case value.KindStr:
		for _, r := range v.Str {
			return value.Str(string(r)), nil, nil
		}
		return value.Null(), nil, nil
	case value.KindArr, value.KindVec, value.KindSet:
		if v.Agg.Len() == 0 {
			return value.Null(), nil, nil
		}
		return v.Agg.Items[0], nil, nil
	case value.KindRan, value.KindXRan:
		if v.RangeLen() == 0 {
			return value.Null(), nil, nil
		}
		return v.First(), nil, nil
	default:
		return value.Null(), nil, luzerr.Semantic(pos, "'firstof' is not defined for %s", v.Kind)
	}
}

func lastOf(v value.Value, pos token.Pos) (value.Value, *Signal, *luzerr.Error) {
	switch v.Kind {
	case value.KindStr:
		runes := []rune(v.Str)
		if len(runes) == 0 {
			return value.Null(), nil, nil
		}
		return value.Str(string(runes[len(runes)-1])), nil, nil
	case value.KindArr, value.KindVec:
		if v.Agg.Len() == 0 {
			return value.Null(), nil, nil
		}
		return v.Agg.Items[v.Agg.Len()-1], nil, nil
	case value.KindSet:
		// lastof a set is the most recent add survivor, not the highest
		// index — that is the whole point of the ordered-last set.
		return v.Agg.Last(), nil, nil
	case value.KindRan, value.KindXRan:
		if v.RangeLen() == 0 {
			return value.Null(), nil, nil
		}
		return v.Last(), nil, nil
	default:
		return value.Null(), nil, luzerr.Semantic(pos, "'lastof' is not defined for %s", v.Kind)
	}
}
