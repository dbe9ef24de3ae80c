package interp

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/aledsdavies/luz/internal/ast"
	"github.com/aledsdavies/luz/internal/luzerr"
	"github.com/aledsdavies/luz/internal/operators"
	"github.com/aledsdavies/luz/internal/scope"
	"github.com/aledsdavies/luz/internal/token"
	"github.com/aledsdavies/luz/internal/value"
)

// eval is the AST evaluator (C6): one recursive tree-walk, dispatching by
// concrete node type. It returns a non-nil *Signal the instant a `break`
// or `continue` is produced anywhere in a subtree, instead of continuing
// to evaluate sibling expressions — callers must check it exactly like an
// error before proceeding.
func (in *Interpreter) eval(node ast.Node, s *scope.Scope) (value.Value, *Signal, *luzerr.Error) {
	switch n := node.(type) {
	case *ast.NumberLit:
		return in.evalNumberLit(n)
	case *ast.BigIntLit:
		return in.evalBigIntLit(n)
	case *ast.StringLit:
		return in.evalStringLit(n, s)
	case *ast.BoolLit:
		return value.Bool(n.Value), nil, nil
	case *ast.NullLit:
		return value.Null(), nil, nil
	case *ast.InfLit:
		return value.Inf(n.Negative), nil, nil
	case *ast.MaybeLit:
		return value.Bool(in.randIndex(2) == 1), nil, nil
	case *ast.Ident:
		return in.evalIdent(n, s)
	case *ast.AggLit:
		return in.evalAggLit(n, s)
	case *ast.Index:
		return in.evalIndex(n, s)
	case *ast.Unary:
		return in.evalUnary(n, s)
	case *ast.IncDec:
		return in.evalIncDec(n, s)
	case *ast.Binary:
		return in.evalBinary(n, s)
	case *ast.Logical:
		return in.evalLogical(n, s)
	case *ast.RangeExpr:
		return in.evalRange(n, s)
	case *ast.Cast:
		return in.evalCast(n, s)
	case *ast.Intrinsic:
		return in.evalIntrinsic(n, s)
	case *ast.Assign:
		return in.evalAssign(n, s)
	case *ast.Swap:
		return in.evalSwap(n, s)
	case *ast.IfExpr:
		return in.evalIf(n, s)
	case *ast.Block:
		return in.evalBlock(n, s)
	case *ast.LoopExpr:
		return in.evalLoop(n, s)
	case *ast.BreakExpr:
		return in.evalBreak(n, s)
	case *ast.ContinueExpr:
		return value.Null(), &Signal{Kind: SigContinue}, nil
	default:
		return value.Null(), nil, luzerr.Runtime(node.Pos(), "unhandled node type %T", node)
	}
}

func (in *Interpreter) evalNumberLit(n *ast.NumberLit) (value.Value, *Signal, *luzerr.Error) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(n.Value, "_", ""), 64)
	if err != nil {
		return value.Null(), nil, luzerr.Syntax(n.Pos(), "malformed number literal %q", n.Value)
	}
	return value.Num(f), nil, nil
}

func (in *Interpreter) evalBigIntLit(n *ast.BigIntLit) (value.Value, *Signal, *luzerr.Error) {
	digits := strings.ReplaceAll(n.Value, "_", "")
	digits = digits[:len(digits)-2] // strip the 'xl'/'XL' suffix
	bi, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return value.Null(), nil, luzerr.Syntax(n.Pos(), "malformed big-int literal %q", n.Value)
	}
	return value.XL(bi), nil, nil
}

func (in *Interpreter) evalStringLit(n *ast.StringLit, s *scope.Scope) (value.Value, *Signal, *luzerr.Error) {
	if n.Parts == nil {
		return value.Str(n.Value), nil, nil
	}
	var b strings.Builder
	for _, part := range n.Parts {
		if part.Expr == nil {
			b.WriteString(part.Text)
			continue
		}
		v, sig, err := in.eval(part.Expr, s)
		if err != nil || sig != nil {
			return value.Null(), sig, err
		}
		b.WriteString(value.FormatPlain(v))
	}
	return value.Str(b.String()), nil, nil
}

func (in *Interpreter) evalIdent(n *ast.Ident, s *scope.Scope) (value.Value, *Signal, *luzerr.Error) {
	b, ok := s.Get(n.Name)
	if !ok {
		return value.Null(), nil, luzerr.UndefinedVariable(n.Pos(), n.Name, s.Names())
	}
	return b.Value, nil, nil
}

func (in *Interpreter) evalAggLit(n *ast.AggLit, s *scope.Scope) (value.Value, *Signal, *luzerr.Error) {
	var items []value.Value
	if n.Count != nil {
		countVal, sig, err := in.eval(n.Count, s)
		if err != nil || sig != nil {
			return value.Null(), sig, err
		}
		count, ok := toInt(countVal)
		if !ok || count < 0 {
			return value.Null(), nil, luzerr.Semantic(n.Pos(), "length-replication count must be a non-negative number")
		}
		for i := 0; i < count; i++ {
			v, sig, err := in.eval(n.Elem, s)
			if err != nil || sig != nil {
				return value.Null(), sig, err
			}
			items = append(items, v)
		}
	} else {
		for _, e := range n.Elems {
			v, sig, err := in.eval(e, s)
			if err != nil || sig != nil {
				return value.Null(), sig, err
			}
			items = append(items, v)
		}
	}
	switch n.Kind {
	case ast.ArrKind:
		return value.Value{Kind: value.KindArr, Agg: value.NewArr(items)}, nil, nil
	case ast.VecKind:
		return value.Value{Kind: value.KindVec, Agg: value.NewVec(items)}, nil, nil
	case ast.SetKind:
		return value.Value{Kind: value.KindSet, Agg: value.NewSet(items)}, nil, nil
	default:
		return value.Null(), nil, luzerr.Runtime(n.Pos(), "unknown aggregate literal kind")
	}
}

func (in *Interpreter) evalUnary(n *ast.Unary, s *scope.Scope) (value.Value, *Signal, *luzerr.Error) {
	v, sig, err := in.eval(n.Operand, s)
	if err != nil || sig != nil {
		return value.Null(), sig, err
	}
	out, operr := operators.Unary(n.Op, v, n.Pos())
	if operr != nil {
		return value.Null(), nil, operr.ToLuzErr()
	}
	return out, nil, nil
}

func (in *Interpreter) evalIncDec(n *ast.IncDec, s *scope.Scope) (value.Value, *Signal, *luzerr.Error) {
	cur, sig, err := in.readLValue(n.Target, s)
	if err != nil || sig != nil {
		return value.Null(), sig, err
	}
	updated, operr := operators.IncDec(n.Op, cur, n.Pos())
	if operr != nil {
		return value.Null(), nil, operr.ToLuzErr()
	}
	if err := in.writeLValue(n.Target, updated, s); err != nil {
		return value.Null(), nil, err
	}
	if n.Postfix {
		return cur, nil, nil
	}
	return updated, nil, nil
}

func (in *Interpreter) evalBinary(n *ast.Binary, s *scope.Scope) (value.Value, *Signal, *luzerr.Error) {
	l, sig, err := in.eval(n.Left, s)
	if err != nil || sig != nil {
		return value.Null(), sig, err
	}
	r, sig, err := in.eval(n.Right, s)
	if err != nil || sig != nil {
		return value.Null(), sig, err
	}
	out, operr := operators.Binary(n.Op, l, r, n.Pos())
	if operr != nil {
		return value.Null(), nil, operr.ToLuzErr()
	}
	return out, nil, nil
}

// evalLogical implements short-circuiting &&, || and ??. The AST redesign
// (spec §9) means the right operand subtree already exists in full from
// parsing — short-circuiting here just means not walking it, with no need
// for the source's "skip mode" parser flag.
func (in *Interpreter) evalLogical(n *ast.Logical, s *scope.Scope) (value.Value, *Signal, *luzerr.Error) {
	l, sig, err := in.eval(n.Left, s)
	if err != nil || sig != nil {
		return value.Null(), sig, err
	}
	switch n.Op {
	case token.OROR:
		if l.Truthy() {
			return l, nil, nil
		}
	case token.ANDAND:
		if !l.Truthy() {
			return l, nil, nil
		}
	case token.NULLISH:
		if !l.IsNull() {
			return l, nil, nil
		}
	}
	return in.eval(n.Right, s)
}

func (in *Interpreter) evalRange(n *ast.RangeExpr, s *scope.Scope) (value.Value, *Signal, *luzerr.Error) {
	start, sig, err := in.eval(n.Start, s)
	if err != nil || sig != nil {
		return value.Null(), sig, err
	}
	end, sig, err := in.eval(n.End, s)
	if err != nil || sig != nil {
		return value.Null(), sig, err
	}
	sf, ok := toNum(start)
	if !ok {
		return value.Null(), nil, luzerr.Semantic(n.Pos(), "range bounds must be num/xl, got %s", start.Kind)
	}
	ef, ok := toNum(end)
	if !ok {
		return value.Null(), nil, luzerr.Semantic(n.Pos(), "range bounds must be num/xl, got %s", end.Kind)
	}
	if n.Closed {
		return value.NewXRan(sf, ef), nil, nil
	}
	return value.NewRan(sf, ef), nil, nil
}

func (in *Interpreter) evalCast(n *ast.Cast, s *scope.Scope) (value.Value, *Signal, *luzerr.Error) {
	operand, sig, err := in.eval(n.Operand, s)
	if err != nil || sig != nil {
		return value.Null(), sig, err
	}
	if n.TypeOfOf != nil {
		other, sig, err := in.eval(n.TypeOfOf, s)
		if err != nil || sig != nil {
			return value.Null(), sig, err
		}
		out, operr := operators.Cast(operand, other.Kind, n.Pos())
		if operr != nil {
			return value.Null(), nil, operr.ToLuzErr()
		}
		return out, nil, nil
	}
	if n.Type == "maybe" {
		out, operr := operators.CastToMaybe(operand, n.Pos(), in.randIndex)
		if operr != nil {
			return value.Null(), nil, operr.ToLuzErr()
		}
		return out, nil, nil
	}
	kind, ok := value.ParseTag(n.Type)
	if !ok {
		return value.Null(), nil, luzerr.Semantic(n.Pos(), "unknown type tag %q", n.Type)
	}
	out, operr := operators.Cast(operand, kind, n.Pos())
	if operr != nil {
		return value.Null(), nil, operr.ToLuzErr()
	}
	return out, nil, nil
}

// --- helpers shared with operators (kept local so eval.go never reaches
// into operators' unexported internals) -------------------------------------

func toNum(v value.Value) (float64, bool) {
	switch v.Kind {
	case value.KindNum, value.KindInf:
		return v.Num, true
	case value.KindXL:
		f, _ := new(big.Float).SetInt(v.XL).Float64()
		return f, true
	default:
		return 0, false
	}
}

func toInt(v value.Value) (int, bool) {
	f, ok := toNum(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}
