// Package operators implements Luz's operator kernel (C5): every binary
// and unary operator, keyed by (op, left kind, right kind) the way
// spec §4.3 tables them, plus the `as` cast rules. I/O-bound and
// scope-bound intrinsics (log, get, del, ...) are wired in package interp
// instead, since they need the interpreter's callbacks and binding store.
package operators

import (
	"math"
	"math/big"
	"strings"

	"github.com/aledsdavies/luz/internal/token"
	"github.com/aledsdavies/luz/internal/value"
)

// numeric reduces a Num/XL/Inf value down to a float64 for arithmetic
// that doesn't need big-int precision. ok is false for any other kind.
func numeric(v value.Value) (float64, bool) {
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

func bothXL(a, b value.Value) bool { return a.Kind == value.KindXL && b.Kind == value.KindXL }

// Binary evaluates a binary arithmetic, comparison, bitwise or `has`
// operator over two already-evaluated operands. Logical &&/||/?? are
// handled by the evaluator directly since they short-circuit evaluation,
// not just computation.
func Binary(op token.Kind, l, r value.Value, pos token.Pos) (value.Value, *opError) {
	switch op {
	case token.PLUS:
		return add(l, r, pos)
	case token.MINUS:
		return sub(l, r, pos)
	case token.STAR:
		return arith(l, r, pos, func(a, b float64) float64 { return a * b }, func(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) })
	case token.SLASH:
		return divide(l, r, pos)
	case token.FLOORDIV:
		return floorDivide(l, r, pos)
	case token.PERCENT:
		return modulo(l, r, pos)
	case token.POW:
		return power(l, r, pos)
	case token.AMP, token.PIPE, token.CARET, token.SHL, token.SHR, token.USHR:
		return bitwise(op, l, r, pos)
	case token.EQ:
		return value.Bool(value.Equal(l, r)), nil
	case token.NE:
		return value.Bool(!value.Equal(l, r)), nil
	case token.LT, token.LE, token.GT, token.GE:
		return compare(op, l, r, pos)
	case token.HAS:
		return has(l, r, pos)
	default:
		return value.Null(), newErr(pos, "unsupported binary operator %s", op)
	}
}

func add(l, r value.Value, pos token.Pos) (value.Value, *opError) {
	if lf, lok := numeric(l); lok {
		if rf, rok := numeric(r); rok {
			if bothXL(l, r) {
				return value.XL(new(big.Int).Add(l.XL, r.XL)), nil
			}
			return value.Num(lf + rf), nil
		}
	}
	switch l.Kind {
	case value.KindVec:
		items := append(append([]value.Value{}, l.Agg.Items...), r)
		return value.Value{Kind: value.KindVec, Agg: value.NewVec(items)}, nil
	case value.KindSet:
		clone := value.CopyOf(l).Agg
		clone.SetAdd(r)
		return value.Value{Kind: value.KindSet, Agg: clone}, nil
	case value.KindArr:
		return value.Null(), newErr(pos, "cannot grow a fixed-size arr with '+'; use vec instead").invalid()
	case value.KindRan, value.KindXRan:
		if n, ok := numeric(r); ok {
			return l.Shift(n, false), nil
		}
	case value.KindStr:
		return value.Str(l.Str + value.FormatPlain(r)), nil
	}
	switch r.Kind {
	case value.KindVec:
		items := append([]value.Value{l}, r.Agg.Items...)
		return value.Value{Kind: value.KindVec, Agg: value.NewVec(items)}, nil
	case value.KindSet:
		clone := value.CopyOf(r).Agg
		// prepend semantics: rebuild with l first
		items := append([]value.Value{l}, clone.Items...)
		return value.Value{Kind: value.KindSet, Agg: value.NewSet(items)}, nil
	case value.KindArr:
		return value.Null(), newErr(pos, "cannot grow a fixed-size arr with '+'; use vec instead").invalid()
	case value.KindRan, value.KindXRan:
		if n, ok := numeric(l); ok {
			return r.Shift(n, true), nil
		}
	}
	return value.Null(), newErr(pos, "'+' is not defined for %s and %s", l.Kind, r.Kind).semantic()
}

func sub(l, r value.Value, pos token.Pos) (value.Value, *opError) {
	if lf, lok := numeric(l); lok {
		if rf, rok := numeric(r); rok {
			if bothXL(l, r) {
				return value.XL(new(big.Int).Sub(l.XL, r.XL)), nil
			}
			return value.Num(lf - rf), nil
		}
	}
	switch l.Kind {
	case value.KindVec:
		clone := value.CopyOf(l).Agg
		clone.RemoveLastOccurrence(r)
		return value.Value{Kind: value.KindVec, Agg: clone}, nil
	case value.KindSet:
		clone := value.CopyOf(l).Agg
		clone.SetRemove(r)
		return value.Value{Kind: value.KindSet, Agg: clone}, nil
	case value.KindArr:
		return value.Null(), newErr(pos, "cannot remove elements from a fixed-size arr").invalid()
	case value.KindRan, value.KindXRan:
		if n, ok := numeric(r); ok {
			return l.Shift(-n, false), nil
		}
	}
	return value.Null(), newErr(pos, "'-' is not defined for %s and %s", l.Kind, r.Kind).semantic()
}

func arith(l, r value.Value, pos token.Pos, ff func(a, b float64) float64, bf func(a, b *big.Int) *big.Int) (value.Value, *opError) {
	if bothXL(l, r) {
		return value.XL(bf(l.XL, r.XL)), nil
	}
	lf, lok := numeric(l)
	rf, rok := numeric(r)
	if !lok || !rok {
		return value.Null(), newErr(pos, "arithmetic requires num/xl operands, got %s and %s", l.Kind, r.Kind).semantic()
	}
	return value.Num(ff(lf, rf)), nil
}

func divide(l, r value.Value, pos token.Pos) (value.Value, *opError) {
	if bothXL(l, r) {
		if r.XL.Sign() == 0 {
			return value.Null(), nil
		}
		q := new(big.Int)
		q.Quo(l.XL, r.XL)
		return value.XL(q), nil
	}
	return arith(l, r, pos, func(a, b float64) float64 { return a / b }, nil)
}

func floorDivide(l, r value.Value, pos token.Pos) (value.Value, *opError) {
	if bothXL(l, r) {
		if r.XL.Sign() == 0 {
			return value.Null(), nil
		}
		q := new(big.Int)
		m := new(big.Int)
		q.DivMod(l.XL, r.XL, m)
		return value.XL(q), nil
	}
	return arith(l, r, pos, func(a, b float64) float64 { return math.Floor(a / b) }, nil)
}

func modulo(l, r value.Value, pos token.Pos) (value.Value, *opError) {
	if bothXL(l, r) {
		if r.XL.Sign() == 0 {
			return value.Null(), nil
		}
		m := new(big.Int).Mod(l.XL, r.XL)
		return value.XL(m), nil
	}
	return arith(l, r, pos, math.Mod, nil)
}

func power(l, r value.Value, pos token.Pos) (value.Value, *opError) {
	if bothXL(l, r) {
		if r.XL.Sign() < 0 {
			return value.Null(), nil
		}
		return value.XL(new(big.Int).Exp(l.XL, r.XL, nil)), nil
	}
	return arith(l, r, pos, math.Pow, nil)
}

func toInt(v value.Value) (int64, bool) {
	switch v.Kind {
	case value.KindNum:
		return int64(v.Num), true
	case value.KindXL:
		return v.XL.Int64(), true
	default:
		return 0, false
	}
}

func bitwise(op token.Kind, l, r value.Value, pos token.Pos) (value.Value, *opError) {
	li, lok := toInt(l)
	ri, rok := toInt(r)
	if !lok || !rok {
		return value.Null(), newErr(pos, "bitwise '%s' requires integer operands", op).semantic()
	}
	switch op {
	case token.AMP:
		return value.Num(float64(li & ri)), nil
	case token.PIPE:
		return value.Num(float64(li | ri)), nil
	case token.CARET:
		return value.Num(float64(li ^ ri)), nil
	case token.SHL:
		return value.Num(float64(li << uint(ri))), nil
	case token.SHR:
		return value.Num(float64(li >> uint(ri))), nil
	case token.USHR:
		return value.Num(float64(uint64(li) >> uint(ri))), nil
	default:
		return value.Null(), newErr(pos, "unknown bitwise operator").internal()
	}
}

func compare(op token.Kind, l, r value.Value, pos token.Pos) (value.Value, *opError) {
	lf, lok := numeric(l)
	rf, rok := numeric(r)
	if !lok || !rok {
		return value.Null(), newErr(pos, "comparison requires both sides to be num/xl, got %s and %s", l.Kind, r.Kind).semantic()
	}
	switch op {
	case token.LT:
		return value.Bool(lf < rf), nil
	case token.LE:
		return value.Bool(lf <= rf), nil
	case token.GT:
		return value.Bool(lf > rf), nil
	case token.GE:
		return value.Bool(lf >= rf), nil
	default:
		return value.Null(), newErr(pos, "unknown comparison operator").internal()
	}
}

func has(l, r value.Value, pos token.Pos) (value.Value, *opError) {
	switch l.Kind {
	case value.KindRan, value.KindXRan:
		if n, ok := numeric(r); ok {
			return value.Bool(l.RangeHas(n)), nil
		}
		return value.Bool(false), nil
	case value.KindArr, value.KindVec:
		for _, it := range l.Agg.Items {
			if value.Equal(it, r) {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	case value.KindSet:
		for _, it := range l.Agg.Items {
			if value.Equal(it, r) {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	case value.KindStr:
		if r.Kind == value.KindStr {
			return value.Bool(strings.Contains(l.Str, r.Str)), nil
		}
		return value.Bool(false), nil
	case value.KindNull:
		return value.Bool(false), nil
	default:
		return value.Null(), newErr(pos, "'has' is not defined for %s", l.Kind).semantic()
	}
}
