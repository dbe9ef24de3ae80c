package operators

import (
	"math/big"

	"github.com/aledsdavies/luz/internal/token"
	"github.com/aledsdavies/luz/internal/value"
)

// Unary evaluates the prefix operators `+ - ! ~` (spec §4.3). `++`/`--`
// are l-value operations handled by the evaluator directly, since they
// need to write back to a binding.
func Unary(op token.Kind, v value.Value, pos token.Pos) (value.Value, *opError) {
	switch op {
	case token.PLUS:
		if f, ok := numeric(v); ok {
			if v.Kind == value.KindXL {
				return value.XL(new(big.Int).Set(v.XL)), nil
			}
			return value.Num(f), nil
		}
		return value.Null(), newErr(pos, "unary '+' requires a num/xl operand, got %s", v.Kind).semantic()
	case token.MINUS:
		if v.Kind == value.KindXL {
			return value.XL(new(big.Int).Neg(v.XL)), nil
		}
		if f, ok := numeric(v); ok {
			return value.Num(-f), nil
		}
		return value.Null(), newErr(pos, "unary '-' requires a num/xl operand, got %s", v.Kind).semantic()
	case token.NOT:
		return value.Bool(!v.Truthy()), nil
	case token.TILDE:
		i, ok := toInt(v)
		if !ok {
			return value.Null(), newErr(pos, "'~' requires an integer operand, got %s", v.Kind).semantic()
		}
		return value.Num(float64(^i)), nil
	default:
		return value.Null(), newErr(pos, "unsupported unary operator %s", op).internal()
	}
}

// IncDec applies the numeric delta of prefix/postfix ++/-- to v, returning
// the new value to store back into the l-value.
func IncDec(op token.Kind, v value.Value, pos token.Pos) (value.Value, *opError) {
	delta := 1.0
	if op == token.DEC {
		delta = -1.0
	}
	if v.Kind == value.KindXL {
		d := big.NewInt(int64(delta))
		return value.XL(new(big.Int).Add(v.XL, d)), nil
	}
	if f, ok := numeric(v); ok {
		return value.Num(f + delta), nil
	}
	return value.Null(), newErr(pos, "'%s' requires a numeric l-value, got %s", op, v.Kind).semantic()
}
