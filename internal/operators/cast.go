package operators

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/aledsdavies/luz/internal/token"
	"github.com/aledsdavies/luz/internal/value"
)

// MaybeFunc draws a random element for `as maybe`; the evaluator supplies
// an implementation backed by its seedable RNG injection point (spec §9
// "Random as maybe").
type MaybeFunc func(n int) int

// Cast implements `expr as T` for every concrete type tag T (spec §4.3).
// `as maybe` has no value.Kind of its own — the evaluator calls
// CastToMaybe for it directly.
func Cast(v value.Value, target value.Kind, pos token.Pos) (value.Value, *opError) {
	switch target {
	case value.KindNum:
		return castToNum(v, pos)
	case value.KindXL:
		return castToXL(v, pos)
	case value.KindBool:
		return value.Bool(v.Truthy()), nil
	case value.KindStr:
		return castToStr(v), nil
	case value.KindArr:
		return castToAgg(v, value.KindArr, pos)
	case value.KindVec:
		return castToAgg(v, value.KindVec, pos)
	case value.KindSet:
		return castToAgg(v, value.KindSet, pos)
	case value.KindRan:
		if v.Kind == value.KindRan || v.Kind == value.KindXRan {
			return v.ToRan(), nil
		}
		return value.Null(), newErr(pos, "cannot cast %s to ran", v.Kind).semantic()
	case value.KindXRan:
		if v.Kind == value.KindRan || v.Kind == value.KindXRan {
			return v.ToXRan(), nil
		}
		return value.Null(), newErr(pos, "cannot cast %s to xran", v.Kind).semantic()
	case value.KindNull:
		return value.Null(), nil
	case value.KindInf:
		if v.Kind == value.KindInf {
			return v, nil
		}
		return value.Null(), newErr(pos, "cannot cast %s to inf", v.Kind).semantic()
	default:
		return value.Null(), newErr(pos, "unknown cast target kind").internal()
	}
}

// CastToMaybe implements `as maybe`: a uniformly random element of a
// range/aggregate/string, or a uniformly random boolean for a scalar.
func CastToMaybe(v value.Value, pos token.Pos, pick MaybeFunc) (value.Value, *opError) {
	switch v.Kind {
	case value.KindRan, value.KindXRan:
		n := v.RangeLen()
		if n <= 0 {
			return value.Null(), nil
		}
		i := pick(n)
		var out value.Value
		idx := 0
		v.Iterate(func(f float64) bool {
			if idx == i {
				out = value.Num(f)
				return false
			}
			idx++
			return true
		})
		return out, nil
	case value.KindArr, value.KindVec, value.KindSet:
		if v.Agg.Len() == 0 {
			return value.Null(), nil
		}
		return v.Agg.Items[pick(v.Agg.Len())], nil
	case value.KindStr:
		runes := []rune(v.Str)
		if len(runes) == 0 {
			return value.Null(), nil
		}
		return value.Str(string(runes[pick(len(runes))])), nil
	default:
		return value.Bool(pick(2) == 1), nil
	}
}

func castToNum(v value.Value, pos token.Pos) (value.Value, *opError) {
	switch v.Kind {
	case value.KindNum, value.KindInf:
		return v, nil
	case value.KindXL:
		f, _ := new(big.Float).SetInt(v.XL).Float64()
		return value.Num(f), nil
	case value.KindBool:
		if v.Bool {
			return value.Num(1), nil
		}
		return value.Num(0), nil
	case value.KindStr:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return value.Null(), nil
		}
		return value.Num(f), nil
	default:
		return value.Null(), newErr(pos, "cannot cast %s to num", v.Kind).semantic()
	}
}

func castToXL(v value.Value, pos token.Pos) (value.Value, *opError) {
	switch v.Kind {
	case value.KindXL:
		return v, nil
	case value.KindNum:
		bi, _ := big.NewFloat(v.Num).Int(nil)
		return value.XL(bi), nil
	case value.KindStr:
		bi, ok := new(big.Int).SetString(strings.TrimSpace(v.Str), 10)
		if !ok {
			return value.Null(), nil
		}
		return value.XL(bi), nil
	case value.KindBool:
		if v.Bool {
			return value.XL(big.NewInt(1)), nil
		}
		return value.XL(big.NewInt(0)), nil
	default:
		return value.Null(), newErr(pos, "cannot cast %s to xl", v.Kind).semantic()
	}
}

func castToStr(v value.Value) value.Value {
	if v.Kind == value.KindRan || v.Kind == value.KindXRan {
		var parts []string
		v.Iterate(func(f float64) bool {
			parts = append(parts, value.FormatPlain(value.Num(f)))
			return true
		})
		return value.Str(strings.Join(parts, " "))
	}
	return value.Str(value.FormatPlain(v))
}

func castToAgg(v value.Value, target value.Kind, pos token.Pos) (value.Value, *opError) {
	var items []value.Value
	switch v.Kind {
	case value.KindRan, value.KindXRan:
		return v.Materialize(target), nil
	case value.KindArr, value.KindVec, value.KindSet:
		items = append(items, v.Agg.Items...)
	case value.KindStr:
		for _, r := range v.Str {
			items = append(items, value.Str(string(r)))
		}
	default:
		items = []value.Value{v}
	}
	switch target {
	case value.KindArr:
		return value.Value{Kind: value.KindArr, Agg: value.NewArr(items)}, nil
	case value.KindVec:
		return value.Value{Kind: value.KindVec, Agg: value.NewVec(items)}, nil
	case value.KindSet:
		return value.Value{Kind: value.KindSet, Agg: value.NewSet(items)}, nil
	default:
		return value.Null(), newErr(pos, "unreachable cast target").internal()
	}
}
