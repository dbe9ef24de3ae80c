// Package value implements Luz's value model (C3): the closed set of
// tagged value variants, numeric ranges, the ordered-last-insertion set,
// and the plain/debug formatters.
package value

import (
	"math"
	"math/big"
)

// Kind tags a Value's underlying variant. The string form of each Kind is
// exactly the type tag spec §3 says `typeof` must report.
type Kind int

const (
	KindNum Kind = iota
	KindXL
	KindBool
	KindStr
	KindNull
	KindArr
	KindVec
	KindSet
	KindInf
	KindRan
	KindXRan
)

func (k Kind) String() string {
	switch k {
	case KindNum:
		return "num"
	case KindXL:
		return "xl"
	case KindBool:
		return "bool"
	case KindStr:
		return "str"
	case KindNull:
		return "null"
	case KindArr:
		return "arr"
	case KindVec:
		return "vec"
	case KindSet:
		return "set"
	case KindInf:
		return "inf"
	case KindRan:
		return "ran"
	case KindXRan:
		return "xran"
	default:
		return "unknown"
	}
}

// Value is any Luz runtime value. Scalars (Num, Bool, Str, Null, Inf) are
// immutable and compared by Go equality; aggregates (Arr, Vec, Set) carry
// reference semantics via the pointer-typed Agg field, matching
// spec §3's "aggregates have reference semantics".
type Value struct {
	Kind Kind

	Num  float64  // KindNum, and also used to carry ±inf's sign for KindInf
	XL   *big.Int // KindXL
	Bool bool     // KindBool
	Str  string   // KindStr

	Agg   *Aggregate // KindArr, KindVec, KindSet
	Range *Range     // KindRan, KindXRan
}

// Num constructs a KindNum value, normalising NaN to Null per spec §3.
func Num(f float64) Value {
	if math.IsNaN(f) {
		return Null()
	}
	if math.IsInf(f, 0) {
		return Inf(f < 0)
	}
	return Value{Kind: KindNum, Num: f}
}

func Inf(negative bool) Value {
	if negative {
		return Value{Kind: KindInf, Num: math.Inf(-1)}
	}
	return Value{Kind: KindInf, Num: math.Inf(1)}
}

func XL(i *big.Int) Value { return Value{Kind: KindXL, XL: i} }

func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

func Str(s string) Value { return Value{Kind: KindStr, Str: s} }

func Null() Value { return Value{Kind: KindNull} }

// Truthy implements Luz's truthiness rule for `!`, `&&`, `||`, `??` and
// `if`/`loop` conditions: null and false are falsy, everything else
// (including 0, "", empty aggregates) is truthy.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNull:
		return false
	case KindBool:
		return v.Bool
	default:
		return true
	}
}

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// Equal implements `==`. Scalars compare structurally; aggregates compare
// by reference identity on their underlying container (§9 open question:
// the source compares aggregate __value references, so `[1] == [1]` is
// false unless both names are bound to the same container).
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		// num/xl cross-kind equality is allowed; everything else isn't.
		if (a.Kind == KindNum && b.Kind == KindXL) || (a.Kind == KindXL && b.Kind == KindNum) {
			af, aok := asFloat(a)
			bf, bok := asFloat(b)
			return aok && bok && af == bf
		}
		return false
	}
	switch a.Kind {
	case KindNum, KindInf:
		return a.Num == b.Num
	case KindXL:
		return a.XL.Cmp(b.XL) == 0
	case KindBool:
		return a.Bool == b.Bool
	case KindStr:
		return a.Str == b.Str
	case KindNull:
		return true
	case KindArr, KindVec, KindSet:
		return a.Agg == b.Agg
	case KindRan, KindXRan:
		return a.Range.Start == b.Range.Start && a.Range.End == b.Range.End && a.Kind == b.Kind
	default:
		return false
	}
}

func asFloat(v Value) (float64, bool) {
	switch v.Kind {
	case KindNum:
		return v.Num, true
	case KindXL:
		f, _ := new(big.Float).SetInt(v.XL).Float64()
		return f, true
	default:
		return 0, false
	}
}

// CopyOf performs the deep structural clone `copyof` exposes: aggregates
// are recursively cloned into fresh containers; xl gets a fresh big.Int;
// other scalars (already value types in Go) are returned unchanged.
func CopyOf(v Value) Value {
	switch v.Kind {
	case KindArr, KindVec, KindSet:
		return Value{Kind: v.Kind, Agg: v.Agg.deepClone()}
	case KindXL:
		return XL(new(big.Int).Set(v.XL))
	default:
		return v
	}
}
