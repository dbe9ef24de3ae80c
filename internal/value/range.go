package value

import "math"

// Range backs both Ran (half-open) and XRan (closed); which is which is
// carried by the owning Value's Kind, since the two share identical
// start/end/step math (spec §3).
type Range struct {
	Start, End float64
}

func step(start, end float64) float64 {
	if end > start {
		return 1
	}
	if end < start {
		return -1
	}
	return 0
}

func NewRan(start, end float64) Value {
	return Value{Kind: KindRan, Range: &Range{Start: start, End: end}}
}

func NewXRan(start, end float64) Value {
	return Value{Kind: KindXRan, Range: &Range{Start: start, End: end}}
}

// Iterate yields every element of the range in order. Ran is half-open
// ([start,end)); XRan is closed ([start,end]). Both step by ±1 toward End.
func (v Value) Iterate(yield func(float64) bool) {
	r := v.Range
	st := step(r.Start, r.End)
	if st == 0 {
		if v.Kind == KindXRan {
			yield(r.Start)
		}
		return
	}
	for cur := r.Start; ; cur += st {
		if v.Kind == KindRan {
			if (st > 0 && cur >= r.End) || (st < 0 && cur <= r.End) {
				break
			}
		} else {
			if (st > 0 && cur > r.End) || (st < 0 && cur < r.End) {
				break
			}
		}
		if !yield(cur) {
			return
		}
	}
}

// RangeLen reports the number of elements Iterate would produce, per the
// testable properties in spec §8.
func (v Value) RangeLen() int {
	r := v.Range
	if v.Kind == KindXRan {
		d := r.End - r.Start
		if d < 0 {
			d = -d
		}
		return int(d) + 1
	}
	d := r.End - r.Start
	if d < 0 {
		d = -d
	}
	return int(math.Ceil(d))
}

// Materialize turns a range into the requested aggregate kind, per the
// `as arr/vec/set` cast rule in spec §4.3.
func (v Value) Materialize(kind Kind) Value {
	var items []Value
	v.Iterate(func(f float64) bool {
		items = append(items, Num(f))
		return true
	})
	switch kind {
	case KindArr:
		return Value{Kind: KindArr, Agg: NewArr(items)}
	case KindVec:
		return Value{Kind: KindVec, Agg: NewVec(items)}
	case KindSet:
		return Value{Kind: KindSet, Agg: NewSet(items)}
	default:
		return Null()
	}
}

// First returns the first value of the range, per `firstof`.
func (v Value) First() Value { return Num(v.Range.Start) }

// Last returns the last value the range produces, per `lastof`: for Ran
// that's End - step (the last value strictly before End); for XRan it's
// End itself.
func (v Value) Last() Value {
	if v.Kind == KindXRan {
		return Num(v.Range.End)
	}
	st := step(v.Range.Start, v.Range.End)
	return Num(v.Range.End - st)
}

// ToRan / ToXRan implement the `ran <-> xran` endpoint adjustment from
// spec §4.3: converting shifts End by ±1 in the direction of travel so
// the set of yielded elements matches the other form where possible.
func (v Value) ToRan() Value {
	if v.Kind == KindRan {
		return v
	}
	st := step(v.Range.Start, v.Range.End)
	return NewRan(v.Range.Start, v.Range.End+st)
}

func (v Value) ToXRan() Value {
	if v.Kind == KindXRan {
		return v
	}
	st := step(v.Range.Start, v.Range.End)
	return NewXRan(v.Range.Start, v.Range.End-st)
}

// Shift returns a copy of the range with End displaced by n (used by
// `Range + n`) or, when shiftStart is true, Start displaced instead (used
// by `n + Range`).
func (v Value) Shift(n float64, shiftStart bool) Value {
	r := *v.Range
	if shiftStart {
		r.Start += n
	} else {
		r.End += n
	}
	return Value{Kind: v.Kind, Range: &r}
}

// RangeHas reports numeric range membership for the `has` operator.
func (v Value) RangeHas(n float64) bool {
	r := v.Range
	lo, hi := r.Start, r.End
	if lo > hi {
		lo, hi = hi, lo
	}
	if v.Kind == KindXRan {
		return n >= lo && n <= hi
	}
	if r.End >= r.Start {
		return n >= r.Start && n < r.End
	}
	return n > r.End && n <= r.Start
}
