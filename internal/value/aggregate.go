package value

// Aggregate is the shared backing store for Arr, Vec and Set. Arr is
// fixed-length from construction (Fixed=true); Vec is growable; Set keeps
// insertion order and remembers the index of the most recently
// added or re-added element (LastIdx) for `lastof`.
//
// All three share one struct (rather than three Go slice types) because
// they are interchangeable through a pointer for reference-equality and
// cycle-aware sizeof/format, matching spec §3's "aggregates have
// reference semantics".
type Aggregate struct {
	Items   []Value
	Fixed   bool // Arr: true, length invariant after construction
	IsSet   bool // Set: enforces uniqueness and tracks LastIdx
	LastIdx int  // Set: index of the most recently inserted/updated element
}

func NewArr(items []Value) *Aggregate {
	return &Aggregate{Items: items, Fixed: true}
}

func NewVec(items []Value) *Aggregate {
	cp := make([]Value, len(items))
	copy(cp, items)
	return &Aggregate{Items: cp}
}

func NewSet(items []Value) *Aggregate {
	s := &Aggregate{IsSet: true, LastIdx: -1}
	for _, it := range items {
		s.SetAdd(it)
	}
	return s
}

func (a *Aggregate) Len() int { return len(a.Items) }

// SetAdd inserts v if not already present (by Equal), or moves it to
// "most recently touched" if it is, and records LastIdx either way. This
// is how Set remembers insertion order and exposes it to `lastof`.
func (a *Aggregate) SetAdd(v Value) {
	for i, it := range a.Items {
		if Equal(it, v) {
			a.LastIdx = i
			return
		}
	}
	a.Items = append(a.Items, v)
	a.LastIdx = len(a.Items) - 1
}

// SetRemove deletes the first element equal to v, if present.
func (a *Aggregate) SetRemove(v Value) bool {
	for i, it := range a.Items {
		if Equal(it, v) {
			a.RemoveAt(i)
			return true
		}
	}
	return false
}

// Last returns the most recently inserted/updated element of a Set, or
// Null if empty.
func (a *Aggregate) Last() Value {
	if a.LastIdx < 0 || a.LastIdx >= len(a.Items) {
		return Null()
	}
	return a.Items[a.LastIdx]
}

// RemoveAt splices out the element at index i (caller has bounds-checked),
// keeping a Set's LastIdx pointing at the most recent add survivor.
func (a *Aggregate) RemoveAt(i int) Value {
	v := a.Items[i]
	a.Items = append(a.Items[:i], a.Items[i+1:]...)
	if a.LastIdx == i {
		a.LastIdx = len(a.Items) - 1
	} else if a.LastIdx > i {
		a.LastIdx--
	}
	return v
}

// RemoveLastOccurrence removes the last index holding a value equal to v
// (used by Vec's `-` operator, spec §4.3).
func (a *Aggregate) RemoveLastOccurrence(v Value) bool {
	for i := len(a.Items) - 1; i >= 0; i-- {
		if Equal(a.Items[i], v) {
			a.Items = append(a.Items[:i], a.Items[i+1:]...)
			return true
		}
	}
	return false
}

func (a *Aggregate) deepClone() *Aggregate {
	out := &Aggregate{Items: make([]Value, len(a.Items)), Fixed: a.Fixed, IsSet: a.IsSet, LastIdx: a.LastIdx}
	for i, it := range a.Items {
		out.Items[i] = CopyOf(it)
	}
	return out
}

// Cyclic reports whether root transitively contains itself. The formatter
// and sizeof do not call it; they track visited aggregates themselves.
func Cyclic(root *Aggregate) bool {
	return containsAgg(root, root, map[*Aggregate]bool{})
}

func containsAgg(needle, hay *Aggregate, seen map[*Aggregate]bool) bool {
	if seen[hay] {
		return false
	}
	seen[hay] = true
	for _, it := range hay.Items {
		if it.Agg == needle {
			return true
		}
		if it.Agg != nil && containsAgg(needle, it.Agg, seen) {
			return true
		}
	}
	return false
}
