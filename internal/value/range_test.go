package value

import "testing"

func collect(v Value) []float64 {
	var out []float64
	v.Iterate(func(f float64) bool {
		out = append(out, f)
		return true
	})
	return out
}

// TestRanIteration tests the half-open element counts of spec §8: b-a
// elements ascending, a-b descending, zero when equal.
func TestRanIteration(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		want       []float64
	}{
		{"ascending", 0, 3, []float64{0, 1, 2}},
		{"descending", 3, 0, []float64{3, 2, 1}},
		{"empty", 2, 2, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(NewRan(tt.start, tt.end))
			if len(got) != len(tt.want) {
				t.Fatalf("Ran(%v,%v) yielded %v, want %v", tt.start, tt.end, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("element %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
			if n := NewRan(tt.start, tt.end).RangeLen(); n != len(tt.want) {
				t.Errorf("RangeLen = %d, want %d", n, len(tt.want))
			}
		})
	}
}

// TestXRanIteration tests the closed form: |b-a|+1 elements, and exactly
// one element when the bounds coincide.
func TestXRanIteration(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		want       []float64
	}{
		{"ascending", 0, 3, []float64{0, 1, 2, 3}},
		{"descending", 3, 1, []float64{3, 2, 1}},
		{"single", 2, 2, []float64{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(NewXRan(tt.start, tt.end))
			if len(got) != len(tt.want) {
				t.Fatalf("XRan(%v,%v) yielded %v, want %v", tt.start, tt.end, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("element %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// TestFirstLast tests firstof/lastof over both range forms: Ran's last is
// end minus one step, XRan's is end itself.
func TestFirstLast(t *testing.T) {
	ran := NewRan(1, 5)
	if !Equal(ran.First(), Num(1)) || !Equal(ran.Last(), Num(4)) {
		t.Errorf("Ran(1,5) first/last = %s/%s, want 1/4", FormatPlain(ran.First()), FormatPlain(ran.Last()))
	}
	xran := NewXRan(1, 5)
	if !Equal(xran.Last(), Num(5)) {
		t.Errorf("XRan(1,5) last = %s, want 5", FormatPlain(xran.Last()))
	}
	desc := NewRan(5, 1)
	if !Equal(desc.Last(), Num(2)) {
		t.Errorf("Ran(5,1) last = %s, want 2", FormatPlain(desc.Last()))
	}
}

// TestRanXRanConversion tests the ±1 endpoint adjustment: converting
// between forms preserves the yielded element set.
func TestRanXRanConversion(t *testing.T) {
	ran := NewRan(0, 3)
	asX := ran.ToXRan()
	if asX.Range.End != 2 {
		t.Errorf("Ran(0,3) as xran ends at %v, want 2", asX.Range.End)
	}
	back := asX.ToRan()
	if back.Range.End != 3 {
		t.Errorf("round trip ends at %v, want 3", back.Range.End)
	}
	descending := NewXRan(5, 2).ToRan()
	if descending.Range.End != 1 {
		t.Errorf("XRan(5,2) as ran ends at %v, want 1", descending.Range.End)
	}
}

// TestShift tests range arithmetic: `r + n` displaces the end, `n + r`
// the start.
func TestShift(t *testing.T) {
	r := NewRan(0, 3)
	if got := r.Shift(2, false); got.Range.End != 5 || got.Range.Start != 0 {
		t.Errorf("Shift end: got %v..%v", got.Range.Start, got.Range.End)
	}
	if got := r.Shift(2, true); got.Range.Start != 2 || got.Range.End != 3 {
		t.Errorf("Shift start: got %v..%v", got.Range.Start, got.Range.End)
	}
}

// TestRangeHas tests membership for ascending, descending, and closed
// forms.
func TestRangeHas(t *testing.T) {
	if !NewRan(0, 3).RangeHas(2) || NewRan(0, 3).RangeHas(3) {
		t.Error("Ran(0,3) membership wrong at the open end")
	}
	if !NewXRan(0, 3).RangeHas(3) {
		t.Error("XRan(0,3) must include 3")
	}
	if !NewRan(3, 0).RangeHas(3) || NewRan(3, 0).RangeHas(0) {
		t.Error("Ran(3,0) membership wrong for descending bounds")
	}
}

// TestMaterialize tests range-to-aggregate conversion.
func TestMaterialize(t *testing.T) {
	v := NewRan(0, 3).Materialize(KindVec)
	if v.Kind != KindVec || v.Agg.Len() != 3 {
		t.Fatalf("materialized = %s", FormatPlain(v))
	}
	s := NewXRan(1, 1).Materialize(KindSet)
	if s.Agg.Len() != 1 {
		t.Errorf("XRan(1,1) as set has %d elements, want 1", s.Agg.Len())
	}
}
