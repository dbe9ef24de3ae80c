package scope

import (
	"sort"
	"testing"

	"github.com/aledsdavies/luz/internal/value"
)

// TestSnapshotRestore tests the block-scope rule: names introduced after
// the snapshot vanish on restore, while writes to pre-existing names
// survive (no lexical shadowing).
func TestSnapshotRestore(t *testing.T) {
	s := New()
	s.Declare("x", value.Num(1), false)

	snap := s.Snapshot()
	s.Set("x", value.Num(2))
	s.Declare("y", value.Num(5), false)
	s.Restore(snap)

	b, ok := s.Get("x")
	if !ok || !value.Equal(b.Value, value.Num(2)) {
		t.Errorf("x after restore = %v, want the inner write 2 to persist", b.Value)
	}
	if _, ok := s.Get("y"); ok {
		t.Error("y should be removed on restore")
	}
}

// TestConstFlag tests that Declare records const-ness.
func TestConstFlag(t *testing.T) {
	s := New()
	s.Declare("c", value.Num(1), true)
	b, _ := s.Get("c")
	if !b.Const {
		t.Fatal("const flag lost on declare")
	}
}

// TestConstRemovedBySnapshot tests spec §4.5: a const declared inside an
// iteration is removed at iteration end — the flag is not sticky.
func TestConstRemovedBySnapshot(t *testing.T) {
	s := New()
	snap := s.Snapshot()
	s.Declare("c", value.Num(1), true)
	s.Restore(snap)
	if _, ok := s.Get("c"); ok {
		t.Error("const declared inside the snapshot must be removed")
	}
	// Redeclaring it afterwards is a fresh, non-const binding.
	s.Declare("c", value.Num(2), false)
	b, _ := s.Get("c")
	if b.Const {
		t.Error("fresh binding inherited a stale const flag")
	}
}

// TestDelete tests del's unbinding.
func TestDelete(t *testing.T) {
	s := New()
	s.Declare("x", value.Num(1), false)
	s.Delete("x")
	if _, ok := s.Get("x"); ok {
		t.Error("x still bound after delete")
	}
}

// TestNames tests the suggestion source enumerates current bindings.
func TestNames(t *testing.T) {
	s := New()
	s.Declare("alpha", value.Num(1), false)
	s.Declare("beta", value.Num(2), false)
	names := s.Names()
	sort.Strings(names)
	if len(names) != 2 || names[0] != "alpha" || names[1] != "beta" {
		t.Errorf("Names = %v", names)
	}
}
