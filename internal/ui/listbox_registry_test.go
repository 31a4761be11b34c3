package ui

import (
	"math/rand"
	"testing"
)

func registryIDs(r *Registry) []string {
	var out []string
	for _, rec := range r.Options() {
		out = append(out, rec.ID)
	}
	return out
}

func TestRegistryRegister(t *testing.T) {
	t.Run("AppendsInMountOrder", func(t *testing.T) {
		r := NewRegistry()
		a := r.Register("a")
		b := r.Register("b")
		if a == b {
			t.Fatal("expected distinct identities")
		}
		if !a.Valid() || !b.Valid() {
			t.Fatal("expected issued identities to be valid")
		}
		if got := registryIDs(r); !equalIDs(got, []string{"a", "b"}) {
			t.Errorf("expected [a b], got %v", got)
		}
	})

	t.Run("LateJoinerMatchingActiveBecomesSelected", func(t *testing.T) {
		r := NewRegistry()
		r.setPending("b")
		r.Register("a")
		b := r.Register("b")
		if !r.IsSelected(b) {
			t.Error("expected option matching the pending active id to be selected")
		}
		if r.Active() != "b" {
			t.Errorf("expected active 'b', got %q", r.Active())
		}
	})

	t.Run("EmptyIDNeverMatchesEmptyActive", func(t *testing.T) {
		r := NewRegistry()
		id := r.Register("")
		if r.IsSelected(id) {
			t.Error("expected empty id not to be selected without an active id")
		}
	})

	t.Run("IdentitiesAreNotReused", func(t *testing.T) {
		r := NewRegistry()
		a := r.Register("a")
		r.Unregister(a)
		again := r.Register("a")
		if again == a {
			t.Error("expected a fresh identity after unregister")
		}
	})
}

func TestRegistryUnregister(t *testing.T) {
	t.Run("KeepsOrderOfRemaining", func(t *testing.T) {
		r := NewRegistry()
		r.Register("a")
		b := r.Register("b")
		r.Register("c")
		r.Unregister(b)
		if got := registryIDs(r); !equalIDs(got, []string{"a", "c"}) {
			t.Errorf("expected [a c], got %v", got)
		}
	})

	t.Run("LeavesSelectionForReconciliation", func(t *testing.T) {
		r := NewRegistry()
		a := r.Register("a")
		r.selectRecord(r.At(0))
		r.Unregister(a)
		if r.Selected() != a {
			t.Error("expected stale selection to remain until reconciliation")
		}
		if r.Active() != "a" {
			t.Errorf("expected active to remain 'a', got %q", r.Active())
		}
		if r.IndexOf(a) != -1 {
			t.Error("expected gone option to have no index")
		}
	})

	t.Run("UnknownIdentityIsNoop", func(t *testing.T) {
		r := NewRegistry()
		r.Register("a")
		r.Unregister(Identity(99))
		r.Unregister(0)
		if r.Len() != 1 {
			t.Errorf("expected 1 option, got %d", r.Len())
		}
	})
}

// Any sequence of mounts and unmounts leaves the options in mount order
// minus the unmounted ones.
func TestRegistryPreservesMountOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		r := NewRegistry()
		type mounted struct {
			id       string
			identity Identity
		}
		var model []mounted
		next := 0
		for step := 0; step < 40; step++ {
			if len(model) == 0 || rng.Intn(3) > 0 {
				id := string(rune('a' + next%26))
				next++
				model = append(model, mounted{id: id, identity: r.Register(id)})
				continue
			}
			i := rng.Intn(len(model))
			r.Unregister(model[i].identity)
			model = append(model[:i], model[i+1:]...)
		}

		got := r.Options()
		if len(got) != len(model) {
			t.Fatalf("round %d: expected %d options, got %d", round, len(model), len(got))
		}
		for i := range model {
			if got[i].Identity != model[i].identity || got[i].ID != model[i].id {
				t.Fatalf("round %d: order diverged at %d: got %+v, want %+v", round, i, got[i], model[i])
			}
		}
	}
}

func TestRegistryLookups(t *testing.T) {
	r := NewRegistry()
	r.Register("x")
	y := r.Register("y")
	r.Register("y")

	if got := r.IndexOf(y); got != 1 {
		t.Errorf("IndexOf(y) = %d, want 1", got)
	}
	if got := r.IndexOfID("y"); got != 1 {
		t.Errorf("IndexOfID(y) = %d, want first match 1", got)
	}
	if got := r.IndexOfID("z"); got != -1 {
		t.Errorf("IndexOfID(z) = %d, want -1", got)
	}
	if got := r.IndexOf(0); got != -1 {
		t.Errorf("IndexOf(0) = %d, want -1", got)
	}
	if r.IsSelected(0) {
		t.Error("zero identity must never be selected")
	}

	opts := r.Options()
	opts[0].ID = "mutated"
	if r.At(0).ID != "x" {
		t.Error("Options must return a copy")
	}
}

func TestRegistryClear(t *testing.T) {
	r := NewRegistry()
	r.Register("a")
	r.selectRecord(r.At(0))
	r.clear()
	if r.Selected().Valid() || r.Active() != "" {
		t.Errorf("expected cleared selection, got selected=%v active=%q", r.Selected(), r.Active())
	}
	if r.Len() != 1 {
		t.Error("clear must not touch the options")
	}
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
