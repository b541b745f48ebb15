package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/activities/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			if len(w.Entities()) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(w.Entities()))
			}
			if c.destroyIndex >= 0 {
				if !w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if w.IsAlive(ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return false for a dead entity")
				}
			}
		})
	}
}

func TestRecycledSlotKeepsOldHandleDead(t *testing.T) {
	w := NewWorld()
	old := w.CreateEntity()
	w.DestroyEntity(old)

	reused := w.CreateEntity()
	if reused.id() != old.id() {
		t.Fatalf("expected slot reuse, got %v and %v", old, reused)
	}
	if w.IsAlive(old) {
		t.Fatalf("stale handle must stay dead after slot reuse")
	}
	if !w.IsAlive(reused) {
		t.Fatalf("new handle should be alive")
	}
	if Entity(0).Valid() || w.IsAlive(0) {
		t.Fatalf("zero entity must never be valid")
	}
}

func TestComponents(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]()
	strs := component.NewComponent[string]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()

	tests := []struct {
		name  string
		run   func() error
		check func(t *testing.T)
	}{
		{
			name: "add_and_get",
			run:  func() error { return Add(w, e1, ints, 10) },
			check: func(t *testing.T) {
				if v, ok := Get(w, e1, ints); !ok || v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
		},
		{
			name: "overwrite",
			run:  func() error { return Add(w, e1, ints, 11) },
			check: func(t *testing.T) {
				if v, _ := Get(w, e1, ints); v != 11 {
					t.Fatalf("expected 11, got %v", v)
				}
			},
		},
		{
			name: "query_intersection",
			run: func() error {
				if err := Add(w, e1, strs, "a"); err != nil {
					return err
				}
				return Add(w, e2, strs, "b")
			},
			check: func(t *testing.T) {
				got := w.Query(ints.Kind(), strs.Kind())
				if len(got) != 1 || got[0] != e1 {
					t.Fatalf("expected only e1, got %v", got)
				}
				if first, ok := w.First(strs.Kind()); !ok || first != e1 {
					t.Fatalf("First = %v, want e1", first)
				}
			},
		},
		{
			name: "remove",
			run: func() error {
				if !Remove(w, e1, ints) {
					return errors.New("remove failed")
				}
				return nil
			},
			check: func(t *testing.T) {
				if Has(w, e1, ints) {
					t.Fatalf("component should be removed")
				}
				if Remove(w, e1, ints) {
					t.Fatalf("second remove should report false")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); err != nil {
				t.Fatalf("run failed: %v", err)
			}
			tc.check(t)
		})
	}
}

func TestAddToDeadEntity(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	e := w.CreateEntity()
	w.DestroyEntity(e)
	if err := Add(w, e, h, 1); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("got %v, want ErrEntityNotAlive", err)
	}
	if err := w.AddComponent(w.CreateEntity(), 0, 1); !errors.Is(err, component.ErrInvalidComponentKind) {
		t.Fatalf("got %v, want ErrInvalidComponentKind", err)
	}
}

func TestDestroyCascadesToChildren(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	root := w.CreateEntity()
	child := w.CreateEntity()
	grandchild := w.CreateEntity()
	sibling := w.CreateEntity()

	if err := w.SetParent(child, root); err != nil {
		t.Fatal(err)
	}
	if err := w.SetParent(grandchild, child); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, grandchild, h, 3); err != nil {
		t.Fatal(err)
	}

	if !w.DestroyEntity(root) {
		t.Fatalf("destroy root failed")
	}
	for _, e := range []Entity{root, child, grandchild} {
		if w.IsAlive(e) {
			t.Fatalf("%v should be destroyed with its ancestor", e)
		}
	}
	if !w.IsAlive(sibling) {
		t.Fatalf("unrelated entity should survive")
	}
	if got := w.Query(h.Kind()); len(got) != 0 {
		t.Fatalf("components of destroyed entities should be gone, got %v", got)
	}
}

func TestSetParent(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()
	c := w.CreateEntity()

	if err := w.SetParent(b, a); err != nil {
		t.Fatal(err)
	}
	if err := w.SetParent(c, b); err != nil {
		t.Fatal(err)
	}
	if err := w.SetParent(a, c); !errors.Is(err, ErrParentCycle) {
		t.Fatalf("got %v, want ErrParentCycle", err)
	}

	// Reparent c under a.
	if err := w.SetParent(c, a); err != nil {
		t.Fatal(err)
	}
	if len(w.Children(b)) != 0 {
		t.Fatalf("b should have no children after reparent, got %v", w.Children(b))
	}
	if p, ok := w.Parent(c); !ok || p != a {
		t.Fatalf("parent of c = %v, want a", p)
	}

	if err := w.SetParent(c, 0); err != nil {
		t.Fatal(err)
	}
	if _, ok := w.Parent(c); ok {
		t.Fatalf("c should be a root after detaching")
	}
}

func TestDestroyTransient(t *testing.T) {
	w := NewWorld()
	keep := w.CreateEntity()
	if err := Add(w, keep, component.PersistentComponent, component.Persistent{ID: "keep"}); err != nil {
		t.Fatal(err)
	}
	keptChild := w.CreateEntity()
	if err := w.SetParent(keptChild, keep); err != nil {
		t.Fatal(err)
	}
	drop := w.CreateEntity()
	dropChild := w.CreateEntity()
	if err := w.SetParent(dropChild, drop); err != nil {
		t.Fatal(err)
	}

	if n := w.DestroyTransient(); n != 1 {
		t.Fatalf("DestroyTransient = %d, want 1", n)
	}
	if !w.IsAlive(keep) || !w.IsAlive(keptChild) {
		t.Fatalf("persistent subtree should survive")
	}
	if w.IsAlive(drop) || w.IsAlive(dropChild) {
		t.Fatalf("transient subtree should be destroyed")
	}
}

type countingSystem struct {
	updates int
	drained []Event
}

func (s *countingSystem) Update(w *World) {
	s.updates++
	s.drained = append(s.drained, w.Events().Drain()...)
}

func TestUpdateRunsSystemsAndFlushesEvents(t *testing.T) {
	w := NewWorld()
	first := &countingSystem{}
	w.AddSystem(first)
	w.AddSystem(nil)

	w.Events().Push(Event{Type: "a"})
	w.Update()
	if first.updates != 1 || len(first.drained) != 1 {
		t.Fatalf("updates = %d drained = %v", first.updates, first.drained)
	}

	w.Update()
	if first.updates != 2 || len(first.drained) != 1 {
		t.Fatalf("events should not be delivered twice, drained = %v", first.drained)
	}
}
