package ecs

import (
	"errors"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/activities/ecs/component"
)

// ErrParentCycle is returned by SetParent when the new parent is the child
// itself or one of its descendants.
var ErrParentCycle = errors.New("ecs: parent cycle")

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// RenderSystem is a System that also draws.
type RenderSystem interface {
	Draw(w *World, screen *ebiten.Image)
}

// World owns entities, components, the parent hierarchy and system order.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	systems  []System
	events   EventQueue

	parents  map[Entity]Entity
	children map[Entity][]Entity
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:   make(map[component.ComponentID]*SparseSet),
		parents:  make(map[Entity]Entity),
		children: make(map[Entity][]Entity),
	}
}

// CreateEntity allocates a new root entity.
func (w *World) CreateEntity() Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity destroys e, its components and all of its descendants. It
// returns false when e was not alive.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, child := range append([]Entity(nil), w.children[e]...) {
		w.DestroyEntity(child)
	}
	w.detach(e)
	delete(w.children, e)
	for _, store := range w.stores {
		store.Remove(e)
	}
	w.entities.destroy(e)
	return true
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns all live entities in slot order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.live()
}

// SetParent attaches child under parent. A zero parent detaches child and
// makes it a root again.
func (w *World) SetParent(child, parent Entity) error {
	if w == nil || !w.IsAlive(child) {
		return component.ErrEntityNotAlive
	}
	if parent == 0 {
		w.detach(child)
		return nil
	}
	if !w.IsAlive(parent) {
		return component.ErrEntityNotAlive
	}
	for p := parent; p != 0; p = w.parents[p] {
		if p == child {
			return ErrParentCycle
		}
	}
	w.detach(child)
	w.parents[child] = parent
	w.children[parent] = append(w.children[parent], child)
	return nil
}

// Parent returns the parent of e, if any.
func (w *World) Parent(e Entity) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	p, ok := w.parents[e]
	return p, ok
}

// Children returns a copy of the direct children of e.
func (w *World) Children(e Entity) []Entity {
	if w == nil {
		return nil
	}
	return append([]Entity(nil), w.children[e]...)
}

func (w *World) detach(child Entity) {
	parent, ok := w.parents[child]
	if !ok {
		return
	}
	delete(w.parents, child)
	siblings := w.children[parent]
	for i, c := range siblings {
		if c == child {
			w.children[parent] = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
}

// DestroyTransient is the scene-load sweep: every root entity without a
// Persistent component is destroyed together with its subtree. Children of
// persistent roots are kept. It returns the number of roots destroyed.
func (w *World) DestroyTransient() int {
	if w == nil {
		return 0
	}
	destroyed := 0
	for _, e := range w.Entities() {
		if !w.IsAlive(e) {
			continue
		}
		if _, hasParent := w.parents[e]; hasParent {
			continue
		}
		if w.HasComponent(e, component.PersistentComponent.Kind().ID()) {
			continue
		}
		if w.DestroyEntity(e) {
			destroyed++
		}
	}
	return destroyed
}

// AddComponent stores value under the given component id, replacing any
// previous value.
func (w *World) AddComponent(e Entity, id component.ComponentID, value any) error {
	if w == nil || !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	store, ok := w.stores[id]
	if !ok {
		store = &SparseSet{}
		w.stores[id] = store
	}
	store.Set(e, value)
	return nil
}

// GetComponent returns the raw value stored under id.
func (w *World) GetComponent(e Entity, id component.ComponentID) (any, bool) {
	if w == nil || !w.IsAlive(e) {
		return nil, false
	}
	store, ok := w.stores[id]
	if !ok || !store.Has(e) {
		return nil, false
	}
	return store.Get(e), true
}

// HasComponent reports whether e carries a value under id.
func (w *World) HasComponent(e Entity, id component.ComponentID) bool {
	if w == nil || !w.IsAlive(e) {
		return false
	}
	return w.stores[id].Has(e)
}

// RemoveComponent deletes the value stored under id.
func (w *World) RemoveComponent(e Entity, id component.ComponentID) bool {
	if w == nil {
		return false
	}
	store, ok := w.stores[id]
	if !ok {
		return false
	}
	return store.Remove(e)
}

// First returns the lowest-slot live entity carrying kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	ents := w.Query(kind)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

// Query returns the entities carrying every given kind, sorted by slot id.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		store, ok := w.stores[k.ID()]
		if !ok {
			return nil
		}
		sets = append(sets, store)
	}
	out := intersect(sets)
	sort.Slice(out, func(i, j int) bool { return out[i].id() < out[j].id() })
	return out
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil || s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update runs all systems once, then drops events nobody drained.
func (w *World) Update() {
	if w == nil {
		return
	}
	for _, s := range w.systems {
		s.Update(w)
	}
	w.events.flush()
}

// Draw calls all render-capable systems in registration order.
func (w *World) Draw(screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	for _, s := range w.systems {
		if rs, ok := s.(RenderSystem); ok {
			rs.Draw(w, screen)
		}
	}
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
