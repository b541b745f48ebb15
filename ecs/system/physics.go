package system

import (
	"github.com/milk9111/activities/ecs"
	"github.com/milk9111/activities/ecs/component"
)

const defaultTimeStep = 1.0 / 60.0

// PhysicsSystem steps every PhysicsSpace once per frame and copies body
// positions back into transforms.
type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	for _, e := range w.Query(component.PhysicsSpaceComponent.Kind()) {
		space, _ := ecs.Get(w, e, component.PhysicsSpaceComponent)
		if space.Space == nil {
			continue
		}
		dt := space.TimeStep
		if dt <= 0 {
			dt = defaultTimeStep
		}
		space.Space.Step(dt)
	}

	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		body, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		if body.Body == nil {
			continue
		}
		t, _ := ecs.Get(w, e, component.TransformComponent)
		pos := body.Body.Position()
		t.X = pos.X
		t.Y = pos.Y
		t.Rotation = body.Body.Angle()
		_ = ecs.Add(w, e, component.TransformComponent, t)
	}
}
