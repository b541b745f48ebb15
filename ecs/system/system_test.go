package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/activities/activity"
	"github.com/milk9111/activities/ecs"
	"github.com/milk9111/activities/ecs/component"
)

func TestPhysicsSystemSyncsTransforms(t *testing.T) {
	w := ecs.NewWorld()

	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: 0, Y: 500})
	owner := w.CreateEntity()
	if err := ecs.Add(w, owner, component.PhysicsSpaceComponent, component.PhysicsSpace{Space: space}); err != nil {
		t.Fatal(err)
	}

	body := cp.NewBody(1, cp.MomentForCircle(1, 0, 8, cp.Vector{}))
	body.SetPosition(cp.Vector{X: 100, Y: 0})
	space.AddBody(body)
	shape := space.AddShape(cp.NewCircle(body, 8, cp.Vector{}))

	ball := w.CreateEntity()
	if err := ecs.Add(w, ball, component.TransformComponent, component.Transform{X: 100}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, ball, component.PhysicsBodyComponent, component.PhysicsBody{Body: body, Shape: shape, Radius: 8}); err != nil {
		t.Fatal(err)
	}

	ps := NewPhysicsSystem()
	for i := 0; i < 10; i++ {
		ps.Update(w)
	}

	tr, _ := ecs.Get(w, ball, component.TransformComponent)
	if tr.Y <= 0 {
		t.Fatalf("ball should fall under gravity, y = %v", tr.Y)
	}
	if tr.X != 100 {
		t.Fatalf("ball should not drift sideways, x = %v", tr.X)
	}
}

func TestDebugOverlayTracksActivityEvents(t *testing.T) {
	w := ecs.NewWorld()
	d := NewDebugOverlaySystem(nil)
	w.AddSystem(d)

	w.Events().Push(ecs.Event{Type: activity.EventActivityEnded, Data: "Title"})
	w.Events().Push(ecs.Event{Type: activity.EventActivityStarted, Data: "Level"})
	w.Update()
	if d.Current() != "Level" || !d.switching {
		t.Fatalf("current = %q switching = %v", d.Current(), d.switching)
	}

	w.Events().Push(ecs.Event{Type: activity.EventTransitionComplete})
	w.Update()
	if d.switching || d.transitions != 1 {
		t.Fatalf("switching = %v transitions = %d", d.switching, d.transitions)
	}
}

func TestDrawOrderByLayer(t *testing.T) {
	w := ecs.NewWorld()
	top := w.CreateEntity()
	bottom := w.CreateEntity()
	for _, e := range []ecs.Entity{top, bottom} {
		_ = ecs.Add(w, e, component.TransformComponent, component.Transform{})
		_ = ecs.Add(w, e, component.RectComponent, component.Rect{W: 1, H: 1})
	}
	_ = ecs.Add(w, top, component.RenderLayerComponent, component.RenderLayer{Index: 2})

	got := drawOrder(w)
	if len(got) != 2 || got[0] != bottom || got[1] != top {
		t.Fatalf("draw order = %v, want [bottom top]", got)
	}
}
