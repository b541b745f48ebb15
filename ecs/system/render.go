package system

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/activities/ecs"
	"github.com/milk9111/activities/ecs/component"
)

// RenderSystem draws every entity with a Transform and a Rect, ordered by
// RenderLayer then slot.
type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Update(w *ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	entities := drawOrder(w)
	for _, e := range entities {
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		rect, ok := ecs.Get(w, e, component.RectComponent)
		if !ok {
			continue
		}

		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}
		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}

		if rect.Circle {
			radius := rect.W * sx / 2
			vector.FillCircle(screen, float32(t.X), float32(t.Y), float32(radius), rect.Color, true)
			continue
		}
		vector.FillRect(screen, float32(t.X), float32(t.Y), float32(rect.W*sx), float32(rect.H*sy), rect.Color, false)
	}
}

func drawOrder(w *ecs.World) []ecs.Entity {
	entities := w.Query(component.TransformComponent.Kind(), component.RectComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li := 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent); ok {
			li = layer.Index
		}
		lj := 0
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent); ok {
			lj = layer.Index
		}
		return li < lj
	})
	return entities
}
