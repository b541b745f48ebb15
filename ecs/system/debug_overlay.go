package system

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/activities/activity"
	"github.com/milk9111/activities/ecs"
)

// DebugOverlaySystem drains director events, logs them and prints the
// current activity in the top left corner.
type DebugOverlaySystem struct {
	current     string
	switching   bool
	transitions int
	logger      *log.Logger
}

func NewDebugOverlaySystem(logger *log.Logger) *DebugOverlaySystem {
	return &DebugOverlaySystem{logger: logger}
}

func (d *DebugOverlaySystem) Update(w *ecs.World) {
	if d == nil || w == nil {
		return
	}
	for _, evt := range w.Events().Drain() {
		switch evt.Type {
		case activity.EventActivityStarted:
			d.current, _ = evt.Data.(string)
			d.switching = true
		case activity.EventActivityEnded:
			d.current = ""
			d.switching = true
		case activity.EventTransitionComplete:
			d.switching = false
			d.transitions++
		default:
			continue
		}
		if d.logger != nil {
			d.logger.Printf("debug: %s %v", evt.Type, evt.Data)
		}
	}
}

// Current returns the name of the last started activity.
func (d *DebugOverlaySystem) Current() string {
	return d.current
}

func (d *DebugOverlaySystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if d == nil || screen == nil {
		return
	}
	state := "idle"
	if d.switching {
		state = "switching"
	}
	text := fmt.Sprintf("activity: %s (%s)  transitions: %d  entities: %d  FPS: %.1f",
		d.current, state, d.transitions, len(w.Entities()), ebiten.ActualFPS())
	ebitenutil.DebugPrintAt(screen, text, 4, 4)
}
