package activity

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Transition orders the steps of one activity switch. Start is called once
// per switch; the transition must eventually call
// c.NotifyTransitionComplete.
type Transition interface {
	Start(c Controller)
}

// Ticker is a Transition that needs a call every frame until it completes.
type Ticker interface {
	Tick(c Controller)
}

// Overlay is a Transition that draws over the current activity while it
// runs.
type Overlay interface {
	DrawOverlay(screen *ebiten.Image)
}

// Instant ends the current activity and starts the new one in the same call.
type Instant struct{}

func (Instant) Start(c Controller) {
	c.EndCurrentActivity()
	c.StartNewActivity()
	c.NotifyTransitionComplete()
}

// Loading gates completion on the new activity. The old activity gets
// HandleTransitionStarted, then the swap happens, then the new activity gets
// LoadActivity with a continuation. HandleTransitionComplete and completion
// happen when the continuation is called. A new activity without a
// LoadActivityHandler completes immediately.
type Loading struct{}

func (Loading) Start(c Controller) {
	Send(c, func(h TransitionStartedHandler) { h.HandleTransitionStarted() })

	c.EndCurrentActivity()
	c.StartNewActivity()

	finished := false
	done := func() {
		if finished {
			return
		}
		finished = true
		Send(c, func(h TransitionCompleteHandler) { h.HandleTransitionComplete() })
		c.NotifyTransitionComplete()
	}
	if !Send(c, func(h LoadActivityHandler) { h.LoadActivity(done) }) {
		done()
	}
}

// ParseTransition maps a content name to a strategy. Empty means instant.
func ParseTransition(name string, fadeFrames int) (Transition, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "instant":
		return Instant{}, nil
	case "loading":
		return Loading{}, nil
	case "fade":
		return &Fade{Frames: fadeFrames}, nil
	default:
		return nil, fmt.Errorf("activity: unknown transition %q", name)
	}
}
