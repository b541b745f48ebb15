package activity

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// DefaultFadeFrames is used when Fade.Frames is not positive.
const DefaultFadeFrames = 30

type fadePhase int

const (
	fadeIdle fadePhase = iota
	fadeOut
	fadeLoading
	fadeIn
)

// Fade fades the screen to black over Frames ticks, swaps activities while
// fully black, waits for an optional LoadActivityHandler, then fades back in.
// A Fade holds per-switch state: use a fresh value, or reuse one only after
// its previous switch completed.
type Fade struct {
	Frames int
	Color  color.RGBA

	phase fadePhase
	timer int
	alpha float64
	// run counts switches so a continuation from an earlier switch cannot
	// open the gate of a later one.
	run uint64
}

func (f *Fade) Start(c Controller) {
	if f.Frames <= 0 {
		f.Frames = DefaultFadeFrames
	}
	Send(c, func(h TransitionStartedHandler) { h.HandleTransitionStarted() })
	f.run++
	f.phase = fadeOut
	f.timer = f.Frames
	f.alpha = 0
}

func (f *Fade) Tick(c Controller) {
	switch f.phase {
	case fadeOut:
		f.timer--
		f.alpha = 1 - float64(f.timer)/float64(f.Frames)
		if f.timer > 0 {
			return
		}
		f.alpha = 1
		c.EndCurrentActivity()
		c.StartNewActivity()

		f.phase = fadeLoading
		run := f.run
		loaded := func() {
			if f.run != run || f.phase != fadeLoading {
				return
			}
			f.phase = fadeIn
			f.timer = f.Frames
		}
		if !Send(c, func(h LoadActivityHandler) { h.LoadActivity(loaded) }) {
			loaded()
		}
	case fadeIn:
		f.timer--
		f.alpha = float64(f.timer) / float64(f.Frames)
		if f.timer > 0 {
			return
		}
		f.alpha = 0
		f.phase = fadeIdle
		Send(c, func(h TransitionCompleteHandler) { h.HandleTransitionComplete() })
		c.NotifyTransitionComplete()
	}
}

// Alpha returns the current overlay opacity in [0, 1].
func (f *Fade) Alpha() float64 {
	return f.alpha
}

func (f *Fade) DrawOverlay(screen *ebiten.Image) {
	if f.alpha <= 0 {
		return
	}
	clr := f.Color
	clr.A = uint8(f.alpha * 255)
	// Premultiplied alpha.
	clr.R = uint8(float64(clr.R) * f.alpha)
	clr.G = uint8(float64(clr.G) * f.alpha)
	clr.B = uint8(float64(clr.B) * f.alpha)
	b := screen.Bounds()
	vector.FillRect(screen, float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()), clr, false)
}
