package screens

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/activities/activity"
	"github.com/milk9111/activities/prefabs"
)

type ScriptArgs struct {
	Name string
}

// Scripted runs a tengo script once per frame. The script reads `frame` and
// may set `status` (shown on screen), `next` (a router target) and
// `transition`.
type Scripted struct {
	activity.Base

	name     string
	compiled *tengo.Compiled
	frame    int
	status   string
	err      error
}

func (s *Scripted) Init(args ScriptArgs) {
	s.name = args.Name
	compiled, err := compileActivityScript(args.Name)
	if err != nil {
		s.err = err
		return
	}
	s.compiled = compiled
}

func compileActivityScript(name string) (*tengo.Compiled, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("screens: load script %s: %w", name, err)
	}
	script := tengo.NewScript(src)
	_ = script.Add("frame", 0)
	_ = script.Add("status", "")
	_ = script.Add("next", "")
	_ = script.Add("transition", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("screens: compile script %s: %w", name, err)
	}
	return compiled, nil
}

// Err returns the error that stopped Init, if any.
func (s *Scripted) Err() error {
	return s.err
}

// Status returns the last status line set by the script.
func (s *Scripted) Status() string {
	return s.status
}

// step runs the script for the current frame and returns the requested
// target and transition, if any.
func (s *Scripted) step() (next, transition string, err error) {
	if s.compiled == nil {
		return "", "", fmt.Errorf("screens: script %s not compiled", s.name)
	}
	if err := s.compiled.Set("frame", s.frame); err != nil {
		return "", "", err
	}
	if err := s.compiled.Set("next", ""); err != nil {
		return "", "", err
	}
	if err := s.compiled.Run(); err != nil {
		return "", "", fmt.Errorf("screens: run script %s: %w", s.name, err)
	}
	s.frame++
	if v := s.compiled.Get("status"); v != nil {
		s.status = v.String()
	}
	next = strings.TrimSpace(s.compiled.Get("next").String())
	transition = strings.TrimSpace(s.compiled.Get("transition").String())
	return next, transition, nil
}

func (s *Scripted) Update() error {
	if s.err != nil {
		return s.err
	}
	if s.Director().InProgress() {
		return nil
	}
	router, ok := RouterOf(&s.Base)
	if !ok {
		return fmt.Errorf("screens: script %s has no router", s.name)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return router.Go("title", "")
	}
	next, transition, err := s.step()
	if err != nil {
		return err
	}
	if next == "" {
		return nil
	}
	return router.Go(next, transition)
}

func (s *Scripted) Draw(screen *ebiten.Image) {
	if s.status == "" {
		return
	}
	b := screen.Bounds()
	drawCentered(screen, s.status, float64(b.Dx())/2, float64(b.Dy())/2, 3)
}
