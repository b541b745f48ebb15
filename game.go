package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/activities/activity"
	"github.com/milk9111/activities/ecs"
	"github.com/milk9111/activities/ecs/system"
	"github.com/milk9111/activities/prefabs"
	"github.com/milk9111/activities/screens"
)

type GameOptions struct {
	Start string
	Debug bool
	Watch bool
}

type Game struct {
	spec     *prefabs.GameSpec
	world    *ecs.World
	director *activity.Director
	router   *screens.Router
	watcher  *prefabs.Watcher

	// lastErr is the activity error last logged in watch mode.
	lastErr string
}

func NewGame(opts GameOptions) (*Game, error) {
	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		return nil, err
	}

	var logger *log.Logger
	if opts.Debug {
		logger = log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds)
	}

	world := ecs.NewWorld()
	world.AddSystem(system.NewPhysicsSystem())
	world.AddSystem(system.NewRenderSystem())
	if opts.Debug {
		world.AddSystem(system.NewDebugOverlaySystem(logger))
	}

	directorOpts := []activity.Option{}
	if logger != nil {
		directorOpts = append(directorOpts, activity.WithLogger(logger))
	}
	director, err := activity.NewDirector(world, directorOpts...)
	if err != nil {
		return nil, err
	}

	router, err := screens.NewRouter(director, spec)
	if err != nil {
		return nil, err
	}

	g := &Game{
		spec:     spec,
		world:    world,
		director: director,
		router:   router,
	}

	if opts.Watch {
		watcher, err := prefabs.NewWatcher(prefabs.WatchDirs()...)
		if err != nil {
			log.Printf("prefab watch disabled: %v", err)
		} else {
			g.watcher = watcher
		}
	}

	start := opts.Start
	if start == "" {
		start = spec.Start
	}
	if err := router.Go(start, "instant"); err != nil {
		g.Close()
		return nil, fmt.Errorf("start %q: %w", start, err)
	}
	return g, nil
}

func (g *Game) Update() error {
	g.reloadChangedPrefabs()

	if err := g.director.Update(); err != nil {
		if g.watcher == nil {
			return err
		}
		// Keep running so the next edit can fix the content.
		if msg := err.Error(); msg != g.lastErr {
			log.Printf("activity error, waiting for a prefab edit: %v", err)
			g.lastErr = msg
		}
	} else {
		g.lastErr = ""
	}
	g.world.Update()

	if g.router.Quit() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) reloadChangedPrefabs() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		log.Printf("prefab watch: %v", err)
	default:
	}
	changed := g.watcher.Poll()
	if len(changed) == 0 {
		return
	}
	for _, name := range changed {
		log.Printf("prefab changed: %s", name)
	}
	if err := g.router.Reload(); err != nil {
		if errors.Is(err, activity.ErrTransitionInProgress) {
			log.Printf("reload skipped: %v", err)
			return
		}
		log.Printf("reload %s: %v", g.router.Last(), err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.world.Draw(screen)
	g.director.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.spec.Width, g.spec.Height
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
