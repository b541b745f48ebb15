package screens

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/activities/activity"
	"github.com/milk9111/activities/ecs"
	"github.com/milk9111/activities/ecs/component"
	"github.com/milk9111/activities/levels"
)

const (
	tileLayer   = 0
	playerLayer = 1
	playerSize  = 24
	playerSpeed = 4
)

var playerColor = color.RGBA{R: 0xf0, G: 0xe6, B: 0xd2, A: 0xff}

type LevelArgs struct {
	Name string
}

// Level builds its tile grid a few rows per frame. A loadingBar behaviour
// owns the LoadActivity capability and holds gated transitions until the
// grid is complete.
type Level struct {
	activity.Base

	name    string
	spec    *levels.Level
	row     int
	perStep int
	tiles   int
	player  ecs.Entity
	bar     *loadingBar
	playing bool
	err     error
}

func (l *Level) Init(args LevelArgs) {
	l.name = args.Name
	// Scene load: drop stray roots left behind by the previous activity.
	l.World().DestroyTransient()

	spec, err := levels.LoadLevel(args.Name)
	if err != nil {
		l.err = err
		return
	}
	l.spec = spec
	steps := max(spec.LoadSteps, 1)
	l.perStep = max((len(spec.Rows)+steps-1)/steps, 1)
	l.bar = &loadingBar{level: l}
	if err := l.Attach(l.bar); err != nil {
		l.err = err
	}
}

// Err returns the error that stopped Init, if any.
func (l *Level) Err() error {
	return l.err
}

// Loaded reports whether every row has been built.
func (l *Level) Loaded() bool {
	return l.spec != nil && l.row >= len(l.spec.Rows)
}

// Progress returns the fraction of rows built.
func (l *Level) Progress() float64 {
	if l.spec == nil || len(l.spec.Rows) == 0 {
		return 1
	}
	return float64(l.row) / float64(len(l.spec.Rows))
}

// Tiles returns the number of tile entities spawned so far.
func (l *Level) Tiles() int {
	return l.tiles
}

// Playing reports whether the level accepts input.
func (l *Level) Playing() bool {
	return l.playing
}

func (l *Level) buildStep() error {
	if l.spec == nil || l.Loaded() {
		return nil
	}
	for i := 0; i < l.perStep && !l.Loaded(); i++ {
		if err := l.buildRow(l.row); err != nil {
			return err
		}
		l.row++
	}
	if !l.Loaded() {
		return nil
	}
	if err := l.spawnPlayer(); err != nil {
		return err
	}
	if l.bar.waiting() {
		l.bar.finish()
	} else {
		l.playing = true
	}
	return nil
}

func (l *Level) buildRow(y int) error {
	size := l.spec.TileSize
	for x, r := range l.spec.Rows[y] {
		clr, ok := l.spec.Color(r)
		if !ok {
			continue
		}
		tile, err := l.Spawn()
		if err != nil {
			return err
		}
		w := l.World()
		_ = ecs.Add(w, tile, component.TransformComponent, component.Transform{X: float64(x) * size, Y: float64(y) * size})
		_ = ecs.Add(w, tile, component.RectComponent, component.Rect{W: size, H: size, Color: clr})
		_ = ecs.Add(w, tile, component.RenderLayerComponent, component.RenderLayer{Index: tileLayer})
		l.tiles++
	}
	return nil
}

func (l *Level) spawnPlayer() error {
	e, err := l.Spawn()
	if err != nil {
		return err
	}
	w := l.World()
	_ = ecs.Add(w, e, component.NameComponent, component.Name{Value: "player"})
	_ = ecs.Add(w, e, component.TransformComponent, component.Transform{X: l.spec.TileSize, Y: l.spec.TileSize})
	_ = ecs.Add(w, e, component.RectComponent, component.Rect{W: playerSize, H: playerSize, Color: playerColor})
	_ = ecs.Add(w, e, component.RenderLayerComponent, component.RenderLayer{Index: playerLayer})
	l.player = e
	return nil
}

func (l *Level) HandleTransitionComplete() {
	l.playing = true
}

func (l *Level) Update() error {
	if l.err != nil {
		return fmt.Errorf("screens: level %s: %w", l.name, l.err)
	}
	if !l.Loaded() {
		return l.buildStep()
	}
	if !l.playing || l.Director().InProgress() {
		return nil
	}

	router, ok := RouterOf(&l.Base)
	if ok && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return router.Go("title", "")
	}
	if ok && inpututil.IsKeyJustPressed(ebiten.KeyN) && l.spec.Next != "" {
		return router.Go("level:"+l.spec.Next, "loading")
	}

	dx, dy := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dx -= playerSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dx += playerSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		dy -= playerSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		dy += playerSpeed
	}
	l.movePlayer(dx, dy)
	return nil
}

func (l *Level) movePlayer(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	w := l.World()
	t, ok := ecs.Get(w, l.player, component.TransformComponent)
	if !ok {
		return
	}
	t.X += dx
	t.Y += dy
	_ = ecs.Add(w, l.player, component.TransformComponent, t)
}

// loadingBar is a separate behaviour on the level entity so the loading
// capability is found without the level itself implementing it.
type loadingBar struct {
	level *Level
	done  func()
}

func (b *loadingBar) LoadActivity(done func()) {
	if b.level.Loaded() {
		done()
		return
	}
	b.done = done
}

func (b *loadingBar) waiting() bool {
	return b.done != nil
}

func (b *loadingBar) finish() {
	done := b.done
	b.done = nil
	if done != nil {
		done()
	}
}

func (b *loadingBar) Draw(screen *ebiten.Image) {
	if b.level.Loaded() {
		return
	}
	sw, sh := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	width := sw / 2
	x := (sw - width) / 2
	y := sh / 2
	vector.StrokeRect(screen, float32(x), float32(y), float32(width), 16, 2, textColor, false)
	vector.FillRect(screen, float32(x), float32(y), float32(width*b.level.Progress()), 16, textColor, false)
	drawCentered(screen, "loading "+b.level.spec.Name, sw/2, y-24, 2)
}
