package screens

import (
	"image/color"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/activities/activity"
	"github.com/milk9111/activities/common"
	"github.com/milk9111/activities/ecs"
	"github.com/milk9111/activities/ecs/component"
)

const (
	defaultBalls     = 24
	playgroundWidth  = common.BaseWidth
	playgroundHeight = common.BaseHeight
	gravity          = 900
	ballRadius       = 12
)

type PlaygroundArgs struct {
	Balls int
	Seed  uint64
}

// Playground drops balls into a box. The chipmunk space lives on the
// activity entity and every ball is a child, so ending the activity tears
// the whole simulation down.
type Playground struct {
	activity.Base

	space *cp.Space
	rng   *rand.Rand
	balls int
	err   error
}

func (p *Playground) Init(args PlaygroundArgs) {
	p.rng = rand.New(rand.NewPCG(args.Seed, args.Seed^0x9e3779b97f4a7c15))

	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	p.space = space
	p.addWalls()

	if err := ecs.Add(p.World(), p.Entity(), component.PhysicsSpaceComponent, component.PhysicsSpace{Space: space}); err != nil {
		p.err = err
		return
	}
	for i := 0; i < args.Balls; i++ {
		if err := p.addBall(); err != nil {
			p.err = err
			return
		}
	}
}

func (p *Playground) addWalls() {
	static := p.space.StaticBody
	walls := []struct{ a, b cp.Vector }{
		{a: cp.Vector{X: 0, Y: playgroundHeight}, b: cp.Vector{X: playgroundWidth, Y: playgroundHeight}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: playgroundHeight}},
		{a: cp.Vector{X: playgroundWidth, Y: 0}, b: cp.Vector{X: playgroundWidth, Y: playgroundHeight}},
	}
	for _, wall := range walls {
		seg := cp.NewSegment(static, wall.a, wall.b, 2)
		seg.SetFriction(0.8)
		seg.SetElasticity(0.6)
		p.space.AddShape(seg)
	}
}

func (p *Playground) addBall() error {
	e, err := p.Spawn()
	if err != nil {
		return err
	}

	x := ballRadius + p.rng.Float64()*(playgroundWidth-2*ballRadius)
	y := -p.rng.Float64() * playgroundHeight / 2

	mass := 1.0
	body := p.space.AddBody(cp.NewBody(mass, cp.MomentForCircle(mass, 0, ballRadius, cp.Vector{})))
	body.SetPosition(cp.Vector{X: x, Y: y})
	shape := p.space.AddShape(cp.NewCircle(body, ballRadius, cp.Vector{}))
	shape.SetFriction(0.7)
	shape.SetElasticity(0.6)

	w := p.World()
	_ = ecs.Add(w, e, component.TransformComponent, component.Transform{X: x, Y: y})
	_ = ecs.Add(w, e, component.RectComponent, component.Rect{W: 2 * ballRadius, H: 2 * ballRadius, Color: p.ballColor(), Circle: true})
	_ = ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{Body: body, Shape: shape, Radius: ballRadius})
	p.balls++
	return nil
}

func (p *Playground) ballColor() color.RGBA {
	return color.RGBA{
		R: uint8(96 + p.rng.IntN(160)),
		G: uint8(96 + p.rng.IntN(160)),
		B: uint8(96 + p.rng.IntN(160)),
		A: 0xff,
	}
}

// Err returns the error that stopped Init, if any.
func (p *Playground) Err() error {
	return p.err
}

// Balls returns the number of balls spawned.
func (p *Playground) Balls() int {
	return p.balls
}

func (p *Playground) Update() error {
	if p.err != nil {
		return p.err
	}
	if p.Director().InProgress() {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if err := p.addBall(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if router, ok := RouterOf(&p.Base); ok {
			return router.Go("title", "")
		}
	}
	return nil
}

// Exit drops the space reference; the entities holding bodies are destroyed
// right after.
func (p *Playground) Exit() {
	p.space = nil
}
