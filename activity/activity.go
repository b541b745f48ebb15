package activity

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/activities/ecs"
	"github.com/milk9111/activities/ecs/component"
)

// Activity is initialized without arguments.
type Activity interface {
	Init()
}

// ActivityWith is initialized with exactly one typed argument value.
type ActivityWith[A any] interface {
	Init(args A)
}

// TransitionStartedHandler is told that a transition away from it began,
// before it is ended.
type TransitionStartedHandler interface {
	HandleTransitionStarted()
}

// LoadActivityHandler owns the loading phase of a gated transition. It must
// call done once loading is finished; until then the transition stays in
// progress.
type LoadActivityHandler interface {
	LoadActivity(done func())
}

// TransitionCompleteHandler is told that the transition into it finished.
type TransitionCompleteHandler interface {
	HandleTransitionComplete()
}

// Exiter runs right before the activity entity is destroyed.
type Exiter interface {
	Exit()
}

// Updater is called once per frame while the activity is current.
type Updater interface {
	Update() error
}

// Drawer is called once per frame while the activity is current.
type Drawer interface {
	Draw(screen *ebiten.Image)
}

type binder interface {
	bind(d *Director, e ecs.Entity)
}

// Base gives an activity access to its entity and director. Embed it by
// value; the director binds it before Init runs.
type Base struct {
	director *Director
	entity   ecs.Entity
}

func (b *Base) bind(d *Director, e ecs.Entity) {
	b.director = d
	b.entity = e
}

// Entity returns the activity root entity.
func (b *Base) Entity() ecs.Entity {
	return b.entity
}

// Director returns the director that started this activity.
func (b *Base) Director() *Director {
	return b.director
}

// World returns the world the activity lives in.
func (b *Base) World() *ecs.World {
	if b.director == nil {
		return nil
	}
	return b.director.world
}

// Attach appends a behaviour to the activity entity so capability lookups
// and per-frame hooks reach it.
func (b *Base) Attach(behaviour any) error {
	w := b.World()
	if w == nil {
		return ErrNotInitialized
	}
	if behaviour == nil {
		return component.ErrNilComponent
	}
	bs, _ := ecs.Get(w, b.entity, component.BehavioursComponent)
	bs.Items = append(bs.Items, behaviour)
	return ecs.Add(w, b.entity, component.BehavioursComponent, bs)
}

// Spawn creates a child entity of the activity. It is destroyed together
// with the activity.
func (b *Base) Spawn() (ecs.Entity, error) {
	w := b.World()
	if w == nil {
		return 0, ErrNotInitialized
	}
	e := w.CreateEntity()
	if err := w.SetParent(e, b.entity); err != nil {
		w.DestroyEntity(e)
		return 0, err
	}
	return e, nil
}
