package activity

import (
	"log"
	"reflect"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/activities/ecs"
	"github.com/milk9111/activities/ecs/component"
)

const directorName = "ActivityDirector"

// World event types pushed by the director. Data is the activity name for
// started and ended, nil for complete.
const (
	EventActivityStarted    = "activity.started"
	EventActivityEnded      = "activity.ended"
	EventTransitionComplete = "activity.transition_complete"
)

// Director owns the current activity of a world and runs transitions
// between activities. Create exactly one per world with NewDirector.
type Director struct {
	world   *ecs.World
	root    ecs.Entity
	current ecs.Entity

	inProgress bool
	transition Transition
	active     *controller

	logger *log.Logger
}

// Option configures a Director.
type Option func(*Director)

// WithLogger logs every switch, end and completion to l.
func WithLogger(l *log.Logger) Option {
	return func(d *Director) {
		d.logger = l
	}
}

// NewDirector creates the director root entity in w. The root is persistent
// so level sweeps never take the current activity with them.
func NewDirector(w *ecs.World, opts ...Option) (*Director, error) {
	if w == nil {
		return nil, ErrNotInitialized
	}
	if _, ok := w.First(component.DirectorTagComponent.Kind()); ok {
		return nil, ErrDirectorExists
	}

	root := w.CreateEntity()
	_ = ecs.Add(w, root, component.NameComponent, component.Name{Value: directorName})
	_ = ecs.Add(w, root, component.PersistentComponent, component.Persistent{ID: directorName})
	_ = ecs.Add(w, root, component.DirectorTagComponent, component.DirectorTag{})

	d := &Director{world: w, root: root}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// SwitchOption configures a single switch.
type SwitchOption func(*switchConfig)

type switchConfig struct {
	transition Transition
}

// WithTransition selects the strategy for one switch. Instant is used when
// no strategy is given.
func WithTransition(t Transition) SwitchOption {
	return func(c *switchConfig) {
		c.transition = t
	}
}

type activityPtr[A any] interface {
	*A
	Activity
}

type activityWithPtr[A, Args any] interface {
	*A
	ActivityWith[Args]
}

// Switch replaces the current activity with a new A initialized through
// Init().
func Switch[A any, P activityPtr[A]](d *Director, opts ...SwitchOption) error {
	return d.switchActivity(
		reflect.TypeFor[A]().Name(),
		func() any { return P(new(A)) },
		func(a any) { a.(P).Init() },
		opts,
	)
}

// SwitchWith replaces the current activity with a new A initialized through
// Init(args).
func SwitchWith[A any, Args any, P activityWithPtr[A, Args]](d *Director, args Args, opts ...SwitchOption) error {
	return d.switchActivity(
		reflect.TypeFor[A]().Name(),
		func() any { return P(new(A)) },
		func(a any) { a.(P).Init(args) },
		opts,
	)
}

func (d *Director) switchActivity(name string, newActivity func() any, initActivity func(any), opts []SwitchOption) error {
	if d == nil || d.world == nil {
		return ErrNotInitialized
	}
	if d.inProgress {
		return ErrTransitionInProgress
	}

	var cfg switchConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	t := cfg.transition
	if t == nil {
		t = Instant{}
	}

	start := func() {
		a := newActivity()
		e := d.world.CreateEntity()
		_ = ecs.Add(d.world, e, component.NameComponent, component.Name{Value: name})
		_ = ecs.Add(d.world, e, component.ActivityTagComponent, component.ActivityTag{})
		_ = ecs.Add(d.world, e, component.BehavioursComponent, component.Behaviours{Items: []any{a}})
		_ = d.world.SetParent(e, d.root)
		if b, ok := a.(binder); ok {
			b.bind(d, e)
		}
		d.current = e
		d.world.Events().Push(ecs.Event{Type: EventActivityStarted, Data: name})
		d.logf("activity: started %s (entity %s)", name, e)
		initActivity(a)
	}

	c := &controller{director: d, start: start}
	d.inProgress = true
	d.transition = t
	d.active = c
	d.logf("activity: switching to %s via %T", name, t)
	t.Start(c)
	return nil
}

func (d *Director) endCurrentActivity() {
	e := d.current
	if !d.world.IsAlive(e) {
		d.current = 0
		return
	}
	for _, b := range d.behaviours(e) {
		if x, ok := b.(Exiter); ok {
			x.Exit()
		}
	}
	name, _ := ecs.Get(d.world, e, component.NameComponent)
	d.world.DestroyEntity(e)
	d.world.Events().Push(ecs.Event{Type: EventActivityEnded, Data: name.Value})
	if d.current == e {
		d.current = 0
	}
	d.logf("activity: ended entity %s", e)
}

func (d *Director) complete(c *controller) {
	if d.active != c {
		return
	}
	d.inProgress = false
	d.transition = nil
	d.active = nil
	d.world.Events().Push(ecs.Event{Type: EventTransitionComplete})
	d.logf("activity: transition complete")
}

func (d *Director) behaviours(e ecs.Entity) []any {
	bs, ok := ecs.Get(d.world, e, component.BehavioursComponent)
	if !ok {
		return nil
	}
	return append([]any(nil), bs.Items...)
}

// Update ticks a frame-driven transition, then the current activity's
// Updater behaviours. It stops early when a behaviour switches activity.
func (d *Director) Update() error {
	if d == nil || d.world == nil {
		return ErrNotInitialized
	}
	if t, ok := d.transition.(Ticker); ok && d.active != nil {
		t.Tick(d.active)
	}
	cur := d.current
	for _, b := range d.behaviours(cur) {
		if d.current != cur {
			break
		}
		if u, ok := b.(Updater); ok {
			if err := u.Update(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Draw draws the current activity's Drawer behaviours, then the overlay of
// the running transition, if any.
func (d *Director) Draw(screen *ebiten.Image) {
	if d == nil || d.world == nil || screen == nil {
		return
	}
	for _, b := range d.behaviours(d.current) {
		if dr, ok := b.(Drawer); ok {
			dr.Draw(screen)
		}
	}
	if o, ok := d.transition.(Overlay); ok {
		o.DrawOverlay(screen)
	}
}

// Current returns the current activity entity.
func (d *Director) Current() (ecs.Entity, bool) {
	if d == nil || !d.world.IsAlive(d.current) {
		return 0, false
	}
	return d.current, true
}

// CurrentActivity returns the activity value of the current entity, or nil.
func (d *Director) CurrentActivity() any {
	e, ok := d.Current()
	if !ok {
		return nil
	}
	bs := d.behaviours(e)
	if len(bs) == 0 {
		return nil
	}
	return bs[0]
}

// InProgress reports whether a transition is running.
func (d *Director) InProgress() bool {
	return d != nil && d.inProgress
}

// Root returns the persistent director entity activities are parented to.
func (d *Director) Root() ecs.Entity {
	if d == nil {
		return 0
	}
	return d.root
}

// World returns the world the director lives in.
func (d *Director) World() *ecs.World {
	if d == nil {
		return nil
	}
	return d.world
}

func (d *Director) logf(format string, args ...any) {
	if d.logger == nil {
		return
	}
	d.logger.Printf(format, args...)
}
