package screens

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/milk9111/activities/activity"
	"github.com/milk9111/activities/ecs"
	"github.com/milk9111/activities/ecs/component"
	"github.com/milk9111/activities/prefabs"
)

// ErrUnknownTarget is returned by Router.Go for targets it cannot map to an
// activity.
var ErrUnknownTarget = errors.New("screens: unknown target")

var routerComponent = component.NewComponent[*Router]()

// Router maps content targets to activity switches:
//
//	title              Title
//	level:<name>       Level with LevelArgs{Name}
//	playground[:<n>]   Playground with n balls
//	script:<name>      Scripted running scripts/<name>.tengo
//	quit               asks the game loop to stop
type Router struct {
	director          *activity.Director
	defaultTransition string
	fadeFrames        int

	last string
	quit bool
}

// NewRouter binds a router to the director so activities can find it from
// their Base.
func NewRouter(d *activity.Director, spec *prefabs.GameSpec) (*Router, error) {
	if d == nil {
		return nil, activity.ErrNotInitialized
	}
	r := &Router{director: d}
	if spec != nil {
		r.defaultTransition = spec.DefaultTransition
		r.fadeFrames = spec.FadeFrames
	}
	if err := ecs.Add(d.World(), d.Root(), routerComponent, r); err != nil {
		return nil, fmt.Errorf("screens: attach router: %w", err)
	}
	return r, nil
}

// RouterOf returns the router bound to the activity's director.
func RouterOf(b *activity.Base) (*Router, bool) {
	d := b.Director()
	if d == nil {
		return nil, false
	}
	return ecs.Get(d.World(), d.Root(), routerComponent)
}

// initErrer is implemented by activities whose Init can fail. Init has no
// error return, so the router asks afterwards.
type initErrer interface {
	Err() error
}

// Go switches to target. An empty transition uses the game default. When
// the new activity starts during the call and its Init failed, that error is
// returned; the activity stays current and keeps reporting it from Update.
func (r *Router) Go(target, transition string) error {
	t, err := r.transition(transition)
	if err != nil {
		return err
	}
	switchTo, err := r.resolve(target)
	if err != nil {
		return err
	}
	if err := switchTo(activity.WithTransition(t)); err != nil {
		return err
	}
	if strings.TrimSpace(target) != "quit" {
		r.last = target
	}
	if a, ok := r.director.CurrentActivity().(initErrer); ok && a.Err() != nil {
		return fmt.Errorf("screens: start %q: %w", target, a.Err())
	}
	return nil
}

// Validate reports whether Go would accept target and transition, without
// switching.
func (r *Router) Validate(target, transition string) error {
	if _, err := r.transition(transition); err != nil {
		return err
	}
	_, err := r.resolve(target)
	return err
}

func (r *Router) transition(name string) (activity.Transition, error) {
	if name == "" {
		name = r.defaultTransition
	}
	return activity.ParseTransition(name, r.fadeFrames)
}

func (r *Router) resolve(target string) (func(activity.SwitchOption) error, error) {
	kind, arg, _ := strings.Cut(strings.TrimSpace(target), ":")
	switch kind {
	case "title":
		return func(opt activity.SwitchOption) error {
			return activity.Switch[Title](r.director, opt)
		}, nil
	case "level":
		if arg == "" {
			return nil, fmt.Errorf("%w: %q needs a level name", ErrUnknownTarget, target)
		}
		return func(opt activity.SwitchOption) error {
			return activity.SwitchWith[Level](r.director, LevelArgs{Name: arg}, opt)
		}, nil
	case "playground":
		args := PlaygroundArgs{Balls: defaultBalls}
		if arg != "" {
			n, err := strconv.Atoi(arg)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: %q has a bad ball count", ErrUnknownTarget, target)
			}
			args.Balls = n
		}
		return func(opt activity.SwitchOption) error {
			return activity.SwitchWith[Playground](r.director, args, opt)
		}, nil
	case "script":
		if arg == "" {
			return nil, fmt.Errorf("%w: %q needs a script name", ErrUnknownTarget, target)
		}
		return func(opt activity.SwitchOption) error {
			return activity.SwitchWith[Scripted](r.director, ScriptArgs{Name: arg}, opt)
		}, nil
	case "quit":
		return func(activity.SwitchOption) error {
			r.quit = true
			return nil
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, target)
	}
}

// Reload restarts the last target without a transition, used after content
// edits.
func (r *Router) Reload() error {
	if r.last == "" {
		return nil
	}
	return r.Go(r.last, "instant")
}

// Last returns the most recent target that was switched to.
func (r *Router) Last() string {
	return r.last
}

// Quit reports whether the quit target was chosen.
func (r *Router) Quit() bool {
	return r.quit
}
