package activity

// Controller is what a Transition sees of the director during one switch.
type Controller interface {
	// EndCurrentActivity runs Exiter hooks and destroys the current activity
	// entity with all of its children. It is a no-op when there is none.
	EndCurrentActivity()
	// StartNewActivity creates, parents and initializes the new activity.
	// Only the first call has an effect.
	StartNewActivity()
	// Behaviours returns the behaviours attached to the current activity.
	Behaviours() []any
	// NotifyTransitionComplete clears the in-progress guard. Every
	// transition must call it exactly once; extra calls are ignored.
	NotifyTransitionComplete()
}

type controller struct {
	director *Director
	start    func()
	started  bool
	done     bool
}

func (c *controller) EndCurrentActivity() {
	c.director.endCurrentActivity()
}

func (c *controller) StartNewActivity() {
	if c.started {
		return
	}
	c.started = true
	c.start()
}

func (c *controller) Behaviours() []any {
	return c.director.behaviours(c.director.current)
}

func (c *controller) NotifyTransitionComplete() {
	if c.done {
		return
	}
	c.done = true
	c.director.complete(c)
}

// Send delivers fn to the first behaviour of the current activity that
// implements T. It reports whether one was found; a missing capability is
// not an error.
func Send[T any](c Controller, fn func(T)) bool {
	if c == nil || fn == nil {
		return false
	}
	for _, b := range c.Behaviours() {
		if target, ok := b.(T); ok {
			fn(target)
			return true
		}
	}
	return false
}
