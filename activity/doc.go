// Package activity switches between mutually exclusive top-level activities
// (title screen, level, menu...) living as entities in an ecs.World.
//
// A Director owns the current activity. Switch and SwitchWith replace it
// through a Transition strategy, which drives the ordering of the four
// Controller steps: end the current activity, start the new one, send
// optional capability messages, and notify completion. Only one transition
// may be in progress at a time.
//
// Activities opt into transition notifications by implementing the small
// capability interfaces in this package (TransitionStartedHandler,
// LoadActivityHandler, TransitionCompleteHandler, Exiter). Any behaviour
// attached to the activity entity is searched, not only the activity value.
package activity
