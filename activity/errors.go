package activity

import "errors"

// These are programming errors; callers are expected to treat them as fatal.
var (
	ErrNotInitialized       = errors.New("activity: director is not initialized")
	ErrDirectorExists       = errors.New("activity: world already has a director")
	ErrTransitionInProgress = errors.New("activity: cannot switch, a transition is already in progress")
)
