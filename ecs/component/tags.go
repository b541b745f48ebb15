package component

// DirectorTag marks the root entity owned by an activity director.
type DirectorTag struct{}

var DirectorTagComponent = NewComponent[DirectorTag]()

// ActivityTag marks the root entity of the current activity.
type ActivityTag struct{}

var ActivityTagComponent = NewComponent[ActivityTag]()
