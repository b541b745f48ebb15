package component

// Persistent marks a root entity that survives World.DestroyTransient, the
// sweep run when a new level is loaded. Children of a persistent root are
// kept with it.
type Persistent struct {
	ID string
}

var PersistentComponent = NewComponent[Persistent]()
