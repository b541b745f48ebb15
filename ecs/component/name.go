package component

// Name is a human readable label, mostly for logs and debug overlays.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
