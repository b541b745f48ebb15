package component

// Behaviours holds the script-like values attached to an entity, in
// attachment order. Capability lookups walk this list and type-assert.
type Behaviours struct {
	Items []any
}

var BehavioursComponent = NewComponent[Behaviours]()
