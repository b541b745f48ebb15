package component

import "github.com/jakecoffman/cp"

// PhysicsSpace owns a chipmunk space. The entity carrying it is usually an
// activity root, so the space goes away with the activity.
type PhysicsSpace struct {
	Space    *cp.Space
	TimeStep float64
}

var PhysicsSpaceComponent = NewComponent[PhysicsSpace]()

// PhysicsBody links an entity to a body living in the PhysicsSpace of its
// nearest ancestor.
type PhysicsBody struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Radius float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
