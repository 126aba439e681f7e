package component

import "github.com/jakecoffman/cp"

type ShapeKind string

const (
	ShapeBox     ShapeKind = "box"
	ShapeCircle  ShapeKind = "circle"
	ShapeCapsule ShapeKind = "capsule"
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Width and Height span the X and Z axes. A capsule uses Radius and Height
// as its half height.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Kind       ShapeKind
	Width      float64
	Height     float64
	Radius     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool
	// Simulate is false while the body is driven kinematically.
	Simulate bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
