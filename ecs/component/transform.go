package component

import "github.com/go-gl/mathgl/mgl64"

// Transform places an entity in the world. Z is up. Rotation is the body
// angle in the X/Z plane, in radians.
type Transform struct {
	Position mgl64.Vec3
	Rotation float64
	Scale    float64
}

var TransformComponent = NewComponent[Transform]()
