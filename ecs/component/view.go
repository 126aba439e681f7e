package component

import "github.com/go-gl/mathgl/mgl64"

// View is the first-person camera: controller yaw and pitch in degrees and
// the eye position relative to the body.
type View struct {
	Yaw       float64
	Pitch     float64
	MinPitch  float64
	MaxPitch  float64
	EyeOffset mgl64.Vec3
}

var ViewComponent = NewComponent[View]()
