package component

// Camera is the side-view debug camera that follows TargetName.
type Camera struct {
	TargetName string
	Zoom       float64
	Smoothness float64
	X          float64
	Z          float64
}

var CameraComponent = NewComponent[Camera]()
