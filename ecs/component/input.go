package component

// Input stores per-frame input state for an entity. Turn and LookUp are
// mouse deltas in degrees; the Rate fields are normalized stick values.
type Input struct {
	MoveForward float64
	MoveRight   float64
	Turn        float64
	LookUp      float64
	TurnRate    float64
	LookUpRate  float64

	Jump         bool
	JumpPressed  bool
	JumpReleased bool
	FirePressed  bool
	FireReleased bool
	DashPressed  bool
}

var InputComponent = NewComponent[Input]()
