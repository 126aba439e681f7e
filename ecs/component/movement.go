package component

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/firstperson/character"
)

// Movement is the walking/falling state of a character body. Requests made
// during a frame (input, jump, launch) are consumed by the next physics step.
type Movement struct {
	Mode     character.MovementMode
	Velocity mgl64.Vec3

	MaxWalkSpeed    float64
	MaxAcceleration float64
	JumpZVelocity   float64
	AirControl      float64

	Input         mgl64.Vec3
	JumpRequested bool

	Launch        mgl64.Vec3
	LaunchPending bool
	LaunchXY      bool
	LaunchZ       bool

	Grounded bool
	// Landed is set for the frame the body touched down after falling.
	Landed bool
}

var MovementComponent = NewComponent[Movement]()
