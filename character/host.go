package character

import "github.com/go-gl/mathgl/mgl64"

// MovementMode mirrors the host movement system's coarse state.
type MovementMode int

const (
	MovementNone MovementMode = iota
	MovementWalking
	MovementFalling
	MovementFlying
)

func (m MovementMode) String() string {
	switch m {
	case MovementWalking:
		return "walking"
	case MovementFalling:
		return "falling"
	case MovementFlying:
		return "flying"
	default:
		return "none"
	}
}

// Curve maps playback time or normalized progress to a scalar. Providers
// clamp inputs to TimeRange.
type Curve interface {
	Evaluate(x float64) float64
	TimeRange() (min, max float64)
}

// Movement is the host character-movement facade.
type Movement interface {
	Location() mgl64.Vec3
	Velocity() mgl64.Vec3
	Mode() MovementMode
	AddMovementInput(direction mgl64.Vec3, scale float64)
	// Launch sets (override) or adds to the horizontal and vertical parts
	// of the velocity independently.
	Launch(velocity mgl64.Vec3, overrideXY, overrideZ bool)
	// MoveTo relocates the character; with sweep the move stops at the first
	// blocking geometry. It returns the location actually reached.
	MoveTo(target mgl64.Vec3, sweep bool) mgl64.Vec3
	AirControl() float64
	SetAirControl(multiplier float64)
	Jump()
	StopJumping()
}

// View is the first-person camera and controller rotation.
type View interface {
	EyeLocation() mgl64.Vec3
	// Forward includes pitch; ActorForward and ActorRight are yaw only.
	Forward() mgl64.Vec3
	ActorForward() mgl64.Vec3
	ActorRight() mgl64.Vec3
	AddYawInput(degrees float64)
	AddPitchInput(degrees float64)
}

// Anchor is a point on the character that carried objects snap to.
type Anchor interface {
	WorldLocation() mgl64.Vec3
}

type AttachRule int

const (
	// SnapToTargetNotIncludingScale moves the object onto the anchor and
	// keeps the object's own scale.
	SnapToTargetNotIncludingScale AttachRule = iota
	// KeepRelativeTransform holds the object at its current offset from
	// the anchor.
	KeepRelativeTransform
)

type DetachRule int

const (
	// KeepWorldTransform leaves the object where it is.
	KeepWorldTransform DetachRule = iota
)

// PhysicsComponent is a host-owned body. Holders keep a non-owning
// reference; implementations may also provide Valid() bool to report that
// the body has since been destroyed.
type PhysicsComponent interface {
	IsSimulatingPhysics() bool
	SetSimulatePhysics(simulate bool)
	AttachTo(anchor Anchor, rule AttachRule)
	Detach(rule DetachRule)
	// ApplyImpulse applies a velocity change, independent of mass.
	ApplyImpulse(impulse mgl64.Vec3)
}

type validator interface {
	Valid() bool
}

// TraceQuery is a sphere sweep from Origin to End.
type TraceQuery struct {
	Origin     mgl64.Vec3
	End        mgl64.Vec3
	Radius     float64
	IgnoreSelf bool
}

// Hit is the first blocking contact of a trace. Component is nil when the
// hit was static geometry.
type Hit struct {
	Component PhysicsComponent
	Point     mgl64.Vec3
}

type Tracer interface {
	SphereTrace(q TraceQuery) (Hit, bool)
}
