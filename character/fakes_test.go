package character

import (
	"github.com/go-gl/mathgl/mgl64"
)

// linearCurve returns x clamped to [0, hi].
type linearCurve struct{ hi float64 }

func (c linearCurve) Evaluate(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > c.hi {
		return c.hi
	}
	return x
}

func (c linearCurve) TimeRange() (float64, float64) { return 0, c.hi }

type constCurve float64

func (c constCurve) Evaluate(float64) float64      { return float64(c) }
func (c constCurve) TimeRange() (float64, float64) { return 0, 1 }

type launch struct {
	velocity   mgl64.Vec3
	overrideXY bool
	overrideZ  bool
}

type movementInput struct {
	direction mgl64.Vec3
	scale     float64
}

type fakeMovement struct {
	location   mgl64.Vec3
	velocity   mgl64.Vec3
	mode       MovementMode
	airControl float64

	// blockX stops swept moves at this X when set.
	blockX *float64

	moves    []mgl64.Vec3
	launches []launch
	inputs   []movementInput
	jumps    int
	stops    int
}

func (m *fakeMovement) Location() mgl64.Vec3 { return m.location }
func (m *fakeMovement) Velocity() mgl64.Vec3 { return m.velocity }
func (m *fakeMovement) Mode() MovementMode   { return m.mode }

func (m *fakeMovement) AddMovementInput(direction mgl64.Vec3, scale float64) {
	m.inputs = append(m.inputs, movementInput{direction: direction, scale: scale})
}

func (m *fakeMovement) Launch(velocity mgl64.Vec3, overrideXY, overrideZ bool) {
	m.launches = append(m.launches, launch{velocity: velocity, overrideXY: overrideXY, overrideZ: overrideZ})
}

func (m *fakeMovement) MoveTo(target mgl64.Vec3, sweep bool) mgl64.Vec3 {
	if sweep && m.blockX != nil && target.X() > *m.blockX {
		target[0] = *m.blockX
	}
	m.moves = append(m.moves, target)
	m.location = target
	return target
}

func (m *fakeMovement) AirControl() float64     { return m.airControl }
func (m *fakeMovement) SetAirControl(v float64) { m.airControl = v }
func (m *fakeMovement) Jump()                   { m.jumps++ }
func (m *fakeMovement) StopJumping()            { m.stops++ }

type fakeView struct {
	eye     mgl64.Vec3
	forward mgl64.Vec3
	yaw     float64
	pitch   float64
}

func (v *fakeView) EyeLocation() mgl64.Vec3  { return v.eye }
func (v *fakeView) Forward() mgl64.Vec3      { return v.forward }
func (v *fakeView) ActorForward() mgl64.Vec3 { return mgl64.Vec3{1, 0, 0} }
func (v *fakeView) ActorRight() mgl64.Vec3   { return mgl64.Vec3{0, 1, 0} }
func (v *fakeView) AddYawInput(d float64)    { v.yaw += d }
func (v *fakeView) AddPitchInput(d float64)  { v.pitch += d }

type fakeAnchor struct{ at mgl64.Vec3 }

func (a fakeAnchor) WorldLocation() mgl64.Vec3 { return a.at }

type fakeBody struct {
	simulating bool
	destroyed  bool
	anchor     Anchor
	attachRule AttachRule
	detached   []DetachRule
	impulses   []mgl64.Vec3
}

func (b *fakeBody) IsSimulatingPhysics() bool { return b.simulating }
func (b *fakeBody) SetSimulatePhysics(s bool) { b.simulating = s }

func (b *fakeBody) AttachTo(anchor Anchor, rule AttachRule) {
	b.anchor = anchor
	b.attachRule = rule
}

func (b *fakeBody) Detach(rule DetachRule) {
	b.anchor = nil
	b.detached = append(b.detached, rule)
}

func (b *fakeBody) ApplyImpulse(impulse mgl64.Vec3) { b.impulses = append(b.impulses, impulse) }
func (b *fakeBody) Valid() bool                     { return !b.destroyed }

type fakeTracer struct {
	hit     Hit
	ok      bool
	queries []TraceQuery
}

func (t *fakeTracer) SphereTrace(q TraceQuery) (Hit, bool) {
	t.queries = append(t.queries, q)
	return t.hit, t.ok
}

// lateCurve holds 0 until lo, then rises linearly to 1 at hi.
type lateCurve struct{ lo, hi float64 }

func (c lateCurve) Evaluate(x float64) float64 {
	if x <= c.lo {
		return 0
	}
	if x >= c.hi {
		return 1
	}
	return (x - c.lo) / (c.hi - c.lo)
}

func (c lateCurve) TimeRange() (float64, float64) { return c.lo, c.hi }
