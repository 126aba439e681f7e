package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/firstperson/character"
	"github.com/milk9111/firstperson/common"
	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/ecs/component"
)

// CharacterMovement exposes an entity's Movement component and physics body
// as a character.Movement.
type CharacterMovement struct {
	w       *ecs.World
	physics *PhysicsSystem
	e       ecs.Entity
}

func NewCharacterMovement(w *ecs.World, physics *PhysicsSystem, e ecs.Entity) *CharacterMovement {
	return &CharacterMovement{w: w, physics: physics, e: e}
}

func (m *CharacterMovement) movement() *component.Movement {
	mv, ok := ecs.Get(m.w, m.e, component.MovementComponent)
	if !ok {
		return &component.Movement{}
	}
	return mv
}

func (m *CharacterMovement) Location() mgl64.Vec3 {
	if t, ok := ecs.Get(m.w, m.e, component.TransformComponent); ok {
		return t.Position
	}
	return mgl64.Vec3{}
}

func (m *CharacterMovement) Velocity() mgl64.Vec3         { return m.movement().Velocity }
func (m *CharacterMovement) Mode() character.MovementMode { return m.movement().Mode }

func (m *CharacterMovement) AddMovementInput(direction mgl64.Vec3, scale float64) {
	mv := m.movement()
	mv.Input = mv.Input.Add(direction.Mul(scale))
}

// Launch replaces any launch requested earlier in the frame.
func (m *CharacterMovement) Launch(velocity mgl64.Vec3, overrideXY, overrideZ bool) {
	mv := m.movement()
	mv.Launch = velocity
	mv.LaunchXY = overrideXY
	mv.LaunchZ = overrideZ
	mv.LaunchPending = true
}

func (m *CharacterMovement) MoveTo(target mgl64.Vec3, sweep bool) mgl64.Vec3 {
	if m.physics == nil {
		if t, ok := ecs.Get(m.w, m.e, component.TransformComponent); ok {
			t.Position = target
		}
		return target
	}
	return m.physics.Sweep(m.w, m.e, target, sweep)
}

func (m *CharacterMovement) AirControl() float64     { return m.movement().AirControl }
func (m *CharacterMovement) SetAirControl(v float64) { m.movement().AirControl = v }

func (m *CharacterMovement) Jump() { m.movement().JumpRequested = true }

// StopJumping cancels a jump requested this frame that physics has not
// consumed yet.
func (m *CharacterMovement) StopJumping() {
	m.movement().JumpRequested = false
}

// CharacterView exposes the View component as a character.View.
type CharacterView struct {
	w *ecs.World
	e ecs.Entity
}

func NewCharacterView(w *ecs.World, e ecs.Entity) *CharacterView {
	return &CharacterView{w: w, e: e}
}

func (v *CharacterView) view() *component.View {
	vc, ok := ecs.Get(v.w, v.e, component.ViewComponent)
	if !ok {
		return &component.View{}
	}
	return vc
}

func (v *CharacterView) EyeLocation() mgl64.Vec3 {
	vc := v.view()
	var pos mgl64.Vec3
	if t, ok := ecs.Get(v.w, v.e, component.TransformComponent); ok {
		pos = t.Position
	}
	off := vc.EyeOffset
	fwd := common.DirectionVector(vc.Yaw, 0)
	right := common.RightVector(vc.Yaw)
	return pos.Add(fwd.Mul(off.X())).Add(right.Mul(off.Y())).Add(mgl64.Vec3{0, 0, off.Z()})
}

func (v *CharacterView) Forward() mgl64.Vec3 {
	vc := v.view()
	return common.DirectionVector(vc.Yaw, vc.Pitch)
}

func (v *CharacterView) ActorForward() mgl64.Vec3 {
	return common.DirectionVector(v.view().Yaw, 0)
}

func (v *CharacterView) ActorRight() mgl64.Vec3 {
	return common.RightVector(v.view().Yaw)
}

func (v *CharacterView) AddYawInput(degrees float64) {
	vc := v.view()
	vc.Yaw = wrapDegrees(vc.Yaw + degrees)
}

func (v *CharacterView) AddPitchInput(degrees float64) {
	vc := v.view()
	lo, hi := vc.MinPitch, vc.MaxPitch
	if lo == 0 && hi == 0 {
		lo, hi = -89, 89
	}
	vc.Pitch = common.Clamp(vc.Pitch+degrees, lo, hi)
}

func wrapDegrees(d float64) float64 {
	d = math.Mod(d+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}

// CarryPoint is the gravity gun's hold position in front of the eye.
type CarryPoint struct {
	w    *ecs.World
	e    ecs.Entity
	view *CharacterView
}

func NewCarryPoint(w *ecs.World, e ecs.Entity) *CarryPoint {
	return &CarryPoint{w: w, e: e, view: NewCharacterView(w, e)}
}

func (a *CarryPoint) Owner() ecs.Entity { return a.e }

func (a *CarryPoint) WorldLocation() mgl64.Vec3 {
	var off mgl64.Vec3
	if ca, ok := ecs.Get(a.w, a.e, component.CarryAnchorComponent); ok {
		off = ca.Offset
	}
	eye := a.view.EyeLocation()
	return eye.Add(a.view.Forward().Mul(off.X())).
		Add(a.view.ActorRight().Mul(off.Y())).
		Add(mgl64.Vec3{0, 0, off.Z()})
}

// Body is a non-owning handle to a prop's physics body.
type Body struct {
	w       *ecs.World
	physics *PhysicsSystem
	e       ecs.Entity
}

func NewBody(w *ecs.World, physics *PhysicsSystem, e ecs.Entity) *Body {
	return &Body{w: w, physics: physics, e: e}
}

func (b *Body) Entity() ecs.Entity { return b.e }

func (b *Body) component() (*component.PhysicsBody, bool) {
	if b == nil || !b.w.IsAlive(b.e) {
		return nil, false
	}
	pb, ok := ecs.Get(b.w, b.e, component.PhysicsBodyComponent)
	if !ok || pb.Body == nil {
		return nil, false
	}
	return pb, true
}

// Valid is false once the entity or its body is gone.
func (b *Body) Valid() bool {
	_, ok := b.component()
	return ok
}

func (b *Body) IsSimulatingPhysics() bool {
	pb, ok := b.component()
	return ok && !pb.Static && pb.Body.GetType() == cp.BODY_DYNAMIC
}

func (b *Body) SetSimulatePhysics(simulate bool) {
	pb, ok := b.component()
	if !ok || pb.Static {
		return
	}
	pb.Simulate = simulate
	if simulate {
		pb.Body.SetType(cp.BODY_DYNAMIC)
		pb.Body.Activate()
		return
	}
	pb.Body.SetType(cp.BODY_KINEMATIC)
}

// AttachTo pins the body to anchor from the next physics step on. A body
// carried by a character stops colliding with it.
func (b *Body) AttachTo(anchor character.Anchor, rule character.AttachRule) {
	pb, ok := b.component()
	if !ok || anchor == nil {
		return
	}
	att := &component.Attachment{Anchor: anchor, Rule: rule}
	if rule == character.KeepRelativeTransform {
		if t, ok := ecs.Get(b.w, b.e, component.TransformComponent); ok {
			att.Offset = t.Position.Sub(anchor.WorldLocation())
		}
	}
	if err := ecs.Add(b.w, b.e, component.AttachmentComponent, att); err != nil {
		return
	}

	group := cp.NO_GROUP
	if owner, ok := anchor.(interface{ Owner() ecs.Entity }); ok && b.physics != nil {
		group = b.physics.groupOf(owner.Owner())
	}
	pb.Shape.SetFilter(cp.ShapeFilter{Group: group, Categories: cp.ALL_CATEGORIES, Mask: cp.ALL_CATEGORIES})

	if rule == character.SnapToTargetNotIncludingScale {
		target := anchor.WorldLocation()
		pb.Body.SetPosition(toSpace(target))
		if t, ok := ecs.Get(b.w, b.e, component.TransformComponent); ok {
			t.Position = target
		}
	}
}

// Detach leaves the body where it is; KeepWorldTransform is the only rule.
func (b *Body) Detach(_ character.DetachRule) {
	pb, ok := b.component()
	if !ok {
		return
	}
	ecs.Remove(b.w, b.e, component.AttachmentComponent)
	pb.Shape.SetFilter(cp.SHAPE_FILTER_ALL)
}

// ApplyImpulse changes velocity directly, ignoring mass. The lateral Y part
// is dropped by the side-view sandbox.
func (b *Body) ApplyImpulse(impulse mgl64.Vec3) {
	pb, ok := b.component()
	if !ok || pb.Body.GetType() != cp.BODY_DYNAMIC {
		return
	}
	pb.Body.SetVelocityVector(pb.Body.Velocity().Add(toSpace(impulse)))
	pb.Body.Activate()
}
