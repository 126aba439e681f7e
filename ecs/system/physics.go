package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/milk9111/firstperson/character"
	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/ecs/component"
)

const (
	collisionTypeCharacter cp.CollisionType = iota + 1
	collisionTypeSolid
)

const (
	// sweepSkin keeps swept moves and their probes off touching surfaces.
	sweepSkin = 2.0
	// groundedMaxRise is the upward speed above which a contact does not
	// count as standing.
	groundedMaxRise = 5.0
	defaultBoxSize  = 32.0
)

// PhysicsSystem runs a side-view Chipmunk2D sandbox: world X maps to space X
// and world Z (up) to space Y. World Y is not simulated; characters carry it
// as an integrated lateral offset.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool
	logger        *zap.Logger

	entities   map[ecs.Entity]*bodyInfo
	shapes     map[*cp.Shape]ecs.Entity
	characters map[*cp.Shape]ecs.Entity
	contacts   map[ecs.Entity]*contactState
	nextGroup  uint
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
	// group is non-zero for characters; carried bodies join it.
	group uint
}

type contactState struct {
	grounded bool
}

func NewPhysicsSystem(gravity float64, logger *zap.Logger) *PhysicsSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return &PhysicsSystem{
		space:      space,
		logger:     logger,
		entities:   make(map[ecs.Entity]*bodyInfo),
		shapes:     make(map[*cp.Shape]ecs.Entity),
		characters: make(map[*cp.Shape]ecs.Entity),
		contacts:   make(map[ecs.Entity]*contactState),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) SetGravity(gravity float64) {
	if ps == nil || ps.space == nil {
		return
	}
	ps.space.SetGravity(cp.Vector{X: 0, Y: gravity})
}

func (ps *PhysicsSystem) Update(w *ecs.World, dt float64) {
	if ps == nil || w == nil || dt <= 0 {
		return
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.driveCharacters(w, dt)
	ps.SnapAttachments(w)
	ps.resetContacts(w)

	ps.space.Step(dt)

	ps.syncTransforms(w)
	ps.flushContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	groundHandler := ps.space.NewCollisionHandler(collisionTypeCharacter, collisionTypeSolid)
	groundHandler.UserData = ps
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		charEntity, charIsA := sys.characters[shapeA]
		if !charIsA {
			var okB bool
			charEntity, okB = sys.characters[shapeB]
			if !okB {
				return true
			}
		}

		// normal from the character toward what it touches
		n := arb.Normal()
		if !charIsA {
			n = n.Neg()
		}
		if n.Y > -0.5 {
			return true
		}
		st := sys.contacts[charEntity]
		if st == nil {
			st = &contactState{}
			sys.contacts[charEntity] = st
		}
		st.grounded = true
		return true
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	for _, e := range w.Query(component.PhysicsBodyComponent.ID(), component.TransformComponent.ID()) {
		if _, ok := ps.entities[e]; ok {
			continue
		}
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		transform, _ := ecs.Get(w, e, component.TransformComponent)
		isCharacter := ecs.Has(w, e, component.MovementComponent)

		info := ps.createBodyInfo(transform, bodyComp, isCharacter)
		if info == nil {
			continue
		}
		info.shape.UserData = e
		ps.entities[e] = info
		ps.shapes[info.shape] = e
		if isCharacter {
			ps.characters[info.shape] = e
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.shape
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody, isCharacter bool) *bodyInfo {
	center := toSpace(transform.Position)

	if bodyComp.Static {
		var shape *cp.Shape
		switch bodyComp.Kind {
		case component.ShapeCircle:
			shape = cp.NewCircle(ps.space.StaticBody, bodyComp.Radius, center)
		default:
			w, h := boxSize(bodyComp)
			bb := cp.BB{L: center.X - w/2, B: center.Y - h/2, R: center.X + w/2, T: center.Y + h/2}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shape: shape, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	info := &bodyInfo{}
	var body *cp.Body
	var shape *cp.Shape

	if isCharacter {
		// upright capsule; rotation locked
		body = cp.NewBody(mass, cp.INFINITY)
		r := bodyComp.Radius
		half := math.Max(bodyComp.Height-r, 0)
		shape = cp.NewSegment(body, cp.Vector{X: 0, Y: -half}, cp.Vector{X: 0, Y: half}, r)
		shape.SetCollisionType(collisionTypeCharacter)
		ps.nextGroup++
		info.group = ps.nextGroup
		shape.SetFilter(cp.ShapeFilter{Group: info.group, Categories: cp.ALL_CATEGORIES, Mask: cp.ALL_CATEGORIES})
	} else {
		// mass lives on the shape so the body type can be toggled
		body = cp.NewBody(0, 0)
		switch bodyComp.Kind {
		case component.ShapeCircle:
			shape = cp.NewCircle(body, bodyComp.Radius, cp.Vector{})
		default:
			w, h := boxSize(bodyComp)
			shape = cp.NewBox(body, w, h, 0)
		}
		shape.SetMass(mass)
		shape.SetCollisionType(collisionTypeSolid)
	}
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)

	body.SetPosition(center)
	body.SetAngle(transform.Rotation)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	if !isCharacter && !bodyComp.Simulate {
		body.SetType(cp.BODY_KINEMATIC)
	}

	info.body = body
	info.shape = shape
	return info
}

func boxSize(bodyComp *component.PhysicsBody) (float64, float64) {
	w, h := bodyComp.Width, bodyComp.Height
	if w <= 0 {
		w = defaultBoxSize
	}
	if h <= 0 {
		h = defaultBoxSize
	}
	return w, h
}

// driveCharacters turns the frame's movement requests into body velocity.
func (ps *PhysicsSystem) driveCharacters(w *ecs.World, dt float64) {
	for _, e := range w.Query(component.MovementComponent.ID(), component.PhysicsBodyComponent.ID(), component.TransformComponent.ID()) {
		info := ps.entities[e]
		if info == nil || info.static {
			continue
		}
		mv, _ := ecs.Get(w, e, component.MovementComponent)
		transform, _ := ecs.Get(w, e, component.TransformComponent)

		vel := info.body.Velocity()
		vx, vy, vz := vel.X, mv.Velocity.Y(), vel.Y

		if mv.LaunchPending {
			if mv.LaunchXY {
				vx, vy = mv.Launch.X(), mv.Launch.Y()
			} else {
				vx += mv.Launch.X()
				vy += mv.Launch.Y()
			}
			if mv.LaunchZ {
				vz = mv.Launch.Z()
			} else {
				vz += mv.Launch.Z()
			}
			if vz > 0 {
				mv.Grounded = false
				mv.Mode = character.MovementFalling
			}
			mv.LaunchPending = false
			mv.Launch = mgl64.Vec3{}
		}

		input := mgl64.Vec3{mv.Input.X(), mv.Input.Y(), 0}
		if l := input.Len(); l > 1 {
			input = input.Mul(1 / l)
		}
		accel := mv.MaxAcceleration * dt
		if !mv.Grounded {
			accel *= mv.AirControl
		}
		if mv.Grounded || input.Len() > 0 {
			vx = approach(vx, input.X()*mv.MaxWalkSpeed, accel)
			vy = approach(vy, input.Y()*mv.MaxWalkSpeed, accel)
		}

		if mv.JumpRequested && mv.Grounded {
			vz = mv.JumpZVelocity
			mv.Grounded = false
			mv.Mode = character.MovementFalling
		}
		mv.JumpRequested = false
		mv.Input = mgl64.Vec3{}

		info.body.SetVelocity(vx, vz)
		mv.Velocity = mgl64.Vec3{vx, vy, vz}
		transform.Position[1] += vy * dt
	}
}

func approach(v, target, step float64) float64 {
	if step <= 0 {
		return v
	}
	if v < target {
		return math.Min(v+step, target)
	}
	return math.Max(v-step, target)
}

// SnapAttachments moves attached bodies onto their anchors.
func (ps *PhysicsSystem) SnapAttachments(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ecs.ForEach(w, component.AttachmentComponent, func(e ecs.Entity, att *component.Attachment) {
		if att.Anchor == nil {
			return
		}
		info := ps.entities[e]
		if info == nil || info.static {
			return
		}
		target := att.Anchor.WorldLocation().Add(att.Offset)
		info.body.SetPosition(toSpace(target))
		if info.body.GetType() == cp.BODY_DYNAMIC {
			info.body.SetVelocity(0, 0)
		}
		if transform, ok := ecs.Get(w, e, component.TransformComponent); ok {
			transform.Position = target
		}
	})
}

func (ps *PhysicsSystem) resetContacts(w *ecs.World) {
	for e, st := range ps.contacts {
		if !w.IsAlive(e) {
			delete(ps.contacts, e)
			continue
		}
		st.grounded = false
	}
}

func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	for _, e := range w.Query(component.MovementComponent.ID(), component.PhysicsBodyComponent.ID()) {
		info := ps.entities[e]
		if info == nil {
			continue
		}
		mv, _ := ecs.Get(w, e, component.MovementComponent)

		st := ps.contacts[e]
		grounded := st != nil && st.grounded && info.body.Velocity().Y <= groundedMaxRise

		mv.Landed = grounded && !mv.Grounded && mv.Mode == character.MovementFalling
		mv.Grounded = grounded
		if grounded {
			mv.Mode = character.MovementWalking
		} else {
			mv.Mode = character.MovementFalling
		}
		if mv.Landed {
			w.Events().Push(ecs.Event{Kind: ecs.EventLanded, Entity: e})
		}
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent, component.TransformComponent, func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Static || bodyComp.Body == nil {
			return
		}
		pos := bodyComp.Body.Position()
		transform.Position[0] = pos.X
		transform.Position[2] = pos.Y
		transform.Rotation = bodyComp.Body.Angle()

		if mv, ok := ecs.Get(w, e, component.MovementComponent); ok {
			vel := bodyComp.Body.Velocity()
			mv.Velocity = mgl64.Vec3{vel.X, mv.Velocity.Y(), vel.Y}
		}
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
			delete(ps.shapes, info.shape)
			delete(ps.characters, info.shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
		delete(ps.contacts, e)
	}
}

// Sweep moves entity e toward target. With sweep the move stops short of
// the first blocking shape along the way, probed at the top, middle and
// bottom of the capsule. It returns the location reached.
func (ps *PhysicsSystem) Sweep(w *ecs.World, e ecs.Entity, target mgl64.Vec3, sweep bool) mgl64.Vec3 {
	transform, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return target
	}
	info := ps.entities[e]
	if info == nil || info.static {
		transform.Position = target
		return target
	}

	from := info.body.Position()
	to := toSpace(target)
	alpha := 1.0

	if sweep && from.Distance(to) > 0 {
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		radius, reach := probeShape(bodyComp)
		filter := ps.filterFor(e)
		for _, off := range []float64{-reach, 0, reach} {
			o := cp.Vector{X: 0, Y: off}
			hit := ps.space.SegmentQueryFirst(from.Add(o), to.Add(o), radius, filter)
			if hit.Shape != nil && hit.Alpha < alpha {
				alpha = hit.Alpha
			}
		}
		if alpha < 1 {
			alpha = math.Max(0, alpha-sweepSkin/from.Distance(to))
		}
	}

	reached := from.Lerp(to, alpha)
	info.body.SetPosition(reached)

	current := transform.Position
	y := current.Y() + (target.Y()-current.Y())*alpha
	transform.Position = mgl64.Vec3{reached.X, y, reached.Y}
	return transform.Position
}

func probeShape(bodyComp *component.PhysicsBody) (radius, reach float64) {
	if bodyComp == nil {
		return 0, 0
	}
	switch {
	case bodyComp.Kind == component.ShapeCapsule || bodyComp.Radius > 0:
		radius = math.Max(bodyComp.Radius-sweepSkin, 0)
		if bodyComp.Kind == component.ShapeCapsule {
			reach = math.Max(bodyComp.Height-bodyComp.Radius, 0)
		}
	default:
		w, h := boxSize(bodyComp)
		radius = math.Max(math.Min(w, h)/2-sweepSkin, 0)
		reach = math.Max(h/2-radius-sweepSkin, 0)
	}
	return radius, reach
}

// filterFor excludes e's own shapes and anything it carries.
func (ps *PhysicsSystem) filterFor(e ecs.Entity) cp.ShapeFilter {
	filter := cp.SHAPE_FILTER_ALL
	if info := ps.entities[e]; info != nil {
		filter.Group = info.group
	}
	return filter
}

func (ps *PhysicsSystem) groupOf(e ecs.Entity) uint {
	if info := ps.entities[e]; info != nil {
		return info.group
	}
	return cp.NO_GROUP
}

func (ps *PhysicsSystem) entityForShape(shape *cp.Shape) (ecs.Entity, bool) {
	e, ok := ps.shapes[shape]
	return e, ok
}

func toSpace(v mgl64.Vec3) cp.Vector {
	return cp.Vector{X: v.X(), Y: v.Z()}
}
