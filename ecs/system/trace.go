package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/firstperson/character"
	"github.com/milk9111/firstperson/common"
	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/ecs/component"
)

// SphereTracer answers sphere traces against the physics space on behalf
// of one entity.
type SphereTracer struct {
	w       *ecs.World
	physics *PhysicsSystem
	self    ecs.Entity
}

func NewSphereTracer(w *ecs.World, physics *PhysicsSystem, self ecs.Entity) *SphereTracer {
	return &SphereTracer{w: w, physics: physics, self: self}
}

// SphereTrace returns the first shape the swept sphere touches. Hits on
// static geometry carry no component. Traces with no extent in the X/Z
// plane never hit.
func (t *SphereTracer) SphereTrace(q character.TraceQuery) (character.Hit, bool) {
	if t == nil || t.physics == nil || t.physics.space == nil {
		return character.Hit{}, false
	}
	a, b := toSpace(q.Origin), toSpace(q.End)
	if a.Distance(b) <= common.SmallNumber {
		return character.Hit{}, false
	}

	filter := cp.SHAPE_FILTER_ALL
	if q.IgnoreSelf {
		filter = t.physics.filterFor(t.self)
	}
	info := t.physics.space.SegmentQueryFirst(a, b, q.Radius, filter)
	if info.Shape == nil {
		return character.Hit{}, false
	}

	y := common.Lerp(q.Origin.Y(), q.End.Y(), info.Alpha)
	hit := character.Hit{Point: mgl64.Vec3{info.Point.X, y, info.Point.Y}}

	e, ok := t.physics.entityForShape(info.Shape)
	if !ok || e == t.self {
		return hit, true
	}
	if pb, ok := ecs.Get(t.w, e, component.PhysicsBodyComponent); ok && !pb.Static {
		hit.Component = NewBody(t.w, t.physics, e)
	}
	return hit, true
}
