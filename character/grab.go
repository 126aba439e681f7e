package character

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/milk9111/firstperson/common"
)

type GrabConfig struct {
	TraceRange  float64
	TraceRadius float64
	FiringForce float64
}

func DefaultGrabConfig() GrabConfig {
	return GrabConfig{TraceRange: 5000, TraceRadius: 20, FiringForce: 5000}
}

// Grab is the gravity gun: it picks up one simulating body, carries it on
// an anchor and throws it on release.
type Grab struct {
	cfg    GrabConfig
	tracer Tracer
	anchor Anchor
	logger *zap.Logger

	held PhysicsComponent
}

func NewGrab(cfg GrabConfig, tracer Tracer, anchor Anchor, logger *zap.Logger) *Grab {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Grab{cfg: cfg, tracer: tracer, anchor: anchor, logger: logger}
}

func (g *Grab) Config() GrabConfig       { return g.cfg }
func (g *Grab) SetConfig(cfg GrabConfig) { g.cfg = cfg }
func (g *Grab) Held() PhysicsComponent   { return g.held }
func (g *Grab) Holding() bool            { return g.held != nil }

// Fire sphere-traces from origin along direction and grabs the first hit if
// it is simulating physics. While something is held Fire does nothing.
func (g *Grab) Fire(origin, direction mgl64.Vec3, traceRange, radius float64) bool {
	if g.held != nil || g.tracer == nil {
		return false
	}
	dir := common.SafeNormal(direction)
	if dir.Len() == 0 {
		return false
	}

	hit, ok := g.tracer.SphereTrace(TraceQuery{
		Origin:     origin,
		End:        origin.Add(dir.Mul(traceRange)),
		Radius:     radius,
		IgnoreSelf: true,
	})
	if !ok || hit.Component == nil {
		return false
	}
	if !hit.Component.IsSimulatingPhysics() {
		return false
	}

	g.setHeld(hit.Component)
	g.logger.Debug("object grabbed",
		zap.Float64("hit_x", hit.Point.X()),
		zap.Float64("hit_y", hit.Point.Y()),
		zap.Float64("hit_z", hit.Point.Z()))
	return true
}

// Release drops the held object where it is, turns its simulation back on
// and throws it along forward. Releasing with nothing held is a no-op.
func (g *Grab) Release(forward mgl64.Vec3, force float64) bool {
	if g.held == nil {
		return false
	}
	held := g.held
	g.held = nil
	if v, ok := held.(validator); ok && !v.Valid() {
		return false
	}

	held.Detach(KeepWorldTransform)
	held.SetSimulatePhysics(true)
	held.ApplyImpulse(common.SafeNormal(forward).Mul(force))
	g.logger.Debug("object released", zap.Float64("force", force))
	return true
}

func (g *Grab) setHeld(c PhysicsComponent) {
	g.held = c
	c.SetSimulatePhysics(false)
	if g.anchor != nil {
		c.AttachTo(g.anchor, SnapToTargetNotIncludingScale)
	}
}
