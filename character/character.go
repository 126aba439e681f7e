// Package character holds the first-person gameplay controllers (dash,
// jetpack and gravity gun) and the frame driver that routes input and
// per-frame ticks to them. It talks to the host only through the small
// interfaces in host.go.
package character

import (
	"go.uber.org/zap"
)

// Deps are the host services a Character drives. Curves may be nil; the
// dependent feature then does nothing and a warning is logged.
type Deps struct {
	Movement     Movement
	View         View
	Tracer       Tracer
	Anchor       Anchor
	DashCurve    Curve
	JetpackCurve Curve
	Logger       *zap.Logger
}

// Character is the frame driver for one player character.
type Character struct {
	cfg    Config
	mover  Movement
	view   View
	logger *zap.Logger

	dash    *Dash
	jetpack *Jetpack
	grab    *Grab
}

func New(cfg Config, deps Deps) *Character {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.clamped()

	return &Character{
		cfg:     cfg,
		mover:   deps.Movement,
		view:    deps.View,
		logger:  logger,
		dash:    NewDash(cfg.Dash, deps.DashCurve, deps.Movement, logger.Named("dash")),
		jetpack: NewJetpack(cfg.Jetpack, deps.JetpackCurve, deps.Movement, logger.Named("jetpack")),
		grab:    NewGrab(cfg.Grab, deps.Tracer, deps.Anchor, logger.Named("grab")),
	}
}

func (c *Character) Config() Config    { return c.cfg }
func (c *Character) Dash() *Dash       { return c.dash }
func (c *Character) Jetpack() *Jetpack { return c.jetpack }
func (c *Character) Grab() *Grab       { return c.grab }

// BeginPlay reports missing curves and fills the jetpack tank.
func (c *Character) BeginPlay() {
	if !c.dash.HasCurve() {
		c.logger.Warn("dash curve not assigned", zap.String("curve", "dash"))
	}
	if !c.jetpack.HasCurve() {
		c.logger.Warn("jetpack boost curve not assigned", zap.String("curve", "jetpack_boost"))
	}
	c.jetpack.Toggle(true, false)
}

// Reconfigure applies new tuning without interrupting a running dash or
// dropping a held object.
func (c *Character) Reconfigure(cfg Config) {
	cfg = cfg.clamped()
	c.cfg = cfg
	c.dash.SetConfig(cfg.Dash)
	c.jetpack.SetConfig(cfg.Jetpack)
	c.grab.SetConfig(cfg.Grab)
}

// SetCurves replaces both curves. A nil curve disables its feature.
func (c *Character) SetCurves(dash, jetpack Curve) {
	c.dash.SetCurve(dash)
	c.jetpack.SetCurve(jetpack)
}

// Tick runs after the host has moved the character for this frame.
func (c *Character) Tick(dt float64) {
	c.dash.Tick(dt)
	c.jetpack.Tick(dt)
}

// JumpPressed lights the jetpack while falling and jumps. Jumping while
// airborne is left to the movement facade to refuse.
func (c *Character) JumpPressed() {
	if c.mover == nil {
		return
	}
	switch c.mover.Mode() {
	case MovementFalling:
		c.jetpack.Toggle(false, true)
		fallthrough
	case MovementWalking:
		c.mover.Jump()
	}
}

func (c *Character) JumpReleased() {
	if c.mover != nil {
		c.mover.StopJumping()
	}
	c.jetpack.Toggle(false, false)
}

func (c *Character) Landed() {
	c.jetpack.Toggle(true, false)
}

// FirePressed traces from the eye along the view direction. It does
// nothing while an object is already held.
func (c *Character) FirePressed() bool {
	if c.view == nil || c.grab.Holding() {
		return false
	}
	return c.grab.Fire(c.view.EyeLocation(), c.view.Forward(), c.cfg.Grab.TraceRange, c.cfg.Grab.TraceRadius)
}

func (c *Character) FireReleased() bool {
	if c.view == nil {
		return false
	}
	return c.grab.Release(c.view.Forward(), c.cfg.Grab.FiringForce)
}

func (c *Character) DashPressed() bool {
	if c.mover == nil {
		return false
	}
	return c.dash.Trigger(c.mover.Velocity(), c.mover.Location())
}

func (c *Character) MoveForward(value float64) {
	if value == 0 || c.mover == nil || c.view == nil {
		return
	}
	c.mover.AddMovementInput(c.view.ActorForward(), value)
}

func (c *Character) MoveRight(value float64) {
	if value == 0 || c.mover == nil || c.view == nil {
		return
	}
	c.mover.AddMovementInput(c.view.ActorRight(), value)
}

// TurnAtRate takes a normalized rate, 1.0 being full turn speed.
func (c *Character) TurnAtRate(rate, dt float64) {
	c.Turn(rate * c.cfg.BaseTurnRate * dt)
}

func (c *Character) LookUpAtRate(rate, dt float64) {
	c.LookUp(rate * c.cfg.BaseLookUpRate * dt)
}

func (c *Character) Turn(degrees float64) {
	if degrees == 0 || c.view == nil {
		return
	}
	c.view.AddYawInput(degrees)
}

func (c *Character) LookUp(degrees float64) {
	if degrees == 0 || c.view == nil {
		return
	}
	c.view.AddPitchInput(degrees)
}
