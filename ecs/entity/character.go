package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/milk9111/firstperson/character"
	"github.com/milk9111/firstperson/curve"
	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/ecs/component"
	"github.com/milk9111/firstperson/ecs/system"
	"github.com/milk9111/firstperson/prefabs"
)

const defaultPitchLimit = 89.0

// BuildCharacter spawns the player body at spawn and wires a character
// driver to it through the physics adapters. Curves that fail to load are
// logged and left unset.
func BuildCharacter(w *ecs.World, physics *system.PhysicsSystem, spec prefabs.CharacterSpec, spawn mgl64.Vec3, logger *zap.Logger) (ecs.Entity, error) {
	if w == nil || physics == nil {
		return 0, fmt.Errorf("build character: world and physics are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	e := w.CreateEntity()
	add := func(err error) error {
		if err != nil {
			w.DestroyEntity(e)
			return fmt.Errorf("build character: %w", err)
		}
		return nil
	}

	if err := add(ecs.Add(w, e, component.TransformComponent, &component.Transform{Position: spawn, Scale: 1})); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.PhysicsBodyComponent, &component.PhysicsBody{
		Kind:     component.ShapeCapsule,
		Radius:   spec.Capsule.Radius,
		Height:   spec.Capsule.HalfHeight,
		Mass:     spec.Movement.Mass,
		Friction: spec.Movement.Friction,
		Simulate: true,
	})); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.MovementComponent, &component.Movement{
		Mode:            character.MovementFalling,
		MaxWalkSpeed:    spec.Movement.MaxWalkSpeed,
		MaxAcceleration: spec.Movement.MaxAcceleration,
		JumpZVelocity:   spec.Movement.JumpZVelocity,
		AirControl:      spec.Movement.AirControl,
	})); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.InputComponent, &component.Input{})); err != nil {
		return 0, err
	}
	eye := spec.Camera.EyeOffset
	if err := add(ecs.Add(w, e, component.ViewComponent, &component.View{
		MinPitch:  -defaultPitchLimit,
		MaxPitch:  defaultPitchLimit,
		EyeOffset: mgl64.Vec3{eye.X, eye.Y, eye.Z},
	})); err != nil {
		return 0, err
	}
	carry := spec.GravityGun.CarryOffset
	if err := add(ecs.Add(w, e, component.CarryAnchorComponent, &component.CarryAnchor{
		Offset: mgl64.Vec3{carry.X, carry.Y, carry.Z},
	})); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.PlayerTagComponent, &component.PlayerTag{})); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.NameComponent, &component.Name{Value: "player"})); err != nil {
		return 0, err
	}

	cfg := ConfigFromSpec(spec)
	if err := cfg.Validate(); err != nil {
		logger.Warn("character tuning out of range, clamping", zap.Error(err))
	}

	dashCurve, jetpackCurve := LoadCurves(spec, logger)
	ch := character.New(cfg, character.Deps{
		Movement:     system.NewCharacterMovement(w, physics, e),
		View:         system.NewCharacterView(w, e),
		Tracer:       system.NewSphereTracer(w, physics, e),
		Anchor:       system.NewCarryPoint(w, e),
		DashCurve:    dashCurve,
		JetpackCurve: jetpackCurve,
		Logger:       logger.Named("character"),
	})
	ch.Dash().OnFinished = func() {
		w.Events().Push(ecs.Event{Kind: ecs.EventDashFinished, Entity: e})
	}

	if err := add(ecs.Add(w, e, component.CharacterComponent, &component.Character{
		Controller: ch,
		Prefab:     spec.Name,
	})); err != nil {
		return 0, err
	}

	ch.BeginPlay()
	return e, nil
}

// ConfigFromSpec copies the gameplay tuning out of a character prefab.
func ConfigFromSpec(spec prefabs.CharacterSpec) character.Config {
	return character.Config{
		Dash: character.DashConfig{
			Speed:    spec.Dash.Speed,
			Distance: spec.Dash.Distance,
		},
		Jetpack: character.JetpackConfig{
			MaxTime:          spec.Jetpack.MaxTime,
			BoostForce:       spec.Jetpack.BoostForce,
			ActiveAirControl: spec.Jetpack.ActiveAirControl,
			IdleAirControl:   spec.Jetpack.IdleAirControl,
		},
		Grab: character.GrabConfig{
			TraceRange:  spec.GravityGun.TraceRange,
			TraceRadius: spec.GravityGun.TraceRadius,
			FiringForce: spec.GravityGun.FiringForce,
		},
		BaseTurnRate:   spec.Camera.BaseTurnRate,
		BaseLookUpRate: spec.Camera.BaseLookUpRate,
	}
}

// LoadCurves resolves the dash and jetpack curve assets named by spec. A
// curve that is unnamed or fails to load comes back nil.
func LoadCurves(spec prefabs.CharacterSpec, logger *zap.Logger) (dash, jetpack character.Curve) {
	if logger == nil {
		logger = zap.NewNop()
	}
	load := func(name string) character.Curve {
		if name == "" {
			return nil
		}
		c, err := curve.Load(name)
		if err != nil {
			logger.Error("load curve", zap.String("curve", name), zap.Error(err))
			return nil
		}
		return c
	}
	return load(spec.Dash.Curve), load(spec.Jetpack.Curve)
}
