// Package game assembles a playable world: level geometry, the player
// character and the system order shared by the window and headless runs.
package game

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/milk9111/firstperson/character"
	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/ecs/component"
	"github.com/milk9111/firstperson/ecs/entity"
	"github.com/milk9111/firstperson/ecs/system"
	"github.com/milk9111/firstperson/prefabs"
)

const (
	DefaultLevel     = "level.yaml"
	DefaultCharacter = "character.yaml"
)

type Options struct {
	Level     string
	Character string
	// Input feeds the Input component each frame. Nil leaves it untouched.
	Input  ecs.System
	Logger *zap.Logger
}

// Session owns one world. Systems run input, physics, character, camera.
type Session struct {
	World   *ecs.World
	Physics *system.PhysicsSystem
	Player  ecs.Entity
	Level   *prefabs.LevelSpec

	characterName string
	logger        *zap.Logger
}

func NewSession(opts Options) (*Session, error) {
	if opts.Level == "" {
		opts.Level = DefaultLevel
	}
	if opts.Character == "" {
		opts.Character = DefaultCharacter
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	lvl, err := prefabs.LoadLevelSpec(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	spec, err := prefabs.LoadCharacterSpec(opts.Character)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	w := ecs.NewWorld()
	physics := system.NewPhysicsSystem(lvl.Gravity, logger.Named("physics"))
	if opts.Input != nil {
		w.AddSystem(opts.Input)
	}
	w.AddSystem(physics)
	w.AddSystem(system.NewCharacterSystem(physics, logger.Named("character")))
	w.AddSystem(system.NewCameraSystem())

	if _, err := entity.LoadLevelToWorld(w, lvl); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	spawn := mgl64.Vec3{lvl.Spawn.X, lvl.Spawn.Y, lvl.Spawn.Z}
	player, err := entity.BuildCharacter(w, physics, *spec, spawn, logger)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	logger.Info("session ready",
		zap.String("level", lvl.Name),
		zap.String("character", opts.Character),
		zap.Int("entities", len(w.Entities())))

	return &Session{
		World:         w,
		Physics:       physics,
		Player:        player,
		Level:         lvl,
		characterName: opts.Character,
		logger:        logger,
	}, nil
}

func (s *Session) Update(dt float64) {
	s.World.Update(dt)
}

func (s *Session) Character() *character.Character {
	cc, ok := ecs.Get(s.World, s.Player, component.CharacterComponent)
	if !ok {
		return nil
	}
	return cc.Controller
}

// Reload applies an edited prefab between frames. Character tuning and
// curves take effect at once; level edits need a restart.
func (s *Session) Reload(change prefabs.Change) {
	name := change.Name
	switch {
	case change.Script || strings.HasPrefix(name, "curves/"):
		s.reloadCurves()
	case name == strings.TrimPrefix(s.characterName, "prefabs/"):
		s.reloadCharacter()
	default:
		s.logger.Info("prefab changed; restart to apply", zap.String("prefab", name))
	}
}

func (s *Session) reloadCharacter() {
	spec, err := prefabs.LoadCharacterSpec(s.characterName)
	if err != nil {
		s.logger.Error("reload character", zap.Error(err))
		return
	}
	ch := s.Character()
	if ch == nil {
		return
	}

	cfg := entity.ConfigFromSpec(*spec)
	if err := cfg.Validate(); err != nil {
		s.logger.Warn("character tuning out of range, clamping", zap.Error(err))
	}
	ch.Reconfigure(cfg)
	ch.SetCurves(entity.LoadCurves(*spec, s.logger))

	if mv, ok := ecs.Get(s.World, s.Player, component.MovementComponent); ok {
		mv.MaxWalkSpeed = spec.Movement.MaxWalkSpeed
		mv.MaxAcceleration = spec.Movement.MaxAcceleration
		mv.JumpZVelocity = spec.Movement.JumpZVelocity
	}
	if vc, ok := ecs.Get(s.World, s.Player, component.ViewComponent); ok {
		eye := spec.Camera.EyeOffset
		vc.EyeOffset = mgl64.Vec3{eye.X, eye.Y, eye.Z}
	}
	if ca, ok := ecs.Get(s.World, s.Player, component.CarryAnchorComponent); ok {
		off := spec.GravityGun.CarryOffset
		ca.Offset = mgl64.Vec3{off.X, off.Y, off.Z}
	}
	s.logger.Info("character reloaded", zap.String("prefab", s.characterName))
}

func (s *Session) reloadCurves() {
	spec, err := prefabs.LoadCharacterSpec(s.characterName)
	if err != nil {
		s.logger.Error("reload curves", zap.Error(err))
		return
	}
	if ch := s.Character(); ch != nil {
		ch.SetCurves(entity.LoadCurves(*spec, s.logger))
		s.logger.Info("curves reloaded")
	}
}
