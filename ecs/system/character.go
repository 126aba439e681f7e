package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/ecs/component"
)

// CharacterSystem feeds each frame's input and landing state to the
// character drivers, then ticks them. It must run after PhysicsSystem.
type CharacterSystem struct {
	physics *PhysicsSystem
	logger  *zap.Logger
}

func NewCharacterSystem(physics *PhysicsSystem, logger *zap.Logger) *CharacterSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CharacterSystem{physics: physics, logger: logger}
}

func (s *CharacterSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.CharacterComponent, func(e ecs.Entity, cc *component.Character) {
		ch := cc.Controller
		if ch == nil {
			return
		}

		if mv, ok := ecs.Get(w, e, component.MovementComponent); ok && mv.Landed {
			mv.Landed = false
			ch.Landed()
		}

		if in, ok := ecs.Get(w, e, component.InputComponent); ok {
			ch.MoveForward(in.MoveForward)
			ch.MoveRight(in.MoveRight)
			ch.Turn(in.Turn)
			ch.LookUp(in.LookUp)
			ch.TurnAtRate(in.TurnRate, dt)
			ch.LookUpAtRate(in.LookUpRate, dt)

			if in.JumpPressed {
				ch.JumpPressed()
			}
			if in.JumpReleased {
				ch.JumpReleased()
			}
			if in.DashPressed && ch.DashPressed() {
				w.Events().Push(ecs.Event{Kind: ecs.EventDashStarted, Entity: e})
			}
			if in.FirePressed {
				ch.FirePressed()
			}
			if in.FireReleased {
				ch.FireReleased()
			}
		}

		ch.Tick(dt)

		s.emitChanges(w, e, cc)
	})

	s.physics.SnapAttachments(w)
}

func (s *CharacterSystem) emitChanges(w *ecs.World, e ecs.Entity, cc *component.Character) {
	ch := cc.Controller

	if jet := ch.Jetpack().Active(); jet != cc.WasJetpack {
		kind := ecs.EventJetpackOff
		if jet {
			kind = ecs.EventJetpackOn
		}
		w.Events().Push(ecs.Event{Kind: kind, Entity: e})
		cc.WasJetpack = jet
	}

	holding := ch.Grab().Holding()
	if holding == cc.WasHolding {
		return
	}
	cc.WasHolding = holding
	if holding {
		var target ecs.Entity
		if b, ok := ch.Grab().Held().(*Body); ok {
			target = b.Entity()
		}
		s.logger.Debug("grabbed", zap.Stringer("entity", e), zap.Stringer("target", target))
		w.Events().Push(ecs.Event{Kind: ecs.EventGrabbed, Entity: e, Target: target})
		return
	}
	w.Events().Push(ecs.Event{Kind: ecs.EventReleased, Entity: e})
}
