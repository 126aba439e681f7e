package system

import (
	"fmt"
	"sort"

	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/ecs/component"
	"github.com/milk9111/firstperson/prefabs"
)

const (
	ActionJumpPressed  = "jump_pressed"
	ActionJumpReleased = "jump_released"
	ActionFirePressed  = "fire_pressed"
	ActionFireReleased = "fire_released"
	ActionDashPressed  = "dash_pressed"
)

// ScriptedInputSystem replays a scenario's input steps by frame number.
// Axes hold their last value; actions last one frame.
type ScriptedInputSystem struct {
	steps []prefabs.ScenarioStepSpec
	next  int
	axes  component.Input
}

func NewScriptedInputSystem(steps []prefabs.ScenarioStepSpec) (*ScriptedInputSystem, error) {
	sorted := append([]prefabs.ScenarioStepSpec(nil), steps...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Frame < sorted[j].Frame })
	for _, st := range sorted {
		for _, a := range st.Actions {
			switch a {
			case ActionJumpPressed, ActionJumpReleased, ActionFirePressed, ActionFireReleased, ActionDashPressed:
			default:
				return nil, fmt.Errorf("scripted input: frame %d: unknown action %q", st.Frame, a)
			}
		}
	}
	return &ScriptedInputSystem{steps: sorted}, nil
}

func (s *ScriptedInputSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	frame := int(w.Frame())

	in := s.axes
	in.Turn, in.LookUp = 0, 0
	for s.next < len(s.steps) && s.steps[s.next].Frame <= frame {
		st := s.steps[s.next]
		s.next++
		if st.MoveForward != nil {
			s.axes.MoveForward = *st.MoveForward
		}
		if st.MoveRight != nil {
			s.axes.MoveRight = *st.MoveRight
		}
		in.MoveForward, in.MoveRight = s.axes.MoveForward, s.axes.MoveRight
		if st.Turn != nil {
			in.Turn += *st.Turn
		}
		if st.LookUp != nil {
			in.LookUp += *st.LookUp
		}
		for _, a := range st.Actions {
			switch a {
			case ActionJumpPressed:
				in.JumpPressed = true
				s.axes.Jump = true
			case ActionJumpReleased:
				in.JumpReleased = true
				s.axes.Jump = false
			case ActionFirePressed:
				in.FirePressed = true
			case ActionFireReleased:
				in.FireReleased = true
			case ActionDashPressed:
				in.DashPressed = true
			}
		}
	}
	in.Jump = s.axes.Jump

	ecs.ForEach(w, component.InputComponent, func(e ecs.Entity, input *component.Input) {
		*input = in
	})
}

// Done reports whether every step has been replayed.
func (s *ScriptedInputSystem) Done() bool {
	return s.next >= len(s.steps)
}
