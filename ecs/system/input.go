package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/ecs/component"
)

const (
	stickDeadzone    = 0.2
	mouseSensitivity = 0.2 // degrees per pixel
)

// InputSystem samples keyboard, mouse and the first gamepad.
type InputSystem struct {
	lastX, lastY int
	tracking     bool
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	var in component.Input

	if ebiten.IsKeyPressed(ebiten.KeyW) {
		in.MoveForward += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		in.MoveForward -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		in.MoveRight += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		in.MoveRight -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.TurnRate += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.TurnRate -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.LookUpRate += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.LookUpRate -= 1
	}

	in.Jump = ebiten.IsKeyPressed(ebiten.KeySpace)
	in.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	in.JumpReleased = inpututil.IsKeyJustReleased(ebiten.KeySpace)
	in.DashPressed = inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft)
	in.FirePressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	in.FireReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	if ebiten.CursorMode() == ebiten.CursorModeCaptured {
		x, y := ebiten.CursorPosition()
		if i.tracking {
			in.Turn = float64(x-i.lastX) * mouseSensitivity
			in.LookUp = -float64(y-i.lastY) * mouseSensitivity
		}
		i.lastX, i.lastY, i.tracking = x, y, true
	} else {
		i.tracking = false
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			in.MoveRight = lx
			in.MoveForward = -ly
		}
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			in.TurnRate = rx
			in.LookUpRate = -ry
		}

		in.Jump = in.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.JumpPressed = in.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.JumpReleased = in.JumpReleased || inpututil.IsStandardGamepadButtonJustReleased(id, ebiten.StandardGamepadButtonRightBottom)
		in.DashPressed = in.DashPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight)
		in.FirePressed = in.FirePressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
		in.FireReleased = in.FireReleased || inpututil.IsStandardGamepadButtonJustReleased(id, ebiten.StandardGamepadButtonFrontBottomRight)
	}

	ecs.ForEach(w, component.InputComponent, func(e ecs.Entity, input *component.Input) {
		*input = in
	})
}
