package input

import (
	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsPositiveJustPressed returns a boolean value indicating whether the generic positive input is just pressed.
// This is used to handle keyboard, mouse, touch and gamepad inputs.
func IsPositiveJustPressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		return true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		return true
	}
	gamepadIDs := ebiten.AppendGamepadIDs(nil)
	for _, g := range gamepadIDs {
		if ebiten.IsStandardGamepadLayoutAvailable(g) {
			if inpututil.IsStandardGamepadButtonJustPressed(g, ebiten.StandardGamepadButtonRightBottom) {
				return true
			}
			if inpututil.IsStandardGamepadButtonJustPressed(g, ebiten.StandardGamepadButtonRightRight) {
				return true
			}
		} else {
			// The button 0/1 might not be A/B buttons.
			if inpututil.IsGamepadButtonJustPressed(g, ebiten.GamepadButton0) {
				return true
			}
			if inpututil.IsGamepadButtonJustPressed(g, ebiten.GamepadButton1) {
				return true
			}
		}
	}
	return false
}

// IsNegativeJustPressed returns a boolean value indicating whether the generic negative input is just pressed.
func IsNegativeJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

func IsRestartJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyR)
}

// directionKeys maps arrow keys and WASD to directions.
var directionKeys = []struct {
	key       ebiten.Key
	direction types.Direction
}{
	{ebiten.KeyArrowUp, types.DirectionUp},
	{ebiten.KeyW, types.DirectionUp},
	{ebiten.KeyArrowDown, types.DirectionDown},
	{ebiten.KeyS, types.DirectionDown},
	{ebiten.KeyArrowLeft, types.DirectionLeft},
	{ebiten.KeyA, types.DirectionLeft},
	{ebiten.KeyArrowRight, types.DirectionRight},
	{ebiten.KeyD, types.DirectionRight},
}

// JustPressedDirection returns the direction of a key pressed this frame.
// If several are pressed the last in arrow, WASD order wins.
func JustPressedDirection() (types.Direction, bool) {
	var direction types.Direction
	pressed := false
	for _, dk := range directionKeys {
		if inpututil.IsKeyJustPressed(dk.key) {
			direction = dk.direction
			pressed = true
		}
	}
	return direction, pressed
}

// IsStartKeyJustPressed reports a keyboard only positive input, for screens
// where mouse clicks are already handled by widgets.
func IsStartKeyJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace)
}
