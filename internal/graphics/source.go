package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"earth-explorer/internal/input"
)

// Source reads mouse and keyboard state from raylib. It implements input.Source.
type Source struct{}

func (Source) MouseDelta() (float32, float32) {
	d := rl.GetMouseDelta()
	return d.X, d.Y
}

func (Source) ButtonDown(b input.Button) bool {
	switch b {
	case input.ButtonLeft:
		return rl.IsMouseButtonDown(rl.MouseButtonLeft)
	case input.ButtonRight:
		return rl.IsMouseButtonDown(rl.MouseButtonRight)
	case input.ButtonMiddle:
		return rl.IsMouseButtonDown(rl.MouseButtonMiddle)
	}
	return false
}

func (Source) Wheel() float32 {
	return rl.GetMouseWheelMove()
}

func (Source) KeyPressed(k input.Key) bool {
	switch k {
	case input.KeyAutoRotate:
		return rl.IsKeyPressed(rl.KeySpace)
	case input.KeyReset:
		return rl.IsKeyPressed(rl.KeyR)
	case input.KeyZoomIn:
		return rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd)
	case input.KeyZoomOut:
		return rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract)
	case input.KeyInfo:
		return rl.IsKeyPressed(rl.KeyI)
	case input.KeyFPS:
		return rl.IsKeyPressed(rl.KeyF1)
	case input.KeyConsole:
		return rl.IsKeyPressed(rl.KeyEscape)
	}
	return false
}

func (Source) ViewportHeight() float32 {
	return float32(rl.GetScreenHeight())
}
