// Package input maps pointer gestures and keys to the camera rig and the control panel.
// The device side is a Source so the mapping runs without a window.
package input

import (
	"earth-explorer/internal/camera"
	"earth-explorer/internal/controls"
)

// Button is a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Key is a logical key the explorer reacts to.
type Key int

const (
	KeyAutoRotate Key = iota // space
	KeyReset                 // R
	KeyZoomIn                // + or keypad +
	KeyZoomOut               // - or keypad -
	KeyInfo                  // I
	KeyFPS                   // F1
	KeyConsole               // Esc
)

// Source is one frame of device state.
type Source interface {
	MouseDelta() (dx, dy float32)
	ButtonDown(b Button) bool
	Wheel() float32
	KeyPressed(k Key) bool
	ViewportHeight() float32
}

// Controller turns device state into rig gestures and panel actions.
type Controller struct {
	Panel *controls.Panel
	// OnFPS and OnConsole handle the overlay and console keys; either may be nil.
	OnFPS     func()
	OnConsole func()
}

// Apply reads src for one frame. rig is nil while the scene is loading; gestures are then
// dropped and panel keys log ErrNoCamera. When captured is true (console open) only the
// console key is handled.
func (c *Controller) Apply(src Source, rig *camera.Rig, captured bool) {
	if src.KeyPressed(KeyConsole) && c.OnConsole != nil {
		c.OnConsole()
	}
	if captured {
		return
	}
	c.keys(src)
	if rig == nil {
		return
	}
	rig.SetViewport(src.ViewportHeight())
	dx, dy := src.MouseDelta()
	if dx != 0 || dy != 0 {
		switch {
		case src.ButtonDown(ButtonLeft):
			rig.Rotate(dx, dy)
		case src.ButtonDown(ButtonRight), src.ButtonDown(ButtonMiddle):
			rig.Pan(dx, dy)
		}
	}
	if w := src.Wheel(); w != 0 {
		rig.Zoom(w)
	}
}

func (c *Controller) keys(src Source) {
	if c.Panel != nil {
		if src.KeyPressed(KeyAutoRotate) {
			_ = c.Panel.ToggleAutoRotate()
		}
		if src.KeyPressed(KeyReset) {
			_ = c.Panel.Reset()
		}
		if src.KeyPressed(KeyZoomIn) {
			_ = c.Panel.ZoomIn()
		}
		if src.KeyPressed(KeyZoomOut) {
			_ = c.Panel.ZoomOut()
		}
		if src.KeyPressed(KeyInfo) {
			c.Panel.ToggleInfo()
		}
	}
	if src.KeyPressed(KeyFPS) && c.OnFPS != nil {
		c.OnFPS()
	}
}
