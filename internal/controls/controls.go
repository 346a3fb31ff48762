// Package controls is the thin user control surface: toggle auto-rotate, reset the view,
// step zoom, and show the Earth info panel. Every action needs a mounted camera rig;
// without one it logs ErrNoCamera and does nothing.
package controls

import (
	"errors"

	"earth-explorer/internal/camera"
	"earth-explorer/internal/logger"
)

// ErrNoCamera is returned when a control is used before the scene has mounted a camera.
var ErrNoCamera = errors.New("controls: no camera mounted")

// Panel holds the control state that outlives a mounted scene.
type Panel struct {
	rig        *camera.Rig
	autoRotate bool
	showInfo   bool
	log        *logger.Logger
}

// NewPanel returns a panel with auto-rotate set to autoRotate once a rig is attached.
func NewPanel(autoRotate bool, log *logger.Logger) *Panel {
	return &Panel{autoRotate: autoRotate, log: log}
}

// Attach connects the panel to a freshly mounted rig and applies the panel's auto-rotate
// setting to it.
func (p *Panel) Attach(rig *camera.Rig) {
	p.rig = rig
	if rig != nil {
		rig.SetAutoRotate(p.autoRotate)
	}
}

// Detach drops the rig on unmount.
func (p *Panel) Detach() {
	p.rig = nil
}

// Attached reports whether a rig is mounted.
func (p *Panel) Attached() bool {
	return p.rig != nil
}

// AutoRotate reports the auto-rotate setting.
func (p *Panel) AutoRotate() bool {
	return p.autoRotate
}

// SetAutoRotate turns auto-rotation on or off.
func (p *Panel) SetAutoRotate(on bool) error {
	if err := p.need("autorotate"); err != nil {
		return err
	}
	p.autoRotate = on
	p.rig.SetAutoRotate(on)
	return nil
}

// ToggleAutoRotate flips auto-rotation.
func (p *Panel) ToggleAutoRotate() error {
	return p.SetAutoRotate(!p.autoRotate)
}

// Reset returns the camera to its mount-time pose.
func (p *Panel) Reset() error {
	if err := p.need("reset"); err != nil {
		return err
	}
	p.rig.Reset()
	return nil
}

// ZoomIn moves the camera one step toward the target.
func (p *Panel) ZoomIn() error {
	if err := p.need("zoom in"); err != nil {
		return err
	}
	p.rig.ZoomIn()
	return nil
}

// ZoomOut moves the camera one step away from the target.
func (p *Panel) ZoomOut() error {
	if err := p.need("zoom out"); err != nil {
		return err
	}
	p.rig.ZoomOut()
	return nil
}

// ToggleInfo shows or hides the Earth info panel. It does not need a camera.
func (p *Panel) ToggleInfo() {
	p.showInfo = !p.showInfo
}

// SetShowInfo sets info panel visibility.
func (p *Panel) SetShowInfo(on bool) {
	p.showInfo = on
}

// ShowInfo reports whether the info panel is visible.
func (p *Panel) ShowInfo() bool {
	return p.showInfo
}

func (p *Panel) need(action string) error {
	if p.rig != nil {
		return nil
	}
	p.log.Warnf("%s: %v", action, ErrNoCamera)
	return ErrNoCamera
}
