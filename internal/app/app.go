// Package app ties the gate, the scene and the loop together for one window.
//
// Mount starts the texture loads. Every rendered frame calls Frame: while the gate is
// closed nothing animates and the caller shows the loading indicator; on the first frame
// after the gate opens the scene is built, its rig handed to the control panel, and its
// loop started with the clock at zero. Unmount tears all of it down; the next Mount
// starts over.
package app

import (
	"context"
	"errors"
	"fmt"

	"earth-explorer/internal/camera"
	"earth-explorer/internal/controls"
	"earth-explorer/internal/frame"
	"earth-explorer/internal/gate"
	"earth-explorer/internal/logger"
	"earth-explorer/internal/loop"
	"earth-explorer/internal/render"
	"earth-explorer/internal/scene"
)

// ErrMounted is returned by Mount when the app is already mounted.
var ErrMounted = errors.New("app: already mounted")

// Options say what to build.
type Options struct {
	Scene        scene.Options
	EarthTexture string
}

// App is the mounted viewer. It is driven from the render thread only.
type App struct {
	opts   Options
	loader gate.Loader
	panel  *controls.Panel
	log    *logger.Logger

	mounted bool
	gate    *gate.Gate
	scene   *scene.Scene
	loop    *loop.Loop
	frame   render.Frame
}

// New returns an unmounted app. panel may be shared with input and console; it is
// attached to each mounted rig.
func New(opts Options, l gate.Loader, panel *controls.Panel, log *logger.Logger) *App {
	if panel == nil {
		panel = controls.NewPanel(opts.Scene.Camera.AutoRotate, log)
	}
	return &App{opts: opts, loader: l, panel: panel, log: log}
}

// Panel returns the control panel.
func (a *App) Panel() *controls.Panel {
	return a.panel
}

// Mount starts loading the scene's textures with a fresh gate.
func (a *App) Mount(ctx context.Context) error {
	if a.mounted {
		return ErrMounted
	}
	a.gate = gate.New(a.loader, a.log)
	if err := a.gate.Start(ctx, a.opts.EarthTexture); err != nil {
		return fmt.Errorf("app: mount: %w", err)
	}
	a.mounted = true
	a.log.Logf("app: mounted, loading %s", a.opts.EarthTexture)
	return nil
}

// Unmount cancels loads in flight, stops the loop and drops the scene.
func (a *App) Unmount() {
	if !a.mounted {
		return
	}
	a.gate.Close()
	if a.loop != nil {
		a.loop.Stop()
	}
	a.panel.Detach()
	a.mounted = false
	a.scene = nil
	a.loop = nil
	a.frame = render.Frame{}
	a.log.Logf("app: unmounted")
}

// Frame advances the app by delta seconds. It returns the frame to draw and true once the
// scene is revealed, or false while loading (or not mounted).
func (a *App) Frame(delta float32) (render.Frame, bool) {
	if !a.mounted {
		return render.Frame{}, false
	}
	if a.scene == nil {
		textures, ok := a.gate.Poll()
		if !ok {
			return render.Frame{}, false
		}
		var earth render.Texture
		if t := textures[a.opts.EarthTexture]; t != nil {
			earth = t
		}
		a.reveal(earth)
		// first visible frame is at t=0
		delta = 0
	}
	a.loop.Step(delta)
	return a.frame, true
}

func (a *App) reveal(earth render.Texture) {
	a.scene = scene.New(a.opts.Scene, earth)
	a.loop = loop.New(a.redraw, a.scene.Updaters()...)
	a.panel.Attach(a.scene.Rig)
	a.loop.Start()
	a.log.Logf("app: textures ready, scene revealed")
}

func (a *App) redraw(frame.Tick) {
	a.frame = a.scene.Frame()
}

// Mounted reports whether Mount has been called without a matching Unmount.
func (a *App) Mounted() bool {
	return a.mounted
}

// Revealed reports whether the scene is built and animating.
func (a *App) Revealed() bool {
	return a.scene != nil
}

// Progress returns the aggregate load percent, 0 when not mounted.
func (a *App) Progress() float32 {
	if a.gate == nil || !a.mounted {
		return 0
	}
	return a.gate.Progress()
}

// Err returns the load failure, if any.
func (a *App) Err() error {
	if a.gate == nil || !a.mounted {
		return nil
	}
	return a.gate.Err()
}

// Rig returns the mounted camera rig, or nil before the scene is revealed.
func (a *App) Rig() *camera.Rig {
	if a.scene == nil {
		return nil
	}
	return a.scene.Rig
}

// Elapsed returns the scene clock.
func (a *App) Elapsed() float32 {
	if a.loop == nil {
		return 0
	}
	return a.loop.Elapsed()
}

// Status describes the app in one line, for the console.
func (a *App) Status() string {
	switch {
	case !a.mounted:
		return "unmounted"
	case a.scene == nil:
		if err := a.gate.Err(); err != nil {
			return fmt.Sprintf("loading (failed: %v)", err)
		}
		return fmt.Sprintf("loading %.0f%%", a.gate.Progress())
	}
	return fmt.Sprintf("ready t=%.1fs distance=%.2f autorotate=%t",
		a.loop.Elapsed(), a.scene.Rig.Distance(), a.scene.Rig.AutoRotate())
}
