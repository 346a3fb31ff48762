package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"earth-explorer/internal/camera"
	"earth-explorer/internal/controls"
	"earth-explorer/internal/logger"
)

type fakeSource struct {
	dx, dy  float32
	buttons map[Button]bool
	wheel   float32
	keys    map[Key]bool
	height  float32
}

func (f *fakeSource) MouseDelta() (float32, float32) { return f.dx, f.dy }
func (f *fakeSource) ButtonDown(b Button) bool       { return f.buttons[b] }
func (f *fakeSource) Wheel() float32                 { return f.wheel }
func (f *fakeSource) KeyPressed(k Key) bool          { return f.keys[k] }
func (f *fakeSource) ViewportHeight() float32        { return f.height }

func undamped() *camera.Rig {
	o := camera.DefaultOptions()
	o.EnableDamping = false
	o.AutoRotate = false
	return camera.NewRig(o)
}

func TestLeftDragRotates(t *testing.T) {
	rig := undamped()
	c := &Controller{}
	c.Apply(&fakeSource{dx: 100, buttons: map[Button]bool{ButtonLeft: true}, height: 720}, rig, false)
	assert.NotEqual(t, rig.Initial().Position, rig.State().Position)
	assert.Equal(t, rig.Initial().Target, rig.State().Target)
	assert.InDelta(t, 3, rig.Distance(), 1e-4)
}

func TestRightDragPans(t *testing.T) {
	rig := undamped()
	c := &Controller{}
	c.Apply(&fakeSource{dx: 50, dy: 20, buttons: map[Button]bool{ButtonRight: true}, height: 720}, rig, false)
	assert.NotEqual(t, rig.Initial().Target, rig.State().Target)
	assert.InDelta(t, 3, rig.Distance(), 1e-4)
}

func TestMoveWithoutButtonDoesNothing(t *testing.T) {
	rig := undamped()
	c := &Controller{}
	c.Apply(&fakeSource{dx: 50, dy: 20, height: 720}, rig, false)
	assert.Equal(t, rig.Initial(), rig.State())
}

func TestWheelZooms(t *testing.T) {
	rig := undamped()
	c := &Controller{}
	c.Apply(&fakeSource{wheel: 1, height: 720}, rig, false)
	assert.Less(t, rig.Distance(), float32(3))
	c.Apply(&fakeSource{wheel: -100, height: 720}, rig, false)
	assert.InDelta(t, 8, rig.Distance(), 1e-4)
}

func TestKeysDrivePanel(t *testing.T) {
	rig := undamped()
	p := controls.NewPanel(false, nil)
	p.Attach(rig)
	var fps, console int
	c := &Controller{Panel: p, OnFPS: func() { fps++ }, OnConsole: func() { console++ }}

	c.Apply(&fakeSource{keys: map[Key]bool{KeyAutoRotate: true, KeyZoomIn: true, KeyInfo: true, KeyFPS: true}}, rig, false)
	assert.True(t, rig.AutoRotate())
	assert.InDelta(t, 2.5, rig.Distance(), 1e-5)
	assert.True(t, p.ShowInfo())
	assert.Equal(t, 1, fps)

	c.Apply(&fakeSource{keys: map[Key]bool{KeyReset: true}}, rig, false)
	assert.Equal(t, rig.Initial(), rig.State())

	c.Apply(&fakeSource{keys: map[Key]bool{KeyConsole: true}}, rig, false)
	assert.Equal(t, 1, console)
}

func TestCapturedIgnoresEverythingButConsole(t *testing.T) {
	rig := undamped()
	p := controls.NewPanel(false, nil)
	p.Attach(rig)
	var console int
	c := &Controller{Panel: p, OnConsole: func() { console++ }}
	c.Apply(&fakeSource{
		dx: 100, buttons: map[Button]bool{ButtonLeft: true}, wheel: 3, height: 720,
		keys: map[Key]bool{KeyZoomOut: true, KeyConsole: true},
	}, rig, true)
	assert.Equal(t, rig.Initial(), rig.State())
	assert.Equal(t, 1, console)
}

func TestKeysBeforeMountLogMissingCamera(t *testing.T) {
	log := logger.New("")
	p := controls.NewPanel(true, log)
	c := &Controller{Panel: p}
	c.Apply(&fakeSource{dx: 10, buttons: map[Button]bool{ButtonLeft: true}, keys: map[Key]bool{KeyReset: true}}, nil, false)
	require.Len(t, log.Lines(), 1)
	assert.Contains(t, log.Lines()[0], controls.ErrNoCamera.Error())
}
