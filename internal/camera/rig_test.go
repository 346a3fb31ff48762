package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"earth-explorer/internal/frame"
	"earth-explorer/internal/vecmath"
)

const distTolerance = 1e-5

func still() Options {
	o := DefaultOptions()
	o.AutoRotate = false
	return o
}

func TestNewRigDefaults(t *testing.T) {
	r := NewRig(DefaultOptions())
	assert.InDelta(t, 3, r.Distance(), distTolerance)
	assert.True(t, r.AutoRotate())
	assert.Equal(t, r.State(), r.Initial())

	cam := r.Camera()
	assert.Equal(t, float32(45), cam.Fovy)
	assert.Equal(t, vecmath.V3(0, 1, 0), cam.Up)
}

func TestNewRigClampsStartDistance(t *testing.T) {
	o := still()
	o.Position = vecmath.V3(0, 0, 20)
	r := NewRig(o)
	assert.InDelta(t, 8, r.Distance(), distTolerance)

	o.Position = vecmath.Vec3{}
	r = NewRig(o)
	assert.InDelta(t, 1.8, r.Distance(), distTolerance)
}

func TestZoomInClampsAtMinimum(t *testing.T) {
	r := NewRig(still())
	want := []float32{2.5, 2.0, 1.8, 1.8}
	for i := 0; i < 20; i++ {
		r.ZoomIn()
		if i < len(want) {
			assert.InDelta(t, want[i], r.Distance(), distTolerance, "step %d", i)
		}
		assert.GreaterOrEqual(t, r.Distance(), float32(1.8)-distTolerance)
	}
	assert.InDelta(t, 1.8, r.Distance(), distTolerance)
	// The camera stays on the same side of the target.
	assert.Greater(t, r.State().Position.Z, float32(0))
}

func TestZoomOutClampsAtMaximum(t *testing.T) {
	r := NewRig(still())
	for i := 0; i < 50; i++ {
		r.ZoomOut()
		assert.LessOrEqual(t, r.Distance(), float32(8)+distTolerance)
	}
	assert.InDelta(t, 8, r.Distance(), distTolerance)
}

func TestWheelZoomStaysInBounds(t *testing.T) {
	r := NewRig(still())
	r.Zoom(1)
	assert.InDelta(t, 3*math32.Pow(0.95, 0.8), r.Distance(), distTolerance)

	for _, w := range []float32{50, -3, 200, -500, 7, -1} {
		r.Zoom(w)
		d := r.Distance()
		assert.GreaterOrEqual(t, d, float32(1.8)-distTolerance)
		assert.LessOrEqual(t, d, float32(8)+distTolerance)
	}
}

func TestDisabledGesturesAreIgnored(t *testing.T) {
	o := still()
	o.EnableRotate = false
	o.EnableZoom = false
	o.EnablePan = false
	r := NewRig(o)
	before := r.State()

	r.Rotate(100, 40)
	r.Zoom(3)
	r.Pan(20, 20)
	for i := 0; i < 10; i++ {
		r.Update(frame.Tick{Delta: 1.0 / 60})
	}
	assert.Equal(t, before, r.State())
	assert.False(t, r.Moving())

	// Programmatic zoom is a command, not a gesture.
	r.ZoomIn()
	assert.InDelta(t, 2.5, r.Distance(), distTolerance)
}

func TestRotateWithoutDampingIsImmediate(t *testing.T) {
	o := still()
	o.EnableDamping = false
	r := NewRig(o)
	r.SetViewport(720)

	// A full-height drag at RotateSpeed 0.5 turns half a revolution.
	r.Rotate(720, 0)
	p := r.State().Position
	assert.InDelta(t, 0, p.X, 1e-4)
	assert.InDelta(t, -3, p.Z, 1e-4)
	assert.InDelta(t, 3, r.Distance(), distTolerance)
	assert.False(t, r.Moving())
}

func TestDampedRotationDecays(t *testing.T) {
	r := NewRig(still())
	r.Rotate(100, 0)
	require.True(t, r.Moving())
	start := r.State()
	// Nothing moves until the tick applies the damped share.
	assert.Equal(t, start, r.State())

	var prevStep float32 = math32.MaxFloat32
	prev := r.State().Position
	for i := 0; i < 5; i++ {
		r.Update(frame.Tick{Delta: 1.0 / 60})
		step := vecmath.Distance(prev, r.State().Position)
		assert.Greater(t, step, float32(0))
		assert.Less(t, step, prevStep)
		prevStep = step
		prev = r.State().Position
	}

	for i := 0; i < 2000 && r.Moving(); i++ {
		r.Update(frame.Tick{Delta: 1.0 / 60})
	}
	assert.False(t, r.Moving())
	assert.InDelta(t, 3, r.Distance(), 1e-4)
}

func TestElevationIsClampedOffThePoles(t *testing.T) {
	o := still()
	o.EnableDamping = false
	r := NewRig(o)
	r.Rotate(0, 100000)
	p := r.State().Position
	// Dragging down far enough lifts the camera to just short of the top pole.
	assert.InDelta(t, 3, p.Y, 1e-3)
	assert.Greater(t, p.Z, float32(0))
	assert.InDelta(t, 3, r.Distance(), 1e-4)
}

func TestPanMovesCameraAndTargetTogether(t *testing.T) {
	o := still()
	o.EnableDamping = false
	r := NewRig(o)
	before := r.State()

	r.Pan(50, -30)
	after := r.State()
	shift := after.Target.Sub(before.Target)
	assert.False(t, shift.IsZero())
	assert.InDelta(t, shift.X, after.Position.Sub(before.Position).X, 1e-5)
	assert.InDelta(t, shift.Y, after.Position.Sub(before.Position).Y, 1e-5)
	assert.InDelta(t, shift.Z, after.Position.Sub(before.Position).Z, 1e-5)
	assert.InDelta(t, 3, r.Distance(), distTolerance)
	// Dragging right moves the view left: the target slides along -X for a camera on +Z.
	assert.Less(t, shift.X, float32(0))
	assert.Less(t, shift.Y, float32(0))
}

func TestDampedPanKeepsDistance(t *testing.T) {
	r := NewRig(still())
	r.Pan(80, 80)
	for i := 0; i < 200; i++ {
		r.Update(frame.Tick{Delta: 1.0 / 60})
		assert.InDelta(t, 3, r.Distance(), 1e-4)
	}
}

func TestAutoRotateRate(t *testing.T) {
	r := NewRig(DefaultOptions())
	for i := 0; i < 60; i++ {
		r.Update(frame.Tick{Delta: 1.0 / 60})
	}
	p := r.State().Position
	angle := math32.Atan2(p.X, p.Z)
	// 0.3 revolutions per minute → 2π/60·0.3 radians per second, turning clockwise.
	assert.InDelta(t, -2*math32.Pi/60*0.3, angle, 1e-4)
	assert.InDelta(t, 3, r.Distance(), distTolerance)
}

func TestAutoRotateToggleKeepsPose(t *testing.T) {
	r := NewRig(DefaultOptions())
	for i := 0; i < 30; i++ {
		r.Update(frame.Tick{Delta: 1.0 / 60})
	}
	r.SetAutoRotate(false)
	paused := r.State()
	r.Update(frame.Tick{Delta: 1.0 / 60})
	assert.Equal(t, paused, r.State())

	r.SetAutoRotate(true)
	r.Update(frame.Tick{Delta: 1.0 / 60})
	assert.NotEqual(t, paused, r.State())
}

func TestResetRestoresMountPose(t *testing.T) {
	r := NewRig(DefaultOptions())
	mount := r.State()

	r.Rotate(300, -120)
	r.Pan(40, 10)
	r.Zoom(4)
	r.ZoomIn()
	for i := 0; i < 45; i++ {
		r.Update(frame.Tick{Delta: 1.0 / 60})
	}
	r.ZoomOut()
	require.NotEqual(t, mount, r.State())
	require.True(t, r.Moving())

	r.Reset()
	assert.Equal(t, mount, r.State())
	assert.False(t, r.Moving())
	// Auto-rotate is a control setting, not part of the pose.
	assert.True(t, r.AutoRotate())
}
