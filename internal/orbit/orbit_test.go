package orbit

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestPositionAtMount(t *testing.T) {
	sun := Sun.Position(0)
	assert.InDelta(t, 4, sun.X, 1e-6)
	assert.InDelta(t, 0, sun.Y, 1e-6)
	assert.InDelta(t, 0, sun.Z, 1e-6)

	moon := Moon.Position(0)
	assert.InDelta(t, -3.5, moon.X, 1e-5)
	assert.InDelta(t, 0, moon.Y, 1e-5)
	assert.InDelta(t, 0, moon.Z, 1e-5)
}

func TestPositionHalfOrbit(t *testing.T) {
	half := math32.Pi / 0.2
	sun := Sun.Position(half)
	assert.InDelta(t, -4, sun.X, 1e-4)
	assert.InDelta(t, 0, sun.Z, 1e-4)
	assert.InDelta(t, 0.5*math32.Sin(0.1*half), sun.Y, 1e-5)
}

func TestSunMoonOpposed(t *testing.T) {
	assert.True(t, Opposed(Sun, Moon))
	for _, tm := range []float32{0, 0.016, 1, 7.5, 15.708, 100, 1234.5} {
		diff := NormalizeAngle(Moon.Angle(tm) - Sun.Angle(tm))
		assert.InDelta(t, math32.Pi, diff, 1e-4, "t=%v", tm)

		s, m := Sun.Position(tm), Moon.Position(tm)
		// Opposite directions in the XZ plane.
		cross := s.X*m.Z - s.Z*m.X
		dot := s.X*m.X + s.Z*m.Z
		assert.InDelta(t, 0, cross, 1e-3, "t=%v", tm)
		assert.Less(t, dot, float32(0), "t=%v", tm)
	}
}

func TestOpposedRejectsMismatch(t *testing.T) {
	m := Moon
	m.AngularSpeed = 0.3
	assert.False(t, Opposed(Sun, m))

	m = Moon
	m.Phase = 1
	assert.False(t, Opposed(Sun, m))
}

func TestSpinIsDeltaProportional(t *testing.T) {
	yaw := Sun.Spin(0, 0.1)
	assert.InDelta(t, 0.05, yaw, 1e-6)
	yaw = Sun.Spin(yaw, 0.3)
	assert.InDelta(t, 0.2, yaw, 1e-6)
}

func TestNormalizeAngle(t *testing.T) {
	assert.InDelta(t, math32.Pi, NormalizeAngle(-math32.Pi), 1e-6)
	assert.InDelta(t, 1, NormalizeAngle(1+4*math32.Pi), 1e-5)
}
