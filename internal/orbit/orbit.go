package orbit

import (
	"github.com/chewxy/math32"

	"earth-explorer/internal/vecmath"
)

// Params describes a circular orbit around the scene origin with a vertical bob,
// plus the body's self-spin rate. Values are fixed when the body is created.
type Params struct {
	Radius       float32 `yaml:"radius"`
	AngularSpeed float32 `yaml:"angular_speed"` // radians per second
	Phase        float32 `yaml:"phase"`         // radians
	BobAmplitude float32 `yaml:"bob_amplitude"`
	BobFrequency float32 `yaml:"bob_frequency"` // radians per second
	SelfSpin     float32 `yaml:"self_spin"`     // radians per second
}

// Sun and Moon share the angular speed; the Moon is phase-shifted by π so the two
// always sit on opposite sides of Earth.
var (
	Sun  = Params{Radius: 4, AngularSpeed: 0.2, Phase: 0, BobAmplitude: 0.5, BobFrequency: 0.1, SelfSpin: 0.5}
	Moon = Params{Radius: 3.5, AngularSpeed: 0.2, Phase: math32.Pi, BobAmplitude: 0.3, BobFrequency: 0.15, SelfSpin: 0.2}
)

// Angle returns the orbital angle ω·t + φ at elapsed time t.
func (p Params) Angle(t float32) float32 {
	return p.AngularSpeed*t + p.Phase
}

// Position returns the body's position at elapsed time t:
//
//	x = r·cos(ω·t + φ), z = r·sin(ω·t + φ), y = a·sin(f·t + φ)
func (p Params) Position(t float32) vecmath.Vec3 {
	a := p.Angle(t)
	return vecmath.Vec3{
		X: p.Radius * math32.Cos(a),
		Y: p.BobAmplitude * math32.Sin(p.BobFrequency*t+p.Phase),
		Z: p.Radius * math32.Sin(a),
	}
}

// Spin returns the yaw after advancing yaw by SelfSpin over delta seconds.
func (p Params) Spin(yaw, delta float32) float32 {
	return yaw + p.SelfSpin*delta
}

// NormalizeAngle wraps a into [0, 2π).
func NormalizeAngle(a float32) float32 {
	a = math32.Mod(a, 2*math32.Pi)
	if a < 0 {
		a += 2 * math32.Pi
	}
	return a
}

// Opposed reports whether two orbits keep a constant π separation for all t:
// equal angular speeds and phases that differ by π.
func Opposed(a, b Params) bool {
	if a.AngularSpeed != b.AngularSpeed {
		return false
	}
	d := NormalizeAngle(b.Phase - a.Phase)
	return math32.Abs(d-math32.Pi) < 1e-5
}
