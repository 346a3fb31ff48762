// Package camera implements an orbit camera rig: rotate, zoom and pan around a target,
// with optional damping and auto-rotation. The rig owns its state and is driven from the
// render thread only; it does no locking.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/jinzhu/copier"

	"earth-explorer/internal/frame"
	"earth-explorer/internal/render"
	"earth-explorer/internal/vecmath"
)

const (
	// polarEpsilon keeps the camera off the poles, where azimuth is undefined.
	polarEpsilon = 1e-4
	// residualEpsilon is the damped velocity below which motion stops.
	residualEpsilon = 1e-6
	// zoomBase is the per-notch distance ratio of continuous (wheel) zoom.
	zoomBase = 0.95
	defaultViewportHeight = 720
)

var worldUp = vecmath.V3(0, 1, 0)

// Options are fixed when the rig is created.
type Options struct {
	Position vecmath.Vec3 `yaml:"position"`
	Target   vecmath.Vec3 `yaml:"target"`
	Fovy     float32      `yaml:"fovy"` // degrees

	MinDistance float32 `yaml:"min_distance"`
	MaxDistance float32 `yaml:"max_distance"`

	EnableRotate bool    `yaml:"enable_rotate"`
	EnableZoom   bool    `yaml:"enable_zoom"`
	EnablePan    bool    `yaml:"enable_pan"`
	RotateSpeed  float32 `yaml:"rotate_speed"`
	ZoomSpeed    float32 `yaml:"zoom_speed"`
	PanSpeed     float32 `yaml:"pan_speed"`
	// ZoomStep is how far ZoomIn/ZoomOut move along the view direction, regardless of distance.
	ZoomStep float32 `yaml:"zoom_step"`

	EnableDamping bool    `yaml:"enable_damping"`
	DampingFactor float32 `yaml:"damping_factor"`

	AutoRotate      bool    `yaml:"auto_rotate"`
	AutoRotateSpeed float32 `yaml:"auto_rotate_speed"` // 1.0 is one revolution per minute
}

// DefaultOptions returns the rig setup used by the explorer.
func DefaultOptions() Options {
	return Options{
		Position:        vecmath.V3(0, 0, 3),
		Fovy:            45,
		MinDistance:     1.8,
		MaxDistance:     8,
		EnableRotate:    true,
		EnableZoom:      true,
		EnablePan:       true,
		RotateSpeed:     0.5,
		ZoomSpeed:       0.8,
		PanSpeed:        0.8,
		ZoomStep:        0.5,
		EnableDamping:   true,
		DampingFactor:   0.05,
		AutoRotate:      true,
		AutoRotateSpeed: 0.3,
	}
}

// State is the camera pose. Reset restores it exactly.
type State struct {
	Position vecmath.Vec3
	Target   vecmath.Vec3
}

// Rig is the orbit camera.
type Rig struct {
	opts    Options
	state   State
	initial State

	autoRotate     bool
	viewportHeight float32

	// Pending motion. With damping these decay every Update; without, they are applied at once.
	thetaDelta float32
	phiDelta   float32
	panOffset  vecmath.Vec3
}

// NewRig returns a rig posed at opts.Position looking at opts.Target. The starting distance
// is clamped into [MinDistance, MaxDistance] and that pose becomes the reset snapshot.
func NewRig(opts Options) *Rig {
	opts = sanitize(opts)
	r := &Rig{
		opts:           opts,
		state:          State{Position: opts.Position, Target: opts.Target},
		autoRotate:     opts.AutoRotate,
		viewportHeight: defaultViewportHeight,
	}
	r.setDistance(vecmath.Distance(r.state.Position, r.state.Target))
	_ = copier.CopyWithOption(&r.initial, &r.state, copier.Option{DeepCopy: true})
	return r
}

func sanitize(o Options) Options {
	if o.MinDistance <= 0 {
		o.MinDistance = 0.01
	}
	if o.MaxDistance < o.MinDistance {
		o.MaxDistance = o.MinDistance
	}
	if o.DampingFactor <= 0 || o.DampingFactor > 1 {
		o.DampingFactor = 1
	}
	if o.Fovy <= 0 || o.Fovy >= 180 {
		o.Fovy = 45
	}
	if o.ZoomStep < 0 {
		o.ZoomStep = -o.ZoomStep
	}
	return o
}

// Options returns the options the rig runs with.
func (r *Rig) Options() Options {
	return r.opts
}

// State returns the current pose.
func (r *Rig) State() State {
	return r.state
}

// Initial returns the mount-time pose that Reset restores.
func (r *Rig) Initial() State {
	return r.initial
}

// Distance returns the distance from the camera to its target.
func (r *Rig) Distance() float32 {
	return vecmath.Distance(r.state.Position, r.state.Target)
}

// SetViewport sets the viewport height in pixels used to scale drag gestures.
func (r *Rig) SetViewport(height float32) {
	if height > 0 {
		r.viewportHeight = height
	}
}

// AutoRotate reports whether auto-rotation is on.
func (r *Rig) AutoRotate() bool {
	return r.autoRotate
}

// SetAutoRotate turns auto-rotation on or off. The current pose is kept.
func (r *Rig) SetAutoRotate(on bool) {
	r.autoRotate = on
}

// Moving reports whether damped motion is still pending.
func (r *Rig) Moving() bool {
	return r.thetaDelta != 0 || r.phiDelta != 0 || !r.panOffset.IsZero()
}

// Camera returns the render camera for the current pose.
func (r *Rig) Camera() render.Camera {
	return render.Camera{
		Position: r.state.Position,
		Target:   r.state.Target,
		Up:       worldUp,
		Fovy:     r.opts.Fovy,
	}
}

// Rotate orbits the camera by a pointer drag of (dx, dy) pixels. A drag the full viewport
// height turns 2π·RotateSpeed radians.
func (r *Rig) Rotate(dx, dy float32) {
	if !r.opts.EnableRotate {
		return
	}
	k := 2 * math32.Pi / r.viewportHeight * r.opts.RotateSpeed
	r.thetaDelta -= dx * k
	r.phiDelta -= dy * k
	r.flush()
}

// Zoom dollies by wheel notches: positive moves closer. Each notch scales the distance by
// 0.95^ZoomSpeed. The result is clamped to the distance bounds.
func (r *Rig) Zoom(wheel float32) {
	if !r.opts.EnableZoom || wheel == 0 {
		return
	}
	s := math32.Pow(zoomBase, r.opts.ZoomSpeed*math32.Abs(wheel))
	d := r.Distance()
	if wheel > 0 {
		d *= s
	} else {
		d /= s
	}
	r.setDistance(d)
}

// ZoomIn moves the camera ZoomStep units toward the target, stopping at MinDistance.
func (r *Rig) ZoomIn() {
	r.setDistance(r.Distance() - r.opts.ZoomStep)
}

// ZoomOut moves the camera ZoomStep units away from the target, stopping at MaxDistance.
func (r *Rig) ZoomOut() {
	r.setDistance(r.Distance() + r.opts.ZoomStep)
}

// Pan slides camera and target together by a pointer drag of (dx, dy) pixels, in the
// view plane. The distance to the target does not change.
func (r *Rig) Pan(dx, dy float32) {
	if !r.opts.EnablePan {
		return
	}
	halfFov := r.opts.Fovy / 2 * math32.Pi / 180
	k := 2 * r.Distance() * math32.Tan(halfFov) / r.viewportHeight * r.opts.PanSpeed
	right, up := r.basis()
	r.panOffset = r.panOffset.Add(right.Scale(-dx * k)).Add(up.Scale(dy * k))
	r.flush()
}

// Reset restores the mount-time pose and drops any pending motion.
func (r *Rig) Reset() {
	_ = copier.CopyWithOption(&r.state, &r.initial, copier.Option{DeepCopy: true})
	r.thetaDelta, r.phiDelta = 0, 0
	r.panOffset = vecmath.Vec3{}
}

// Update runs once per tick: applies auto-rotation and the damped share of pending motion.
// It must be called every frame, with or without new input, so damped motion settles.
func (r *Rig) Update(tick frame.Tick) {
	var auto float32
	if r.autoRotate {
		auto = -2 * math32.Pi / 60 * r.opts.AutoRotateSpeed * tick.Delta
	}
	if !r.opts.EnableDamping {
		if auto != 0 {
			r.apply(auto, 0, vecmath.Vec3{})
		}
		return
	}
	f := r.opts.DampingFactor
	dTheta, dPhi, pan := r.thetaDelta*f, r.phiDelta*f, r.panOffset.Scale(f)
	if auto != 0 || dTheta != 0 || dPhi != 0 || !pan.IsZero() {
		r.apply(dTheta+auto, dPhi, pan)
	}
	keep := 1 - f
	r.thetaDelta = settle(r.thetaDelta * keep)
	r.phiDelta = settle(r.phiDelta * keep)
	r.panOffset = vecmath.V3(settle(r.panOffset.X*keep), settle(r.panOffset.Y*keep), settle(r.panOffset.Z*keep))
}

// flush applies pending motion at once when damping is off.
func (r *Rig) flush() {
	if r.opts.EnableDamping {
		return
	}
	r.apply(r.thetaDelta, r.phiDelta, r.panOffset)
	r.thetaDelta, r.phiDelta = 0, 0
	r.panOffset = vecmath.Vec3{}
}

// apply rotates the camera around the target in spherical coordinates (Y up) and
// translates both by pan.
func (r *Rig) apply(dTheta, dPhi float32, pan vecmath.Vec3) {
	offset := r.state.Position.Sub(r.state.Target)
	radius := offset.Length()
	if radius == 0 {
		offset = vecmath.V3(0, 0, r.opts.MinDistance)
		radius = r.opts.MinDistance
	}
	theta := math32.Atan2(offset.X, offset.Z) + dTheta
	phi := math32.Acos(vecmath.Clamp(offset.Y/radius, -1, 1)) + dPhi
	phi = vecmath.Clamp(phi, polarEpsilon, math32.Pi-polarEpsilon)
	radius = vecmath.Clamp(radius, r.opts.MinDistance, r.opts.MaxDistance)

	sinPhi := math32.Sin(phi) * radius
	offset = vecmath.V3(sinPhi*math32.Sin(theta), math32.Cos(phi)*radius, sinPhi*math32.Cos(theta))

	r.state.Target = r.state.Target.Add(pan)
	r.state.Position = r.state.Target.Add(offset)
}

// setDistance moves the camera along the target→camera axis to distance d, clamped.
func (r *Rig) setDistance(d float32) {
	d = vecmath.Clamp(d, r.opts.MinDistance, r.opts.MaxDistance)
	dir := r.state.Position.Sub(r.state.Target).Normal()
	if dir.IsZero() {
		dir = vecmath.V3(0, 0, 1)
	}
	r.state.Position = r.state.Target.Add(dir.Scale(d))
}

// basis returns the camera's right and up unit vectors.
func (r *Rig) basis() (right, up vecmath.Vec3) {
	forward := r.state.Target.Sub(r.state.Position).Normal()
	right = forward.Cross(worldUp).Normal()
	if right.IsZero() {
		right = vecmath.V3(1, 0, 0)
	}
	up = right.Cross(forward).Normal()
	return right, up
}

func settle(v float32) float32 {
	if math32.Abs(v) < residualEpsilon {
		return 0
	}
	return v
}
