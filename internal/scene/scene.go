// Package scene assembles the Earth, Sun, Moon, atmosphere, lights, starfield and camera
// rig, and describes each frame as a render.Frame.
package scene

import (
	"sort"

	"earth-explorer/internal/body"
	"earth-explorer/internal/camera"
	"earth-explorer/internal/frame"
	"earth-explorer/internal/loop"
	"earth-explorer/internal/render"
	"earth-explorer/internal/vecmath"
)

// LightOptions describe one fixed light.
type LightOptions struct {
	Color     render.Color `yaml:"color"`
	Intensity float32      `yaml:"intensity"`
	Position  vecmath.Vec3 `yaml:"position"`
}

// Options configure everything in the scene.
type Options struct {
	Background  render.Color           `yaml:"background"`
	Earth       body.EarthOptions      `yaml:"earth"`
	Atmosphere  body.AtmosphereOptions `yaml:"atmosphere"`
	Sun         body.SunOptions        `yaml:"sun"`
	Moon        body.MoonOptions       `yaml:"moon"`
	Camera      camera.Options         `yaml:"camera"`
	Ambient     LightOptions           `yaml:"ambient"`
	Directional LightOptions           `yaml:"directional"`
	Fill        LightOptions           `yaml:"fill"` // static point light opposite the key light
	Stars       StarOptions            `yaml:"stars"`
}

// DefaultOptions returns the explorer's scene.
func DefaultOptions() Options {
	return Options{
		Background:  render.Color{R: 0, G: 0, B: 0, A: 255},
		Earth:       body.DefaultEarth(),
		Atmosphere:  body.DefaultAtmosphere(),
		Sun:         body.DefaultSun(),
		Moon:        body.DefaultMoon(),
		Camera:      camera.DefaultOptions(),
		Ambient:     LightOptions{Color: render.MustColor("#4a90e2"), Intensity: 0.15},
		Directional: LightOptions{Color: render.White, Intensity: 1.2, Position: vecmath.V3(5, 3, 5)},
		Fill:        LightOptions{Color: render.MustColor("#ff6b6b"), Intensity: 0.3, Position: vecmath.V3(-5, -3, -5)},
		Stars:       DefaultStars(),
	}
}

// Scene is one mounted instance. It is created after the gate opens and dropped on unmount.
type Scene struct {
	Earth      *body.Body
	Atmosphere *body.Body
	Sun        *body.Body
	Moon       *body.Body
	Rig        *camera.Rig

	bodies     []*body.Body
	lights     []render.Light
	stars      []render.Star
	starSpeed  float32
	starScale  float32
	background render.Color
}

// New builds the scene. earthTexture is the resolved Earth texture handle.
func New(o Options, earthTexture render.Texture) *Scene {
	s := &Scene{
		Earth:      body.NewEarth(o.Earth, earthTexture),
		Atmosphere: body.NewAtmosphere(o.Atmosphere, o.Earth.Radius),
		Sun:        body.NewSun(o.Sun),
		Moon:       body.NewMoon(o.Moon),
		Rig:        camera.NewRig(o.Camera),
		stars:      GenerateStars(o.Stars),
		starSpeed:  o.Stars.Speed,
		starScale:  Twinkle(o.Stars.Speed, 0),
		background: o.Background,
	}
	s.bodies = []*body.Body{s.Earth, s.Atmosphere, s.Sun, s.Moon}
	s.lights = []render.Light{
		{Kind: render.LightAmbient, Color: o.Ambient.Color, Intensity: o.Ambient.Intensity},
		{Kind: render.LightDirectional, Color: o.Directional.Color, Intensity: o.Directional.Intensity, Position: o.Directional.Position},
		{Kind: render.LightPoint, Color: o.Fill.Color, Intensity: o.Fill.Intensity, Position: o.Fill.Position},
	}
	return s
}

// Bodies returns the bodies in draw order.
func (s *Scene) Bodies() []*body.Body {
	return s.bodies
}

// Updaters returns everything the loop advances each tick: the bodies, the rig, and the
// scene itself (starfield twinkle). Their order does not matter.
func (s *Scene) Updaters() []loop.Updater {
	us := make([]loop.Updater, 0, len(s.bodies)+2)
	for _, b := range s.bodies {
		if b.Kind == body.Static {
			continue
		}
		us = append(us, b)
	}
	return append(us, s.Rig, s)
}

// Update advances the starfield twinkle.
func (s *Scene) Update(tick frame.Tick) {
	s.starScale = Twinkle(s.starSpeed, tick.Elapsed)
}

// Frame describes the current state for the renderer. Opaque nodes come first in body
// order, then translucent nodes sorted far to near from the camera.
func (s *Scene) Frame() render.Frame {
	cam := s.Rig.Camera()
	var opaque, translucent []render.Node
	for _, b := range s.bodies {
		for _, n := range b.Nodes() {
			if n.Material.Transparent() {
				translucent = append(translucent, n)
			} else {
				opaque = append(opaque, n)
			}
		}
	}
	sort.SliceStable(translucent, func(i, j int) bool {
		return vecmath.Distance(translucent[i].Transform.Position, cam.Position) >
			vecmath.Distance(translucent[j].Transform.Position, cam.Position)
	})

	lights := append([]render.Light(nil), s.lights...)
	for _, b := range s.bodies {
		if l, ok := b.WorldLight(); ok {
			lights = append(lights, l)
		}
	}
	return render.Frame{
		Camera:     cam,
		Background: s.background,
		Lights:     lights,
		Nodes:      append(opaque, translucent...),
		Stars:      s.stars,
		StarScale:  s.starScale,
	}
}
