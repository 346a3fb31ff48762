package body

import (
	"earth-explorer/internal/orbit"
	"earth-explorer/internal/render"
	"earth-explorer/internal/vecmath"
)

// EarthOptions configures the Earth sphere. The material is static.
type EarthOptions struct {
	Radius    float32 `yaml:"radius"`
	Segments  int     `yaml:"segments"`
	SelfSpin  float32 `yaml:"self_spin"`
	Roughness float32 `yaml:"roughness"`
	Metalness float32 `yaml:"metalness"`
}

// AtmosphereOptions configures the translucent shell around Earth.
type AtmosphereOptions struct {
	Scale    float32      `yaml:"scale"`
	Segments int          `yaml:"segments"`
	Color    render.Color `yaml:"color"`
	Opacity  float32      `yaml:"opacity"`
}

// SunOptions configures the Sun: a glow shell, a core, and a point light that travels with it.
type SunOptions struct {
	Orbit          orbit.Params `yaml:"orbit"`
	Segments       int          `yaml:"segments"`
	CoreRadius     float32      `yaml:"core_radius"`
	CoreColor      render.Color `yaml:"core_color"`
	GlowRadius     float32      `yaml:"glow_radius"`
	GlowScale      float32      `yaml:"glow_scale"`
	GlowColor      render.Color `yaml:"glow_color"`
	GlowOpacity    float32      `yaml:"glow_opacity"`
	LightIntensity float32      `yaml:"light_intensity"`
	LightDistance  float32      `yaml:"light_distance"`
}

// MoonOptions configures the Moon.
type MoonOptions struct {
	Orbit     orbit.Params `yaml:"orbit"`
	Radius    float32      `yaml:"radius"`
	Segments  int          `yaml:"segments"`
	Color     render.Color `yaml:"color"`
	Roughness float32      `yaml:"roughness"`
	Metalness float32      `yaml:"metalness"`
}

func DefaultEarth() EarthOptions {
	return EarthOptions{Radius: 1, Segments: 128, SelfSpin: 0.05, Roughness: 0.7, Metalness: 0.1}
}

func DefaultAtmosphere() AtmosphereOptions {
	return AtmosphereOptions{Scale: 1.02, Segments: 64, Color: render.MustColor("#4a90e2"), Opacity: 0.1}
}

func DefaultSun() SunOptions {
	return SunOptions{
		Orbit:          orbit.Sun,
		Segments:       32,
		CoreRadius:     0.25,
		CoreColor:      render.MustColor("#ffdd44"),
		GlowRadius:     0.3,
		GlowScale:      1.8,
		GlowColor:      render.MustColor("#ffaa00"),
		GlowOpacity:    0.3,
		LightIntensity: 2,
		LightDistance:  10,
	}
}

func DefaultMoon() MoonOptions {
	return MoonOptions{
		Orbit:     orbit.Moon,
		Radius:    0.15,
		Segments:  32,
		Color:     render.MustColor("#cccccc"),
		Roughness: 0.8,
		Metalness: 0.1,
	}
}

// NewEarth returns Earth at the origin wearing tex. tex may be nil (untextured).
func NewEarth(o EarthOptions, tex render.Texture) *Body {
	b := newBody("earth", Spinning, vecmath.Vec3{}, 1, Part{
		Radius:   o.Radius,
		Segments: o.Segments,
		Material: render.Material{
			Color:     render.White,
			Opacity:   1,
			Roughness: o.Roughness,
			Metalness: o.Metalness,
			Texture:   tex,
		},
	})
	b.SelfSpin = o.SelfSpin
	return b
}

// NewAtmosphere returns the shell concentric with an Earth of the given radius.
func NewAtmosphere(o AtmosphereOptions, earthRadius float32) *Body {
	return newBody("atmosphere", Static, vecmath.Vec3{}, o.Scale, Part{
		Radius:   earthRadius,
		Segments: o.Segments,
		Material: render.Material{
			Color:       o.Color.WithOpacity(o.Opacity),
			Opacity:     o.Opacity,
			Unlit:       true,
			DoubleSided: true,
		},
	})
}

// NewSun returns the Sun placed at its mount-time orbit position.
func NewSun(o SunOptions) *Body {
	b := newBody("sun", Orbiting, o.Orbit.Position(0), 1,
		Part{
			Name:     "glow",
			Radius:   o.GlowRadius,
			Segments: o.Segments,
			Scale:    o.GlowScale,
			Material: render.Material{Color: o.GlowColor.WithOpacity(o.GlowOpacity), Opacity: o.GlowOpacity, Unlit: true},
		},
		Part{
			Name:     "core",
			Radius:   o.CoreRadius,
			Segments: o.Segments,
			Material: render.Material{Color: o.CoreColor, Opacity: 1, Unlit: true},
		},
	)
	b.Orbit = o.Orbit
	b.Light = &render.Light{
		Kind:      render.LightPoint,
		Color:     o.CoreColor,
		Intensity: o.LightIntensity,
		Distance:  o.LightDistance,
	}
	return b
}

// NewMoon returns the Moon placed at its mount-time orbit position.
func NewMoon(o MoonOptions) *Body {
	b := newBody("moon", Orbiting, o.Orbit.Position(0), 1, Part{
		Radius:   o.Radius,
		Segments: o.Segments,
		Material: render.Material{
			Color:     o.Color,
			Opacity:   1,
			Roughness: o.Roughness,
			Metalness: o.Metalness,
		},
	})
	b.Orbit = o.Orbit
	return b
}
