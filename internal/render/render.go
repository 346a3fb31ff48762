// Package render is the boundary between the scene and the drawing backend.
// The scene describes each frame as plain values; the backend (internal/graphics)
// turns them into pixels. Nothing here talks to the GPU.
package render

import (
	"image"

	"earth-explorer/internal/vecmath"
)

// Color is 8-bit RGBA.
type Color struct {
	R, G, B, A uint8
}

// WithOpacity returns c with alpha set from a 0..1 opacity.
func (c Color) WithOpacity(opacity float32) Color {
	c.A = uint8(vecmath.Clamp(opacity, 0, 1)*255 + 0.5)
	return c
}

// White is opaque white.
var White = Color{255, 255, 255, 255}

// Texture is a decoded, render-ready image identified by Key. The backend uploads it to
// the GPU on first use and caches it by Key.
type Texture interface {
	Key() string
	RGBA() *image.RGBA
}

// Material is how a surface is shaded.
type Material struct {
	Color       Color
	Opacity     float32 // 0..1; below 1 the node is drawn blended after opaque nodes
	Roughness   float32
	Metalness   float32
	Unlit       bool // ignore lights (sun core/glow, atmosphere)
	DoubleSided bool // draw back faces (atmosphere shell)
	Texture     Texture
}

// Transparent reports whether the material needs blending.
func (m Material) Transparent() bool {
	return m.Opacity < 1
}

// Transform places a node in world space. Yaw is rotation about +Y in radians.
type Transform struct {
	Position vecmath.Vec3
	Yaw      float32
	Scale    float32
}

// Node is one sphere to draw. Spheres are the only shape this scene needs.
type Node struct {
	Name      string
	Radius    float32
	Segments  int
	Transform Transform
	Material  Material
}

// LightKind enumerates the light types in a frame.
type LightKind int

const (
	LightAmbient LightKind = iota
	LightDirectional
	LightPoint
)

// Light is a light source. Position is the light position for point lights and the
// position the light shines from (toward the origin) for directional lights.
type Light struct {
	Kind      LightKind
	Color     Color
	Intensity float32
	Position  vecmath.Vec3
	Distance  float32 // point light falloff range; 0 means unlimited
}

// Camera describes the viewpoint.
type Camera struct {
	Position vecmath.Vec3
	Target   vecmath.Vec3
	Up       vecmath.Vec3
	Fovy     float32 // degrees
}

// Star is one starfield point.
type Star struct {
	Position vecmath.Vec3
	Color    Color
	Size     float32
}

// Frame is everything the backend needs to draw one frame of the scene.
type Frame struct {
	Camera     Camera
	Background Color
	Lights     []Light
	Nodes      []Node
	Stars      []Star
	StarScale  float32 // twinkle multiplier applied to every star's size
}
