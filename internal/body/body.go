// Package body holds the celestial bodies of the scene. Each body owns a mutable
// Transform that it updates in place once per tick.
package body

import (
	"earth-explorer/internal/frame"
	"earth-explorer/internal/orbit"
	"earth-explorer/internal/render"
	"earth-explorer/internal/vecmath"
)

// Kind says which motion rule a body follows.
type Kind int

const (
	// Spinning bodies stay where they are and only rotate (Earth).
	Spinning Kind = iota
	// Orbiting bodies follow an orbit.Params path and spin (Sun, Moon).
	Orbiting
	// Static bodies never change (Atmosphere).
	Static
)

// Part is one sphere of a body, drawn relative to the body's transform.
type Part struct {
	Name     string
	Radius   float32
	Segments int
	Scale    float32 // multiplied with the body's scale; 0 means 1
	Material render.Material
}

// Body is Earth, Sun, Moon, or the atmosphere shell.
type Body struct {
	Name      string
	Kind      Kind
	Orbit     orbit.Params // Orbiting only
	SelfSpin  float32      // radians per second for Spinning bodies
	Parts     []Part
	Light     *render.Light // moves with the body when set; Position is an offset
	transform render.Transform
}

// Update advances the body by one tick. Position is a pure function of elapsed time;
// yaw accumulates from the delta so pauses between ticks do not make it jump.
func (b *Body) Update(tick frame.Tick) {
	switch b.Kind {
	case Orbiting:
		b.transform.Position = b.Orbit.Position(tick.Elapsed)
		b.transform.Yaw = b.Orbit.Spin(b.transform.Yaw, tick.Delta)
	case Spinning:
		b.transform.Yaw += b.SelfSpin * tick.Delta
	}
}

// Transform returns the current transform.
func (b *Body) Transform() render.Transform {
	return b.transform
}

// Nodes returns the render nodes for this body at its current transform.
func (b *Body) Nodes() []render.Node {
	nodes := make([]render.Node, 0, len(b.Parts))
	for _, p := range b.Parts {
		t := b.transform
		if p.Scale != 0 {
			t.Scale *= p.Scale
		}
		name := b.Name
		if p.Name != "" {
			name = b.Name + "/" + p.Name
		}
		nodes = append(nodes, render.Node{
			Name:      name,
			Radius:    p.Radius,
			Segments:  p.Segments,
			Transform: t,
			Material:  p.Material,
		})
	}
	return nodes
}

// WorldLight returns the body's light placed at the body, or false when it has none.
func (b *Body) WorldLight() (render.Light, bool) {
	if b.Light == nil {
		return render.Light{}, false
	}
	l := *b.Light
	l.Position = b.transform.Position.Add(l.Position)
	return l, true
}

func newBody(name string, kind Kind, position vecmath.Vec3, scale float32, parts ...Part) *Body {
	if scale == 0 {
		scale = 1
	}
	return &Body{
		Name:      name,
		Kind:      kind,
		Parts:     parts,
		transform: render.Transform{Position: position, Scale: scale},
	}
}
