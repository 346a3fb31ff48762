// Package graphics is the raylib backend: the window loop, a renderer that draws
// render.Frame values, and the device input source.
package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"earth-explorer/internal/logger"
	"earth-explorer/internal/render"
	"earth-explorer/internal/vecmath"
)

const (
	minSphereSegments = 8
	// Specular response for roughness 0; scaled down as roughness rises.
	maxSpecularStrength = float32(0.5)
	maxSpecularPower    = float32(96)
)

// Renderer draws render.Frame values. GPU resources (meshes, shaders, textures) are created
// on first use so they exist only once the window and GL context do. Use it from the
// render thread only.
type Renderer struct {
	log *logger.Logger

	ready    bool
	lit      *litShader
	litMtl   rl.Material
	unlitMtl rl.Material
	spheres  map[int]rl.Mesh
	textures map[string]rl.Texture2D
}

// NewRenderer returns a renderer with nothing loaded yet.
func NewRenderer(log *logger.Logger) *Renderer {
	return &Renderer{
		log:      log,
		spheres:  make(map[int]rl.Mesh),
		textures: make(map[string]rl.Texture2D),
	}
}

func (r *Renderer) ensure() {
	if r.ready {
		return
	}
	r.ready = true
	r.unlitMtl = rl.LoadMaterialDefault()
	r.litMtl = rl.LoadMaterialDefault()
	if s, ok := loadLitShader(); ok {
		r.lit = s
		r.litMtl.Shader = s.shader
	} else {
		r.log.Warnf("graphics: lit shader failed to compile, drawing unlit")
	}
}

// sphere returns a unit sphere mesh with the given segment count, cached.
func (r *Renderer) sphere(segments int) rl.Mesh {
	if segments < minSphereSegments {
		segments = minSphereSegments
	}
	if m, ok := r.spheres[segments]; ok {
		return m
	}
	m := rl.GenMeshSphere(1, segments/2, segments)
	r.spheres[segments] = m
	return m
}

// texture uploads t on first use and returns the cached GPU texture by key.
func (r *Renderer) texture(t render.Texture) (rl.Texture2D, bool) {
	if tex, ok := r.textures[t.Key()]; ok {
		return tex, rl.IsTextureValid(tex)
	}
	var tex rl.Texture2D
	if img := t.RGBA(); img != nil {
		rimg := rl.NewImageFromImage(img)
		tex = rl.LoadTextureFromImage(rimg)
		rl.UnloadImage(rimg)
	}
	r.textures[t.Key()] = tex
	if !rl.IsTextureValid(tex) {
		r.log.Errorf("graphics: texture %s failed to upload", t.Key())
		return tex, false
	}
	r.log.Logf("graphics: uploaded %s (%dx%d)", t.Key(), tex.Width, tex.Height)
	return tex, true
}

// Draw renders f. Call between BeginDrawing and EndDrawing, before 2D overlays.
// Nodes are drawn in the order given; translucent nodes must come last.
func (r *Renderer) Draw(f render.Frame) {
	r.ensure()
	rl.ClearBackground(rlColor(f.Background))

	cam := rl.Camera3D{
		Position:   rlVec(f.Camera.Position),
		Target:     rlVec(f.Camera.Target),
		Up:         rlVec(f.Camera.Up),
		Fovy:       f.Camera.Fovy,
		Projection: rl.CameraPerspective,
	}
	rl.BeginMode3D(cam)
	r.drawStars(f.Stars, f.StarScale)
	r.setLights(f.Lights, f.Camera.Position)
	depthWrites := true
	for _, n := range f.Nodes {
		if n.Material.Transparent() && depthWrites {
			rl.DisableDepthMask()
			depthWrites = false
		}
		r.drawNode(n)
	}
	if !depthWrites {
		rl.EnableDepthMask()
	}
	rl.EndMode3D()
}

func (r *Renderer) drawNode(n render.Node) {
	s := n.Radius * n.Transform.Scale
	if s <= 0 {
		return
	}
	p := n.Transform.Position
	transform := rl.MatrixMultiply(
		rl.MatrixMultiply(rl.MatrixScale(s, s, s), rl.MatrixRotateY(n.Transform.Yaw)),
		rl.MatrixTranslate(p.X, p.Y, p.Z),
	)
	m := n.Material
	color := m.Color
	color.A = uint8(vecmath.Clamp(m.Opacity, 0, 1)*255 + 0.5)

	mtl := r.unlitMtl
	if !m.Unlit && r.lit != nil {
		mtl = r.litMtl
		r.lit.setFloat("specularStrength", maxSpecularStrength*(1-m.Roughness)*(1-m.Metalness*0.5))
		r.lit.setFloat("specularPower", 4+maxSpecularPower*(1-m.Roughness))
		useTexture := float32(0)
		if m.Texture != nil {
			if tex, ok := r.texture(m.Texture); ok {
				rl.SetMaterialTexture(&mtl, rl.MapAlbedo, tex)
				useTexture = 1
			}
		}
		r.lit.setFloat("useTexture", useTexture)
	}
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rlColor(color)
	}

	if m.DoubleSided {
		rl.DisableBackfaceCulling()
	}
	rl.DrawMesh(r.sphere(n.Segments), mtl, transform)
	if m.DoubleSided {
		rl.EnableBackfaceCulling()
	}
}

// setLights loads the frame's lights into the lit shader. Ambient lights add up; the first
// directional light is used; point lights beyond maxPointLights are dropped.
func (r *Renderer) setLights(lights []render.Light, view vecmath.Vec3) {
	if r.lit == nil {
		return
	}
	var ambient, dirColor, dirTo vecmath.Vec3
	dirTo = vecmath.V3(0, 1, 0)
	haveDir := false
	var pos, col, rng []float32
	for _, l := range lights {
		c := colorVec(l.Color).Scale(l.Intensity)
		switch l.Kind {
		case render.LightAmbient:
			ambient = ambient.Add(c)
		case render.LightDirectional:
			if haveDir {
				continue
			}
			haveDir = true
			dirColor = c
			if !l.Position.IsZero() {
				dirTo = l.Position.Normal()
			}
		case render.LightPoint:
			if len(rng) == maxPointLights {
				continue
			}
			pos = append(pos, l.Position.X, l.Position.Y, l.Position.Z)
			col = append(col, c.X, c.Y, c.Z)
			rng = append(rng, l.Distance)
		}
	}
	r.lit.setVec3("viewPos", view.X, view.Y, view.Z)
	r.lit.setVec3("ambient", ambient.X, ambient.Y, ambient.Z)
	r.lit.setVec3("dirToLight", dirTo.X, dirTo.Y, dirTo.Z)
	r.lit.setVec3("dirColor", dirColor.X, dirColor.Y, dirColor.Z)
	r.lit.setFloat("pointCount", float32(len(rng)))
	r.lit.setVec3("pointPos", pos...)
	r.lit.setVec3("pointColor", col...)
	r.lit.setFloats("pointRange", rng)
}

// drawStars draws the starfield as points. Point size is fixed in raylib, so a star's size
// (times the twinkle scale) sets its brightness instead.
func (r *Renderer) drawStars(stars []render.Star, scale float32) {
	if len(stars) == 0 {
		return
	}
	var maxSize float32
	for _, s := range stars {
		if s.Size > maxSize {
			maxSize = s.Size
		}
	}
	if maxSize <= 0 {
		return
	}
	for _, s := range stars {
		c := s.Color
		c.A = uint8(vecmath.Clamp(s.Size*scale/maxSize, 0, 1) * 255)
		rl.DrawPoint3D(rlVec(s.Position), rlColor(c))
	}
}

// Close releases every GPU resource the renderer created.
func (r *Renderer) Close() {
	for k, t := range r.textures {
		if rl.IsTextureValid(t) {
			rl.UnloadTexture(t)
		}
		delete(r.textures, k)
	}
	for k, m := range r.spheres {
		rl.UnloadMesh(&m)
		delete(r.spheres, k)
	}
	if r.lit != nil {
		rl.UnloadShader(r.lit.shader)
		r.lit = nil
	}
	r.ready = false
}

func rlVec(v vecmath.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X, v.Y, v.Z)
}

func rlColor(c render.Color) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func colorVec(c render.Color) vecmath.Vec3 {
	v := c.Vec()
	return vecmath.V3(v[0], v[1], v[2])
}
