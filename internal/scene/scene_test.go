package scene

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"earth-explorer/internal/frame"
	"earth-explorer/internal/loop"
	"earth-explorer/internal/render"
	"earth-explorer/internal/vecmath"
)

type stubTexture struct{}

func (stubTexture) Key() string       { return "earth.jpg" }
func (stubTexture) RGBA() *image.RGBA { return image.NewRGBA(image.Rect(0, 0, 2, 1)) }

func smallOptions() Options {
	o := DefaultOptions()
	o.Stars.Count = 200
	return o
}

func TestFrameOrdersTranslucentLast(t *testing.T) {
	s := New(smallOptions(), stubTexture{})
	f := s.Frame()

	require.NotEmpty(t, f.Nodes)
	seenTranslucent := false
	for _, n := range f.Nodes {
		if n.Material.Transparent() {
			seenTranslucent = true
			continue
		}
		assert.False(t, seenTranslucent, "opaque node %s drawn after a translucent one", n.Name)
	}

	cam := f.Camera.Position
	var last float32 = -1
	for i := len(f.Nodes) - 1; i >= 0; i-- {
		n := f.Nodes[i]
		if !n.Material.Transparent() {
			break
		}
		d := vecmath.Distance(n.Transform.Position, cam)
		assert.GreaterOrEqual(t, d, last, "translucent nodes must go far to near")
		last = d
	}
}

func TestFrameCarriesEarthTextureAndLights(t *testing.T) {
	s := New(smallOptions(), stubTexture{})
	f := s.Frame()

	var earth *render.Node
	for i := range f.Nodes {
		if f.Nodes[i].Name == "earth" {
			earth = &f.Nodes[i]
		}
	}
	require.NotNil(t, earth)
	require.NotNil(t, earth.Material.Texture)
	assert.Equal(t, "earth.jpg", earth.Material.Texture.Key())

	require.Len(t, f.Lights, 4)
	assert.Equal(t, render.LightAmbient, f.Lights[0].Kind)
	assert.Equal(t, render.LightDirectional, f.Lights[1].Kind)
	sun := f.Lights[3]
	assert.Equal(t, render.LightPoint, sun.Kind)
	assert.Equal(t, s.Sun.Transform().Position, sun.Position)
}

func TestSunLightFollowsSun(t *testing.T) {
	s := New(smallOptions(), stubTexture{})
	l := loop.New(nil, s.Updaters()...)
	l.Start()
	for i := 0; i < 60; i++ {
		l.Step(0.1)
	}
	f := s.Frame()
	assert.Equal(t, s.Sun.Transform().Position, f.Lights[3].Position)
	assert.InDelta(t, 4, vecmath.V3(f.Lights[3].Position.X, 0, f.Lights[3].Position.Z).Length(), 1e-4)
}

func TestUpdatersSkipStaticBodies(t *testing.T) {
	s := New(smallOptions(), stubTexture{})
	us := s.Updaters()
	// earth, sun, moon, rig, scene
	assert.Len(t, us, 5)
	for _, u := range us {
		assert.NotSame(t, s.Atmosphere, u)
	}
}

func TestAtmosphereNeverMoves(t *testing.T) {
	s := New(smallOptions(), stubTexture{})
	before := s.Atmosphere.Transform()
	l := loop.New(nil, s.Updaters()...)
	l.Start()
	for i := 0; i < 30; i++ {
		l.Step(1.0 / 30)
	}
	assert.Equal(t, before, s.Atmosphere.Transform())
	assert.Equal(t, float32(1.02), before.Scale)
}

func TestTwinkleFollowsElapsed(t *testing.T) {
	s := New(smallOptions(), stubTexture{})
	s.Update(frame.Tick{Elapsed: 2, Delta: 2})
	assert.Equal(t, Twinkle(0.5, 2), s.Frame().StarScale)

	for _, tt := range []float32{0, 1, 10, 1000} {
		v := Twinkle(0.5, tt)
		assert.GreaterOrEqual(t, v, float32(2.0/3)-1e-6)
		assert.LessOrEqual(t, v, float32(4.0/3)+1e-6)
	}
}

func TestGenerateStarsDeterministic(t *testing.T) {
	o := DefaultStars()
	o.Count = 500
	a := GenerateStars(o)
	b := GenerateStars(o)
	require.Len(t, a, 500)
	assert.Equal(t, a, b)

	o.Seed = 2
	assert.NotEqual(t, a, GenerateStars(o))
}

func TestGenerateStarsInShell(t *testing.T) {
	o := DefaultStars()
	o.Count = 1000
	for _, s := range GenerateStars(o) {
		r := s.Position.Length()
		assert.GreaterOrEqual(t, r, o.Radius-1e-3)
		assert.LessOrEqual(t, r, o.Radius+o.Depth+1e-3)
		assert.GreaterOrEqual(t, s.Size, o.Factor*0.5)
		assert.LessOrEqual(t, s.Size, o.Factor)
		// zero saturation gives grey
		assert.Equal(t, s.Color.R, s.Color.G)
		assert.Equal(t, s.Color.G, s.Color.B)
	}
	assert.Empty(t, GenerateStars(StarOptions{}))
}
