package scene

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
	colorful "github.com/lucasb-eyer/go-colorful"

	"earth-explorer/internal/render"
	"earth-explorer/internal/vecmath"
)

// StarOptions configure the background starfield.
type StarOptions struct {
	Count      int     `yaml:"count"`
	Radius     float32 `yaml:"radius"` // inner radius of the shell
	Depth      float32 `yaml:"depth"`  // shell thickness
	Factor     float32 `yaml:"factor"` // size multiplier
	Saturation float32 `yaml:"saturation"`
	Speed      float32 `yaml:"speed"` // twinkle rate
	Seed       uint64  `yaml:"seed"`
}

func DefaultStars() StarOptions {
	return StarOptions{Count: 25000, Radius: 300, Depth: 60, Factor: 8, Saturation: 0, Speed: 0.5, Seed: 1}
}

// GenerateStars scatters o.Count stars uniformly over directions, walking inward from
// Radius+Depth so the shell fills front to back. Hue sweeps the full circle by index;
// with zero saturation every star is the same pale grey. The same seed gives the same sky.
func GenerateStars(o StarOptions) []render.Star {
	if o.Count <= 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(o.Seed, o.Seed^0x9e3779b97f4a7c15))
	stars := make([]render.Star, o.Count)
	r := o.Radius + o.Depth
	step := o.Depth / float32(o.Count)
	for i := range stars {
		r -= step * rng.Float32()
		phi := math32.Acos(1 - 2*rng.Float32())
		theta := 2 * math32.Pi * rng.Float32()
		sinPhi := math32.Sin(phi) * r
		pos := vecmath.V3(sinPhi*math32.Sin(theta), math32.Cos(phi)*r, sinPhi*math32.Cos(theta))

		c := colorful.Hsl(360*float64(i)/float64(o.Count), float64(o.Saturation), 0.9)
		cr, cg, cb := c.Clamped().RGB255()
		stars[i] = render.Star{
			Position: pos,
			Color:    render.Color{R: cr, G: cg, B: cb, A: 255},
			Size:     (0.5 + 0.5*rng.Float32()) * o.Factor,
		}
	}
	return stars
}

// Twinkle is the size multiplier of the starfield at elapsed time t.
func Twinkle(speed, t float32) float32 {
	return (3 + math32.Sin(t*speed+100)) / 3
}
