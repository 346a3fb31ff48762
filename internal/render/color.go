package render

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses a "#rrggbb" (or "#rgb") hex string into an opaque Color.
func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("render: color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: 255}, nil
}

// MustColor is ParseColor for compile-time constants; it panics on a bad literal.
func MustColor(hex string) Color {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// Vec returns the color as normalized RGB plus alpha.
func (c Color) Vec() [4]float32 {
	return [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}
