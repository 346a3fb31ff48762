package render

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// MarshalText writes the color as "#rrggbb" so config files stay readable.
func (c Color) MarshalText() ([]byte, error) {
	cf := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	return []byte(cf.Hex()), nil
}

// UnmarshalText parses a hex color.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
