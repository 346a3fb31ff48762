// Package overlay holds the text and visibility state of the 2D panels drawn over the
// scene: the loading indicator, the controls hint, the Earth info panel, and the FPS and
// memory counters. Drawing lives in internal/hud.
package overlay

import (
	"fmt"

	"github.com/chewxy/math32"
)

// ControlsHint is shown at the bottom of the screen while the scene is visible.
const ControlsHint = "Left click: Rotate • Scroll: Zoom • Right click: Pan"

// KeysHint lists the keyboard shortcuts.
const KeysHint = "Space: Auto-rotate • R: Reset • +/-: Zoom • I: Info • F1: FPS • Esc: Console"

// InfoTitle heads the Earth info panel.
const InfoTitle = "Earth"

// Fact is one row of the info panel.
type Fact struct {
	Label string
	Value string
}

// EarthFacts are the rows of the info panel.
var EarthFacts = []Fact{
	{"Diameter", "12,742 km"},
	{"Surface Area", "510.1 million km²"},
	{"Population", "8+ billion"},
	{"Age", "4.54 billion years"},
	{"Rotation Period", "23h 56m 4s"},
}

// ProgressLabel is the loading indicator text for a load percent in [0, 100].
func ProgressLabel(percent float32) string {
	p := math32.Round(percent)
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return fmt.Sprintf("Loading Earth... %d%%", int(p))
}

// State is which overlays are visible. It persists through config.Overlays.
type State struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowHint     bool
}

// ToggleFPS flips the FPS counter and returns the new setting.
func (s *State) ToggleFPS() bool {
	s.ShowFPS = !s.ShowFPS
	return s.ShowFPS
}

// ToggleMem flips the memory counter and returns the new setting.
func (s *State) ToggleMem() bool {
	s.ShowMemAlloc = !s.ShowMemAlloc
	return s.ShowMemAlloc
}

// MemLabel formats a heap size in bytes.
func MemLabel(bytes uint64) string {
	return fmt.Sprintf("Mem: %.2f MiB", float64(bytes)/(1024*1024))
}

// FPSLabel formats a frame rate.
func FPSLabel(fps int32) string {
	return fmt.Sprintf("FPS: %d", fps)
}
