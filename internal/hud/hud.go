// Package hud draws the 2D overlays: loading indicator, controls hint, Earth info panel,
// and the FPS and memory counters.
package hud

import (
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"earth-explorer/internal/overlay"
)

const (
	fontSize    = 20
	smallSize   = 16
	padding     = 12
	lineHeight  = fontSize + 4
	panelWidth  = 320
	panelMargin = 20
	// only refresh FPS/Mem text every N frames to reduce allocations
	updateInterval = 30
)

var (
	counterColor = rl.Green
	hintColor    = rl.NewColor(255, 255, 255, 200)
	panelBg      = rl.NewColor(0, 0, 0, 180)
	panelBorder  = rl.NewColor(74, 144, 226, 200)
	labelColor   = rl.NewColor(160, 190, 230, 255)
)

// HUD holds the overlay state and cached counter text.
type HUD struct {
	State *overlay.State

	font         rl.Font // optional; zero texture ID means the raylib default font
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a HUD drawing the overlays selected in s.
func New(s *overlay.State) *HUD {
	if s == nil {
		s = &overlay.State{}
	}
	return &HUD{State: s}
}

// SetFont sets the font used for all overlay text.
func (h *HUD) SetFont(font rl.Font) {
	h.font = font
}

// DrawLoading draws the centered loading indicator.
func (h *HUD) DrawLoading(percent float32) {
	text := overlay.ProgressLabel(percent)
	w := h.measure(text, fontSize)
	x := (float32(rl.GetScreenWidth()) - w) / 2
	y := float32(rl.GetScreenHeight())/2 - fontSize/2
	h.text(text, x, y, fontSize, rl.White)
}

// DrawScene draws the overlays shown over the revealed scene.
func (h *HUD) DrawScene(showInfo bool) {
	if h.State.ShowHint {
		h.drawHint()
	}
	if showInfo {
		h.drawInfo()
	}
	h.drawCounters()
}

func (h *HUD) drawHint() {
	screenW := float32(rl.GetScreenWidth())
	screenH := float32(rl.GetScreenHeight())
	for i, text := range []string{overlay.ControlsHint, overlay.KeysHint} {
		w := h.measure(text, smallSize)
		y := screenH - float32(padding) - float32(2-i)*(smallSize+4)
		h.text(text, (screenW-w)/2, y, smallSize, hintColor)
	}
}

func (h *HUD) drawInfo() {
	x := int32(panelMargin)
	y := int32(panelMargin)
	height := int32(padding*2 + lineHeight*(len(overlay.EarthFacts)+1))
	rl.DrawRectangle(x, y, panelWidth, height, panelBg)
	rl.DrawRectangleLines(x, y, panelWidth, height, panelBorder)

	tx := float32(x + padding)
	ty := float32(y + padding)
	h.text(overlay.InfoTitle, tx, ty, fontSize, rl.White)
	for _, f := range overlay.EarthFacts {
		ty += lineHeight
		h.text(f.Label, tx, ty, smallSize, labelColor)
		vw := h.measure(f.Value, smallSize)
		h.text(f.Value, float32(x+panelWidth-padding)-vw, ty, smallSize, rl.White)
	}
}

// drawCounters draws FPS and heap size at the top right. Text is only recomputed every
// updateInterval frames.
func (h *HUD) drawCounters() {
	h.frameCount++
	update := h.frameCount%updateInterval == 0
	if (h.State.ShowFPS && h.lastFpsText == "") || (h.State.ShowMemAlloc && h.lastMemText == "") {
		update = true
	}

	screenW := float32(rl.GetScreenWidth())
	y := float32(padding)
	if h.State.ShowFPS {
		if update {
			h.lastFpsText = overlay.FPSLabel(rl.GetFPS())
		}
		w := h.measure(h.lastFpsText, fontSize)
		h.text(h.lastFpsText, screenW-w-padding, y, fontSize, counterColor)
		y += lineHeight
	}
	if h.State.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&h.lastMemStats)
			h.lastMemText = overlay.MemLabel(h.lastMemStats.Alloc)
		}
		w := h.measure(h.lastMemText, fontSize)
		h.text(h.lastMemText, screenW-w-padding, y, fontSize, counterColor)
	}
}

func (h *HUD) measure(text string, size float32) float32 {
	if h.font.Texture.ID != 0 {
		return rl.MeasureTextEx(h.font, text, size, 1).X
	}
	return float32(rl.MeasureText(text, int32(size)))
}

func (h *HUD) text(text string, x, y, size float32, c rl.Color) {
	if h.font.Texture.ID != 0 {
		rl.DrawTextEx(h.font, text, rl.NewVector2(x, y), size, 1, c)
		return
	}
	rl.DrawText(text, int32(x), int32(y), int32(size), c)
}
