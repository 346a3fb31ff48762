package console

import (
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"earth-explorer/internal/commands"
	"earth-explorer/internal/logger"
)

const (
	BarHeight = 40
	// When windowed, move bar up by this many pixels so it stays visible.
	WindowedBarOffset = 56
	prompt            = "> "
	fontSize          = 20
	padding           = 8
	// Number of log lines drawn above the input bar when the console is open.
	maxLinesOnScreen = 14
	lineHeight       = fontSize + 4
	maxLineLen       = 200
)

var (
	barColor  = rl.NewColor(40, 40, 40, 255)
	lineColor = rl.NewColor(80, 80, 80, 255)
	historyBg = rl.NewColor(24, 24, 24, 240)
)

// Console is the command bar at the bottom of the screen, shown and hidden with Toggle.
// While open it captures the keyboard; submitted lines run through the command registry
// and both the line and its result go to the log, which the console shows above the bar.
type Console struct {
	log      *logger.Logger
	reg      *commands.Registry
	inputBuf string
	open     bool
	font     rl.Font
}

// New returns a closed console running lines through reg.
func New(log *logger.Logger, reg *commands.Registry) *Console {
	return &Console{log: log, reg: reg}
}

// IsOpen reports whether the console is visible and capturing input.
func (c *Console) IsOpen() bool {
	return c.open
}

// Toggle opens or closes the console.
func (c *Console) Toggle() {
	c.open = !c.open
}

// SetFont sets the font for the bar and history. Zero texture ID = raylib default.
func (c *Console) SetFont(font rl.Font) {
	c.font = font
}

// Update handles typing, paste, backspace and enter while open. Call once per frame.
func (c *Console) Update() {
	if !c.open {
		return
	}
	// Ctrl+V (Windows/Linux) or Cmd+V (macOS)
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			c.inputBuf += pasted
		}
	} else {
		for {
			ch := rl.GetCharPressed()
			if ch == 0 {
				break
			}
			c.inputBuf += string(rune(ch))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(c.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(c.inputBuf)
		c.inputBuf = c.inputBuf[:len(c.inputBuf)-size]
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && c.inputBuf != "" {
		line := c.inputBuf
		c.inputBuf = ""
		c.Submit(line)
	}
}

// Submit runs one line as if typed.
func (c *Console) Submit(line string) {
	c.log.Log(prompt + line)
	args, ok := commands.Parse(line)
	if !ok {
		return
	}
	out, err := c.reg.Execute(args)
	if err != nil {
		c.log.Errorf("%v", err)
		return
	}
	if out != "" {
		c.log.Log(out)
	}
}

// Draw draws the bar and the recent log lines above it when open.
func (c *Console) Draw() {
	if !c.open {
		return
	}
	screenW := int(rl.GetScreenWidth())
	screenH := int(rl.GetScreenHeight())
	barY := screenH - BarHeight
	if !rl.IsWindowFullscreen() {
		barY -= WindowedBarOffset
	}

	historyHeight := maxLinesOnScreen * lineHeight
	historyY := barY - historyHeight
	if historyY < 0 {
		historyHeight = barY
		historyY = 0
	}
	if historyHeight > 0 {
		rl.DrawRectangle(0, int32(historyY), int32(screenW), int32(historyHeight), historyBg)
	}
	lines := c.log.Lines()
	start := 0
	if len(lines) > maxLinesOnScreen {
		start = len(lines) - maxLinesOnScreen
	}
	for i := start; i < len(lines); i++ {
		y := historyY + (i-start)*lineHeight + padding
		line := lines[i]
		if len(line) > maxLineLen {
			line = line[:maxLineLen-3] + "..."
		}
		c.text(line, padding, y, rl.LightGray)
	}

	rl.DrawRectangle(0, int32(barY), int32(screenW), int32(BarHeight), barColor)
	rl.DrawRectangle(0, int32(barY), int32(screenW), 1, lineColor)
	c.text(prompt+c.inputBuf+"|", padding, barY+padding, rl.White)
}

func (c *Console) text(s string, x, y int, color rl.Color) {
	if c.font.Texture.ID != 0 {
		rl.DrawTextEx(c.font, s, rl.NewVector2(float32(x), float32(y)), float32(fontSize), 1, color)
		return
	}
	rl.DrawText(s, int32(x), int32(y), int32(fontSize), color)
}
