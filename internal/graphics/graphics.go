package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window configures the window opened by Run.
type Window struct {
	Width     int32
	Height    int32
	Title     string
	TargetFPS int32
	MSAA      bool
	// OnClose runs after the last frame while the GL context still exists.
	OnClose func()
}

// Run opens the window and runs the main loop until it is closed. Each frame it calls
// update with the seconds since the previous frame, then clears the screen and calls draw.
// ESC does not quit; it is left to the console.
func Run(w Window, update func(delta float32), draw func()) {
	flags := uint32(rl.FlagWindowResizable)
	if w.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(w.Width, w.Height, w.Title)
	defer rl.CloseWindow()
	if w.OnClose != nil {
		defer w.OnClose()
	}

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(w.TargetFPS)

	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
}
