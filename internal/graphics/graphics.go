package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// maxStepsPerFrame caps fixed updates after a long frame (e.g. window drag) so the loop cannot spiral.
const maxStepsPerFrame = 5

// Window describes the window Run opens.
type Window struct {
	Title     string
	Width     int32 // 0 with Height 0 = three quarters of the monitor
	Height    int32
	FixedRate int   // fixed updates per second; <= 0 disables fixedUpdate
}

// Run opens the window and runs the main loop until it is closed. Each frame it calls fixedUpdate
// as many times as fixed steps have elapsed, then update (input, camera), then clears the screen and calls draw.
// ESC is reserved for the terminal; close via the window button.
func Run(win Window, fixedUpdate, update, draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(win.Width, win.Height, win.Title)
	defer rl.CloseWindow()
	if win.Width == 0 || win.Height == 0 {
		m := rl.GetCurrentMonitor()
		rl.SetWindowSize(rl.GetMonitorWidth(m)*3/4, rl.GetMonitorHeight(m)*3/4)
	}

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(60)

	var step, acc float32
	if win.FixedRate > 0 {
		step = 1 / float32(win.FixedRate)
	}
	for !rl.WindowShouldClose() {
		if step > 0 {
			acc += rl.GetFrameTime()
			for n := 0; acc >= step && n < maxStepsPerFrame; n++ {
				fixedUpdate()
				acc -= step
			}
			if acc >= step {
				acc = 0
			}
		}
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
}
