package rlwindow

import (
	"image/color"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/plexus/internal/gui"
	"github.com/san-kum/plexus/internal/sim"
)

const statusHeight = 24

func toRL(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// Run opens a raylib window and blocks until it closes or Q is pressed.
func Run(sh *gui.Shell, title string) error {
	w, h := sh.Size()
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(w), int32(h+statusHeight), title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)

	keys := []struct {
		rl  int32
		key gui.Key
	}{
		{rl.KeyS, gui.KeyStart},
		{rl.KeyX, gui.KeyStop},
		{rl.KeyUp, gui.KeyUp},
		{rl.KeyDown, gui.KeyDown},
		{rl.KeyQ, gui.KeyQuit},
	}

	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			sh.Resize(int(rl.GetScreenWidth()), int(rl.GetScreenHeight())-statusHeight)
		}

		for _, k := range keys {
			if rl.IsKeyPressed(k.rl) && sh.Key(k.key) {
				return nil
			}
		}

		pos := rl.GetMousePosition()
		sh.MouseMove(int(pos.X), int(pos.Y))
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			sh.MouseClick(int(pos.X), int(pos.Y))
		}

		f := sh.Advance(time.Duration(rl.GetFrameTime() * float32(time.Second)))

		rl.BeginDrawing()
		rl.ClearBackground(toRL(sh.Background()))
		drawRaylib(f)
		_, fh := sh.Size()
		rl.DrawRectangle(0, int32(fh), int32(rl.GetScreenWidth()), statusHeight, rl.NewColor(20, 20, 20, 255))
		rl.DrawText(sh.Status(), 8, int32(fh)+6, 14, rl.NewColor(220, 220, 220, 255))
		rl.EndDrawing()
	}
	return nil
}

func drawRaylib(f sim.Frame) {
	for _, c := range f.Commands {
		switch c.Kind {
		case sim.KindDisk:
			rl.DrawCircleV(rl.NewVector2(float32(c.X), float32(c.Y)), float32(c.Radius), toRL(c.Color))
		case sim.KindLine:
			rl.DrawLineEx(
				rl.NewVector2(float32(c.X), float32(c.Y)),
				rl.NewVector2(float32(c.X2), float32(c.Y2)),
				float32(c.Width),
				toRL(c.Color),
			)
		}
	}
}
