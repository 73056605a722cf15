package ebwindow

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/san-kum/plexus/internal/gui"
	"github.com/san-kum/plexus/internal/sim"
)

type game struct {
	sh    *gui.Shell
	frame sim.Frame
}

var ebitenKeys = []struct {
	key ebiten.Key
	cmd gui.Key
}{
	{ebiten.KeyS, gui.KeyStart},
	{ebiten.KeyX, gui.KeyStop},
	{ebiten.KeyArrowUp, gui.KeyUp},
	{ebiten.KeyArrowDown, gui.KeyDown},
	{ebiten.KeyQ, gui.KeyQuit},
}

func (g *game) Update() error {
	for _, k := range ebitenKeys {
		if inpututil.IsKeyJustPressed(k.key) && g.sh.Key(k.cmd) {
			return ebiten.Termination
		}
	}

	mx, my := ebiten.CursorPosition()
	g.sh.MouseMove(mx, my)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.sh.MouseClick(mx, my)
	}

	g.frame = g.sh.Advance(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.sh.Background())
	for _, c := range g.frame.Commands {
		switch c.Kind {
		case sim.KindDisk:
			vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), float32(c.Radius), c.Color, true)
		case sim.KindLine:
			vector.StrokeLine(screen, float32(c.X), float32(c.Y), float32(c.X2), float32(c.Y2), float32(c.Width), c.Color, true)
		}
	}
	_, h := g.sh.Size()
	ebitenutil.DebugPrintAt(screen, g.sh.Status(), 8, h-16)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.sh.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Run opens an ebiten window and blocks until it closes or Q is pressed.
func Run(sh *gui.Shell, title string) error {
	w, h := sh.Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	// Returning ebiten.Termination from Update makes RunGame return nil.
	return ebiten.RunGame(&game{sh: sh})
}
