package viz

import (
	"image/color"
	"strings"
	"testing"

	"github.com/san-kum/plexus/internal/sim"
)

func TestCanvas_SetAndString(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	want := string([]rune{0x2801, 0x2880}) + "\n"
	if got := c.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if !c.IsSet(0, 0) || !c.IsSet(3, 3) || c.IsSet(1, 0) || c.IsSet(100, 0) {
		t.Error("IsSet disagrees with Set")
	}

	c.Clear()
	if strings.ContainsFunc(c.String(), func(r rune) bool { return r > 0x2800 }) {
		t.Error("Clear left pixels set")
	}
}

func TestCanvas_DrawLine(t *testing.T) {
	c := NewCanvas(10, 3)
	c.DrawLine(0, 0, 9, 0)
	for x := 0; x <= 9; x++ {
		if !c.IsSet(x, 0) {
			t.Errorf("pixel (%d, 0) not set", x)
		}
	}
	if c.IsSet(10, 0) || c.IsSet(0, 1) {
		t.Error("line overshot")
	}
}

func TestCanvas_FillCircle(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillCircle(10, 10, 3)

	tests := []struct {
		x, y int
		want bool
	}{
		{10, 10, true},
		{13, 10, true},
		{10, 7, true},
		{12, 12, true},
		{13, 13, false},
		{14, 10, false},
	}
	for _, tt := range tests {
		if got := c.IsSet(tt.x, tt.y); got != tt.want {
			t.Errorf("IsSet(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}

	c.Clear()
	c.FillCircle(4, 4, 0)
	if !c.IsSet(4, 4) {
		t.Error("zero radius should mark the center")
	}
}

func TestRasterize(t *testing.T) {
	c := NewCanvas(10, 5) // 20x20 sub-pixels
	f := sim.Frame{
		Width:  200,
		Height: 200,
		Commands: []sim.Command{
			{Kind: sim.KindDisk, X: 50, Y: 50, Radius: 10},
			{Kind: sim.KindLine, X: 0, Y: 150, X2: 190, Y2: 150, Width: 3},
		},
	}

	Rasterize(c, f)

	if !c.IsSet(5, 5) || !c.IsSet(6, 5) {
		t.Error("disk not drawn at scaled center")
	}
	if c.IsSet(8, 5) {
		t.Error("disk drawn too large")
	}
	for x := 0; x <= 19; x++ {
		if !c.IsSet(x, 15) {
			t.Errorf("line pixel (%d, 15) missing", x)
		}
	}

	Rasterize(c, sim.Frame{})
	if c.IsSet(5, 5) {
		t.Error("empty frame should clear the canvas")
	}
}

func TestFrameImage(t *testing.T) {
	bg := color.RGBA{R: 255, A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	f := sim.Frame{
		Width:      100,
		Height:     50,
		Background: bg,
		Commands: []sim.Command{
			{Kind: sim.KindDisk, X: 20, Y: 20, Radius: 6, Color: white},
			{Kind: sim.KindLine, X: 0, Y: 40, X2: 100, Y2: 40, Width: 2, Color: white},
		},
	}

	img := FrameImage(f, 0.5)
	if b := img.Bounds(); b.Dx() != 50 || b.Dy() != 25 {
		t.Fatalf("unexpected bounds %v", b)
	}
	if len(img.Palette) != 2 {
		t.Errorf("expected 2 palette entries, got %d", len(img.Palette))
	}
	if img.ColorIndexAt(10, 10) != 1 {
		t.Error("disk center not painted")
	}
	if img.ColorIndexAt(25, 20) != 1 {
		t.Error("line not painted")
	}
	if img.ColorIndexAt(40, 5) != 0 {
		t.Error("background overwritten")
	}
}
