package viz

import (
	"image"
	"image/color"
	"math"

	"github.com/san-kum/plexus/internal/sim"
)

// Rasterize clears c and draws f scaled to the canvas sub-pixel grid. Stroke
// widths are dropped; braille cells have one weight.
func Rasterize(c *Canvas, f sim.Frame) {
	c.Clear()
	if f.Width <= 0 || f.Height <= 0 {
		return
	}

	pw, ph := c.PixelSize()
	sx := float64(pw) / float64(f.Width)
	sy := float64(ph) / float64(f.Height)

	for _, cmd := range f.Commands {
		switch cmd.Kind {
		case sim.KindDisk:
			r := int(math.Round(cmd.Radius * sx))
			c.FillCircle(int(cmd.X*sx), int(cmd.Y*sy), r)
		case sim.KindLine:
			c.DrawLine(int(cmd.X*sx), int(cmd.Y*sy), int(cmd.X2*sx), int(cmd.Y2*sy))
		}
	}
}

// FrameImage paints f at the given scale into a paletted image using the
// frame's own colors. Used for GIF capture.
func FrameImage(f sim.Frame, scale float64) *image.Paletted {
	w := int(float64(f.Width) * scale)
	h := int(float64(f.Height) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	palette := color.Palette{f.Background}
	index := map[color.RGBA]uint8{f.Background: 0}
	for _, cmd := range f.Commands {
		if _, ok := index[cmd.Color]; !ok && len(palette) < 256 {
			index[cmd.Color] = uint8(len(palette))
			palette = append(palette, cmd.Color)
		}
	}

	img := image.NewPaletted(image.Rect(0, 0, w, h), palette)
	for _, cmd := range f.Commands {
		ci := index[cmd.Color]
		switch cmd.Kind {
		case sim.KindDisk:
			stamp(img, cmd.X*scale, cmd.Y*scale, cmd.Radius*scale, ci)
		case sim.KindLine:
			x0, y0 := cmd.X*scale, cmd.Y*scale
			x1, y1 := cmd.X2*scale, cmd.Y2*scale
			r := math.Max(cmd.Width*scale/2, 1)
			n := int(math.Hypot(x1-x0, y1-y0)) + 1
			for i := 0; i <= n; i++ {
				t := float64(i) / float64(n)
				stamp(img, x0+(x1-x0)*t, y0+(y1-y0)*t, r, ci)
			}
		}
	}
	return img
}

func stamp(img *image.Paletted, cx, cy, r float64, ci uint8) {
	b := img.Bounds()
	x0 := int(math.Floor(cx - r))
	x1 := int(math.Ceil(cx + r))
	y0 := int(math.Floor(cy - r))
	y1 := int(math.Ceil(cy + r))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !(image.Point{X: x, Y: y}).In(b) {
				continue
			}
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= r*r {
				img.SetColorIndex(x, y, ci)
			}
		}
	}
}
