package export

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/plexus/internal/sim"
)

// FrameToSVG renders a frame as SVG. The viewBox keeps frame coordinates and
// width/height set the output size.
func FrameToSVG(f sim.Frame, width, height int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, f.Width, f.Height, hex(f.Background)))

	for _, c := range f.Commands {
		switch c.Kind {
		case sim.KindDisk:
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, c.X, c.Y, c.Radius, hex(c.Color)))
		case sim.KindLine:
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.2f" stroke-linecap="round"/>
`, c.X, c.Y, c.X2, c.Y2, hex(c.Color), c.Width))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func hex(c color.RGBA) string {
	cf, _ := colorful.MakeColor(color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
	return cf.Hex()
}

// SeriesToSVG draws values as a polyline chart scaled to fill the image.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	span := maxV - minV
	if span == 0 {
		span = 1
	}
	minV -= span * 0.1
	maxV += span * 0.1
	span = maxV - minV
	stepX := float64(width) / float64(len(values)-1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) * stepX
		y := float64(height) - (v-minV)/span*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
