package export

import (
	"image/color"
	"strings"
	"testing"

	"github.com/san-kum/plexus/internal/sim"
)

func TestFrameToSVG(t *testing.T) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	f := sim.Frame{
		Width:      800,
		Height:     600,
		Background: color.RGBA{R: 255, A: 255},
		Commands: []sim.Command{
			{Kind: sim.KindDisk, X: 105, Y: 105, Radius: 5, Color: white},
			{Kind: sim.KindLine, X: 105, Y: 105, X2: 200, Y2: 105, Width: 2.5, Color: white},
			{Kind: sim.KindDisk, X: 400, Y: 300, Radius: 50, Color: color.RGBA{B: 255, A: 255}},
		},
	}

	svg := FrameToSVG(f, 400, 300)

	for _, want := range []string{
		`width="400" height="300" viewBox="0 0 800 600"`,
		`fill="#ff0000"`,
		`<circle cx="105.0" cy="105.0" r="5.0" fill="#ffffff"/>`,
		`<line x1="105.0" y1="105.0" x2="200.0" y2="105.0" stroke="#ffffff" stroke-width="2.50"`,
		`fill="#0000ff"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if strings.Count(svg, "<circle") != 2 || strings.Count(svg, "<line") != 1 {
		t.Error("unexpected element counts")
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("svg not closed")
	}
}

func TestFrameToSVG_Empty(t *testing.T) {
	svg := FrameToSVG(sim.Frame{}, 10, 10)
	if strings.Contains(svg, "<circle") || strings.Contains(svg, "<line") {
		t.Error("empty frame should draw nothing but the background")
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("expected empty output for a single value")
	}

	svg := SeriesToSVG([]float64{0, 5, 10}, 100, 50, "#00ff00")
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("missing stroke color")
	}
	if !strings.Contains(svg, "M0.0,") || strings.Count(svg, " L") != 2 {
		t.Errorf("unexpected path: %s", svg)
	}
}
