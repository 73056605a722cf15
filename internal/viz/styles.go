package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Styles are the lipgloss styles derived from one Theme.
type Styles struct {
	Canvas    lipgloss.Style
	Panel     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Graph     lipgloss.Style
	Help      lipgloss.Style
	Running   lipgloss.Style
	Stopped   lipgloss.Style
	Recording lipgloss.Style
	BarHigh   lipgloss.Style
	BarLow    lipgloss.Style
}

const panelWidth = 44

func NewStyles(t Theme) Styles {
	return Styles{
		Canvas: lipgloss.NewStyle().Foreground(t.Primary).Padding(canvasPadY, canvasPadX),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(panelWidth),
		Label:     lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		Value:     lipgloss.NewStyle().Foreground(t.Text),
		Graph:     lipgloss.NewStyle().Foreground(t.Secondary).Padding(1, 0),
		Help:      lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		Running:   lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		Stopped:   lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		Recording: lipgloss.NewStyle().Bold(true).Foreground(t.Error).Blink(true),
		BarHigh:   lipgloss.NewStyle().Foreground(t.Accent),
		BarLow:    lipgloss.NewStyle().Foreground(t.Muted),
	}
}

// GradientText colors each rune of text along a Lab blend from start to end.
// Unparseable colors leave the text plain.
func GradientText(text string, start, end lipgloss.Color) string {
	if len(text) == 0 {
		return ""
	}

	c1, err1 := colorful.Hex(string(start))
	c2, err2 := colorful.Hex(string(end))
	if err1 != nil || err2 != nil {
		return text
	}

	runes := []rune(text)
	var result strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		col := lipgloss.Color(c1.BlendLab(c2, t).Clamped().Hex())
		result.WriteString(lipgloss.NewStyle().Foreground(col).Render(string(r)))
	}

	return result.String()
}

// ProgressBar renders a bar filled to percent of width.
func (s Styles) ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	return s.BarHigh.Render(strings.Repeat("█", filled)) + s.BarLow.Render(strings.Repeat("░", width-filled))
}
