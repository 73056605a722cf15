package viz

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/plexus/internal/sim"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	p := sim.DefaultParams()
	p.Count = 20
	return NewModel(sim.New(p, 1), 35*time.Millisecond, "minimal", nil)
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_StartAndTick(t *testing.T) {
	m := newTestModel(t)
	if m.session.Running() {
		t.Fatal("session should start idle")
	}

	m = update(m, key("s"))
	if !m.session.Running() {
		t.Fatal("s should start the session")
	}
	w, h := m.session.Size()
	if ww, wh := m.WorldSize(); w != ww || h != wh {
		t.Errorf("session size %dx%d, want %dx%d", w, h, ww, wh)
	}

	next, cmd := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if m.session.Ticks() != 1 {
		t.Errorf("expected 1 tick, got %d", m.session.Ticks())
	}
	if m.frame.Count(sim.KindDisk) != 20 {
		t.Errorf("expected 20 disks, got %d", m.frame.Count(sim.KindDisk))
	}
	if len(m.hist.edges) != 1 {
		t.Errorf("expected 1 history entry, got %d", len(m.hist.edges))
	}

	m = update(m, key("x"))
	if m.session.Running() || !m.session.Done() {
		t.Error("x should stop the session")
	}
}

func TestModel_Reconfigure(t *testing.T) {
	m := newTestModel(t)

	m = update(m, key("+"))
	if d := m.session.EdgeDistance(); d != 110 {
		t.Errorf("expected 110, got %d", d)
	}
	m = update(m, key("-"))
	m = update(m, key("-"))
	if d := m.session.EdgeDistance(); d != 90 {
		t.Errorf("expected 90, got %d", d)
	}
}

func TestModel_Mouse(t *testing.T) {
	m := newTestModel(t)
	m = update(m, key("s"))

	m = update(m, tea.MouseMsg{X: canvasPadX + 3, Y: canvasPadY + 2, Action: tea.MouseActionMotion})
	x, y := m.session.Mouse()
	if x != 3*2*pixelScale+pixelScale || y != 2*4*pixelScale+2*pixelScale {
		t.Errorf("unexpected world mouse (%d, %d)", x, y)
	}

	m = update(m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.session.Indicator() {
		t.Error("left click should toggle the indicator")
	}
}

func TestModel_Theme(t *testing.T) {
	m := newTestModel(t)
	first := m.theme.Name
	m = update(m, key("t"))
	if m.theme.Name == first {
		t.Error("t should cycle the theme")
	}
	if m.theme.Name != NextTheme(first).Name {
		t.Errorf("expected %s, got %s", NextTheme(first).Name, m.theme.Name)
	}
}

func TestModel_WindowResize(t *testing.T) {
	m := newTestModel(t)
	m = update(m, key("s"))
	m = update(m, tea.WindowSizeMsg{Width: 160, Height: 50})

	if m.canvas.Width != m.cols || m.cols != 160-panelWidth-2*canvasPadX-4 {
		t.Errorf("unexpected canvas width %d", m.canvas.Width)
	}
	w, h := m.session.Size()
	if ww, wh := m.WorldSize(); w != ww || h != wh {
		t.Error("session not resized with the canvas")
	}

	m = update(m, tea.WindowSizeMsg{Width: 10, Height: 3})
	if m.cols != minCols || m.rows != minRows {
		t.Errorf("expected minimum canvas, got %dx%d", m.cols, m.rows)
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t)
	if m.View() == "" {
		t.Error("empty view")
	}
	m = update(m, key("s"))
	m = update(m, TickMsg(time.Now()))
	if m.View() == "" {
		t.Error("empty view while running")
	}
}

func TestNextTheme(t *testing.T) {
	last := Themes[len(Themes)-1].Name
	if NextTheme(last).Name != Themes[0].Name {
		t.Error("NextTheme should wrap")
	}
	if GetTheme("bogus").Name != "minimal" {
		t.Error("unknown theme should fall back to minimal")
	}
}
