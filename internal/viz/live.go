package viz

import (
	"fmt"
	"image"
	"image/gif"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/plexus/internal/logging"
	"github.com/san-kum/plexus/internal/sim"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	minCols         = 20
	minRows         = 8
	historyCapacity = 600

	canvasPadX = 2
	canvasPadY = 1

	// World units per braille sub-pixel, so mouse and edge distances keep
	// roughly their window proportions.
	pixelScale = 4

	gifScale = 0.5
)

type TickMsg time.Time

// history records edges per frame for the sparkline. It is shared by
// pointer because Model is passed by value.
type history struct {
	edges      []float64
	collisions int
	last       sim.Stats
}

func (h *history) OnFrame(_ sim.Frame, s sim.Stats) {
	h.edges = append(h.edges, float64(s.Edges))
	if len(h.edges) > historyCapacity {
		h.edges = h.edges[1:]
	}
	h.collisions += s.Collisions
	h.last = s
}

func (h *history) reset() {
	h.edges = h.edges[:0]
	h.collisions = 0
	h.last = sim.Stats{}
}

// Model is the Bubble Tea program around a session. The canvas doubles as
// the session's world: each sub-pixel spans pixelScale units.
type Model struct {
	session    *sim.Session
	interval   time.Duration
	log        *slog.Logger
	canvas     *Canvas
	cols, rows int
	frame      sim.Frame
	hist       *history
	theme      Theme
	styles     Styles
	recording  bool
	frames     []*image.Paletted
	gifPath    string
	showHelp   bool
	err        error
}

func NewModel(s *sim.Session, interval time.Duration, theme string, log *slog.Logger) Model {
	if log == nil {
		log = logging.Discard()
	}
	h := &history{edges: make([]float64, 0, historyCapacity)}
	s.AddObserver(h)

	t := GetTheme(theme)
	return Model{
		session:  s,
		interval: interval,
		log:      log,
		canvas:   NewCanvas(defaultCols, defaultRows),
		cols:     defaultCols,
		rows:     defaultRows,
		hist:     h,
		theme:    t,
		styles:   NewStyles(t),
		gifPath:  "plexus.gif",
	}
}

// SetGIFPath changes where a recording is written when it stops.
func (m *Model) SetGIFPath(path string) { m.gifPath = path }

// WorldSize is the session canvas matching the terminal canvas.
func (m Model) WorldSize() (int, int) {
	pw, ph := m.canvas.PixelSize()
	return pw * pixelScale, ph * pixelScale
}

// toWorld maps a terminal cell to the world point at its center.
func (m Model) toWorld(x, y int) (int, int) {
	col, row := x-canvasPadX, y-canvasPadY
	return col*2*pixelScale + pixelScale, row*4*pixelScale + 2*pixelScale
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recording {
				m.saveGIF()
			}
			return m, tea.Quit
		case "s":
			m.start()
		case "x":
			m.session.Stop()
		case "+", "=":
			m.session.Reconfigure(m.session.EdgeDistance() + 10)
		case "-", "_":
			m.session.Reconfigure(m.session.EdgeDistance() - 10)
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.styles = NewStyles(m.theme)
		case "g":
			if m.recording {
				m.saveGIF()
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		x, y := m.toWorld(msg.X, msg.Y)
		switch {
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
			m.session.OnMouseClick(x, y)
		case msg.Action == tea.MouseActionMotion:
			m.session.OnMouseMove(x, y)
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		m.session.Tick()
		if m.session.RedrawDue() {
			m.frame = m.session.Render()
			Rasterize(m.canvas, m.frame)
			if m.recording {
				m.frames = append(m.frames, FrameImage(m.frame, gifScale))
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) start() {
	if m.session.Running() {
		return
	}
	w, h := m.WorldSize()
	if err := m.session.Start(w, h); err != nil {
		m.err = err
		m.log.Warn("start failed", "err", err)
		return
	}
	m.err = nil
	m.hist.reset()
}

func (m *Model) resize(termW, termH int) {
	cols := termW - panelWidth - 2*canvasPadX - 4
	rows := termH - 2*canvasPadY
	if cols < minCols {
		cols = minCols
	}
	if rows < minRows {
		rows = minRows
	}
	m.cols, m.rows = cols, rows
	m.canvas = NewCanvas(cols, rows)
	Rasterize(m.canvas, m.frame)

	if m.session.Running() {
		w, h := m.WorldSize()
		if err := m.session.Resize(w, h); err != nil {
			m.log.Warn("resize failed", "err", err)
		}
	}
}

func (m Model) View() string {
	st := m.styles
	var s strings.Builder

	s.WriteString(GradientText("PLEXUS", m.theme.Primary, m.theme.Accent) + "\n\n")

	switch {
	case m.recording:
		s.WriteString(st.Recording.Render("● REC") + "\n")
	case m.session.Running():
		s.WriteString(st.Running.Render("RUNNING") + "\n")
	default:
		s.WriteString(st.Stopped.Render("STOPPED") + "  press s to start\n")
	}
	if m.err != nil {
		s.WriteString(st.Recording.Render(m.err.Error()) + "\n")
	}
	s.WriteString(st.Value.Render(m.session.Status()) + "\n\n")

	d := m.session.EdgeDistance()
	ratio := float64(d-sim.MinEdgeDistance) / float64(sim.MaxEdgeDistance-sim.MinEdgeDistance)
	s.WriteString(st.Label.Render("Distance") + st.ProgressBar(ratio, 12) + st.Value.Render(fmt.Sprintf(" %d", d)) + "\n")
	s.WriteString(st.Label.Render("Particles") + st.Value.Render(fmt.Sprintf("%d", len(m.session.Particles()))) + "\n")
	s.WriteString(st.Label.Render("Ticks") + st.Value.Render(fmt.Sprintf("%d", m.session.Ticks())) + "\n")
	s.WriteString(st.Label.Render("Edges") + st.Value.Render(fmt.Sprintf("%d", m.hist.last.Edges)) + "\n")
	s.WriteString(st.Label.Render("Collisions") + st.Value.Render(fmt.Sprintf("%d", m.hist.collisions)) + "\n")
	s.WriteString(st.Label.Render("Theme") + st.Value.Render(m.theme.Name) + "\n")

	if len(m.hist.edges) > 1 {
		chart := asciigraph.Plot(m.hist.edges, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("edges/frame"))
		s.WriteString(st.Graph.Render(chart) + "\n")
	}

	s.WriteString(st.Help.Render("S:Start X:Stop +/-:Distance\nT:Theme G:Record ?:Help Q:Quit"))

	canvasView := st.Canvas.Render(m.canvas.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.Panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  S        - Start a new population   ║
║  X        - Stop                     ║
║  + / -    - Edge distance +/- 10     ║
║  Click    - Toggle mouse disk        ║
║  T        - Cycle themes             ║
║  G        - Toggle GIF recording     ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

func (m *Model) saveGIF() {
	if len(m.frames) == 0 {
		return
	}
	delay := int(m.interval / (10 * time.Millisecond))
	if delay < 1 {
		delay = 1
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	f, err := os.Create(m.gifPath)
	if err != nil {
		m.log.Error("gif create failed", "path", m.gifPath, "err", err)
		return
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		m.log.Error("gif encode failed", "path", m.gifPath, "err", err)
		return
	}
	m.log.Info("gif saved", "path", m.gifPath, "frames", len(m.frames))
}
