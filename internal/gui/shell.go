package gui

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/san-kum/plexus/internal/logging"
	"github.com/san-kum/plexus/internal/sim"
)

// ErrUnknownBackend indicates a window backend name with no implementation.
var ErrUnknownBackend = errors.New("gui: unknown backend")

// Key is a toolkit-independent command key.
type Key int

const (
	KeyStart Key = iota
	KeyStop
	KeyUp
	KeyDown
	KeyQuit
)

// Shell holds everything a window backend shares: it forwards input to the
// session and turns frame time into clock ticks. Backends only poll the
// toolkit and paint Frame.
type Shell struct {
	session       *sim.Session
	clock         *sim.Clock
	log           *slog.Logger
	frame         sim.Frame
	width, height int
	mouseX        int
	mouseY        int
}

func NewShell(s *sim.Session, interval time.Duration, width, height int, log *slog.Logger) *Shell {
	if log == nil {
		log = logging.Discard()
	}
	return &Shell{
		session: s,
		clock:   sim.NewClock(interval),
		log:     log,
		width:   width,
		height:  height,
		mouseX:  -1,
		mouseY:  -1,
	}
}

// Key applies a command and reports whether the window should close.
func (sh *Shell) Key(k Key) bool {
	switch k {
	case KeyStart:
		if sh.session.Running() {
			return false
		}
		if err := sh.session.Start(sh.width, sh.height); err != nil {
			sh.log.Warn("start failed", "err", err)
			return false
		}
		sh.clock.Reset()
		sh.frame = sim.Frame{}
	case KeyStop:
		sh.session.Stop()
	case KeyUp:
		sh.session.Reconfigure(sh.session.EdgeDistance() + 10)
	case KeyDown:
		sh.session.Reconfigure(sh.session.EdgeDistance() - 10)
	case KeyQuit:
		return true
	}
	return false
}

// MouseMove forwards the cursor only when it moved since the last call.
func (sh *Shell) MouseMove(x, y int) {
	if x == sh.mouseX && y == sh.mouseY {
		return
	}
	sh.mouseX, sh.mouseY = x, y
	sh.session.OnMouseMove(x, y)
}

func (sh *Shell) MouseClick(x, y int) {
	sh.session.OnMouseClick(x, y)
}

func (sh *Shell) Resize(width, height int) {
	if width == sh.width && height == sh.height {
		return
	}
	sh.width, sh.height = width, height
	if sh.session.Running() {
		if err := sh.session.Resize(width, height); err != nil {
			sh.log.Warn("resize failed", "err", err)
		}
	}
}

// Advance runs the ticks due after elapsed and returns the latest frame.
func (sh *Shell) Advance(elapsed time.Duration) sim.Frame {
	if sh.session.Done() {
		return sh.frame
	}
	for n := sh.clock.Advance(elapsed); n > 0; n-- {
		sh.session.Tick()
		if sh.session.RedrawDue() {
			sh.frame = sh.session.Render()
		}
	}
	return sh.frame
}

// Background is painted even when no frame has been rendered.
func (sh *Shell) Background() color.RGBA {
	return sh.session.Params().Background
}

func (sh *Shell) Status() string {
	return fmt.Sprintf("%s   distance %d   [S]tart  [X] stop  up/down distance",
		sh.session.Status(), sh.session.EdgeDistance())
}

func (sh *Shell) Size() (int, int) { return sh.width, sh.height }

// Backend opens a window around sh and blocks until it closes.
type Backend func(sh *Shell, title string) error

type Options struct {
	Backend  string
	Title    string
	Width    int
	Height   int
	Interval time.Duration
	Log      *slog.Logger
}

// Run builds a shell for s and hands it to the named backend. An empty
// name picks "raylib".
func Run(s *sim.Session, opts Options, backends map[string]Backend) error {
	name := opts.Backend
	if name == "" {
		name = "raylib"
	}
	run, ok := backends[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrUnknownBackend)
	}

	sh := NewShell(s, opts.Interval, opts.Width, opts.Height, opts.Log)
	sh.log.Info("opening window", "backend", name, "width", opts.Width, "height", opts.Height)
	return run(sh, opts.Title)
}
