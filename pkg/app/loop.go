package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/diorama/pkg/render"
	"github.com/taigrr/diorama/pkg/shader"
)

// maxFrameStep caps dt after stalls so animations do not jump.
const maxFrameStep = 0.1

// Options configures a Loop.
type Options struct {
	FPS    int
	HUD    bool
	Logger *slog.Logger
}

// Loop owns the software program and drives a Mode one frame at a time.
type Loop struct {
	opts     Options
	program  *render.Program
	contract *shader.Contract
	hud      *HUD
	input    translator
}

// NewLoop creates a loop sampling textures. textures may be nil.
func NewLoop(textures render.TextureSource, opts Options) (*Loop, error) {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	p := render.NewProgram(render.NewFramebuffer(1, 1), textures)
	c, err := shader.Bind(p)
	if err != nil {
		opts.Logger.Error("shader binding failed", "err", err)
		return nil, fmt.Errorf("bind program: %w", err)
	}
	return &Loop{opts: opts, program: p, contract: c, hud: NewHUD(opts.HUD)}, nil
}

// Program returns the backend the loop draws with.
func (l *Loop) Program() *render.Program {
	return l.program
}

// Resize sets the framebuffer size in pixels.
func (l *Loop) Resize(width, height int) {
	l.program.Resize(width, height)
}

// Frame renders m into the framebuffer: the area outside the letterboxed
// canvas is black, the canvas is cleared to the mode's background, and the
// pipeline is set up for flat or depth-tested drawing.
func (l *Loop) Frame(m Mode) {
	fb := l.program.Framebuffer()
	vp := Letterbox(fb.Width, fb.Height, m.Aspect())
	l.input.viewport = vp

	l.program.Clear(render.ColorBlack)
	fb.DrawRect(vp.Min.X, vp.Min.Y, vp.Dx(), vp.Dy(), m.Background())
	l.program.SetViewport(vp)

	r := l.program.Rasterizer()
	r.DepthTest = !m.Flat()
	r.Blend = m.Flat()
	m.Render(l.contract)
}

// Snapshot renders one frame of m at width x height and writes it to path
// as PNG or WebP.
func (l *Loop) Snapshot(m Mode, width, height int, path string) error {
	l.Resize(width, height)
	m.Update(0)
	l.Frame(m)
	if err := l.program.Framebuffer().Save(path); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	s := l.program.Stats
	l.opts.Logger.Info("snapshot written", "mode", m.Name(), "path", path,
		"draws", s.DrawCalls, "triangles", s.Triangles, "points", s.Points)
	return nil
}

// Run takes over the terminal and runs m until ctx is done or the user
// quits with Esc or Ctrl+C.
func (l *Loop) Run(ctx context.Context, m Mode) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Any-event mouse tracking with SGR coordinates.
	fmt.Fprint(os.Stdout, "\x1b[?1003h")
	fmt.Fprint(os.Stdout, "\x1b[?1006h")
	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	l.Resize(width, height*2)

	events := make(chan uv.Event, 64)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	log := l.opts.Logger
	log.Info("frame loop started", "mode", m.Name(), "fps", l.opts.FPS, "width", width, "height", height)
	defer log.Info("frame loop stopped", "mode", m.Name())

	ticker := time.NewTicker(time.Second / time.Duration(l.opts.FPS))
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				l.Resize(width, height*2)
				continue
			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape", "ctrl+c"):
					return nil
				case ev.MatchString("?", "shift+/"):
					l.hud.Toggle()
					continue
				}
			}
			if e, ok := l.input.translate(ev); ok {
				m.HandleEvent(e)
			}

		case now := <-ticker.C:
			dt := min(now.Sub(last).Seconds(), maxFrameStep)
			last = now

			m.Update(dt)
			l.Frame(m)
			area := uv.Rect(0, 0, width, height)
			l.program.Framebuffer().Draw(term, area)
			l.hud.Tick(now)
			l.hud.Draw(term, m)
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
