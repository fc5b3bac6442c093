// diorama renders small graphics programs in the terminal with a software
// rasterizer: a 2D sketch pad, a fixed picture, an articulated animal, a
// walkable block world, a lit showcase and a vector lab.
//
// Controls common to every mode:
//
//	?          - Toggle HUD
//	Esc/Ctrl+C - Quit
//
// Pass --snapshot to render a single frame to a PNG or WebP file instead.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/diorama/pkg/app"
	"github.com/taigrr/diorama/pkg/assets"
	"github.com/taigrr/diorama/pkg/config"
	"github.com/taigrr/diorama/pkg/geometry"
	"github.com/taigrr/diorama/pkg/math3d"
	"github.com/taigrr/diorama/pkg/render"
)

var version = "dev"

// textureWait bounds how long a snapshot waits for texture files.
const textureWait = 10 * time.Second

type flags struct {
	config   string
	log      string
	snapshot string
	fps      int
	width    int
	height   int
	hud      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:   "diorama",
		Short: "Terminal graphics playground",
		Long: "diorama draws 2D shapes and 3D scenes with a software rasterizer " +
			"and shows them in the terminal with half-block characters.",
		SilenceUsage: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&f.config, "config", "", "TOML configuration file")
	pf.StringVar(&f.log, "log", "", "write logs to this file")
	pf.StringVar(&f.snapshot, "snapshot", "", "render one frame to this .png or .webp file and exit")
	pf.IntVar(&f.fps, "fps", 0, "target frames per second (default from config)")
	pf.IntVar(&f.width, "width", 0, "snapshot width in pixels (default from config)")
	pf.IntVar(&f.height, "height", 0, "snapshot height in pixels (default from config)")
	pf.BoolVar(&f.hud, "hud", false, "show the HUD at start")

	root.AddCommand(
		modeCmd(f, "sketch", "Paint points, triangles and discs with the mouse",
			func(e *env) (app.Mode, error) { return app.NewSketch(e.cfg.Brush(), e.log), nil }),
		modeCmd(f, "picture", "Show the fixed triangle picture",
			func(*env) (app.Mode, error) { return app.NewPicture(), nil }),
		modeCmd(f, "animal", "Pose and animate the blocky quadruped",
			func(e *env) (app.Mode, error) { return app.NewAnimal(e.cache, e.cfg.Render.FPS) }),
		modeCmd(f, "world", "Walk the procedural tower grid",
			func(e *env) (app.Mode, error) { return app.NewWorld(e.cache, e.cfg, e.log) }),
		modeCmd(f, "lit", "Orbit a point light around a cube and a sphere",
			func(e *env) (app.Mode, error) { return app.NewLit(e.cache, e.cfg) }),
		vecCmd(f),
	)
	return root
}

// env is what every mode is built from.
type env struct {
	cfg   *config.Config
	log   *slog.Logger
	cache *geometry.Cache
	units *assets.Units
}

func newLogger(path string, headless bool) (*slog.Logger, io.Closer, error) {
	var w io.Writer = io.Discard
	var closer io.Closer = io.NopCloser(nil)
	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log: %w", err)
		}
		w, closer = f, f
	case headless:
		// The terminal is not taken over, so stderr is free.
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})), closer, nil
}

// loadConfig reads the config file and applies flag overrides.
func (f *flags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(f.config)
	if err != nil {
		return nil, err
	}
	pf := cmd.Flags()
	if pf.Changed("fps") {
		cfg.Render.FPS = f.fps
	}
	if pf.Changed("width") {
		cfg.Render.Width = f.width
	}
	if pf.Changed("height") {
		cfg.Render.Height = f.height
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func modeCmd(f *flags, name, short string, build func(*env) (app.Mode, error)) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMode(cmd, f, build)
		},
	}
}

func runMode(cmd *cobra.Command, f *flags, build func(*env) (app.Mode, error)) error {
	ctx := cmd.Context()
	log, closeLog, err := newLogger(f.log, f.snapshot != "")
	if err != nil {
		return err
	}
	defer closeLog.Close()
	slog.SetDefault(log)

	cfg, err := f.loadConfig(cmd)
	if err != nil {
		return err
	}
	log.Info("config loaded", "path", f.config, "fps", cfg.Render.FPS, "textures", len(cfg.Textures.Paths))

	cache, err := geometry.NewCache()
	if err != nil {
		return err
	}
	units := assets.NewUnits(assets.Options{MaxSize: cfg.Textures.MaxSize, Logger: log})

	e := &env{cfg: cfg, log: log, cache: cache, units: units}
	mode, err := build(e)
	if err != nil {
		return err
	}
	loop, err := app.NewLoop(units, app.Options{FPS: cfg.Render.FPS, HUD: f.hud, Logger: log})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	watcher, err := app.Textures(ctx, units, cfg.Textures)
	if err != nil {
		return err
	}

	if f.snapshot != "" {
		if watcher != nil {
			watcher.Close()
		}
		wctx, done := context.WithTimeout(ctx, textureWait)
		defer done()
		if err := units.Wait(wctx); err != nil {
			log.Warn("textures not loaded", "err", err)
		}
		return loop.Snapshot(mode, cfg.Render.Width, cfg.Render.Height, f.snapshot)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return loop.Run(gctx, mode)
	})
	if watcher != nil {
		g.Go(func() error {
			return watcher.Run(gctx, nil)
		})
	}
	return g.Wait()
}

func vec2(name string, v []float64) (math3d.Vec2, error) {
	if len(v) != 2 {
		return math3d.Vec2{}, fmt.Errorf("--%s: want 2 components, got %d", name, len(v))
	}
	return math3d.V2(v[0], v[1]), nil
}

func vecCmd(f *flags) *cobra.Command {
	var v1, v2 []float64
	var op string
	var scalar float64
	cmd := &cobra.Command{
		Use:   "vec",
		Short: "Apply a vector operation to two 2D vectors",
		Long: "vec prints the result of an operation on two 2D vectors. " +
			"With --snapshot it also draws them: v1 red, v2 blue, results green.\n\n" +
			"Operations: " + strings.Join(app.VectorOps, ", "),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := vec2("v1", v1)
			if err != nil {
				return err
			}
			b, err := vec2("v2", v2)
			if err != nil {
				return err
			}
			res, err := app.VectorLab(op, a, b, scalar)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Text)
			if f.snapshot == "" {
				return nil
			}
			w, h := f.width, f.height
			if w <= 0 || h <= 0 {
				w, h = app.ReferenceCanvas, app.ReferenceCanvas
			}
			fb := render.NewFramebuffer(w, h)
			res.Draw(fb)
			return fb.Save(f.snapshot)
		},
	}
	cmd.Flags().Float64SliceVar(&v1, "v1", []float64{2.25, 2.25}, "first vector as x,y")
	cmd.Flags().Float64SliceVar(&v2, "v2", []float64{1.5, 0.5}, "second vector as x,y")
	cmd.Flags().StringVar(&op, "op", "add", "operation")
	cmd.Flags().Float64Var(&scalar, "scalar", 1, "scalar for mul and div")
	return cmd
}

