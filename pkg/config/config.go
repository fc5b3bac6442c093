// Package config loads the TOML configuration file and turns it into the
// options the other packages take.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/taigrr/diorama/pkg/math3d"
	"github.com/taigrr/diorama/pkg/render"
	"github.com/taigrr/diorama/pkg/scene"
	"github.com/taigrr/diorama/pkg/world"
)

// ErrInvalid is returned when a loaded configuration fails validation.
var ErrInvalid = errors.New("config: invalid")

// Config is the whole configuration file.
type Config struct {
	Camera   CameraConfig   `toml:"camera"`
	World    WorldConfig    `toml:"world"`
	Light    LightConfig    `toml:"light"`
	Textures TexturesConfig `toml:"textures"`
	Render   RenderConfig   `toml:"render"`
	Sketch   SketchConfig   `toml:"sketch"`
}

// CameraConfig places the camera and sets its speeds and projection.
type CameraConfig struct {
	Eye       [3]float64 `toml:"eye"`
	At        [3]float64 `toml:"at"`
	Up        [3]float64 `toml:"up"`
	Speed     float64    `toml:"speed"`
	TurnSpeed float64    `toml:"turn_speed"`
	FOV       float64    `toml:"fov"`
	Near      float64    `toml:"near"`
	Far       float64    `toml:"far"`
}

// WorldConfig sizes and seeds the generated maze world.
type WorldConfig struct {
	MapSize     int     `toml:"map_size"`
	MaxHeight   int     `toml:"max_height"`
	WallDensity float64 `toml:"wall_density"`
	Seed        uint64  `toml:"seed"`
}

// LightConfig describes the orbiting light of the lit scene.
type LightConfig struct {
	Radius       float64    `toml:"radius"`
	Height       float64    `toml:"height"`
	Color        [3]float64 `toml:"color"`
	OrbitSpeed   float64    `toml:"orbit_speed"`
	SpotPosition [3]float64 `toml:"spot_position"`
	// Model is an optional glTF or GLB mesh shown in the lit scene.
	Model string `toml:"model"`
}

// TexturesConfig lists the image files bound to texture units 0, 1, 2.
// Units without a file get a generated pattern.
type TexturesConfig struct {
	Paths   []string `toml:"paths"`
	MaxSize int      `toml:"max_size"`
	Watch   bool     `toml:"watch"`
}

// RenderConfig holds the frame rate and snapshot size.
type RenderConfig struct {
	FPS int `toml:"fps"`
	// Width and Height size headless snapshots, in pixels.
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// SketchConfig is the initial brush of the sketch mode.
type SketchConfig struct {
	Size     float64    `toml:"size"`
	Segments int        `toml:"segments"`
	Color    [4]float64 `toml:"color"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Camera: CameraConfig{
			Eye:       [3]float64{0, 2, 5},
			At:        [3]float64{0, 2, 0},
			Up:        [3]float64{0, 1, 0},
			Speed:     0.2,
			TurnSpeed: 0.2,
			FOV:       60,
			Near:      0.1,
			Far:       1000,
		},
		World: WorldConfig{MapSize: 32, MaxHeight: 5, WallDensity: 0.5, Seed: 1},
		Light: LightConfig{
			Radius:       3,
			Height:       2,
			Color:        [3]float64{1, 1, 1},
			OrbitSpeed:   0.01,
			SpotPosition: [3]float64{4, 2, 4},
		},
		Textures: TexturesConfig{MaxSize: 256},
		Render:   RenderConfig{FPS: 60, Width: 320, Height: 200},
		Sketch:   SketchConfig{Size: 10, Segments: 20, Color: [4]float64{1, 0, 0, 1}},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML from r over the defaults and validates the result.
// Unknown keys are errors.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", ErrInvalid, strict.String())
		}
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges the rest of the program relies on.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	cam := c.Camera
	check(cam.FOV > 0 && cam.FOV < 180, "camera.fov %v out of (0, 180)", cam.FOV)
	check(cam.Near > 0 && cam.Far > cam.Near, "camera near %v / far %v", cam.Near, cam.Far)
	check(cam.Speed > 0, "camera.speed %v", cam.Speed)
	check(cam.TurnSpeed > 0, "camera.turn_speed %v", cam.TurnSpeed)
	check(vec3(cam.Eye) != vec3(cam.At), "camera.eye equals camera.at")

	if err := c.GridOptions().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	}
	check(c.Light.Radius >= 0, "light.radius %v", c.Light.Radius)
	check(len(c.Textures.Paths) <= render.MaxTextureUnits,
		"%d texture paths for %d units", len(c.Textures.Paths), render.MaxTextureUnits)
	check(c.Textures.MaxSize >= 0, "textures.max_size %d", c.Textures.MaxSize)
	check(c.Render.FPS > 0 && c.Render.FPS <= 240, "render.fps %d out of [1, 240]", c.Render.FPS)
	check(c.Render.Width > 0 && c.Render.Height > 0, "render size %dx%d", c.Render.Width, c.Render.Height)
	check(c.Sketch.Size > 0, "sketch.size %v", c.Sketch.Size)
	check(c.Sketch.Segments >= 3, "sketch.segments %d below 3", c.Sketch.Segments)
	return errors.Join(errs...)
}

func vec3(a [3]float64) math3d.Vec3 {
	return math3d.V3(a[0], a[1], a[2])
}

// CameraOptions returns the camera settings for a view of the given aspect.
func (c *Config) CameraOptions(aspect float64) render.CameraOptions {
	return render.CameraOptions{
		Eye:       vec3(c.Camera.Eye),
		At:        vec3(c.Camera.At),
		Up:        vec3(c.Camera.Up),
		Speed:     c.Camera.Speed,
		TurnSpeed: c.Camera.TurnSpeed,
		FOV:       c.Camera.FOV,
		Aspect:    aspect,
		Near:      c.Camera.Near,
		Far:       c.Camera.Far,
	}
}

// GridOptions returns the world grid settings.
func (c *Config) GridOptions() world.GridOptions {
	return world.GridOptions{
		MapSize:     c.World.MapSize,
		MaxHeight:   c.World.MaxHeight,
		WallDensity: c.World.WallDensity,
		Textures:    render.MaxTextureUnits,
	}
}

// LitOptions returns the lit scene settings.
func (c *Config) LitOptions() world.LitOptions {
	opts := world.DefaultLitOptions()
	opts.Spot = vec3(c.Light.SpotPosition)
	opts.Model = c.Light.Model
	return opts
}

// NewLight returns the configured light at angle 0.
func (c *Config) NewLight() *scene.Light {
	l := scene.DefaultLight()
	l.Color = vec3(c.Light.Color)
	l.Radius = c.Light.Radius
	l.Height = c.Light.Height
	l.OrbitSpeed = c.Light.OrbitSpeed
	return l
}

// Brush returns the initial sketch brush.
func (c *Config) Brush() scene.Brush {
	b := scene.DefaultBrush()
	b.Size = c.Sketch.Size
	b.Segments = c.Sketch.Segments
	s := c.Sketch.Color
	b.Color = math3d.V4(s[0], s[1], s[2], s[3])
	return b
}
