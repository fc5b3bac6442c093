package world

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/taigrr/diorama/pkg/geometry"
	"github.com/taigrr/diorama/pkg/math3d"
	"github.com/taigrr/diorama/pkg/scene"
)

// ErrOptions is returned for unusable builder options.
var ErrOptions = errors.New("world: invalid options")

var (
	// GroundColor tints the ground plane.
	GroundColor = math3d.V4(0.2, 0.8, 0.2, 1)
	// SkyColor tints the inside of the sky cube.
	SkyColor = math3d.V4(0.53, 0.81, 0.98, 1)
)

// SkySize is the edge length of the sky box around the grid.
const SkySize = 1000

// GridOptions controls the procedural grid.
type GridOptions struct {
	// MapSize is the number of cells along each side.
	MapSize int
	// Tower heights are drawn from [0, MaxHeight).
	MaxHeight int
	// WallDensity is the probability that a cell with a non-zero height
	// gets a tower.
	WallDensity float64
	// Textures is the number of texture units towers pick from.
	Textures int
}

// DefaultGridOptions returns a 32x32 grid with towers up to 4 cubes high on
// half the eligible cells.
func DefaultGridOptions() GridOptions {
	return GridOptions{MapSize: 32, MaxHeight: 5, WallDensity: 0.5, Textures: 3}
}

// Validate checks the options.
func (o GridOptions) Validate() error {
	switch {
	case o.MapSize <= 0:
		return fmt.Errorf("%w: map size %d", ErrOptions, o.MapSize)
	case o.MaxHeight <= 0:
		return fmt.Errorf("%w: max height %d", ErrOptions, o.MaxHeight)
	case o.WallDensity < 0 || o.WallDensity > 1:
		return fmt.Errorf("%w: wall density %v outside [0, 1]", ErrOptions, o.WallDensity)
	case o.Textures <= 0:
		return fmt.Errorf("%w: %d textures", ErrOptions, o.Textures)
	}
	return nil
}

// NewRand returns the seedable source Grid draws from.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Grid builds a ground slab, a sky box and towers of textured unit cubes.
// For every cell a height h is drawn; if h > 0 and a density roll succeeds,
// h cubes are stacked there, all with one texture drawn for the tower. The
// same rng state always yields the same list.
func Grid(cache *geometry.Cache, opts GridOptions, rng *rand.Rand) ([]scene.Drawable, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	n := float64(opts.MapSize)
	out := []scene.Drawable{
		scene.NewCube(cache,
			math3d.Translate(math3d.V3(0, -0.05, 0)).Mul(math3d.Scale(math3d.V3(n, 0.1, n))),
			scene.Solid(GroundColor)),
		scene.NewCube(cache, math3d.ScaleUniform(SkySize), scene.Solid(SkyColor)),
	}

	white := math3d.V4(1, 1, 1, 1)
	for x := range opts.MapSize {
		for z := range opts.MapSize {
			h := rng.IntN(opts.MaxHeight)
			if h == 0 || rng.Float64() >= opts.WallDensity {
				continue
			}
			mat := scene.Textured(rng.IntN(opts.Textures), 1, white)
			for y := range h {
				pos := math3d.V3(float64(x)-n/2+0.5, float64(y)+0.5, float64(z)-n/2+0.5)
				out = append(out, scene.NewCube(cache, math3d.Translate(pos), mat))
			}
		}
	}
	return out, nil
}
