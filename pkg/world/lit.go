package world

import (
	"fmt"

	"github.com/taigrr/diorama/pkg/geometry"
	"github.com/taigrr/diorama/pkg/math3d"
	"github.com/taigrr/diorama/pkg/scene"
)

// Marker colors.
var (
	LightMarkerColor = math3d.V4(1, 1, 0, 1)
	SpotMarkerColor  = math3d.V4(1, 0.5, 0, 1)
)

// markerScale is the size of the marker cubes.
const markerScale = 0.1

// ModelPosition is where the optional model stands, resting on the ground.
var ModelPosition = math3d.V3(0, 0.5, -1.5)

// LitOptions places the lit showcase.
type LitOptions struct {
	// Spot is the fixed position of the second marker.
	Spot math3d.Vec3
	// GroundSize is the edge length of the ground slab.
	GroundSize float64
	// Texture is the unit the showcase cube is textured with.
	Texture int
	// Model is an optional glTF file shown behind the cube and sphere,
	// textured like the cube.
	Model string
}

// DefaultLitOptions returns a 10 unit ground with the spot marker at
// (4, 2, 4).
func DefaultLitOptions() LitOptions {
	return LitOptions{Spot: math3d.V3(4, 2, 4), GroundSize: 10}
}

// Markers are the two small cubes that show where the lights are. They are
// kept out of the scene list and moved every frame.
type Markers struct {
	Light *scene.Cube
	Spot  *scene.Cube

	spot math3d.Vec3
}

func markerModel(pos math3d.Vec3) math3d.Mat4 {
	return math3d.Translate(pos).Mul(math3d.ScaleUniform(markerScale))
}

// Update moves the light marker to lightPos and resets the spot marker.
func (m *Markers) Update(lightPos math3d.Vec3) {
	m.Light.Model = markerModel(lightPos)
	m.Spot.Model = markerModel(m.spot)
}

// Drawables returns the markers in draw order.
func (m *Markers) Drawables() []scene.Drawable {
	return []scene.Drawable{m.Light, m.Spot}
}

// Lit builds the lit showcase: a ground slab, a textured cube, a sphere and
// the optional model, plus the light markers placed for lightPos.
func Lit(cache *geometry.Cache, opts LitOptions, lightPos math3d.Vec3) ([]scene.Drawable, *Markers, error) {
	if opts.GroundSize <= 0 {
		return nil, nil, fmt.Errorf("%w: ground size %v", ErrOptions, opts.GroundSize)
	}

	sphere, err := scene.NewSphere(cache, geometry.DefaultSlices, geometry.DefaultStacks,
		math3d.Translate(math3d.V3(1, 1, 0)), scene.Solid(math3d.V4(0.8, 0.4, 1, 1)))
	if err != nil {
		return nil, nil, fmt.Errorf("lit scene: %w", err)
	}

	g := opts.GroundSize
	objs := []scene.Drawable{
		scene.NewCube(cache,
			math3d.Translate(math3d.V3(0, -0.05, 0)).Mul(math3d.Scale(math3d.V3(g, 0.1, g))),
			scene.Solid(GroundColor)),
		scene.NewCube(cache, math3d.Translate(math3d.V3(-1, 0.5, 0)),
			scene.Textured(opts.Texture, 1, math3d.V4(1, 1, 1, 1))),
		sphere,
	}
	if opts.Model != "" {
		model, err := scene.NewModel(cache, opts.Model, math3d.Translate(ModelPosition),
			scene.Textured(opts.Texture, 1, math3d.V4(1, 1, 1, 1)))
		if err != nil {
			return nil, nil, fmt.Errorf("lit scene: %w", err)
		}
		objs = append(objs, model)
	}

	m := &Markers{
		Light: scene.NewCube(cache, math3d.Identity(), scene.Solid(LightMarkerColor)),
		Spot:  scene.NewCube(cache, math3d.Identity(), scene.Solid(SpotMarkerColor)),
		spot:  opts.Spot,
	}
	m.Update(lightPos)
	return objs, m, nil
}
