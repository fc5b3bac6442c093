// Package world builds the scenes: the fixed 2D diorama, the procedural
// tower grid and the lit showcase.
package world

import (
	"github.com/taigrr/diorama/pkg/math3d"
	"github.com/taigrr/diorama/pkg/scene"
)

// Diorama colors. Alpha comes from the caller.
var (
	skyRGB      = math3d.V3(0.53, 0.81, 0.98)
	groundRGB   = math3d.V3(0.45, 0.7, 0.3)
	trunkRGB    = math3d.V3(0.55, 0.27, 0.07)
	leafRGB     = math3d.V3(0, 0.6, 0)
	mountainRGB = math3d.V3(0.5, 0.5, 0.5)
	sunRGB      = math3d.V3(1, 0.8, 0)
	houseRGB    = math3d.V3(0.7, 0.3, 0.3)
	roofRGB     = math3d.V3(0.5, 0, 0)
)

// horizon is the canvas height where the ground meets the sky.
const horizon = -0.2

// Diorama returns the fixed picture: sky, ground, two trees, three
// mountains, a sun and a house, back to front. Every color uses alpha.
func Diorama(alpha float64) []scene.Drawable {
	rgba := func(c math3d.Vec3) math3d.Vec4 { return math3d.V4FromV3(c, alpha) }
	tri := func(x, y, size float64, c math3d.Vec3) scene.Drawable {
		return scene.MustTriangle(math3d.V2(x, y), size, rgba(c))
	}

	// The backdrop triangles are large enough that their straight edge
	// spans the canvas and meets at the horizon.
	const backdrop = 520
	half := backdrop / 200.0
	out := []scene.Drawable{
		tri(0, horizon+half, backdrop, skyRGB),
		tri(0, horizon-half, -backdrop, groundRGB),
	}

	const size = 30
	for _, x := range []float64{-0.5, 0.5} {
		y := -0.3
		out = append(out,
			tri(x, y-0.15, size, trunkRGB),
			tri(x, y, size, leafRGB),
			tri(x, y+0.1, size*1.2, leafRGB),
			tri(x, y+0.22, size*1.4, leafRGB),
			tri(x, y+0.30, size*1.5, leafRGB),
		)
	}

	out = append(out,
		tri(-0.3, 0.6, 70, mountainRGB),
		tri(-0.8, 0.6, 60, mountainRGB),
		tri(0.2, 0.6, 50, mountainRGB),
	)

	out = append(out,
		tri(0.75, 0.65, 25, sunRGB),
		tri(0.75, 0.75, 25, sunRGB),
		tri(0.65, 0.7, 25, sunRGB),
		tri(0.75, 0.8, 25, sunRGB),
	)

	// The base is one triangle and its mirror; the roof sits above.
	out = append(out,
		tri(0, -0.5, 30, houseRGB),
		tri(0, -0.5, -30, houseRGB),
		tri(0, -0.3, 40, roofRGB),
	)
	return out
}
