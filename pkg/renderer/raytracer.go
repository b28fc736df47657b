package renderer

import (
	"math"
	"math/rand"

	"github.com/jmrtz/go-pathtracer/pkg/core"
	"github.com/jmrtz/go-pathtracer/pkg/geometry"
	"github.com/jmrtz/go-pathtracer/pkg/scene"
)

// Raytracer evaluates the radiance carried by a single ray
type Raytracer struct {
	scene           *scene.Scene
	backgroundDark  core.Vec3
	backgroundLight core.Vec3
}

// NewRaytracer creates a raytracer over a fixed scene and background
func NewRaytracer(scn *scene.Scene, backgroundDark, backgroundLight core.Vec3) *Raytracer {
	return &Raytracer{
		scene:           scn,
		backgroundDark:  backgroundDark,
		backgroundLight: backgroundLight,
	}
}

// RayColor traces a ray recursively until it escapes to the background,
// is absorbed, or the depth budget runs out
func (rt *Raytracer) RayColor(r core.Ray, depth int, rng *rand.Rand) core.Vec3 {
	if depth <= 0 {
		return core.NewVec3(0, 0, 0)
	}

	if hit, isHit := rt.scene.Hit(r, geometry.MinHitDistance, math.Inf(1)); isHit {
		scatter, didScatter := hit.Material.Scatter(r, *hit, rng)
		if !didScatter {
			return core.NewVec3(0, 0, 0)
		}
		return scatter.Attenuation.MultiplyVec(rt.RayColor(scatter.Scattered, depth-1, rng))
	}

	// Background gradient: the sky darkens upward
	unitDirection := r.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return rt.backgroundLight.Multiply(1.0 - t).Add(rt.backgroundDark.Multiply(t))
}
