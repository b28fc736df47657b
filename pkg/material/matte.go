package material

import (
	"fmt"
	"math/rand"

	"github.com/jmrtz/go-pathtracer/pkg/core"
)

// Matte represents a diffuse material that scatters in a random
// direction around the surface normal.
type Matte struct {
	Reflectance core.Vec3
}

// NewMatte creates a new matte material
func NewMatte(reflectance core.Vec3) (*Matte, error) {
	if err := validateReflectance(reflectance); err != nil {
		return nil, fmt.Errorf("matte: %v", err)
	}
	return &Matte{Reflectance: reflectance}, nil
}

// Scatter implements the Material interface for matte scattering
func (m *Matte) Scatter(rayIn core.Ray, hit core.HitRecord, rng *rand.Rand) (core.ScatterResult, bool) {
	scatterDirection := hit.Normal.Add(randomComponents(rng))

	// A jitter that cancels the normal leaves a degenerate direction
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return core.ScatterResult{
		Scattered:   core.Ray{Origin: hit.Point, Direction: scatterDirection},
		Attenuation: m.Reflectance,
	}, true
}

// randomComponents draws each component independently from Uniform(-1, 1)
func randomComponents(rng *rand.Rand) core.Vec3 {
	return core.Vec3{
		X: 2*rng.Float64() - 1,
		Y: 2*rng.Float64() - 1,
		Z: 2*rng.Float64() - 1,
	}
}

// validateReflectance checks that every channel lies in [0, 1]
func validateReflectance(refl core.Vec3) error {
	if refl.X < 0 || refl.X > 1 || refl.Y < 0 || refl.Y > 1 || refl.Z < 0 || refl.Z > 1 {
		return fmt.Errorf("reflectance components must be in range [0, 1], got %v", refl)
	}
	return nil
}
