package material

import (
	"fmt"
	"math/rand"

	"github.com/jmrtz/go-pathtracer/pkg/core"
)

// Metal represents a glossy material with specular reflection.
// Fuzz perturbs the mirror direction; 0 is a perfect mirror.
type Metal struct {
	Reflectance core.Vec3
	Fuzz        float64
}

// NewMetal creates a new metal material
func NewMetal(reflectance core.Vec3, fuzz float64) (*Metal, error) {
	if err := validateReflectance(reflectance); err != nil {
		return nil, fmt.Errorf("metal: %v", err)
	}
	if fuzz < 0 {
		return nil, fmt.Errorf("metal: fuzz must be non-negative, got %g", fuzz)
	}
	return &Metal{Reflectance: reflectance, Fuzz: fuzz}, nil
}

// Scatter implements the Material interface for metal scattering.
// Large fuzz can push the scattered ray below the surface; such rays
// are kept rather than absorbed.
func (m *Metal) Scatter(rayIn core.Ray, hit core.HitRecord, rng *rand.Rand) (core.ScatterResult, bool) {
	reflected := reflect(rayIn.Direction, hit.Normal)

	scatterDirection := reflected.Normalize().Add(randomFuzz(rng, m.Fuzz))

	return core.ScatterResult{
		Scattered:   core.Ray{Origin: hit.Point, Direction: scatterDirection},
		Attenuation: m.Reflectance,
	}, true
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// randomFuzz draws each component independently from Uniform(-fuzz, fuzz)
func randomFuzz(rng *rand.Rand, fuzz float64) core.Vec3 {
	return core.Vec3{
		X: (2*rng.Float64() - 1) * fuzz,
		Y: (2*rng.Float64() - 1) * fuzz,
		Z: (2*rng.Float64() - 1) * fuzz,
	}
}
