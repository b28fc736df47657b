package material

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/jmrtz/go-pathtracer/pkg/core"
)

// Refractive represents a clear dielectric that bends rays by Snell's
// law and falls back to mirror reflection past the critical angle.
type Refractive struct {
	RefractionIndex float64
}

// NewRefractive creates a new refractive material
func NewRefractive(refractionIndex float64) (*Refractive, error) {
	if refractionIndex < core.Epsilon {
		return nil, fmt.Errorf("refractive: refraction index must be positive, got %g", refractionIndex)
	}
	return &Refractive{RefractionIndex: refractionIndex}, nil
}

// Scatter implements the Material interface for refractive scattering
func (d *Refractive) Scatter(rayIn core.Ray, hit core.HitRecord, rng *rand.Rand) (core.ScatterResult, bool) {
	// Clear glass absorbs nothing
	attenuation := core.NewVec3(1, 1, 1)

	// Entering the material compresses the angle, exiting widens it
	refractionRatio := d.RefractionIndex
	if hit.FrontFace {
		refractionRatio = 1.0 / d.RefractionIndex
	}

	unitDirection := rayIn.Direction.Normalize()

	cosTheta := math.Min(unitDirection.Negate().Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	var direction core.Vec3
	if refractionRatio*sinTheta > 1.0 {
		// Total internal reflection
		direction = reflect(unitDirection, hit.Normal)
	} else {
		rOutPerp := unitDirection.Add(hit.Normal.Multiply(cosTheta)).Multiply(refractionRatio)
		parallelMagSq := math.Max(0, 1.0-rOutPerp.LengthSquared())
		rOutParallel := hit.Normal.Multiply(-math.Sqrt(parallelMagSq))
		direction = rOutPerp.Add(rOutParallel)
	}

	return core.ScatterResult{
		Scattered:   core.Ray{Origin: hit.Point, Direction: direction},
		Attenuation: attenuation,
	}, true
}
