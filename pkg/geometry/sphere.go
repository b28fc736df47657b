package geometry

import (
	"fmt"
	"math"

	"github.com/jmrtz/go-pathtracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material core.Material

	invRadius float64 // cached for normal scaling
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material core.Material) (*Sphere, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("sphere radius must be positive, got %g", radius)
	}
	if material == nil {
		return nil, fmt.Errorf("sphere material cannot be nil")
	}
	return &Sphere{
		Center:    center,
		Radius:    radius,
		Material:  material,
		invRadius: 1.0 / radius,
	}, nil
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	// Vector from ray origin to sphere center
	oc := s.Center.Subtract(ray.Origin)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := -2.0 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil, false
	}

	// Find the nearest root within the valid range
	sqrtD := math.Sqrt(discriminant)
	twoA := 2.0 * a
	effMin := effectiveMin(tMin)

	root := (-b - sqrtD) / twoA
	if root < effMin || root > tMax {
		root = (-b + sqrtD) / twoA
		if root < effMin || root > tMax {
			return nil, false
		}
	}

	hitRecord := &core.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	// Outward normal runs from center to hit point
	outwardNormal := hitRecord.Point.Subtract(s.Center).Multiply(s.invRadius)
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}
