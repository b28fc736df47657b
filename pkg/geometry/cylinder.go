package geometry

import (
	"fmt"
	"math"

	"github.com/jmrtz/go-pathtracer/pkg/core"
)

// capEpsilon is the slack allowed past the cap planes when bounding
// wall hits axially, and the parallel-ray cutoff for cap planes.
const capEpsilon = 1e-8

// Cylinder represents a finite cylinder with a curved wall and two caps.
// The axis vector encodes both orientation and height: the cylinder
// extends half the axis length to each side of Center.
type Cylinder struct {
	Center   core.Vec3
	Radius   float64
	Axis     core.Vec3
	Material core.Material

	// Cached derived values
	axisHat core.Vec3 // unit axis direction
	height  float64   // |Axis|
}

// NewCylinder creates a new cylinder
func NewCylinder(center core.Vec3, radius float64, axis core.Vec3, material core.Material) (*Cylinder, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("cylinder radius must be positive, got %g", radius)
	}
	if axis.NearZero() {
		return nil, fmt.Errorf("cylinder axis cannot be the zero vector")
	}
	if material == nil {
		return nil, fmt.Errorf("cylinder material cannot be nil")
	}
	return &Cylinder{
		Center:   center,
		Radius:   radius,
		Axis:     axis,
		Material: material,
		axisHat:  axis.Normalize(),
		height:   axis.Length(),
	}, nil
}

// Hit tests the curved wall and both caps, keeping the nearest valid hit.
func (c *Cylinder) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var best *core.HitRecord
	closest := tMax

	if rec, ok := c.hitWall(ray, tMin, closest); ok {
		best = rec
		closest = rec.T
	}

	top := c.Center.Add(c.axisHat.Multiply(c.height / 2))
	if rec, ok := c.hitCap(ray, top, c.axisHat, tMin, closest); ok {
		best = rec
		closest = rec.T
	}

	bottom := c.Center.Subtract(c.axisHat.Multiply(c.height / 2))
	if rec, ok := c.hitCap(ray, bottom, c.axisHat.Negate(), tMin, closest); ok {
		best = rec
	}

	return best, best != nil
}

// hitWall intersects the infinite wall quadratic, then rejects hits
// whose axial coordinate falls outside the cap planes.
func (c *Cylinder) hitWall(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	rc := ray.Origin.Subtract(c.Center)
	rcPerp := rc.PerpendicularTo(c.axisHat)
	dirPerp := ray.Direction.PerpendicularTo(c.axisHat)

	// Quadratic in the plane perpendicular to the axis
	a := dirPerp.Dot(dirPerp)
	b := 2.0 * rcPerp.Dot(dirPerp)
	cc := rcPerp.Dot(rcPerp) - c.Radius*c.Radius

	// Ray parallel to the axis never crosses the wall
	if math.Abs(a) < core.Epsilon {
		return nil, false
	}

	discriminant := b*b - 4*a*cc
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)
	twoA := 2.0 * a
	effMin := effectiveMin(tMin)

	t := (-b - sqrtD) / twoA
	if t < effMin || t > tMax {
		t = (-b + sqrtD) / twoA
		if t < effMin || t > tMax {
			return nil, false
		}
	}

	point := ray.At(t)

	radialVec := point.Subtract(c.Center)
	axialComp := radialVec.Dot(c.axisHat)
	if math.Abs(axialComp) > c.height/2+capEpsilon {
		return nil, false
	}

	// Unit radial projection; degenerates if the hit sits on the axis
	radialProj := radialVec.Subtract(c.axisHat.Multiply(axialComp))
	if radialProj.LengthSquared() < core.Epsilon*core.Epsilon {
		return nil, false
	}

	rec := &core.HitRecord{
		T:        t,
		Point:    point,
		Material: c.Material,
	}
	rec.SetFaceNormal(ray, radialProj.Multiply(1.0/c.Radius))

	return rec, true
}

// hitCap intersects the circular cap in the plane through capCenter
// with the given outward normal.
func (c *Cylinder) hitCap(ray core.Ray, capCenter, capNormal core.Vec3, tMin, tMax float64) (*core.HitRecord, bool) {
	denom := ray.Direction.Dot(capNormal)
	if math.Abs(denom) < capEpsilon {
		return nil, false
	}

	t := capCenter.Subtract(ray.Origin).Dot(capNormal) / denom
	effMin := effectiveMin(tMin)
	if t < effMin || t > tMax {
		return nil, false
	}

	// In-plane radial distance from the cap center
	point := ray.At(t)
	vcp := point.Subtract(capCenter)
	axialComp := vcp.Dot(capNormal)
	radialVec := vcp.Subtract(capNormal.Multiply(axialComp))
	if radialVec.LengthSquared() > c.Radius*c.Radius {
		return nil, false
	}

	rec := &core.HitRecord{
		T:        t,
		Point:    point,
		Material: c.Material,
	}
	rec.SetFaceNormal(ray, capNormal)

	return rec, true
}
