package scene

import (
	"fmt"

	"github.com/jmrtz/go-pathtracer/pkg/core"
)

// Scene holds the named materials and the objects that reference them.
type Scene struct {
	materials map[string]core.Material
	Objects   []core.Hittable
}

// NewScene creates an empty scene
func NewScene() *Scene {
	return &Scene{
		materials: make(map[string]core.Material),
	}
}

// AddMaterial registers a material under a unique name
func (s *Scene) AddMaterial(name string, material core.Material) error {
	if material == nil {
		return fmt.Errorf("scene: material %q is nil", name)
	}
	if _, exists := s.materials[name]; exists {
		return fmt.Errorf("material with name [%s] already exists", name)
	}
	s.materials[name] = material
	return nil
}

// GetMaterial looks up a previously registered material
func (s *Scene) GetMaterial(name string) (core.Material, error) {
	material, ok := s.materials[name]
	if !ok {
		return nil, fmt.Errorf("material not found [%s]", name)
	}
	return material, nil
}

// AddObject appends an object to the scene
func (s *Scene) AddObject(object core.Hittable) {
	s.Objects = append(s.Objects, object)
}

// Hit finds the closest intersection along the ray within [tMin, tMax].
// Each hit shrinks the search interval for the objects that follow.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, object := range s.Objects {
		if hit, isHit := object.Hit(ray, tMin, closestSoFar); isHit {
			closestHit = hit
			closestSoFar = hit.T
		}
	}

	return closestHit, closestHit != nil
}
