package renderer

import (
	"fmt"
	"math"

	"github.com/jmrtz/go-pathtracer/pkg/core"
	"github.com/jmrtz/go-pathtracer/pkg/loaders"
)

// Camera generates primary rays from normalised screen coordinates.
// The viewport sits at the target distance, so the field of view is
// measured at the focal plane.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera derives the viewport basis from the configuration
func NewCamera(cfg *loaders.Config) (*Camera, error) {
	imageHeight := cfg.ImageHeight()
	if imageHeight <= 0 {
		return nil, fmt.Errorf("camera: derived image height must be positive, got %d", imageHeight)
	}

	focal := cfg.CameraPosition.Subtract(cfg.CameraTarget)
	if focal.NearZero() {
		return nil, fmt.Errorf("camera: position and target coincide")
	}
	focalLength := focal.Length()
	w := focal.Multiply(1.0 / focalLength)

	uRaw := cfg.CameraNorth.Cross(w)
	if uRaw.NearZero() {
		return nil, fmt.Errorf("camera: north vector is parallel to the view direction")
	}
	u := uRaw.Normalize()
	v := w.Cross(u)

	theta := cfg.FieldOfView * math.Pi / 180.0
	viewportHeight := 2.0 * math.Tan(theta/2.0) * focalLength
	viewportWidth := cfg.AspectRatio() * viewportHeight

	horizontal := u.Multiply(viewportWidth)
	// Negated so that v grows downward, matching the row order of the image
	vertical := v.Multiply(-viewportHeight)

	// Half-pixel offset centres samples inside their pixels
	deltaU := horizontal.Multiply(1.0 / float64(cfg.ImageWidth))
	deltaV := vertical.Multiply(1.0 / float64(imageHeight))

	lowerLeftCorner := cfg.CameraPosition.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focalLength)).
		Add(deltaU.Multiply(0.5)).
		Add(deltaV.Multiply(0.5))

	return &Camera{
		origin:          cfg.CameraPosition,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
	}, nil
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1.
// The direction is intentionally left unnormalised.
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}
