package renderer

import (
	"math"
	"testing"

	"github.com/jmrtz/go-pathtracer/pkg/core"
	"github.com/jmrtz/go-pathtracer/pkg/loaders"
)

// squareConfig is a 2x2 image with a 90 degree fov looking down -z from
// the origin at unit distance, chosen so every camera quantity is exact
func squareConfig() loaders.Config {
	cfg := loaders.DefaultConfig()
	cfg.AspectWidth = 1
	cfg.AspectHeight = 1
	cfg.ImageWidth = 2
	cfg.CameraPosition = core.NewVec3(0, 0, 0)
	cfg.CameraTarget = core.NewVec3(0, 0, -1)
	return cfg
}

func TestNewCamera_Validation(t *testing.T) {
	t.Run("position equals target", func(t *testing.T) {
		cfg := loaders.DefaultConfig()
		cfg.CameraPosition = core.NewVec3(1, 2, 3)
		cfg.CameraTarget = core.NewVec3(1, 2, 3)
		if _, err := NewCamera(&cfg); err == nil {
			t.Error("Expected error for coincident position and target")
		}
	})

	t.Run("north parallel to view", func(t *testing.T) {
		cfg := loaders.DefaultConfig()
		cfg.CameraNorth = core.NewVec3(0, 0, 1) // view direction is -z
		if _, err := NewCamera(&cfg); err == nil {
			t.Error("Expected error for north parallel to the view direction")
		}
	})

	t.Run("zero image height", func(t *testing.T) {
		cfg := loaders.DefaultConfig()
		cfg.ImageWidth = 1
		cfg.AspectWidth = 16
		cfg.AspectHeight = 9
		if _, err := NewCamera(&cfg); err == nil {
			t.Error("Expected error for zero derived height")
		}
	})
}

func TestCamera_GetRay_PixelCenters(t *testing.T) {
	cfg := squareConfig()
	camera, err := NewCamera(&cfg)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}

	// With the half-pixel offset, the centre of the top-left pixel of a
	// 2x2 image maps straight down the view axis shifted by half the
	// viewport: u=v=0.25 lands exactly on (0, 0, -1)
	ray := camera.GetRay(0.25, 0.25)
	if ray.Origin != cfg.CameraPosition {
		t.Errorf("Ray origin must be the camera position, got %v", ray.Origin)
	}
	expected := core.NewVec3(0, 0, -1)
	if ray.Direction.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected direction %v, got %v", expected, ray.Direction)
	}
}

func TestCamera_GetRay_Corners(t *testing.T) {
	cfg := squareConfig()
	camera, err := NewCamera(&cfg)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}

	tests := []struct {
		name     string
		u, v     float64
		expected core.Vec3
	}{
		{"lower left corner", 0, 0, core.NewVec3(-0.5, 0.5, -1)},
		{"upper right corner", 1, 1, core.NewVec3(1.5, -1.5, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.u, tt.v)
			if ray.Direction.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected direction %v, got %v", tt.expected, ray.Direction)
			}
		})
	}
}

func TestCamera_VerticalFlip(t *testing.T) {
	cfg := squareConfig()
	camera, err := NewCamera(&cfg)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}

	// Growing v must move the ray downward in world space, so row 0 is
	// the top of the image
	top := camera.GetRay(0.5, 0.0)
	bottom := camera.GetRay(0.5, 1.0)
	if top.Direction.Y <= bottom.Direction.Y {
		t.Errorf("Expected v to grow downward: top y=%f, bottom y=%f",
			top.Direction.Y, bottom.Direction.Y)
	}
}

func TestCamera_FieldOfView(t *testing.T) {
	// Doubling the focal distance scales the viewport with it, so the
	// angular extent of the image stays fixed by the fov
	cfg := squareConfig()
	cfg.CameraTarget = core.NewVec3(0, 0, -2)
	camera, err := NewCamera(&cfg)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}

	ray := camera.GetRay(0.25, 0.25)
	expected := core.NewVec3(0, 0, -2)
	if ray.Direction.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected direction %v, got %v", expected, ray.Direction)
	}

	// Half of a 90 degree fov spans 45 degrees from the axis. The
	// half-pixel shift places the viewport bottom edge at v=0.75 for a
	// 2-pixel-high image.
	edge := camera.GetRay(0.25, 0.75)
	angle := math.Atan2(-edge.Direction.Y, -edge.Direction.Z)
	if math.Abs(angle-math.Pi/4) > 1e-9 {
		t.Errorf("Expected 45 degree half-angle, got %f rad", angle)
	}
}
