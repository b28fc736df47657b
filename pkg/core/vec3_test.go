package core

import (
	"math"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		result   Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"Divide", a.Divide(2), NewVec3(0.5, 1, 1.5)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"Cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const tolerance = 1e-12
			if tt.result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, tt.result)
			}
		})
	}
}

func TestVec3_DotAndLength(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	if got := a.Dot(b); got != 12 {
		t.Errorf("Expected dot product 12, got %f", got)
	}
	if got := a.LengthSquared(); got != 14 {
		t.Errorf("Expected squared length 14, got %f", got)
	}
	if got := a.Length(); math.Abs(got-math.Sqrt(14)) > 1e-12 {
		t.Errorf("Expected length sqrt(14), got %f", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name   string
		vector Vec3
	}{
		{"unit axis", NewVec3(1, 0, 0)},
		{"arbitrary", NewVec3(3, -4, 12)},
		{"tiny but not near-zero", NewVec3(1e-6, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized := tt.vector.Normalize()
			if math.Abs(normalized.Length()-1.0) > 1e-9 {
				t.Errorf("Expected unit length, got %f", normalized.Length())
			}
			// Direction must be preserved
			if normalized.Cross(tt.vector).Length() > 1e-9*tt.vector.Length() {
				t.Errorf("Normalize changed direction: %v -> %v", tt.vector, normalized)
			}
		})
	}
}

func TestVec3_NearZero(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected bool
	}{
		{"zero vector", NewVec3(0, 0, 0), true},
		{"below epsilon", NewVec3(1e-9, -1e-9, 1e-9), true},
		{"one component above epsilon", NewVec3(1e-9, 1e-7, 0), false},
		{"ordinary vector", NewVec3(1, 2, 3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vector.NearZero(); got != tt.expected {
				t.Errorf("NearZero(%v) = %t, want %t", tt.vector, got, tt.expected)
			}
		})
	}
}

func TestVec3_PerpendicularTo(t *testing.T) {
	axis := NewVec3(0, 1, 0)
	v := NewVec3(3, 5, -2)

	perp := v.PerpendicularTo(axis)

	expected := NewVec3(3, 0, -2)
	if perp.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, perp)
	}
	if math.Abs(perp.Dot(axis)) > 1e-12 {
		t.Errorf("Result not perpendicular to axis: dot = %f", perp.Dot(axis))
	}
}

func TestVec3_Clamp(t *testing.T) {
	v := NewVec3(-0.5, 0.5, 1.5)
	clamped := v.Clamp(0, 1)
	expected := NewVec3(0, 0.5, 1)
	if clamped != expected {
		t.Errorf("Expected %v, got %v", expected, clamped)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, 2))

	tests := []struct {
		t        float64
		expected Vec3
	}{
		{0, NewVec3(1, 2, 3)},
		{1, NewVec3(1, 2, 5)},
		{2.5, NewVec3(1, 2, 8)},
		{-1, NewVec3(1, 2, 1)},
	}

	for _, tt := range tests {
		if got := ray.At(tt.t); got != tt.expected {
			t.Errorf("At(%f) = %v, want %v", tt.t, got, tt.expected)
		}
	}
}

func TestHitRecord_SetFaceNormal(t *testing.T) {
	outward := NewVec3(0, 0, 1)

	var rec HitRecord
	rec.SetFaceNormal(NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), outward)
	if !rec.FrontFace || rec.Normal != outward {
		t.Errorf("Expected front face with normal %v, got front=%t normal=%v", outward, rec.FrontFace, rec.Normal)
	}

	rec = HitRecord{}
	rec.SetFaceNormal(NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), outward)
	if rec.FrontFace || rec.Normal != outward.Negate() {
		t.Errorf("Expected back face with flipped normal, got front=%t normal=%v", rec.FrontFace, rec.Normal)
	}
}
