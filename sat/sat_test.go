package sat

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// Test helper functions

func square(center mgl64.Vec2, half float64) []mgl64.Vec2 {
	return []mgl64.Vec2{
		center.Add(mgl64.Vec2{-half, -half}),
		center.Add(mgl64.Vec2{half, -half}),
		center.Add(mgl64.Vec2{half, half}),
		center.Add(mgl64.Vec2{-half, half}),
	}
}

func triangle(apex mgl64.Vec2) []mgl64.Vec2 {
	return []mgl64.Vec2{
		apex.Add(mgl64.Vec2{-22, 34}),
		apex.Add(mgl64.Vec2{22, 34}),
		apex,
	}
}

// Axes tests

func TestAxes(t *testing.T) {
	axes := Axes(square(mgl64.Vec2{0, 0}, 1))
	if len(axes) != 4 {
		t.Fatalf("Expected 4 axes, got %d", len(axes))
	}
	for i, axis := range axes {
		if math.Abs(axis.Len()-1) > 1e-12 {
			t.Errorf("Axis %d is not normalized: %v", i, axis)
		}
	}

	degenerate := []mgl64.Vec2{{0, 0}, {0, 0}, {1, 1}}
	if got := len(Axes(degenerate)); got != 2 {
		t.Errorf("Expected zero-length edge to be skipped, got %d axes", got)
	}
}

// Intersects tests

func TestIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []mgl64.Vec2
		expected bool
	}{
		{
			name:     "overlapping squares",
			a:        square(mgl64.Vec2{0, 0}, 16),
			b:        square(mgl64.Vec2{20, 10}, 16),
			expected: true,
		},
		{
			name:     "separated on x",
			a:        square(mgl64.Vec2{0, 0}, 16),
			b:        square(mgl64.Vec2{40, 0}, 16),
			expected: false,
		},
		{
			name:     "touching edges",
			a:        square(mgl64.Vec2{0, 0}, 16),
			b:        square(mgl64.Vec2{0, 32}, 16),
			expected: true,
		},
		{
			name:     "square beside triangle slope",
			a:        square(mgl64.Vec2{30, 10}, 8),
			b:        triangle(mgl64.Vec2{0, 0}),
			expected: false,
		},
		{
			name:     "square on triangle apex",
			a:        square(mgl64.Vec2{0, -15}, 16),
			b:        triangle(mgl64.Vec2{0, 0}),
			expected: true,
		},
		{
			name:     "empty polygon",
			a:        nil,
			b:        square(mgl64.Vec2{0, 0}, 1),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Intersects(tt.a, tt.b); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
			if got := Intersects(tt.b, tt.a); got != tt.expected {
				t.Errorf("Expected %v (symmetry), got %v", tt.expected, got)
			}
		})
	}
}

func TestIntersectsWithSlop(t *testing.T) {
	a := square(mgl64.Vec2{0, 0}, 16)

	tests := []struct {
		name     string
		b        []mgl64.Vec2
		expected bool
	}{
		{"flush contact is separated", square(mgl64.Vec2{0, 32}, 16), false},
		{"shallow sink is separated", square(mgl64.Vec2{0, 31.8}, 16), false},
		{"deep sink intersects", square(mgl64.Vec2{0, 30}, 16), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntersectsWithSlop(a, tt.b, 0.5); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// Overlap tests

func TestOverlap(t *testing.T) {
	a := square(mgl64.Vec2{0, 0}, 16)
	b := square(mgl64.Vec2{0, 28}, 16)

	penetration, ok := Overlap(a, b)
	if !ok {
		t.Fatalf("Expected overlap")
	}
	if math.Abs(penetration.Depth-4) > 1e-9 {
		t.Errorf("Expected depth 4, got %v", penetration.Depth)
	}
	if !penetration.Normal.ApproxEqualThreshold(mgl64.Vec2{0, 1}, 1e-9) {
		t.Errorf("Expected normal pointing from a to b {0, 1}, got %v", penetration.Normal)
	}

	if _, ok := Overlap(a, square(mgl64.Vec2{100, 0}, 16)); ok {
		t.Errorf("Expected no overlap for separated squares")
	}
}

func TestOverlapSideContact(t *testing.T) {
	a := square(mgl64.Vec2{0, 0}, 16)
	b := square(mgl64.Vec2{-30, 4}, 16)

	penetration, ok := Overlap(a, b)
	if !ok {
		t.Fatalf("Expected overlap")
	}
	if math.Abs(penetration.Depth-2) > 1e-9 {
		t.Errorf("Expected depth 2, got %v", penetration.Depth)
	}
	if penetration.Normal.X() > -0.99 {
		t.Errorf("Expected a horizontal normal toward b, got %v", penetration.Normal)
	}
}
