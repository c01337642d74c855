package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

// ComputeAABB returns the bounds of a point set. An empty set gives a zero box.
func ComputeAABB(points []mgl64.Vec2) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]
	for _, p := range points[1:] {
		min[0] = math.Min(min[0], p[0])
		min[1] = math.Min(min[1], p[1])
		max[0] = math.Max(max[0], p[0])
		max[1] = math.Max(max[1], p[1])
	}

	return AABB{Min: min, Max: max}
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec2) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y()
}

// Overlaps checks if two AABBs overlap. Touching edges count as overlapping.
func (a AABB) Overlaps(other AABB) bool {
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y()
}

// OverlapX returns how far the two boxes share the horizontal axis (0 when disjoint)
func (a AABB) OverlapX(other AABB) float64 {
	return math.Max(0, math.Min(a.Max.X(), other.Max.X())-math.Max(a.Min.X(), other.Min.X()))
}

// Expand grows the box by margin on every side
func (a AABB) Expand(margin float64) AABB {
	return AABB{
		Min: a.Min.Sub(mgl64.Vec2{margin, margin}),
		Max: a.Max.Add(mgl64.Vec2{margin, margin}),
	}
}

func (a AABB) Width() float64 {
	return a.Max.X() - a.Min.X()
}

func (a AABB) Height() float64 {
	return a.Max.Y() - a.Min.Y()
}

func (a AABB) Center() mgl64.Vec2 {
	return a.Min.Add(a.Max).Mul(0.5)
}
