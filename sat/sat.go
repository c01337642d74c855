// Package sat implements the Separating Axis Theorem for convex 2D polygons.
//
// Two convex polygons are disjoint if and only if there is an axis on which their
// projections do not overlap. For polygons it is enough to test the edge normals
// of both shapes: n edges of A plus m edges of B.
//
// The polygons used by the simulation have 3 or 4 vertices, so a full test costs at
// most 8 projections of 4 points each and needs no broad early-out beyond an AABB check.
//
// References:
//   - Gottschalk, Lin, Manocha: "OBBTree: A Hierarchical Structure for Rapid
//     Interference Detection" (1996)
//   - Ericson: "Real-Time Collision Detection", chapter 5 (2004)
package sat

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Axes returns the unit edge normals of a polygon, in edge order.
// Degenerate (zero length) edges produce no axis.
func Axes(polygon []mgl64.Vec2) []mgl64.Vec2 {
	axes := make([]mgl64.Vec2, 0, len(polygon))
	for i := range polygon {
		edge := polygon[(i+1)%len(polygon)].Sub(polygon[i])
		normal := mgl64.Vec2{-edge.Y(), edge.X()}
		length := normal.Len()
		if length == 0 {
			continue
		}
		axes = append(axes, normal.Mul(1/length))
	}

	return axes
}

// Project returns the interval covered by the polygon along axis
func Project(polygon []mgl64.Vec2, axis mgl64.Vec2) (min, max float64) {
	min = math.Inf(1)
	max = math.Inf(-1)
	for _, p := range polygon {
		d := p.Dot(axis)
		min = math.Min(min, d)
		max = math.Max(max, d)
	}

	return min, max
}

// Intersects reports whether two convex polygons overlap.
// Touching boundaries count as an intersection.
func Intersects(a, b []mgl64.Vec2) bool {
	return IntersectsWithSlop(a, b, 0)
}

// IntersectsWithSlop reports whether two convex polygons overlap by more than slop
// on every candidate axis. Shapes resting flush against each other, or sinking into
// each other by less than slop, are reported as separated.
func IntersectsWithSlop(a, b []mgl64.Vec2, slop float64) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}

	for _, polygon := range [2][]mgl64.Vec2{a, b} {
		for _, axis := range Axes(polygon) {
			minA, maxA := Project(a, axis)
			minB, maxB := Project(b, axis)
			if maxA < minB+slop || maxB < minA+slop {
				return false
			}
		}
	}

	return true
}

// Penetration is the minimum translation that separates two overlapping polygons
type Penetration struct {
	// Depth along Normal. Moving the first polygon by -Normal*Depth separates them.
	Depth float64
	// Normal is a unit axis oriented from the first polygon toward the second
	Normal mgl64.Vec2
}

// Overlap returns the minimum penetration between two convex polygons.
// ok is false when a separating axis exists.
func Overlap(a, b []mgl64.Vec2) (penetration Penetration, ok bool) {
	if len(a) == 0 || len(b) == 0 {
		return Penetration{}, false
	}

	penetration.Depth = math.Inf(1)
	for _, polygon := range [2][]mgl64.Vec2{a, b} {
		for _, axis := range Axes(polygon) {
			minA, maxA := Project(a, axis)
			minB, maxB := Project(b, axis)
			if maxA < minB || maxB < minA {
				return Penetration{}, false
			}

			depth := math.Min(maxA, maxB) - math.Max(minA, minB)
			if depth < penetration.Depth {
				penetration.Depth = depth
				penetration.Normal = axis
			}
		}
	}

	if centroid(b).Sub(centroid(a)).Dot(penetration.Normal) < 0 {
		penetration.Normal = penetration.Normal.Mul(-1)
	}

	return penetration, true
}

func centroid(polygon []mgl64.Vec2) mgl64.Vec2 {
	var sum mgl64.Vec2
	for _, p := range polygon {
		sum = sum.Add(p)
	}

	return sum.Mul(1 / float64(len(polygon)))
}
