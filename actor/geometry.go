package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// WeightedCentroid returns the weighted average of the points.
// When every weight is zero (or weights are missing) the plain average is used.
func WeightedCentroid(points []mgl64.Vec2, weights []float64) mgl64.Vec2 {
	if len(points) == 0 {
		return mgl64.Vec2{}
	}

	var sum mgl64.Vec2
	total := 0.0
	if len(weights) == len(points) {
		for i, p := range points {
			sum = sum.Add(p.Mul(weights[i]))
			total += weights[i]
		}
	}
	if total > 0 {
		return sum.Mul(1 / total)
	}

	sum = mgl64.Vec2{}
	for _, p := range points {
		sum = sum.Add(p)
	}

	return sum.Mul(1 / float64(len(points)))
}

// LowestY returns the largest y of the points: screen coordinates grow downward
func LowestY(points []mgl64.Vec2) float64 {
	y := math.Inf(-1)
	for _, p := range points {
		y = math.Max(y, p.Y())
	}

	return y
}

// HighestY returns the smallest y of the points
func HighestY(points []mgl64.Vec2) float64 {
	y := math.Inf(1)
	for _, p := range points {
		y = math.Min(y, p.Y())
	}

	return y
}

// ContainsPoint is an even-odd ray cast test against a closed polygon
func ContainsPoint(polygon []mgl64.Vec2, p mgl64.Vec2) bool {
	inside := false
	n := len(polygon)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a := polygon[i]
		b := polygon[j]
		if (a.Y() > p.Y()) != (b.Y() > p.Y()) {
			x := (b.X()-a.X())*(p.Y()-a.Y())/(b.Y()-a.Y()) + a.X()
			if p.X() < x {
				inside = !inside
			}
		}
	}

	return inside
}

// DistanceToSegment returns the distance from p to the segment [a, b]
func DistanceToSegment(p, a, b mgl64.Vec2) float64 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.Sub(a).Len()
	}

	t := mgl64.Clamp(p.Sub(a).Dot(ab)/lenSq, 0, 1)

	return p.Sub(a.Add(ab.Mul(t))).Len()
}
