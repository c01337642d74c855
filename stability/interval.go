package stability

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Interval is a closed range on the x axis
type Interval struct {
	Min float64
	Max float64
}

// Width is never negative; an inverted interval is empty
func (i Interval) Width() float64 {
	return math.Max(0, i.Max-i.Min)
}

func (i Interval) Mid() float64 {
	return (i.Min + i.Max) / 2
}

// Intersect returns the common part of two intervals, possibly empty
func (i Interval) Intersect(other Interval) Interval {
	return Interval{
		Min: math.Max(i.Min, other.Min),
		Max: math.Min(i.Max, other.Max),
	}
}

// Contains reports whether x lies within the interval widened by tolerance
func (i Interval) Contains(x, tolerance float64) bool {
	return x >= i.Min-tolerance && x <= i.Max+tolerance
}

// Clamp returns the point of the interval closest to x
func (i Interval) Clamp(x float64) float64 {
	return mgl64.Clamp(x, i.Min, i.Max)
}

// Band is the horizontal extent of the vertices lying on one horizontal line
type Band struct {
	Interval
	Y     float64
	Count int
}

// BottomBand collects the vertices within epsilon of the lowest one (largest y)
func BottomBand(points []mgl64.Vec2, epsilon float64) Band {
	return bandAt(points, epsilon, func(a, b float64) bool { return a > b })
}

// TopBand collects the vertices within epsilon of the highest one (smallest y)
func TopBand(points []mgl64.Vec2, epsilon float64) Band {
	return bandAt(points, epsilon, func(a, b float64) bool { return a < b })
}

func bandAt(points []mgl64.Vec2, epsilon float64, better func(a, b float64) bool) Band {
	if len(points) == 0 {
		return Band{}
	}

	y := points[0].Y()
	for _, p := range points[1:] {
		if better(p.Y(), y) {
			y = p.Y()
		}
	}

	band := Band{
		Interval: Interval{Min: math.Inf(1), Max: math.Inf(-1)},
		Y:        y,
	}
	for _, p := range points {
		if math.Abs(p.Y()-y) <= epsilon {
			band.Min = math.Min(band.Min, p.X())
			band.Max = math.Max(band.Max, p.X())
			band.Count++
		}
	}

	return band
}

// Footprint is the full horizontal extent of the points
func Footprint(points []mgl64.Vec2) Interval {
	footprint := Interval{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, p := range points {
		footprint.Min = math.Min(footprint.Min, p.X())
		footprint.Max = math.Max(footprint.Max, p.X())
	}

	return footprint
}

// Shelf is one or more support bands merged into a continuous surface
type Shelf struct {
	Interval
	// TopY is the highest (smallest y) top among the merged bands
	TopY float64
	// HasQuad is set when at least one merged support is a quad
	HasQuad bool
}

// MergeShelves sorts shelves by their left edge and merges those separated by at most gap.
// The input slice is reordered.
func MergeShelves(shelves []Shelf, gap float64) []Shelf {
	if len(shelves) == 0 {
		return nil
	}

	sort.SliceStable(shelves, func(i, j int) bool {
		return shelves[i].Min < shelves[j].Min
	})

	merged := []Shelf{shelves[0]}
	for _, s := range shelves[1:] {
		last := &merged[len(merged)-1]
		if s.Min <= last.Max+gap {
			last.Max = math.Max(last.Max, s.Max)
			last.TopY = math.Min(last.TopY, s.TopY)
			last.HasQuad = last.HasQuad || s.HasQuad
			continue
		}
		merged = append(merged, s)
	}

	return merged
}
