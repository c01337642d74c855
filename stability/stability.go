// Package stability decides whether a polygon resting on one or more supports stays put.
//
// The test is geometric and deliberately coarse: it looks at the bottom band of the
// resting body, the top bands of its supports, and the anchor-weighted centroid.
// Adjacent support bands are merged into shelves so that a rock bridging two
// neighbours is judged against the combined surface.
package stability

import (
	"fmt"
	"math"

	"github.com/akmonengine/cairn/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Thresholds tune the support rules. Distances are in pixels.
type Thresholds struct {
	// BandEpsilon is the vertical tolerance grouping vertices into a band,
	// and the horizontal gap under which two support bands merge.
	BandEpsilon float64
	// MinSupportBandWidth drops narrower support bands, such as triangle apexes.
	MinSupportBandWidth float64
	// MinOverlapAbsolute and MinOverlapRatio give the required overlap:
	// max(MinOverlapAbsolute, base width * MinOverlapRatio).
	MinOverlapAbsolute float64
	MinOverlapRatio    float64
	// CentroidTolerance widens the overlap interval for the centroid and midpoint checks
	CentroidTolerance float64
	// TriangleSupportRatio is the smallest triangle-only shelf width, relative to the
	// base width, that may carry a quad.
	TriangleSupportRatio float64
	// PointDownOverlapRatio is the overlap a point-down triangle needs, relative to its
	// footprint, when no quad supports it.
	PointDownOverlapRatio float64
}

// DefaultThresholds returns the tuning of the default difficulty
func DefaultThresholds() Thresholds {
	return Thresholds{
		BandEpsilon:           1.5,
		MinSupportBandWidth:   6,
		MinOverlapAbsolute:    8,
		MinOverlapRatio:       0.5,
		CentroidTolerance:     1,
		TriangleSupportRatio:  1.0 / 3.0,
		PointDownOverlapRatio: 0.9,
	}
}

// Shape is the world-space geometry the rules work on
type Shape struct {
	Points  []mgl64.Vec2
	Weights []float64
	Kind    actor.ShapeKind
}

// ShapeOf captures the current logical geometry of a body
func ShapeOf(body *actor.Body) Shape {
	return Shape{
		Points:  body.WorldPolygon(),
		Weights: body.Polygon.Weights(),
		Kind:    body.Kind(),
	}
}

func (s Shape) Centroid() mgl64.Vec2 {
	return actor.WeightedCentroid(s.Points, s.Weights)
}

// Reason explains a verdict
type Reason int

const (
	ReasonStable Reason = iota
	ReasonNoSupport
	ReasonNarrowSupport
	ReasonInsufficientOverlap
	ReasonTriangleSupport
	ReasonPointDown
	ReasonCentroidOutside
	ReasonMidpointOutside
	ReasonCentroidBelow
)

func (r Reason) String() string {
	switch r {
	case ReasonStable:
		return "stable"
	case ReasonNoSupport:
		return "no support"
	case ReasonNarrowSupport:
		return "narrow support"
	case ReasonInsufficientOverlap:
		return "insufficient overlap"
	case ReasonTriangleSupport:
		return "triangle support too narrow"
	case ReasonPointDown:
		return "point-down triangle"
	case ReasonCentroidOutside:
		return "centroid outside overlap"
	case ReasonMidpointOutside:
		return "base midpoint outside overlap"
	case ReasonCentroidBelow:
		return "centroid below support"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// Verdict is the result of a stability check
type Verdict struct {
	Stable bool
	Reason Reason
	// Shelf is the shelf that decided the verdict, when any was usable
	Shelf Shelf
	// Overlap is the common part of the base and Shelf
	Overlap Interval
}

// StableOn reports whether top is stable on a single support
func StableOn(top, support Shape, th Thresholds) bool {
	return Check(top, []Shape{support}, th).Stable
}

// Check decides whether top is stable on the given supports.
// Supports narrower than MinSupportBandWidth are ignored; the others are merged into
// shelves and the body is stable if any shelf carries it.
func Check(top Shape, supports []Shape, th Thresholds) Verdict {
	if len(supports) == 0 {
		return Verdict{Reason: ReasonNoSupport}
	}

	shelves := make([]Shelf, 0, len(supports))
	for _, support := range supports {
		band := TopBand(support.Points, th.BandEpsilon)
		if band.Width() < th.MinSupportBandWidth {
			continue
		}
		shelves = append(shelves, Shelf{
			Interval: band.Interval,
			TopY:     band.Y,
			HasQuad:  support.Kind == actor.ShapeQuad,
		})
	}
	if len(shelves) == 0 {
		return Verdict{Reason: ReasonNarrowSupport}
	}
	shelves = MergeShelves(shelves, th.BandEpsilon)

	bottom := BottomBand(top.Points, th.BandEpsilon)
	base := bottom.Interval
	pointDown := top.Kind == actor.ShapeTriangle && bottom.Width() < th.MinSupportBandWidth
	if pointDown {
		base = Footprint(top.Points)
	}
	centroid := top.Centroid()

	var best Verdict
	for i, shelf := range shelves {
		verdict := checkShelf(shelf, base, pointDown, top.Kind, centroid, th)
		if verdict.Stable {
			return verdict
		}
		if i == 0 || verdict.Overlap.Width() > best.Overlap.Width() {
			best = verdict
		}
	}

	return best
}

func checkShelf(shelf Shelf, base Interval, pointDown bool, kind actor.ShapeKind, centroid mgl64.Vec2, th Thresholds) Verdict {
	overlap := base.Intersect(shelf.Interval)
	verdict := Verdict{Shelf: shelf, Overlap: overlap}

	required := math.Max(th.MinOverlapAbsolute, base.Width()*th.MinOverlapRatio)
	if overlap.Width() < required {
		verdict.Reason = ReasonInsufficientOverlap
		return verdict
	}

	if kind == actor.ShapeQuad && !shelf.HasQuad && shelf.Width() < base.Width()*th.TriangleSupportRatio {
		verdict.Reason = ReasonTriangleSupport
		return verdict
	}
	if pointDown && !shelf.HasQuad && overlap.Width() < base.Width()*th.PointDownOverlapRatio {
		verdict.Reason = ReasonPointDown
		return verdict
	}

	if !overlap.Contains(centroid.X(), th.CentroidTolerance) {
		verdict.Reason = ReasonCentroidOutside
		return verdict
	}
	if !overlap.Contains(base.Mid(), th.CentroidTolerance) {
		verdict.Reason = ReasonMidpointOutside
		return verdict
	}
	if centroid.Y() > shelf.TopY+th.CentroidTolerance {
		verdict.Reason = ReasonCentroidBelow
		return verdict
	}

	verdict.Stable = true
	verdict.Reason = ReasonStable

	return verdict
}
