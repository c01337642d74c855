package cairn

import (
	"math"

	"github.com/akmonengine/cairn/actor"
	"github.com/akmonengine/cairn/sat"
	"github.com/akmonengine/cairn/stability"
	"github.com/go-gl/mathgl/mgl64"
)

// Contact is a vertex of a resting body touching the ground or a support band
type Contact struct {
	Point mgl64.Vec2
	// Support is nil for ground contacts
	Support *actor.Body
}

func (c Contact) OnGround() bool {
	return c.Support == nil
}

// BroadPhase returns the settled bodies, other than body, whose AABB overlaps box
func BroadPhase(spatialGrid *SpatialGrid, body *actor.Body, box actor.AABB) []*actor.Body {
	candidates := spatialGrid.Query(box)

	n := 0
	for _, other := range candidates {
		if other == body || !other.IsStatic || other.IsHeld {
			continue
		}
		candidates[n] = other
		n++
	}

	return candidates[:n]
}

// NarrowPhase keeps the candidates whose polygon intersects body by more than slop
func NarrowPhase(body *actor.Body, candidates []*actor.Body, slop float64) []*actor.Body {
	polygon := body.WorldPolygon()

	n := 0
	for _, other := range candidates {
		if sat.IntersectsWithSlop(polygon, other.WorldPolygon(), slop) {
			candidates[n] = other
			n++
		}
	}

	return candidates[:n]
}

// collidingStatics returns the settled bodies body currently sinks into
func (w *World) collidingStatics(body *actor.Body) []*actor.Body {
	return NarrowPhase(body, BroadPhase(w.SpatialGrid, body, body.AABB()), w.Config.ResolutionEpsilon)
}

// groundSlop absorbs the rounding of a snap onto the ground line
const groundSlop = 1e-9

// overlapsStatics reports whether polygon, standing for body, sinks into a settled
// body by more than slop. With a zero slop touching counts.
func (w *World) overlapsStatics(body *actor.Body, polygon []mgl64.Vec2, slop float64) bool {
	for _, other := range BroadPhase(w.SpatialGrid, body, actor.ComputeAABB(polygon)) {
		if sat.IntersectsWithSlop(polygon, other.WorldPolygon(), slop) {
			return true
		}
	}

	return false
}

// clearAt reports whether body, moved by offset, is above the ground line and
// touches no settled body.
func (w *World) clearAt(body *actor.Body, offset mgl64.Vec2) bool {
	polygon := body.WorldPolygon()
	for i := range polygon {
		polygon[i] = polygon[i].Add(offset)
	}
	if actor.LowestY(polygon) > w.GroundY+groundSlop {
		return false
	}

	return !w.overlapsStatics(body, polygon, 0)
}

// penetrating reports whether body sinks into the ground or a settled body by more
// than ResolutionEpsilon. Such a body may not be static.
func (w *World) penetrating(body *actor.Body) bool {
	return body.LowestY() > w.GroundY+w.Config.ResolutionEpsilon || len(w.collidingStatics(body)) > 0
}

// penetrationDepth is how deep body sinks into the ground or its deepest settled body
func (w *World) penetrationDepth(body *actor.Body) float64 {
	depth := math.Max(0, body.LowestY()-w.GroundY)

	polygon := body.WorldPolygon()
	for _, other := range w.collidingStatics(body) {
		if penetration, ok := sat.Overlap(polygon, other.WorldPolygon()); ok {
			depth = math.Max(depth, penetration.Depth)
		}
	}

	return depth
}

// touchPoints returns where body meets the settled bodies around it: its vertices
// lying on their outlines and their vertices lying on its outline.
func (w *World) touchPoints(body *actor.Body) []mgl64.Vec2 {
	eps := w.Config.ContactEpsilon
	polygon := body.WorldPolygon()

	var points []mgl64.Vec2
	for _, other := range BroadPhase(w.SpatialGrid, body, body.AABB().Expand(eps)) {
		outline := other.WorldPolygon()
		points = appendNear(points, polygon, outline, eps)
		points = appendNear(points, outline, polygon, eps)
	}

	return points
}

// appendNear appends the vertices of a lying within eps of the outline of b
func appendNear(points, a, b []mgl64.Vec2, eps float64) []mgl64.Vec2 {
	for _, p := range a {
		for i := range b {
			if actor.DistanceToSegment(p, b[i], b[(i+1)%len(b)]) <= eps {
				points = append(points, p)
				break
			}
		}
	}

	return points
}

// straddles reports whether the points lie on both sides of x, each at least tolerance away
func straddles(points []mgl64.Vec2, x, tolerance float64) bool {
	left, right := false, false
	for _, p := range points {
		left = left || p.X() < x-tolerance
		right = right || p.X() > x+tolerance
	}

	return left && right
}

// touchingSupports returns the settled bodies body is resting on or just above:
// they share enough horizontal extent, their top is within reach of the body bottom,
// and the body centroid is above their top.
func (w *World) touchingSupports(body *actor.Body) []*actor.Body {
	box := body.AABB()
	reach := w.Config.BacktrackStep + w.Config.ContactEpsilon
	centroidY := body.Centroid().Y()

	supports := BroadPhase(w.SpatialGrid, body, box.Expand(reach))
	n := 0
	for _, other := range supports {
		otherBox := other.AABB()
		if box.OverlapX(otherBox) <= w.Config.ResolutionEpsilon {
			continue
		}

		top := otherBox.Min.Y()
		if box.Max.Y() < top-reach || centroidY >= top {
			continue
		}
		supports[n] = other
		n++
	}

	return supports[:n]
}

// restingSupports keeps the touching supports whose top is flush with the body bottom
func (w *World) restingSupports(body *actor.Body) []*actor.Body {
	lowest := body.LowestY()

	supports := w.touchingSupports(body)
	n := 0
	for _, other := range supports {
		if math.Abs(other.TopY()-lowest) <= w.Config.ContactEpsilon {
			supports[n] = other
			n++
		}
	}

	return supports[:n]
}

// groundContacts returns the vertices lying on the ground line
func (w *World) groundContacts(body *actor.Body) []Contact {
	var contacts []Contact
	for _, p := range body.WorldPolygon() {
		if math.Abs(p.Y()-w.GroundY) <= w.Config.ContactEpsilon {
			contacts = append(contacts, Contact{Point: p})
		}
	}

	return contacts
}

// supportContacts returns the vertices of body lying on the top band of a support.
// A vertex is counted once even when two supports share it.
func (w *World) supportContacts(body *actor.Body, supports []*actor.Body) []Contact {
	bands := make([]stability.Band, len(supports))
	for i, support := range supports {
		bands[i] = stability.TopBand(support.WorldPolygon(), w.Config.Stability.BandEpsilon)
	}

	var contacts []Contact
	for _, p := range body.WorldPolygon() {
		for i, band := range bands {
			if math.Abs(p.Y()-band.Y) <= w.Config.ContactEpsilon && band.Contains(p.X(), w.Config.ContactEpsilon) {
				contacts = append(contacts, Contact{Point: p, Support: supports[i]})
				break
			}
		}
	}

	return contacts
}

// isFlat reports whether the contacts form a base wide enough to rest on
func (w *World) isFlat(contacts []Contact) bool {
	if len(contacts) < 2 {
		return false
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, c := range contacts {
		minX = math.Min(minX, c.Point.X())
		maxX = math.Max(maxX, c.Point.X())
	}

	return maxX-minX >= w.Config.FlatContactMinWidth
}

func shapesOf(bodies []*actor.Body) []stability.Shape {
	shapes := make([]stability.Shape, len(bodies))
	for i, b := range bodies {
		shapes[i] = stability.ShapeOf(b)
	}

	return shapes
}
