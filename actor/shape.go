package actor

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultWeight is used for anchors that do not declare one
const DefaultWeight = 1.0

var (
	ErrVertexCount    = errors.New("polygon must have 3 or 4 vertices")
	ErrNotConvex      = errors.New("polygon is not strictly convex")
	ErrNegativeWeight = errors.New("anchor weight must not be negative")
)

// ShapeKind is derived from the vertex count of a polygon
type ShapeKind int

const (
	ShapeTriangle ShapeKind = iota
	ShapeQuad
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeTriangle:
		return "triangle"
	case ShapeQuad:
		return "quad"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// ShapeKindFor returns the kind matching a vertex count
func ShapeKindFor(vertices int) (ShapeKind, error) {
	switch vertices {
	case 3:
		return ShapeTriangle, nil
	case 4:
		return ShapeQuad, nil
	default:
		return 0, fmt.Errorf("%w: got %d", ErrVertexCount, vertices)
	}
}

// Anchor is a polygon vertex in local coordinates, with an optional mass weight
type Anchor struct {
	Point  mgl64.Vec2
	Weight *float64
}

// Weight is a helper to build an explicit anchor weight inline
func Weight(w float64) *float64 {
	return &w
}

// ResolvedWeight returns the anchor weight, DefaultWeight when absent
func (a Anchor) ResolvedWeight() float64 {
	if a.Weight == nil {
		return DefaultWeight
	}

	return *a.Weight
}

// Polygon is an immutable rock template: a convex outline in local coordinates
// centred on the body origin, plus the size of its sprite.
type Polygon struct {
	ID      string
	Kind    ShapeKind
	Anchors []Anchor
	DrawW   float64
	DrawH   float64
}

// NewPolygon validates the anchors and builds a template
func NewPolygon(id string, anchors []Anchor, drawW, drawH float64) (*Polygon, error) {
	kind, err := ShapeKindFor(len(anchors))
	if err != nil {
		return nil, fmt.Errorf("polygon %q: %w", id, err)
	}

	for i, a := range anchors {
		if a.ResolvedWeight() < 0 {
			return nil, fmt.Errorf("polygon %q anchor %d: %w", id, i, ErrNegativeWeight)
		}
	}

	points := make([]mgl64.Vec2, len(anchors))
	for i, a := range anchors {
		points[i] = a.Point
	}
	if !IsConvex(points) {
		return nil, fmt.Errorf("polygon %q: %w", id, ErrNotConvex)
	}

	copied := make([]Anchor, len(anchors))
	copy(copied, anchors)

	return &Polygon{
		ID:      id,
		Kind:    kind,
		Anchors: copied,
		DrawW:   drawW,
		DrawH:   drawH,
	}, nil
}

// MustPolygon is like NewPolygon but panics on invalid input.
// It is meant for fixed templates known to be valid.
func MustPolygon(id string, anchors []Anchor, drawW, drawH float64) *Polygon {
	p, err := NewPolygon(id, anchors, drawW, drawH)
	if err != nil {
		panic(err)
	}

	return p
}

// Points returns the local vertices in anchor order
func (p *Polygon) Points() []mgl64.Vec2 {
	points := make([]mgl64.Vec2, len(p.Anchors))
	for i, a := range p.Anchors {
		points[i] = a.Point
	}

	return points
}

// Weights returns the resolved anchor weights in anchor order
func (p *Polygon) Weights() []float64 {
	weights := make([]float64, len(p.Anchors))
	for i, a := range p.Anchors {
		weights[i] = a.ResolvedWeight()
	}

	return weights
}

// IsConvex reports whether the points form a strictly convex polygon, in either winding.
// Collinear consecutive vertices are rejected.
func IsConvex(points []mgl64.Vec2) bool {
	n := len(points)
	if n < 3 {
		return false
	}

	sign := 0
	for i := 0; i < n; i++ {
		a := points[i]
		b := points[(i+1)%n]
		c := points[(i+2)%n]
		cross := cross2(b.Sub(a), c.Sub(b))
		if cross == 0 {
			return false
		}

		s := 1
		if cross < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if s != sign {
			return false
		}
	}

	return true
}

func cross2(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}
