package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyID identifies a body inside a world
type BodyID uint64

// RestKind tells which rule settled a static body
type RestKind int

const (
	// RestBalanced bodies passed the stability or contact count rules
	RestBalanced RestKind = iota
	// RestPropped bodies lean on neighbours on both sides of their centroid
	RestPropped
	// RestStuck bodies ran out of tips or landings. They stay while they touch something.
	RestStuck
)

// Body is a rock instance: a template placed in the world with its motion state
type Body struct {
	ID      BodyID
	Polygon *Polygon

	// Logical placement, used by every physics query
	Transform Transform
	Velocity  mgl64.Vec2 // pixels per frame

	IsStatic    bool
	IsTipping   bool
	IsHeld      bool
	TipCooldown int // frames left before the body may tip again
	// LastTip is the direction of the previous tip since the body last settled, 0 if none
	LastTip int
	// Tips and Landings count the tips and the unsettled touchdowns since the body last settled
	Tips     int
	Landings int
	// SideBlocked is set when the last horizontal move ran into a settled body
	SideBlocked bool
	Rest        RestKind

	// Cosmetic state, never read by physics
	DisplayRotation float64 // degrees, continuous
	DisplayTilt     float64 // degrees, wobble
	DisplayOffset   mgl64.Vec2

	Tip    *Animation
	Wobble *Animation
}

// NewBody creates a dynamic body at position with rotation 0
func NewBody(id BodyID, polygon *Polygon, position mgl64.Vec2) *Body {
	return &Body{
		ID:      id,
		Polygon: polygon,
		Transform: Transform{
			Position: position,
			Rotation: Rotation0,
		},
	}
}

func (b *Body) Kind() ShapeKind {
	return b.Polygon.Kind
}

// WorldPolygon returns the vertices in world space, from the logical transform
func (b *Body) WorldPolygon() []mgl64.Vec2 {
	points := make([]mgl64.Vec2, len(b.Polygon.Anchors))
	for i, a := range b.Polygon.Anchors {
		points[i] = b.Transform.Apply(a.Point)
	}

	return points
}

func (b *Body) AABB() AABB {
	return ComputeAABB(b.WorldPolygon())
}

// LowestY is the bottom of the body (largest y)
func (b *Body) LowestY() float64 {
	return LowestY(b.WorldPolygon())
}

// TopY is the top of the body (smallest y)
func (b *Body) TopY() float64 {
	return HighestY(b.WorldPolygon())
}

// Centroid is the anchor-weighted centroid in world space
func (b *Body) Centroid() mgl64.Vec2 {
	return WeightedCentroid(b.WorldPolygon(), b.Polygon.Weights())
}

// MoveBy translates the logical position
func (b *Body) MoveBy(delta mgl64.Vec2) {
	b.Transform.Position = b.Transform.Position.Add(delta)
}

// Settle marks the body static and stops it
func (b *Body) Settle() {
	b.IsStatic = true
	b.Velocity = mgl64.Vec2{}
	b.TipCooldown = 0
	b.resetFall()
}

// Awake makes the body dynamic again with the given velocity
func (b *Body) Awake(velocity mgl64.Vec2) {
	b.IsStatic = false
	b.Velocity = velocity
	b.Rest = RestBalanced
	b.resetFall()
	b.Wobble = nil
	b.DisplayTilt = 0
	b.DisplayOffset = mgl64.Vec2{}
}

func (b *Body) resetFall() {
	b.LastTip = 0
	b.Tips = 0
	b.Landings = 0
	b.SideBlocked = false
}

// RenderPoint maps a local point with the display rotation instead of the logical one
func (b *Body) RenderPoint(local mgl64.Vec2) mgl64.Vec2 {
	angle := mgl64.DegToRad(b.DisplayRotation + b.DisplayTilt)

	return mgl64.Rotate2D(angle).Mul2x1(local).Add(b.Transform.Position).Add(b.DisplayOffset)
}

// RenderPolygon returns the vertices as they should be drawn this frame
func (b *Body) RenderPolygon() []mgl64.Vec2 {
	points := make([]mgl64.Vec2, len(b.Polygon.Anchors))
	for i, a := range b.Polygon.Anchors {
		points[i] = b.RenderPoint(a.Point)
	}

	return points
}

// DisplayTarget returns the unwrapped angle equivalent to the logical rotation
// that is closest to the current display rotation.
func (b *Body) DisplayTarget() float64 {
	return b.DisplayRotation + ShortestDelta(b.DisplayRotation, b.Transform.Rotation.Degrees())
}

// EaseDisplayRotation moves the display rotation toward the logical one along the shortest path
func (b *Body) EaseDisplayRotation(factor float64) {
	delta := ShortestDelta(b.DisplayRotation, b.Transform.Rotation.Degrees())
	if math.Abs(delta) < 0.01 {
		b.DisplayRotation = math.Round((b.DisplayRotation+delta)/90) * 90
		return
	}

	b.DisplayRotation += delta * factor
}

// ShortestDelta returns the signed angle in (-180, 180] that turns from onto to
func ShortestDelta(from, to float64) float64 {
	d := math.Mod(to-from, 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}

	return d
}
