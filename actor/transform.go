package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rotation is a quantized orientation, in degrees. Only quarter turns exist.
type Rotation int

const (
	Rotation0   Rotation = 0
	Rotation90  Rotation = 90
	Rotation180 Rotation = 180
	Rotation270 Rotation = 270
)

// NearestRotation snaps an arbitrary angle (degrees) to the closest quarter turn
func NearestRotation(degrees float64) Rotation {
	quarters := int(math.Round(degrees/90)) % 4
	if quarters < 0 {
		quarters += 4
	}

	return Rotation(quarters * 90)
}

// Add returns the rotation advanced by delta degrees, snapped to a quarter turn
func (r Rotation) Add(delta int) Rotation {
	return NearestRotation(float64(int(r) + delta))
}

func (r Rotation) Inverse() Rotation {
	return NearestRotation(float64(-int(r)))
}

func (r Rotation) Degrees() float64 {
	return float64(r)
}

// Apply rotates p around the origin with the exact closed forms of a quarter turn.
// The convention matches mgl64.Rotate2D: (1,0) goes to (0,1) at 90°.
func (r Rotation) Apply(p mgl64.Vec2) mgl64.Vec2 {
	switch r {
	case Rotation90:
		return mgl64.Vec2{-p.Y(), p.X()}
	case Rotation180:
		return mgl64.Vec2{-p.X(), -p.Y()}
	case Rotation270:
		return mgl64.Vec2{p.Y(), -p.X()}
	default:
		return p
	}
}

// Transform places a local polygon in the world: rotate first, then translate
type Transform struct {
	Position mgl64.Vec2
	Rotation Rotation
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec2{0, 0},
		Rotation: Rotation0,
	}
}

// Apply maps a local point to world space
func (t Transform) Apply(local mgl64.Vec2) mgl64.Vec2 {
	return t.Rotation.Apply(local).Add(t.Position)
}

// InverseApply maps a world point back to local space
func (t Transform) InverseApply(world mgl64.Vec2) mgl64.Vec2 {
	return t.Rotation.Inverse().Apply(world.Sub(t.Position))
}
