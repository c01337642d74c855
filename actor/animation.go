package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type AnimationKind int

const (
	AnimationTip AnimationKind = iota
	AnimationWobble
)

// Animation is a time-based transition, measured on the world clock (seconds)
type Animation struct {
	Kind     AnimationKind
	Start    float64
	Duration float64

	// Tip parameters
	Pivot         mgl64.Vec2
	Origin        mgl64.Vec2
	StartRotation Rotation
	StartDisplay  float64
	Direction     int  // +1 clockwise on screen, -1 counter-clockwise
	Ground        bool // the pivot lies on the ground line
}

// Progress returns the normalized time in [0, 1]
func (a *Animation) Progress(now float64) float64 {
	if a.Duration <= 0 {
		return 1
	}

	return mgl64.Clamp((now-a.Start)/a.Duration, 0, 1)
}

func (a *Animation) Done(now float64) bool {
	return a.Progress(now) >= 1
}

// EaseInQuad accelerates from rest
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad decelerates to rest
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// DampedSine oscillates a given number of times while decaying linearly to zero
func DampedSine(t float64, cycles float64) float64 {
	return math.Sin(t*cycles*2*math.Pi) * (1 - t)
}
