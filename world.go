package cairn

import (
	"log"
	"math"
	"math/rand"

	"github.com/akmonengine/cairn/actor"
	"github.com/go-gl/mathgl/mgl64"
)

type World struct {
	// List of all bodies in the world, in insertion order
	Bodies []*actor.Body
	// GroundY is the floor line; y grows downward
	GroundY     float64
	Config      Config
	SpatialGrid *SpatialGrid

	Events Events
	// Logger receives debug traces when set
	Logger *log.Logger

	clock float64
	frame uint64
	rng   *rand.Rand
}

// NewWorld creates an empty world. The seed drives every random nudge, so two
// worlds built with the same seed and fed the same inputs evolve identically.
func NewWorld(groundY float64, config Config, seed int64) *World {
	return &World{
		GroundY:     groundY,
		Config:      config,
		SpatialGrid: NewSpatialGrid(config.GridCellSize, config.GridCells),
		Events:      NewEvents(),
		rng:         rand.New(rand.NewSource(seed)),
	}
}

// AddBody adds a body to the world
func (w *World) AddBody(body *actor.Body) {
	w.Bodies = append(w.Bodies, body)
}

// RemoveBody removes a body from the world. Removing a settled body rechecks the pile.
func (w *World) RemoveBody(body *actor.Body) {
	k := -1
	for i, b := range w.Bodies {
		if b == body {
			k = i
			break
		}
	}

	if k == -1 {
		return
	}
	w.Bodies = append(w.Bodies[:k], w.Bodies[k+1:]...)

	if body.IsStatic {
		body.IsStatic = false
		w.Recheck()
	}
}

// Clear removes every body
func (w *World) Clear() {
	clear(w.Bodies)
	w.Bodies = w.Bodies[:0]
	w.SpatialGrid.Clear()
}

// Clock returns the animation time in seconds
func (w *World) Clock() float64 {
	return w.clock
}

// Step advances the world by one frame. Motion is integrated per frame; dt only
// drives the tip and wobble animations.
func (w *World) Step(dt float64) {
	w.clock += dt
	w.frame++
	w.rebuildGrid()

	for _, body := range w.Bodies {
		switch {
		case body.IsHeld:
		case body.IsTipping:
			w.advanceTip(body)
		case body.IsStatic:
		default:
			w.stepBody(body)
		}

		w.advanceWobble(body)
		if !body.IsTipping {
			body.EaseDisplayRotation(w.Config.DisplayEase)
		}
	}

	w.Events.flush()
}

// Detach takes a body out of the simulation for the pointer. If it was settled, the
// bodies it was carrying are rechecked.
func (w *World) Detach(body *actor.Body) RecheckReport {
	wasStatic := body.IsStatic

	body.Awake(mgl64.Vec2{})
	body.IsHeld = true
	body.IsTipping = false
	body.Tip = nil
	body.TipCooldown = 0
	w.Events.Emit(PickupEvent{Body: body})

	if !wasStatic {
		return RecheckReport{}
	}

	return w.Recheck()
}

// Release hands a held body back to the simulation, falling from rest
func (w *World) Release(body *actor.Body) {
	body.IsHeld = false
	body.IsStatic = false
	body.Velocity = mgl64.Vec2{}
	w.Events.Emit(ReleaseEvent{Body: body})
}

// Stats summarises the pile. A body in the pointer's hand is not part of it and
// is left out of every count.
type Stats struct {
	// Placed counts the bodies in play, falling or settled, held ones excluded
	Placed   int
	Static   int
	OnGround int
	// StackHeight is the distance from the ground to the highest settled point
	StackHeight float64
}

func (w *World) Stats() Stats {
	stats := Stats{}
	top := math.Inf(1)

	for _, body := range w.Bodies {
		if body.IsHeld {
			continue
		}
		stats.Placed++
		if !body.IsStatic {
			continue
		}

		stats.Static++
		if w.onGround(body) {
			stats.OnGround++
		}
		top = math.Min(top, body.TopY())
	}

	if stats.Static > 0 {
		stats.StackHeight = w.GroundY - top
	}

	return stats
}

func (w *World) onGround(body *actor.Body) bool {
	return body.LowestY() >= w.GroundY-w.Config.ContactEpsilon
}

func (w *World) rebuildGrid() {
	w.SpatialGrid.Clear()
	for _, body := range w.Bodies {
		if body.IsStatic && !body.IsHeld {
			w.SpatialGrid.Insert(body)
		}
	}
}

func (w *World) logf(format string, args ...any) {
	if w.Logger == nil {
		return
	}
	w.Logger.Printf("[frame %d] "+format, append([]any{w.frame}, args...)...)
}
