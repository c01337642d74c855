// Package interaction turns pointer input into actions on a world: taking rocks
// from the tray, dragging them, rotating them and dropping them on the pile.
package interaction

import (
	"fmt"
	"math"

	"github.com/akmonengine/cairn"
	"github.com/akmonengine/cairn/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// PickRatio scales the sprite size into the pick box around a body
const PickRatio = 0.6

// State is where a body is in its lifecycle
type State int

const (
	InTray State = iota
	Held
	Falling
	Settled
)

func (s State) String() string {
	switch s {
	case InTray:
		return "in tray"
	case Held:
		return "held"
	case Falling:
		return "falling"
	case Settled:
		return "settled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Snapshot summarises the game for a HUD
type Snapshot struct {
	cairn.Stats
	InTray int
	Held   bool
}

// Controller owns the drag state between a world and a tray
type Controller struct {
	World *cairn.World
	Tray  *Tray

	held        *actor.Body
	grabOffset  mgl64.Vec2
	nextID      actor.BodyID
	secondTouch bool
}

func NewController(world *cairn.World, tray *Tray) *Controller {
	return &Controller{
		World: world,
		Tray:  tray,
	}
}

// Held returns the body under the pointer, or nil
func (c *Controller) Held() *actor.Body {
	return c.held
}

// PointerDown starts a drag from the tray or from the pile. touches is the number of
// active pointers: a second one rotates the held body once until the drag ends.
func (c *Controller) PointerDown(pos mgl64.Vec2, touches int) *actor.Body {
	if c.held == nil {
		if c.Tray.Contains(pos) {
			c.spawn(pos)
		} else {
			c.pick(pos)
		}
	}

	if c.held != nil && touches >= 2 && !c.secondTouch {
		c.secondTouch = true
		c.Rotate(90)
	}

	return c.held
}

// PointerMove drags the held body
func (c *Controller) PointerMove(pos mgl64.Vec2) {
	if c.held == nil {
		return
	}
	c.held.Transform.Position = pos.Sub(c.grabOffset)
}

// PointerUp ends the drag: over the tray the body goes back to its source,
// anywhere else it is released to fall.
func (c *Controller) PointerUp(pos mgl64.Vec2) {
	body := c.held
	if body == nil {
		return
	}
	c.held = nil
	c.secondTouch = false

	if !c.Tray.Contains(pos) {
		c.World.Release(body)
		return
	}

	body.IsHeld = false
	c.World.RemoveBody(body)
	if source := c.Tray.Source(body.Polygon.ID); source != nil {
		source.Count++
	}
	c.World.Events.Emit(cairn.ReturnEvent{Body: body})
}

// Rotate turns the held body by delta degrees, snapped to a quarter turn.
// The logical rotation changes at once; the drawn rotation eases toward it.
func (c *Controller) Rotate(delta int) bool {
	if c.held == nil {
		return false
	}
	c.held.Transform.Rotation = c.held.Transform.Rotation.Add(delta)

	return true
}

// StateOf reports the lifecycle state of a body
func (c *Controller) StateOf(body *actor.Body) State {
	if !c.inWorld(body) {
		return InTray
	}

	switch {
	case body.IsHeld:
		return Held
	case body.IsStatic:
		return Settled
	default:
		return Falling
	}
}

// Reset empties the world and refills the tray
func (c *Controller) Reset() {
	c.World.Clear()
	c.Tray.Reset()
	c.held = nil
	c.secondTouch = false
}

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Stats:  c.World.Stats(),
		InTray: c.Tray.Remaining(),
		Held:   c.held != nil,
	}
}

func (c *Controller) spawn(pos mgl64.Vec2) {
	source := c.Tray.SourceAt(pos)
	if source == nil || source.Count <= 0 {
		return
	}
	source.Count--

	c.nextID++
	body := actor.NewBody(c.nextID, source.Polygon, pos)
	body.IsHeld = true
	c.World.AddBody(body)
	c.World.Events.Emit(cairn.SpawnEvent{Body: body})

	c.held = body
	c.grabOffset = mgl64.Vec2{}
}

// pick grabs the topmost body whose pick box contains pos
func (c *Controller) pick(pos mgl64.Vec2) {
	bodies := c.World.Bodies
	for i := len(bodies) - 1; i >= 0; i-- {
		body := bodies[i]
		if body.IsHeld {
			continue
		}

		w, h := body.Polygon.DrawW, body.Polygon.DrawH
		if body.Transform.Rotation == actor.Rotation90 || body.Transform.Rotation == actor.Rotation270 {
			w, h = h, w
		}

		d := pos.Sub(body.Transform.Position)
		if math.Abs(d.X()) > w*PickRatio || math.Abs(d.Y()) > h*PickRatio {
			continue
		}

		c.World.Detach(body)
		c.held = body
		c.grabOffset = d
		return
	}
}

func (c *Controller) inWorld(body *actor.Body) bool {
	for _, b := range c.World.Bodies {
		if b == body {
			return true
		}
	}

	return false
}
