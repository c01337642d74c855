package cairn

import (
	"math"

	"github.com/akmonengine/cairn/actor"
	"github.com/akmonengine/cairn/stability"
	"github.com/go-gl/mathgl/mgl64"
)

// snapIterations bounds the bisection lowering a backed out body onto its contact
const snapIterations = 40

// stepBody integrates one dynamic body and resolves its collisions.
// A sideways move into a settled body is undone. A fall into the ground or a
// settled body lands the body.
func (w *World) stepBody(body *actor.Body) {
	if body.TipCooldown > 0 {
		body.TipCooldown--
	}

	body.SideBlocked = false
	if vx := body.Velocity.X(); vx != 0 {
		from := body.Transform.Position
		body.MoveBy(mgl64.Vec2{vx, 0})
		if len(w.collidingStatics(body)) > 0 {
			body.Transform.Position = from
			body.Velocity[0] = 0
			body.SideBlocked = true
		}
	}

	body.Velocity[1] = math.Min(body.Velocity.Y()+w.Config.Gravity, w.Config.TerminalVelocity)
	body.MoveBy(mgl64.Vec2{0, body.Velocity.Y()})

	if !w.clearAt(body, mgl64.Vec2{}) {
		w.land(body)
	}
}

// land backs the body out of what it hit, drops it onto the contact, then settles,
// tips, rolls or slides it.
func (w *World) land(body *actor.Body) {
	if !w.backtrack(body) {
		// buried deeper than one frame can lift: the next steps carry on
		body.Velocity = mgl64.Vec2{}
		return
	}
	w.snapDown(body)
	body.Velocity[1] = 0

	body.Landings++
	if body.Landings > w.Config.MaxLandings {
		w.logf("body %d found no rest after %d landings", body.ID, w.Config.MaxLandings)
		w.settleWhereItLies(body)
		return
	}

	ground := w.groundContacts(body)
	if w.isFlat(ground) {
		w.settle(body, actor.RestBalanced)
		return
	}

	supports := w.restingSupports(body)
	contacts := append(ground, w.supportContacts(body, supports)...)
	switch {
	case len(ground) > 0:
		w.landOnGround(body, contacts)
	case len(supports) > 0:
		w.landOnSupports(body, supports, contacts)
	default:
		w.landOnSlopes(body)
	}
}

// landOnGround handles a body touching the floor line without a flat base
func (w *World) landOnGround(body *actor.Body, contacts []Contact) {
	switch {
	case len(contacts) == w.Config.TumbleContacts:
		w.tipOrRoll(body, contacts[0].Point, contacts[0].OnGround())
	case len(contacts) >= w.Config.SettleContacts:
		w.settle(body, actor.RestBalanced)
	default:
		w.roll(body, 0)
	}
}

// landOnSupports runs the stability analysis against the bodies under body
func (w *World) landOnSupports(body *actor.Body, supports []*actor.Body, contacts []Contact) {
	verdict := stability.Check(stability.ShapeOf(body), shapesOf(supports), w.Config.Stability)
	if verdict.Stable || len(contacts) >= w.Config.SettleContacts {
		w.settle(body, actor.RestBalanced)
		return
	}

	w.logf("body %d unstable: %v", body.ID, verdict.Reason)
	w.tipOrRoll(body, w.choosePivot(body, supports), false)
}

// landOnSlopes handles a body held by sloped sides only. Wedged between
// neighbours it stays; otherwise it tips around the contact nearest its centroid.
func (w *World) landOnSlopes(body *actor.Body) {
	points := w.touchPoints(body)
	cx := body.Centroid().X()
	if straddles(points, cx, w.Config.Stability.CentroidTolerance) {
		w.settle(body, actor.RestPropped)
		return
	}
	if len(points) == 0 {
		w.roll(body, 0)
		return
	}

	pivot := points[0]
	for _, p := range points[1:] {
		if math.Abs(p.X()-cx) < math.Abs(pivot.X()-cx) {
			pivot = p
		}
	}

	w.tipOrRoll(body, pivot, false)
}

// backtrack lifts the body step by step until it clears the ground and every settled
// body. It reports false when it gave up before that.
func (w *World) backtrack(body *actor.Body) bool {
	for i := 0; !w.clearAt(body, mgl64.Vec2{}); i++ {
		if i >= w.Config.BacktrackMaxIterations {
			w.logf("body %d: backtrack gave up after %d steps", body.ID, i)
			return false
		}
		body.MoveBy(mgl64.Vec2{0, -w.Config.BacktrackStep})
	}

	return true
}

// snapDown lowers a backed out body onto the ground or the settled body it came
// from, by at most one backtrack step.
func (w *World) snapDown(body *actor.Body) {
	lo, hi := 0.0, math.Min(w.Config.BacktrackStep, w.GroundY-body.LowestY())
	if hi <= 0 {
		return
	}
	if w.clearAt(body, mgl64.Vec2{0, hi}) {
		body.MoveBy(mgl64.Vec2{0, hi})
		return
	}

	for range snapIterations {
		mid := (lo + hi) / 2
		if w.clearAt(body, mgl64.Vec2{0, mid}) {
			lo = mid
		} else {
			hi = mid
		}
	}
	body.MoveBy(mgl64.Vec2{0, lo})
}

// roll nudges the body sideways with friction. A non-zero bias forces the direction.
func (w *World) roll(body *actor.Body, bias float64) {
	nudge := w.Config.RollNudge * (w.rng.Float64()*2 - 1)
	if bias != 0 {
		nudge = bias * w.Config.RollNudge * w.rng.Float64()
	}

	body.Velocity = mgl64.Vec2{(body.Velocity.X() + nudge) * w.Config.RollFriction, 0}
}

// slide sends a body that can no longer tip sideways, off whatever holds it
func (w *World) slide(body *actor.Body, direction int) {
	body.Velocity = mgl64.Vec2{float64(direction) * w.Config.SlideVelocity, 0}
}

// settleWhereItLies ends a fall no rule could end
func (w *World) settleWhereItLies(body *actor.Body) {
	rest := actor.RestStuck
	if straddles(w.touchPoints(body), body.Centroid().X(), w.Config.Stability.CentroidTolerance) {
		rest = actor.RestPropped
	}

	w.settle(body, rest)
}

// settle makes the body static, starts its wobble and rechecks the pile.
// A body sinking into the ground or a settled body is refused and stays dynamic.
func (w *World) settle(body *actor.Body, rest actor.RestKind) bool {
	if w.penetrating(body) {
		w.logf("body %d refused to settle: sinks %.2f px at %v", body.ID, w.penetrationDepth(body), body.Transform.Position)
		return false
	}

	body.Settle()
	body.Rest = rest
	body.Wobble = &actor.Animation{
		Kind:     actor.AnimationWobble,
		Start:    w.clock,
		Duration: w.Config.WobbleDuration,
	}
	w.SpatialGrid.Insert(body)
	w.Events.Emit(SettleEvent{Body: body})
	w.logf("body %d settled at %v", body.ID, body.Transform.Position)

	w.Recheck()

	return true
}

// advanceWobble updates the cosmetic settle wobble
func (w *World) advanceWobble(body *actor.Body) {
	if body.Wobble == nil {
		return
	}

	t := body.Wobble.Progress(w.clock)
	wave := actor.DampedSine(t, w.Config.WobbleCycles)
	body.DisplayTilt = w.Config.WobbleAngle * wave
	body.DisplayOffset = mgl64.Vec2{0, w.Config.WobbleOffset * math.Abs(wave)}

	if t >= 1 {
		body.Wobble = nil
		body.DisplayTilt = 0
		body.DisplayOffset = mgl64.Vec2{}
	}
}
