package cairn

import (
	"math"

	"github.com/akmonengine/cairn/actor"
	"github.com/akmonengine/cairn/stability"
	"github.com/go-gl/mathgl/mgl64"
)

// tipOrRoll starts a quarter-turn tip around pivot, or rolls the body while its
// tip cooldown is running. A body out of tips slides off, unless it lies on the
// ground or against a neighbour, where it stays.
func (w *World) tipOrRoll(body *actor.Body, pivot mgl64.Vec2, ground bool) {
	direction := w.tipDirection(body, pivot, ground)
	switch {
	case body.Tips < w.Config.MaxTips && body.TipCooldown > 0:
		w.roll(body, float64(direction))
	case body.Tips < w.Config.MaxTips:
		w.startTip(body, pivot, direction, ground)
	case ground || body.SideBlocked:
		w.settleWhereItLies(body)
	default:
		w.slide(body, direction)
	}
}

// tipDirection is +1 (clockwise on screen) when the centroid lies right of the pivot.
// On the ground a body keeps the direction of its previous tip, so a shape balanced on
// a vertex rolls on until it lands on a face.
func (w *World) tipDirection(body *actor.Body, pivot mgl64.Vec2, ground bool) int {
	if ground && body.LastTip != 0 {
		return body.LastTip
	}

	dx := body.Centroid().X() - pivot.X()
	switch {
	case dx > 0:
		return 1
	case dx < 0:
		return -1
	case w.rng.Intn(2) == 0:
		return -1
	default:
		return 1
	}
}

// choosePivot picks the support point nearest the centroid, restricted to where the
// body actually touches the support when it does.
func (w *World) choosePivot(body *actor.Body, supports []*actor.Body) mgl64.Vec2 {
	cx := body.Centroid().X()
	bottom := stability.BottomBand(body.WorldPolygon(), w.Config.Stability.BandEpsilon)

	best := math.Inf(1)
	var pivot mgl64.Vec2
	for _, support := range supports {
		band := stability.TopBand(support.WorldPolygon(), w.Config.Stability.BandEpsilon)

		reach := band.Interval
		if touching := band.Intersect(bottom.Interval); touching.Max >= touching.Min {
			reach = touching
		}

		x := reach.Clamp(cx)
		if d := math.Abs(x - cx); d < best {
			best = d
			pivot = mgl64.Vec2{x, band.Y}
		}
	}

	return pivot
}

// startTip begins the quarter-turn animation around pivot
func (w *World) startTip(body *actor.Body, pivot mgl64.Vec2, direction int, ground bool) {
	start := math.Round(body.DisplayTarget()/90) * 90

	body.IsTipping = true
	body.Tips++
	body.Velocity = mgl64.Vec2{}
	body.DisplayRotation = start
	body.Tip = &actor.Animation{
		Kind:          actor.AnimationTip,
		Start:         w.clock,
		Duration:      w.Config.TipDuration,
		Pivot:         pivot,
		Origin:        body.Transform.Position,
		StartRotation: body.Transform.Rotation,
		StartDisplay:  start,
		Direction:     direction,
		Ground:        ground,
	}

	w.Events.Emit(TipStartEvent{Body: body, Pivot: pivot, Direction: direction})
	w.logf("body %d tips %+d around %v", body.ID, direction, pivot)
}

// advanceTip rotates the body around the pivot. The pivot stays fixed on screen
// for the whole animation.
func (w *World) advanceTip(body *actor.Body) {
	tip := body.Tip
	t := tip.Progress(w.clock)
	if t >= 1 {
		w.finishTip(body)
		return
	}

	theta := float64(tip.Direction) * 90 * actor.EaseInQuad(t)
	offset := tip.Origin.Sub(tip.Pivot)
	body.Transform.Position = tip.Pivot.Add(mgl64.Rotate2D(mgl64.DegToRad(theta)).Mul2x1(offset))
	body.DisplayRotation = tip.StartDisplay + theta
}

// finishTip commits the quarter turn with exact arithmetic and hands the body back
// to the simulation with a small exit velocity. The turned body is lifted above the
// ground line and out of the settled bodies it swept into.
func (w *World) finishTip(body *actor.Body) {
	tip := body.Tip
	turn := actor.Rotation90
	if tip.Direction < 0 {
		turn = actor.Rotation270
	}

	body.Transform.Rotation = tip.StartRotation.Add(int(turn))
	body.Transform.Position = tip.Pivot.Add(turn.Apply(tip.Origin.Sub(tip.Pivot)))
	body.DisplayRotation = tip.StartDisplay + float64(tip.Direction)*90

	body.IsTipping = false
	body.Tip = nil
	body.TipCooldown = w.Config.TipCooldownFrames
	body.LastTip = tip.Direction

	if lowest := body.LowestY(); lowest > w.GroundY {
		body.MoveBy(mgl64.Vec2{0, w.GroundY - lowest})
	}
	if len(w.collidingStatics(body)) > 0 {
		w.backtrack(body)
	}

	direction := float64(tip.Direction)
	if tip.Ground {
		body.Velocity = mgl64.Vec2{direction * w.Config.TipExitVelocity, -w.Config.TipExitVelocity * w.Config.GroundBounce}
	} else {
		body.Velocity = mgl64.Vec2{direction * w.Config.TipExitVelocity, w.Config.TipExitVelocity}
	}

	w.Events.Emit(TipEndEvent{Body: body})
}
