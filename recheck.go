package cairn

import (
	"github.com/akmonengine/cairn/actor"
	"github.com/akmonengine/cairn/stability"
	"github.com/go-gl/mathgl/mgl64"
)

// RecheckReport describes one call to Recheck
type RecheckReport struct {
	// PerPass holds the number of bodies demoted by each pass that ran
	PerPass []int
	// Capped is set when the pass limit stopped the cascade early
	Capped bool
}

// Demoted is the total number of bodies demoted
func (r RecheckReport) Demoted() int {
	total := 0
	for _, n := range r.PerPass {
		total += n
	}

	return total
}

// Recheck re-evaluates every settled body and demotes those no longer supported.
// Passes repeat until one demotes nothing, up to Config.RecheckMaxPasses. A body
// demoted early in a pass no longer supports the bodies checked after it.
func (w *World) Recheck() RecheckReport {
	w.rebuildGrid()

	report := RecheckReport{}
	for range max(1, w.Config.RecheckMaxPasses) {
		demoted := 0
		for _, body := range w.Bodies {
			if !body.IsStatic || body.IsHeld {
				continue
			}
			if !w.isSupported(body) {
				w.demote(body)
				demoted++
			}
		}

		report.PerPass = append(report.PerPass, demoted)
		if demoted == 0 {
			return report
		}
	}

	report.Capped = true
	w.logf("recheck stopped after %d passes", len(report.PerPass))

	return report
}

// isSupported applies the same rules a landing body is settled with. A body
// sinking into another settled body is never supported.
func (w *World) isSupported(body *actor.Body) bool {
	if w.penetrating(body) {
		return false
	}
	if w.onGround(body) {
		return true
	}

	switch body.Rest {
	case actor.RestPropped:
		return straddles(w.touchPoints(body), body.Centroid().X(), w.Config.Stability.CentroidTolerance)
	case actor.RestStuck:
		return len(w.touchPoints(body)) > 0
	}

	supports := w.restingSupports(body)
	if len(supports) == 0 {
		return false
	}

	verdict := stability.Check(stability.ShapeOf(body), shapesOf(supports), w.Config.Stability)

	return verdict.Stable || len(w.supportContacts(body, supports)) >= w.Config.SettleContacts
}

// demote turns a settled body dynamic again with a small random push
func (w *World) demote(body *actor.Body) {
	d := w.Config.DemoteVelocity
	body.Awake(mgl64.Vec2{(w.rng.Float64()*2 - 1) * d, w.rng.Float64() * d})
	w.Events.Emit(DemoteEvent{Body: body})
	w.logf("body %d demoted", body.ID)
}

// IsSupported reports whether a settled body still rests on the ground or on settled bodies
func (w *World) IsSupported(body *actor.Body) bool {
	w.rebuildGrid()

	return w.isSupported(body)
}
