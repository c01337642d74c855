package cairn

import (
	"github.com/akmonengine/cairn/stability"
)

// Config holds every tunable of the simulation.
// Distances are in pixels, velocities in pixels per frame, durations in seconds.
type Config struct {
	Gravity          float64
	TerminalVelocity float64

	// ResolutionEpsilon is the SAT slop: shapes sinking less than this are not colliding.
	// It is also the minimum horizontal overlap for a static to count as a support.
	ResolutionEpsilon      float64
	BacktrackStep          float64
	BacktrackMaxIterations int
	// ContactEpsilon is the distance under which a vertex touches the ground or a support band
	ContactEpsilon      float64
	FlatContactMinWidth float64
	TumbleContacts      int
	SettleContacts      int

	RollNudge    float64
	RollFriction float64
	// SlideVelocity is the sideways speed of a body that can no longer tip
	SlideVelocity float64

	TipDuration       float64
	TipCooldownFrames int
	TipExitVelocity   float64
	GroundBounce      float64
	// MaxTips and MaxLandings bound one fall. Past them a body slides off
	// or stays where it lies.
	MaxTips     int
	MaxLandings int

	WobbleDuration float64
	WobbleAngle    float64 // degrees
	WobbleOffset   float64
	WobbleCycles   float64
	DisplayEase    float64

	RecheckMaxPasses int
	DemoteVelocity   float64

	GridCellSize float64
	GridCells    int

	Stability stability.Thresholds
}

// DefaultConfig returns the medium difficulty tuning
func DefaultConfig() Config {
	return Config{
		Gravity:          0.98,
		TerminalVelocity: 20,

		ResolutionEpsilon:      0.5,
		BacktrackStep:          1,
		BacktrackMaxIterations: 48,
		ContactEpsilon:         1.5,
		FlatContactMinWidth:    8,
		TumbleContacts:         1,
		SettleContacts:         2,

		RollNudge:     1.5,
		RollFriction:  0.85,
		SlideVelocity: 1.5,

		TipDuration:       0.35,
		TipCooldownFrames: 12,
		TipExitVelocity:   1.5,
		GroundBounce:      0.3,
		MaxTips:           6,
		MaxLandings:       240,

		WobbleDuration: 0.3,
		WobbleAngle:    3,
		WobbleOffset:   2,
		WobbleCycles:   2,
		DisplayEase:    0.25,

		RecheckMaxPasses: 8,
		DemoteVelocity:   1,

		GridCellSize: 64,
		GridCells:    256,

		Stability: stability.DefaultThresholds(),
	}
}
