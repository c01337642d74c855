package main

import (
	"fmt"
	"log"

	"github.com/akmonengine/cairn"
	"github.com/akmonengine/cairn/actor"
	"github.com/akmonengine/cairn/config"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	groundY  = 700.0
	dt       = 1.0 / 60.0
	maxSteps = 600
)

// SceneDebugger receives the kernel events of the scene
type SceneDebugger interface {
	DebugSettle(body *actor.Body)
	DebugTip(body *actor.Body, pivot mgl64.Vec2, direction int)
	DebugDemote(body *actor.Body)
}

// SimpleDebugger prints every event
type SimpleDebugger struct{}

func (d *SimpleDebugger) DebugSettle(body *actor.Body) {
	fmt.Printf("settle  rock %d (%s) at %v rot %d\n", body.ID, body.Polygon.ID, body.Transform.Position, body.Transform.Rotation)
}

func (d *SimpleDebugger) DebugTip(body *actor.Body, pivot mgl64.Vec2, direction int) {
	side := "right"
	if direction < 0 {
		side = "left"
	}
	fmt.Printf("tip     rock %d (%s) around %v to the %s\n", body.ID, body.Polygon.ID, pivot, side)
}

func (d *SimpleDebugger) DebugDemote(body *actor.Body) {
	fmt.Printf("demote  rock %d (%s) velocity %v\n", body.ID, body.Polygon.ID, body.Velocity)
}

// drop is one scripted release
type drop struct {
	rock     string
	x, y     float64
	rotation actor.Rotation
}

var script = []drop{
	{"quad_rect_large", 240, 300, actor.Rotation0},
	{"quad_square_small", 248, 200, actor.Rotation0},
	{"tri_iso_medium", 236, 150, actor.Rotation180},
	{"quad_trapezoid_small", 300, 200, actor.Rotation0},
}

// SetupScene creates the world and hooks the debugger to its events
func SetupScene(difficulty string, debugger SceneDebugger) (*cairn.World, *config.Catalog, error) {
	catalog, err := config.LoadCatalog("")
	if err != nil {
		return nil, nil, err
	}
	preset, err := config.LoadDifficulty("", difficulty)
	if err != nil {
		return nil, nil, err
	}

	cfg := cairn.DefaultConfig()
	preset.Apply(&cfg)
	world := cairn.NewWorld(groundY, cfg, 42)

	world.Events.Subscribe(cairn.ON_SETTLE, func(event cairn.Event) {
		debugger.DebugSettle(event.(cairn.SettleEvent).Body)
	})
	world.Events.Subscribe(cairn.ON_TIP_START, func(event cairn.Event) {
		tip := event.(cairn.TipStartEvent)
		debugger.DebugTip(tip.Body, tip.Pivot, tip.Direction)
	})
	world.Events.Subscribe(cairn.ON_DEMOTE, func(event cairn.Event) {
		debugger.DebugDemote(event.(cairn.DemoteEvent).Body)
	})

	return world, catalog, nil
}

// RunDrops releases each scripted rock once the previous one has come to rest
func RunDrops(world *cairn.World, catalog *config.Catalog) error {
	for i, d := range script {
		polygon, err := catalog.Polygon(d.rock)
		if err != nil {
			return err
		}

		body := actor.NewBody(actor.BodyID(i+1), polygon, mgl64.Vec2{d.x, d.y})
		body.Transform.Rotation = d.rotation
		body.DisplayRotation = d.rotation.Degrees()
		world.AddBody(body)
		fmt.Printf("--- drop %d: %s at (%.0f, %.0f) rot %d ---\n", i+1, d.rock, d.x, d.y, d.rotation)

		steps := 0
		for ; steps < maxSteps && !body.IsStatic; steps++ {
			world.Step(dt)
		}
		if !body.IsStatic {
			fmt.Printf("rock %d still moving after %d steps at %v\n", body.ID, steps, body.Transform.Position)
		}
	}

	stats := world.Stats()
	fmt.Printf("placed %d, settled %d, on ground %d, stack height %.1f\n",
		stats.Placed, stats.Static, stats.OnGround, stats.StackHeight)

	return nil
}

// RemoveBase pulls the first rock out and reports the cascade
func RemoveBase(world *cairn.World) {
	if len(world.Bodies) == 0 {
		return
	}

	base := world.Bodies[0]
	fmt.Printf("--- pick up rock %d ---\n", base.ID)
	report := world.Detach(base)
	world.RemoveBody(base)
	fmt.Printf("recheck: %d demoted over %d passes (capped %v)\n", report.Demoted(), len(report.PerPass), report.Capped)

	for steps := 0; steps < maxSteps; steps++ {
		world.Step(dt)
	}

	stats := world.Stats()
	fmt.Printf("placed %d, settled %d, on ground %d, stack height %.1f\n",
		stats.Placed, stats.Static, stats.OnGround, stats.StackHeight)
}

func main() {
	world, catalog, err := SetupScene("medium", &SimpleDebugger{})
	if err != nil {
		log.Fatal(err)
	}

	if err := RunDrops(world, catalog); err != nil {
		log.Fatal(err)
	}
	RemoveBase(world)
}
