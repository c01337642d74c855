package interaction

import (
	"testing"

	"github.com/akmonengine/cairn"
	"github.com/akmonengine/cairn/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	testGround = 700.0
	frameDt    = 1.0 / 60.0
)

// Test helper functions

func createSquare() *actor.Polygon {
	return actor.MustPolygon("quad_square_small", []actor.Anchor{
		{Point: mgl64.Vec2{-16, -16}},
		{Point: mgl64.Vec2{16, -16}},
		{Point: mgl64.Vec2{16, 16}},
		{Point: mgl64.Vec2{-16, 16}},
	}, 32, 32)
}

func createTriangle() *actor.Polygon {
	return actor.MustPolygon("tri_iso_medium", []actor.Anchor{
		{Point: mgl64.Vec2{-22, 16}},
		{Point: mgl64.Vec2{22, 16}},
		{Point: mgl64.Vec2{0, -18}},
	}, 44, 34)
}

func trayRegion() actor.AABB {
	return actor.AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{480, 110}}
}

func newTestController() *Controller {
	world := cairn.NewWorld(testGround, cairn.DefaultConfig(), 1)
	tray := NewTray(trayRegion(), []SourceSpec{
		{Polygon: createSquare(), Count: 2},
		{Polygon: createTriangle(), Count: 1},
	})
	return NewController(world, tray)
}

// slotCenter returns the point in the middle of slot i
func slotCenter(tray *Tray, i int) mgl64.Vec2 {
	return tray.Sources[i].Slot.Center()
}

func step(c *Controller, n int) {
	for range n {
		c.World.Step(frameDt)
	}
}

// =============================================================================
// Tray
// =============================================================================

func TestNewTrayLayout(t *testing.T) {
	tray := NewTray(trayRegion(), []SourceSpec{
		{Polygon: createSquare(), Count: 3},
		{Polygon: createTriangle(), Count: 2},
	})

	if len(tray.Sources) != 2 {
		t.Fatalf("Expected 2 sources, got %d", len(tray.Sources))
	}

	tests := []struct {
		name     string
		index    int
		expected actor.AABB
	}{
		{"first slot", 0, actor.AABB{Min: mgl64.Vec2{10, 0}, Max: mgl64.Vec2{86, 110}}},
		{"second slot", 1, actor.AABB{Min: mgl64.Vec2{90, 0}, Max: mgl64.Vec2{166, 110}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := tray.Sources[tt.index].Slot
			if !slot.Min.ApproxEqual(tt.expected.Min) || !slot.Max.ApproxEqual(tt.expected.Max) {
				t.Errorf("Expected slot %v, got %v", tt.expected, slot)
			}
		})
	}

	if tray.Sources[0].Initial != 3 || tray.Sources[1].Initial != 2 {
		t.Errorf("Expected initial counts 3 and 2, got %d and %d", tray.Sources[0].Initial, tray.Sources[1].Initial)
	}
	if tray.Remaining() != 5 {
		t.Errorf("Expected 5 remaining, got %d", tray.Remaining())
	}
}

func TestTraySourceAt(t *testing.T) {
	tray := NewTray(trayRegion(), []SourceSpec{
		{Polygon: createSquare(), Count: 1},
		{Polygon: createTriangle(), Count: 1},
	})

	tests := []struct {
		name     string
		point    mgl64.Vec2
		expected string
	}{
		{"first slot", mgl64.Vec2{48, 55}, "quad_square_small"},
		{"first slot hit slop", mgl64.Vec2{12, 55}, "quad_square_small"},
		{"second slot", mgl64.Vec2{128, 55}, "tri_iso_medium"},
		{"between slots", mgl64.Vec2{88, 55}, ""},
		{"empty tray area", mgl64.Vec2{400, 55}, ""},
		{"below tray", mgl64.Vec2{48, 300}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := tray.SourceAt(tt.point)
			got := ""
			if source != nil {
				got = source.Polygon.ID
			}
			if got != tt.expected {
				t.Errorf("Expected source %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestTrayReset(t *testing.T) {
	tray := NewTray(trayRegion(), []SourceSpec{{Polygon: createSquare(), Count: 2}})
	tray.Sources[0].Count = 0

	tray.Reset()

	if tray.Sources[0].Count != 2 {
		t.Errorf("Expected count restored to 2, got %d", tray.Sources[0].Count)
	}
	if tray.Source("quad_square_small") != tray.Sources[0] {
		t.Errorf("Expected lookup by polygon ID to find the source")
	}
	if tray.Source("missing") != nil {
		t.Errorf("Expected nil for unknown polygon ID")
	}
}

// =============================================================================
// Spawning and returning
// =============================================================================

func TestSpawnFromTray(t *testing.T) {
	c := newTestController()
	pos := slotCenter(c.Tray, 0)

	body := c.PointerDown(pos, 1)
	if body == nil {
		t.Fatal("Expected a body to be spawned")
	}
	if !body.IsHeld {
		t.Errorf("Expected spawned body to be held")
	}
	if !body.Transform.Position.ApproxEqual(pos) {
		t.Errorf("Expected body at %v, got %v", pos, body.Transform.Position)
	}
	if c.Tray.Sources[0].Count != 1 {
		t.Errorf("Expected source count 1, got %d", c.Tray.Sources[0].Count)
	}
	if len(c.World.Bodies) != 1 {
		t.Errorf("Expected 1 body in world, got %d", len(c.World.Bodies))
	}
	if c.StateOf(body) != Held {
		t.Errorf("Expected state held, got %v", c.StateOf(body))
	}
}

func TestSpawnFromEmptySource(t *testing.T) {
	c := newTestController()
	pos := slotCenter(c.Tray, 1)

	first := c.PointerDown(pos, 1)
	c.PointerMove(mgl64.Vec2{240, 300})
	c.PointerUp(mgl64.Vec2{240, 300})

	second := c.PointerDown(pos, 1)

	if first == nil {
		t.Fatal("Expected the first press to spawn")
	}
	if second != nil {
		t.Errorf("Expected no body from an empty source, got %d", second.ID)
	}
	if c.Tray.Sources[1].Count != 0 {
		t.Errorf("Expected source count 0, got %d", c.Tray.Sources[1].Count)
	}
}

func TestSpawnIDsAreUnique(t *testing.T) {
	c := newTestController()
	pos := slotCenter(c.Tray, 0)

	a := c.PointerDown(pos, 1)
	c.PointerUp(mgl64.Vec2{100, 300})
	b := c.PointerDown(pos, 1)
	c.PointerUp(mgl64.Vec2{300, 300})

	if a.ID == b.ID {
		t.Errorf("Expected distinct IDs, got %d twice", a.ID)
	}
}

func TestReturnToTray(t *testing.T) {
	c := newTestController()

	returned := 0
	c.World.Events.Subscribe(cairn.ON_RETURN, func(event cairn.Event) { returned++ })

	body := c.PointerDown(slotCenter(c.Tray, 0), 1)
	c.PointerMove(mgl64.Vec2{240, 300})
	c.PointerMove(mgl64.Vec2{240, 50})
	c.PointerUp(mgl64.Vec2{240, 50})
	step(c, 1)

	if len(c.World.Bodies) != 0 {
		t.Errorf("Expected the body to leave the world, got %d bodies", len(c.World.Bodies))
	}
	if c.Tray.Sources[0].Count != 2 {
		t.Errorf("Expected source count back to 2, got %d", c.Tray.Sources[0].Count)
	}
	if c.StateOf(body) != InTray {
		t.Errorf("Expected state in tray, got %v", c.StateOf(body))
	}
	if c.Held() != nil {
		t.Errorf("Expected nothing held")
	}
	if returned != 1 {
		t.Errorf("Expected 1 return event, got %d", returned)
	}
}

func TestReturnSettledBodyDemotesStack(t *testing.T) {
	c := newTestController()
	square := createSquare()
	bottom := actor.NewBody(100, square, mgl64.Vec2{240, testGround - 16})
	top := actor.NewBody(101, square, mgl64.Vec2{240, testGround - 48})
	c.World.AddBody(bottom)
	c.World.AddBody(top)
	bottom.Settle()
	top.Settle()

	c.PointerDown(mgl64.Vec2{240, testGround - 16}, 1)
	if c.Held() != bottom {
		t.Fatal("Expected the bottom body to be picked")
	}
	if top.IsStatic {
		t.Errorf("Expected the top body to be demoted once its support was picked up")
	}

	c.PointerUp(mgl64.Vec2{40, 40})

	if c.Tray.Sources[0].Count != 3 {
		t.Errorf("Expected the returned body to refill its source, got %d", c.Tray.Sources[0].Count)
	}
}

// =============================================================================
// Dragging and releasing
// =============================================================================

func TestDragAndDrop(t *testing.T) {
	c := newTestController()

	body := c.PointerDown(slotCenter(c.Tray, 0), 1)
	c.PointerMove(mgl64.Vec2{240, 300})

	if !body.Transform.Position.ApproxEqual(mgl64.Vec2{240, 300}) {
		t.Errorf("Expected body to follow the pointer, got %v", body.Transform.Position)
	}

	step(c, 10)
	if !body.Transform.Position.ApproxEqual(mgl64.Vec2{240, 300}) {
		t.Errorf("Expected held body to stay frozen, got %v", body.Transform.Position)
	}

	c.PointerUp(mgl64.Vec2{240, 300})
	if c.StateOf(body) != Falling {
		t.Errorf("Expected state falling after release, got %v", c.StateOf(body))
	}

	for range 400 {
		c.World.Step(frameDt)
		if body.IsStatic {
			break
		}
	}

	if c.StateOf(body) != Settled {
		t.Fatalf("Expected the body to settle, got %v", c.StateOf(body))
	}
	if lowest := body.LowestY(); lowest < testGround-1 || lowest > testGround+0.01 {
		t.Errorf("Expected the body to rest on the ground, lowest y %v", lowest)
	}
}

func TestPickKeepsGrabOffset(t *testing.T) {
	c := newTestController()
	body := actor.NewBody(100, createSquare(), mgl64.Vec2{200, testGround - 16})
	c.World.AddBody(body)
	body.Settle()

	c.PointerDown(mgl64.Vec2{205, testGround - 20}, 1)
	c.PointerMove(mgl64.Vec2{305, 400})

	expected := mgl64.Vec2{300, 404}
	if !body.Transform.Position.ApproxEqual(expected) {
		t.Errorf("Expected %v, got %v", expected, body.Transform.Position)
	}
	if body.IsStatic {
		t.Errorf("Expected picked body to be awake")
	}
}

func TestPickTopmost(t *testing.T) {
	c := newTestController()
	square := createSquare()
	under := actor.NewBody(100, square, mgl64.Vec2{200, 300})
	over := actor.NewBody(101, square, mgl64.Vec2{205, 300})
	c.World.AddBody(under)
	c.World.AddBody(over)

	picked := c.PointerDown(mgl64.Vec2{202, 300}, 1)

	if picked != over {
		t.Errorf("Expected the last added body to be picked")
	}
}

func TestPickMiss(t *testing.T) {
	c := newTestController()
	c.World.AddBody(actor.NewBody(100, createSquare(), mgl64.Vec2{200, 300}))

	tests := []struct {
		name  string
		point mgl64.Vec2
	}{
		{"right of pick box", mgl64.Vec2{220, 300}},
		{"below pick box", mgl64.Vec2{200, 320}},
		{"far away", mgl64.Vec2{400, 600}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if picked := c.PointerDown(tt.point, 1); picked != nil {
				t.Errorf("Expected no pick at %v", tt.point)
				c.PointerUp(tt.point)
			}
		})
	}
}

func TestPickRotatedUsesSwappedSize(t *testing.T) {
	c := newTestController()
	body := actor.NewBody(100, createTriangle(), mgl64.Vec2{200, 300})
	body.Transform.Rotation = actor.Rotation90
	c.World.AddBody(body)

	// 44x34 sprite turned a quarter: pick half extents become 20.4 by 26.4
	if picked := c.PointerDown(mgl64.Vec2{200, 325}, 1); picked != body {
		t.Errorf("Expected the rotated body to be picked")
	}
	c.PointerUp(mgl64.Vec2{200, 325})

	if picked := c.PointerDown(mgl64.Vec2{222, 300}, 1); picked != nil {
		t.Errorf("Expected no pick outside the rotated box")
	}
}

// =============================================================================
// Rotation
// =============================================================================

func TestRotateHeld(t *testing.T) {
	c := newTestController()

	if c.Rotate(90) {
		t.Errorf("Expected rotate to fail with nothing held")
	}

	body := c.PointerDown(slotCenter(c.Tray, 0), 1)
	if !c.Rotate(90) {
		t.Fatal("Expected rotate to succeed while holding")
	}

	if body.Transform.Rotation != actor.Rotation90 {
		t.Errorf("Expected logical rotation 90, got %v", body.Transform.Rotation)
	}
	if body.DisplayRotation != 0 {
		t.Errorf("Expected display rotation to lag, got %v", body.DisplayRotation)
	}

	step(c, 1)
	if body.DisplayRotation <= 0 || body.DisplayRotation >= 90 {
		t.Errorf("Expected display rotation easing toward 90, got %v", body.DisplayRotation)
	}

	step(c, 120)
	if body.DisplayRotation != 90 {
		t.Errorf("Expected display rotation to reach 90, got %v", body.DisplayRotation)
	}
}

func TestRotateWraps(t *testing.T) {
	c := newTestController()
	body := c.PointerDown(slotCenter(c.Tray, 0), 1)

	for range 4 {
		c.Rotate(90)
	}

	if body.Transform.Rotation != actor.Rotation0 {
		t.Errorf("Expected rotation to wrap to 0, got %v", body.Transform.Rotation)
	}

	c.Rotate(-90)
	if body.Transform.Rotation != actor.Rotation270 {
		t.Errorf("Expected counter-clockwise turn to 270, got %v", body.Transform.Rotation)
	}
}

func TestSecondTouchRotatesOnce(t *testing.T) {
	c := newTestController()
	body := c.PointerDown(slotCenter(c.Tray, 0), 1)
	c.PointerMove(mgl64.Vec2{240, 300})

	c.PointerDown(mgl64.Vec2{100, 500}, 2)
	c.PointerDown(mgl64.Vec2{100, 500}, 2)

	if body.Transform.Rotation != actor.Rotation90 {
		t.Errorf("Expected a single quarter turn, got %v", body.Transform.Rotation)
	}
	if c.Held() != body {
		t.Errorf("Expected the second touch to keep the same body held")
	}

	c.PointerUp(mgl64.Vec2{240, 300})
	c.PointerDown(body.Transform.Position, 1)
	c.PointerDown(mgl64.Vec2{100, 500}, 2)

	if body.Transform.Rotation != actor.Rotation180 {
		t.Errorf("Expected the latch to reset after release, got %v", body.Transform.Rotation)
	}
}

// =============================================================================
// Reset and snapshot
// =============================================================================

func TestControllerReset(t *testing.T) {
	c := newTestController()
	c.PointerDown(slotCenter(c.Tray, 0), 1)
	c.PointerUp(mgl64.Vec2{240, 300})
	c.PointerDown(slotCenter(c.Tray, 1), 1)

	c.Reset()

	if len(c.World.Bodies) != 0 {
		t.Errorf("Expected an empty world, got %d bodies", len(c.World.Bodies))
	}
	if c.Held() != nil {
		t.Errorf("Expected nothing held after reset")
	}
	if c.Tray.Remaining() != 3 {
		t.Errorf("Expected the tray refilled to 3, got %d", c.Tray.Remaining())
	}
}

func TestSnapshot(t *testing.T) {
	c := newTestController()
	body := c.PointerDown(slotCenter(c.Tray, 0), 1)
	c.PointerMove(mgl64.Vec2{240, 400})

	snap := c.Snapshot()
	if !snap.Held || snap.InTray != 2 || snap.Placed != 0 {
		t.Errorf("Expected held with 2 in tray and nothing placed, got %+v", snap)
	}

	c.PointerUp(mgl64.Vec2{240, 400})
	for range 400 {
		c.World.Step(frameDt)
		if body.IsStatic {
			break
		}
	}

	snap = c.Snapshot()
	if snap.Held {
		t.Errorf("Expected nothing held")
	}
	if snap.Static != 1 || snap.OnGround != 1 {
		t.Errorf("Expected 1 static body on the ground, got %+v", snap)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{InTray, "in tray"},
		{Held, "held"},
		{Falling, "falling"},
		{Settled, "settled"},
		{State(9), "State(9)"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("Expected %q, got %q", tt.expected, got)
		}
	}
}
