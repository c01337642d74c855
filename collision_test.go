package cairn

import (
	"testing"

	"github.com/akmonengine/cairn/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// =============================================================================
// Broad and narrow phase
// =============================================================================

func TestBroadPhaseFiltersBodies(t *testing.T) {
	w := newTestWorld()
	body := dropBody(w, 1, createSquare(), mgl64.Vec2{200, 350})
	static := placeStatic(w, 2, createSquare(), mgl64.Vec2{200, 380})
	dropBody(w, 3, createSquare(), mgl64.Vec2{210, 370}) // dynamic, ignored
	held := placeStatic(w, 4, createSquare(), mgl64.Vec2{190, 370})
	held.IsHeld = true
	w.rebuildGrid()

	candidates := BroadPhase(w.SpatialGrid, body, body.AABB())
	if len(candidates) != 1 || candidates[0] != static {
		t.Errorf("Expected only the settled neighbour, got %d candidates", len(candidates))
	}
}

func TestNarrowPhaseSlop(t *testing.T) {
	body := actor.NewBody(1, createSquare(), mgl64.Vec2{0, 0})

	tests := []struct {
		name     string
		offsetY  float64
		expected int
	}{
		{"flush", 32, 0},
		{"within slop", 31.7, 0},
		{"sinking", 28, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := actor.NewBody(2, createSquare(), mgl64.Vec2{0, tt.offsetY})
			if got := len(NarrowPhase(body, []*actor.Body{other}, 0.5)); got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

// =============================================================================
// Supports and contacts
// =============================================================================

func TestTouchingSupports(t *testing.T) {
	w := newTestWorld()
	base := placeStatic(w, 1, createSquare(), mgl64.Vec2{200, testGround - 16})
	beside := placeStatic(w, 2, createSquare(), mgl64.Vec2{232.2, testGround - 16})
	w.rebuildGrid()

	tests := []struct {
		name     string
		position mgl64.Vec2
		expected []*actor.Body
	}{
		{"resting on base", mgl64.Vec2{200, testGround - 48}, []*actor.Body{base}},
		{"within reach above", mgl64.Vec2{200, testGround - 50}, []*actor.Body{base}},
		{"too high", mgl64.Vec2{200, testGround - 60}, nil},
		{"bridging both", mgl64.Vec2{216, testGround - 48}, []*actor.Body{base, beside}},
		{"no horizontal overlap", mgl64.Vec2{300, testGround - 48}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := actor.NewBody(10, createSquare(), tt.position)
			got := w.touchingSupports(body)
			if len(got) != len(tt.expected) {
				t.Fatalf("Expected %d supports, got %d", len(tt.expected), len(got))
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Support %d: expected body %d, got %d", i, tt.expected[i].ID, got[i].ID)
				}
			}
		})
	}
}

func TestSupportContacts(t *testing.T) {
	w := newTestWorld()
	base := placeStatic(w, 1, createSquare(), mgl64.Vec2{200, testGround - 16})

	tests := []struct {
		name     string
		x        float64
		expected int
	}{
		{"aligned", 200, 2},
		{"half off", 220, 1},
		{"hanging", 240, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := actor.NewBody(2, createSquare(), mgl64.Vec2{tt.x, testGround - 48})
			if got := len(w.supportContacts(body, []*actor.Body{base})); got != tt.expected {
				t.Errorf("Expected %d contacts, got %d", tt.expected, got)
			}
		})
	}
}

func TestGroundContactsAndFlatness(t *testing.T) {
	w := newTestWorld()

	flat := actor.NewBody(1, createIsoTriangle(), mgl64.Vec2{200, testGround - 16})
	contacts := w.groundContacts(flat)
	if len(contacts) != 2 || !w.isFlat(contacts) {
		t.Errorf("Expected a flat base of 2 contacts, got %d", len(contacts))
	}
	for _, c := range contacts {
		if !c.OnGround() {
			t.Errorf("Ground contacts have no support body")
		}
	}

	apex := actor.NewBody(2, createIsoTriangle(), mgl64.Vec2{200, testGround - 18})
	apex.Transform.Rotation = actor.Rotation180
	if contacts := w.groundContacts(apex); len(contacts) != 1 || w.isFlat(contacts) {
		t.Errorf("Expected a single ground contact, got %d", len(contacts))
	}
}

func TestChoosePivot(t *testing.T) {
	w := newTestWorld()
	support := placeStatic(w, 1, createSquare(), mgl64.Vec2{200, testGround - 16})

	// Overhanging to the right: the pivot is the support corner
	body := actor.NewBody(2, createSquare(), mgl64.Vec2{226, testGround - 48})
	pivot := w.choosePivot(body, []*actor.Body{support})
	if pivot != (mgl64.Vec2{216, testGround - 32}) {
		t.Errorf("Expected pivot at the support corner, got %v", pivot)
	}
	if w.tipDirection(body, pivot, false) != 1 {
		t.Errorf("Expected a clockwise tip")
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkWorldStep(b *testing.B) {
	w := NewWorld(testGround, DefaultConfig(), 1)
	for i := range 40 {
		placeStatic(w, actor.BodyID(i+1), createSquare(), mgl64.Vec2{float64(i%10) * 40, testGround - 16 - float64(i/10)*32})
	}
	for i := range 10 {
		dropBody(w, actor.BodyID(100+i), createIsoTriangle(), mgl64.Vec2{float64(i) * 40, -1000})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Step(frameDt)
	}
}
