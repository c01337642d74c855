package cairn

import (
	"math"
	"sort"

	"github.com/akmonengine/cairn/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ============================================================================
// Types
// ============================================================================

// CellKey - coordinates of a cell in the plane
type CellKey struct {
	X, Y int
}

// Cell - bodies overlapping a cell
type Cell struct {
	bodies []*actor.Body
}

// SpatialGrid - uniform hashed grid indexing settled bodies for support queries
type SpatialGrid struct {
	cellSize float64
	cells    []Cell
	cellMask int
}

// ============================================================================
// Constructor
// ============================================================================

// NewSpatialGrid - creates a grid; numCells is rounded up to a power of two
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].bodies = make([]*actor.Body, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

// nextPowerOfTwo - rounds up to the next power of two
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert - adds a body to every cell its AABB covers
func (sg *SpatialGrid) Insert(body *actor.Body) {
	aabb := body.AABB()
	minCell := sg.worldToCell(aabb.Min)
	maxCell := sg.worldToCell(aabb.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			cellIdx := sg.hashCell(CellKey{x, y})
			sg.cells[cellIdx].bodies = append(sg.cells[cellIdx].bodies, body)
		}
	}
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		clear(sg.cells[i].bodies)
		sg.cells[i].bodies = sg.cells[i].bodies[:0]
	}
}

// Query - returns the indexed bodies whose current AABB overlaps box, ordered by ID.
// Entries may be stale: callers filter on the body state they need.
func (sg *SpatialGrid) Query(box actor.AABB) []*actor.Body {
	minCell := sg.worldToCell(box.Min)
	maxCell := sg.worldToCell(box.Max)

	seen := make(map[*actor.Body]struct{})
	found := make([]*actor.Body, 0, 8)
	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			cellIdx := sg.hashCell(CellKey{x, y})
			for _, body := range sg.cells[cellIdx].bodies {
				if _, ok := seen[body]; ok {
					continue
				}
				seen[body] = struct{}{}

				if body.AABB().Overlaps(box) {
					found = append(found, body)
				}
			}
		}
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].ID < found[j].ID
	})

	return found
}

// worldToCell - converts a world position to cell coordinates
func (sg *SpatialGrid) worldToCell(pos mgl64.Vec2) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Y: int(math.Floor(pos.Y() / sg.cellSize)),
	}
}

// hashCell - hashes a cell to an index in the array
func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663)
	return h & sg.cellMask
}
