package interaction

import (
	"github.com/akmonengine/cairn/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Slot layout along the tray, in pixels
const (
	SlotWidth   = 64.0
	SlotPadding = 16.0
	SlotMargin  = 16.0
	// SlotHitSlop widens each slot hit box on both sides
	SlotHitSlop = 6.0
)

// SourceSpec declares one rock type offered by the tray
type SourceSpec struct {
	Polygon *actor.Polygon
	Count   int
}

// Source is a tray slot handing out bodies of one template
type Source struct {
	Polygon *actor.Polygon
	Count   int
	Initial int
	Slot    actor.AABB
}

// Tray is the strip along the top of the screen holding the sources
type Tray struct {
	Region  actor.AABB
	Sources []*Source
}

// NewTray lays the sources out left to right inside region
func NewTray(region actor.AABB, specs []SourceSpec) *Tray {
	tray := &Tray{Region: region}
	for i, spec := range specs {
		x0 := region.Min.X() + SlotMargin + float64(i)*(SlotWidth+SlotPadding) - SlotHitSlop
		tray.Sources = append(tray.Sources, &Source{
			Polygon: spec.Polygon,
			Count:   spec.Count,
			Initial: spec.Count,
			Slot: actor.AABB{
				Min: mgl64.Vec2{x0, region.Min.Y()},
				Max: mgl64.Vec2{x0 + SlotWidth + 2*SlotHitSlop, region.Max.Y()},
			},
		})
	}

	return tray
}

// Contains reports whether p is over the tray
func (t *Tray) Contains(p mgl64.Vec2) bool {
	return t.Region.ContainsPoint(p)
}

// SourceAt returns the source whose slot contains p, or nil
func (t *Tray) SourceAt(p mgl64.Vec2) *Source {
	for _, source := range t.Sources {
		if source.Slot.ContainsPoint(p) {
			return source
		}
	}

	return nil
}

// Source returns the source handing out the given template, or nil
func (t *Tray) Source(polygonID string) *Source {
	for _, source := range t.Sources {
		if source.Polygon.ID == polygonID {
			return source
		}
	}

	return nil
}

// Remaining is the number of bodies left in the tray
func (t *Tray) Remaining() int {
	n := 0
	for _, source := range t.Sources {
		n += source.Count
	}

	return n
}

// Reset restores every source to its initial count
func (t *Tray) Reset() {
	for _, source := range t.Sources {
		source.Count = source.Initial
	}
}
