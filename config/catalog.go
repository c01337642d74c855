package config

import (
	"errors"
	"fmt"

	"github.com/akmonengine/cairn/actor"
	"github.com/akmonengine/cairn/interaction"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownRock  = errors.New("unknown rock")
	ErrUnknownLevel = errors.New("unknown level")
)

type AnchorSpec struct {
	X      float64  `yaml:"x"`
	Y      float64  `yaml:"y"`
	Weight *float64 `yaml:"weight"`
}

type RockSpec struct {
	Anchors []AnchorSpec `yaml:"anchors"`
	DrawW   float64      `yaml:"draw_w"`
	DrawH   float64      `yaml:"draw_h"`
}

type LevelRockSpec struct {
	ID    string `yaml:"id"`
	Count int    `yaml:"count"`
}

type LevelSpec struct {
	ID    int             `yaml:"id"`
	Name  string          `yaml:"name"`
	Goal  string          `yaml:"goal"`
	Rocks []LevelRockSpec `yaml:"rocks"`
}

// Catalog holds the rock templates and the tray composition of each level
type Catalog struct {
	Rocks  map[string]RockSpec `yaml:"rocks"`
	Levels []LevelSpec         `yaml:"levels"`
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", CatalogFile, err)
	}

	return &catalog, nil
}

// LoadCatalog reads the catalog from dir, or the embedded copy
func LoadCatalog(dir string) (*Catalog, error) {
	data, err := Load(dir, CatalogFile)
	if err != nil {
		return nil, err
	}

	return ParseCatalog(data)
}

// Polygon builds the validated template for a rock id
func (c *Catalog) Polygon(id string) (*actor.Polygon, error) {
	spec, ok := c.Rocks[id]
	if !ok {
		return nil, fmt.Errorf("config: %w %q", ErrUnknownRock, id)
	}

	anchors := make([]actor.Anchor, len(spec.Anchors))
	points := make([]mgl64.Vec2, len(spec.Anchors))
	for i, a := range spec.Anchors {
		anchors[i] = actor.Anchor{Point: mgl64.Vec2{a.X, a.Y}, Weight: a.Weight}
		points[i] = anchors[i].Point
	}

	drawW, drawH := spec.DrawW, spec.DrawH
	if drawW <= 0 || drawH <= 0 {
		bounds := actor.ComputeAABB(points)
		drawW, drawH = bounds.Width(), bounds.Height()
	}

	polygon, err := actor.NewPolygon(id, anchors, drawW, drawH)
	if err != nil {
		return nil, fmt.Errorf("config: rock %q: %w", id, err)
	}

	return polygon, nil
}

func (c *Catalog) Level(id int) (*LevelSpec, error) {
	for i := range c.Levels {
		if c.Levels[i].ID == id {
			return &c.Levels[i], nil
		}
	}

	return nil, fmt.Errorf("config: %w %d", ErrUnknownLevel, id)
}

// Tray resolves a level's rock list into tray sources, in level order
func (c *Catalog) Tray(levelID int) ([]interaction.SourceSpec, error) {
	level, err := c.Level(levelID)
	if err != nil {
		return nil, err
	}

	specs := make([]interaction.SourceSpec, 0, len(level.Rocks))
	for _, rock := range level.Rocks {
		polygon, err := c.Polygon(rock.ID)
		if err != nil {
			return nil, fmt.Errorf("config: level %d: %w", levelID, err)
		}
		specs = append(specs, interaction.SourceSpec{Polygon: polygon, Count: rock.Count})
	}

	return specs, nil
}
