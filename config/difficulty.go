package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/akmonengine/cairn"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
)

// DefaultDifficulty is used when no preset is named
const DefaultDifficulty = "easy"

// Difficulty is a named set of stability thresholds and contact counts
type Difficulty struct {
	Name string `yaml:"-"`

	MinOverlapRatio       float64 `yaml:"min_overlap_ratio"`
	MinOverlapAbsolute    float64 `yaml:"min_overlap_absolute"`
	MinSupportBandWidth   float64 `yaml:"min_support_band_width"`
	CentroidTolerance     float64 `yaml:"centroid_tolerance"`
	TriangleSupportRatio  float64 `yaml:"triangle_support_ratio"`
	PointDownOverlapRatio float64 `yaml:"point_down_overlap_ratio"`
	TumbleContacts        int     `yaml:"tumble_contacts"`
	SettleContacts        int     `yaml:"settle_contacts"`
}

// ParseDifficulties decodes a preset file keyed by difficulty name
func ParseDifficulties(data []byte) (map[string]Difficulty, error) {
	var presets map[string]Difficulty
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", DifficultyFile, err)
	}

	for name, d := range presets {
		d.Name = name
		if err := d.Validate(); err != nil {
			return nil, err
		}
		presets[name] = d
	}

	return presets, nil
}

// LoadDifficulty reads the preset file from dir (or the embedded copy) and returns the named preset
func LoadDifficulty(dir, name string) (Difficulty, error) {
	data, err := Load(dir, DifficultyFile)
	if err != nil {
		return Difficulty{}, err
	}

	presets, err := ParseDifficulties(data)
	if err != nil {
		return Difficulty{}, err
	}

	d, ok := presets[name]
	if !ok {
		return Difficulty{}, fmt.Errorf("config: %w %q", ErrUnknownDifficulty, name)
	}

	return d, nil
}

// DifficultyNames lists the presets of a parsed file, sorted
func DifficultyNames(presets map[string]Difficulty) []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func (d Difficulty) Validate() error {
	switch {
	case d.MinOverlapRatio < 0 || d.MinOverlapRatio > 1:
		return fmt.Errorf("config: %w %q: min_overlap_ratio %v out of [0, 1]", ErrInvalidDifficulty, d.Name, d.MinOverlapRatio)
	case d.PointDownOverlapRatio < 0 || d.PointDownOverlapRatio > 1:
		return fmt.Errorf("config: %w %q: point_down_overlap_ratio %v out of [0, 1]", ErrInvalidDifficulty, d.Name, d.PointDownOverlapRatio)
	case d.TriangleSupportRatio < 0:
		return fmt.Errorf("config: %w %q: negative triangle_support_ratio", ErrInvalidDifficulty, d.Name)
	case d.MinOverlapAbsolute < 0 || d.MinSupportBandWidth < 0 || d.CentroidTolerance < 0:
		return fmt.Errorf("config: %w %q: negative distance", ErrInvalidDifficulty, d.Name)
	case d.TumbleContacts < 1 || d.SettleContacts <= d.TumbleContacts:
		return fmt.Errorf("config: %w %q: need 1 <= tumble_contacts < settle_contacts", ErrInvalidDifficulty, d.Name)
	}

	return nil
}

// Apply writes the preset into a world configuration, leaving the other fields untouched
func (d Difficulty) Apply(cfg *cairn.Config) {
	cfg.Stability.MinOverlapRatio = d.MinOverlapRatio
	cfg.Stability.MinOverlapAbsolute = d.MinOverlapAbsolute
	cfg.Stability.MinSupportBandWidth = d.MinSupportBandWidth
	cfg.Stability.CentroidTolerance = d.CentroidTolerance
	cfg.Stability.TriangleSupportRatio = d.TriangleSupportRatio
	cfg.Stability.PointDownOverlapRatio = d.PointDownOverlapRatio
	cfg.TumbleContacts = d.TumbleContacts
	cfg.SettleContacts = d.SettleContacts
}
