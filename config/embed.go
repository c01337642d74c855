// Package config loads difficulty presets and the rock catalog from YAML. The files
// ship embedded in the binary; a copy on disk takes precedence so they can be tuned
// while the game runs.
package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

const (
	DifficultyFile = "difficulty.yaml"
	CatalogFile    = "catalog.yaml"
)

//go:embed *.yaml
var FS embed.FS

// Load reads name from dir when present, falling back to the embedded copy.
// An empty dir reads the embedded copy only.
func Load(dir, name string) ([]byte, error) {
	if dir != "" {
		if data, err := os.ReadFile(filepath.Join(dir, name)); err == nil {
			return data, nil
		}
	}

	data, err := FS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", name, err)
	}

	return data, nil
}
