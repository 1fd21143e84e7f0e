// Copyright OMD Tools Inc., 2026. All rights reserved.

// Package profile saves and loads named conversion presets. A user can
// store the options for a recurring conversion (target format, PDF engine,
// heading thresholds) and replay them without retyping flags.
package profile

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/omdtools/omd/pkg/types"
)

// Profile is one named conversion preset.
type Profile struct {
	Name      string                `yaml:"name"`
	Format    types.Format          `yaml:"format"`
	OutputDir string                `yaml:"output_dir,omitempty"`
	PDFEngine string                `yaml:"pdf_engine,omitempty"`
	Heuristic types.HeuristicConfig `yaml:"heuristic,omitempty"`
}

// ImportConfig expands the profile into import settings.
func (p Profile) ImportConfig() types.ImportConfig {
	return types.ImportConfig{
		OutputDir: p.OutputDir,
		Heuristic: p.Heuristic,
	}
}

// ExportConfig expands the profile into export settings.
func (p Profile) ExportConfig() types.ExportConfig {
	return types.ExportConfig{PDFEngine: p.PDFEngine}
}

// File is the on-disk representation of a set of profiles.
type File struct {
	Profiles []Profile `yaml:"profiles"`
	Saved    time.Time `yaml:"saved"`
}

// Find returns the profile with the given name.
func (f *File) Find(name string) (Profile, error) {
	for _, p := range f.Profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("no profile named %q", name)
}

// Write saves profiles to a YAML file.
func Write(path string, profiles []Profile) error {
	f := File{Profiles: profiles, Saved: time.Now()}
	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("marshaling profiles: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Read loads a previously saved profile file from disk.
func Read(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing profile file: %w", err)
	}
	return &f, nil
}
