package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/dnd/pkg/dnd"
	dnderrors "github.com/go-drift/dnd/pkg/errors"
	"github.com/go-drift/dnd/pkg/scene"
)

// FileName is the optional per-directory configuration file.
const FileName = "dnd.yaml"

// Config represents the optional dnd.yaml configuration.
type Config struct {
	Settings scene.SettingsDoc `yaml:"settings,omitempty"`
	Replay   ReplayConfig      `yaml:"replay,omitempty"`
	Play     PlayConfig        `yaml:"play,omitempty"`
}

// ReplayConfig contains replay settings.
type ReplayConfig struct {
	Scale int `yaml:"scale,omitempty"`
}

// PlayConfig contains interactive terminal settings.
type PlayConfig struct {
	Sound      bool    `yaml:"sound,omitempty"`
	CellWidth  float64 `yaml:"cellWidth,omitempty"`
	CellHeight float64 `yaml:"cellHeight,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Path       string
	Settings   scene.SettingsDoc
	Scale      int
	Sound      bool
	CellWidth  float64
	CellHeight float64
}

// LoadOptional reads dnd.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := LoadFile(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// LoadFile reads the configuration at path. A missing file is an error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Resolve loads dnd.yaml from dir (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	r, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(filepath.Join(dir, FileName)); statErr == nil {
		r.Path = filepath.Join(dir, FileName)
	}
	return r, nil
}

// ResolveFile is Resolve for an explicit configuration file.
func ResolveFile(path string) (*Resolved, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	r, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	r.Path = path
	return r, nil
}

// Resolve validates cfg and fills in defaults.
func (cfg *Config) Resolve() (*Resolved, error) {
	r := &Resolved{
		Settings:   cfg.Settings,
		Scale:      cfg.Replay.Scale,
		Sound:      cfg.Play.Sound,
		CellWidth:  cfg.Play.CellWidth,
		CellHeight: cfg.Play.CellHeight,
	}
	if r.Scale == 0 {
		r.Scale = 1
	}
	if r.CellWidth == 0 {
		r.CellWidth = 5
	}
	if r.CellHeight == 0 {
		r.CellHeight = 10
	}

	if r.Scale < 1 || r.Scale > 8 {
		return nil, invalid(fmt.Errorf("replay.scale must be between 1 and 8 (got %d)", r.Scale))
	}
	if r.CellWidth < 0 || r.CellHeight < 0 {
		return nil, invalid(fmt.Errorf("play cell size must be positive (got %gx%g)", r.CellWidth, r.CellHeight))
	}
	return r, nil
}

func invalid(err error) error {
	return &dnderrors.DndError{Op: "config.Resolve", Kind: dnderrors.KindConfig, Err: err}
}

// Apply layers the configured settings over the scene's own overrides and
// rebuilds the scene's resolved settings.
func (r *Resolved) Apply(sc *scene.Scene) {
	sc.Settings = sc.File.Settings.Merge(r.Settings).Apply(dnd.DefaultSettings())
}
