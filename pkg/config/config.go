// Package config handles quadtree configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/galaxyquad/internal/logger"
	"github.com/Faultbox/galaxyquad/pkg/geom"
	"github.com/Faultbox/galaxyquad/pkg/math"
	"github.com/Faultbox/galaxyquad/pkg/quadtree"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all settings needed to build a tree.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Root      RootConfig      `yaml:"root"`
	LOD       LODConfig       `yaml:"lod"`
	Traversal TraversalConfig `yaml:"traversal"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WorldConfig holds the seed every tile hash is derived from.
type WorldConfig struct {
	Seed uint64 `yaml:"seed"`
}

// RootConfig describes the root cell.
type RootConfig struct {
	CenterX    float64 `yaml:"center_x"`
	CenterY    float64 `yaml:"center_y"`
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`
}

// LODConfig holds the level-of-detail policy.
type LODConfig struct {
	CellsAcross int `yaml:"cells_across"` // Cells across the shorter viewport side
	MinDepth    int `yaml:"min_depth"`
	MaxDepth    int `yaml:"max_depth"`
}

// TraversalConfig controls parallel traversal. Workers <= 1 keeps it sequential.
type TraversalConfig struct {
	Workers       int `yaml:"workers"`
	ParallelDepth int `yaml:"parallel_depth"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	Console bool   `yaml:"console"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	opts := quadtree.DefaultOptions()
	return &Config{
		World: WorldConfig{
			Seed: opts.WorldSeed,
		},
		Root: RootConfig{
			CenterX:    0,
			CenterY:    0,
			HalfWidth:  512,
			HalfHeight: 512,
		},
		LOD: LODConfig{
			CellsAcross: opts.CellsAcross,
			MinDepth:    opts.MinDepth,
			MaxDepth:    opts.MaxDepth,
		},
		Traversal: TraversalConfig{
			Workers:       opts.Workers,
			ParallelDepth: opts.ParallelDepth,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
			Console: true,
		},
	}
}

// TreeOptions converts the config into quadtree options.
func (c *Config) TreeOptions() quadtree.Options {
	return quadtree.Options{
		WorldSeed: c.World.Seed,
		Root: geom.AABB{
			Center: math.Vec2{X: c.Root.CenterX, Y: c.Root.CenterY},
			Half:   math.Vec2{X: c.Root.HalfWidth, Y: c.Root.HalfHeight},
		},
		CellsAcross:   c.LOD.CellsAcross,
		MinDepth:      c.LOD.MinDepth,
		MaxDepth:      c.LOD.MaxDepth,
		Workers:       c.Traversal.Workers,
		ParallelDepth: c.Traversal.ParallelDepth,
	}
}

// Validate rejects configs a tree could not be built from.
func (c *Config) Validate() error {
	if err := c.TreeOptions().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging: %w", ErrInvalidConfig, err)
	}
	return nil
}

// NewTree validates the config and builds a tree from it.
func (c *Config) NewTree() (*quadtree.Tree, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return quadtree.New(c.TreeOptions())
}

// InitLogging configures the shared logger from the logging section.
func (c *Config) InitLogging() error {
	fileCfg := logger.FileConfig{}
	if c.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(c.Logging.LogFile)
	}
	return logger.InitWithFileConfig(c.Logging.Level, fileCfg, c.Logging.Console)
}
