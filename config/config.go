// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is returned by Validate when a loaded value is out of range.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Terrain   TerrainConfig   `yaml:"terrain"`
	Grains    GrainsConfig    `yaml:"grains"`
	Camera    CameraConfig    `yaml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the terrain domain size in world units (one unit per height sample).
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PhysicsConfig holds the per-tick kernel constants.
type PhysicsConfig struct {
	Gravity             float64 `yaml:"gravity"`              // Vertical acceleration per tick (negative = down)
	TerrainRestitution  float64 `yaml:"terrain_restitution"`  // Velocity retained after a terrain bounce
	ParticleRestitution float64 `yaml:"particle_restitution"` // Velocity retained after a grain-grain bounce
	MinDistance         float64 `yaml:"min_distance"`         // Sum of radii; closer pairs collide
	CellSize            float64 `yaml:"cell_size"`            // Spatial grid cell edge length
	DampingFactor       float64 `yaml:"damping_factor"`       // Per-tick velocity multiplier
	ResolveMode         string  `yaml:"resolve_mode"`         // "live" or "snapshot"
}

// TerrainConfig holds procedural terrain generation parameters.
type TerrainConfig struct {
	Scale      float64 `yaml:"scale"`      // Base noise frequency (features per world)
	Octaves    int     `yaml:"octaves"`    // FBM octaves
	Lacunarity float64 `yaml:"lacunarity"` // Frequency multiplier per octave
	Gain       float64 `yaml:"gain"`       // Amplitude multiplier per octave
	MaxHeight  int     `yaml:"max_height"` // Tallest elevation sample
	Steps      int     `yaml:"steps"`      // Number of quantization levels (0 = no quantization)
}

// GrainsConfig holds initial particle seeding parameters.
type GrainsConfig struct {
	Count       int     `yaml:"count"`
	SpawnHeight float64 `yaml:"spawn_height"` // Grains spawn in [max_height, max_height+spawn_height]
	MaxSpeed    float64 `yaml:"max_speed"`    // Horizontal velocity drawn from [-max_speed, max_speed)
}

// CameraConfig holds viewer camera defaults.
type CameraConfig struct {
	Distance float64 `yaml:"distance"` // Orbit distance as a multiple of the world diagonal
	Pitch    float64 `yaml:"pitch"`    // Degrees above the horizon
	Yaw      float64 `yaml:"yaw"`      // Degrees around the vertical axis
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"`          // Ticks per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"` // Ticks averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW32              float32 // World.Width as float32
	WorldH32              float32 // World.Height as float32
	Gravity32             float32
	TerrainRestitution32  float32
	ParticleRestitution32 float32
	MinDistance32         float32
	CellSize32            float32
	Damping32             float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks ranges the simulation cannot run without.
func (c *Config) Validate() error {
	if c.World.Width < 1 || c.World.Height < 1 {
		return fmt.Errorf("%w: world size %dx%d", ErrInvalid, c.World.Width, c.World.Height)
	}
	p := c.Physics
	for name, v := range map[string]float64{
		"gravity":              p.Gravity,
		"terrain_restitution":  p.TerrainRestitution,
		"particle_restitution": p.ParticleRestitution,
		"min_distance":         p.MinDistance,
		"cell_size":            p.CellSize,
		"damping_factor":       p.DampingFactor,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: physics.%s is not finite", ErrInvalid, name)
		}
	}
	switch p.ResolveMode {
	case "", "live", "snapshot":
	default:
		return fmt.Errorf("%w: physics.resolve_mode %q", ErrInvalid, p.ResolveMode)
	}
	if c.Terrain.MaxHeight < 0 || c.Terrain.MaxHeight > math.MaxUint8 {
		return fmt.Errorf("%w: terrain.max_height %d outside [0,255]", ErrInvalid, c.Terrain.MaxHeight)
	}
	if c.Grains.Count < 0 {
		return fmt.Errorf("%w: grains.count %d", ErrInvalid, c.Grains.Count)
	}
	return nil
}

// Refresh validates c after in-place edits and recomputes derived values.
func (c *Config) Refresh() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.WorldW32 = float32(c.World.Width)
	c.Derived.WorldH32 = float32(c.World.Height)
	c.Derived.Gravity32 = float32(c.Physics.Gravity)
	c.Derived.TerrainRestitution32 = float32(c.Physics.TerrainRestitution)
	c.Derived.ParticleRestitution32 = float32(c.Physics.ParticleRestitution)
	c.Derived.MinDistance32 = float32(c.Physics.MinDistance)
	c.Derived.CellSize32 = float32(c.Physics.CellSize)
	c.Derived.Damping32 = float32(c.Physics.DampingFactor)

	if c.Telemetry.StatsWindow < 1 {
		c.Telemetry.StatsWindow = 60
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
