package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/sandy/config"
	"github.com/pthm-cable/sandy/systems"
)

// Construction errors. Callers match them with errors.Is.
var (
	ErrBufferLength = errors.New("particle buffer length")
	ErrNonFinite    = errors.New("non-finite value")
	ErrInvalidParam = errors.New("invalid parameter")
)

// Params holds the kernel constants. A Simulation copies it at construction
// and never changes it, so several simulations can run with different tuning.
type Params struct {
	Gravity             float32 // vertical acceleration per tick
	TerrainRestitution  float32 // velocity retained after a terrain bounce
	ParticleRestitution float32 // velocity retained after a grain-grain bounce
	MinDistance         float32 // collision threshold (sum of radii)
	CellSize            float32 // spatial grid cell edge length
	DampingFactor       float32 // per-tick velocity multiplier
	ResolveMode         systems.ResolveMode
}

// DefaultParams returns the tuning used by the grain effect.
func DefaultParams() Params {
	return Params{
		Gravity:             -0.05,
		TerrainRestitution:  0.6,
		ParticleRestitution: 0.8,
		MinDistance:         1.0,
		CellSize:            1.0,
		DampingFactor:       0.95,
		ResolveMode:         systems.ResolveLive,
	}
}

// ParamsFromConfig maps the physics section of a loaded config.
func ParamsFromConfig(cfg *config.Config) (Params, error) {
	mode, ok := systems.ParseResolveMode(cfg.Physics.ResolveMode)
	if !ok {
		return Params{}, fmt.Errorf("%w: resolve mode %q", ErrInvalidParam, cfg.Physics.ResolveMode)
	}
	return Params{
		Gravity:             cfg.Derived.Gravity32,
		TerrainRestitution:  cfg.Derived.TerrainRestitution32,
		ParticleRestitution: cfg.Derived.ParticleRestitution32,
		MinDistance:         cfg.Derived.MinDistance32,
		CellSize:            cfg.Derived.CellSize32,
		DampingFactor:       cfg.Derived.Damping32,
		ResolveMode:         mode,
	}, nil
}

// Validate reports the first parameter the kernel cannot run with.
func (p Params) Validate() error {
	fields := []struct {
		name string
		v    float32
	}{
		{"gravity", p.Gravity},
		{"terrain restitution", p.TerrainRestitution},
		{"particle restitution", p.ParticleRestitution},
		{"min distance", p.MinDistance},
		{"cell size", p.CellSize},
		{"damping factor", p.DampingFactor},
	}
	for _, f := range fields {
		if !finite(f.v) {
			return fmt.Errorf("%w: %s = %v", ErrNonFinite, f.name, f.v)
		}
	}

	if p.CellSize <= 0 {
		return fmt.Errorf("%w: cell size %v must be positive", ErrInvalidParam, p.CellSize)
	}
	if p.MinDistance <= 0 {
		return fmt.Errorf("%w: min distance %v must be positive", ErrInvalidParam, p.MinDistance)
	}
	if p.DampingFactor <= 0 || p.DampingFactor > 1 {
		return fmt.Errorf("%w: damping factor %v outside (0,1]", ErrInvalidParam, p.DampingFactor)
	}
	if p.ResolveMode != systems.ResolveLive && p.ResolveMode != systems.ResolveSnapshot {
		return fmt.Errorf("%w: resolve mode %d", ErrInvalidParam, p.ResolveMode)
	}
	return nil
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
