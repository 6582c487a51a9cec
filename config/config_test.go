package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 128, cfg.World.Width)
	assert.InDelta(t, -0.05, cfg.Physics.Gravity, 1e-9)
	assert.InDelta(t, 0.6, cfg.Physics.TerrainRestitution, 1e-9)
	assert.InDelta(t, 0.8, cfg.Physics.ParticleRestitution, 1e-9)
	assert.InDelta(t, 0.95, cfg.Physics.DampingFactor, 1e-9)
	assert.Equal(t, "live", cfg.Physics.ResolveMode)

	assert.Equal(t, float32(128), cfg.Derived.WorldW32)
	assert.Equal(t, float32(1), cfg.Derived.CellSize32)
}

func TestLoadOverlaysUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	user := []byte("physics:\n  gravity: -0.1\n  resolve_mode: snapshot\ngrains:\n  count: 10\n")
	require.NoError(t, os.WriteFile(path, user, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.InDelta(t, -0.1, cfg.Physics.Gravity, 1e-9)
	assert.Equal(t, "snapshot", cfg.Physics.ResolveMode)
	assert.Equal(t, 10, cfg.Grains.Count)
	// Untouched keys keep their defaults
	assert.InDelta(t, 0.6, cfg.Physics.TerrainRestitution, 1e-9)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero world", "world:\n  width: 0\n"},
		{"nan gravity", "physics:\n  gravity: .nan\n"},
		{"inf damping", "physics:\n  damping_factor: .inf\n"},
		{"unknown mode", "physics:\n  resolve_mode: parallel\n"},
		{"tall terrain", "terrain:\n  max_height: 300\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0644))

			_, err := Load(path)
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Load() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Grains.Count = 77

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 77, again.Grains.Count)
}

func TestRefreshRecomputesDerived(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Physics.DampingFactor = 0.5
	cfg.World.Width = 40
	require.NoError(t, cfg.Refresh())
	assert.Equal(t, float32(0.5), cfg.Derived.Damping32)
	assert.Equal(t, float32(40), cfg.Derived.WorldW32)

	cfg.Physics.ResolveMode = "bogus"
	assert.True(t, errors.Is(cfg.Refresh(), ErrInvalid))
}
