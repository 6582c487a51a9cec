package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// ErrSnapshotShape reports a snapshot whose buffers disagree with its header.
var ErrSnapshotShape = errors.New("snapshot shape")

// Snapshot holds the complete grain state for replay.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	Width  int `json:"width"`
	Height int `json:"height"`

	// Terrain elevation samples, row-major z*width+x.
	Heights []uint8 `json:"heights"`

	Tick int32 `json:"tick"`

	// Stride-3 grain buffers.
	Positions  []float32 `json:"positions"`
	Velocities []float32 `json:"velocities"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// Validate checks that the buffers match the declared shape.
func (s *Snapshot) Validate() error {
	if s.Width < 1 || s.Height < 1 || len(s.Heights) != s.Width*s.Height {
		return fmt.Errorf("%w: %d heights for %dx%d terrain", ErrSnapshotShape, len(s.Heights), s.Width, s.Height)
	}
	if len(s.Positions)%3 != 0 || len(s.Velocities) != len(s.Positions) {
		return fmt.Errorf("%w: %d positions, %d velocities", ErrSnapshotShape, len(s.Positions), len(s.Velocities))
	}
	return nil
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads and validates a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: version %d, want %d", ErrSnapshotShape, snapshot.Version, SnapshotVersion)
	}
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	return &snapshot, nil
}
