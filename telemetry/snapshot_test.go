package telemetry

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testSnapshot() *Snapshot {
	return &Snapshot{
		Version:    SnapshotVersion,
		RNGSeed:    42,
		Width:      2,
		Height:     2,
		Heights:    []uint8{0, 1, 2, 255},
		Tick:       1000,
		Positions:  []float32{0.5, 3, 1.25, 1, 2, 1},
		Velocities: []float32{0, -0.05, 0, 0.1, 0, -0.1},
	}
}

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := testSnapshot()
	snapshot.Bookmark = &Bookmark{Type: BookmarkSettled, Tick: 1000, Description: "Test bookmark"}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if !strings.HasSuffix(path, "snapshot_1000_settled.json") {
		t.Errorf("unexpected snapshot path %q", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.RNGSeed != 42 || loaded.Tick != 1000 {
		t.Errorf("header mismatch: seed %d tick %d", loaded.RNGSeed, loaded.Tick)
	}
	if string(loaded.Heights) != string(snapshot.Heights) {
		t.Errorf("Heights = %v, want %v", loaded.Heights, snapshot.Heights)
	}
	for i, v := range snapshot.Positions {
		if loaded.Positions[i] != v {
			t.Errorf("Positions[%d] = %v, want %v", i, loaded.Positions[i], v)
		}
	}
	for i, v := range snapshot.Velocities {
		if loaded.Velocities[i] != v {
			t.Errorf("Velocities[%d] = %v, want %v", i, loaded.Velocities[i], v)
		}
	}
	if loaded.Bookmark == nil || loaded.Bookmark.Type != BookmarkSettled {
		t.Errorf("Bookmark = %+v, want settled", loaded.Bookmark)
	}
}

func TestSnapshotFilenameWithoutBookmark(t *testing.T) {
	path, err := SaveSnapshot(testSnapshot(), t.TempDir())
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if filepath.Base(path) != "snapshot_1000.json" {
		t.Errorf("filename = %q, want snapshot_1000.json", filepath.Base(path))
	}
}

func TestLoadSnapshotRejectsBadShape(t *testing.T) {
	s := testSnapshot()
	s.Velocities = s.Velocities[:3]

	path, err := SaveSnapshot(s, t.TempDir())
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	_, err = LoadSnapshot(path)
	if !errors.Is(err, ErrSnapshotShape) {
		t.Errorf("LoadSnapshot error = %v, want ErrSnapshotShape", err)
	}
}

func TestLoadSnapshotRejectsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version":0,"width":1,"height":1,"heights":"AA=="}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadSnapshot(path)
	if !errors.Is(err, ErrSnapshotShape) {
		t.Errorf("LoadSnapshot error = %v, want ErrSnapshotShape", err)
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadSnapshot error = %v, want os.ErrNotExist", err)
	}
}
