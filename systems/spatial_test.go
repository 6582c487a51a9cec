package systems

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellOfFloorsEachAxis(t *testing.T) {
	g := NewSpatialGrid(2)

	tests := []struct {
		name    string
		x, y, z float32
		want    CellKey
	}{
		{"origin", 0, 0, 0, CellKey{0, 0, 0}},
		{"inside first cell", 1.99, 0.5, 1.0, CellKey{0, 0, 0}},
		{"boundary belongs to next cell", 2, 4, 6, CellKey{1, 2, 3}},
		{"negative floors down", -0.1, -2, -2.1, CellKey{-1, -1, -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.CellOf(tt.x, tt.y, tt.z))
		})
	}
}

func TestRebuildBucketsParticles(t *testing.T) {
	g := NewSpatialGrid(1)
	pos := []float32{
		0.2, 0.2, 0.2,
		0.8, 0.1, 0.9,
		1.5, 0.2, 0.2,
		-0.5, 3, 0,
	}
	g.Rebuild(pos)

	got := append([]int(nil), g.Query(CellKey{0, 0, 0})...)
	sort.Ints(got)
	assert.Equal(t, []int{0, 1}, got)
	assert.Equal(t, []int{2}, g.Query(CellKey{1, 0, 0}))
	assert.Equal(t, []int{3}, g.Query(CellKey{-1, 3, 0}))
	assert.Empty(t, g.Query(CellKey{5, 5, 5}))
	assert.Equal(t, 3, g.OccupiedCells())
}

func TestRebuildDropsPreviousTick(t *testing.T) {
	g := NewSpatialGrid(1)
	g.Rebuild([]float32{0.5, 0.5, 0.5, 0.6, 0.6, 0.6})

	// Both particles move away; nothing may remain in the old cell.
	g.Rebuild([]float32{10.5, 0.5, 0.5, 20.5, 0.5, 0.5})
	assert.Empty(t, g.Query(CellKey{0, 0, 0}))
	assert.Equal(t, []int{0}, g.Query(CellKey{10, 0, 0}))
	assert.Equal(t, []int{1}, g.Query(CellKey{20, 0, 0}))

	// A shrinking particle set must not leave stale indices behind.
	g.Rebuild([]float32{10.5, 0.5, 0.5})
	assert.Equal(t, []int{0}, g.Query(CellKey{10, 0, 0}))
	assert.Empty(t, g.Query(CellKey{20, 0, 0}))
	assert.Equal(t, 1, g.OccupiedCells())
}

func TestClearEvictsIdleBuckets(t *testing.T) {
	g := NewSpatialGrid(1)
	g.Rebuild([]float32{0.5, 0.5, 0.5})
	g.Rebuild([]float32{3.5, 0.5, 0.5})
	g.Rebuild([]float32{3.5, 0.5, 0.5})

	// The bucket for cell 0 was empty for a full rebuild and is gone.
	assert.Len(t, g.cells, 1)
}

func TestNeighborOffsetsCoverBlock(t *testing.T) {
	seen := make(map[CellKey]bool)
	for _, off := range neighborOffsets {
		seen[off] = true
		assert.LessOrEqual(t, abs32(off.X), int32(1))
		assert.LessOrEqual(t, abs32(off.Y), int32(1))
		assert.LessOrEqual(t, abs32(off.Z), int32(1))
	}
	assert.Len(t, seen, 27)
	assert.True(t, seen[CellKey{}])
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
