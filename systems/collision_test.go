package systems

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairDistance(pos []float32, i, j int) float32 {
	return vec3At(pos, j).Sub(vec3At(pos, i)).Length()
}

func TestResolvePairClosingGrains(t *testing.T) {
	r := NewCollisionResolver(1.0, 0.8, ResolveLive)
	pos := []float32{0, 0, 0, 0.5, 0, 0}
	vel := []float32{1, 0, 0, -1, 0, 0}

	require.True(t, r.ResolvePair(pos, vel, 0, 1))

	// Symmetric push around the midpoint 0.25.
	assert.InDelta(t, -0.25, pos[0], eps)
	assert.InDelta(t, 0.75, pos[3], eps)
	assert.InDelta(t, 1.0, pairDistance(pos, 0, 1), eps)

	// vn = -2, impulse = (1+0.8)*2/2 = 1.8
	assert.InDelta(t, -0.8, vel[0], eps)
	assert.InDelta(t, 0.8, vel[3], eps)
	assert.Zero(t, vel[1])
	assert.Zero(t, vel[4])
}

func TestResolvePairRestingGrainsSkipImpulse(t *testing.T) {
	r := NewCollisionResolver(1.0, 0.8, ResolveLive)
	pos := []float32{2, 3, 4, 2, 3.4, 4}
	vel := make([]float32, 6)

	require.True(t, r.ResolvePair(pos, vel, 0, 1))
	assert.InDelta(t, 1.0, pairDistance(pos, 0, 1), eps)
	assert.InDelta(t, 3.2, (pos[1]+pos[4])/2, eps, "midpoint unchanged")
	assert.Equal(t, make([]float32, 6), vel, "vn == 0 applies no impulse")
}

func TestResolvePairSeparatingGrainsSkipImpulse(t *testing.T) {
	r := NewCollisionResolver(1.0, 0.8, ResolveLive)
	pos := []float32{0, 0, 0, 0.5, 0, 0}
	vel := []float32{-1, 0, 0, 1, 0, 0}

	require.True(t, r.ResolvePair(pos, vel, 0, 1))
	assert.InDelta(t, 1.0, pairDistance(pos, 0, 1), eps)
	assert.Equal(t, []float32{-1, 0, 0, 1, 0, 0}, vel)
}

func TestResolvePairNoOverlap(t *testing.T) {
	r := NewCollisionResolver(1.0, 0.8, ResolveLive)
	tests := []struct {
		name string
		pos  []float32
	}{
		{"far apart", []float32{0, 0, 0, 3, 0, 0}},
		{"exactly touching", []float32{0, 0, 0, 0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := append([]float32(nil), tt.pos...)
			vel := []float32{1, 0, 0, -1, 0, 0}
			assert.False(t, r.ResolvePair(pos, vel, 0, 1))
			assert.Equal(t, tt.pos, pos)
			assert.Equal(t, []float32{1, 0, 0, -1, 0, 0}, vel)
		})
	}
}

func TestResolvePairCoincidentGrainsSkipped(t *testing.T) {
	r := NewCollisionResolver(1.0, 0.8, ResolveLive)
	pos := []float32{1, 1, 1, 1, 1, 1}
	vel := []float32{1, 0, 0, -1, 0, 0}

	assert.False(t, r.ResolvePair(pos, vel, 0, 1))
	assert.Equal(t, []float32{1, 1, 1, 1, 1, 1}, pos)
	assert.Equal(t, []float32{1, 0, 0, -1, 0, 0}, vel)
}

func TestResolveTwoGrainsThroughGrid(t *testing.T) {
	for _, mode := range []ResolveMode{ResolveLive, ResolveSnapshot} {
		t.Run(mode.String(), func(t *testing.T) {
			r := NewCollisionResolver(1.0, 0.8, mode)
			grid := NewSpatialGrid(1.0)
			pos := []float32{0, 0, 0, 0.5, 0, 0}
			vel := []float32{1, 0, 0, -1, 0, 0}

			grid.Rebuild(pos)
			hits := r.Resolve(pos, vel, grid)

			// The reverse visit sees the pair already separated.
			assert.Equal(t, 1, hits)
			assert.InDelta(t, -0.25, pos[0], eps)
			assert.InDelta(t, 0.75, pos[3], eps)
			assert.InDelta(t, -0.8, vel[0], eps)
			assert.InDelta(t, 0.8, vel[3], eps)
		})
	}
}

func TestResolveFindsNeighborsAcrossCells(t *testing.T) {
	r := NewCollisionResolver(1.0, 0.8, ResolveLive)
	grid := NewSpatialGrid(1.0)
	// Diagonal neighbors in different cells along every axis.
	pos := []float32{0.9, 0.9, 0.9, 1.1, 1.1, 1.1}
	vel := make([]float32, 6)

	grid.Rebuild(pos)
	require.NotEqual(t, grid.CellOf(0.9, 0.9, 0.9), grid.CellOf(1.1, 1.1, 1.1))
	assert.NotZero(t, r.Resolve(pos, vel, grid))
	assert.InDelta(t, 1.0, pairDistance(pos, 0, 1), eps)
}

func TestResolveIgnoresDistantCells(t *testing.T) {
	r := NewCollisionResolver(1.0, 0.8, ResolveLive)
	grid := NewSpatialGrid(1.0)
	pos := []float32{0.5, 0.5, 0.5, 2.6, 0.5, 0.5}
	vel := make([]float32, 6)

	grid.Rebuild(pos)
	assert.Zero(t, r.Resolve(pos, vel, grid))
}

func TestResolveLiveIsOrderDependent(t *testing.T) {
	// Three grains in a row: correcting 0-1 moves grain 1 into grain 2.
	pos := []float32{0, 0, 0, 0.5, 0, 0, 1.625, 0, 0}
	vel := make([]float32, 9)

	live := NewCollisionResolver(1.0, 0.8, ResolveLive)
	livePos := append([]float32(nil), pos...)
	grid := NewSpatialGrid(1.0)
	grid.Rebuild(livePos)
	assert.Equal(t, 2, live.Resolve(livePos, append([]float32(nil), vel...), grid))

	snap := NewCollisionResolver(1.0, 0.8, ResolveSnapshot)
	snapPos := append([]float32(nil), pos...)
	grid.Rebuild(snapPos)
	assert.Equal(t, 1, snap.Resolve(snapPos, append([]float32(nil), vel...), grid))

	assert.Equal(t, []float32{-0.25, 0, 0, 0.6875, 0, 0, 1.6875, 0, 0}, livePos)

	// Snapshot only sees the initial 0-1 overlap.
	assert.Equal(t, []float32{-0.25, 0, 0, 0.75, 0, 0, 1.625, 0, 0}, snapPos)
}

func TestResolveSnapshotIsOrderIndependent(t *testing.T) {
	const n = 200
	rng := rand.New(rand.NewSource(11))
	pos := make([]float32, n*3)
	vel := make([]float32, n*3)
	for i := range pos {
		pos[i] = rng.Float32() * 6
		vel[i] = rng.Float32() - 0.5
	}

	// Reverse the particle order and resolve both copies.
	revPos := make([]float32, len(pos))
	revVel := make([]float32, len(vel))
	for i := 0; i < n; i++ {
		setVec3At(revPos, n-1-i, vec3At(pos, i))
		setVec3At(revVel, n-1-i, vec3At(vel, i))
	}

	r := NewCollisionResolver(1.0, 0.8, ResolveSnapshot)
	grid := NewSpatialGrid(1.0)
	grid.Rebuild(pos)
	hits := r.Resolve(pos, vel, grid)
	grid.Rebuild(revPos)
	revHits := r.Resolve(revPos, revVel, grid)

	assert.Equal(t, hits, revHits)
	for i := 0; i < n; i++ {
		assertVec(t, vec3At(pos, i), vec3At(revPos, n-1-i), 1e-4)
		assertVec(t, vec3At(vel, i), vec3At(revVel, n-1-i), 1e-4)
	}
}

func TestParseResolveMode(t *testing.T) {
	tests := []struct {
		in   string
		want ResolveMode
		ok   bool
	}{
		{"", ResolveLive, true},
		{"live", ResolveLive, true},
		{"snapshot", ResolveSnapshot, true},
		{"parallel", ResolveLive, false},
	}
	for _, tt := range tests {
		got, ok := ParseResolveMode(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}
