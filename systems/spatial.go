// Package systems provides the per-tick passes of the grain simulation.
package systems

// CellKey identifies one cube of the spatial grid.
type CellKey struct {
	X, Y, Z int32
}

// neighborOffsets lists the 27 cells of a 3x3x3 block, self included.
var neighborOffsets = func() [27]CellKey {
	var offs [27]CellKey
	i := 0
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dz := int32(-1); dz <= 1; dz++ {
				offs[i] = CellKey{dx, dy, dz}
				i++
			}
		}
	}
	return offs
}()

// SpatialGrid is an unbounded uniform hash grid over particle indices.
// It is rebuilt from scratch every tick; buckets keep their capacity between
// rebuilds and are evicted once they stay empty for a full rebuild.
type SpatialGrid struct {
	cellSize float32
	inv      float32
	cells    map[CellKey][]int
}

// NewSpatialGrid creates an empty grid with the given cell edge length.
func NewSpatialGrid(cellSize float32) *SpatialGrid {
	return &SpatialGrid{
		cellSize: cellSize,
		inv:      1 / cellSize,
		cells:    make(map[CellKey][]int),
	}
}

// CellSize returns the cell edge length.
func (g *SpatialGrid) CellSize() float32 {
	return g.cellSize
}

// CellOf returns the cell containing a world position.
func (g *SpatialGrid) CellOf(x, y, z float32) CellKey {
	return CellKey{
		X: int32(floorf(x * g.inv)),
		Y: int32(floorf(y * g.inv)),
		Z: int32(floorf(z * g.inv)),
	}
}

// Clear empties every bucket and drops buckets that were already empty.
func (g *SpatialGrid) Clear() {
	for k, bucket := range g.cells {
		if len(bucket) == 0 {
			delete(g.cells, k)
			continue
		}
		g.cells[k] = bucket[:0]
	}
}

// Rebuild clears the grid and inserts every particle of a stride-3 position buffer.
func (g *SpatialGrid) Rebuild(positions []float32) {
	g.Clear()
	n := len(positions) / 3
	for i := 0; i < n; i++ {
		b := i * 3
		k := g.CellOf(positions[b], positions[b+1], positions[b+2])
		g.cells[k] = append(g.cells[k], i)
	}
}

// Query returns the particle indices in a cell. The slice is owned by the grid
// and valid until the next Rebuild.
func (g *SpatialGrid) Query(k CellKey) []int {
	return g.cells[k]
}

// OccupiedCells returns the number of non-empty buckets.
func (g *SpatialGrid) OccupiedCells() int {
	n := 0
	for _, bucket := range g.cells {
		if len(bucket) > 0 {
			n++
		}
	}
	return n
}
