package systems

// ResolveMode selects how pair corrections interact within one pass.
type ResolveMode uint8

const (
	// ResolveLive writes each correction straight into the buffers, so later
	// pairs in the same pass observe it. Results depend on index order.
	ResolveLive ResolveMode = iota
	// ResolveSnapshot evaluates every pair against the state at the start of
	// the pass and applies the summed corrections afterwards.
	ResolveSnapshot
)

// String returns the config spelling of the mode.
func (m ResolveMode) String() string {
	switch m {
	case ResolveLive:
		return "live"
	case ResolveSnapshot:
		return "snapshot"
	default:
		return "unknown"
	}
}

// ParseResolveMode maps a config string to a mode. Empty selects ResolveLive.
func ParseResolveMode(s string) (ResolveMode, bool) {
	switch s {
	case "", "live":
		return ResolveLive, true
	case "snapshot":
		return ResolveSnapshot, true
	}
	return ResolveLive, false
}

// CollisionResolver separates overlapping grains and exchanges an equal-mass impulse.
type CollisionResolver struct {
	minDistance float32
	minDistSq   float32
	restitution float32
	mode        ResolveMode

	// snapshot mode scratch, reused across ticks
	snapPos, snapVel []float32
	dPos, dVel       []float32
}

// NewCollisionResolver creates a resolver for grains of uniform size and mass.
func NewCollisionResolver(minDistance, restitution float32, mode ResolveMode) *CollisionResolver {
	return &CollisionResolver{
		minDistance: minDistance,
		minDistSq:   minDistance * minDistance,
		restitution: restitution,
		mode:        mode,
	}
}

// Mode returns the configured resolve mode.
func (r *CollisionResolver) Mode() ResolveMode {
	return r.mode
}

// Resolve runs the narrow phase for every grain against the 27 cells around it.
// The grid must have been rebuilt from pos after integration.
// Returns the number of pair corrections applied.
func (r *CollisionResolver) Resolve(pos, vel []float32, grid *SpatialGrid) int {
	if r.mode == ResolveSnapshot {
		return r.resolveSnapshot(pos, vel, grid)
	}

	hits := 0
	n := len(pos) / 3
	for i := 0; i < n; i++ {
		b := i * 3
		home := grid.CellOf(pos[b], pos[b+1], pos[b+2])
		for _, off := range neighborOffsets {
			for _, j := range grid.Query(CellKey{home.X + off.X, home.Y + off.Y, home.Z + off.Z}) {
				if j == i {
					continue
				}
				if r.ResolvePair(pos, vel, i, j) {
					hits++
				}
			}
		}
	}
	return hits
}

// ResolvePair separates grains i and j in place if they overlap.
// Coincident grains have no separation direction and are left untouched.
func (r *CollisionResolver) ResolvePair(pos, vel []float32, i, j int) bool {
	dp, dv, ok := r.pairResponse(vec3At(pos, i), vec3At(pos, j), vec3At(vel, i), vec3At(vel, j))
	if !ok {
		return false
	}
	setVec3At(pos, i, vec3At(pos, i).Sub(dp))
	setVec3At(pos, j, vec3At(pos, j).Add(dp))
	setVec3At(vel, i, vec3At(vel, i).Sub(dv))
	setVec3At(vel, j, vec3At(vel, j).Add(dv))
	return true
}

// pairResponse returns the position correction and impulse applied to j;
// i receives the negation of both.
func (r *CollisionResolver) pairResponse(pi, pj, vi, vj Vec3) (dp, dv Vec3, ok bool) {
	d := pj.Sub(pi)
	distSq := d.Dot(d)
	if distSq >= r.minDistSq || distSq == 0 {
		return Vec3{}, Vec3{}, false
	}

	dist := sqrtf(distSq)
	normal := Vec3{d.X / dist, d.Y / dist, d.Z / dist}
	dp = normal.Scale((r.minDistance - dist) / 2)

	// vn >= 0: already separating or resting, position correction only
	vn := vj.Sub(vi).Dot(normal)
	if vn < 0 {
		impulse := -(1 + r.restitution) * vn / 2
		dv = normal.Scale(impulse)
	}
	return dp, dv, true
}

// resolveSnapshot evaluates each unordered pair once against the pass-start state.
func (r *CollisionResolver) resolveSnapshot(pos, vel []float32, grid *SpatialGrid) int {
	r.snapPos = append(r.snapPos[:0], pos...)
	r.snapVel = append(r.snapVel[:0], vel...)
	r.dPos = resetScratch(r.dPos, len(pos))
	r.dVel = resetScratch(r.dVel, len(vel))

	hits := 0
	n := len(pos) / 3
	for i := 0; i < n; i++ {
		pi := vec3At(r.snapPos, i)
		vi := vec3At(r.snapVel, i)
		home := grid.CellOf(pi.X, pi.Y, pi.Z)
		for _, off := range neighborOffsets {
			for _, j := range grid.Query(CellKey{home.X + off.X, home.Y + off.Y, home.Z + off.Z}) {
				if j <= i {
					continue
				}
				dp, dv, ok := r.pairResponse(pi, vec3At(r.snapPos, j), vi, vec3At(r.snapVel, j))
				if !ok {
					continue
				}
				setVec3At(r.dPos, i, vec3At(r.dPos, i).Sub(dp))
				setVec3At(r.dPos, j, vec3At(r.dPos, j).Add(dp))
				setVec3At(r.dVel, i, vec3At(r.dVel, i).Sub(dv))
				setVec3At(r.dVel, j, vec3At(r.dVel, j).Add(dv))
				hits++
			}
		}
	}

	for k := range pos {
		pos[k] += r.dPos[k]
		vel[k] += r.dVel[k]
	}
	return hits
}

func resetScratch(buf []float32, n int) []float32 {
	if cap(buf) < n {
		return make([]float32, n)
	}
	buf = buf[:n]
	clear(buf)
	return buf
}
