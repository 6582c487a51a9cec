package systems

// BoundaryClamp mirrors grains back into the world box and applies damping.
// The domain is [0,width] along x and [0,height] along z; y has a floor at 0
// and no ceiling.
type BoundaryClamp struct {
	width   float32
	height  float32
	damping float32
}

// NewBoundaryClamp creates a clamp for a width x height world.
func NewBoundaryClamp(width, height, damping float32) *BoundaryClamp {
	return &BoundaryClamp{width: width, height: height, damping: damping}
}

// Clamp reflects out-of-range coordinates about the crossed edge, flips the
// matching velocity component, and damps every velocity. Returns the number
// of reflections.
func (s *BoundaryClamp) Clamp(pos, vel []float32) int {
	reflections := 0
	n := len(pos) / 3
	for i := 0; i < n; i++ {
		b := i * 3

		if reflectAxis(&pos[b], &vel[b], s.width) {
			reflections++
		}
		if pos[b+1] < 0 {
			pos[b+1] = -pos[b+1]
			vel[b+1] = -vel[b+1]
			reflections++
		}
		if reflectAxis(&pos[b+2], &vel[b+2], s.height) {
			reflections++
		}

		vel[b] *= s.damping
		vel[b+1] *= s.damping
		vel[b+2] *= s.damping
	}
	return reflections
}

// reflectAxis mirrors p about 0 or limit when it leaves [0, limit].
func reflectAxis(p, v *float32, limit float32) bool {
	switch {
	case *p < 0:
		*p = -*p
	case *p > limit:
		*p = limit - (*p - limit)
	default:
		return false
	}
	*v = -*v
	return true
}
