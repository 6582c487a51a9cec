package systems

// Integrator advances grains by one tick and resolves terrain contact.
type Integrator struct {
	terrain     *TerrainField
	gravity     float32
	restitution float32
}

// NewIntegrator creates an integrator over a read-only terrain.
func NewIntegrator(terrain *TerrainField, gravity, restitution float32) *Integrator {
	return &Integrator{
		terrain:     terrain,
		gravity:     gravity,
		restitution: restitution,
	}
}

// Integrate applies gravity and explicit Euler to every grain, then bounces
// grains that ended below the terrain surface. Returns the contact count.
func (s *Integrator) Integrate(pos, vel []float32) int {
	contacts := 0
	n := len(pos) / 3
	for i := 0; i < n; i++ {
		p := vec3At(pos, i)
		v := vec3At(vel, i)

		v.Y += s.gravity
		p = p.Add(v)

		if ground := s.terrain.SampleHeight(p.X, p.Z); p.Y < ground {
			p.Y = ground
			normal := s.terrain.SampleNormal(p.X, p.Z)
			v = v.Reflect(normal).Scale(s.restitution)
			contacts++
		}

		setVec3At(pos, i, p)
		setVec3At(vel, i, v)
	}
	return contacts
}
