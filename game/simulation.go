package game

import (
	"fmt"

	"github.com/pthm-cable/sandy/systems"
	"github.com/pthm-cable/sandy/telemetry"
)

// TickStats counts the events of the most recent Step.
type TickStats struct {
	TerrainContacts int // grains bounced off the terrain
	PairCollisions  int // grain-grain corrections applied
	Reflections     int // boundary mirror events
}

// Simulation owns the grain buffers and runs the per-tick passes in order:
// integrate, rebuild the spatial grid, resolve pairs, clamp to the world box.
type Simulation struct {
	params  Params
	terrain *systems.TerrainField

	integrator *systems.Integrator
	grid       *systems.SpatialGrid
	resolver   *systems.CollisionResolver
	clamp      *systems.BoundaryClamp

	// Stride-3 buffers: particle i is [3i, 3i+3).
	pos []float32
	vel []float32

	tick int32
	last TickStats
	perf *telemetry.PerfCollector
}

// NewSimulation validates its inputs and builds the terrain normal field.
// The simulation takes ownership of positions and velocities and mutates
// them in place on every Step.
func NewSimulation(heights []uint8, width, height int, positions, velocities []float32, p Params) (*Simulation, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(positions)%3 != 0 {
		return nil, fmt.Errorf("%w: positions length %d is not a multiple of 3", ErrBufferLength, len(positions))
	}
	if len(velocities) != len(positions) {
		return nil, fmt.Errorf("%w: %d velocities for %d positions", ErrBufferLength, len(velocities), len(positions))
	}
	if i := firstNonFinite(positions); i >= 0 {
		return nil, fmt.Errorf("%w: positions[%d] = %v", ErrNonFinite, i, positions[i])
	}
	if i := firstNonFinite(velocities); i >= 0 {
		return nil, fmt.Errorf("%w: velocities[%d] = %v", ErrNonFinite, i, velocities[i])
	}

	terrain, err := systems.NewTerrainField(heights, width, height)
	if err != nil {
		return nil, err
	}

	return &Simulation{
		params:     p,
		terrain:    terrain,
		integrator: systems.NewIntegrator(terrain, p.Gravity, p.TerrainRestitution),
		grid:       systems.NewSpatialGrid(p.CellSize),
		resolver:   systems.NewCollisionResolver(p.MinDistance, p.ParticleRestitution, p.ResolveMode),
		clamp:      systems.NewBoundaryClamp(float32(width), float32(height), p.DampingFactor),
		pos:        positions,
		vel:        velocities,
	}, nil
}

// SetPerf attaches a collector that times each pass. Nil disables timing.
func (s *Simulation) SetPerf(p *telemetry.PerfCollector) {
	s.perf = p
}

// Step advances every grain by one tick.
func (s *Simulation) Step() {
	s.perf.StartTick()

	s.perf.StartPhase(telemetry.PhaseIntegrate)
	s.last.TerrainContacts = s.integrator.Integrate(s.pos, s.vel)

	// Collision queries see post-integration, pre-clamp positions.
	s.perf.StartPhase(telemetry.PhaseSpatialGrid)
	s.grid.Rebuild(s.pos)

	s.perf.StartPhase(telemetry.PhaseCollision)
	s.last.PairCollisions = s.resolver.Resolve(s.pos, s.vel, s.grid)

	s.perf.StartPhase(telemetry.PhaseBoundary)
	s.last.Reflections = s.clamp.Clamp(s.pos, s.vel)

	s.perf.EndTick()
	s.tick++
}

// Positions returns the live stride-3 position buffer.
func (s *Simulation) Positions() []float32 { return s.pos }

// Velocities returns the live stride-3 velocity buffer.
func (s *Simulation) Velocities() []float32 { return s.vel }

// Len returns the number of grains.
func (s *Simulation) Len() int { return len(s.pos) / 3 }

// Terrain returns the read-only terrain field.
func (s *Simulation) Terrain() *systems.TerrainField { return s.terrain }

// Params returns the constants the simulation was built with.
func (s *Simulation) Params() Params { return s.params }

// Tick returns the number of completed steps.
func (s *Simulation) Tick() int32 { return s.tick }

// LastTick returns the event counts of the most recent Step.
func (s *Simulation) LastTick() TickStats { return s.last }

// Grid exposes the spatial grid built during the most recent Step.
func (s *Simulation) Grid() *systems.SpatialGrid { return s.grid }

func firstNonFinite(buf []float32) int {
	for i, v := range buf {
		if !finite(v) {
			return i
		}
	}
	return -1
}
