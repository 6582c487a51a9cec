package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/sandy/config"
	"github.com/pthm-cable/sandy/scene"
	"github.com/pthm-cable/sandy/systems"
	"github.com/pthm-cable/sandy/telemetry"
)

// Options configures a run on top of the loaded config.
type Options struct {
	Seed           int64
	LogStats       bool
	OutputDir      string // CSV logs and config snapshot (empty = disabled)
	SnapshotDir    string // JSON snapshots on bookmarks (empty = disabled)
	TerrainPNG     string // elevation image instead of generated terrain
	Resume         string // snapshot file to continue from
	Flat           bool   // run the 2D variant instead of the terrain kernel
	StepsPerUpdate int
}

// Game is the host loop around a Simulation: it builds the scene, steps
// the kernel and drives telemetry. It performs no drawing.
type Game struct {
	cfg  *config.Config
	rng  *rand.Rand
	seed int64

	// Terrain samples the simulation was built from.
	heights       []uint8
	width, height int

	sim  *Simulation
	flat *systems.FlatGrains
	// flatTick counts steps of the 2D variant, which has no Simulation.
	flatTick int32

	stepsPerUpdate int

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	logStats         bool
	snapshotDir      string
}

// NewGameWithOptions builds a run from the global config and opts.
func NewGameWithOptions(opts Options) (*Game, error) {
	return NewGame(config.Cfg(), opts)
}

// NewGame builds a run from an explicit config.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	g := &Game{
		cfg:              cfg,
		rng:              rand.New(rand.NewSource(opts.Seed)),
		seed:             opts.Seed,
		stepsPerUpdate:   max(opts.StepsPerUpdate, 1),
		collector:        telemetry.NewCollector(int32(cfg.Telemetry.StatsWindow)),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		logStats:         opts.LogStats,
		snapshotDir:      opts.SnapshotDir,
	}

	var err error
	switch {
	case opts.Flat:
		err = g.buildFlat()
	case opts.Resume != "":
		err = g.resume(opts.Resume)
	default:
		err = g.buildScene(opts.TerrainPNG)
	}
	if err != nil {
		return nil, err
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config: %w", err)
	}
	g.outputManager = om

	slog.Info("scene ready",
		"seed", g.seed,
		"width", g.width,
		"height", g.height,
		"grains", g.Len(),
		"flat", g.flat != nil,
	)
	return g, nil
}

// buildScene generates or loads the terrain and seeds grains above it.
func (g *Game) buildScene(terrainPNG string) error {
	cfg := g.cfg
	maxHeight := uint8(cfg.Terrain.MaxHeight)

	if terrainPNG != "" {
		heights, w, h, err := scene.LoadHeightsPNG(terrainPNG, maxHeight)
		if err != nil {
			return err
		}
		g.heights, g.width, g.height = heights, w, h
	} else {
		g.width, g.height = cfg.World.Width, cfg.World.Height
		g.heights = scene.GenerateHeights(g.seed, g.width, g.height, scene.TerrainParamsFromConfig(cfg))
	}

	var top uint8
	for _, h := range g.heights {
		top = max(top, h)
	}

	pos, vel := scene.SeedGrains(g.rng, cfg.Grains.Count, g.width, g.height,
		float32(top), float32(cfg.Grains.SpawnHeight), float32(cfg.Grains.MaxSpeed))
	return g.newSimulation(pos, vel)
}

// resume restores terrain and grains from a snapshot file.
func (g *Game) resume(path string) error {
	snap, err := telemetry.LoadSnapshot(path)
	if err != nil {
		return err
	}
	g.heights, g.width, g.height = snap.Heights, snap.Width, snap.Height
	if err := g.newSimulation(snap.Positions, snap.Velocities); err != nil {
		return err
	}
	g.sim.tick = snap.Tick
	g.collector.Reset(snap.Tick)
	slog.Info("resumed from snapshot", "path", path, "tick", snap.Tick)
	return nil
}

func (g *Game) newSimulation(pos, vel []float32) error {
	params, err := ParamsFromConfig(g.cfg)
	if err != nil {
		return err
	}
	sim, err := NewSimulation(g.heights, g.width, g.height, pos, vel, params)
	if err != nil {
		return err
	}
	sim.SetPerf(g.perfCollector)
	g.sim = sim
	return nil
}

// buildFlat seeds the 2D variant over the world rectangle.
func (g *Game) buildFlat() error {
	cfg := g.cfg
	g.width, g.height = cfg.World.Width, cfg.World.Height
	buf := scene.SeedFlat(g.rng, cfg.Grains.Count, g.width, g.height, float32(cfg.Grains.MaxSpeed))
	flat, err := systems.NewFlatGrains(buf, cfg.Derived.Damping32, cfg.Derived.WorldW32, cfg.Derived.WorldH32)
	if err != nil {
		return err
	}
	g.flat = flat
	return nil
}

// Step advances the run by one tick and flushes telemetry when a window
// closes.
func (g *Game) Step() {
	if g.flat != nil {
		g.flat.Next()
		g.flatTick++
		return
	}

	g.sim.Step()
	last := g.sim.LastTick()
	g.collector.RecordTick(last.TerrainContacts, last.PairCollisions, last.Reflections)
	g.flushTelemetry()
}

// UpdateHeadless runs StepsPerUpdate ticks.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step()
	}
}

// Tick returns the number of completed ticks.
func (g *Game) Tick() int32 {
	if g.flat != nil {
		return g.flatTick
	}
	return g.sim.Tick()
}

// Len returns the number of grains.
func (g *Game) Len() int {
	if g.flat != nil {
		return g.flat.Len()
	}
	return g.sim.Len()
}

// Sim returns the terrain simulation, or nil in flat mode.
func (g *Game) Sim() *Simulation { return g.sim }

// Flat returns the 2D variant, or nil in terrain mode.
func (g *Game) Flat() *systems.FlatGrains { return g.flat }

// Config returns the config the run was built from.
func (g *Game) Config() *config.Config { return g.cfg }

// Perf returns the step timing collector.
func (g *Game) Perf() *telemetry.PerfCollector { return g.perfCollector }

// Size returns the world extent in cells.
func (g *Game) Size() (width, height int) { return g.width, g.height }

// StepsPerUpdate returns the number of ticks per update.
func (g *Game) StepsPerUpdate() int { return g.stepsPerUpdate }

// SetStepsPerUpdate changes the number of ticks per update (minimum 1).
func (g *Game) SetStepsPerUpdate(n int) { g.stepsPerUpdate = max(n, 1) }

// Unload closes output files.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
