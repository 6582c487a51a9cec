package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/sandy/config"
	"github.com/pthm-cable/sandy/game"
	"github.com/pthm-cable/sandy/telemetry"
)

// FitnessEvaluator runs headless simulations and scores how close each
// pile comes to settling at the target tick.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	targetTicks int32
	window      int32
	seeds       []int64
	baseConfig  *config.Config

	mu         sync.Mutex
	lastSettle float64 // mean settle tick from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks, targetTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		targetTicks: targetTicks,
		window:      int32(baseCfg.Telemetry.StatsWindow),
		seeds:       seeds,
		baseConfig:  baseCfg,
	}
}

// LastSettle returns the mean settle tick from the most recent evaluation.
func (fe *FitnessEvaluator) LastSettle() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSettle
}

// Kinetic energy per grain below which a pile counts as settled.
const settleKinetic = 1e-4

// runResult holds the outcome of a single simulation run.
type runResult struct {
	settleTick  int32 // window end where the pile came to rest, or maxTicks
	settled     bool
	lastKinetic float64
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	if err := fe.params.ApplyToConfig(cfg, x); err != nil {
		return math.Inf(1)
	}

	// Seeds are independent runs, so run them in parallel
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var total, settle float64
	for _, r := range results {
		total += settleFitness(r, fe.targetTicks)
		settle += float64(r.settleTick)
	}
	n := float64(len(results))

	fe.mu.Lock()
	fe.lastSettle = settle / n
	fe.mu.Unlock()

	return total / n
}

// runSimulation executes one headless run until the pile settles or
// maxTicks is reached.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) runResult {
	g, err := game.NewGame(cfg, game.Options{Seed: seed})
	if err != nil {
		return runResult{settleTick: fe.maxTicks, lastKinetic: math.Inf(1)}
	}
	defer g.Unload()

	g.SetStepsPerUpdate(int(fe.window))
	var r runResult
	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()

		sim := g.Sim()
		stats := telemetry.BufferStats(sim.Positions(), sim.Velocities())
		r.lastKinetic = stats.KineticMean
		if stats.KineticMean < settleKinetic {
			r.settleTick = g.Tick()
			r.settled = true
			return r
		}
	}
	r.settleTick = fe.maxTicks
	return r
}

// copyConfig returns an independent copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// settleFitness scores one run. A settled run costs its relative distance
// from the target; a run that never settles costs at least 1, rising with
// the energy still left in the pile.
func settleFitness(r runResult, target int32) float64 {
	if !r.settled {
		return 1 + r.lastKinetic/(r.lastKinetic+settleKinetic)
	}
	return math.Abs(float64(r.settleTick-target)) / float64(max(target, 1))
}
