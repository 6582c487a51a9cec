package game

import (
	"log/slog"

	"github.com/pthm-cable/sandy/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	tick := g.sim.Tick()
	if !g.collector.ShouldFlush(tick) {
		return
	}

	stats := g.collector.Flush(tick, g.sim.Positions(), g.sim.Velocities())
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
}

// Snapshot captures the terrain and a copy of the grain buffers.
func (g *Game) Snapshot() *telemetry.Snapshot {
	return &telemetry.Snapshot{
		Version:    telemetry.SnapshotVersion,
		RNGSeed:    g.seed,
		Width:      g.width,
		Height:     g.height,
		Heights:    append([]uint8(nil), g.heights...),
		Tick:       g.sim.Tick(),
		Positions:  append([]float32(nil), g.sim.Positions()...),
		Velocities: append([]float32(nil), g.sim.Velocities()...),
	}
}

func (g *Game) saveSnapshot(bm *telemetry.Bookmark) {
	snap := g.Snapshot()
	snap.Bookmark = bm
	path, err := telemetry.SaveSnapshot(snap, g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", snap.Tick)
}
