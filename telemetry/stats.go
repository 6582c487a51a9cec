package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`
	Grains          int   `csv:"grains"`

	// Events summed over the window
	TerrainContacts int `csv:"terrain_contacts"`
	PairCollisions  int `csv:"pair_collisions"`
	Reflections     int `csv:"reflections"`

	// Motion (sampled at window end)
	KineticMean float64 `csv:"kinetic_mean"`
	KineticMax  float64 `csv:"kinetic_max"`
	SpeedP50    float64 `csv:"speed_p50"`
	SpeedP90    float64 `csv:"speed_p90"`

	// Grain heights (sampled at window end)
	HeightMean float64 `csv:"height_mean"`
	HeightStd  float64 `csv:"height_std"`
	HeightP10  float64 `csv:"height_p10"`
	HeightP50  float64 `csv:"height_p50"`
	HeightP90  float64 `csv:"height_p90"`
}

// Percentile returns the p-th empirical quantile of a sorted slice.
// p is clamped to [0, 1]. Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	p = math.Max(0, math.Min(1, p))
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// Distribution summarizes values as mean, std and the 10/50/90 percentiles.
// values is not modified.
func Distribution(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, std = stat.MeanStdDev(values, nil)
	if len(values) == 1 {
		std = 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, std, Percentile(sorted, 0.10), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// BufferStats fills the motion and height fields of a WindowStats from
// stride-3 position and velocity buffers.
func BufferStats(pos, vel []float32) WindowStats {
	n := len(pos) / 3
	ws := WindowStats{Grains: n}
	if n == 0 {
		return ws
	}

	heights := make([]float64, n)
	speeds := make([]float64, n)
	kinetic := make([]float64, n)
	for i := 0; i < n; i++ {
		heights[i] = float64(pos[i*3+1])
		vx, vy, vz := float64(vel[i*3]), float64(vel[i*3+1]), float64(vel[i*3+2])
		sq := vx*vx + vy*vy + vz*vz
		kinetic[i] = 0.5 * sq
		speeds[i] = math.Sqrt(sq)
	}

	ws.HeightMean, ws.HeightStd, ws.HeightP10, ws.HeightP50, ws.HeightP90 = Distribution(heights)

	ws.KineticMean = floats.Sum(kinetic) / float64(n)
	ws.KineticMax = floats.Max(kinetic)

	sort.Float64s(speeds)
	ws.SpeedP50 = Percentile(speeds, 0.50)
	ws.SpeedP90 = Percentile(speeds, 0.90)

	return ws
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("grains", s.Grains),
		slog.Int("terrain_contacts", s.TerrainContacts),
		slog.Int("pair_collisions", s.PairCollisions),
		slog.Int("reflections", s.Reflections),
		slog.Float64("kinetic_mean", s.KineticMean),
		slog.Float64("kinetic_max", s.KineticMax),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("height_mean", s.HeightMean),
		slog.Float64("height_std", s.HeightStd),
		slog.Float64("height_p10", s.HeightP10),
		slog.Float64("height_p50", s.HeightP50),
		slog.Float64("height_p90", s.HeightP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
