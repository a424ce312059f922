package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Counts at window end
	Agents  int `csv:"agents"`
	Stimuli int `csv:"stimuli"`
	Samples int `csv:"samples"`

	// Motion
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
	TurnMean  float64 `csv:"turn_mean"` // |angular rate|
	TurnStd   float64 `csv:"turn_std"`
	TurnP90   float64 `csv:"turn_p90"`

	// Distance to the nearest sensed stimulus
	NearestMean float64 `csv:"nearest_mean"`
	NearestStd  float64 `csv:"nearest_std"`
	NearestP10  float64 `csv:"nearest_p10"`
	NearestP50  float64 `csv:"nearest_p50"`
	NearestP90  float64 `csv:"nearest_p90"`

	// Recognition and events during window
	FiringFraction float64 `csv:"firing_fraction"`
	Recognitions   int     `csv:"recognitions"`
	Losses         int     `csv:"losses"`
	Collisions     int     `csv:"collisions"`
	Reconfigures   int     `csv:"reconfigures"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution calculates mean, sample standard deviation and
// percentiles. Fewer than two values have zero spread.
func ComputeDistribution(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, variance := stat.MeanVariance(values, nil)
	if n > 1 && variance > 0 {
		std = math.Sqrt(variance)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("agents", s.Agents),
		slog.Int("stimuli", s.Stimuli),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("turn_mean", s.TurnMean),
		slog.Float64("nearest_mean", s.NearestMean),
		slog.Float64("nearest_p50", s.NearestP50),
		slog.Float64("firing_fraction", s.FiringFraction),
		slog.Int("collisions", s.Collisions),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"agents", s.Agents,
		"stimuli", s.Stimuli,
		"speed_mean", s.SpeedMean,
		"speed_std", s.SpeedStd,
		"turn_mean", s.TurnMean,
		"turn_p90", s.TurnP90,
		"nearest_mean", s.NearestMean,
		"nearest_p10", s.NearestP10,
		"nearest_p50", s.NearestP50,
		"nearest_p90", s.NearestP90,
		"firing_fraction", s.FiringFraction,
		"recognitions", s.Recognitions,
		"losses", s.Losses,
		"collisions", s.Collisions,
		"reconfigures", s.Reconfigures,
	)
}
