package sim

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TrajectoryStats summarizes one per-day series of a simulation.
type TrajectoryStats struct {
	Peak    float64
	PeakDay int
	Mean    float64
	Total   float64
}

// NewTrajectoryStats computes summary statistics over a daily series.
// Returns the zero value for an empty series.
func NewTrajectoryStats(series []float64) TrajectoryStats {
	if len(series) == 0 {
		return TrajectoryStats{}
	}
	peakDay := floats.MaxIdx(series)
	return TrajectoryStats{
		Peak:    series[peakDay],
		PeakDay: peakDay,
		Mean:    stat.Mean(series, nil),
		Total:   floats.Sum(series),
	}
}

// activeCaseSeries extracts the daily infectious counts of a run.
func activeCaseSeries(result *SimulationResult) []float64 {
	series := make([]float64, len(result.Days))
	for i, day := range result.Days {
		series[i] = float64(day.Infectious)
	}
	return series
}

// newCaseSeries extracts the daily new-case counts of a run: day 0 reports
// the seeded exposures, later days the increase in infectious counts.
func newCaseSeries(result *SimulationResult) []float64 {
	series := make([]float64, len(result.Days))
	for i, day := range result.Days {
		if i == 0 {
			series[i] = float64(day.Exposed)
			continue
		}
		delta := day.Infectious - result.Days[i-1].Infectious
		if delta < 0 {
			delta = 0
		}
		series[i] = float64(delta)
	}
	return series
}
