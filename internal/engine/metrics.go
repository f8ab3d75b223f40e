package engine

import (
	"math"

	"github.com/sells-group/relocate-cli/internal/model"
)

// Trend label thresholds on the window growth rate.
const (
	trendRisingAbove  = 0.10
	trendFallingBelow = -0.05
)

// Compute derives the MetricSet for one metro from the points in its
// window. Metrics that need at least two observations come back undefined,
// never zero, when the window is too small.
func Compute(metroID string, points []model.PricePoint) model.MetricSet {
	ms := model.MetricSet{
		MetroID:     metroID,
		LatestValue: model.Undefined(),
		GrowthRate:  model.Undefined(),
		Volatility:  model.Undefined(),
		Trend:       model.TrendUnknown,
		Points:      len(points),
	}
	if len(points) == 0 {
		return ms
	}

	ms.LatestValue = model.Defined(points[len(points)-1].Value)
	if len(points) < 2 {
		return ms
	}

	first := points[0].Value
	last := points[len(points)-1].Value
	growth := (last - first) / first
	ms.GrowthRate = model.Defined(growth)
	ms.Trend = labelTrend(growth)

	var sum float64
	for _, p := range points {
		sum += p.Value
	}
	mean := sum / float64(len(points))

	var sq float64
	for _, p := range points {
		d := p.Value - mean
		sq += d * d
	}
	stddev := math.Sqrt(sq / float64(len(points)))
	ms.Volatility = model.Defined(stddev / mean)

	return ms
}

func labelTrend(growth float64) model.Trend {
	switch {
	case growth > trendRisingAbove:
		return model.TrendRising
	case growth < trendFallingBelow:
		return model.TrendFalling
	default:
		return model.TrendFlat
	}
}
