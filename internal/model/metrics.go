package model

// MetricValue is a tagged optional: a metric that may be undefined when the
// window holds too few points. Undefined is never encoded as 0 or NaN so
// filters and sorts can special-case missing data instead of mis-ranking it.
type MetricValue struct {
	Defined bool    `json:"defined"`
	Value   float64 `json:"value,omitempty"`
}

// Defined wraps a concrete value.
func Defined(v float64) MetricValue { return MetricValue{Defined: true, Value: v} }

// Undefined is the "insufficient data" marker.
func Undefined() MetricValue { return MetricValue{} }

// MetricSet holds the computed metrics for one metro over one window.
// Recomputed per request; the window may vary.
type MetricSet struct {
	MetroID     string      `json:"metro_id"`
	LatestValue MetricValue `json:"latest_value"`
	GrowthRate  MetricValue `json:"growth_rate"` // fraction over the window
	Volatility  MetricValue `json:"volatility"`  // stddev/mean over the window
	Trend       Trend       `json:"trend"`
	Points      int         `json:"points"` // observations in the window
}

// Get returns the named metric.
func (ms MetricSet) Get(m Metric) MetricValue {
	switch m {
	case MetricLatestValue:
		return ms.LatestValue
	case MetricGrowthRate:
		return ms.GrowthRate
	case MetricVolatility:
		return ms.Volatility
	}
	return Undefined()
}
