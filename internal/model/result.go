package model

// RankedMetro pairs a metro with its computed metrics, in result order.
type RankedMetro struct {
	Metro   MetroArea `json:"metro"`
	Metrics MetricSet `json:"metrics"`
}

// NarrativeHints carries the decisions the formatter should voice but must
// not re-derive.
type NarrativeHints struct {
	// BestPerMetric maps metric → metro display name with the best value
	// (COMPARE mode). "Best" is lowest for latest_value and volatility,
	// highest for growth_rate.
	BestPerMetric map[Metric]string `json:"best_per_metric,omitempty"`

	// ExcludedByFilters counts metros dropped by hard filters
	// (FILTER_RANK mode).
	ExcludedByFilters int `json:"excluded_by_filters,omitempty"`

	// ZeroMatches is set when resolution produced no target metros at all.
	ZeroMatches bool `json:"zero_matches,omitempty"`

	// BudgetNote explains a rent→price scaled threshold, when applied.
	BudgetNote string `json:"budget_note,omitempty"`
}

// ComparisonResult is the structured answer for one query.
// Ordering matches the requested sort, default ascending affordability.
type ComparisonResult struct {
	Mode       QueryMode      `json:"mode"`
	Ranked     []RankedMetro  `json:"ranked"`
	Unresolved []string       `json:"unresolved,omitempty"`
	Ambiguous  []Resolution   `json:"ambiguous,omitempty"`
	Hints      NarrativeHints `json:"hints"`
}
