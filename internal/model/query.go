package model

import "time"

// QueryMode selects how the engine picks its target metros.
type QueryMode string

const (
	// ModeCompare evaluates exactly the metros the user named.
	ModeCompare QueryMode = "compare"
	// ModeFilterRank evaluates all metros, narrowed by any named ones,
	// then filters and ranks.
	ModeFilterRank QueryMode = "filter_rank"
)

// Metric identifies a comparable quantity on a metro.
type Metric string

const (
	MetricLatestValue Metric = "latest_value"
	MetricGrowthRate  Metric = "growth_rate"
	MetricVolatility  Metric = "volatility"
)

// FilterOp is a comparison operator in a query filter.
type FilterOp string

const (
	OpLTE FilterOp = "<="
	OpGTE FilterOp = ">="
)

// Filter is a hard exclusion on a metric. Metros whose metric is undefined
// or fails the comparison are dropped.
type Filter struct {
	Metric    Metric   `json:"metric"`
	Op        FilterOp `json:"op"`
	Threshold float64  `json:"threshold"`
}

// SortDir is a sort direction.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// Sort orders results by a metric.
type Sort struct {
	Metric Metric  `json:"metric"`
	Dir    SortDir `json:"dir"`
}

// Window bounds metric computation to [Start, End] inclusive.
// Zero Start/End means unbounded on that side.
type Window struct {
	Start time.Time `json:"start,omitempty"`
	End   time.Time `json:"end,omitempty"`
}

// Trend is the coarse direction label derived from growth rate.
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFlat    Trend = "flat"
	TrendFalling Trend = "falling"
	TrendUnknown Trend = "unknown"
)

// Resolution is the outcome of resolving one raw metro mention.
type Resolution struct {
	Raw       string      `json:"raw"`
	Matches   []MetroArea `json:"matches"`            // ranked, best first
	Scores    []float64   `json:"scores"`             // parallel to Matches
	Ambiguous bool        `json:"ambiguous,omitempty"` // top two within 0.05
}

// Top returns the best match, or false when nothing cleared the cutoff.
func (r Resolution) Top() (MetroArea, bool) {
	if len(r.Matches) == 0 {
		return MetroArea{}, false
	}
	return r.Matches[0], true
}

// Query is the structured intent extracted from one chat turn.
// Created per request and discarded after the response.
type Query struct {
	Raw        string       `json:"raw"`
	Mode       QueryMode    `json:"mode"`
	Mentions   []Resolution `json:"mentions,omitempty"`
	Unresolved []string     `json:"unresolved,omitempty"` // raw spans with no match
	Filters    []Filter     `json:"filters,omitempty"`
	Sort       *Sort        `json:"sort,omitempty"`
	Limit      int          `json:"limit,omitempty"` // 0 = no limit
	State      string       `json:"state,omitempty"` // 2-letter scope, FILTER_RANK only
	Trend      Trend        `json:"trend,omitempty"` // trend scope ("growing areas")
	Window     *Window      `json:"window,omitempty"`

	// BudgetScaled is set when a monthly-rent-sized figure was scaled into
	// a price threshold, so the answer can say so.
	BudgetScaled bool `json:"budget_scaled,omitempty"`
}

// ResolvedMetros returns the top match of every resolvable mention,
// de-duplicated, in mention order.
func (q Query) ResolvedMetros() []MetroArea {
	seen := make(map[string]bool, len(q.Mentions))
	var out []MetroArea
	for _, res := range q.Mentions {
		m, ok := res.Top()
		if !ok || seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		out = append(out, m)
	}
	return out
}
