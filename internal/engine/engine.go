// Package engine computes comparable metrics for resolved metros and
// applies the query's filters, sort, and limit.
package engine

import (
	"sort"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/relocate-cli/internal/model"
	"github.com/sells-group/relocate-cli/internal/store"
)

// Engine evaluates queries against one immutable price index. Evaluation is
// pure: the same query against the same index yields the same result.
type Engine struct {
	ix *store.Index
}

// New creates an Engine over the given index.
func New(ix *store.Index) *Engine {
	return &Engine{ix: ix}
}

var usd = message.NewPrinter(language.AmericanEnglish)

// Evaluate computes the ComparisonResult for a query. Empty target sets and
// fully filtered-out candidates return an empty result with hints, not an
// error.
func (e *Engine) Evaluate(q model.Query) (model.ComparisonResult, error) {
	res := model.ComparisonResult{
		Mode:       q.Mode,
		Unresolved: q.Unresolved,
	}
	for _, m := range q.Mentions {
		if m.Ambiguous {
			res.Ambiguous = append(res.Ambiguous, m)
		}
	}

	targets := e.targets(q)
	if len(targets) == 0 {
		res.Hints.ZeroMatches = true
		return res, nil
	}

	var start, end time.Time
	if q.Window != nil {
		start, end = q.Window.Start, q.Window.End
	}

	var ranked []model.RankedMetro
	excluded := 0
	for _, metro := range targets {
		points, err := e.ix.Windowed(metro.ID, start, end)
		if err != nil {
			// Targets come from the index, so this is a programming error.
			return res, err
		}
		ms := Compute(metro.ID, points)

		if q.Trend != "" && ms.Trend != q.Trend {
			excluded++
			continue
		}
		if !passesFilters(ms, q.Filters) {
			excluded++
			continue
		}
		ranked = append(ranked, model.RankedMetro{Metro: metro, Metrics: ms})
	}

	sortRanked(ranked, q.Sort)
	if q.Limit > 0 && len(ranked) > q.Limit {
		ranked = ranked[:q.Limit]
	}
	res.Ranked = ranked

	if q.Mode == model.ModeFilterRank {
		res.Hints.ExcludedByFilters = excluded
	}
	if len(ranked) == 0 {
		res.Hints.ZeroMatches = true
		return res, nil
	}
	if q.Mode == model.ModeCompare {
		res.Hints.BestPerMetric = bestPerMetric(ranked)
	}
	if q.BudgetScaled && len(q.Filters) > 0 {
		res.Hints.BudgetNote = usd.Sprintf(
			"interpreted your figure as monthly rent and compared against a ~$%.0f home price",
			q.Filters[0].Threshold)
	}

	return res, nil
}

// targets resolves the metro set the query evaluates. COMPARE takes exactly
// the named metros; FILTER_RANK takes all metros (minus the national
// aggregate) narrowed by any named metros and the state scope.
func (e *Engine) targets(q model.Query) []model.MetroArea {
	if q.Mode == model.ModeCompare {
		return q.ResolvedMetros()
	}

	scope := map[string]bool{}
	for _, m := range q.ResolvedMetros() {
		scope[m.ID] = true
	}

	var out []model.MetroArea
	for _, m := range e.ix.Metros() {
		if m.Aggregate() {
			continue
		}
		if len(scope) > 0 && !scope[m.ID] {
			continue
		}
		if q.State != "" && m.State != q.State {
			continue
		}
		out = append(out, m)
	}
	return out
}

// passesFilters applies each filter as a hard exclusion: an undefined
// metric fails the filter.
func passesFilters(ms model.MetricSet, filters []model.Filter) bool {
	for _, f := range filters {
		v := ms.Get(f.Metric)
		if !v.Defined {
			return false
		}
		switch f.Op {
		case model.OpLTE:
			if v.Value > f.Threshold {
				return false
			}
		case model.OpGTE:
			if v.Value < f.Threshold {
				return false
			}
		}
	}
	return true
}

// sortRanked orders results by the requested sort (default: ascending
// affordability). The sort is stable; undefined metrics rank last and ties
// break by display name.
func sortRanked(ranked []model.RankedMetro, s *model.Sort) {
	spec := model.Sort{Metric: model.MetricLatestValue, Dir: model.SortAsc}
	if s != nil {
		spec = *s
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		vi := ranked[i].Metrics.Get(spec.Metric)
		vj := ranked[j].Metrics.Get(spec.Metric)

		switch {
		case vi.Defined && !vj.Defined:
			return true
		case !vi.Defined && vj.Defined:
			return false
		case vi.Defined && vj.Defined && vi.Value != vj.Value:
			if spec.Dir == model.SortDesc {
				return vi.Value > vj.Value
			}
			return vi.Value < vj.Value
		}
		return ranked[i].Metro.DisplayName < ranked[j].Metro.DisplayName
	})
}

// bestPerMetric names the winner for each defined metric: cheapest latest
// value, highest growth, lowest volatility.
func bestPerMetric(ranked []model.RankedMetro) map[model.Metric]string {
	best := map[model.Metric]string{}

	pick := func(metric model.Metric, better func(a, b float64) bool) {
		var winner string
		var winVal float64
		for _, r := range ranked {
			v := r.Metrics.Get(metric)
			if !v.Defined {
				continue
			}
			if winner == "" || better(v.Value, winVal) {
				winner = r.Metro.DisplayName
				winVal = v.Value
			}
		}
		if winner != "" {
			best[metric] = winner
		}
	}

	pick(model.MetricLatestValue, func(a, b float64) bool { return a < b })
	pick(model.MetricGrowthRate, func(a, b float64) bool { return a > b })
	pick(model.MetricVolatility, func(a, b float64) bool { return a < b })

	return best
}
