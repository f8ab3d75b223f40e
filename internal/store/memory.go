// Package store holds the in-memory price index plus the SQLite/Postgres
// snapshot stores that persist validated dataset rows between commands.
package store

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/relocate-cli/internal/model"
)

// Index is the in-memory price index: metro → chronological series.
// Read-only after construction; concurrent readers need no locking.
// Reload is an atomic swap of the whole Index, never in-place mutation.
type Index struct {
	metros map[string]model.MetroArea
	series map[string]model.PriceSeries
	order  []string // metro ids sorted by display name
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// MetroID derives the canonical id from a display name and state,
// e.g. ("Austin-Round Rock, TX", "TX") → "austin-round-rock-tx".
func MetroID(name, state string) string {
	s := strings.ToLower(name)
	if state != "" && !strings.HasSuffix(s, strings.ToLower(state)) {
		s += " " + strings.ToLower(state)
	}
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NewIndex builds the index from validated dataset rows. Fails with
// model.ErrData on a duplicate (metro, period), a zero period, or a
// non-positive value. Row order does not matter; series come out
// period-ascending.
func NewIndex(rows []model.Row) (*Index, error) {
	ix := &Index{
		metros: make(map[string]model.MetroArea),
		series: make(map[string]model.PriceSeries),
	}

	seen := make(map[string]map[time.Time]bool)

	for _, row := range rows {
		name := strings.TrimSpace(row.MetroName)
		if name == "" {
			return nil, eris.Wrap(model.ErrData, "store: empty metro name")
		}
		if row.Period.IsZero() {
			return nil, eris.Wrapf(model.ErrData, "store: invalid period for %q", name)
		}
		if row.Value <= 0 {
			return nil, eris.Wrapf(model.ErrData, "store: non-positive value %.2f for %q", row.Value, name)
		}

		id := MetroID(name, row.State)
		if seen[id] == nil {
			seen[id] = make(map[time.Time]bool)
			ix.metros[id] = model.MetroArea{
				ID:          id,
				DisplayName: name,
				State:       row.State,
				Aliases:     deriveAliases(name, row.State),
			}
		}
		if seen[id][row.Period] {
			return nil, eris.Wrapf(model.ErrData, "store: duplicate period %s for %q",
				row.Period.Format("2006-01-02"), name)
		}
		seen[id][row.Period] = true

		s := ix.series[id]
		s.MetroID = id
		s.Points = append(s.Points, model.PricePoint{Period: row.Period, Value: row.Value})
		ix.series[id] = s
	}

	if len(ix.metros) == 0 {
		return nil, eris.Wrap(model.ErrData, "store: no rows")
	}

	for id, s := range ix.series {
		sort.Slice(s.Points, func(i, j int) bool {
			return s.Points[i].Period.Before(s.Points[j].Period)
		})
		ix.series[id] = s
		ix.order = append(ix.order, id)
	}
	sort.Slice(ix.order, func(i, j int) bool {
		return ix.metros[ix.order[i]].DisplayName < ix.metros[ix.order[j]].DisplayName
	})

	return ix, nil
}

// deriveAliases generates the matchable names for a metro: the full display
// name, the name without its state suffix, and each city in a hyphenated
// compound ("Austin-Round Rock, TX" → "Austin", "Round Rock").
func deriveAliases(name, state string) []string {
	seen := map[string]bool{}
	var out []string
	add := func(a string) {
		a = strings.TrimSpace(a)
		if a == "" || seen[strings.ToLower(a)] {
			return
		}
		seen[strings.ToLower(a)] = true
		out = append(out, a)
	}

	add(name)

	base := name
	if i := strings.LastIndex(base, ","); i >= 0 {
		base = base[:i]
	}
	add(base)

	for _, city := range strings.Split(base, "-") {
		add(city)
	}
	if state != "" {
		add(base + " " + state)
	}
	return out
}

// Metros returns all metro areas, sorted by display name.
func (ix *Index) Metros() []model.MetroArea {
	out := make([]model.MetroArea, 0, len(ix.order))
	for _, id := range ix.order {
		out = append(out, ix.metros[id])
	}
	return out
}

// Metro looks up one metro by canonical id.
func (ix *Index) Metro(id string) (model.MetroArea, bool) {
	m, ok := ix.metros[id]
	return m, ok
}

// Len returns the number of metros in the index.
func (ix *Index) Len() int { return len(ix.metros) }

// SeriesFor returns the full ordered series for a metro, or
// model.ErrNotFound for an unknown id.
func (ix *Index) SeriesFor(metroID string) (model.PriceSeries, error) {
	s, ok := ix.series[metroID]
	if !ok {
		return model.PriceSeries{}, eris.Wrapf(model.ErrNotFound, "store: %s", metroID)
	}
	return s, nil
}

// Windowed returns the points within [start, end] inclusive. A zero bound
// is open on that side. An empty window is an empty slice, not an error.
func (ix *Index) Windowed(metroID string, start, end time.Time) ([]model.PricePoint, error) {
	s, err := ix.SeriesFor(metroID)
	if err != nil {
		return nil, err
	}

	var out []model.PricePoint
	for _, p := range s.Points {
		if !start.IsZero() && p.Period.Before(start) {
			continue
		}
		if !end.IsZero() && p.Period.After(end) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
