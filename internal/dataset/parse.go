package dataset

import (
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/relocate-cli/internal/model"
)

// Options configures table parsing.
type Options struct {
	// Strict fails on any unparsable cell instead of skipping it.
	Strict bool
}

// Result is the parsed table plus skip accounting for the caller to log.
type Result struct {
	Rows    []model.Row
	Skipped int // blank or unparsable cells dropped (non-strict mode)
}

// Column name candidates, lowercased. ZHVI exports use RegionName/StateName;
// cleaned exports sometimes rename StateName to State.
var (
	regionCols = map[string]bool{"regionname": true, "region_name": true, "metro": true, "metro_name": true}
	stateCols  = map[string]bool{"statename": true, "state": true}
	periodCols = map[string]bool{"date": true, "period": true}
	valueCols  = map[string]bool{"value": true, "zhvi": true, "latest_zhvi": true}
)

// Period layouts accepted in long-format period cells and wide-format
// column headers.
var periodLayouts = []string{"2006-01-02", "2006-01", "1/2/2006"}

// ParseTable converts raw records (header first) into dataset rows.
//
// Two layouts are understood:
//   - long: one row per (metro, period) with date and value columns
//   - wide: one row per metro, one column per period (the ZHVI export shape)
//
// Layout is detected from the header: a date/period column means long,
// otherwise every header cell that parses as a date becomes a period column.
func ParseTable(records [][]string, opts Options) (*Result, error) {
	if len(records) == 0 {
		return nil, eris.Wrap(model.ErrData, "dataset: empty table")
	}

	header := records[0]
	idx := indexHeader(header)

	if idx.region < 0 {
		return nil, eris.Wrap(model.ErrData, "dataset: no region column in header")
	}

	if idx.period >= 0 && idx.value >= 0 {
		return parseLong(records[1:], idx, opts)
	}

	periods, cols := widePeriodColumns(header)
	if len(cols) == 0 {
		return nil, eris.Wrap(model.ErrData, "dataset: no period columns in header")
	}
	return parseWide(records[1:], idx, periods, cols, opts)
}

type headerIndex struct {
	region, state, period, value int
}

func indexHeader(header []string) headerIndex {
	idx := headerIndex{region: -1, state: -1, period: -1, value: -1}
	for i, col := range header {
		key := strings.ToLower(strings.TrimSpace(col))
		switch {
		case regionCols[key] && idx.region < 0:
			idx.region = i
		case stateCols[key] && idx.state < 0:
			idx.state = i
		case periodCols[key] && idx.period < 0:
			idx.period = i
		case valueCols[key] && idx.value < 0:
			idx.value = i
		}
	}
	return idx
}

// widePeriodColumns returns the parsed period and column index for every
// header cell that looks like a date.
func widePeriodColumns(header []string) ([]time.Time, []int) {
	var periods []time.Time
	var cols []int
	for i, col := range header {
		if t, ok := parsePeriod(col); ok {
			periods = append(periods, t)
			cols = append(cols, i)
		}
	}
	return periods, cols
}

func parsePeriod(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range periodLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseValue accepts plain decimals and currency-ish cells ("$312,400").
func parseValue(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseLong(records [][]string, idx headerIndex, opts Options) (*Result, error) {
	res := &Result{}
	for n, rec := range records {
		if idx.region >= len(rec) || idx.period >= len(rec) || idx.value >= len(rec) {
			if opts.Strict {
				return nil, eris.Wrapf(model.ErrData, "dataset: short row %d", n+2)
			}
			res.Skipped++
			continue
		}

		name := strings.TrimSpace(rec[idx.region])
		period, okP := parsePeriod(rec[idx.period])
		value, okV := parseValue(rec[idx.value])
		if name == "" || !okP || !okV {
			if opts.Strict {
				return nil, eris.Wrapf(model.ErrData, "dataset: bad row %d", n+2)
			}
			res.Skipped++
			continue
		}

		res.Rows = append(res.Rows, model.Row{
			MetroName: name,
			State:     stateOf(rec, idx),
			Period:    period,
			Value:     value,
		})
	}
	return res, nil
}

func parseWide(records [][]string, idx headerIndex, periods []time.Time, cols []int, opts Options) (*Result, error) {
	res := &Result{}
	for n, rec := range records {
		if idx.region >= len(rec) {
			if opts.Strict {
				return nil, eris.Wrapf(model.ErrData, "dataset: short row %d", n+2)
			}
			res.Skipped++
			continue
		}
		name := strings.TrimSpace(rec[idx.region])
		if name == "" {
			res.Skipped++
			continue
		}
		state := stateOf(rec, idx)

		for k, col := range cols {
			if col >= len(rec) {
				res.Skipped++
				continue
			}
			cell := strings.TrimSpace(rec[col])
			if cell == "" {
				// ZHVI leaves gaps where a metro has no estimate yet.
				res.Skipped++
				continue
			}
			value, ok := parseValue(cell)
			if !ok {
				if opts.Strict {
					return nil, eris.Wrapf(model.ErrData, "dataset: bad cell row %d col %d", n+2, col+1)
				}
				res.Skipped++
				continue
			}
			res.Rows = append(res.Rows, model.Row{
				MetroName: name,
				State:     state,
				Period:    periods[k],
				Value:     value,
			})
		}
	}
	return res, nil
}

func stateOf(rec []string, idx headerIndex) string {
	if idx.state < 0 || idx.state >= len(rec) {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(rec[idx.state]))
}
