// Package interpret turns a free-text chat message into a structured Query.
// Parsing is a deterministic ordered rule pipeline; each rule is an
// independent extraction over the immutable input text.
package interpret

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/relocate-cli/internal/model"
	"github.com/sells-group/relocate-cli/internal/resolve"
)

// DefaultLimit caps FILTER_RANK answers when the user didn't ask for a
// specific count.
const DefaultLimit = 10

// Monthly-rent heuristic bounds: a budget in this range reads as monthly
// rent and is scaled into a home price threshold.
const (
	rentLow        = 500
	rentHigh       = 10000
	rentMultiplier = 100
)

// Interpreter extracts structured intent from chat text.
type Interpreter struct {
	resolver *resolve.Resolver
}

// New creates an Interpreter backed by the given resolver.
func New(r *resolve.Resolver) *Interpreter {
	return &Interpreter{resolver: r}
}

// Interpret runs the rule pipeline. It fails with model.ErrQuery only on
// empty input; unresolved mentions are recorded on the Query instead so the
// caller can report partial failure.
func (it *Interpreter) Interpret(text string) (model.Query, error) {
	q := model.Query{Raw: text}

	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return q, eris.Wrap(model.ErrQuery, "interpret: empty input")
	}

	// Rule 1: numeric filters (under/below/above/over + currency token).
	var filterSpans []string
	q.Filters, q.BudgetScaled, filterSpans = extractFilters(lower)

	// Rule 2: ranking keywords.
	sortSpec, hasRank := extractSort(lower)

	// Rule 3: explicit result count.
	q.Limit = extractLimit(lower)

	// Rule 4: state scope ("in TX", "in texas").
	var stateSpan string
	q.State, stateSpan = extractState(lower)

	// Rule 5: trend scope (rising/flat/falling).
	q.Trend = extractTrend(lower)

	// Rule 6: metro mention spans, after stripping spans already consumed
	// by the rules above.
	mentionText := lower
	for _, span := range append(filterSpans, stateSpan) {
		if span != "" {
			mentionText = strings.Replace(mentionText, span, " ", 1)
		}
	}
	spans := extractMentionSpans(mentionText)

	for _, span := range spans {
		res := it.resolver.Resolve(span)
		if len(res.Matches) == 0 {
			q.Unresolved = append(q.Unresolved, span)
			continue
		}
		q.Mentions = append(q.Mentions, res)
	}

	// Rule 7: mode. Ranking or filter intent forces FILTER_RANK; named
	// metros then only narrow the field. Otherwise named metros mean a
	// direct comparison.
	switch {
	case hasRank || len(q.Filters) > 0 || q.Trend != "":
		q.Mode = model.ModeFilterRank
	case len(q.Mentions) > 0:
		q.Mode = model.ModeCompare
	default:
		q.Mode = model.ModeFilterRank
	}

	if q.Mode == model.ModeFilterRank {
		if hasRank {
			q.Sort = &sortSpec
		} else {
			q.Sort = &model.Sort{Metric: model.MetricLatestValue, Dir: model.SortAsc}
		}
		if q.Limit == 0 {
			q.Limit = DefaultLimit
		}
	} else if hasRank {
		q.Sort = &sortSpec
	}

	return q, nil
}

var filterRe = regexp.MustCompile(
	`\b(under|below|above|over|at most|at least)\s+\$?(\d[\d,]*(?:\.\d+)?)\s*(k|m)?\b`)

// extractFilters finds budget-style constraints. A threshold in plausible
// monthly-rent range on an upper bound is scaled into a home price, and the
// scaling is reported so the answer can mention it.
func extractFilters(text string) ([]model.Filter, bool, []string) {
	var filters []model.Filter
	var spans []string
	scaled := false

	for _, m := range filterRe.FindAllStringSubmatch(text, -1) {
		raw := strings.ReplaceAll(m[2], ",", "")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			continue
		}
		switch m[3] {
		case "k":
			v *= 1e3
		case "m":
			v *= 1e6
		}

		op := model.OpLTE
		if m[1] == "above" || m[1] == "over" || m[1] == "at least" {
			op = model.OpGTE
		}

		if op == model.OpLTE && v >= rentLow && v <= rentHigh {
			v *= rentMultiplier
			scaled = true
		}

		filters = append(filters, model.Filter{
			Metric:    model.MetricLatestValue,
			Op:        op,
			Threshold: v,
		})
		spans = append(spans, m[0])
	}

	return filters, scaled, spans
}

func extractSort(text string) (model.Sort, bool) {
	for _, kw := range rankKeywords {
		if strings.Contains(text, kw.phrase) {
			return kw.sort, true
		}
	}
	return model.Sort{}, false
}

var limitRe = regexp.MustCompile(`\b(?:top|first|show)\s+(\d{1,3})\b`)

func extractLimit(text string) int {
	m := limitRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

var stateCodeRe = regexp.MustCompile(`\bin\s+([a-z]{2})\b`)

// extractState returns the postal code and the matched phrase so the
// mention rule can drop it.
func extractState(text string) (string, string) {
	for name, code := range stateNames {
		phrase := "in " + name
		if strings.Contains(text, phrase) {
			return code, phrase
		}
	}
	if m := stateCodeRe.FindStringSubmatch(text); m != nil {
		code := strings.ToUpper(m[1])
		if postalCodes[code] {
			return code, m[0]
		}
	}
	return "", ""
}

var flatRe = regexp.MustCompile(`\bflat\b`)

func extractTrend(text string) model.Trend {
	switch {
	case strings.Contains(text, "rising"):
		return model.TrendRising
	case strings.Contains(text, "falling"):
		return model.TrendFalling
	case flatRe.MatchString(text):
		return model.TrendFlat
	}
	return ""
}

var connectorRe = regexp.MustCompile(`\bvs\.?\b|\bversus\b|\bcompared?\b|\band\b|\bor\b|,`)

// extractMentionSpans splits the text on comparison connectors and strips
// filler, keyword, and numeric tokens from each piece. What survives is a
// candidate metro mention.
func extractMentionSpans(text string) []string {
	var spans []string
	for _, piece := range connectorRe.Split(text, -1) {
		var kept []string
		for _, tok := range strings.Fields(piece) {
			clean := strings.Trim(tok, ".,!?$")
			if clean == "" || stopwords[clean] || keywordTokens[clean] {
				continue
			}
			if _, err := strconv.ParseFloat(strings.ReplaceAll(clean, ",", ""), 64); err == nil {
				continue
			}
			kept = append(kept, clean)
		}
		if len(kept) > 0 {
			spans = append(spans, strings.Join(kept, " "))
		}
	}
	return spans
}
