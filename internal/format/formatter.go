// Package format renders a ComparisonResult as a plain-text reply.
// Pure formatting; every decision was already made upstream.
package format

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/relocate-cli/internal/model"
)

var usd = message.NewPrinter(language.AmericanEnglish)

// Render converts a structured result into the chat reply.
func Render(res model.ComparisonResult) string {
	var b strings.Builder

	writeSoftFailures(&b, res)

	if len(res.Ranked) == 0 {
		if b.Len() == 0 || res.Hints.ZeroMatches {
			b.WriteString("I couldn't find any metros matching that. " +
				"Try a higher budget, or names like 'Austin, TX'.\n")
		}
		return strings.TrimRight(b.String(), "\n")
	}

	switch res.Mode {
	case model.ModeCompare:
		writeComparison(&b, res)
	default:
		writeRanking(&b, res)
	}

	if res.Hints.BudgetNote != "" {
		fmt.Fprintf(&b, "\nNote: I %s.\n", res.Hints.BudgetNote)
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeSoftFailures(b *strings.Builder, res model.ComparisonResult) {
	for _, raw := range res.Unresolved {
		fmt.Fprintf(b, "I couldn't locate %q in the dataset; try the format 'City, ST'.\n", raw)
	}
	for _, amb := range res.Ambiguous {
		if len(amb.Matches) >= 2 {
			fmt.Fprintf(b, "%q matched more than one metro — I went with %s; did you mean %s?\n",
				amb.Raw, amb.Matches[0].DisplayName, amb.Matches[1].DisplayName)
		}
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
}

func writeComparison(b *strings.Builder, res model.ComparisonResult) {
	b.WriteString("Here's how they compare on the home value index:\n\n")
	for _, r := range res.Ranked {
		b.WriteString("- " + metroLine(r) + "\n")
	}

	if len(res.Ranked) == 2 {
		a, c := res.Ranked[0], res.Ranked[1]
		if a.Metrics.LatestValue.Defined && c.Metrics.LatestValue.Defined {
			diff := c.Metrics.LatestValue.Value - a.Metrics.LatestValue.Value
			word := "more"
			if diff < 0 {
				diff, word = -diff, "less"
			}
			fmt.Fprintf(b, "\n%s is about %s %s expensive than %s.\n",
				c.Metro.DisplayName, usd.Sprintf("$%.0f", diff), word, a.Metro.DisplayName)
		}
	}

	if name, ok := res.Hints.BestPerMetric[model.MetricGrowthRate]; ok {
		fmt.Fprintf(b, "%s has grown the fastest over the period.\n", name)
	}
	if name, ok := res.Hints.BestPerMetric[model.MetricLatestValue]; ok {
		fmt.Fprintf(b, "%s is the most affordable of the group.\n", name)
	}
}

func writeRanking(b *strings.Builder, res model.ComparisonResult) {
	b.WriteString("Here's what the dataset shows:\n\n")
	for _, r := range res.Ranked {
		b.WriteString("- " + metroLine(r) + "\n")
	}
	if res.Hints.ExcludedByFilters > 0 {
		fmt.Fprintf(b, "\n%d metros were excluded by your criteria.\n", res.Hints.ExcludedByFilters)
	}
}

func metroLine(r model.RankedMetro) string {
	name := r.Metro.DisplayName
	if r.Metro.State != "" && !strings.Contains(name, r.Metro.State) {
		name = fmt.Sprintf("%s (%s)", name, r.Metro.State)
	}

	line := name
	if r.Metrics.LatestValue.Defined {
		line += usd.Sprintf(" — ~$%.0f", r.Metrics.LatestValue.Value)
	}
	if r.Metrics.GrowthRate.Defined {
		line += fmt.Sprintf(", %+.1f%% over the period", r.Metrics.GrowthRate.Value*100)
	} else {
		line += ", not enough history for a trend"
	}
	if r.Metrics.Trend != model.TrendUnknown && r.Metrics.Trend != "" {
		line += fmt.Sprintf(" (%s)", r.Metrics.Trend)
	}
	return line
}
