// Package resolve maps free-text metro mentions to canonical metro areas.
package resolve

import (
	"regexp"
	"strings"
)

// noiseWords are tokens that carry no matching signal in a metro mention.
var noiseWords = map[string]bool{
	"METRO": true,
	"MSA":   true,
	"AREA":  true,
	"CITY":  true,
	"THE":   true,
	"OF":    true,
	"IN":    true,
}

var multiSpaceRe = regexp.MustCompile(`\s{2,}`)

// NormalizeName standardizes a metro name or mention for matching by:
//  1. Trimming whitespace
//  2. Converting to uppercase
//  3. Stripping punctuation (commas, periods, dashes become spaces)
//  4. Dropping noise words (METRO, MSA, AREA, ...)
//  5. Collapsing multiple spaces into single spaces
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	name = strings.ToUpper(name)

	name = strings.NewReplacer(
		",", " ",
		".", "",
		"'", "",
		"\"", "",
		"&", "AND",
		"-", " ",
		"/", " ",
	).Replace(name)

	name = multiSpaceRe.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)

	fields := strings.Fields(name)
	kept := fields[:0]
	for _, f := range fields {
		if noiseWords[f] {
			continue
		}
		kept = append(kept, f)
	}

	return strings.Join(kept, " ")
}

// Tokens returns the significant tokens of a normalized name.
func Tokens(normalized string) []string {
	return strings.Fields(normalized)
}
