package interpret

import "github.com/sells-group/relocate-cli/internal/model"

// rankKeywords maps ranking phrases to sorts. Longer phrases are checked
// first so "most expensive" wins over "expensive".
var rankKeywords = []struct {
	phrase string
	sort   model.Sort
}{
	{"fastest growing", model.Sort{Metric: model.MetricGrowthRate, Dir: model.SortDesc}},
	{"most affordable", model.Sort{Metric: model.MetricLatestValue, Dir: model.SortAsc}},
	{"most expensive", model.Sort{Metric: model.MetricLatestValue, Dir: model.SortDesc}},
	{"most stable", model.Sort{Metric: model.MetricVolatility, Dir: model.SortAsc}},
	{"most volatile", model.Sort{Metric: model.MetricVolatility, Dir: model.SortDesc}},
	{"least volatile", model.Sort{Metric: model.MetricVolatility, Dir: model.SortAsc}},
	{"appreciating", model.Sort{Metric: model.MetricGrowthRate, Dir: model.SortDesc}},
	{"declining", model.Sort{Metric: model.MetricGrowthRate, Dir: model.SortAsc}},
	{"cheapest", model.Sort{Metric: model.MetricLatestValue, Dir: model.SortAsc}},
	{"priciest", model.Sort{Metric: model.MetricLatestValue, Dir: model.SortDesc}},
	{"growing", model.Sort{Metric: model.MetricGrowthRate, Dir: model.SortDesc}},
	{"stable", model.Sort{Metric: model.MetricVolatility, Dir: model.SortAsc}},
}

// stopwords are chat filler stripped from candidate mention spans before
// resolution. Keyword and number tokens are stripped separately.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "of": true, "for": true, "to": true,
	"in": true, "on": true, "at": true, "with": true, "about": true,
	"how": true, "what": true, "whats": true, "which": true, "is": true,
	"are": true, "does": true, "do": true, "can": true, "you": true,
	"i": true, "me": true, "my": true, "please": true, "show": true,
	"tell": true, "find": true, "want": true, "looking": true, "give": true,
	"metro": true, "metros": true, "area": true, "areas": true,
	"city": true, "cities": true, "market": true, "markets": true,
	"home": true, "homes": true, "house": true, "houses": true,
	"housing": true, "price": true, "prices": true, "value": true,
	"values": true, "budget": true, "rent": true, "monthly": true,
	"top": true, "best": true, "list": true, "some": true,
}

// keywordTokens are tokens consumed by the filter/rank/limit rules; they
// never belong to a metro mention.
var keywordTokens = map[string]bool{
	"under": true, "below": true, "above": true, "over": true,
	"cheapest": true, "priciest": true, "expensive": true,
	"affordable": true, "fastest": true, "growing": true, "grown": true,
	"stable": true, "volatile": true, "most": true, "least": true,
	"rising": true, "flat": true, "falling": true,
	"appreciating": true, "declining": true,
}

// stateNames maps full state names (lowercased) to postal codes, so
// "in texas" scopes the same way "in TX" does.
var stateNames = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT",
	"delaware": "DE", "florida": "FL", "georgia": "GA", "hawaii": "HI",
	"idaho": "ID", "illinois": "IL", "indiana": "IN", "iowa": "IA",
	"kansas": "KS", "kentucky": "KY", "louisiana": "LA", "maine": "ME",
	"maryland": "MD", "massachusetts": "MA", "michigan": "MI",
	"minnesota": "MN", "mississippi": "MS", "missouri": "MO",
	"montana": "MT", "nebraska": "NE", "nevada": "NV",
	"new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM",
	"new york": "NY", "north carolina": "NC", "north dakota": "ND",
	"ohio": "OH", "oklahoma": "OK", "oregon": "OR", "pennsylvania": "PA",
	"rhode island": "RI", "south carolina": "SC", "south dakota": "SD",
	"tennessee": "TN", "texas": "TX", "utah": "UT", "vermont": "VT",
	"virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY",
}

var postalCodes = func() map[string]bool {
	m := make(map[string]bool, len(stateNames))
	for _, code := range stateNames {
		m[code] = true
	}
	return m
}()
