package resolve

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/sells-group/relocate-cli/internal/model"
	"github.com/sells-group/relocate-cli/internal/store"
)

// Match tier scores. Exact alias hits outrank token-subset hits, which
// outrank fuzzy hits; a fuzzy hit scores its similarity.
const (
	scoreExact  = 1.0
	scoreTokens = 0.8

	// FuzzyCutoff is the minimum similarity for a fuzzy match.
	FuzzyCutoff = 0.6

	// ambiguityGap flags a resolution when the top two scores are this close.
	ambiguityGap = 0.05
)

// Resolver maps mention text to metros from one immutable index. Built once
// per store load; resolving is a pure function over the alias index, so it
// can never emit an id the store doesn't hold.
type Resolver struct {
	ix      *store.Index
	aliases map[string][]string // normalized alias → metro ids
	norms   map[string]string   // metro id → normalized display name
	tokens  map[string][]string // metro id → normalized tokens (name + state)
}

// New builds the alias index from the store. Extra alias→id overrides
// (from an alias file) are folded in; overrides naming unknown ids are
// dropped so the unknown-id invariant holds.
func New(ix *store.Index, overrides map[string]string) *Resolver {
	r := &Resolver{
		ix:      ix,
		aliases: make(map[string][]string),
		norms:   make(map[string]string),
		tokens:  make(map[string][]string),
	}

	for _, m := range ix.Metros() {
		norm := NormalizeName(m.DisplayName)
		r.norms[m.ID] = norm
		toks := Tokens(norm)
		if m.State != "" {
			toks = append(toks, strings.ToUpper(m.State))
		}
		r.tokens[m.ID] = toks

		for _, alias := range m.Aliases {
			r.addAlias(alias, m.ID)
		}
	}

	for alias, id := range overrides {
		if _, ok := ix.Metro(id); !ok {
			continue
		}
		r.addAlias(alias, id)
	}

	return r
}

func (r *Resolver) addAlias(alias, id string) {
	key := NormalizeName(alias)
	if key == "" {
		return
	}
	for _, existing := range r.aliases[key] {
		if existing == id {
			return
		}
	}
	r.aliases[key] = append(r.aliases[key], id)
}

// Resolve matches one raw mention. An empty match list is a soft failure,
// not an error; the caller decides how to react.
func (r *Resolver) Resolve(raw string) model.Resolution {
	res := model.Resolution{Raw: raw}

	norm := NormalizeName(raw)
	if norm == "" {
		return res
	}

	type scored struct {
		id    string
		score float64
	}
	var hits []scored

	// Tier 1: exact alias match.
	if ids, ok := r.aliases[norm]; ok {
		for _, id := range ids {
			hits = append(hits, scored{id, scoreExact})
		}
	}

	// Tier 2: token subset: every significant input token is a substring
	// of some candidate token.
	if len(hits) == 0 {
		inToks := Tokens(norm)
		for id, candToks := range r.tokens {
			if tokenSubset(inToks, candToks) {
				hits = append(hits, scored{id, scoreTokens})
			}
		}
	}

	// Tier 3: edit-distance similarity on the normalized display name.
	if len(hits) == 0 {
		for id, cand := range r.norms {
			sim := levenshtein.Similarity(norm, cand, nil)
			if sim >= FuzzyCutoff {
				hits = append(hits, scored{id, sim})
			}
		}
	}

	// Score descending, ties by display name.
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		mi, _ := r.ix.Metro(hits[i].id)
		mj, _ := r.ix.Metro(hits[j].id)
		return mi.DisplayName < mj.DisplayName
	})

	for _, h := range hits {
		m, _ := r.ix.Metro(h.id)
		res.Matches = append(res.Matches, m)
		res.Scores = append(res.Scores, h.score)
	}

	if len(res.Scores) >= 2 && res.Scores[0]-res.Scores[1] < ambiguityGap {
		res.Ambiguous = true
	}

	return res
}

// ResolveAll resolves mentions in order.
func (r *Resolver) ResolveAll(raws []string) []model.Resolution {
	out := make([]model.Resolution, 0, len(raws))
	for _, raw := range raws {
		out = append(out, r.Resolve(raw))
	}
	return out
}

func tokenSubset(in, cand []string) bool {
	if len(in) == 0 {
		return false
	}
	for _, t := range in {
		found := false
		for _, c := range cand {
			if strings.Contains(c, t) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
