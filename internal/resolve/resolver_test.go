package resolve

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/relocate-cli/internal/model"
	"github.com/sells-group/relocate-cli/internal/store"
)

func testIndex(t *testing.T) *store.Index {
	t.Helper()
	period := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	rows := []model.Row{
		{MetroName: "Austin-Round Rock, TX", State: "TX", Period: period, Value: 450000},
		{MetroName: "Denver-Aurora, CO", State: "CO", Period: period, Value: 560000},
		{MetroName: "Portland, OR", State: "OR", Period: period, Value: 540000},
		{MetroName: "Portland, ME", State: "ME", Period: period, Value: 480000},
	}
	ix, err := store.NewIndex(rows)
	require.NoError(t, err)
	return ix
}

func TestResolve_ExactAlias(t *testing.T) {
	r := New(testIndex(t), nil)

	res := r.Resolve("Austin-Round Rock, TX")
	require.NotEmpty(t, res.Matches)
	assert.Equal(t, "Austin-Round Rock, TX", res.Matches[0].DisplayName)
	assert.Equal(t, 1.0, res.Scores[0])
	assert.False(t, res.Ambiguous)
}

func TestResolve_CityOnly(t *testing.T) {
	r := New(testIndex(t), nil)

	res := r.Resolve("austin")
	require.NotEmpty(t, res.Matches)
	assert.Equal(t, "Austin-Round Rock, TX", res.Matches[0].DisplayName)
}

func TestResolve_Fuzzy(t *testing.T) {
	r := New(testIndex(t), nil)

	res := r.Resolve("austen round rock")
	require.NotEmpty(t, res.Matches, "misspelling within edit distance should still match")
	assert.Equal(t, "Austin-Round Rock, TX", res.Matches[0].DisplayName)
	assert.GreaterOrEqual(t, res.Scores[0], FuzzyCutoff)
	assert.Less(t, res.Scores[0], 1.0)
}

func TestResolve_NoMatch(t *testing.T) {
	r := New(testIndex(t), nil)

	res := r.Resolve("xyzzyqq")
	assert.Empty(t, res.Matches)
	assert.False(t, res.Ambiguous)
}

func TestResolve_Empty(t *testing.T) {
	r := New(testIndex(t), nil)
	assert.Empty(t, r.Resolve("   ").Matches)
}

func TestResolve_Ambiguous(t *testing.T) {
	r := New(testIndex(t), nil)

	// Bare "portland" matches both Portland metros at the same tier.
	res := r.Resolve("portland")
	require.GreaterOrEqual(t, len(res.Matches), 2)
	assert.True(t, res.Ambiguous)
	// Ties break on display name.
	assert.Equal(t, "Portland, ME", res.Matches[0].DisplayName)
}

func TestResolve_StateDisambiguates(t *testing.T) {
	r := New(testIndex(t), nil)

	res := r.Resolve("portland or")
	require.NotEmpty(t, res.Matches)
	assert.Equal(t, "Portland, OR", res.Matches[0].DisplayName)
	assert.False(t, res.Ambiguous)
}

func TestResolve_Override(t *testing.T) {
	ix := testIndex(t)
	r := New(ix, map[string]string{
		"atx":     "austin-round-rock-tx",
		"nowhere": "not-a-real-id", // unknown ids are dropped
	})

	res := r.Resolve("ATX")
	require.NotEmpty(t, res.Matches)
	assert.Equal(t, "Austin-Round Rock, TX", res.Matches[0].DisplayName)
	assert.Equal(t, 1.0, res.Scores[0])

	assert.Empty(t, r.Resolve("nowhere").Matches)
}

func TestResolveAll(t *testing.T) {
	r := New(testIndex(t), nil)

	out := r.ResolveAll([]string{"austin", "bogusville"})
	require.Len(t, out, 2)
	assert.NotEmpty(t, out[0].Matches)
	assert.Empty(t, out[1].Matches)
}

func TestLoadAliases(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aliases.yaml")
	require.NoError(t, os.WriteFile(path, []byte("aliases:\n  atx: austin-round-rock-tx\n"), 0o644))

	m, err := LoadAliases(path)
	require.NoError(t, err)
	assert.Equal(t, "austin-round-rock-tx", m["atx"])
}

func TestLoadAliases_Missing(t *testing.T) {
	m, err := LoadAliases(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestLoadAliases_EmptyPath(t *testing.T) {
	m, err := LoadAliases("")
	require.NoError(t, err)
	assert.Nil(t, m)
}
