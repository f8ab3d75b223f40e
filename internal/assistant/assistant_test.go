package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/relocate-cli/internal/model"
	"github.com/sells-group/relocate-cli/internal/store"
)

func testAssistant(t *testing.T) *Assistant {
	t.Helper()
	month := func(m int) time.Time {
		return time.Date(2024, time.Month(m), 28, 0, 0, 0, 0, time.UTC)
	}
	rows := []model.Row{
		{MetroName: "Austin-Round Rock, TX", State: "TX", Period: month(1), Value: 300000},
		{MetroName: "Austin-Round Rock, TX", State: "TX", Period: month(2), Value: 315000},
		{MetroName: "Austin-Round Rock, TX", State: "TX", Period: month(3), Value: 330000},
		{MetroName: "Denver-Aurora, CO", State: "CO", Period: month(1), Value: 500000},
		{MetroName: "Denver-Aurora, CO", State: "CO", Period: month(2), Value: 490000},
		{MetroName: "Denver-Aurora, CO", State: "CO", Period: month(3), Value: 480000},
		{MetroName: "Tulsa, OK", State: "OK", Period: month(1), Value: 250000},
		{MetroName: "Tulsa, OK", State: "OK", Period: month(3), Value: 230000},
		{MetroName: "United States", State: "", Period: month(3), Value: 355000},
	}
	ix, err := store.NewIndex(rows)
	require.NoError(t, err)
	return New(ix, nil, nil)
}

func TestReply_Compare(t *testing.T) {
	a := testAssistant(t)

	ans, err := a.Reply(context.Background(), "compare austin and denver")
	require.NoError(t, err)

	assert.Equal(t, model.ModeCompare, ans.Query.Mode)
	require.Len(t, ans.Result.Ranked, 2)

	// Austin is up 10% over the window, Denver down 4%.
	assert.InDelta(t, 0.10, ans.Result.Ranked[0].Metrics.GrowthRate.Value, 1e-9)
	assert.InDelta(t, -0.04, ans.Result.Ranked[1].Metrics.GrowthRate.Value, 1e-9)

	assert.Contains(t, ans.Text, "Austin-Round Rock, TX — ~$330,000, +10.0% over the period")
	assert.Contains(t, ans.Text, "Denver-Aurora, CO — ~$480,000, -4.0% over the period")
	assert.Contains(t, ans.Text, "Denver-Aurora, CO is about $150,000 more expensive than Austin-Round Rock, TX.")
	assert.Contains(t, ans.Text, "Austin-Round Rock, TX has grown the fastest over the period.")
}

func TestReply_FilterRank(t *testing.T) {
	a := testAssistant(t)

	ans, err := a.Reply(context.Background(), "cheapest metros under $400k")
	require.NoError(t, err)

	assert.Equal(t, model.ModeFilterRank, ans.Query.Mode)
	require.Len(t, ans.Result.Ranked, 2)
	assert.Equal(t, "Tulsa, OK", ans.Result.Ranked[0].Metro.DisplayName)
	assert.Equal(t, "Austin-Round Rock, TX", ans.Result.Ranked[1].Metro.DisplayName)
	assert.NotContains(t, ans.Text, "United States")
}

func TestReply_BudgetScaling(t *testing.T) {
	a := testAssistant(t)

	ans, err := a.Reply(context.Background(), "where can I buy on under $3,000 a month")
	require.NoError(t, err)

	assert.True(t, ans.Query.BudgetScaled)
	require.NotEmpty(t, ans.Result.Ranked)
	assert.Contains(t, ans.Text, "monthly rent")
}

func TestReply_Unresolved(t *testing.T) {
	a := testAssistant(t)

	ans, err := a.Reply(context.Background(), "compare austin and zzgarbleville")
	require.NoError(t, err)

	assert.Equal(t, []string{"zzgarbleville"}, ans.Query.Unresolved)
	assert.Contains(t, ans.Text, `I couldn't locate "zzgarbleville"`)
	// The resolvable half of the question is still answered.
	require.Len(t, ans.Result.Ranked, 1)
	assert.Equal(t, "Austin-Round Rock, TX", ans.Result.Ranked[0].Metro.DisplayName)
}

func TestReply_EmptyInputGreets(t *testing.T) {
	a := testAssistant(t)

	ans, err := a.Reply(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, greeting, ans.Text)
}

func TestReply_NoMatches(t *testing.T) {
	a := testAssistant(t)

	ans, err := a.Reply(context.Background(), "metros under $100k")
	require.NoError(t, err)
	assert.True(t, ans.Result.Hints.ZeroMatches)
	assert.Contains(t, ans.Text, "couldn't find any metros")
}
