package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteSnapshot {
	t.Helper()
	snap, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { snap.Close() })
	require.NoError(t, snap.Migrate(context.Background()))
	return snap
}

func TestSQLiteSnapshot_RoundTrip(t *testing.T) {
	ctx := context.Background()
	snap := newTestSQLite(t)

	require.NoError(t, snap.Replace(ctx, fixtureRows()))

	rows, err := snap.Rows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// Ordered by metro, state, period.
	assert.Equal(t, "Austin-Round Rock, TX", rows[0].MetroName)
	assert.Equal(t, "2024-01-31", rows[0].Period.Format("2006-01-02"))
	assert.Equal(t, 300000.0, rows[0].Value)
	assert.Equal(t, "Denver-Aurora, CO", rows[3].MetroName)
}

func TestSQLiteSnapshot_ReplaceSwapsAtomically(t *testing.T) {
	ctx := context.Background()
	snap := newTestSQLite(t)

	require.NoError(t, snap.Replace(ctx, fixtureRows()))
	require.NoError(t, snap.Replace(ctx, fixtureRows()[:2]))

	rows, err := snap.Rows(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	st, err := snap.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Metros)
	assert.Equal(t, 2, st.Rows)
	assert.False(t, st.LoadedAt.IsZero())
}

func TestSQLiteSnapshot_EmptyStats(t *testing.T) {
	ctx := context.Background()
	snap := newTestSQLite(t)

	st, err := snap.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Rows)
	assert.True(t, st.LoadedAt.IsZero())
}

func TestSQLiteSnapshot_RebuildsIndex(t *testing.T) {
	ctx := context.Background()
	snap := newTestSQLite(t)

	require.NoError(t, snap.Replace(ctx, fixtureRows()))

	rows, err := snap.Rows(ctx)
	require.NoError(t, err)

	ix, err := NewIndex(rows)
	require.NoError(t, err)
	assert.Equal(t, 2, ix.Len())
}
