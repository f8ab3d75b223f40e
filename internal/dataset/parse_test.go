package dataset

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/relocate-cli/internal/model"
)

func TestParseTable_Long(t *testing.T) {
	records := [][]string{
		{"RegionName", "StateName", "Date", "Value"},
		{"Austin-Round Rock, TX", "TX", "2024-01-31", "300000"},
		{"Austin-Round Rock, TX", "TX", "2024-02-29", "$312,400"},
	}

	res, err := ParseTable(records, Options{})
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	assert.Zero(t, res.Skipped)

	assert.Equal(t, "Austin-Round Rock, TX", res.Rows[0].MetroName)
	assert.Equal(t, "TX", res.Rows[0].State)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), res.Rows[0].Period)
	assert.Equal(t, 312400.0, res.Rows[1].Value)
}

func TestParseTable_LongSkipsBadRows(t *testing.T) {
	records := [][]string{
		{"metro", "state", "period", "value"},
		{"Austin, TX", "TX", "2024-01-31", "300000"},
		{"", "TX", "2024-02-29", "310000"},        // blank name
		{"Austin, TX", "TX", "not-a-date", "310"}, // bad period
		{"Austin, TX", "TX"},                      // short row
	}

	res, err := ParseTable(records, Options{})
	require.NoError(t, err)
	assert.Len(t, res.Rows, 1)
	assert.Equal(t, 3, res.Skipped)
}

func TestParseTable_StrictFailsOnBadRow(t *testing.T) {
	records := [][]string{
		{"RegionName", "Date", "Value"},
		{"Austin, TX", "2024-01-31", "oops"},
	}

	_, err := ParseTable(records, Options{Strict: true})
	assert.ErrorIs(t, err, model.ErrData)
}

func TestParseTable_Wide(t *testing.T) {
	records := [][]string{
		{"RegionName", "StateName", "2024-01-31", "2024-02-29"},
		{"Austin-Round Rock, TX", "TX", "300000", "312400"},
		{"Denver-Aurora, CO", "CO", "500000", ""}, // gap cell
	}

	res, err := ParseTable(records, Options{})
	require.NoError(t, err)
	require.Len(t, res.Rows, 3)
	assert.Equal(t, 1, res.Skipped)

	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), res.Rows[1].Period)
	assert.Equal(t, 312400.0, res.Rows[1].Value)
	assert.Equal(t, "Denver-Aurora, CO", res.Rows[2].MetroName)
}

func TestParseTable_NoRegionColumn(t *testing.T) {
	_, err := ParseTable([][]string{{"foo", "bar"}}, Options{})
	assert.ErrorIs(t, err, model.ErrData)
}

func TestParseTable_Empty(t *testing.T) {
	_, err := ParseTable(nil, Options{})
	assert.ErrorIs(t, err, model.ErrData)
}

func TestParsePeriod_Layouts(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-31", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)},
		{"2024-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"1/31/2024", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, ok := parsePeriod(tt.in)
		require.True(t, ok, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, ok := parsePeriod("RegionName")
	assert.False(t, ok)
}

func TestReadCSV(t *testing.T) {
	csv := strings.Join([]string{
		"RegionName,StateName,Date,Value",
		"Austin-Round Rock TX,TX,2024-01-31,300000",
		"Denver-Aurora CO,CO,2024-01-31,500000",
	}, "\n")

	res, err := ReadCSV(context.Background(), strings.NewReader(csv), Options{})
	require.NoError(t, err)
	assert.Len(t, res.Rows, 2)
}

func TestReadCSV_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadCSV(ctx, strings.NewReader("RegionName,Date,Value\n"), Options{})
	assert.Error(t, err)
}
