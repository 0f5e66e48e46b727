package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repodash/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func timedDataset() *models.Dataset {
	return models.NewDataset(
		[]string{"language", "stars_count", "forks_count", "created_at"},
		[]models.Repository{
			{Language: "Go", StarsCount: 10, ForksCount: 1, CreatedAt: time.Date(2023, 1, 5, 8, 0, 0, 0, time.UTC)},
			{Language: "Go", StarsCount: 5, ForksCount: 2, CreatedAt: time.Date(2023, 1, 5, 20, 30, 0, 0, time.UTC)},
			{Language: "Python", StarsCount: 3, ForksCount: 4, CreatedAt: time.Date(2023, 1, 5, 9, 0, 0, 0, time.UTC)},
			{Language: "Go", StarsCount: 2, ForksCount: 0, CreatedAt: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)},
			{Language: "Python", StarsCount: 8, ForksCount: 1, CreatedAt: time.Date(2023, 1, 20, 0, 0, 0, 0, time.UTC)},
			{Language: "Rust", StarsCount: 100, ForksCount: 9},
		},
	)
}

func TestAggregateByLanguageScenario(t *testing.T) {
	ds := models.NewDataset(
		[]string{"language", "stars_count", "forks_count"},
		[]models.Repository{
			{Language: "Go", StarsCount: 10, ForksCount: 2},
			{Language: models.UnknownLanguage, StarsCount: 5, ForksCount: 1},
		},
	)

	table, err := Aggregate(ds, []Key{KeyLanguage}, models.ColumnStars)
	require.NoError(t, err)
	assert.Equal(t, models.SumTable{
		Keys:   []string{"language"},
		Column: "stars_count",
		Rows: []models.Sum{
			{Language: "Go", Value: 10},
			{Language: "Unknown", Value: 5},
		},
	}, table)
}

func TestAggregate(t *testing.T) {
	ds := timedDataset()

	tests := []struct {
		name     string
		keys     []Key
		column   string
		expected models.SumTable
	}{
		{
			name:   "forks by language",
			keys:   []Key{KeyLanguage},
			column: models.ColumnForks,
			expected: models.SumTable{
				Keys:   []string{"language"},
				Column: "forks_count",
				Rows: []models.Sum{
					{Language: "Go", Value: 3},
					{Language: "Python", Value: 5},
					{Language: "Rust", Value: 9},
				},
			},
		},
		{
			name:   "stars by day and language skips rows without created_at",
			keys:   []Key{KeyDay, KeyLanguage},
			column: models.ColumnStars,
			expected: models.SumTable{
				Keys:        []string{"created_at", "language"},
				Granularity: "day",
				Column:      "stars_count",
				Rows: []models.Sum{
					{Bucket: day(2023, 1, 5), Language: "Go", Value: 15},
					{Bucket: day(2023, 1, 5), Language: "Python", Value: 3},
					{Bucket: day(2023, 1, 20), Language: "Python", Value: 8},
					{Bucket: day(2023, 2, 1), Language: "Go", Value: 2},
				},
			},
		},
		{
			name:   "stars by month",
			keys:   []Key{KeyMonth},
			column: models.ColumnStars,
			expected: models.SumTable{
				Keys:        []string{"created_at"},
				Granularity: "month",
				Column:      "stars_count",
				Rows: []models.Sum{
					{Bucket: day(2023, 1, 1), Value: 26},
					{Bucket: day(2023, 2, 1), Value: 2},
				},
			},
		},
		{
			name:   "key order does not matter",
			keys:   []Key{KeyLanguage, KeyMonth},
			column: models.ColumnForks,
			expected: models.SumTable{
				Keys:        []string{"created_at", "language"},
				Granularity: "month",
				Column:      "forks_count",
				Rows: []models.Sum{
					{Bucket: day(2023, 1, 1), Language: "Go", Value: 3},
					{Bucket: day(2023, 1, 1), Language: "Python", Value: 5},
					{Bucket: day(2023, 2, 1), Language: "Go", Value: 0},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Aggregate(ds, tt.keys, tt.column)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, table)
		})
	}
}

func TestAggregateIsIdempotent(t *testing.T) {
	ds := timedDataset()
	first, err := Aggregate(ds, []Key{KeyDay, KeyLanguage}, models.ColumnStars)
	require.NoError(t, err)
	second, err := Aggregate(ds, []Key{KeyDay, KeyLanguage}, models.ColumnStars)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, timedDataset(), ds)
}

func TestAggregateEmptyInput(t *testing.T) {
	table, err := Aggregate(models.NewDataset(nil, nil), []Key{KeyLanguage}, models.ColumnStars)
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
	assert.NotNil(t, table.Rows)
}

func TestAggregateErrors(t *testing.T) {
	ds := timedDataset()

	_, err := Aggregate(ds, []Key{KeyLanguage}, "watchers_count")
	assert.ErrorIs(t, err, ErrUnknownColumn)

	_, err = Aggregate(ds, nil, models.ColumnStars)
	assert.ErrorIs(t, err, ErrInvalidKeys)

	_, err = Aggregate(ds, []Key{KeyDay, KeyMonth}, models.ColumnStars)
	assert.ErrorIs(t, err, ErrInvalidKeys)

	_, err = Aggregate(ds, []Key{KeyLanguage, KeyLanguage}, models.ColumnStars)
	assert.ErrorIs(t, err, ErrInvalidKeys)

	_, err = Aggregate(ds, []Key{"week"}, models.ColumnStars)
	assert.ErrorIs(t, err, ErrInvalidKeys)
}

func TestPivot(t *testing.T) {
	table, err := Aggregate(timedDataset(), []Key{KeyDay, KeyLanguage}, models.ColumnStars)
	require.NoError(t, err)

	grid, err := Pivot(table)
	require.NoError(t, err)

	assert.Equal(t, []time.Time{day(2023, 1, 5), day(2023, 1, 20), day(2023, 2, 1)}, grid.Buckets)
	assert.Equal(t, []string{"Go", "Python"}, grid.Languages)
	require.Len(t, grid.Cells, 3)

	value := func(p *int64) interface{} {
		if p == nil {
			return nil
		}
		return *p
	}
	assert.Equal(t, []interface{}{int64(15), int64(3)}, []interface{}{value(grid.Cells[0][0]), value(grid.Cells[0][1])})
	assert.Equal(t, []interface{}{nil, int64(8)}, []interface{}{value(grid.Cells[1][0]), value(grid.Cells[1][1])})
	assert.Equal(t, []interface{}{int64(2), nil}, []interface{}{value(grid.Cells[2][0]), value(grid.Cells[2][1])})
}

func TestPivotRejectsOtherShapes(t *testing.T) {
	table, err := Aggregate(timedDataset(), []Key{KeyLanguage}, models.ColumnStars)
	require.NoError(t, err)
	_, err = Pivot(table)
	assert.ErrorIs(t, err, ErrInvalidKeys)
}
