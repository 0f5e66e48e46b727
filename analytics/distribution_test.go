package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repodash/models"
)

func forksDataset(lang string, forks ...int64) []models.Repository {
	recs := make([]models.Repository, 0, len(forks))
	for _, f := range forks {
		recs = append(recs, models.Repository{Language: lang, ForksCount: f, StarsCount: f * 10})
	}
	return recs
}

func TestScatter(t *testing.T) {
	ds := models.NewDataset(
		[]string{"name", "language", "stars_count", "forks_count", "pull_requests"},
		[]models.Repository{
			{Name: "a", Language: "Go", StarsCount: 10, PullRequests: 3},
			{Name: "b", Language: "Rust", StarsCount: 4, PullRequests: 9},
		},
	)

	table, err := Scatter(ds, models.ColumnStars, models.ColumnPullRequests)
	require.NoError(t, err)
	assert.Equal(t, models.ScatterTable{
		X: "stars_count",
		Y: "pull_requests",
		Points: []models.ScatterPoint{
			{X: 10, Y: 3, Language: "Go", Name: "a"},
			{X: 4, Y: 9, Language: "Rust", Name: "b"},
		},
	}, table)

	_, err = Scatter(ds, models.ColumnStars, "language")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestHistogram(t *testing.T) {
	t.Run("equal width bins", func(t *testing.T) {
		var recs []models.Repository
		for i := int64(0); i <= 10; i++ {
			recs = append(recs, models.Repository{Language: "Go", StarsCount: i})
		}
		table, err := Histogram(models.NewDataset(nil, recs), models.ColumnStars, 5)
		require.NoError(t, err)
		require.Len(t, table.Bins, 5)

		counts := make([]int, 0, 5)
		for _, b := range table.Bins {
			counts = append(counts, b.Count)
		}
		// [0,2) [2,4) [4,6) [6,8) [8,10]
		assert.Equal(t, []int{2, 2, 2, 2, 3}, counts)
		assert.Equal(t, 0.0, table.Bins[0].Lower)
		assert.Equal(t, 10.0, table.Bins[4].Upper)
	})

	t.Run("identical values", func(t *testing.T) {
		ds := models.NewDataset(nil, forksDataset("Go", 3, 3, 3))
		table, err := Histogram(ds, models.ColumnStars, DefaultHistogramBins)
		require.NoError(t, err)
		assert.Equal(t, []models.Bin{{Lower: 30, Upper: 30, Count: 3}}, table.Bins)
	})

	t.Run("empty input", func(t *testing.T) {
		table, err := Histogram(models.NewDataset(nil, nil), models.ColumnStars, DefaultHistogramBins)
		require.NoError(t, err)
		assert.Empty(t, table.Bins)
	})

	t.Run("invalid bins", func(t *testing.T) {
		_, err := Histogram(models.NewDataset(nil, nil), models.ColumnStars, 0)
		assert.Error(t, err)
	})
}

func TestBox(t *testing.T) {
	recs := append(forksDataset("Go", 8, 1, 2, 3, 4, 5, 6, 7), forksDataset("Rust", 1, 2, 3, 4, 5, 6, 7, 8, 100)...)
	recs = append(recs, forksDataset("Zig", 4)...)
	ds := models.NewDataset(nil, recs)

	table, err := Box(ds, models.ColumnForks)
	require.NoError(t, err)
	require.Len(t, table.Boxes, 3)

	assert.Equal(t, models.BoxStats{
		Language: "Go", Count: 8,
		Min: 1, Q1: 2.5, Median: 4.5, Q3: 6.5, Max: 8,
		LowerFence: 1, UpperFence: 8,
	}, table.Boxes[0])

	assert.Equal(t, models.BoxStats{
		Language: "Rust", Count: 9,
		Min: 1, Q1: 2.5, Median: 5, Q3: 7.5, Max: 100,
		LowerFence: 1, UpperFence: 8,
		Outliers: []float64{100},
	}, table.Boxes[1])

	assert.Equal(t, models.BoxStats{
		Language: "Zig", Count: 1,
		Min: 4, Q1: 4, Median: 4, Q3: 4, Max: 4,
		LowerFence: 4, UpperFence: 4,
	}, table.Boxes[2])
}

func TestBoxEmpty(t *testing.T) {
	table, err := Box(models.NewDataset(nil, nil), models.ColumnForks)
	require.NoError(t, err)
	assert.Empty(t, table.Boxes)
}
