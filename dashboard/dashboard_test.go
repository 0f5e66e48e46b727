package dashboard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repodash/models"
)

func fullDataset() *models.Dataset {
	return models.NewDataset(
		[]string{"name", "language", "stars_count", "forks_count", "pull_requests", "created_at"},
		[]models.Repository{
			{Name: "a", Language: "Go", StarsCount: 10, ForksCount: 2, PullRequests: 4, CreatedAt: time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)},
			{Name: "b", Language: models.UnknownLanguage, StarsCount: 5, ForksCount: 1, PullRequests: 1, CreatedAt: time.Date(2023, 2, 7, 0, 0, 0, 0, time.UTC)},
			{Name: "c", Language: "Python", StarsCount: 8, ForksCount: 6, PullRequests: 0, CreatedAt: time.Date(2023, 2, 9, 0, 0, 0, 0, time.UTC)},
		},
	)
}

func panelIDs(d *Dashboard) []string {
	ids := make([]string, 0, len(d.Panels))
	for _, p := range d.Panels {
		ids = append(ids, p.Spec.ID)
	}
	return ids
}

func TestBuildPopulated(t *testing.T) {
	ds := fullDataset()
	d, err := Build(ds, []string{"Go", "Unknown", "Python"})
	require.NoError(t, err)

	assert.Equal(t, StatePopulated, d.State)
	assert.Equal(t, []string{"Go", "Unknown", "Python"}, d.Languages)
	assert.Equal(t, 3, d.Rows)
	assert.Equal(t, []string{
		ChartStarsByLanguage, ChartPRsVsStars, ChartStarsHistogram, ChartForksBox,
		ChartStarsHeatmap, ChartStarsArea, ChartForksArea, ChartStarsPie, ChartForksPie, ChartStarsTrend,
	}, panelIDs(d))

	bar, ok := d.Panel(ChartStarsByLanguage)
	require.True(t, ok)
	assert.Equal(t, models.SumTable{
		Keys:   []string{"language"},
		Column: "stars_count",
		Rows: []models.Sum{
			{Language: "Go", Value: 10},
			{Language: "Python", Value: 8},
			{Language: "Unknown", Value: 5},
		},
	}, bar.Table)

	trend, ok := d.Panel(ChartStarsTrend)
	require.True(t, ok)
	assert.Equal(t, 2, trend.Table.Len())

	heatmap, ok := d.Panel(ChartStarsHeatmap)
	require.True(t, ok)
	assert.IsType(t, models.HeatmapTable{}, heatmap.Table)
}

func TestBuildFiltersEveryPanel(t *testing.T) {
	d, err := Build(fullDataset(), []string{"Go"})
	require.NoError(t, err)

	assert.Equal(t, 1, d.Rows)
	for _, p := range d.Panels {
		assert.False(t, p.Empty(), p.Spec.ID)
	}
	pie, _ := d.Panel(ChartForksPie)
	assert.Equal(t, []models.Sum{{Language: "Go", Value: 2}}, pie.Table.(models.SumTable).Rows)
}

func TestBuildWithoutCreatedAt(t *testing.T) {
	ds := models.NewDataset(
		[]string{"language", "stars_count", "forks_count"},
		[]models.Repository{
			{Language: "Go", StarsCount: 10, ForksCount: 2},
			{Language: models.UnknownLanguage, StarsCount: 5, ForksCount: 1},
		},
	)

	d, err := Build(ds, []string{"Go", "Unknown"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		ChartStarsByLanguage, ChartStarsHistogram, ChartForksBox, ChartStarsPie, ChartForksPie,
	}, panelIDs(d))
	assert.False(t, d.Capabilities.TimeSeries)
}

func TestBuildSkipsGatedChartsWithoutDeriving(t *testing.T) {
	ds := models.NewDataset([]string{"language", "stars_count", "forks_count"}, []models.Repository{{Language: "Go"}})
	called := false
	charts := []Chart{{
		Spec:     Spec{ID: "gated", Kind: KindLine},
		Requires: models.CapabilityTimeSeries,
		Derive: func(*models.Dataset) (Table, error) {
			called = true
			return models.SumTable{}, nil
		},
	}}

	d, err := BuildCharts(ds, []string{"Go"}, charts)
	require.NoError(t, err)
	assert.Empty(t, d.Panels)
	assert.False(t, called)
}

func TestBuildEmptySelection(t *testing.T) {
	d, err := Build(fullDataset(), []string{})
	require.NoError(t, err)

	assert.Equal(t, StatePopulated, d.State)
	assert.Equal(t, 0, d.Rows)
	require.Len(t, d.Panels, 10)
	for _, p := range d.Panels {
		assert.True(t, p.Empty(), p.Spec.ID)
	}
}

func TestBuildEmptyDataset(t *testing.T) {
	tests := []struct {
		name   string
		ds     *models.Dataset
		notice string
	}{
		{name: "degraded", ds: models.EmptyDataset("The dataset could not be found.", errors.New("missing")), notice: "The dataset could not be found."},
		{name: "no rows", ds: models.NewDataset([]string{"language"}, nil)},
		{name: "nil", ds: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Build(tt.ds, nil)
			require.NoError(t, err)
			assert.Equal(t, StateEmpty, d.State)
			assert.Equal(t, NoDataWarning, d.Warning)
			assert.Equal(t, tt.notice, d.Notice)
			assert.Empty(t, d.Panels)
		})
	}
}

func TestBuildPropagatesDeriveErrors(t *testing.T) {
	charts := []Chart{{
		Spec: Spec{ID: "broken"},
		Derive: func(*models.Dataset) (Table, error) {
			return nil, errors.New("boom")
		},
	}}
	_, err := BuildCharts(fullDataset(), []string{"Go"}, charts)
	assert.ErrorContains(t, err, "broken")
}

func TestSpecLabel(t *testing.T) {
	s := Spec{Labels: map[string]string{"stars_count": "Stars"}}
	assert.Equal(t, "Stars", s.Label("stars_count"))
	assert.Equal(t, "forks_count", s.Label("forks_count"))
}

func TestLookup(t *testing.T) {
	c, ok := Lookup(ChartForksBox)
	require.True(t, ok)
	assert.Equal(t, KindBox, c.Spec.Kind)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}
