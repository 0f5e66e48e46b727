package dashboard

import (
	"repodash/analytics"
	"repodash/models"
)

// Chart identifiers
const (
	ChartStarsByLanguage = "stars-by-language"
	ChartPRsVsStars      = "prs-vs-stars"
	ChartStarsHistogram  = "stars-histogram"
	ChartForksBox        = "forks-box"
	ChartStarsHeatmap    = "stars-heatmap"
	ChartStarsArea       = "stars-area"
	ChartForksArea       = "forks-area"
	ChartStarsPie        = "stars-pie"
	ChartForksPie        = "forks-pie"
	ChartStarsTrend      = "stars-trend"
)

// Chart is a catalogue entry: the spec, the schema capability it needs and
// the derivation of its table from the filtered view.
type Chart struct {
	Spec     Spec
	Requires models.Capability
	Derive   func(view *models.Dataset) (Table, error)
}

func sumChart(keys []analytics.Key, column string) func(*models.Dataset) (Table, error) {
	return func(view *models.Dataset) (Table, error) {
		return analytics.Aggregate(view, keys, column)
	}
}

// Catalog returns the dashboard charts in display order.
func Catalog() []Chart {
	return []Chart{
		{
			Spec: Spec{
				ID: ChartStarsByLanguage, Kind: KindBar, Subtitle: "Stars Count by Language",
				X: models.ColumnStars, Y: models.ColumnLanguage, Orientation: Horizontal,
			},
			Derive: sumChart([]analytics.Key{analytics.KeyLanguage}, models.ColumnStars),
		},
		{
			Spec: Spec{
				ID: ChartPRsVsStars, Kind: KindScatter, Subtitle: "Pull Requests vs. Stars",
				Title: "Pull Requests vs. Stars by Language",
				X:     models.ColumnStars, Y: models.ColumnPullRequests, Color: models.ColumnLanguage,
				Labels: map[string]string{models.ColumnStars: "Stars", models.ColumnPullRequests: "Pull Requests"},
			},
			Requires: models.CapabilityPullRequests,
			Derive: func(view *models.Dataset) (Table, error) {
				return analytics.Scatter(view, models.ColumnStars, models.ColumnPullRequests)
			},
		},
		{
			Spec: Spec{
				ID: ChartStarsHistogram, Kind: KindHistogram, Subtitle: "Distribution of Stars Count",
				X: models.ColumnStars, Bins: analytics.DefaultHistogramBins,
			},
			Derive: func(view *models.Dataset) (Table, error) {
				return analytics.Histogram(view, models.ColumnStars, analytics.DefaultHistogramBins)
			},
		},
		{
			Spec: Spec{
				ID: ChartForksBox, Kind: KindBox, Subtitle: "Forks Count Distribution by Language",
				X: models.ColumnLanguage, Y: models.ColumnForks,
			},
			Derive: func(view *models.Dataset) (Table, error) {
				return analytics.Box(view, models.ColumnForks)
			},
		},
		{
			Spec: Spec{
				ID: ChartStarsHeatmap, Kind: KindHeatmap, Subtitle: "Heatmap of Stars Count by Language and Time",
				X: models.ColumnLanguage, Y: models.ColumnCreatedAt, Values: models.ColumnStars, ColorScale: "Viridis",
			},
			Requires: models.CapabilityTimeSeries,
			Derive: func(view *models.Dataset) (Table, error) {
				sums, err := analytics.Aggregate(view, []analytics.Key{analytics.KeyDay, analytics.KeyLanguage}, models.ColumnStars)
				if err != nil {
					return nil, err
				}
				return analytics.Pivot(sums)
			},
		},
		{
			Spec: Spec{
				ID: ChartStarsArea, Kind: KindArea, Subtitle: "Stars Count by Language Over Time",
				X: models.ColumnCreatedAt, Y: models.ColumnStars, Color: models.ColumnLanguage,
				Labels: map[string]string{models.ColumnStars: "Stars Count"},
			},
			Requires: models.CapabilityTimeSeries,
			Derive:   sumChart([]analytics.Key{analytics.KeyDay, analytics.KeyLanguage}, models.ColumnStars),
		},
		{
			Spec: Spec{
				ID: ChartForksArea, Kind: KindArea, Subtitle: "Forks Count by Language Over Time",
				X: models.ColumnCreatedAt, Y: models.ColumnForks, Color: models.ColumnLanguage,
				Labels: map[string]string{models.ColumnForks: "Forks Count"},
			},
			Requires: models.CapabilityTimeSeries,
			Derive:   sumChart([]analytics.Key{analytics.KeyDay, analytics.KeyLanguage}, models.ColumnForks),
		},
		{
			Spec: Spec{
				ID: ChartStarsPie, Kind: KindPie, Subtitle: "Stars Distribution by Language",
				Names: models.ColumnLanguage, Values: models.ColumnStars,
			},
			Derive: sumChart([]analytics.Key{analytics.KeyLanguage}, models.ColumnStars),
		},
		{
			Spec: Spec{
				ID: ChartForksPie, Kind: KindPie, Subtitle: "Forks Distribution by Language",
				Names: models.ColumnLanguage, Values: models.ColumnForks,
			},
			Derive: sumChart([]analytics.Key{analytics.KeyLanguage}, models.ColumnForks),
		},
		{
			Spec: Spec{
				ID: ChartStarsTrend, Kind: KindLine, Subtitle: "Trend of Stars Over Time",
				Title: "Stars Over Time", X: models.ColumnCreatedAt, Y: models.ColumnStars, Markers: true,
			},
			Requires: models.CapabilityTimeSeries,
			Derive:   sumChart([]analytics.Key{analytics.KeyMonth}, models.ColumnStars),
		},
	}
}

// Lookup returns the catalogue entry with the given id.
func Lookup(id string) (Chart, bool) {
	for _, c := range Catalog() {
		if c.Spec.ID == id {
			return c, true
		}
	}
	return Chart{}, false
}
