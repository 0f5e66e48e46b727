package render

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"repodash/dashboard"
	"repodash/models"
)

var background = chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}

// paddedRange returns a range covering values that go-chart accepts even
// when every value is equal.
func paddedRange(lo, hi float64) *chart.ContinuousRange {
	if hi <= lo {
		pad := math.Max(math.Abs(lo)*0.1, 1)
		return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
	}
	pad := (hi - lo) * 0.05
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		StrokeColor: drawing.ColorTransparent,
		DotWidth:    5,
		DotColor:    col,
	}
}

func pieChart(w io.Writer, spec dashboard.Spec, t models.SumTable, opts Options) error {
	var total int64
	values := make([]chart.Value, 0, len(t.Rows))
	for i, row := range t.Rows {
		total += row.Value
		values = append(values, chart.Value{
			Label: row.Language,
			Value: float64(row.Value),
			Style: chart.Style{FillColor: seriesColor(i), StrokeColor: drawing.ColorWhite},
		})
	}
	if total == 0 {
		return ErrNoData
	}

	pie := chart.PieChart{
		Title:  title(spec),
		Width:  opts.Width,
		Height: opts.Height,
		Values: values,
	}
	return pie.Render(chart.PNG, w)
}

// timeChart draws one series per language, or a single series when the
// table is not grouped by language. Area charts fill below each line; line
// charts mark every point when Spec.Markers is set.
func timeChart(w io.Writer, spec dashboard.Spec, t models.SumTable, opts Options, fill bool) error {
	type seriesData struct {
		xs []time.Time
		ys []float64
	}
	order := make([]string, 0)
	byLanguage := make(map[string]*seriesData)
	minT, maxT := t.Rows[0].Bucket, t.Rows[0].Bucket
	var maxY float64
	for _, row := range t.Rows {
		sd, ok := byLanguage[row.Language]
		if !ok {
			sd = &seriesData{}
			byLanguage[row.Language] = sd
			order = append(order, row.Language)
		}
		sd.xs = append(sd.xs, row.Bucket)
		sd.ys = append(sd.ys, float64(row.Value))
		if row.Bucket.Before(minT) {
			minT = row.Bucket
		}
		if row.Bucket.After(maxT) {
			maxT = row.Bucket
		}
		maxY = math.Max(maxY, float64(row.Value))
	}

	series := make([]chart.Series, 0, len(order))
	for i, lang := range order {
		col := seriesColor(i)
		style := chart.Style{StrokeColor: col, StrokeWidth: 2}
		if fill {
			style.FillColor = col.WithAlpha(64)
		}
		if spec.Markers {
			style.DotColor = col
			style.DotWidth = 4
		}
		name := lang
		if name == "" {
			name = spec.Label(t.Column)
		}
		sd := byLanguage[lang]
		series = append(series, chart.TimeSeries{Name: name, XValues: sd.xs, YValues: sd.ys, Style: style})
	}

	layout := "2006-01-02"
	if t.Granularity == "month" {
		layout = "2006-01"
	}
	ch := chart.Chart{
		Title:      title(spec),
		Width:      opts.Width,
		Height:     opts.Height,
		Background: background,
		XAxis: chart.XAxis{
			Name:           spec.Label(spec.X),
			ValueFormatter: chart.TimeValueFormatterWithFormat(layout),
			Range:          paddedRange(chart.TimeToFloat64(minT), chart.TimeToFloat64(maxT)),
		},
		YAxis: chart.YAxis{
			Name:  spec.Label(spec.Y),
			Range: paddedRange(0, maxY),
		},
		Series: series,
	}
	if len(order) > 1 || order[0] != "" {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	return ch.Render(chart.PNG, w)
}

func scatterChart(w io.Writer, spec dashboard.Spec, t models.ScatterTable, opts Options) error {
	order := make([]string, 0)
	xs := make(map[string][]float64)
	ys := make(map[string][]float64)
	minX, maxX := float64(t.Points[0].X), float64(t.Points[0].X)
	minY, maxY := float64(t.Points[0].Y), float64(t.Points[0].Y)
	for _, p := range t.Points {
		if _, ok := xs[p.Language]; !ok {
			order = append(order, p.Language)
		}
		x, y := float64(p.X), float64(p.Y)
		xs[p.Language] = append(xs[p.Language], x)
		ys[p.Language] = append(ys[p.Language], y)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	colors := languageColors(order)
	series := make([]chart.Series, 0, len(order))
	for _, lang := range order {
		series = append(series, chart.ContinuousSeries{
			Name:    lang,
			XValues: xs[lang],
			YValues: ys[lang],
			Style:   pointStyle(colors[lang]),
		})
	}

	ch := chart.Chart{
		Title:      title(spec),
		Width:      opts.Width,
		Height:     opts.Height,
		Background: background,
		XAxis:      chart.XAxis{Name: spec.Label(t.X), Range: paddedRange(minX, maxX)},
		YAxis:      chart.YAxis{Name: spec.Label(t.Y), Range: paddedRange(minY, maxY)},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}

func histogramChart(w io.Writer, spec dashboard.Spec, t models.HistogramTable, opts Options) error {
	step := len(t.Bins)/6 + 1
	bars := make([]chart.Value, 0, len(t.Bins))
	maxCount := 1
	for i, b := range t.Bins {
		label := ""
		if i%step == 0 {
			label = fmt.Sprintf("%.0f", b.Lower)
		}
		bars = append(bars, chart.Value{
			Label: label,
			Value: float64(b.Count),
			Style: chart.Style{FillColor: seriesColor(0), StrokeColor: seriesColor(0)},
		})
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	return verticalBars(w, title(spec), bars, float64(maxCount), opts)
}

func verticalBars(w io.Writer, name string, bars []chart.Value, maxValue float64, opts Options) error {
	spacing := 2
	width := (opts.Width-120)/len(bars) - spacing
	if width < 1 {
		width = 1
	}
	bc := chart.BarChart{
		Title:      name,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: background,
		BarWidth:   width,
		BarSpacing: spacing,
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: maxValue}},
		Bars:       bars,
	}
	return bc.Render(chart.PNG, w)
}
