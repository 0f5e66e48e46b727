package render

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"repodash/dashboard"
	"repodash/models"
)

// go-chart has no horizontal bar, box or heatmap series; those kinds are
// drawn directly on a go-chart raster renderer.

var (
	axisColor  = drawing.Color{R: 80, G: 80, B: 80, A: 255}
	gridColor  = drawing.Color{R: 230, G: 230, B: 230, A: 255}
	emptyColor = drawing.Color{R: 245, G: 245, B: 245, A: 255}
)

const (
	titleSize = 14
	labelSize = 9
	ticks     = 5
)

type canvas struct {
	r    chart.Renderer
	plot chart.Box
}

func newCanvas(opts Options, name string, margins chart.Box) (*canvas, error) {
	r, err := chart.PNG(opts.Width, opts.Height)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	r.SetFont(font)

	c := &canvas{
		r: r,
		plot: chart.Box{
			Top:    margins.Top,
			Left:   margins.Left,
			Right:  opts.Width - margins.Right,
			Bottom: opts.Height - margins.Bottom,
		},
	}
	c.rect(0, 0, opts.Width, opts.Height, drawing.ColorWhite)
	tw := c.textWidth(name, titleSize)
	c.text(name, (opts.Width-tw)/2, 24, titleSize, drawing.ColorBlack)
	return c, nil
}

func (c *canvas) rect(x0, y0, x1, y1 int, fill drawing.Color) {
	c.r.SetFillColor(fill)
	c.r.MoveTo(x0, y0)
	c.r.LineTo(x1, y0)
	c.r.LineTo(x1, y1)
	c.r.LineTo(x0, y1)
	c.r.Close()
	c.r.Fill()
}

func (c *canvas) line(x0, y0, x1, y1 int, col drawing.Color, width float64) {
	c.r.SetStrokeColor(col)
	c.r.SetStrokeWidth(width)
	c.r.MoveTo(x0, y0)
	c.r.LineTo(x1, y1)
	c.r.Stroke()
}

func (c *canvas) text(s string, x, y int, size float64, col drawing.Color) {
	c.r.SetFontSize(size)
	c.r.SetFontColor(col)
	c.r.Text(s, x, y)
}

func (c *canvas) textWidth(s string, size float64) int {
	c.r.SetFontSize(size)
	return c.r.MeasureText(s).Width()
}

func (c *canvas) save(w io.Writer) error {
	return c.r.Save(w)
}

func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

func maxLabelWidth(c *canvas, labels []string) int {
	widest := 0
	for _, l := range labels {
		if w := c.textWidth(l, labelSize); w > widest {
			widest = w
		}
	}
	return widest
}

func barChart(w io.Writer, spec dashboard.Spec, t models.SumTable, opts Options) error {
	if spec.Orientation != dashboard.Horizontal {
		bars := make([]chart.Value, 0, len(t.Rows))
		var maxValue float64 = 1
		for i, row := range t.Rows {
			bars = append(bars, chart.Value{
				Label: row.Language,
				Value: float64(row.Value),
				Style: chart.Style{FillColor: seriesColor(i), StrokeColor: seriesColor(i)},
			})
			maxValue = math.Max(maxValue, float64(row.Value))
		}
		return verticalBars(w, title(spec), bars, maxValue, opts)
	}

	c, err := newCanvas(opts, title(spec), chart.Box{Top: 44, Left: 16, Right: 48, Bottom: 40})
	if err != nil {
		return err
	}
	labels := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		labels = append(labels, row.Language)
	}
	c.plot.Left += maxLabelWidth(c, labels) + 8

	var maxValue float64 = 1
	for _, row := range t.Rows {
		maxValue = math.Max(maxValue, float64(row.Value))
	}
	plotW := float64(c.plot.Width())
	slot := float64(c.plot.Height()) / float64(len(t.Rows))

	for i := 0; i <= ticks; i++ {
		v := maxValue * float64(i) / ticks
		x := c.plot.Left + int(plotW*float64(i)/ticks)
		c.line(x, c.plot.Top, x, c.plot.Bottom, gridColor, 1)
		label := formatValue(math.Round(v))
		c.text(label, x-c.textWidth(label, labelSize)/2, c.plot.Bottom+14, labelSize, axisColor)
	}

	for i, row := range t.Rows {
		top := c.plot.Top + int(slot*float64(i)+slot*0.15)
		bottom := c.plot.Top + int(slot*float64(i+1)-slot*0.15)
		if bottom <= top {
			bottom = top + 1
		}
		right := c.plot.Left + int(plotW*float64(row.Value)/maxValue)
		c.rect(c.plot.Left, top, right, bottom, seriesColor(0))
		c.text(row.Language, c.plot.Left-8-c.textWidth(row.Language, labelSize), (top+bottom)/2+4, labelSize, axisColor)
	}

	c.line(c.plot.Left, c.plot.Top, c.plot.Left, c.plot.Bottom, axisColor, 1)
	name := spec.Label(spec.X)
	c.text(name, c.plot.Left+(c.plot.Width()-c.textWidth(name, labelSize))/2, c.plot.Bottom+32, labelSize, axisColor)
	return c.save(w)
}

func boxChart(w io.Writer, spec dashboard.Spec, t models.BoxTable, opts Options) error {
	c, err := newCanvas(opts, title(spec), chart.Box{Top: 44, Left: 56, Right: 16, Bottom: 40})
	if err != nil {
		return err
	}

	var maxValue float64 = 1
	for _, b := range t.Boxes {
		maxValue = math.Max(maxValue, b.Max)
	}
	maxValue *= 1.05
	plotH := float64(c.plot.Height())
	y := func(v float64) int {
		return c.plot.Bottom - int(plotH*v/maxValue)
	}

	for i := 0; i <= ticks; i++ {
		v := maxValue * float64(i) / ticks
		yy := y(v)
		c.line(c.plot.Left, yy, c.plot.Right, yy, gridColor, 1)
		label := formatValue(math.Round(v))
		c.text(label, c.plot.Left-6-c.textWidth(label, labelSize), yy+3, labelSize, axisColor)
	}

	slot := float64(c.plot.Width()) / float64(len(t.Boxes))
	for i, b := range t.Boxes {
		col := seriesColor(i)
		center := c.plot.Left + int(slot*(float64(i)+0.5))
		half := int(slot * 0.25)
		if half < 2 {
			half = 2
		}

		c.line(center, y(b.LowerFence), center, y(b.UpperFence), col, 1)
		c.line(center-half/2, y(b.LowerFence), center+half/2, y(b.LowerFence), col, 1)
		c.line(center-half/2, y(b.UpperFence), center+half/2, y(b.UpperFence), col, 1)

		top, bottom := y(b.Q3), y(b.Q1)
		if bottom-top < 1 {
			bottom = top + 1
		}
		c.rect(center-half, top, center+half, bottom, col.WithAlpha(96))
		c.line(center-half, y(b.Median), center+half, y(b.Median), col, 2)

		for _, o := range b.Outliers {
			oy := y(o)
			c.rect(center-2, oy-2, center+2, oy+2, col)
		}

		c.text(b.Language, center-c.textWidth(b.Language, labelSize)/2, c.plot.Bottom+14, labelSize, axisColor)
	}

	c.line(c.plot.Left, c.plot.Bottom, c.plot.Right, c.plot.Bottom, axisColor, 1)
	name := spec.Label(spec.Y)
	c.text(name, 4, c.plot.Top-8, labelSize, axisColor)
	return c.save(w)
}

func heatmapChart(w io.Writer, spec dashboard.Spec, t models.HeatmapTable, opts Options) error {
	c, err := newCanvas(opts, title(spec), chart.Box{Top: 44, Left: 80, Right: 72, Bottom: 40})
	if err != nil {
		return err
	}

	var lo, hi float64 = math.Inf(1), math.Inf(-1)
	for _, row := range t.Cells {
		for _, cell := range row {
			if cell == nil {
				continue
			}
			lo, hi = math.Min(lo, float64(*cell)), math.Max(hi, float64(*cell))
		}
	}
	span := hi - lo
	if span <= 0 {
		span = 1
	}

	cellW := float64(c.plot.Width()) / float64(len(t.Languages))
	cellH := float64(c.plot.Height()) / float64(len(t.Buckets))
	labelEvery := int(math.Ceil(float64(len(t.Buckets)) / 12))

	for ri, bucket := range t.Buckets {
		top := c.plot.Top + int(math.Floor(cellH*float64(ri)))
		bottom := c.plot.Top + int(math.Ceil(cellH*float64(ri+1)))
		for ci := range t.Languages {
			left := c.plot.Left + int(math.Floor(cellW*float64(ci)))
			right := c.plot.Left + int(math.Ceil(cellW*float64(ci+1)))
			col := emptyColor
			if cell := t.Cells[ri][ci]; cell != nil {
				col = viridis((float64(*cell) - lo) / span)
			}
			c.rect(left, top, right, bottom, col)
		}
		if ri%labelEvery == 0 {
			label := bucket.Format("2006-01-02")
			c.text(label, c.plot.Left-6-c.textWidth(label, labelSize), (top+bottom)/2+3, labelSize, axisColor)
		}
	}

	for ci, lang := range t.Languages {
		center := c.plot.Left + int(cellW*(float64(ci)+0.5))
		c.text(lang, center-c.textWidth(lang, labelSize)/2, c.plot.Bottom+14, labelSize, axisColor)
	}

	// colour scale
	scaleLeft := c.plot.Right + 16
	steps := 32
	stepH := float64(c.plot.Height()) / float64(steps)
	for i := 0; i < steps; i++ {
		top := c.plot.Top + int(stepH*float64(i))
		bottom := c.plot.Top + int(math.Ceil(stepH*float64(i+1)))
		c.rect(scaleLeft, top, scaleLeft+12, bottom, viridis(1-float64(i)/float64(steps-1)))
	}
	c.text(formatValue(hi), scaleLeft+16, c.plot.Top+8, labelSize, axisColor)
	c.text(formatValue(lo), scaleLeft+16, c.plot.Bottom, labelSize, axisColor)
	return c.save(w)
}

// Placeholder draws the panel title above message in place of a chart.
func Placeholder(w io.Writer, spec dashboard.Spec, message string, opts Options) error {
	opts = opts.orDefault()
	c, err := newCanvas(opts, title(spec), chart.Box{Top: 44, Left: 16, Right: 16, Bottom: 16})
	if err != nil {
		return err
	}
	tw := c.textWidth(message, 11)
	c.text(message, (opts.Width-tw)/2, opts.Height/2, 11, axisColor)
	return c.save(w)
}
