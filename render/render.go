// Package render draws dashboard panels as PNG images with go-chart.
package render

import (
	"fmt"
	"io"

	"repodash/dashboard"
	"repodash/models"
)

// Render errors
var (
	ErrNoData      = fmt.Errorf("no data to render")
	ErrUnsupported = fmt.Errorf("unsupported chart")
)

// Options control the output image.
type Options struct {
	Width  int
	Height int
}

// DefaultOptions matches the configuration defaults.
var DefaultOptions = Options{Width: 640, Height: 400}

func (o Options) orDefault() Options {
	if o.Width <= 0 {
		o.Width = DefaultOptions.Width
	}
	if o.Height <= 0 {
		o.Height = DefaultOptions.Height
	}
	return o
}

// PNG writes the panel as a PNG image. A panel without rows returns
// ErrNoData and writes nothing.
func PNG(w io.Writer, p dashboard.Panel, opts Options) error {
	if p.Empty() {
		return ErrNoData
	}
	opts = opts.orDefault()

	switch t := p.Table.(type) {
	case models.SumTable:
		switch p.Spec.Kind {
		case dashboard.KindBar:
			return barChart(w, p.Spec, t, opts)
		case dashboard.KindPie:
			return pieChart(w, p.Spec, t, opts)
		case dashboard.KindArea:
			return timeChart(w, p.Spec, t, opts, true)
		case dashboard.KindLine:
			return timeChart(w, p.Spec, t, opts, false)
		}
	case models.ScatterTable:
		if p.Spec.Kind == dashboard.KindScatter {
			return scatterChart(w, p.Spec, t, opts)
		}
	case models.HistogramTable:
		if p.Spec.Kind == dashboard.KindHistogram {
			return histogramChart(w, p.Spec, t, opts)
		}
	case models.BoxTable:
		if p.Spec.Kind == dashboard.KindBox {
			return boxChart(w, p.Spec, t, opts)
		}
	case models.HeatmapTable:
		if p.Spec.Kind == dashboard.KindHeatmap {
			return heatmapChart(w, p.Spec, t, opts)
		}
	}
	return fmt.Errorf("%w: %s with %T", ErrUnsupported, p.Spec.Kind, p.Table)
}

func title(spec dashboard.Spec) string {
	if spec.Title != "" {
		return spec.Title
	}
	return spec.Subtitle
}
