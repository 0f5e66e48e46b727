package models

import "time"

// Sum is one row of a derived aggregate table. Keys that were not part of
// the grouping are left at their zero value.
type Sum struct {
	Bucket   time.Time `json:"created_at,omitzero"`
	Language string    `json:"language,omitempty"`
	Value    int64     `json:"value"`
}

// SumTable is a grouped and summed view of a dataset.
type SumTable struct {
	Keys        []string `json:"keys"`
	Granularity string   `json:"granularity,omitempty"`
	Column      string   `json:"column"`
	Rows        []Sum    `json:"rows"`
}

// Len returns the number of rows.
func (t SumTable) Len() int { return len(t.Rows) }

// ScatterPoint is a single repository plotted on two count axes.
type ScatterPoint struct {
	X        int64  `json:"x"`
	Y        int64  `json:"y"`
	Language string `json:"language"`
	Name     string `json:"name,omitempty"`
}

// ScatterTable holds the points of a scatter chart.
type ScatterTable struct {
	X      string         `json:"x"`
	Y      string         `json:"y"`
	Points []ScatterPoint `json:"points"`
}

// Len returns the number of points.
func (t ScatterTable) Len() int { return len(t.Points) }

// Bin is one half-open histogram interval [Lower, Upper). The last bin of a
// histogram also includes its upper bound.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// HistogramTable holds the bins for one column.
type HistogramTable struct {
	Column string `json:"column"`
	Bins   []Bin  `json:"bins"`
}

// Len returns the number of bins.
func (t HistogramTable) Len() int { return len(t.Bins) }

// BoxStats summarises the distribution of one column for one language.
type BoxStats struct {
	Language   string    `json:"language"`
	Count      int       `json:"count"`
	Min        float64   `json:"min"`
	Q1         float64   `json:"q1"`
	Median     float64   `json:"median"`
	Q3         float64   `json:"q3"`
	Max        float64   `json:"max"`
	LowerFence float64   `json:"lower_fence"`
	UpperFence float64   `json:"upper_fence"`
	Outliers   []float64 `json:"outliers,omitempty"`
}

// BoxTable holds one box per language.
type BoxTable struct {
	Column string     `json:"column"`
	Boxes  []BoxStats `json:"boxes"`
}

// Len returns the number of boxes.
func (t BoxTable) Len() int { return len(t.Boxes) }

// HeatmapTable is a pivot of a SumTable: one row per time bucket, one column
// per language. Missing combinations are nil.
type HeatmapTable struct {
	Column    string      `json:"column"`
	Buckets   []time.Time `json:"buckets"`
	Languages []string    `json:"languages"`
	Cells     [][]*int64  `json:"cells"`
}

// Len returns the number of rows.
func (t HeatmapTable) Len() int { return len(t.Buckets) }
