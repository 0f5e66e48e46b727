package analytics

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"

	"repodash/models"
)

// DefaultHistogramBins matches the bin count of the stars histogram.
const DefaultHistogramBins = 30

// Scatter returns one point per record with x and y taken from the named
// count columns.
func Scatter(ds *models.Dataset, x, y string) (models.ScatterTable, error) {
	var probe models.Repository
	for _, col := range []string{x, y} {
		if _, ok := probe.Value(col); !ok {
			return models.ScatterTable{}, fmt.Errorf("%w: %q", ErrUnknownColumn, col)
		}
	}

	table := models.ScatterTable{X: x, Y: y, Points: []models.ScatterPoint{}}
	if ds == nil {
		return table, nil
	}
	for _, rec := range ds.Records {
		xv, _ := rec.Value(x)
		yv, _ := rec.Value(y)
		table.Points = append(table.Points, models.ScatterPoint{X: xv, Y: yv, Language: rec.Language, Name: rec.Name})
	}
	return table, nil
}

// Histogram counts the values of column into bins equal-width intervals
// spanning [min, max]. When every value is equal a single bin holds them all.
func Histogram(ds *models.Dataset, column string, bins int) (models.HistogramTable, error) {
	if bins <= 0 {
		return models.HistogramTable{}, fmt.Errorf("histogram needs a positive bin count, got %d", bins)
	}
	values, err := columnValues(ds, column)
	if err != nil {
		return models.HistogramTable{}, err
	}

	table := models.HistogramTable{Column: column, Bins: []models.Bin{}}
	if len(values) == 0 {
		return table, nil
	}

	lo, _ := stats.Min(values)
	hi, _ := stats.Max(values)
	if lo == hi {
		table.Bins = append(table.Bins, models.Bin{Lower: lo, Upper: hi, Count: len(values)})
		return table, nil
	}

	width := (hi - lo) / float64(bins)
	table.Bins = make([]models.Bin, bins)
	for i := range table.Bins {
		table.Bins[i].Lower = lo + float64(i)*width
		table.Bins[i].Upper = lo + float64(i+1)*width
	}
	table.Bins[bins-1].Upper = hi

	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		table.Bins[i].Count++
	}
	return table, nil
}

// Box summarises column per language, languages in order of first
// appearance. Whiskers reach the most extreme values within 1.5 IQR of the
// quartiles; values beyond them are reported as outliers.
func Box(ds *models.Dataset, column string) (models.BoxTable, error) {
	var probe models.Repository
	if _, ok := probe.Value(column); !ok {
		return models.BoxTable{}, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}

	table := models.BoxTable{Column: column, Boxes: []models.BoxStats{}}
	if ds == nil {
		return table, nil
	}

	byLanguage := make(map[string]stats.Float64Data)
	for _, rec := range ds.Records {
		v, _ := rec.Value(column)
		byLanguage[rec.Language] = append(byLanguage[rec.Language], float64(v))
	}

	for _, lang := range DistinctLanguages(ds) {
		box, err := boxStats(byLanguage[lang])
		if err != nil {
			return models.BoxTable{}, fmt.Errorf("box statistics for %s: %w", lang, err)
		}
		box.Language = lang
		table.Boxes = append(table.Boxes, box)
	}
	return table, nil
}

func boxStats(values stats.Float64Data) (models.BoxStats, error) {
	sorted := append(stats.Float64Data(nil), values...)
	sort.Float64s(sorted)

	box := models.BoxStats{Count: len(sorted)}
	box.Min = sorted[0]
	box.Max = sorted[len(sorted)-1]

	if len(sorted) == 1 {
		box.Q1, box.Median, box.Q3 = box.Min, box.Min, box.Min
	} else {
		q, err := stats.Quartile(sorted)
		if err != nil {
			return box, err
		}
		box.Q1, box.Median, box.Q3 = q.Q1, q.Q2, q.Q3
	}

	iqr := box.Q3 - box.Q1
	lowLimit := box.Q1 - 1.5*iqr
	highLimit := box.Q3 + 1.5*iqr
	box.LowerFence, box.UpperFence = box.Max, box.Min
	for _, v := range sorted {
		if v < lowLimit || v > highLimit {
			box.Outliers = append(box.Outliers, v)
			continue
		}
		if v < box.LowerFence {
			box.LowerFence = v
		}
		if v > box.UpperFence {
			box.UpperFence = v
		}
	}
	return box, nil
}

func columnValues(ds *models.Dataset, column string) (stats.Float64Data, error) {
	var probe models.Repository
	if _, ok := probe.Value(column); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	if ds == nil {
		return nil, nil
	}
	values := make(stats.Float64Data, 0, len(ds.Records))
	for _, rec := range ds.Records {
		v, _ := rec.Value(column)
		values = append(values, float64(v))
	}
	return values, nil
}
