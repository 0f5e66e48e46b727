package analytics

import (
	"fmt"
	"sort"
	"time"

	"repodash/models"
)

// Key is a grouping key of an aggregation.
type Key string

// Grouping keys. Day and Month truncate created_at in UTC.
const (
	KeyLanguage Key = "language"
	KeyDay      Key = "day"
	KeyMonth    Key = "month"
)

// Aggregation errors
var (
	ErrUnknownColumn = fmt.Errorf("unknown value column")
	ErrInvalidKeys   = fmt.Errorf("invalid grouping keys")
)

type groupKey struct {
	bucket   time.Time
	language string
}

// Aggregate groups the records of ds by keys and sums column within each
// group. At most one time key and one language key may be given. Rows
// without a created_at value are left out when a time key is used. The
// result is ordered by time bucket, then language, ascending; groups with
// no rows do not appear.
func Aggregate(ds *models.Dataset, keys []Key, column string) (models.SumTable, error) {
	var probe models.Repository
	if _, ok := probe.Value(column); !ok {
		return models.SumTable{}, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}

	table := models.SumTable{Column: column, Rows: []models.Sum{}}
	var byLanguage bool
	var truncate func(time.Time) time.Time
	for _, k := range keys {
		switch {
		case k == KeyLanguage && !byLanguage:
			byLanguage = true
		case (k == KeyDay || k == KeyMonth) && truncate == nil:
			truncate = truncateDay
			if k == KeyMonth {
				truncate = truncateMonth
			}
			table.Granularity = string(k)
		default:
			return models.SumTable{}, fmt.Errorf("%w: %v", ErrInvalidKeys, keys)
		}
	}
	if len(keys) == 0 {
		return models.SumTable{}, fmt.Errorf("%w: no keys", ErrInvalidKeys)
	}
	if truncate != nil {
		table.Keys = append(table.Keys, models.ColumnCreatedAt)
	}
	if byLanguage {
		table.Keys = append(table.Keys, models.ColumnLanguage)
	}

	if ds == nil {
		return table, nil
	}

	sums := make(map[groupKey]int64)
	for _, rec := range ds.Records {
		var k groupKey
		if truncate != nil {
			if rec.CreatedAt.IsZero() {
				continue
			}
			k.bucket = truncate(rec.CreatedAt)
		}
		if byLanguage {
			k.language = rec.Language
		}
		v, _ := rec.Value(column)
		sums[k] += v
	}

	for k, v := range sums {
		table.Rows = append(table.Rows, models.Sum{Bucket: k.bucket, Language: k.language, Value: v})
	}
	sort.Slice(table.Rows, func(i, j int) bool {
		a, b := table.Rows[i], table.Rows[j]
		if !a.Bucket.Equal(b.Bucket) {
			return a.Bucket.Before(b.Bucket)
		}
		return a.Language < b.Language
	})
	return table, nil
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func truncateMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Pivot spreads a [created_at, language] sum table into a grid with one row
// per bucket and one column per language, both ascending. Cells without a
// group are nil.
func Pivot(table models.SumTable) (models.HeatmapTable, error) {
	if len(table.Keys) != 2 || table.Keys[0] != models.ColumnCreatedAt || table.Keys[1] != models.ColumnLanguage {
		return models.HeatmapTable{}, fmt.Errorf("%w: pivot needs [%s %s], got %v",
			ErrInvalidKeys, models.ColumnCreatedAt, models.ColumnLanguage, table.Keys)
	}

	grid := models.HeatmapTable{
		Column:    table.Column,
		Buckets:   []time.Time{},
		Languages: []string{},
		Cells:     [][]*int64{},
	}

	langIndex := make(map[string]int)
	for _, row := range table.Rows {
		if _, ok := langIndex[row.Language]; !ok {
			langIndex[row.Language] = 0
			grid.Languages = append(grid.Languages, row.Language)
		}
	}
	sort.Strings(grid.Languages)
	for i, lang := range grid.Languages {
		langIndex[lang] = i
	}

	for _, row := range table.Rows {
		n := len(grid.Buckets)
		if n == 0 || !grid.Buckets[n-1].Equal(row.Bucket) {
			grid.Buckets = append(grid.Buckets, row.Bucket)
			grid.Cells = append(grid.Cells, make([]*int64, len(grid.Languages)))
			n++
		}
		v := row.Value
		grid.Cells[n-1][langIndex[row.Language]] = &v
	}
	return grid, nil
}
