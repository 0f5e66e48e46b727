package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"repodash/models"
)

// requiredColumns must be present in every header.
var requiredColumns = []string{models.ColumnLanguage, models.ColumnStars, models.ColumnForks}

// timeLayouts are tried in order for created_at values.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// CSVSource reads datasets from delimited text files with a header row.
type CSVSource struct{}

// Read opens the file at path and parses it.
func (CSVSource) Read(ctx context.Context, path string) (*models.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}

	ds, err := Parse(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Parse reads a CSV document into a dataset. Missing language values are
// replaced with models.UnknownLanguage.
func Parse(r io.Reader) (*models.Dataset, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read header: %v", ErrMalformedDataset, err)
	}

	columns := make([]string, len(header))
	index := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		name := strings.ToLower(strings.TrimSpace(h))
		columns[i] = name
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: missing required column %q", ErrMalformedDataset, col)
		}
	}

	var records []models.Repository
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDataset, err)
		}

		rec, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedDataset, line, err)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	return models.NewDataset(columns, records), nil
}

func parseRow(row []string, index map[string]int) (models.Repository, error) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := models.Repository{
		Name:     field(models.ColumnName),
		Language: field(models.ColumnLanguage),
	}
	if rec.Language == "" {
		rec.Language = models.UnknownLanguage
	}

	var err error
	if rec.StarsCount, err = parseCount(field(models.ColumnStars)); err != nil {
		return rec, fmt.Errorf("%s: %w", models.ColumnStars, err)
	}
	if rec.ForksCount, err = parseCount(field(models.ColumnForks)); err != nil {
		return rec, fmt.Errorf("%s: %w", models.ColumnForks, err)
	}
	if rec.PullRequests, err = parseCount(field(models.ColumnPullRequests)); err != nil {
		return rec, fmt.Errorf("%s: %w", models.ColumnPullRequests, err)
	}
	if rec.CreatedAt, err = parseTime(field(models.ColumnCreatedAt)); err != nil {
		return rec, fmt.Errorf("%s: %w", models.ColumnCreatedAt, err)
	}
	return rec, nil
}

// parseCount accepts non-negative integers, including integral floats such
// as "12.0". An empty value counts as zero.
func parseCount(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("not an integer: %q", s)
		}
		n = int64(f)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count: %d", n)
	}
	return n, nil
}

// parseTime returns the zero time for an empty value.
func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	var errs []error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		errs = append(errs, err)
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q: %w", s, errors.Join(errs...))
}
