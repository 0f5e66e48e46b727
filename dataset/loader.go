// Package dataset loads the repository dataset and memoizes it per location.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"repodash/logger"
	"repodash/models"
)

// Source reads a dataset from a location: a file path for CSV, a table name
// for Postgres.
type Source interface {
	Read(ctx context.Context, location string) (*models.Dataset, error)
}

// Loader reads datasets through a Source and caches each result for the
// lifetime of the process. Concurrent first loads of one location share a
// single read.
type Loader struct {
	source Source

	mu    sync.RWMutex
	cache map[string]*models.Dataset
	group singleflight.Group
}

// NewLoader creates a Loader reading from source.
func NewLoader(source Source) *Loader {
	return &Loader{
		source: source,
		cache:  make(map[string]*models.Dataset),
	}
}

// Load returns the dataset at location. A missing or empty source yields an
// empty dataset carrying a user-facing notice instead of an error; those
// results are cached like any other. Any other failure is returned and not
// cached. The read is shared by every concurrent caller for location, so it
// does not stop when the first caller's ctx is cancelled.
func (l *Loader) Load(ctx context.Context, location string) (*models.Dataset, error) {
	l.mu.RLock()
	ds, ok := l.cache[location]
	l.mu.RUnlock()
	if ok {
		return ds, nil
	}

	v, err, _ := l.group.Do(location, func() (interface{}, error) {
		l.mu.RLock()
		cached, ok := l.cache[location]
		l.mu.RUnlock()
		if ok {
			return cached, nil
		}

		ds, err := l.read(context.WithoutCancel(ctx), location)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.cache[location] = ds
		l.mu.Unlock()
		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Dataset), nil
}

func (l *Loader) read(ctx context.Context, location string) (*models.Dataset, error) {
	logger.Info("Loading dataset", zap.String("location", location))

	ds, err := l.source.Read(ctx, location)
	switch {
	case errors.Is(err, ErrNotFound):
		logger.Warn(NoticeNotFound, zap.String("location", location), zap.Error(err))
		return models.EmptyDataset(NoticeNotFound, err), nil
	case errors.Is(err, ErrEmptyDataset):
		logger.Warn(NoticeEmpty, zap.String("location", location), zap.Error(err))
		return models.EmptyDataset(NoticeEmpty, err), nil
	case err != nil:
		return nil, fmt.Errorf("failed to load dataset %s: %w", location, err)
	}

	logger.Info("Dataset loaded",
		zap.String("location", location),
		zap.Int("records", ds.Len()),
		zap.Strings("columns", ds.Columns))
	return ds, nil
}

// cached reports whether location has already been loaded.
func (l *Loader) cached(location string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.cache[location]
	return ok
}
