package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"repodash/dataset"
	"repodash/logger"
	"repodash/models"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

var (
	requiredColumns   = []string{models.ColumnLanguage, models.ColumnStars, models.ColumnForks}
	recognisedColumns = []string{
		models.ColumnName,
		models.ColumnLanguage,
		models.ColumnStars,
		models.ColumnForks,
		models.ColumnPullRequests,
		models.ColumnCreatedAt,
	}
)

const orderColumn = "id"

type repositoryRow struct {
	Name         sql.NullString `db:"name"`
	Language     sql.NullString `db:"language"`
	StarsCount   sql.NullInt64  `db:"stars_count"`
	ForksCount   sql.NullInt64  `db:"forks_count"`
	PullRequests sql.NullInt64  `db:"pull_requests"`
	CreatedAt    sql.NullTime   `db:"created_at"`
}

// quoteTable quotes a table name, optionally schema-qualified.
func quoteTable(table string) (string, error) {
	if !tableName.MatchString(table) {
		return "", fmt.Errorf("%w: invalid table name %q", ErrInvalidInput, table)
	}
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, "."), nil
}

// Read loads every repository row of table. It implements dataset.Source,
// with the table name as the location. Only recognised columns the table
// actually has are selected, so a table without created_at or
// pull_requests yields a dataset without that capability. Rows are ordered
// by id when the table has one. A missing table reports
// dataset.ErrNotFound and a table without rows dataset.ErrEmptyDataset.
func (db *DB) Read(ctx context.Context, table string) (*models.Dataset, error) {
	quoted, err := quoteTable(table)
	if err != nil {
		return nil, err
	}

	present, err := db.tableColumns(ctx, table)
	if err != nil {
		return nil, err
	}
	if len(present) == 0 {
		return nil, fmt.Errorf("%w: table %s does not exist", dataset.ErrNotFound, table)
	}

	has := make(map[string]bool, len(present))
	for _, c := range present {
		has[c] = true
	}
	for _, c := range requiredColumns {
		if !has[c] {
			return nil, fmt.Errorf("%w: table %s has no %s column", dataset.ErrMalformedDataset, table, c)
		}
	}

	columns := make([]string, 0, len(recognisedColumns))
	selected := make([]string, 0, len(recognisedColumns))
	for _, c := range present {
		if slices.Contains(recognisedColumns, c) {
			columns = append(columns, c)
			selected = append(selected, pq.QuoteIdentifier(c))
		}
	}

	logger.Info("Reading repositories", zap.String("table", table), zap.Strings("columns", columns))
	query := "SELECT " + strings.Join(selected, ", ") + " FROM " + quoted
	if has[orderColumn] {
		query += " ORDER BY " + pq.QuoteIdentifier(orderColumn)
	}

	var rows []repositoryRow
	if err := db.conn.SelectContext(ctx, &rows, query); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == undefinedTable {
			return nil, fmt.Errorf("%w: table %s does not exist", dataset.ErrNotFound, table)
		}
		return nil, fmt.Errorf("failed to read repositories from %s: %w", table, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: table %s has no rows", dataset.ErrEmptyDataset, table)
	}

	records := make([]models.Repository, 0, len(rows))
	for i, row := range rows {
		repo, err := row.toRepository()
		if err != nil {
			return nil, fmt.Errorf("%w: row %d of %s: %v", dataset.ErrMalformedDataset, i+1, table, err)
		}
		records = append(records, repo)
	}

	logger.Info("Repositories read", zap.String("table", table), zap.Int("count", len(records)))
	return models.NewDataset(columns, records), nil
}

// tableColumns lists the columns of table in ordinal order, empty when the
// table does not exist. Unqualified names resolve in the current schema.
func (db *DB) tableColumns(ctx context.Context, table string) ([]string, error) {
	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1
		ORDER BY ordinal_position
	`
	args := []interface{}{table}
	if schema, name, ok := strings.Cut(table, "."); ok {
		query = `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position
	`
		args = []interface{}{schema, name}
	}

	var columns []string
	if err := db.conn.SelectContext(ctx, &columns, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list columns of %s: %w", table, err)
	}
	return columns, nil
}

func (r repositoryRow) toRepository() (models.Repository, error) {
	repo := models.Repository{
		Name:         r.Name.String,
		Language:     strings.TrimSpace(r.Language.String),
		StarsCount:   r.StarsCount.Int64,
		ForksCount:   r.ForksCount.Int64,
		PullRequests: r.PullRequests.Int64,
	}
	if repo.Language == "" {
		repo.Language = models.UnknownLanguage
	}
	if repo.StarsCount < 0 || repo.ForksCount < 0 || repo.PullRequests < 0 {
		return models.Repository{}, fmt.Errorf("negative count")
	}
	if r.CreatedAt.Valid {
		repo.CreatedAt = r.CreatedAt.Time.UTC()
	}
	return repo, nil
}
