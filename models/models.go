// Package models defines the core data structures used throughout the application.
package models

import "time"

// Column names recognised in the dataset header. They double as the stable
// column names of every derived table handed to the presentation layer.
const (
	ColumnName         = "name"
	ColumnLanguage     = "language"
	ColumnStars        = "stars_count"
	ColumnForks        = "forks_count"
	ColumnPullRequests = "pull_requests"
	ColumnCreatedAt    = "created_at"
)

// UnknownLanguage replaces a missing language value at load time.
const UnknownLanguage = "Unknown"

// Repository is one row of the dataset.
type Repository struct {
	Name         string    `db:"name" json:"name,omitempty"`
	Language     string    `db:"language" json:"language"`
	StarsCount   int64     `db:"stars_count" json:"stars_count"`
	ForksCount   int64     `db:"forks_count" json:"forks_count"`
	PullRequests int64     `db:"pull_requests" json:"pull_requests"`
	CreatedAt    time.Time `db:"created_at" json:"created_at,omitzero"`
}

// Value returns the numeric column named by column, or false when column is
// not one of the count columns.
func (r Repository) Value(column string) (int64, bool) {
	switch column {
	case ColumnStars:
		return r.StarsCount, true
	case ColumnForks:
		return r.ForksCount, true
	case ColumnPullRequests:
		return r.PullRequests, true
	}
	return 0, false
}

// Dataset is an ordered, read-only table of repositories sharing one schema.
// A degraded dataset has no records and carries the notice shown to the user
// together with the error that caused it.
type Dataset struct {
	Columns []string     `json:"columns"`
	Records []Repository `json:"records"`

	Notice string `json:"notice,omitempty"`
	Cause  error  `json:"-"`
}

// NewDataset creates a dataset from the header columns and the records.
func NewDataset(columns []string, records []Repository) *Dataset {
	return &Dataset{Columns: columns, Records: records}
}

// EmptyDataset creates a degraded dataset with the given notice and cause.
func EmptyDataset(notice string, cause error) *Dataset {
	return &Dataset{Notice: notice, Cause: cause}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Empty reports whether the dataset has no records.
func (d *Dataset) Empty() bool {
	return d.Len() == 0
}

// HasColumn reports whether the source header contained column.
func (d *Dataset) HasColumn(column string) bool {
	if d == nil {
		return false
	}
	for _, c := range d.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// View returns a dataset with the same schema holding the given records.
func (d *Dataset) View(records []Repository) *Dataset {
	return &Dataset{Columns: d.Columns, Records: records}
}

// Capability is an optional feature of the dataset schema.
type Capability string

const (
	// CapabilityNone is satisfied by every dataset.
	CapabilityNone Capability = ""
	// CapabilityTimeSeries requires the created_at column.
	CapabilityTimeSeries Capability = "time_series"
	// CapabilityPullRequests requires the pull_requests column.
	CapabilityPullRequests Capability = "pull_requests"
)

// Capabilities lists what the dataset schema supports.
type Capabilities struct {
	TimeSeries   bool `json:"time_series"`
	PullRequests bool `json:"pull_requests"`
}

// Capabilities derives the optional features from the dataset columns.
func (d *Dataset) Capabilities() Capabilities {
	return Capabilities{
		TimeSeries:   d.HasColumn(ColumnCreatedAt),
		PullRequests: d.HasColumn(ColumnPullRequests),
	}
}

// Has reports whether c is supported.
func (c Capabilities) Has(capability Capability) bool {
	switch capability {
	case CapabilityNone:
		return true
	case CapabilityTimeSeries:
		return c.TimeSeries
	case CapabilityPullRequests:
		return c.PullRequests
	}
	return false
}
