package db

import "fmt"

// Common errors
var (
	ErrInvalidInput       = fmt.Errorf("invalid input")
	ErrDatabaseConnection = fmt.Errorf("database connection error")
)

// undefinedTable is the Postgres SQLSTATE for a missing relation.
const undefinedTable = "42P01"
