package database

import (
	"database/sql"
	"regexp"
	"strconv"
)

// Dialect hides the differences between the supported SQL engines.
type Dialect interface {
	// DriverName returns the driver name for sql.Open
	DriverName() string

	// DSN returns the data source name for the connection
	DSN(config DialectConfig) string

	// GooseDialect returns the dialect name goose expects
	GooseDialect() string

	// MigrationsSubdir returns the directory under migrations/ holding this dialect's scripts
	MigrationsSubdir() string

	// RewriteQuery converts ? placeholders if the engine needs another syntax
	RewriteQuery(query string) string

	// ConfigureConnection applies pool settings and engine pragmas
	ConfigureConnection(db *sql.DB) error
}

// DialectConfig holds connection settings.
type DialectConfig struct {
	// For SQLite
	Path string

	// For PostgreSQL/MySQL
	URL string
}

var placeholderRegexp = regexp.MustCompile(`\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, etc.
func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}
