package database

import (
	"database/sql"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDialect stores everything in one local file
type SQLiteDialect struct{}

// NewSQLiteDialect creates a new SQLite dialect
func NewSQLiteDialect() *SQLiteDialect {
	return &SQLiteDialect{}
}

func (SQLiteDialect) Name() string { return "sqlite" }

// Open uses a single connection so concurrent finalizes queue instead of
// failing with SQLITE_BUSY
func (SQLiteDialect) Open(config DialectConfig) (*sql.DB, error) {
	return connect("sqlite3", sqliteDSN(config.Path),
		pool{maxOpen: 1, maxLifetime: 5 * time.Minute},
		"PRAGMA journal_mode=WAL;",
		"PRAGMA foreign_keys=ON;",
	)
}

func (SQLiteDialect) Rebind(query string) string { return query }

func (SQLiteDialect) ReturnsID() bool { return false }

func (SQLiteDialect) MigrationsTable() string {
	return migrationsTable("INTEGER PRIMARY KEY AUTOINCREMENT", "TEXT", "DATETIME DEFAULT CURRENT_TIMESTAMP")
}

// sqliteDSN turns foreign keys on for every connection the driver opens
func sqliteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys") {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}
