package database

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Dialect is what differs between the supported database engines. Queries are
// written once with ? placeholders and rebound per engine.
type Dialect interface {
	// Name identifies the engine in logs and backups, and names its migrations directory
	Name() string

	// Open connects to the engine and applies its pool settings and session setup
	Open(config DialectConfig) (*sql.DB, error)

	// Rebind rewrites ? placeholders into the engine's own syntax
	Rebind(query string) string

	// ReturnsID is true when new keys come from INSERT ... RETURNING id
	// rather than from sql.Result.LastInsertId
	ReturnsID() bool

	// MigrationsTable returns the DDL of the applied-migrations table
	MigrationsTable() string
}

// DialectConfig locates the database: a file path for SQLite, a URL otherwise
type DialectConfig struct {
	Path string
	URL  string
}

// pool holds the connection pool limits of an engine
type pool struct {
	maxOpen     int
	maxIdle     int
	maxLifetime time.Duration
	maxIdleTime time.Duration
}

// serverPool suits the networked engines
var serverPool = pool{maxOpen: 25, maxIdle: 5, maxLifetime: 5 * time.Minute, maxIdleTime: time.Minute}

// connect opens driver at dsn, checks it answers, sizes the pool and runs the
// session setup statements in order
func connect(driver, dsn string, p pool, setup ...string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(p.maxOpen)
	if p.maxIdle > 0 {
		db.SetMaxIdleConns(p.maxIdle)
	}
	db.SetConnMaxLifetime(p.maxLifetime)
	if p.maxIdleTime > 0 {
		db.SetConnMaxIdleTime(p.maxIdleTime)
	}

	for _, stmt := range setup {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to configure connection (%s): %w", stmt, err)
		}
	}
	return db, nil
}

// bindNumbered turns ? placeholders into $1, $2, ... leaving question marks
// inside quoted literals alone
func bindNumbered(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	var quote rune
	for _, r := range query {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '?':
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// migrationsTable renders the applied-migrations DDL with engine column types
func migrationsTable(idColumn, filenameType, timestampColumn string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS migrations (
	id %s,
	filename %s UNIQUE NOT NULL,
	executed_at %s
)`, idColumn, filenameType, timestampColumn)
}
