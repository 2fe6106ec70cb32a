package database

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// PostgresDialect talks to PostgreSQL through lib/pq
type PostgresDialect struct{}

// NewPostgresDialect creates a new PostgreSQL dialect
func NewPostgresDialect() *PostgresDialect {
	return &PostgresDialect{}
}

func (PostgresDialect) Name() string { return "postgres" }

func (PostgresDialect) Open(config DialectConfig) (*sql.DB, error) {
	return connect("postgres", config.URL, serverPool)
}

func (PostgresDialect) Rebind(query string) string { return bindNumbered(query) }

// ReturnsID is true because lib/pq does not implement LastInsertId
func (PostgresDialect) ReturnsID() bool { return true }

func (PostgresDialect) MigrationsTable() string {
	return migrationsTable("BIGSERIAL PRIMARY KEY", "TEXT", "TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP")
}
