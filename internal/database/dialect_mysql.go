package database

import (
	"database/sql"

	"github.com/go-sql-driver/mysql"
)

// MySQLDialect talks to MySQL or MariaDB through go-sql-driver
type MySQLDialect struct{}

// NewMySQLDialect creates a new MySQL dialect
func NewMySQLDialect() *MySQLDialect {
	return &MySQLDialect{}
}

func (MySQLDialect) Name() string { return "mysql" }

func (MySQLDialect) Open(config DialectConfig) (*sql.DB, error) {
	return connect("mysql", mysqlDSN(config.URL), serverPool, "SET FOREIGN_KEY_CHECKS = 1;")
}

func (MySQLDialect) Rebind(query string) string { return query }

func (MySQLDialect) ReturnsID() bool { return false }

func (MySQLDialect) MigrationsTable() string {
	return migrationsTable("BIGINT AUTO_INCREMENT PRIMARY KEY", "VARCHAR(255)", "DATETIME(6) DEFAULT CURRENT_TIMESTAMP(6)")
}

// mysqlDSN forces parseTime so DATETIME columns scan into time.Time.
// A URL the driver cannot parse is passed through for sql.Open to report.
func mysqlDSN(url string) string {
	cfg, err := mysql.ParseDSN(url)
	if err != nil {
		return url
	}
	cfg.ParseTime = true
	return cfg.FormatDSN()
}
