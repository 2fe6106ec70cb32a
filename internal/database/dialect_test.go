package database

import (
	"strings"
	"testing"
)

func TestDialects(t *testing.T) {
	tests := []struct {
		dialect   Dialect
		name      string
		returnsID bool
		idColumn  string
	}{
		{dialect: NewSQLiteDialect(), name: "sqlite", returnsID: false, idColumn: "INTEGER PRIMARY KEY AUTOINCREMENT"},
		{dialect: NewPostgresDialect(), name: "postgres", returnsID: true, idColumn: "BIGSERIAL PRIMARY KEY"},
		{dialect: NewMySQLDialect(), name: "mysql", returnsID: false, idColumn: "BIGINT AUTO_INCREMENT PRIMARY KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.Name(); got != tt.name {
				t.Errorf("Name() = %v, want %v", got, tt.name)
			}
			if got := tt.dialect.ReturnsID(); got != tt.returnsID {
				t.Errorf("ReturnsID() = %v, want %v", got, tt.returnsID)
			}
			ddl := tt.dialect.MigrationsTable()
			if !strings.HasPrefix(ddl, "CREATE TABLE IF NOT EXISTS migrations") || !strings.Contains(ddl, "id "+tt.idColumn) {
				t.Errorf("MigrationsTable() = %q", ddl)
			}
		})
	}
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/tmp/x.db", want: "/tmp/x.db?_foreign_keys=on"},
		{path: "file:x.db?cache=shared", want: "file:x.db?cache=shared&_foreign_keys=on"},
		{path: "x.db?_foreign_keys=off", want: "x.db?_foreign_keys=off"},
	}

	for _, tt := range tests {
		if got := sqliteDSN(tt.path); got != tt.want {
			t.Errorf("sqliteDSN(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestMySQLDSNEnablesParseTime(t *testing.T) {
	got := mysqlDSN("tea:secret@tcp(localhost:3306)/protocolotea")
	if !strings.Contains(got, "parseTime=true") {
		t.Errorf("mysqlDSN() = %v, want parseTime=true", got)
	}
	if !strings.HasPrefix(got, "tea:secret@tcp(localhost:3306)/protocolotea") {
		t.Errorf("mysqlDSN() = %v, lost connection target", got)
	}
}

func TestRebind(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM aula WHERE id = ?",
			expected: "SELECT * FROM aula WHERE id = ?",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "INSERT INTO registro_intercorrencia (progresso_atividade_id, intercorrencia_id, frequencia, intensidade) VALUES (?, ?, ?, ?)",
			expected: "INSERT INTO registro_intercorrencia (progresso_atividade_id, intercorrencia_id, frequencia, intensidade) VALUES ($1, $2, $3, $4)",
		},
		{
			name:     "PostgreSQL keeps question marks in literals",
			dialect:  NewPostgresDialect(),
			query:    "UPDATE aula SET observacoes = 'Tudo bem?' WHERE id = ?",
			expected: "UPDATE aula SET observacoes = 'Tudo bem?' WHERE id = $1",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "DELETE FROM aula WHERE id = ?",
			expected: "DELETE FROM aula WHERE id = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.dialect.Rebind(tt.query); result != tt.expected {
				t.Errorf("Rebind() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestSplitStatements(t *testing.T) {
	content := `-- header comment
CREATE TABLE a (
    id INTEGER
);

CREATE INDEX idx ON a(id);
`
	got := splitStatements(content)
	if len(got) != 2 {
		t.Fatalf("splitStatements() returned %d statements, want 2: %q", len(got), got)
	}
	if got[1] != "CREATE INDEX idx ON a(id);" {
		t.Errorf("second statement = %q", got[1])
	}
}
