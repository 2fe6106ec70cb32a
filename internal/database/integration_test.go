package database

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrationsCreateTables(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	ctx := context.Background()

	if err := db.RunMigrations(ctx, ""); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}
	// second run must be a no-op
	if err := db.RunMigrations(ctx, ""); err != nil {
		t.Fatalf("RunMigrations() second run error = %v", err)
	}

	tables := []string{"professor", "aprendiz", "planejamento_intervencao", "planejamento_atividades",
		"intercorrencia", "aula", "progresso_atividades", "registro_intercorrencia"}

	for _, table := range tables {
		var name string
		err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM migrations").Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 recorded migration, got %d", count)
	}
}

func TestSeedIntercorrenciasIsIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	ctx := context.Background()
	if err := db.RunMigrations(ctx, ""); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := db.SeedIntercorrencias(ctx); err != nil {
			t.Fatalf("SeedIntercorrencias() run %d error = %v", i, err)
		}
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM intercorrencia").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != len(defaultIntercorrencias) {
		t.Errorf("expected %d catalog entries, got %d", len(defaultIntercorrencias), count)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	ctx := context.Background()
	if err := db.RunMigrations(ctx, ""); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}

	err := db.WithTx(ctx, func(tx *Tx) error {
		if _, err := tx.ExecReturningID(ctx, "INSERT INTO professor (nome, email) VALUES (?, ?)", "Ana", "ana@example.com"); err != nil {
			return err
		}
		// duplicate email violates UNIQUE
		_, err := tx.ExecReturningID(ctx, "INSERT INTO professor (nome, email) VALUES (?, ?)", "Ana", "ana@example.com")
		return err
	})
	if err == nil {
		t.Fatal("expected unique violation")
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM professor").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected rollback to leave 0 professors, got %d", count)
	}
}
