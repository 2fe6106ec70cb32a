// Package testutil provides database fixtures and record builders for tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"protocolotea/internal/database"
)

// OpenDB opens a migrated and seeded SQLite database in a temporary directory.
// Callers should skip under testing.Short().
func OpenDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	if err := db.RunMigrations(ctx, ""); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	if err := db.SeedIntercorrencias(ctx); err != nil {
		t.Fatalf("Failed to seed intercorrencias: %v", err)
	}
	return db
}

// Fixtures are the rows a lesson needs before it can be recorded
type Fixtures struct {
	ProfessorID    int64
	AprendizID     int64
	PlanejamentoID int64
	AtividadeIDs   []int64
	// IntercorrenciaIDs maps sigla to id for the seeded catalog
	IntercorrenciaIDs map[string]int64
}

// SeedFixtures inserts one professor, one aprendiz and an active plan with three activities
func SeedFixtures(t *testing.T, db *database.DB) Fixtures {
	t.Helper()
	ctx := context.Background()
	var f Fixtures

	mustID := func(query string, args ...interface{}) int64 {
		t.Helper()
		id, err := db.ExecReturningID(ctx, query, args...)
		if err != nil {
			t.Fatalf("Failed to insert fixture: %v", err)
		}
		return id
	}

	f.ProfessorID = mustID("INSERT INTO professor (nome, email) VALUES (?, ?)", "Ana Souza", "ana@example.com")
	f.AprendizID = mustID(
		"INSERT INTO aprendiz (nome, responsavel_nome, responsavel_email) VALUES (?, ?, ?)",
		"Lucas", "Maria", "maria@example.com",
	)
	f.PlanejamentoID = mustID(
		"INSERT INTO planejamento_intervencao (aprendiz_id, professor_id, titulo, ativo) VALUES (?, ?, ?, ?)",
		f.AprendizID, f.ProfessorID, "Comunicação funcional", true,
	)
	for i, titulo := range []string{"Contato visual", "Encaixe de formas", "Nomear cores"} {
		f.AtividadeIDs = append(f.AtividadeIDs, mustID(
			"INSERT INTO planejamento_atividades (planejamento_intervencao_id, titulo, ordem) VALUES (?, ?, ?)",
			f.PlanejamentoID, titulo, i+1,
		))
	}

	rows, err := db.QueryContext(ctx, "SELECT id, sigla FROM intercorrencia")
	if err != nil {
		t.Fatalf("Failed to query catalog: %v", err)
	}
	defer rows.Close()
	f.IntercorrenciaIDs = make(map[string]int64)
	for rows.Next() {
		var id int64
		var sigla string
		if err := rows.Scan(&id, &sigla); err != nil {
			t.Fatalf("Failed to scan catalog: %v", err)
		}
		f.IntercorrenciaIDs[sigla] = id
	}
	return f
}
