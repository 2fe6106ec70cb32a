package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"protocolotea/internal/database"
	"protocolotea/internal/models"
	"protocolotea/internal/repository"
)

// BackupData is the JSON document written by Export and read by Import
type BackupData struct {
	Version         string                          `json:"version"`
	ExportedAt      time.Time                       `json:"exported_at"`
	DatabaseType    string                          `json:"database_type"`
	Aulas           []models.Aula                   `json:"aulas"`
	Progressos      []models.ProgressoAtividade     `json:"progresso_atividades"`
	Intercorrencias []models.RegistroIntercorrencia `json:"registro_intercorrencia"`
}

// lessonTables in dependency order; clearing walks it backwards
var lessonTables = []string{"aula", "progresso_atividades", "registro_intercorrencia"}

// BackupService exports and restores the recorded lessons
type BackupService struct {
	db            *database.DB
	aulaRepo      *repository.AulaRepository
	progressoRepo *repository.ProgressoAtividadeRepository
	registroRepo  *repository.RegistroIntercorrenciaRepository
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{
		db:            db,
		aulaRepo:      repository.NewAulaRepository(db),
		progressoRepo: repository.NewProgressoAtividadeRepository(db),
		registroRepo:  repository.NewRegistroIntercorrenciaRepository(db),
	}
}

// Export writes every lesson, progress and incident row to outputPath
func (s *BackupService) Export(ctx context.Context, outputPath string) error {
	log.Println("Starting lesson export...")

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	backup, err := s.ExportToWriter(ctx, file)
	if err != nil {
		return err
	}

	log.Printf("Lessons exported successfully to %s", outputPath)
	log.Printf("Exported: %d aulas, %d progressos, %d intercorrências",
		len(backup.Aulas), len(backup.Progressos), len(backup.Intercorrencias))
	return nil
}

// ExportToWriter encodes the backup to w and returns what was written
func (s *BackupService) ExportToWriter(ctx context.Context, w io.Writer) (*BackupData, error) {
	backup := &BackupData{
		Version:      "1.0",
		ExportedAt:   time.Now(),
		DatabaseType: s.db.Dialect.Name(),
	}

	var err error
	if backup.Aulas, err = s.aulaRepo.ListAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to export aulas: %w", err)
	}
	if backup.Progressos, err = s.progressoRepo.ListAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to export progresso_atividades: %w", err)
	}
	if backup.Intercorrencias, err = s.registroRepo.ListAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to export registro_intercorrencia: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return backup, nil
}

// Import restores the backup at inputPath
func (s *BackupService) Import(ctx context.Context, inputPath string) error {
	log.Printf("Starting lesson import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(ctx, file)
}

// ImportFromReader restores a backup in one transaction, keeping the original ids.
// The referenced professors, plans and planned activities must already exist.
func (s *BackupService) ImportFromReader(ctx context.Context, reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	err := s.db.WithTx(ctx, func(tx *database.Tx) error {
		log.Printf("Importing %d aulas...", len(backup.Aulas))
		for _, a := range backup.Aulas {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO aula (id, professor_id, planejamento_intervencao_id, data_aula, observacoes, created_at) VALUES (?, ?, ?, ?, ?, ?)",
				a.ID, a.ProfessorID, a.PlanejamentoIntervencaoID, a.DataAula, a.Observacoes, a.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to import aula %d: %w", a.ID, err)
			}
		}

		log.Printf("Importing %d progressos...", len(backup.Progressos))
		for _, p := range backup.Progressos {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO progresso_atividades
					(id, aula_id, planejamento_atividade_id, tentativas_realizadas, soma_pontuacao, completude, observacoes, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				p.ID, p.AulaID, p.PlanejamentoAtividadeID, p.TentativasRealizadas, p.SomaPontuacao, string(p.Completude), p.Observacoes, p.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to import progresso_atividade %d: %w", p.ID, err)
			}
		}

		log.Printf("Importing %d intercorrências...", len(backup.Intercorrencias))
		for _, r := range backup.Intercorrencias {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO registro_intercorrencia
					(id, progresso_atividade_id, intercorrencia_id, frequencia, intensidade, created_at)
				VALUES (?, ?, ?, ?, ?, ?)`,
				r.ID, r.ProgressoAtividadeID, r.IntercorrenciaID, r.Frequencia, r.Intensidade, r.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to import registro_intercorrencia %d: %w", r.ID, err)
			}
		}

		return resetSequences(ctx, tx)
	})
	if err != nil {
		return err
	}

	log.Println("Lesson import completed successfully")
	return nil
}

// ClearLessons deletes every lesson, progress and incident row
func (s *BackupService) ClearLessons(ctx context.Context) error {
	return s.db.WithTx(ctx, func(tx *database.Tx) error {
		for i := len(lessonTables) - 1; i >= 0; i-- {
			table := lessonTables[i]
			if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
				return fmt.Errorf("failed to clear table %s: %w", table, err)
			}
			log.Printf("Cleared table: %s", table)
		}
		return nil
	})
}

// resetSequences moves PostgreSQL serial counters past the imported ids
func resetSequences(ctx context.Context, tx *database.Tx) error {
	if tx.GetDialect().Name() != "postgres" {
		return nil
	}
	for _, table := range lessonTables {
		query := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 0) + 1, false)",
			table, table,
		)
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to reset sequence of %s: %w", table, err)
		}
	}
	return nil
}
