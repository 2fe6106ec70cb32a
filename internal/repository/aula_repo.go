package repository

import (
	"context"
	"fmt"
	"time"

	"protocolotea/internal/database"
	"protocolotea/internal/models"
)

// AulaRepository handles database operations for lessons
type AulaRepository struct {
	db *database.DB
}

// NewAulaRepository creates a new lesson repository
func NewAulaRepository(db *database.DB) *AulaRepository {
	return &AulaRepository{db: db}
}

const aulaResumoSelect = `
	SELECT a.id, a.professor_id, a.planejamento_intervencao_id, a.data_aula, a.observacoes, a.created_at,
		pi.aprendiz_id, pi.titulo, p.nome, ap.nome,
		(SELECT COUNT(*) FROM progresso_atividades pa WHERE pa.aula_id = a.id)
	FROM aula a
	JOIN planejamento_intervencao pi ON pi.id = a.planejamento_intervencao_id
	JOIN professor p ON p.id = a.professor_id
	JOIN aprendiz ap ON ap.id = pi.aprendiz_id
`

// Create inserts a lesson row
func (r *AulaRepository) Create(ctx context.Context, in models.AulaInput) (*models.Aula, error) {
	query := "INSERT INTO aula (professor_id, planejamento_intervencao_id, data_aula, observacoes) VALUES (?, ?, ?, ?)"
	id, err := r.db.ExecReturningID(ctx, query, in.ProfessorID, in.PlanejamentoIntervencaoID, in.DataAula, in.Observacoes)
	if err != nil {
		return nil, fmt.Errorf("failed to create aula: %w", err)
	}

	return &models.Aula{
		ID:                        id,
		ProfessorID:               in.ProfessorID,
		PlanejamentoIntervencaoID: in.PlanejamentoIntervencaoID,
		DataAula:                  in.DataAula,
		Observacoes:               in.Observacoes,
		CreatedAt:                 time.Now(),
	}, nil
}

// GetByID retrieves a lesson row
func (r *AulaRepository) GetByID(ctx context.Context, id int64) (*models.Aula, error) {
	query := `
		SELECT id, professor_id, planejamento_intervencao_id, data_aula, observacoes, created_at
		FROM aula WHERE id = ?
	`
	aula := &models.Aula{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&aula.ID,
		&aula.ProfessorID,
		&aula.PlanejamentoIntervencaoID,
		&aula.DataAula,
		&aula.Observacoes,
		&aula.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get aula %d: %w", id, notFound(err))
	}
	return aula, nil
}

// GetDetalhe retrieves a lesson joined with its plan, professor and aprendiz.
// Atividades is left empty; see ProgressoAtividadeRepository.ListByAula.
func (r *AulaRepository) GetDetalhe(ctx context.Context, id int64) (*models.AulaDetalhada, error) {
	detalhe := &models.AulaDetalhada{}
	row := r.db.QueryRowContext(ctx, aulaResumoSelect+" WHERE a.id = ?", id)
	if err := scanAulaResumo(row, &detalhe.AulaResumo, &detalhe.AprendizNome); err != nil {
		return nil, fmt.Errorf("failed to get aula %d: %w", id, notFound(err))
	}
	return detalhe, nil
}

// ListByAprendiz lists the lessons of an aprendiz, most recent first
func (r *AulaRepository) ListByAprendiz(ctx context.Context, aprendizID int64) ([]models.AulaResumo, error) {
	query := aulaResumoSelect + " WHERE pi.aprendiz_id = ? ORDER BY a.data_aula DESC, a.id DESC"
	rows, err := r.db.QueryContext(ctx, query, aprendizID)
	if err != nil {
		return nil, fmt.Errorf("failed to query aulas: %w", err)
	}
	defer rows.Close()

	aulas := []models.AulaResumo{}
	for rows.Next() {
		var resumo models.AulaResumo
		var aprendizNome string
		if err := scanAulaResumo(rows, &resumo, &aprendizNome); err != nil {
			return nil, fmt.Errorf("failed to scan aula: %w", err)
		}
		aulas = append(aulas, resumo)
	}
	return aulas, rows.Err()
}

// ListAll returns every lesson row, oldest first
func (r *AulaRepository) ListAll(ctx context.Context) ([]models.Aula, error) {
	query := `
		SELECT id, professor_id, planejamento_intervencao_id, data_aula, observacoes, created_at
		FROM aula ORDER BY id ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query aulas: %w", err)
	}
	defer rows.Close()

	var aulas []models.Aula
	for rows.Next() {
		var aula models.Aula
		if err := rows.Scan(
			&aula.ID,
			&aula.ProfessorID,
			&aula.PlanejamentoIntervencaoID,
			&aula.DataAula,
			&aula.Observacoes,
			&aula.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan aula: %w", err)
		}
		aulas = append(aulas, aula)
	}
	return aulas, rows.Err()
}

// Delete removes a lesson; its progress and incident rows cascade
func (r *AulaRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM aula WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete aula: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAulaResumo(s scanner, resumo *models.AulaResumo, aprendizNome *string) error {
	return s.Scan(
		&resumo.ID,
		&resumo.ProfessorID,
		&resumo.PlanejamentoIntervencaoID,
		&resumo.DataAula,
		&resumo.Observacoes,
		&resumo.CreatedAt,
		&resumo.AprendizID,
		&resumo.PlanejamentoTitulo,
		&resumo.ProfessorNome,
		aprendizNome,
		&resumo.TotalAtividades,
	)
}
