package repository

import (
	"context"
	"fmt"
	"time"

	"protocolotea/internal/database"
	"protocolotea/internal/models"
)

// PlanejamentoRepository handles intervention plans and their planned activities
type PlanejamentoRepository struct {
	db *database.DB
}

// NewPlanejamentoRepository creates a new plan repository
func NewPlanejamentoRepository(db *database.DB) *PlanejamentoRepository {
	return &PlanejamentoRepository{db: db}
}

// CreateIntervencao inserts an intervention plan
func (r *PlanejamentoRepository) CreateIntervencao(ctx context.Context, aprendizID, professorID int64, titulo string) (*models.PlanejamentoIntervencao, error) {
	query := "INSERT INTO planejamento_intervencao (aprendiz_id, professor_id, titulo, ativo) VALUES (?, ?, ?, ?)"
	id, err := r.db.ExecReturningID(ctx, query, aprendizID, professorID, titulo, true)
	if err != nil {
		return nil, fmt.Errorf("failed to create planejamento_intervencao: %w", err)
	}
	return &models.PlanejamentoIntervencao{
		ID:          id,
		AprendizID:  aprendizID,
		ProfessorID: professorID,
		Titulo:      titulo,
		Ativo:       true,
		CreatedAt:   time.Now(),
	}, nil
}

// CreateAtividade inserts a planned activity at the end of a plan
func (r *PlanejamentoRepository) CreateAtividade(ctx context.Context, planejamentoID int64, titulo, descricao string) (*models.PlanejamentoAtividade, error) {
	var ordem int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(ordem), 0) + 1 FROM planejamento_atividades WHERE planejamento_intervencao_id = ?",
		planejamentoID,
	).Scan(&ordem)
	if err != nil {
		return nil, fmt.Errorf("failed to get next ordem: %w", err)
	}

	query := "INSERT INTO planejamento_atividades (planejamento_intervencao_id, titulo, descricao, ordem) VALUES (?, ?, ?, ?)"
	id, err := r.db.ExecReturningID(ctx, query, planejamentoID, titulo, descricao, ordem)
	if err != nil {
		return nil, fmt.Errorf("failed to create planejamento_atividade: %w", err)
	}
	return &models.PlanejamentoAtividade{
		ID:                        id,
		PlanejamentoIntervencaoID: planejamentoID,
		Titulo:                    titulo,
		Descricao:                 descricao,
		Ordem:                     ordem,
	}, nil
}

// GetIntervencao retrieves an intervention plan
func (r *PlanejamentoRepository) GetIntervencao(ctx context.Context, id int64) (*models.PlanejamentoIntervencao, error) {
	query := `
		SELECT id, aprendiz_id, professor_id, titulo, ativo, created_at
		FROM planejamento_intervencao WHERE id = ?
	`
	p := &models.PlanejamentoIntervencao{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.AprendizID,
		&p.ProfessorID,
		&p.Titulo,
		&p.Ativo,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get planejamento_intervencao %d: %w", id, notFound(err))
	}
	return p, nil
}

// ListAtividades lists the planned activities of a plan in their configured order
func (r *PlanejamentoRepository) ListAtividades(ctx context.Context, planejamentoID int64) ([]models.PlanejamentoAtividade, error) {
	query := `
		SELECT id, planejamento_intervencao_id, titulo, descricao, ordem
		FROM planejamento_atividades
		WHERE planejamento_intervencao_id = ?
		ORDER BY ordem ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, planejamentoID)
	if err != nil {
		return nil, fmt.Errorf("failed to query planejamento_atividades: %w", err)
	}
	defer rows.Close()

	atividades := []models.PlanejamentoAtividade{}
	for rows.Next() {
		var a models.PlanejamentoAtividade
		if err := scanPlanejamentoAtividade(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan planejamento_atividade: %w", err)
		}
		atividades = append(atividades, a)
	}
	return atividades, rows.Err()
}

// GetAtividade retrieves one planned activity
func (r *PlanejamentoRepository) GetAtividade(ctx context.Context, id int64) (*models.PlanejamentoAtividade, error) {
	query := `
		SELECT id, planejamento_intervencao_id, titulo, descricao, ordem
		FROM planejamento_atividades WHERE id = ?
	`
	a := &models.PlanejamentoAtividade{}
	if err := scanPlanejamentoAtividade(r.db.QueryRowContext(ctx, query, id), a); err != nil {
		return nil, fmt.Errorf("failed to get planejamento_atividade %d: %w", id, notFound(err))
	}
	return a, nil
}

func scanPlanejamentoAtividade(s scanner, a *models.PlanejamentoAtividade) error {
	return s.Scan(&a.ID, &a.PlanejamentoIntervencaoID, &a.Titulo, &a.Descricao, &a.Ordem)
}
