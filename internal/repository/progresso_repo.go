package repository

import (
	"context"
	"fmt"
	"time"

	"protocolotea/internal/database"
	"protocolotea/internal/models"
)

// ProgressoAtividadeRepository handles database operations for activity progress rows
type ProgressoAtividadeRepository struct {
	db *database.DB
}

// NewProgressoAtividadeRepository creates a new activity progress repository
func NewProgressoAtividadeRepository(db *database.DB) *ProgressoAtividadeRepository {
	return &ProgressoAtividadeRepository{db: db}
}

// Create inserts one progress row
func (r *ProgressoAtividadeRepository) Create(ctx context.Context, in models.ProgressoAtividadeInput) (*models.ProgressoAtividade, error) {
	return insertProgresso(ctx, r.db, in)
}

// AttachFunc returns the incidents to insert for the progress row at index,
// keyed by the id that row just received.
type AttachFunc func(index int, progressoID int64) ([]models.RegistroIntercorrenciaInput, error)

// CreateBatch inserts every progress row in one transaction and returns them
// with their ids, in input order. Nothing is inserted when any row fails.
func (r *ProgressoAtividadeRepository) CreateBatch(ctx context.Context, inputs []models.ProgressoAtividadeInput) ([]models.ProgressoAtividade, error) {
	created, _, err := r.CreateBatchWith(ctx, inputs, nil)
	return created, err
}

// CreateBatchWith inserts the progress rows and, after each one, the incidents
// attach returns for it, all in one transaction. A nil attach inserts no incidents.
func (r *ProgressoAtividadeRepository) CreateBatchWith(ctx context.Context, inputs []models.ProgressoAtividadeInput, attach AttachFunc) ([]models.ProgressoAtividade, []models.RegistroIntercorrencia, error) {
	var (
		created   = make([]models.ProgressoAtividade, 0, len(inputs))
		registros []models.RegistroIntercorrencia
	)
	err := r.db.WithTx(ctx, func(tx *database.Tx) error {
		for i, in := range inputs {
			row, err := insertProgresso(ctx, tx, in)
			if err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
			created = append(created, *row)

			if attach == nil {
				continue
			}
			regs, err := attach(i, row.ID)
			if err != nil {
				return err
			}
			for _, reg := range regs {
				saved, err := insertRegistro(ctx, tx, reg)
				if err != nil {
					return fmt.Errorf("row %d: %w", i, err)
				}
				registros = append(registros, *saved)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return created, registros, nil
}

// ListByAula lists the progress rows of a lesson joined with their planned activity.
// Intercorrencias is left empty; see RegistroIntercorrenciaRepository.ListByAula.
func (r *ProgressoAtividadeRepository) ListByAula(ctx context.Context, aulaID int64) ([]models.ProgressoAtividadeDetalhado, error) {
	query := `
		SELECT pa.id, pa.aula_id, pa.planejamento_atividade_id, pa.tentativas_realizadas,
			pa.soma_pontuacao, pa.completude, pa.observacoes, pa.created_at, pla.titulo
		FROM progresso_atividades pa
		JOIN planejamento_atividades pla ON pla.id = pa.planejamento_atividade_id
		WHERE pa.aula_id = ?
		ORDER BY pla.ordem ASC, pa.id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, aulaID)
	if err != nil {
		return nil, fmt.Errorf("failed to query progresso_atividades: %w", err)
	}
	defer rows.Close()

	atividades := []models.ProgressoAtividadeDetalhado{}
	for rows.Next() {
		var at models.ProgressoAtividadeDetalhado
		if err := scanProgresso(rows, &at.ProgressoAtividade, &at.AtividadeTitulo); err != nil {
			return nil, fmt.Errorf("failed to scan progresso_atividade: %w", err)
		}
		atividades = append(atividades, at)
	}
	return atividades, rows.Err()
}

// ListAll returns every progress row, oldest first
func (r *ProgressoAtividadeRepository) ListAll(ctx context.Context) ([]models.ProgressoAtividade, error) {
	query := `
		SELECT id, aula_id, planejamento_atividade_id, tentativas_realizadas,
			soma_pontuacao, completude, observacoes, created_at
		FROM progresso_atividades ORDER BY id ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query progresso_atividades: %w", err)
	}
	defer rows.Close()

	var list []models.ProgressoAtividade
	for rows.Next() {
		var p models.ProgressoAtividade
		if err := scanProgresso(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan progresso_atividade: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func insertProgresso(ctx context.Context, q database.DBTX, in models.ProgressoAtividadeInput) (*models.ProgressoAtividade, error) {
	query := `
		INSERT INTO progresso_atividades
			(aula_id, planejamento_atividade_id, tentativas_realizadas, soma_pontuacao, completude, observacoes)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := q.ExecReturningID(ctx, query,
		in.AulaID,
		in.PlanejamentoAtividadeID,
		in.TentativasRealizadas,
		in.SomaPontuacao,
		string(in.Completude),
		in.Observacoes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create progresso_atividade: %w", err)
	}

	return &models.ProgressoAtividade{
		ID:                      id,
		AulaID:                  in.AulaID,
		PlanejamentoAtividadeID: in.PlanejamentoAtividadeID,
		TentativasRealizadas:    in.TentativasRealizadas,
		SomaPontuacao:           in.SomaPontuacao,
		Completude:              in.Completude,
		Observacoes:             in.Observacoes,
		CreatedAt:               time.Now(),
	}, nil
}

// scanProgresso scans the progress columns followed by any extra destinations
func scanProgresso(s scanner, p *models.ProgressoAtividade, extra ...interface{}) error {
	var completude string
	dest := []interface{}{
		&p.ID,
		&p.AulaID,
		&p.PlanejamentoAtividadeID,
		&p.TentativasRealizadas,
		&p.SomaPontuacao,
		&completude,
		&p.Observacoes,
		&p.CreatedAt,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return err
	}
	p.Completude = models.Completude(completude)
	return nil
}
