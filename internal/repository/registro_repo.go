package repository

import (
	"context"
	"fmt"
	"time"

	"protocolotea/internal/database"
	"protocolotea/internal/models"
)

// RegistroIntercorrenciaRepository handles database operations for incident rows
type RegistroIntercorrenciaRepository struct {
	db *database.DB
}

// NewRegistroIntercorrenciaRepository creates a new incident row repository
func NewRegistroIntercorrenciaRepository(db *database.DB) *RegistroIntercorrenciaRepository {
	return &RegistroIntercorrenciaRepository{db: db}
}

const registroDetalhadoSelect = `
	SELECT ri.id, ri.progresso_atividade_id, ri.intercorrencia_id, ri.frequencia, ri.intensidade,
		ri.created_at, i.sigla, i.nome
	FROM registro_intercorrencia ri
	JOIN intercorrencia i ON i.id = ri.intercorrencia_id
`

// CreateBatch inserts every incident row in one transaction, in input order
func (r *RegistroIntercorrenciaRepository) CreateBatch(ctx context.Context, inputs []models.RegistroIntercorrenciaInput) ([]models.RegistroIntercorrencia, error) {
	created := make([]models.RegistroIntercorrencia, 0, len(inputs))
	err := r.db.WithTx(ctx, func(tx *database.Tx) error {
		for i, in := range inputs {
			reg, err := insertRegistro(ctx, tx, in)
			if err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
			created = append(created, *reg)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListByProgresso lists the incidents of one progress row with their catalog sigla and name
func (r *RegistroIntercorrenciaRepository) ListByProgresso(ctx context.Context, progressoID int64) ([]models.RegistroIntercorrenciaDetalhado, error) {
	return r.listDetalhado(ctx, registroDetalhadoSelect+" WHERE ri.progresso_atividade_id = ? ORDER BY ri.id ASC", progressoID)
}

// ListByAula lists the incidents of every progress row of a lesson
func (r *RegistroIntercorrenciaRepository) ListByAula(ctx context.Context, aulaID int64) ([]models.RegistroIntercorrenciaDetalhado, error) {
	query := registroDetalhadoSelect + `
		JOIN progresso_atividades pa ON pa.id = ri.progresso_atividade_id
		WHERE pa.aula_id = ?
		ORDER BY ri.id ASC
	`
	return r.listDetalhado(ctx, query, aulaID)
}

// ListAll returns every incident row, oldest first
func (r *RegistroIntercorrenciaRepository) ListAll(ctx context.Context) ([]models.RegistroIntercorrencia, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, progresso_atividade_id, intercorrencia_id, frequencia, intensidade, created_at
		FROM registro_intercorrencia ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query registro_intercorrencia: %w", err)
	}
	defer rows.Close()

	var list []models.RegistroIntercorrencia
	for rows.Next() {
		var reg models.RegistroIntercorrencia
		if err := scanRegistro(rows, &reg); err != nil {
			return nil, fmt.Errorf("failed to scan registro_intercorrencia: %w", err)
		}
		list = append(list, reg)
	}
	return list, rows.Err()
}

func (r *RegistroIntercorrenciaRepository) listDetalhado(ctx context.Context, query string, arg int64) ([]models.RegistroIntercorrenciaDetalhado, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query registro_intercorrencia: %w", err)
	}
	defer rows.Close()

	list := []models.RegistroIntercorrenciaDetalhado{}
	for rows.Next() {
		var reg models.RegistroIntercorrenciaDetalhado
		if err := scanRegistro(rows, &reg.RegistroIntercorrencia, &reg.Sigla, &reg.Nome); err != nil {
			return nil, fmt.Errorf("failed to scan registro_intercorrencia: %w", err)
		}
		list = append(list, reg)
	}
	return list, rows.Err()
}

func insertRegistro(ctx context.Context, q database.DBTX, in models.RegistroIntercorrenciaInput) (*models.RegistroIntercorrencia, error) {
	query := `
		INSERT INTO registro_intercorrencia (progresso_atividade_id, intercorrencia_id, frequencia, intensidade)
		VALUES (?, ?, ?, ?)
	`
	id, err := q.ExecReturningID(ctx, query, in.ProgressoAtividadeID, in.IntercorrenciaID, in.Frequencia, in.Intensidade)
	if err != nil {
		return nil, fmt.Errorf("failed to create registro_intercorrencia: %w", err)
	}
	return &models.RegistroIntercorrencia{
		ID:                   id,
		ProgressoAtividadeID: in.ProgressoAtividadeID,
		IntercorrenciaID:     in.IntercorrenciaID,
		Frequencia:           in.Frequencia,
		Intensidade:          in.Intensidade,
		CreatedAt:            time.Now(),
	}, nil
}

func scanRegistro(s scanner, reg *models.RegistroIntercorrencia, extra ...interface{}) error {
	dest := []interface{}{
		&reg.ID,
		&reg.ProgressoAtividadeID,
		&reg.IntercorrenciaID,
		&reg.Frequencia,
		&reg.Intensidade,
		&reg.CreatedAt,
	}
	return s.Scan(append(dest, extra...)...)
}
