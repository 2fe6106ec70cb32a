package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"protocolotea/internal/database"
	"protocolotea/internal/models"
)

// AprendizRepository handles database operations for learner profiles
type AprendizRepository struct {
	db *database.DB
}

// NewAprendizRepository creates a new aprendiz repository
func NewAprendizRepository(db *database.DB) *AprendizRepository {
	return &AprendizRepository{db: db}
}

// Create inserts an aprendiz
func (r *AprendizRepository) Create(ctx context.Context, nome, responsavelNome, responsavelEmail string) (*models.Aprendiz, error) {
	query := "INSERT INTO aprendiz (nome, responsavel_nome, responsavel_email) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(ctx, query, nome, responsavelNome, responsavelEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to create aprendiz: %w", err)
	}
	return &models.Aprendiz{
		ID:               id,
		Nome:             nome,
		ResponsavelNome:  responsavelNome,
		ResponsavelEmail: responsavelEmail,
		CreatedAt:        time.Now(),
	}, nil
}

// List returns the aprendizes with an active plan of professorID, ordered by name
func (r *AprendizRepository) List(ctx context.Context, professorID int64) ([]models.Aprendiz, error) {
	query := `
		SELECT DISTINCT ap.id, ap.nome, ap.data_nascimento, ap.responsavel_nome, ap.responsavel_email, ap.created_at
		FROM aprendiz ap
		JOIN planejamento_intervencao pi ON pi.aprendiz_id = ap.id
		WHERE pi.professor_id = ? AND pi.ativo = ?
		ORDER BY ap.nome ASC
	`
	rows, err := r.db.QueryContext(ctx, query, professorID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to query aprendizes: %w", err)
	}
	defer rows.Close()

	aprendizes := []models.Aprendiz{}
	for rows.Next() {
		var a models.Aprendiz
		if err := scanAprendiz(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan aprendiz: %w", err)
		}
		aprendizes = append(aprendizes, a)
	}
	return aprendizes, rows.Err()
}

// GetByID retrieves an aprendiz
func (r *AprendizRepository) GetByID(ctx context.Context, id int64) (*models.Aprendiz, error) {
	query := `
		SELECT id, nome, data_nascimento, responsavel_nome, responsavel_email, created_at
		FROM aprendiz WHERE id = ?
	`
	a := &models.Aprendiz{}
	if err := scanAprendiz(r.db.QueryRowContext(ctx, query, id), a); err != nil {
		return nil, fmt.Errorf("failed to get aprendiz %d: %w", id, notFound(err))
	}
	return a, nil
}

func scanAprendiz(s scanner, a *models.Aprendiz) error {
	var nascimento sql.NullTime
	if err := s.Scan(&a.ID, &a.Nome, &nascimento, &a.ResponsavelNome, &a.ResponsavelEmail, &a.CreatedAt); err != nil {
		return err
	}
	if nascimento.Valid {
		a.DataNascimento = &nascimento.Time
	}
	return nil
}
