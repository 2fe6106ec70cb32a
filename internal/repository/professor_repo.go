package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"protocolotea/internal/database"
	"protocolotea/internal/models"
)

// ProfessorRepository handles database operations for professors
type ProfessorRepository struct {
	db *database.DB
}

// NewProfessorRepository creates a new professor repository
func NewProfessorRepository(db *database.DB) *ProfessorRepository {
	return &ProfessorRepository{db: db}
}

// Create inserts a professor
func (r *ProfessorRepository) Create(ctx context.Context, nome, email string) (*models.Professor, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	id, err := r.db.ExecReturningID(ctx, "INSERT INTO professor (nome, email) VALUES (?, ?)", nome, email)
	if err != nil {
		return nil, fmt.Errorf("failed to create professor: %w", err)
	}
	return &models.Professor{ID: id, Nome: nome, Email: email, CreatedAt: time.Now()}, nil
}

// GetByID retrieves a professor
func (r *ProfessorRepository) GetByID(ctx context.Context, id int64) (*models.Professor, error) {
	p := &models.Professor{}
	err := r.db.QueryRowContext(ctx, "SELECT id, nome, email, created_at FROM professor WHERE id = ?", id).
		Scan(&p.ID, &p.Nome, &p.Email, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get professor %d: %w", id, notFound(err))
	}
	return p, nil
}
