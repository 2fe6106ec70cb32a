package repository

import (
	"context"
	"fmt"

	"protocolotea/internal/database"
	"protocolotea/internal/models"
)

// IntercorrenciaRepository reads the incident type catalog
type IntercorrenciaRepository struct {
	db *database.DB
}

// NewIntercorrenciaRepository creates a new catalog repository
func NewIntercorrenciaRepository(db *database.DB) *IntercorrenciaRepository {
	return &IntercorrenciaRepository{db: db}
}

// List returns the catalog ordered by sigla
func (r *IntercorrenciaRepository) List(ctx context.Context) ([]models.Intercorrencia, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, sigla, nome, descricao FROM intercorrencia ORDER BY sigla ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query intercorrencias: %w", err)
	}
	defer rows.Close()

	list := []models.Intercorrencia{}
	for rows.Next() {
		var i models.Intercorrencia
		if err := rows.Scan(&i.ID, &i.Sigla, &i.Nome, &i.Descricao); err != nil {
			return nil, fmt.Errorf("failed to scan intercorrencia: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

// GetByID retrieves one catalog entry
func (r *IntercorrenciaRepository) GetByID(ctx context.Context, id int64) (*models.Intercorrencia, error) {
	i := &models.Intercorrencia{}
	err := r.db.QueryRowContext(ctx, "SELECT id, sigla, nome, descricao FROM intercorrencia WHERE id = ?", id).
		Scan(&i.ID, &i.Sigla, &i.Nome, &i.Descricao)
	if err != nil {
		return nil, fmt.Errorf("failed to get intercorrencia %d: %w", id, notFound(err))
	}
	return i, nil
}
