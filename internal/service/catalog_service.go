package service

import (
	"context"

	"protocolotea/internal/models"
	"protocolotea/internal/repository"
)

// CatalogService serves the read-only data the lesson screens pick from
type CatalogService struct {
	intercorrenciaRepo *repository.IntercorrenciaRepository
	planejamentoRepo   *repository.PlanejamentoRepository
	aprendizRepo       *repository.AprendizRepository
	professorRepo      *repository.ProfessorRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	intercorrenciaRepo *repository.IntercorrenciaRepository,
	planejamentoRepo *repository.PlanejamentoRepository,
	aprendizRepo *repository.AprendizRepository,
	professorRepo *repository.ProfessorRepository,
) *CatalogService {
	return &CatalogService{
		intercorrenciaRepo: intercorrenciaRepo,
		planejamentoRepo:   planejamentoRepo,
		aprendizRepo:       aprendizRepo,
		professorRepo:      professorRepo,
	}
}

// Intercorrencias returns the incident type catalog
func (s *CatalogService) Intercorrencias(ctx context.Context) ([]models.Intercorrencia, error) {
	list, err := s.intercorrenciaRepo.List(ctx)
	return list, persistenceError("select", "intercorrencia", err)
}

// Planejamento returns an intervention plan
func (s *CatalogService) Planejamento(ctx context.Context, id int64) (*models.PlanejamentoIntervencao, error) {
	plano, err := s.planejamentoRepo.GetIntervencao(ctx, id)
	return plano, persistenceError("select", "planejamento_intervencao", err)
}

// Atividades returns the planned activities of an intervention plan
func (s *CatalogService) Atividades(ctx context.Context, planejamentoID int64) ([]models.PlanejamentoAtividade, error) {
	list, err := s.planejamentoRepo.ListAtividades(ctx, planejamentoID)
	return list, persistenceError("select", "planejamento_atividades", err)
}

// Aprendizes returns the aprendizes with an active plan of professorID
func (s *CatalogService) Aprendizes(ctx context.Context, professorID int64) ([]models.Aprendiz, error) {
	list, err := s.aprendizRepo.List(ctx, professorID)
	return list, persistenceError("select", "aprendiz", err)
}

// Aprendiz returns one aprendiz
func (s *CatalogService) Aprendiz(ctx context.Context, id int64) (*models.Aprendiz, error) {
	a, err := s.aprendizRepo.GetByID(ctx, id)
	return a, persistenceError("select", "aprendiz", err)
}

// Professor returns one professor
func (s *CatalogService) Professor(ctx context.Context, id int64) (*models.Professor, error) {
	p, err := s.professorRepo.GetByID(ctx, id)
	return p, persistenceError("select", "professor", err)
}
