package service

import (
	"context"
	"log"

	"protocolotea/internal/models"
	"protocolotea/internal/repository"
	"protocolotea/internal/validation"
)

// AulaService handles lesson records
type AulaService struct {
	aulaRepo      *repository.AulaRepository
	progressoRepo *repository.ProgressoAtividadeRepository
	registroRepo  *repository.RegistroIntercorrenciaRepository
}

// NewAulaService creates a new lesson service
func NewAulaService(aulaRepo *repository.AulaRepository, progressoRepo *repository.ProgressoAtividadeRepository, registroRepo *repository.RegistroIntercorrenciaRepository) *AulaService {
	return &AulaService{
		aulaRepo:      aulaRepo,
		progressoRepo: progressoRepo,
		registroRepo:  registroRepo,
	}
}

// Create inserts a lesson row
func (s *AulaService) Create(ctx context.Context, in models.AulaInput) (*models.Aula, error) {
	var errs validation.Errors
	errs.Add(validation.ValidateID("professor_id", in.ProfessorID, "Professor não identificado"))
	errs.Add(validation.ValidateID("planejamento_intervencao_id", in.PlanejamentoIntervencaoID, "Selecione o planejamento de intervenção"))
	if errs.Err() != nil {
		return nil, errs
	}

	aula, err := s.aulaRepo.Create(ctx, in)
	if err != nil {
		return nil, persistenceError("insert", "aula", err)
	}
	log.Printf("Created aula %d (professor=%d, planejamento=%d)", aula.ID, aula.ProfessorID, aula.PlanejamentoIntervencaoID)
	return aula, nil
}

// Get retrieves a lesson row
func (s *AulaService) Get(ctx context.Context, id int64) (*models.Aula, error) {
	aula, err := s.aulaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, persistenceError("select", "aula", err)
	}
	return aula, nil
}

// ListByAprendiz lists the lessons of an aprendiz, most recent first
func (s *AulaService) ListByAprendiz(ctx context.Context, aprendizID int64) ([]models.AulaResumo, error) {
	aulas, err := s.aulaRepo.ListByAprendiz(ctx, aprendizID)
	if err != nil {
		return nil, persistenceError("select", "aula", err)
	}
	return aulas, nil
}

// Detalhar loads a lesson with its activities and their incidents
func (s *AulaService) Detalhar(ctx context.Context, id int64) (*models.AulaDetalhada, error) {
	detalhe, err := s.aulaRepo.GetDetalhe(ctx, id)
	if err != nil {
		return nil, persistenceError("select", "aula", err)
	}

	atividades, err := s.progressoRepo.ListByAula(ctx, id)
	if err != nil {
		return nil, persistenceError("select", "progresso_atividades", err)
	}
	registros, err := s.registroRepo.ListByAula(ctx, id)
	if err != nil {
		return nil, persistenceError("select", "registro_intercorrencia", err)
	}

	byProgresso := make(map[int64][]models.RegistroIntercorrenciaDetalhado)
	for _, reg := range registros {
		byProgresso[reg.ProgressoAtividadeID] = append(byProgresso[reg.ProgressoAtividadeID], reg)
	}
	for i := range atividades {
		atividades[i].Intercorrencias = byProgresso[atividades[i].ID]
		if atividades[i].Intercorrencias == nil {
			atividades[i].Intercorrencias = []models.RegistroIntercorrenciaDetalhado{}
		}
	}
	detalhe.Atividades = atividades
	return detalhe, nil
}
