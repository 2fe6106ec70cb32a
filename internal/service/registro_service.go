package service

import (
	"context"
	"fmt"

	"protocolotea/internal/models"
	"protocolotea/internal/repository"
	"protocolotea/internal/validation"
)

// RegistroIntercorrenciaService handles the incidents observed during activities
type RegistroIntercorrenciaService struct {
	registroRepo *repository.RegistroIntercorrenciaRepository
}

// NewRegistroIntercorrenciaService creates a new incident service
func NewRegistroIntercorrenciaService(registroRepo *repository.RegistroIntercorrenciaRepository) *RegistroIntercorrenciaService {
	return &RegistroIntercorrenciaService{registroRepo: registroRepo}
}

// CreateBatch inserts incident rows for already persisted progress rows
func (s *RegistroIntercorrenciaService) CreateBatch(ctx context.Context, inputs []models.RegistroIntercorrenciaInput) ([]models.RegistroIntercorrencia, error) {
	if len(inputs) == 0 {
		return []models.RegistroIntercorrencia{}, nil
	}
	if err := validateRegistroBatch(inputs); err != nil {
		return nil, err
	}

	rows, err := s.registroRepo.CreateBatch(ctx, inputs)
	if err != nil {
		return nil, persistenceError("insert", "registro_intercorrencia", err)
	}
	return rows, nil
}

// ListByProgresso lists the incidents of a progress row with their catalog sigla and name
func (s *RegistroIntercorrenciaService) ListByProgresso(ctx context.Context, progressoID int64) ([]models.RegistroIntercorrenciaDetalhado, error) {
	rows, err := s.registroRepo.ListByProgresso(ctx, progressoID)
	if err != nil {
		return nil, persistenceError("select", "registro_intercorrencia", err)
	}
	return rows, nil
}

func validateRegistroBatch(inputs []models.RegistroIntercorrenciaInput) error {
	var errs validation.Errors
	for i, in := range inputs {
		var one validation.Errors
		one.Add(validation.ValidateID("progresso_atividade_id", in.ProgressoAtividadeID, "Progresso da atividade ainda não foi salvo"))
		one.Add(validation.ValidateID("intercorrencia_id", in.IntercorrenciaID, "Selecione o tipo de intercorrência"))
		one.Add(validation.ValidateEscala("frequencia", in.Frequencia, "Frequência"))
		one.Add(validation.ValidateEscala("intensidade", in.Intensidade, "Intensidade"))
		errs.Add(prefixed(fmt.Sprintf("Intercorrência %d: ", i+1), one.Err()))
	}
	return errs.Err()
}
