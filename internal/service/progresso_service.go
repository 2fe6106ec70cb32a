package service

import (
	"context"
	"fmt"

	"protocolotea/internal/models"
	"protocolotea/internal/repository"
	"protocolotea/internal/validation"
)

// ProgressoAtividadeService handles the activity progress rows of a lesson
type ProgressoAtividadeService struct {
	progressoRepo *repository.ProgressoAtividadeRepository
}

// NewProgressoAtividadeService creates a new activity progress service
func NewProgressoAtividadeService(progressoRepo *repository.ProgressoAtividadeRepository) *ProgressoAtividadeService {
	return &ProgressoAtividadeService{progressoRepo: progressoRepo}
}

// Create inserts one progress row
func (s *ProgressoAtividadeService) Create(ctx context.Context, in models.ProgressoAtividadeInput) (*models.ProgressoAtividade, error) {
	if err := validateProgressoInput(in); err != nil {
		return nil, err
	}
	row, err := s.progressoRepo.Create(ctx, in)
	if err != nil {
		return nil, persistenceError("insert", "progresso_atividades", err)
	}
	return row, nil
}

// CreateBatch inserts the progress rows of lesson aulaID in one transaction
func (s *ProgressoAtividadeService) CreateBatch(ctx context.Context, aulaID int64, inputs []models.ProgressoAtividadeInput) ([]models.ProgressoAtividade, error) {
	rows, _, err := s.CreateBatchWithIntercorrencias(ctx, aulaID, inputs, nil)
	return rows, err
}

// CreateBatchWithIntercorrencias inserts the progress rows of lesson aulaID and,
// keyed by each new row id, the incidents attach returns for it. Everything is
// validated before the transaction commits; nothing is kept when any row fails.
func (s *ProgressoAtividadeService) CreateBatchWithIntercorrencias(ctx context.Context, aulaID int64, inputs []models.ProgressoAtividadeInput, attach repository.AttachFunc) ([]models.ProgressoAtividade, []models.RegistroIntercorrencia, error) {
	var errs validation.Errors
	errs.Add(validation.ValidateID("aula_id", aulaID, "Aula não encontrada"))
	prepared := make([]models.ProgressoAtividadeInput, len(inputs))
	for i, in := range inputs {
		in.AulaID = aulaID
		prepared[i] = in
		errs.Add(prefixed(fmt.Sprintf("Atividade %d: ", i+1), validateProgressoInput(in)))
	}
	if errs.Err() != nil {
		return nil, nil, errs
	}

	var checked repository.AttachFunc
	if attach != nil {
		checked = func(index int, progressoID int64) ([]models.RegistroIntercorrenciaInput, error) {
			regs, err := attach(index, progressoID)
			if err != nil {
				return nil, err
			}
			if err := validateRegistroBatch(regs); err != nil {
				return nil, err
			}
			return regs, nil
		}
	}

	rows, registros, err := s.progressoRepo.CreateBatchWith(ctx, prepared, checked)
	if err != nil {
		if IsValidation(err) {
			return nil, nil, err
		}
		return nil, nil, persistenceError("insert", "progresso_atividades", err)
	}
	return rows, registros, nil
}

// ListByAula lists the progress rows of a lesson with their planned activity title
func (s *ProgressoAtividadeService) ListByAula(ctx context.Context, aulaID int64) ([]models.ProgressoAtividadeDetalhado, error) {
	rows, err := s.progressoRepo.ListByAula(ctx, aulaID)
	if err != nil {
		return nil, persistenceError("select", "progresso_atividades", err)
	}
	return rows, nil
}

func validateProgressoInput(in models.ProgressoAtividadeInput) error {
	var errs validation.Errors
	errs.Add(validation.ValidateID("aula_id", in.AulaID, "Aula não encontrada"))
	errs.Add(validation.ValidateID("planejamento_atividade_id", in.PlanejamentoAtividadeID, "Selecione a atividade planejada"))
	errs.Add(validation.ValidateNonNegative("tentativas_realizadas", in.TentativasRealizadas, "Número de tentativas"))
	errs.Add(validation.ValidateNonNegative("soma_pontuacao", in.SomaPontuacao, "Pontuação"))
	errs.Add(validation.ValidateCompletude(in.Completude))
	return errs.Err()
}

// prefixed prepends prefix to every message of a validation error
func prefixed(prefix string, err error) error {
	if err == nil {
		return nil
	}
	var collected validation.Errors
	collected.Add(err)
	for i := range collected {
		collected[i].Message = prefix + collected[i].Message
	}
	return collected
}
