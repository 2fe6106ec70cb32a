package service

import (
	"context"

	"protocolotea/internal/models"
	"protocolotea/internal/repository"
)

// AulaCreator inserts the parent lesson row
type AulaCreator interface {
	Create(ctx context.Context, in models.AulaInput) (*models.Aula, error)
}

// ChildrenCreator inserts the progress rows of a lesson and their incidents
type ChildrenCreator interface {
	CreateBatchWithIntercorrencias(ctx context.Context, aulaID int64, inputs []models.ProgressoAtividadeInput, attach repository.AttachFunc) ([]models.ProgressoAtividade, []models.RegistroIntercorrencia, error)
}

// PlanCatalog lists what a lesson of a plan may reference
type PlanCatalog interface {
	Atividades(ctx context.Context, planejamentoID int64) ([]models.PlanejamentoAtividade, error)
	Intercorrencias(ctx context.Context) ([]models.Intercorrencia, error)
}

// LessonNotifier is told about every finalized lesson
type LessonNotifier interface {
	LessonFinalized(ctx context.Context, report LessonReport) error
}

var (
	_ AulaCreator     = (*AulaService)(nil)
	_ ChildrenCreator = (*ProgressoAtividadeService)(nil)
	_ PlanCatalog     = (*CatalogService)(nil)
	_ LessonNotifier  = (*LessonMailer)(nil)
)

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces_test.go -package=service
