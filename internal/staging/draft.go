package staging

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"protocolotea/internal/convert"
	"protocolotea/internal/models"
)

// Draft is one lesson being recorded by a professor. Its stores are only
// touched while the draft lock is held, see Registry.With.
type Draft struct {
	ID                        uuid.UUID `json:"id"`
	ProfessorID               int64     `json:"professor_id"`
	AprendizID                int64     `json:"aprendiz_id"`
	PlanejamentoIntervencaoID int64     `json:"planejamento_intervencao_id"`
	DataAula                  time.Time `json:"data_aula"`
	Observacoes               string    `json:"observacoes"`
	CreatedAt                 time.Time `json:"created_at"`

	// AulaID is set once the lesson row exists; a retried finalize reuses it
	AulaID int64 `json:"aula_id,omitempty"`

	Atividades      *ActivityStore `json:"-"`
	Intercorrencias *IncidentStore `json:"-"`

	mu       sync.Mutex
	lastUsed time.Time
}

// DraftParams are the lesson-level fields chosen when a draft is opened
type DraftParams struct {
	AprendizID                int64     `json:"aprendiz_id"`
	PlanejamentoIntervencaoID int64     `json:"planejamento_intervencao_id"`
	DataAula                  time.Time `json:"data_aula"`
	Observacoes               string    `json:"observacoes"`
}

// DraftView is a read-only snapshot of a draft for API responses
type DraftView struct {
	ID                        uuid.UUID `json:"id"`
	ProfessorID               int64     `json:"professor_id"`
	AprendizID                int64     `json:"aprendiz_id"`
	PlanejamentoIntervencaoID int64     `json:"planejamento_intervencao_id"`
	DataAula                  time.Time `json:"data_aula"`
	Observacoes               string    `json:"observacoes"`
	CreatedAt                 time.Time `json:"created_at"`
	AulaID                    int64     `json:"aula_id,omitempty"`

	Atividades           []StagedAtividade      `json:"atividades"`
	Intercorrencias      []StagedIntercorrencia `json:"intercorrencias"`
	Estatisticas         AtividadeStats         `json:"estatisticas"`
	EstatisticasIncident IntercorrenciaStats    `json:"estatisticas_intercorrencias"`
}

func newDraft(professorID int64, params DraftParams, now time.Time) *Draft {
	dataAula := params.DataAula
	if dataAula.IsZero() {
		dataAula = now
	}
	return &Draft{
		ID:                        uuid.New(),
		ProfessorID:               professorID,
		AprendizID:                params.AprendizID,
		PlanejamentoIntervencaoID: params.PlanejamentoIntervencaoID,
		DataAula:                  dataAula,
		Observacoes:               params.Observacoes,
		CreatedAt:                 now,
		Atividades:                NewActivityStore(),
		Intercorrencias:           NewIncidentStore(),
		lastUsed:                  now,
	}
}

// AddAtividade stages an activity together with the incidents selected on its form
func (d *Draft) AddAtividade(form models.AtividadeForm) uuid.UUID {
	key := d.Atividades.Add(form)
	for _, sel := range form.Intercorrencias {
		d.Intercorrencias.Add(IntercorrenciaInput{
			AtividadeKey:     key,
			IntercorrenciaID: sel.IntercorrenciaID,
			Sigla:            sel.Sigla,
			Frequencia:       sel.Frequencia,
			Intensidade:      sel.Intensidade,
		})
	}
	return key
}

// RemoveAtividade drops a staged activity and its incidents
func (d *Draft) RemoveAtividade(key uuid.UUID) error {
	if err := d.Atividades.Remove(key); err != nil {
		return err
	}
	d.Intercorrencias.RemoveForActivity(key)
	return nil
}

// AddIntercorrencia stages an incident for an activity already in the draft
func (d *Draft) AddIntercorrencia(in IntercorrenciaInput) (uuid.UUID, error) {
	if _, ok := d.Atividades.Get(in.AtividadeKey); !ok {
		return uuid.Nil, fmt.Errorf("atividade %s: %w", in.AtividadeKey, ErrNotFound)
	}
	return d.Intercorrencias.Add(in), nil
}

// Forms rebuilds the screen form of every staged activity, in order
func (d *Draft) Forms() []models.AtividadeForm {
	recs := d.Atividades.List()
	forms := make([]models.AtividadeForm, len(recs))
	for i, rec := range recs {
		forms[i] = rec.Form(d.Intercorrencias.ForActivity(rec.TempID))
	}
	return forms
}

// Validate runs the save rules on every staged activity with its incidents
func (d *Draft) Validate() Report {
	report := newReport()
	for i, rec := range d.Atividades.List() {
		form := rec.Form(d.Intercorrencias.ForActivity(rec.TempID))
		if err := convert.ValidateActivityForSave(form); err != nil {
			report.add(activityLabel(i, rec), messagesOf(err))
		}
	}
	for i, inc := range d.Intercorrencias.List() {
		if _, ok := d.Atividades.Get(inc.AtividadeKey); !ok {
			report.add(incidentLabel(i, inc), []string{"Atividade da intercorrência não encontrada"})
		}
	}
	return report
}

// CheckCatalog checks every staged id against what the lesson may reference:
// planned activities must belong to the draft's plan and incidents must exist
// in the catalog.
func (d *Draft) CheckCatalog(atividades, intercorrencias map[int64]bool) Report {
	report := newReport()
	for i, rec := range d.Atividades.List() {
		if rec.PlanejamentoAtividadeID > 0 && !atividades[rec.PlanejamentoAtividadeID] {
			report.add(activityLabel(i, rec), []string{
				fmt.Sprintf("Atividade planejada %d não pertence ao planejamento da aula", rec.PlanejamentoAtividadeID),
			})
		}
	}
	for i, inc := range d.Intercorrencias.List() {
		if inc.IntercorrenciaID > 0 && !intercorrencias[inc.IntercorrenciaID] {
			report.add(incidentLabel(i, inc), []string{
				fmt.Sprintf("Intercorrência %d não existe no catálogo", inc.IntercorrenciaID),
			})
		}
	}
	return report
}

// Clear empties both stores and forgets the lesson row, after a successful finalize
func (d *Draft) Clear() {
	d.Atividades.Clear()
	d.Intercorrencias.Clear()
	d.AulaID = 0
}

// View snapshots the draft for responses
func (d *Draft) View() DraftView {
	return DraftView{
		ID:                        d.ID,
		ProfessorID:               d.ProfessorID,
		AprendizID:                d.AprendizID,
		PlanejamentoIntervencaoID: d.PlanejamentoIntervencaoID,
		DataAula:                  d.DataAula,
		Observacoes:               d.Observacoes,
		CreatedAt:                 d.CreatedAt,
		AulaID:                    d.AulaID,
		Atividades:                d.Atividades.List(),
		Intercorrencias:           d.Intercorrencias.List(),
		Estatisticas:              d.Atividades.Statistics(),
		EstatisticasIncident:      d.Intercorrencias.Statistics(),
	}
}
