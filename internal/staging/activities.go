package staging

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"protocolotea/internal/convert"
	"protocolotea/internal/models"
	"protocolotea/internal/validation"
)

// StagedAtividade is an activity progress record that has not been persisted
type StagedAtividade struct {
	TempID                  uuid.UUID `json:"temp_id"`
	PlanejamentoAtividadeID int64     `json:"planejamento_atividade_id"`
	// Titulo and Tentativas are display-only; only the derived counters are persisted
	Titulo               string            `json:"titulo,omitempty"`
	Tentativas           []int             `json:"tentativas"`
	TentativasRealizadas int               `json:"tentativas_realizadas"`
	SomaPontuacao        int               `json:"soma_pontuacao"`
	Completude           models.Completude `json:"completude"`
	Observacoes          string            `json:"observacoes"`
}

// AtividadePatch is a partial update; nil fields are left unchanged
type AtividadePatch struct {
	PlanejamentoAtividadeID *int64  `json:"planejamento_atividade_id,omitempty"`
	Titulo                  *string `json:"titulo,omitempty"`
	Tentativas              *[]int  `json:"tentativas,omitempty"`
	Completude              *string `json:"completude,omitempty"`
	Observacoes             *string `json:"observacoes,omitempty"`
}

// AtividadeStats aggregates the staged activities
type AtividadeStats struct {
	Count                    int                       `json:"count"`
	TotalAttempts            int                       `json:"total_attempts"`
	TotalScore               int                       `json:"total_score"`
	AverageScore             float64                   `json:"average_score"`
	CompletenessDistribution map[models.Completude]int `json:"completeness_distribution"`
}

// ActivityStore stages the activities of one lesson
type ActivityStore struct {
	arena *Arena[StagedAtividade]
}

// NewActivityStore creates an empty store
func NewActivityStore() *ActivityStore {
	return &ActivityStore{arena: NewArena[StagedAtividade]()}
}

// Add stages an activity from its form and returns its temporary id.
// Incidents on the form are not staged here, see Draft.AddAtividade.
func (s *ActivityStore) Add(form models.AtividadeForm) uuid.UUID {
	return s.arena.Insert(func(id uuid.UUID) StagedAtividade {
		rec := StagedAtividade{TempID: id, Titulo: form.Titulo, Observacoes: form.Observacoes}
		if form.PlanejamentoAtividadeID != nil {
			rec.PlanejamentoAtividadeID = *form.PlanejamentoAtividadeID
		}
		rec.setTentativas(form.Tentativas)
		rec.setCompletude(form.Completude)
		return rec
	})
}

// Update applies patch to the staged activity id
func (s *ActivityStore) Update(id uuid.UUID, patch AtividadePatch) error {
	rec, ok := s.arena.Get(id)
	if !ok {
		return ErrNotFound
	}
	if patch.PlanejamentoAtividadeID != nil {
		rec.PlanejamentoAtividadeID = *patch.PlanejamentoAtividadeID
	}
	if patch.Titulo != nil {
		rec.Titulo = *patch.Titulo
	}
	if patch.Tentativas != nil {
		rec.setTentativas(*patch.Tentativas)
	}
	if patch.Completude != nil {
		rec.setCompletude(*patch.Completude)
	}
	if patch.Observacoes != nil {
		rec.Observacoes = *patch.Observacoes
	}
	s.arena.Set(id, rec)
	return nil
}

// Remove drops the staged activity id
func (s *ActivityStore) Remove(id uuid.UUID) error {
	if !s.arena.Delete(id) {
		return ErrNotFound
	}
	return nil
}

// Clear drops every staged activity
func (s *ActivityStore) Clear() {
	s.arena.Clear()
}

// Get returns a staged activity
func (s *ActivityStore) Get(id uuid.UUID) (StagedAtividade, bool) {
	return s.arena.Get(id)
}

// List returns the staged activities in insertion order
func (s *ActivityStore) List() []StagedAtividade {
	return s.arena.Values()
}

// Keys returns the temporary ids in insertion order
func (s *ActivityStore) Keys() []uuid.UUID {
	return s.arena.Keys()
}

// Len returns how many activities are staged
func (s *ActivityStore) Len() int {
	return s.arena.Len()
}

// ValidateOne checks a staged activity, returning validation.Errors or nil
func (s *ActivityStore) ValidateOne(rec StagedAtividade) error {
	var errs validation.Errors
	errs.Add(validation.ValidateID("planejamento_atividade_id", rec.PlanejamentoAtividadeID, "Selecione a atividade planejada"))
	errs.Add(validation.ValidateNonNegative("tentativas_realizadas", rec.TentativasRealizadas, "Número de tentativas"))
	errs.Add(validation.ValidateNonNegative("soma_pontuacao", rec.SomaPontuacao, "Pontuação"))
	errs.Add(validation.ValidateCompletude(rec.Completude))
	return errs.Err()
}

// ValidateAll checks every staged activity
func (s *ActivityStore) ValidateAll() Report {
	report := newReport()
	for i, rec := range s.arena.Values() {
		err := s.ValidateOne(rec)
		if err == nil {
			continue
		}
		report.add(activityLabel(i, rec), messagesOf(err))
	}
	return report
}

// PrepareForPersist returns the insert shape of every staged activity, in order,
// without temporary ids or display-only fields. AulaID is left for the caller.
func (s *ActivityStore) PrepareForPersist() []models.ProgressoAtividadeInput {
	recs := s.arena.Values()
	inputs := make([]models.ProgressoAtividadeInput, len(recs))
	for i, rec := range recs {
		inputs[i] = models.ProgressoAtividadeInput{
			PlanejamentoAtividadeID: rec.PlanejamentoAtividadeID,
			TentativasRealizadas:    rec.TentativasRealizadas,
			SomaPontuacao:           rec.SomaPontuacao,
			Completude:              rec.Completude,
			Observacoes:             rec.Observacoes,
		}
	}
	return inputs
}

// Statistics aggregates attempts, scores and completude over the staged activities
func (s *ActivityStore) Statistics() AtividadeStats {
	stats := AtividadeStats{CompletenessDistribution: make(map[models.Completude]int, len(models.Completudes))}
	for _, c := range models.Completudes {
		stats.CompletenessDistribution[c] = 0
	}
	for _, rec := range s.arena.Values() {
		stats.Count++
		stats.TotalAttempts += rec.TentativasRealizadas
		stats.TotalScore += rec.SomaPontuacao
		if rec.Completude.IsValid() {
			stats.CompletenessDistribution[rec.Completude]++
		}
	}
	if stats.Count > 0 {
		stats.AverageScore = float64(stats.TotalScore) / float64(stats.Count)
	}
	return stats
}

// Form rebuilds the screen form of a staged activity with its incidents, for conversion
func (rec StagedAtividade) Form(incidents []StagedIntercorrencia) models.AtividadeForm {
	form := models.AtividadeForm{
		Titulo:      rec.Titulo,
		Tentativas:  append([]int(nil), rec.Tentativas...),
		Completude:  string(rec.Completude),
		Observacoes: rec.Observacoes,
	}
	if rec.PlanejamentoAtividadeID > 0 {
		id := rec.PlanejamentoAtividadeID
		form.PlanejamentoAtividadeID = &id
	}
	for _, inc := range incidents {
		form.Intercorrencias = append(form.Intercorrencias, inc.Selecionada())
	}
	return form
}

func (rec *StagedAtividade) setTentativas(tentativas []int) {
	rec.Tentativas = append([]int(nil), tentativas...)
	rec.TentativasRealizadas = convert.TentativasRealizadas(tentativas)
	rec.SomaPontuacao = convert.SomaPontuacao(tentativas)
}

// setCompletude keeps unknown labels as-is so that validation reports them
func (rec *StagedAtividade) setCompletude(label string) {
	if c, ok := convert.CompletudeFromLabel(label); ok {
		rec.Completude = c
		return
	}
	rec.Completude = models.Completude(label)
}

func activityLabel(index int, rec StagedAtividade) string {
	if rec.Titulo != "" {
		return fmt.Sprintf("Atividade %d (%s): ", index+1, rec.Titulo)
	}
	return fmt.Sprintf("Atividade %d: ", index+1)
}

func messagesOf(err error) []string {
	var errs validation.Errors
	if errors.As(err, &errs) {
		return errs.Messages()
	}
	return []string{err.Error()}
}
