package staging

import (
	"fmt"

	"github.com/google/uuid"

	"protocolotea/internal/models"
	"protocolotea/internal/validation"
)

// StagedIntercorrencia is an incident attached to a staged activity
type StagedIntercorrencia struct {
	TempID uuid.UUID `json:"temp_id"`
	// AtividadeKey is the temporary id of the staged activity the incident belongs to
	AtividadeKey     uuid.UUID `json:"atividade_key"`
	IntercorrenciaID int64     `json:"intercorrencia_id"`
	Sigla            string    `json:"sigla,omitempty"`
	Frequencia       int       `json:"frequencia"`
	Intensidade      int       `json:"intensidade"`
}

// IntercorrenciaInput is the request shape for staging an incident
type IntercorrenciaInput struct {
	AtividadeKey     uuid.UUID `json:"atividade_key"`
	IntercorrenciaID int64     `json:"intercorrencia_id"`
	Sigla            string    `json:"sigla,omitempty"`
	Frequencia       int       `json:"frequencia"`
	Intensidade      int       `json:"intensidade"`
}

// IntercorrenciaPatch is a partial update; nil fields are left unchanged
type IntercorrenciaPatch struct {
	IntercorrenciaID *int64  `json:"intercorrencia_id,omitempty"`
	Sigla            *string `json:"sigla,omitempty"`
	Frequencia       *int    `json:"frequencia,omitempty"`
	Intensidade      *int    `json:"intensidade,omitempty"`
}

// IntercorrenciaStats aggregates the staged incidents
type IntercorrenciaStats struct {
	Count            int            `json:"count"`
	AverageFrequency float64        `json:"average_frequency"`
	AverageIntensity float64        `json:"average_intensity"`
	BySigla          map[string]int `json:"by_sigla"`
}

// IncidentStore stages the incidents of one lesson
type IncidentStore struct {
	arena *Arena[StagedIntercorrencia]
}

// NewIncidentStore creates an empty store
func NewIncidentStore() *IncidentStore {
	return &IncidentStore{arena: NewArena[StagedIntercorrencia]()}
}

// Add stages an incident and returns its temporary id
func (s *IncidentStore) Add(in IntercorrenciaInput) uuid.UUID {
	return s.arena.Insert(func(id uuid.UUID) StagedIntercorrencia {
		return StagedIntercorrencia{
			TempID:           id,
			AtividadeKey:     in.AtividadeKey,
			IntercorrenciaID: in.IntercorrenciaID,
			Sigla:            in.Sigla,
			Frequencia:       in.Frequencia,
			Intensidade:      in.Intensidade,
		}
	})
}

// Update applies patch to the staged incident id
func (s *IncidentStore) Update(id uuid.UUID, patch IntercorrenciaPatch) error {
	rec, ok := s.arena.Get(id)
	if !ok {
		return ErrNotFound
	}
	if patch.IntercorrenciaID != nil {
		rec.IntercorrenciaID = *patch.IntercorrenciaID
	}
	if patch.Sigla != nil {
		rec.Sigla = *patch.Sigla
	}
	if patch.Frequencia != nil {
		rec.Frequencia = *patch.Frequencia
	}
	if patch.Intensidade != nil {
		rec.Intensidade = *patch.Intensidade
	}
	s.arena.Set(id, rec)
	return nil
}

// Remove drops the staged incident id
func (s *IncidentStore) Remove(id uuid.UUID) error {
	if !s.arena.Delete(id) {
		return ErrNotFound
	}
	return nil
}

// RemoveForActivity drops every incident of a staged activity and returns how many were removed
func (s *IncidentStore) RemoveForActivity(key uuid.UUID) int {
	removed := 0
	for _, rec := range s.arena.Values() {
		if rec.AtividadeKey == key {
			s.arena.Delete(rec.TempID)
			removed++
		}
	}
	return removed
}

// Clear drops every staged incident
func (s *IncidentStore) Clear() {
	s.arena.Clear()
}

// Get returns a staged incident
func (s *IncidentStore) Get(id uuid.UUID) (StagedIntercorrencia, bool) {
	return s.arena.Get(id)
}

// List returns the staged incidents in insertion order
func (s *IncidentStore) List() []StagedIntercorrencia {
	return s.arena.Values()
}

// Len returns how many incidents are staged
func (s *IncidentStore) Len() int {
	return s.arena.Len()
}

// ForActivity returns the incidents of a staged activity in insertion order
func (s *IncidentStore) ForActivity(key uuid.UUID) []StagedIntercorrencia {
	var out []StagedIntercorrencia
	for _, rec := range s.arena.Values() {
		if rec.AtividadeKey == key {
			out = append(out, rec)
		}
	}
	return out
}

// ValidateOne checks a staged incident, returning validation.Errors or nil
func (s *IncidentStore) ValidateOne(rec StagedIntercorrencia) error {
	var errs validation.Errors
	errs.Add(validation.ValidateID("intercorrencia_id", rec.IntercorrenciaID, "Selecione o tipo de intercorrência"))
	errs.Add(validation.ValidateEscala("frequencia", rec.Frequencia, "Frequência"))
	errs.Add(validation.ValidateEscala("intensidade", rec.Intensidade, "Intensidade"))
	return errs.Err()
}

// ValidateAll checks every staged incident
func (s *IncidentStore) ValidateAll() Report {
	report := newReport()
	for i, rec := range s.arena.Values() {
		if err := s.ValidateOne(rec); err != nil {
			report.add(incidentLabel(i, rec), messagesOf(err))
		}
	}
	return report
}

// PrepareForPersist returns the insert shape of the incidents of one staged
// activity, keyed by the progress row id the caller obtained from the database.
func (s *IncidentStore) PrepareForPersist(key uuid.UUID, progressoID int64) []models.RegistroIntercorrenciaInput {
	recs := s.ForActivity(key)
	inputs := make([]models.RegistroIntercorrenciaInput, len(recs))
	for i, rec := range recs {
		inputs[i] = models.RegistroIntercorrenciaInput{
			ProgressoAtividadeID: progressoID,
			IntercorrenciaID:     rec.IntercorrenciaID,
			Frequencia:           rec.Frequencia,
			Intensidade:          rec.Intensidade,
		}
	}
	return inputs
}

// Statistics aggregates frequency, intensity and sigla counts over the staged incidents
func (s *IncidentStore) Statistics() IntercorrenciaStats {
	stats := IntercorrenciaStats{BySigla: make(map[string]int)}
	var freq, intensity int
	for _, rec := range s.arena.Values() {
		stats.Count++
		freq += rec.Frequencia
		intensity += rec.Intensidade
		stats.BySigla[rec.label()]++
	}
	if stats.Count > 0 {
		stats.AverageFrequency = float64(freq) / float64(stats.Count)
		stats.AverageIntensity = float64(intensity) / float64(stats.Count)
	}
	return stats
}

// Selecionada returns the incident in its screen form
func (rec StagedIntercorrencia) Selecionada() models.IntercorrenciaSelecionada {
	return models.IntercorrenciaSelecionada{
		IntercorrenciaID: rec.IntercorrenciaID,
		Sigla:            rec.Sigla,
		Frequencia:       rec.Frequencia,
		Intensidade:      rec.Intensidade,
	}
}

func (rec StagedIntercorrencia) label() string {
	if rec.Sigla != "" {
		return rec.Sigla
	}
	return fmt.Sprintf("#%d", rec.IntercorrenciaID)
}

func incidentLabel(index int, rec StagedIntercorrencia) string {
	return fmt.Sprintf("Intercorrência %d (%s): ", index+1, rec.label())
}
