package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"protocolotea/internal/models"
	"protocolotea/internal/service"
	"protocolotea/internal/staging"
	"protocolotea/internal/validation"
)

// DraftHandler stages a lesson in memory and finalizes it into the database
type DraftHandler struct {
	registry  *staging.Registry
	catalog   *service.CatalogService
	finalizer *service.Finalizer
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(registry *staging.Registry, catalog *service.CatalogService, finalizer *service.Finalizer) *DraftHandler {
	return &DraftHandler{
		registry:  registry,
		catalog:   catalog,
		finalizer: finalizer,
	}
}

// stagedResponse is returned for every staged item along with its own validation
type stagedResponse struct {
	TempID          uuid.UUID                      `json:"temp_id"`
	Atividade       *staging.StagedAtividade       `json:"atividade,omitempty"`
	Intercorrencia  *staging.StagedIntercorrencia  `json:"intercorrencia,omitempty"`
	Intercorrencias []staging.StagedIntercorrencia `json:"intercorrencias,omitempty"`
	Validacao       staging.Report                 `json:"validacao"`
}

type validationResponse struct {
	Valid           bool           `json:"valid"`
	Atividades      staging.Report `json:"atividades"`
	Intercorrencias staging.Report `json:"intercorrencias"`
	Rascunho        staging.Report `json:"rascunho"`
}

// Create opens a draft for an aprendiz and one of the professor's active plans
func (h *DraftHandler) Create(w http.ResponseWriter, r *http.Request) {
	professorID, ok := professorFrom(w, r)
	if !ok {
		return
	}

	var params staging.DraftParams
	if err := decodeJSON(w, r, &params); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}

	if err := h.checkPlan(r, professorID, params); err != nil {
		respondWithServiceError(w, "Failed to check planejamento", err, nil)
		return
	}

	d := h.registry.Create(professorID, params)
	writeJSON(w, http.StatusCreated, d.View())
}

// checkPlan verifies the plan is active, belongs to the aprendiz and to the professor
func (h *DraftHandler) checkPlan(r *http.Request, professorID int64, params staging.DraftParams) error {
	var errs validation.Errors
	errs.Add(validation.ValidateID("aprendiz_id", params.AprendizID, "Selecione o aprendiz"))
	errs.Add(validation.ValidateID("planejamento_intervencao_id", params.PlanejamentoIntervencaoID, "Selecione o planejamento de intervenção"))
	if err := errs.Err(); err != nil {
		return err
	}

	plano, err := h.catalog.Planejamento(r.Context(), params.PlanejamentoIntervencaoID)
	if err != nil {
		return err
	}
	switch {
	case plano.AprendizID != params.AprendizID:
		return validation.ValidationError{Field: "planejamento_intervencao_id", Message: "O planejamento não pertence a este aprendiz"}
	case plano.ProfessorID != professorID:
		return validation.ValidationError{Field: "planejamento_intervencao_id", Message: "O planejamento não pertence a este professor"}
	case !plano.Ativo:
		return validation.ValidationError{Field: "planejamento_intervencao_id", Message: "O planejamento não está ativo"}
	}
	return nil
}

// Get returns the staged items and their statistics
func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	var view staging.DraftView
	h.withDraft(w, r, "Failed to load draft", func(d *staging.Draft) error {
		view = d.View()
		return nil
	}, func() { writeJSON(w, http.StatusOK, view) })
}

// List returns the open drafts of the professor, oldest first
func (h *DraftHandler) List(w http.ResponseWriter, r *http.Request) {
	professorID, ok := professorFrom(w, r)
	if !ok {
		return
	}

	views := []staging.DraftView{}
	for _, id := range h.registry.ListByProfessor(professorID) {
		err := h.registry.With(id, professorID, func(d *staging.Draft) error {
			views = append(views, d.View())
			return nil
		})
		// swept or discarded since it was listed
		if errors.Is(err, staging.ErrDraftNotFound) {
			continue
		}
		if err != nil {
			respondWithServiceError(w, "Failed to list drafts", err, nil)
			return
		}
	}
	writeJSON(w, http.StatusOK, views)
}

// Discard drops a draft without saving anything
func (h *DraftHandler) Discard(w http.ResponseWriter, r *http.Request) {
	professorID, ok := professorFrom(w, r)
	if !ok {
		return
	}
	draftID, err := pathUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidID, "", nil)
		return
	}

	if err := h.registry.Discard(draftID, professorID); err != nil {
		respondWithServiceError(w, "Failed to discard draft", err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddAtividade stages an activity in its screen form, with any incidents selected on it
func (h *DraftHandler) AddAtividade(w http.ResponseWriter, r *http.Request) {
	var form models.AtividadeForm
	if err := decodeJSON(w, r, &form); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}

	var resp stagedResponse
	h.withDraft(w, r, "Failed to stage atividade", func(d *staging.Draft) error {
		key := d.AddAtividade(form)
		resp = atividadeResponse(d, key)
		return nil
	}, func() { writeJSON(w, http.StatusCreated, resp) })
}

// UpdateAtividade applies a partial update to a staged activity
func (h *DraftHandler) UpdateAtividade(w http.ResponseWriter, r *http.Request) {
	key, err := pathUUID(r, "tempId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidID, "", nil)
		return
	}
	var patch staging.AtividadePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}

	var resp stagedResponse
	h.withDraft(w, r, "Failed to update atividade", func(d *staging.Draft) error {
		if err := d.Atividades.Update(key, patch); err != nil {
			return fmt.Errorf("atividade %s: %w", key, err)
		}
		resp = atividadeResponse(d, key)
		return nil
	}, func() { writeJSON(w, http.StatusOK, resp) })
}

// RemoveAtividade drops a staged activity and its incidents
func (h *DraftHandler) RemoveAtividade(w http.ResponseWriter, r *http.Request) {
	key, err := pathUUID(r, "tempId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidID, "", nil)
		return
	}

	h.withDraft(w, r, "Failed to remove atividade", func(d *staging.Draft) error {
		if err := d.RemoveAtividade(key); err != nil {
			return fmt.Errorf("atividade %s: %w", key, err)
		}
		return nil
	}, func() { w.WriteHeader(http.StatusNoContent) })
}

// AddIntercorrencia stages an incident on a staged activity
func (h *DraftHandler) AddIntercorrencia(w http.ResponseWriter, r *http.Request) {
	var in staging.IntercorrenciaInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}

	var resp stagedResponse
	h.withDraft(w, r, "Failed to stage intercorrência", func(d *staging.Draft) error {
		key, err := d.AddIntercorrencia(in)
		if err != nil {
			return err
		}
		resp = intercorrenciaResponse(d, key)
		return nil
	}, func() { writeJSON(w, http.StatusCreated, resp) })
}

// UpdateIntercorrencia applies a partial update to a staged incident
func (h *DraftHandler) UpdateIntercorrencia(w http.ResponseWriter, r *http.Request) {
	key, err := pathUUID(r, "tempId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidID, "", nil)
		return
	}
	var patch staging.IntercorrenciaPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}

	var resp stagedResponse
	h.withDraft(w, r, "Failed to update intercorrência", func(d *staging.Draft) error {
		if err := d.Intercorrencias.Update(key, patch); err != nil {
			return fmt.Errorf("intercorrência %s: %w", key, err)
		}
		resp = intercorrenciaResponse(d, key)
		return nil
	}, func() { writeJSON(w, http.StatusOK, resp) })
}

// RemoveIntercorrencia drops a staged incident
func (h *DraftHandler) RemoveIntercorrencia(w http.ResponseWriter, r *http.Request) {
	key, err := pathUUID(r, "tempId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidID, "", nil)
		return
	}

	h.withDraft(w, r, "Failed to remove intercorrência", func(d *staging.Draft) error {
		if err := d.Intercorrencias.Remove(key); err != nil {
			return fmt.Errorf("intercorrência %s: %w", key, err)
		}
		return nil
	}, func() { w.WriteHeader(http.StatusNoContent) })
}

// Validate runs every check a finalize would run, without saving
func (h *DraftHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var resp validationResponse
	h.withDraft(w, r, "Failed to validate draft", func(d *staging.Draft) error {
		catalogReport, err := h.finalizer.CheckCatalog(r.Context(), d)
		if err != nil {
			return err
		}
		resp = validationResponse{
			Atividades:      d.Atividades.ValidateAll(),
			Intercorrencias: d.Intercorrencias.ValidateAll(),
			Rascunho:        d.Validate().Merge(catalogReport),
		}
		resp.Valid = resp.Atividades.Valid && resp.Intercorrencias.Valid && resp.Rascunho.Valid && d.Atividades.Len() > 0
		return nil
	}, func() { writeJSON(w, http.StatusOK, resp) })
}

// Finalize saves the draft as a lesson. Failures keep the staged data and
// report how far the finalize got.
func (h *DraftHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	professorID, ok := professorFrom(w, r)
	if !ok {
		return
	}
	draftID, err := pathUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidID, "", nil)
		return
	}

	var result *service.FinalizeResult
	err = h.registry.With(draftID, professorID, func(d *staging.Draft) error {
		var ferr error
		result, ferr = h.finalizer.Finalize(r.Context(), d)
		return ferr
	})
	if err != nil {
		var body interface{}
		if result != nil {
			body = result
		}
		respondWithServiceError(w, "Failed to finalize draft "+draftID.String(), err, body)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// withDraft resolves the draft of the request, runs fn under its lock and
// calls done on success
func (h *DraftHandler) withDraft(w http.ResponseWriter, r *http.Request, logMsg string, fn func(*staging.Draft) error, done func()) {
	professorID, ok := professorFrom(w, r)
	if !ok {
		return
	}
	draftID, err := pathUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidID, "", nil)
		return
	}

	if err := h.registry.With(draftID, professorID, fn); err != nil {
		respondWithServiceError(w, logMsg, err, nil)
		return
	}
	done()
}

func atividadeResponse(d *staging.Draft, key uuid.UUID) stagedResponse {
	rec, _ := d.Atividades.Get(key)
	return stagedResponse{
		TempID:          key,
		Atividade:       &rec,
		Intercorrencias: d.Intercorrencias.ForActivity(key),
		Validacao:       itemReport(d.Atividades.ValidateOne(rec)),
	}
}

func intercorrenciaResponse(d *staging.Draft, key uuid.UUID) stagedResponse {
	rec, _ := d.Intercorrencias.Get(key)
	return stagedResponse{
		TempID:         key,
		Intercorrencia: &rec,
		Validacao:      itemReport(d.Intercorrencias.ValidateOne(rec)),
	}
}

func itemReport(err error) staging.Report {
	report := staging.Report{Valid: err == nil, Errors: []string{}}
	var list validation.Errors
	var single validation.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &list):
		report.Errors = list.Messages()
	case errors.As(err, &single):
		report.Errors = []string{single.Message}
	default:
		report.Errors = []string{err.Error()}
	}
	return report
}
