package handlers

import (
	"net/http"

	"protocolotea/internal/models"
	"protocolotea/internal/service"
)

// CatalogHandler serves the read-only data the lesson screens pick from, and finalized lessons
type CatalogHandler struct {
	catalog *service.CatalogService
	aulas   *service.AulaService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *service.CatalogService, aulas *service.AulaService) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		aulas:   aulas,
	}
}

// aulaResponse adds the computed score average to a lesson detail
type aulaResponse struct {
	*models.AulaDetalhada
	MediaPontuacao float64 `json:"media_pontuacao"`
}

// GetProfessor returns the professor the token was issued for
func (h *CatalogHandler) GetProfessor(w http.ResponseWriter, r *http.Request) {
	professorID, ok := professorFrom(w, r)
	if !ok {
		return
	}

	professor, err := h.catalog.Professor(r.Context(), professorID)
	if err != nil {
		respondWithServiceError(w, "Failed to load professor", err, nil)
		return
	}
	writeJSON(w, http.StatusOK, professor)
}

// ListIntercorrencias returns the incident type catalog
func (h *CatalogHandler) ListIntercorrencias(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.Intercorrencias(r.Context())
	if err != nil {
		respondWithServiceError(w, "Failed to list intercorrências", err, nil)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ListAprendizes returns the aprendizes the professor has an active plan for
func (h *CatalogHandler) ListAprendizes(w http.ResponseWriter, r *http.Request) {
	professorID, ok := professorFrom(w, r)
	if !ok {
		return
	}

	list, err := h.catalog.Aprendizes(r.Context(), professorID)
	if err != nil {
		respondWithServiceError(w, "Failed to list aprendizes", err, nil)
		return
	}
	if list == nil {
		list = []models.Aprendiz{}
	}
	writeJSON(w, http.StatusOK, list)
}

// ListAulasByAprendiz returns the lesson history of one aprendiz
func (h *CatalogHandler) ListAulasByAprendiz(w http.ResponseWriter, r *http.Request) {
	aprendizID, err := pathInt64(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidID, "", nil)
		return
	}

	if _, err := h.catalog.Aprendiz(r.Context(), aprendizID); err != nil {
		respondWithServiceError(w, "Failed to load aprendiz", err, nil)
		return
	}

	aulas, err := h.aulas.ListByAprendiz(r.Context(), aprendizID)
	if err != nil {
		respondWithServiceError(w, "Failed to list aulas", err, nil)
		return
	}
	if aulas == nil {
		aulas = []models.AulaResumo{}
	}
	writeJSON(w, http.StatusOK, aulas)
}

// ListAtividades returns the planned activities of an intervention plan
func (h *CatalogHandler) ListAtividades(w http.ResponseWriter, r *http.Request) {
	planejamentoID, err := pathInt64(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidID, "", nil)
		return
	}

	if _, err := h.catalog.Planejamento(r.Context(), planejamentoID); err != nil {
		respondWithServiceError(w, "Failed to load planejamento", err, nil)
		return
	}

	list, err := h.catalog.Atividades(r.Context(), planejamentoID)
	if err != nil {
		respondWithServiceError(w, "Failed to list atividades", err, nil)
		return
	}
	if list == nil {
		list = []models.PlanejamentoAtividade{}
	}
	writeJSON(w, http.StatusOK, list)
}

// GetAula returns a finalized lesson with its activities and incidents
func (h *CatalogHandler) GetAula(w http.ResponseWriter, r *http.Request) {
	aulaID, err := pathInt64(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidID, "", nil)
		return
	}

	detalhe, err := h.aulas.Detalhar(r.Context(), aulaID)
	if err != nil {
		respondWithServiceError(w, "Failed to load aula", err, nil)
		return
	}
	writeJSON(w, http.StatusOK, aulaResponse{AulaDetalhada: detalhe, MediaPontuacao: detalhe.MediaPontuacao()})
}
