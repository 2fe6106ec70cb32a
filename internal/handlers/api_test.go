package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"protocolotea/internal/models"
	"protocolotea/internal/repository"
	"protocolotea/internal/security"
	"protocolotea/internal/service"
	"protocolotea/internal/staging"
	"protocolotea/internal/testutil"
)

type testServer struct {
	t        *testing.T
	handler  http.Handler
	fixtures testutil.Fixtures
	registry *staging.Registry
	planos   *repository.PlanejamentoRepository
}

func newTestServer(t *testing.T, limiter *security.RateLimiter) *testServer {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := testutil.OpenDB(t)
	f := testutil.SeedFixtures(t, db)

	aulaRepo := repository.NewAulaRepository(db)
	progressoRepo := repository.NewProgressoAtividadeRepository(db)
	registroRepo := repository.NewRegistroIntercorrenciaRepository(db)
	aulaService := service.NewAulaService(aulaRepo, progressoRepo, registroRepo)
	progressoService := service.NewProgressoAtividadeService(progressoRepo)
	planos := repository.NewPlanejamentoRepository(db)
	catalogService := service.NewCatalogService(
		repository.NewIntercorrenciaRepository(db),
		planos,
		repository.NewAprendizRepository(db),
		repository.NewProfessorRepository(db),
	)
	finalizer := service.NewFinalizer(catalogService, aulaService, progressoService, nil, false)
	registry := staging.NewRegistry(time.Hour)

	handler := NewRouter(
		NewMiddleware(testSecret, testIssuer, limiter),
		NewHealthHandler(db, registry),
		NewCatalogHandler(catalogService, aulaService),
		NewDraftHandler(registry, catalogService, finalizer),
	)
	return &testServer{t: t, handler: handler, fixtures: f, registry: registry, planos: planos}
}

func (s *testServer) do(professorID int64, method, path string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if professorID > 0 {
		req.Header.Set("Authorization", "Bearer "+mustToken(s.t, testSecret, professorID))
	}
	recorder := httptest.NewRecorder()
	s.handler.ServeHTTP(recorder, req)
	return recorder
}

func (s *testServer) openDraft() uuid.UUID {
	s.t.Helper()
	rec := s.do(s.fixtures.ProfessorID, http.MethodPost, "/api/rascunhos", staging.DraftParams{
		AprendizID:                s.fixtures.AprendizID,
		PlanejamentoIntervencaoID: s.fixtures.PlanejamentoID,
		DataAula:                  time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC),
		Observacoes:               "Sessão da tarde",
	})
	if rec.Code != http.StatusCreated {
		s.t.Fatalf("create draft status = %d, body %s", rec.Code, rec.Body.String())
	}
	var view staging.DraftView
	decodeBody(s.t, rec, &view)
	return view.ID
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode %s: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(0, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestCatalogRoutes(t *testing.T) {
	s := newTestServer(t, nil)
	f := s.fixtures

	tests := []struct {
		name       string
		professor  int64
		path       string
		wantStatus int
		wantLen    int
	}{
		{name: "no token", professor: 0, path: "/api/intercorrencias", wantStatus: http.StatusUnauthorized, wantLen: -1},
		{name: "intercorrencias", professor: f.ProfessorID, path: "/api/intercorrencias", wantStatus: http.StatusOK, wantLen: len(f.IntercorrenciaIDs)},
		{name: "aprendizes", professor: f.ProfessorID, path: "/api/aprendizes", wantStatus: http.StatusOK, wantLen: 1},
		{name: "aprendizes of another professor", professor: f.ProfessorID + 100, path: "/api/aprendizes", wantStatus: http.StatusOK, wantLen: 0},
		{name: "atividades", professor: f.ProfessorID, path: fmt.Sprintf("/api/planejamentos/%d/atividades", f.PlanejamentoID), wantStatus: http.StatusOK, wantLen: 3},
		{name: "unknown planejamento", professor: f.ProfessorID, path: "/api/planejamentos/9999/atividades", wantStatus: http.StatusNotFound, wantLen: -1},
		{name: "bad id", professor: f.ProfessorID, path: "/api/planejamentos/abc/atividades", wantStatus: http.StatusBadRequest, wantLen: -1},
		{name: "empty history", professor: f.ProfessorID, path: fmt.Sprintf("/api/aprendizes/%d/aulas", f.AprendizID), wantStatus: http.StatusOK, wantLen: 0},
		{name: "unknown aula", professor: f.ProfessorID, path: "/api/aulas/9999", wantStatus: http.StatusNotFound, wantLen: -1},
		{name: "no open drafts", professor: f.ProfessorID, path: "/api/rascunhos", wantStatus: http.StatusOK, wantLen: 0},
		{name: "token of a removed professor", professor: f.ProfessorID + 100, path: "/api/professor", wantStatus: http.StatusNotFound, wantLen: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(tt.professor, http.MethodGet, tt.path, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantLen < 0 {
				return
			}
			var list []json.RawMessage
			decodeBody(t, rec, &list)
			if len(list) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(list), tt.wantLen)
			}
		})
	}
}

func TestDraftLifecycle(t *testing.T) {
	s := newTestServer(t, nil)
	f := s.fixtures
	draftID := s.openDraft()
	base := "/api/rascunhos/" + draftID.String()

	// stage an activity carrying one incident, then attach a second one
	form := testutil.NewAtividadeForm(f.AtividadeIDs[0]).
		WithCompletude("quase tudo").
		WithIntercorrencia(f.IntercorrenciaIDs["AG"], "AG", 2, 3).
		Build()
	rec := s.do(f.ProfessorID, http.MethodPost, base+"/atividades", form)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add atividade status = %d, body %s", rec.Code, rec.Body.String())
	}
	var staged stagedResponse
	decodeBody(t, rec, &staged)
	if staged.Atividade.TentativasRealizadas != 2 || staged.Atividade.SomaPontuacao != 18 {
		t.Errorf("derived counters = %d/%d, want 2/18", staged.Atividade.TentativasRealizadas, staged.Atividade.SomaPontuacao)
	}
	if len(staged.Intercorrencias) != 1 || !staged.Validacao.Valid {
		t.Errorf("staged response = %+v", staged)
	}

	rec = s.do(f.ProfessorID, http.MethodPost, base+"/intercorrencias", staging.IntercorrenciaInput{
		AtividadeKey:     staged.TempID,
		IntercorrenciaID: f.IntercorrenciaIDs["REC"],
		Sigla:            "REC",
		Frequencia:       1,
		Intensidade:      1,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add intercorrência status = %d, body %s", rec.Code, rec.Body.String())
	}

	obs := "Respondeu bem"
	rec = s.do(f.ProfessorID, http.MethodPatch, base+"/atividades/"+staged.TempID.String(), staging.AtividadePatch{Observacoes: &obs})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch atividade status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = s.do(f.ProfessorID, http.MethodGet, base+"/validacao", nil)
	var report validationResponse
	decodeBody(t, rec, &report)
	if !report.Valid {
		t.Fatalf("expected a valid draft, got %+v", report)
	}

	rec = s.do(f.ProfessorID, http.MethodPost, base+"/finalizar", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("finalize status = %d, body %s", rec.Code, rec.Body.String())
	}
	var result service.FinalizeResult
	decodeBody(t, rec, &result)
	if result.AulaID == 0 || result.Atividades != 1 || result.Intercorrencias != 2 {
		t.Fatalf("finalize result = %+v", result)
	}

	rec = s.do(f.ProfessorID, http.MethodGet, base, nil)
	var view staging.DraftView
	decodeBody(t, rec, &view)
	if len(view.Atividades) != 0 || len(view.Intercorrencias) != 0 {
		t.Errorf("expected a cleared draft, got %d atividades and %d intercorrências", len(view.Atividades), len(view.Intercorrencias))
	}

	rec = s.do(f.ProfessorID, http.MethodGet, fmt.Sprintf("/api/aulas/%d", result.AulaID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get aula status = %d, body %s", rec.Code, rec.Body.String())
	}
	var aula aulaResponse
	decodeBody(t, rec, &aula)
	if len(aula.Atividades) != 1 || len(aula.Atividades[0].Intercorrencias) != 2 {
		t.Fatalf("aula detail = %+v", aula)
	}
	if aula.MediaPontuacao != 18 {
		t.Errorf("media_pontuacao = %v, want 18", aula.MediaPontuacao)
	}

	rec = s.do(f.ProfessorID, http.MethodGet, fmt.Sprintf("/api/aprendizes/%d/aulas", f.AprendizID), nil)
	var history []json.RawMessage
	decodeBody(t, rec, &history)
	if len(history) != 1 {
		t.Errorf("history len = %d, want 1", len(history))
	}

	if rec := s.do(f.ProfessorID, http.MethodDelete, base, nil); rec.Code != http.StatusNoContent {
		t.Errorf("discard status = %d, want 204", rec.Code)
	}
	if s.registry.Len() != 0 {
		t.Errorf("expected no open drafts, got %d", s.registry.Len())
	}
}

func TestDraftRejections(t *testing.T) {
	s := newTestServer(t, nil)
	f := s.fixtures
	draftID := s.openDraft()
	base := "/api/rascunhos/" + draftID.String()

	tests := []struct {
		name       string
		professor  int64
		method     string
		path       string
		body       interface{}
		wantStatus int
	}{
		{
			name:       "finalize with nothing staged",
			professor:  f.ProfessorID,
			method:     http.MethodPost,
			path:       base + "/finalizar",
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "draft of another professor",
			professor:  f.ProfessorID + 1,
			method:     http.MethodGet,
			path:       base,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "unknown draft",
			professor:  f.ProfessorID,
			method:     http.MethodGet,
			path:       "/api/rascunhos/" + uuid.NewString(),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "malformed draft id",
			professor:  f.ProfessorID,
			method:     http.MethodGet,
			path:       "/api/rascunhos/abc",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown staged activity",
			professor:  f.ProfessorID,
			method:     http.MethodDelete,
			path:       base + "/atividades/" + uuid.NewString(),
			wantStatus: http.StatusNotFound,
		},
		{
			name:      "incident for an activity not in the draft",
			professor: f.ProfessorID,
			method:    http.MethodPost,
			path:      base + "/intercorrencias",
			body: staging.IntercorrenciaInput{
				AtividadeKey:     uuid.New(),
				IntercorrenciaID: f.IntercorrenciaIDs["AG"],
				Frequencia:       1,
				Intensidade:      1,
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unknown field",
			professor:  f.ProfessorID,
			method:     http.MethodPost,
			path:       base + "/atividades",
			body:       map[string]interface{}{"pontos": 3},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:      "plan of another aprendiz",
			professor: f.ProfessorID,
			method:    http.MethodPost,
			path:      "/api/rascunhos",
			body: staging.DraftParams{
				AprendizID:                f.AprendizID + 1,
				PlanejamentoIntervencaoID: f.PlanejamentoID,
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "missing plan",
			professor:  f.ProfessorID,
			method:     http.MethodPost,
			path:       "/api/rascunhos",
			body:       staging.DraftParams{AprendizID: f.AprendizID},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(tt.professor, tt.method, tt.path, tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestFinalizeInvalidDraftKeepsStagedData(t *testing.T) {
	s := newTestServer(t, nil)
	f := s.fixtures
	draftID := s.openDraft()
	base := "/api/rascunhos/" + draftID.String()

	form := testutil.NewAtividadeForm(f.AtividadeIDs[1]).WithCompletude("").Build()
	if rec := s.do(f.ProfessorID, http.MethodPost, base+"/atividades", form); rec.Code != http.StatusCreated {
		t.Fatalf("add atividade status = %d", rec.Code)
	}

	rec := s.do(f.ProfessorID, http.MethodPost, base+"/finalizar", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("finalize status = %d, want 422 (body %s)", rec.Code, rec.Body.String())
	}
	var body struct {
		Messages  []string               `json:"messages"`
		Resultado service.FinalizeResult `json:"resultado"`
	}
	decodeBody(t, rec, &body)
	if len(body.Messages) == 0 {
		t.Error("expected validation messages")
	}
	if body.Resultado.AulaID != 0 {
		t.Errorf("expected no aula to be created, got %d", body.Resultado.AulaID)
	}

	rec = s.do(f.ProfessorID, http.MethodGet, base, nil)
	var view staging.DraftView
	decodeBody(t, rec, &view)
	if len(view.Atividades) != 1 {
		t.Errorf("expected the staged activity to survive, got %d", len(view.Atividades))
	}
}

func TestFinalizeIsRateLimited(t *testing.T) {
	s := newTestServer(t, security.NewRateLimiter(1, time.Minute))
	draftID := s.openDraft()
	path := "/api/rascunhos/" + draftID.String() + "/finalizar"

	if rec := s.do(s.fixtures.ProfessorID, http.MethodPost, path, nil); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("first finalize status = %d, want 422", rec.Code)
	}
	rec := s.do(s.fixtures.ProfessorID, http.MethodPost, path, nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second finalize status = %d, want 429", rec.Code)
	}
}

func TestGetProfessor(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(s.fixtures.ProfessorID, http.MethodGet, "/api/professor", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var professor models.Professor
	decodeBody(t, rec, &professor)
	if professor.ID != s.fixtures.ProfessorID || professor.Nome != "Ana Souza" {
		t.Errorf("professor = %+v", professor)
	}
}

func TestListDrafts(t *testing.T) {
	s := newTestServer(t, nil)
	first := s.openDraft()
	second := s.openDraft()

	rec := s.do(s.fixtures.ProfessorID, http.MethodGet, "/api/rascunhos", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var views []staging.DraftView
	decodeBody(t, rec, &views)
	if len(views) != 2 {
		t.Fatalf("drafts = %d, want 2", len(views))
	}
	got := map[uuid.UUID]bool{views[0].ID: true, views[1].ID: true}
	if !got[first] || !got[second] {
		t.Errorf("drafts = %v, want %s and %s", got, first, second)
	}

	rec = s.do(s.fixtures.ProfessorID+1, http.MethodGet, "/api/rascunhos", nil)
	decodeBody(t, rec, &views)
	if len(views) != 0 {
		t.Errorf("another professor sees %d drafts", len(views))
	}
}

func TestFinalizeRejectsActivityOfAnotherPlan(t *testing.T) {
	s := newTestServer(t, nil)
	f := s.fixtures

	outro, err := s.planos.CreateIntervencao(context.Background(), f.AprendizID, f.ProfessorID, "Coordenação motora")
	if err != nil {
		t.Fatalf("CreateIntervencao() error = %v", err)
	}
	estranha, err := s.planos.CreateAtividade(context.Background(), outro.ID, "Atividade de outro plano", "")
	if err != nil {
		t.Fatalf("CreateAtividade() error = %v", err)
	}

	draftID := s.openDraft()
	base := "/api/rascunhos/" + draftID.String()
	form := testutil.NewAtividadeForm(estranha.ID).Build()
	if rec := s.do(f.ProfessorID, http.MethodPost, base+"/atividades", form); rec.Code != http.StatusCreated {
		t.Fatalf("add atividade status = %d", rec.Code)
	}

	rec := s.do(f.ProfessorID, http.MethodGet, base+"/validacao", nil)
	var report validationResponse
	decodeBody(t, rec, &report)
	if report.Valid || report.Rascunho.Valid {
		t.Errorf("validacao = %+v, want the foreign activity reported", report)
	}

	rec = s.do(f.ProfessorID, http.MethodPost, base+"/finalizar", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("finalize status = %d, want 422 (body %s)", rec.Code, rec.Body.String())
	}
	var body struct {
		Resultado service.FinalizeResult `json:"resultado"`
	}
	decodeBody(t, rec, &body)
	if body.Resultado.AulaID != 0 {
		t.Errorf("aula %d created for a foreign activity", body.Resultado.AulaID)
	}

	rec = s.do(f.ProfessorID, http.MethodGet, fmt.Sprintf("/api/aprendizes/%d/aulas", f.AprendizID), nil)
	var history []json.RawMessage
	decodeBody(t, rec, &history)
	if len(history) != 0 {
		t.Errorf("history len = %d, want 0", len(history))
	}
}
