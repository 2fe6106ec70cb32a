package handlers

import "net/http"

// NewRouter registers every route and wraps the mux with request logging
func NewRouter(middleware *Middleware, health *HealthHandler, catalog *CatalogHandler, drafts *DraftHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", health.Health)

	// Catalog and lesson history
	mux.HandleFunc("GET /api/professor", middleware.RequireAuth(catalog.GetProfessor))
	mux.HandleFunc("GET /api/intercorrencias", middleware.RequireAuth(catalog.ListIntercorrencias))
	mux.HandleFunc("GET /api/aprendizes", middleware.RequireAuth(catalog.ListAprendizes))
	mux.HandleFunc("GET /api/aprendizes/{id}/aulas", middleware.RequireAuth(catalog.ListAulasByAprendiz))
	mux.HandleFunc("GET /api/planejamentos/{id}/atividades", middleware.RequireAuth(catalog.ListAtividades))
	mux.HandleFunc("GET /api/aulas/{id}", middleware.RequireAuth(catalog.GetAula))

	// Drafts
	mux.HandleFunc("GET /api/rascunhos", middleware.RequireAuth(drafts.List))
	mux.HandleFunc("POST /api/rascunhos", middleware.RequireAuth(drafts.Create))
	mux.HandleFunc("GET /api/rascunhos/{id}", middleware.RequireAuth(drafts.Get))
	mux.HandleFunc("DELETE /api/rascunhos/{id}", middleware.RequireAuth(drafts.Discard))
	mux.HandleFunc("POST /api/rascunhos/{id}/atividades", middleware.RequireAuth(drafts.AddAtividade))
	mux.HandleFunc("PATCH /api/rascunhos/{id}/atividades/{tempId}", middleware.RequireAuth(drafts.UpdateAtividade))
	mux.HandleFunc("DELETE /api/rascunhos/{id}/atividades/{tempId}", middleware.RequireAuth(drafts.RemoveAtividade))
	mux.HandleFunc("POST /api/rascunhos/{id}/intercorrencias", middleware.RequireAuth(drafts.AddIntercorrencia))
	mux.HandleFunc("PATCH /api/rascunhos/{id}/intercorrencias/{tempId}", middleware.RequireAuth(drafts.UpdateIntercorrencia))
	mux.HandleFunc("DELETE /api/rascunhos/{id}/intercorrencias/{tempId}", middleware.RequireAuth(drafts.RemoveIntercorrencia))
	mux.HandleFunc("GET /api/rascunhos/{id}/validacao", middleware.RequireAuth(drafts.Validate))
	mux.HandleFunc("POST /api/rascunhos/{id}/finalizar", middleware.RequireAuth(middleware.RateLimit(drafts.Finalize)))

	return Logging(mux)
}
