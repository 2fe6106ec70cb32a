package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"protocolotea/internal/config"
	"protocolotea/internal/database"
	"protocolotea/internal/handlers"
	"protocolotea/internal/repository"
	"protocolotea/internal/security"
	"protocolotea/internal/service"
	"protocolotea/internal/staging"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if cfg.UsesDefaultJWTSecret() {
		log.Println("Warning: JWT_SECRET is not set, tokens are signed with the development default")
	}

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Run migrations
	if err := db.RunMigrations(ctx, cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Seed incident catalog
	if err := db.SeedIntercorrencias(ctx); err != nil {
		log.Printf("Warning: Failed to seed intercorrência catalog: %v", err)
	}

	// Initialize repositories
	aulaRepo := repository.NewAulaRepository(db)
	progressoRepo := repository.NewProgressoAtividadeRepository(db)
	registroRepo := repository.NewRegistroIntercorrenciaRepository(db)
	aprendizRepo := repository.NewAprendizRepository(db)

	// Initialize services
	aulaService := service.NewAulaService(aulaRepo, progressoRepo, registroRepo)
	progressoService := service.NewProgressoAtividadeService(progressoRepo)
	catalogService := service.NewCatalogService(
		repository.NewIntercorrenciaRepository(db),
		repository.NewPlanejamentoRepository(db),
		aprendizRepo,
		repository.NewProfessorRepository(db),
	)

	mailer, err := service.NewLessonMailer(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, aprendizRepo, cfg.Debug)
	if err != nil {
		log.Printf("Warning: Failed to initialize lesson mailer: %v", err)
	}
	var notifier service.LessonNotifier
	if mailer != nil && mailer.IsEnabled() {
		notifier = mailer
	}

	finalizer := service.NewFinalizer(catalogService, aulaService, progressoService, notifier, cfg.Debug)
	if cfg.Debug {
		finalizer.SetObserver(func(draftID uuid.UUID, from, to service.State) {
			log.Printf("[DEBUG] Finalize %s: %s -> %s", draftID, from, to)
		})
	}

	// Drafts live in memory until finalized, discarded or swept
	registry := staging.NewRegistry(cfg.DraftTTL)
	go registry.RunSweeper(ctx, 10*time.Minute)

	limiter := security.NewRateLimiter(cfg.FinalizeRate, cfg.FinalizeWindow)
	go limiter.RunCleanup(ctx, 5*time.Minute)

	// Initialize handlers
	middleware := handlers.NewMiddleware(cfg.JWTSecret, cfg.JWTIssuer, limiter)
	handler := handlers.NewRouter(
		middleware,
		handlers.NewHealthHandler(db, registry),
		handlers.NewCatalogHandler(catalogService, aulaService),
		handlers.NewDraftHandler(registry, catalogService, finalizer),
	)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	log.Println("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Warning: graceful shutdown failed: %v", err)
	}
	if n := registry.Len(); n > 0 {
		log.Printf("Warning: %d unsaved drafts discarded on shutdown", n)
	}
}
