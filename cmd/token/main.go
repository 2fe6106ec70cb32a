package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"protocolotea/internal/auth"
	"protocolotea/internal/config"
	"protocolotea/internal/database"
	"protocolotea/internal/repository"
)

func main() {
	professorID := flag.Int64("professor", 0, "Professor id to issue the token for (required)")
	skipCheck := flag.Bool("no-check", false, "Do not look the professor up in the database")
	flag.Parse()

	if *professorID <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -professor flag is required")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := config.Load()
	if cfg.UsesDefaultJWTSecret() {
		log.Println("Warning: JWT_SECRET is not set, the token is signed with the development default")
	}

	token, err := issueToken(context.Background(), cfg, *professorID, !*skipCheck)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}

// issueToken signs a token for professorID, checking first that the professor
// exists when lookup is set
func issueToken(ctx context.Context, cfg *config.Config, professorID int64, lookup bool) (string, error) {
	nome := ""
	if lookup {
		var err error
		nome, err = professorNome(ctx, cfg, professorID)
		if err != nil {
			return "", err
		}
	}

	token, err := auth.NewAccessToken(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL, professorID, nome)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func professorNome(ctx context.Context, cfg *config.Config, professorID int64) (string, error) {
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	professor, err := repository.NewProfessorRepository(db).GetByID(ctx, professorID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("professor %d does not exist", professorID)
	}
	if err != nil {
		return "", fmt.Errorf("failed to load professor: %w", err)
	}
	return professor.Nome, nil
}
