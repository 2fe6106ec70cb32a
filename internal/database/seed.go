package database

import (
	"context"
	"fmt"
	"log"
)

type catalogEntry struct {
	Sigla     string
	Nome      string
	Descricao string
}

// defaultIntercorrencias is the incident catalog installed on an empty database
var defaultIntercorrencias = []catalogEntry{
	{"AG", "Agressão", "Agressão física dirigida a outra pessoa"},
	{"AA", "Autoagressão", "Comportamento que causa dano ao próprio aprendiz"},
	{"BC", "Birra/Choro", "Choro, gritos ou birra durante a atividade"},
	{"EST", "Estereotipia", "Movimentos ou vocalizações repetitivas"},
	{"FE", "Fuga/Esquiva", "Tentativa de sair ou evitar a atividade"},
	{"REC", "Recusa", "Recusa verbal ou gestual em participar"},
	{"DA", "Desatenção", "Perda de foco que interrompe a atividade"},
	{"DS", "Desregulação Sensorial", "Reação intensa a estímulos sensoriais"},
}

// SeedIntercorrencias installs the default incident catalog when the table is empty
func (db *DB) SeedIntercorrencias(ctx context.Context) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM intercorrencia").Scan(&count); err != nil {
		return fmt.Errorf("failed to check intercorrencia count: %w", err)
	}

	if count > 0 {
		log.Printf("Intercorrência catalog already populated with %d entries", count)
		return nil
	}

	err := db.WithTx(ctx, func(tx *Tx) error {
		for _, entry := range defaultIntercorrencias {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO intercorrencia (sigla, nome, descricao) VALUES (?, ?, ?)",
				entry.Sigla, entry.Nome, entry.Descricao,
			)
			if err != nil {
				return fmt.Errorf("failed to insert %s: %w", entry.Sigla, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("Seeded %d intercorrência catalog entries", len(defaultIntercorrencias))
	return nil
}
