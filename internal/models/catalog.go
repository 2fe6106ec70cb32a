package models

import "time"

// Professor is the therapist/educator who records lessons
type Professor struct {
	ID        int64     `json:"id"`
	Nome      string    `json:"nome"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Aprendiz is the learner profile
type Aprendiz struct {
	ID               int64      `json:"id"`
	Nome             string     `json:"nome"`
	DataNascimento   *time.Time `json:"data_nascimento,omitempty"`
	ResponsavelNome  string     `json:"responsavel_nome"`
	ResponsavelEmail string     `json:"responsavel_email"`
	CreatedAt        time.Time  `json:"created_at"`
}

// PlanejamentoIntervencao is an intervention plan for one aprendiz
type PlanejamentoIntervencao struct {
	ID          int64     `json:"id"`
	AprendizID  int64     `json:"aprendiz_id"`
	ProfessorID int64     `json:"professor_id"`
	Titulo      string    `json:"titulo"`
	Ativo       bool      `json:"ativo"`
	CreatedAt   time.Time `json:"created_at"`
}

// PlanejamentoAtividade is one activity planned inside an intervention plan
type PlanejamentoAtividade struct {
	ID                        int64  `json:"id"`
	PlanejamentoIntervencaoID int64  `json:"planejamento_intervencao_id"`
	Titulo                    string `json:"titulo"`
	Descricao                 string `json:"descricao"`
	Ordem                     int    `json:"ordem"`
}

// Intercorrencia is a behavioral incident type from the read-only catalog
type Intercorrencia struct {
	ID        int64  `json:"id"`
	Sigla     string `json:"sigla"`
	Nome      string `json:"nome"`
	Descricao string `json:"descricao"`
}
