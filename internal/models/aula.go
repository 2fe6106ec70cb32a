package models

import "time"

// Aula is one recorded therapy/education session
type Aula struct {
	ID                        int64     `json:"id"`
	ProfessorID               int64     `json:"professor_id"`
	PlanejamentoIntervencaoID int64     `json:"planejamento_intervencao_id"`
	DataAula                  time.Time `json:"data_aula"`
	Observacoes               string    `json:"observacoes"`
	CreatedAt                 time.Time `json:"created_at"`
}

// ProgressoAtividade is the outcome of one planned activity in one lesson
type ProgressoAtividade struct {
	ID                      int64      `json:"id"`
	AulaID                  int64      `json:"aula_id"`
	PlanejamentoAtividadeID int64      `json:"planejamento_atividade_id"`
	TentativasRealizadas    int        `json:"tentativas_realizadas"`
	SomaPontuacao           int        `json:"soma_pontuacao"`
	Completude              Completude `json:"completude"`
	Observacoes             string     `json:"observacoes"`
	CreatedAt               time.Time  `json:"created_at"`
}

// RegistroIntercorrencia is one incident observed during an activity
type RegistroIntercorrencia struct {
	ID                   int64     `json:"id"`
	ProgressoAtividadeID int64     `json:"progresso_atividade_id"`
	IntercorrenciaID     int64     `json:"intercorrencia_id"`
	Frequencia           int       `json:"frequencia"`
	Intensidade          int       `json:"intensidade"`
	CreatedAt            time.Time `json:"created_at"`
}

// AulaInput is the insert shape of an Aula
type AulaInput struct {
	ProfessorID               int64     `json:"professor_id"`
	PlanejamentoIntervencaoID int64     `json:"planejamento_intervencao_id"`
	DataAula                  time.Time `json:"data_aula"`
	Observacoes               string    `json:"observacoes"`
}

// ProgressoAtividadeInput is the insert shape of a ProgressoAtividade.
// AulaID is zero until the parent lesson exists.
type ProgressoAtividadeInput struct {
	AulaID                  int64      `json:"aula_id,omitempty"`
	PlanejamentoAtividadeID int64      `json:"planejamento_atividade_id"`
	TentativasRealizadas    int        `json:"tentativas_realizadas"`
	SomaPontuacao           int        `json:"soma_pontuacao"`
	Completude              Completude `json:"completude"`
	Observacoes             string     `json:"observacoes"`
}

// RegistroIntercorrenciaInput is the insert shape of a RegistroIntercorrencia
type RegistroIntercorrenciaInput struct {
	ProgressoAtividadeID int64 `json:"progresso_atividade_id"`
	IntercorrenciaID     int64 `json:"intercorrencia_id"`
	Frequencia           int   `json:"frequencia"`
	Intensidade          int   `json:"intensidade"`
}

// AulaResumo is a lesson row joined with its plan and professor, for listings
type AulaResumo struct {
	Aula
	AprendizID         int64  `json:"aprendiz_id"`
	PlanejamentoTitulo string `json:"planejamento_titulo"`
	ProfessorNome      string `json:"professor_nome"`
	TotalAtividades    int    `json:"total_atividades"`
}

// RegistroIntercorrenciaDetalhado is an incident row joined with the catalog
type RegistroIntercorrenciaDetalhado struct {
	RegistroIntercorrencia
	Sigla string `json:"sigla"`
	Nome  string `json:"nome"`
}

// ProgressoAtividadeDetalhado is a progress row joined with its planned activity
type ProgressoAtividadeDetalhado struct {
	ProgressoAtividade
	AtividadeTitulo string                            `json:"atividade_titulo"`
	Intercorrencias []RegistroIntercorrenciaDetalhado `json:"intercorrencias"`
}

// AulaDetalhada is a full lesson with every child record
type AulaDetalhada struct {
	AulaResumo
	AprendizNome string                        `json:"aprendiz_nome"`
	Atividades   []ProgressoAtividadeDetalhado `json:"atividades"`
}

// MediaPontuacao is the average summed score per activity, zero when there are none
func (a *AulaDetalhada) MediaPontuacao() float64 {
	if len(a.Atividades) == 0 {
		return 0
	}
	total := 0
	for _, at := range a.Atividades {
		total += at.SomaPontuacao
	}
	return float64(total) / float64(len(a.Atividades))
}
