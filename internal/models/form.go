package models

// AtividadeForm is an activity as the lesson screen edits it
type AtividadeForm struct {
	PlanejamentoAtividadeID *int64 `json:"planejamento_atividade_id"`
	// Titulo is display-only and never persisted
	Titulo string `json:"titulo,omitempty"`
	// Tentativas holds the score of each attempt, in order
	Tentativas []int `json:"tentativas"`
	// Completude is the label chosen on screen, see convert.CompletudeFromLabel
	Completude      string                      `json:"completude"`
	Observacoes     string                      `json:"observacoes"`
	Intercorrencias []IntercorrenciaSelecionada `json:"intercorrencias,omitempty"`
}

// IntercorrenciaSelecionada is an incident picked for an activity on screen
type IntercorrenciaSelecionada struct {
	IntercorrenciaID int64  `json:"intercorrencia_id"`
	Sigla            string `json:"sigla,omitempty"`
	Frequencia       int    `json:"frequencia"`
	Intensidade      int    `json:"intensidade"`
}
