package testutil

import "protocolotea/internal/models"

// AtividadeFormBuilder provides a fluent API for activity forms
type AtividadeFormBuilder struct {
	form models.AtividadeForm
}

// NewAtividadeForm starts from a valid form for planned activity atividadeID
func NewAtividadeForm(atividadeID int64) *AtividadeFormBuilder {
	return &AtividadeFormBuilder{
		form: models.AtividadeForm{
			PlanejamentoAtividadeID: &atividadeID,
			Titulo:                  "Atividade de teste",
			Tentativas:              []int{8, 0, 10, 0, 0},
			Completude:              string(models.CompletudeMetade),
		},
	}
}

func (b *AtividadeFormBuilder) WithoutAtividade() *AtividadeFormBuilder {
	b.form.PlanejamentoAtividadeID = nil
	return b
}

func (b *AtividadeFormBuilder) WithTentativas(scores ...int) *AtividadeFormBuilder {
	b.form.Tentativas = scores
	return b
}

func (b *AtividadeFormBuilder) WithCompletude(label string) *AtividadeFormBuilder {
	b.form.Completude = label
	return b
}

func (b *AtividadeFormBuilder) WithObservacoes(text string) *AtividadeFormBuilder {
	b.form.Observacoes = text
	return b
}

func (b *AtividadeFormBuilder) WithIntercorrencia(id int64, sigla string, frequencia, intensidade int) *AtividadeFormBuilder {
	b.form.Intercorrencias = append(b.form.Intercorrencias, models.IntercorrenciaSelecionada{
		IntercorrenciaID: id,
		Sigla:            sigla,
		Frequencia:       frequencia,
		Intensidade:      intensidade,
	})
	return b
}

func (b *AtividadeFormBuilder) Build() models.AtividadeForm {
	return b.form
}
