// Package convert maps lesson-screen records to their persistence inputs.
package convert

import (
	"fmt"
	"strings"

	"protocolotea/internal/models"
	"protocolotea/internal/validation"
)

// TentativasRealizadas counts the attempts that scored above zero
func TentativasRealizadas(tentativas []int) int {
	count := 0
	for _, score := range tentativas {
		if score > 0 {
			count++
		}
	}
	return count
}

// SomaPontuacao sums every attempt score
func SomaPontuacao(tentativas []int) int {
	sum := 0
	for _, score := range tentativas {
		sum += score
	}
	return sum
}

// FormToProgresso converts an activity form into its insert shape.
// It returns nil when the planned activity is missing or the completude label is unknown;
// callers skip such records.
func FormToProgresso(form models.AtividadeForm) *models.ProgressoAtividadeInput {
	if form.PlanejamentoAtividadeID == nil || *form.PlanejamentoAtividadeID <= 0 {
		return nil
	}
	completude, ok := CompletudeFromLabel(form.Completude)
	if !ok {
		return nil
	}

	observacoes := strings.TrimSpace(form.Observacoes)
	if summary := IncidentSummary(form.Intercorrencias); summary != "" {
		if observacoes != "" {
			observacoes += "\n"
		}
		observacoes += summary
	}

	return &models.ProgressoAtividadeInput{
		PlanejamentoAtividadeID: *form.PlanejamentoAtividadeID,
		TentativasRealizadas:    TentativasRealizadas(form.Tentativas),
		SomaPontuacao:           SomaPontuacao(form.Tentativas),
		Completude:              completude,
		Observacoes:             observacoes,
	}
}

// FormsToProgresso converts a batch, leaving out forms FormToProgresso rejects.
// skipped holds the indexes of the rejected forms.
func FormsToProgresso(forms []models.AtividadeForm) (inputs []models.ProgressoAtividadeInput, skipped []int) {
	inputs = make([]models.ProgressoAtividadeInput, 0, len(forms))
	for i, form := range forms {
		input := FormToProgresso(form)
		if input == nil {
			skipped = append(skipped, i)
			continue
		}
		inputs = append(inputs, *input)
	}
	return inputs, skipped
}

// ValidateActivityForSave checks that a form can be saved as part of a lesson.
// Beyond what FormToProgresso needs, an activity that was carried out must have
// at least one attempt with a positive score.
func ValidateActivityForSave(form models.AtividadeForm) error {
	var errs validation.Errors

	if form.PlanejamentoAtividadeID == nil || *form.PlanejamentoAtividadeID <= 0 {
		errs.Add(validation.ValidationError{
			Field:   "planejamento_atividade_id",
			Message: "Selecione a atividade planejada",
		})
	}

	completude, ok := CompletudeFromLabel(form.Completude)
	if !ok {
		errs.Add(validation.ValidationError{
			Field:   "completude",
			Message: "Selecione a completude da atividade",
		})
	}

	for i, score := range form.Tentativas {
		if score < 0 {
			errs.Add(validation.ValidationError{
				Field:   fmt.Sprintf("tentativas[%d]", i),
				Message: fmt.Sprintf("A tentativa %d tem pontuação negativa", i+1),
			})
		}
	}

	if ok && completude != models.CompletudeNaoRealizou && TentativasRealizadas(form.Tentativas) == 0 {
		errs.Add(validation.ValidationError{
			Field:   "tentativas",
			Message: "Registre ao menos uma tentativa com pontuação para uma atividade realizada",
		})
	}

	for _, sel := range form.Intercorrencias {
		errs.Add(ValidateSelecionada(sel))
	}

	return errs.Err()
}
