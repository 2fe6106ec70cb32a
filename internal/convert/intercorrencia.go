package convert

import (
	"fmt"
	"strings"

	"protocolotea/internal/models"
	"protocolotea/internal/validation"
)

// IncidentSummary renders the incidents of an activity for its notes, e.g.
// "Intercorrências: AG (F2/I3), REC (F1/I1)". It is empty when there are none.
func IncidentSummary(sels []models.IntercorrenciaSelecionada) string {
	if len(sels) == 0 {
		return ""
	}
	parts := make([]string, len(sels))
	for i, sel := range sels {
		label := sel.Sigla
		if label == "" {
			label = fmt.Sprintf("#%d", sel.IntercorrenciaID)
		}
		parts[i] = fmt.Sprintf("%s (F%d/I%d)", label, sel.Frequencia, sel.Intensidade)
	}
	return "Intercorrências: " + strings.Join(parts, ", ")
}

// ValidateSelecionada checks one incident picked on screen
func ValidateSelecionada(sel models.IntercorrenciaSelecionada) error {
	var errs validation.Errors
	errs.Add(validation.ValidateID("intercorrencia_id", sel.IntercorrenciaID, "Selecione o tipo de intercorrência"))
	errs.Add(validation.ValidateEscala("frequencia", sel.Frequencia, "Frequência"))
	errs.Add(validation.ValidateEscala("intensidade", sel.Intensidade, "Intensidade"))
	return errs.Err()
}

// SelecionadaToRegistro converts an incident into its insert shape for an
// already persisted progress row. It returns nil when the incident is invalid
// or progressoID does not exist yet.
func SelecionadaToRegistro(sel models.IntercorrenciaSelecionada, progressoID int64) *models.RegistroIntercorrenciaInput {
	if progressoID <= 0 || ValidateSelecionada(sel) != nil {
		return nil
	}
	return &models.RegistroIntercorrenciaInput{
		ProgressoAtividadeID: progressoID,
		IntercorrenciaID:     sel.IntercorrenciaID,
		Frequencia:           sel.Frequencia,
		Intensidade:          sel.Intensidade,
	}
}

// SelecionadasToRegistros converts a batch for one progress row, leaving out rejected incidents
func SelecionadasToRegistros(sels []models.IntercorrenciaSelecionada, progressoID int64) (inputs []models.RegistroIntercorrenciaInput, skipped []int) {
	inputs = make([]models.RegistroIntercorrenciaInput, 0, len(sels))
	for i, sel := range sels {
		input := SelecionadaToRegistro(sel, progressoID)
		if input == nil {
			skipped = append(skipped, i)
			continue
		}
		inputs = append(inputs, *input)
	}
	return inputs, skipped
}
