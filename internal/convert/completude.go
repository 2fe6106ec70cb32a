package convert

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"protocolotea/internal/models"
)

var completudeByKey = map[string]models.Completude{
	"nao realizou":  models.CompletudeNaoRealizou,
	"nao realizada": models.CompletudeNaoRealizou,
	"nao realizado": models.CompletudeNaoRealizou,
	"nenhuma":       models.CompletudeNaoRealizou,
	"poucas":        models.CompletudePoucas,
	"pouco":         models.CompletudePoucas,
	"metade":        models.CompletudeMetade,
	"quase tudo":    models.CompletudeQuaseTudo,
	"quase todas":   models.CompletudeQuaseTudo,
	"tudo":          models.CompletudeTudo,
	"todas":         models.CompletudeTudo,
}

// CompletudeFromLabel maps a label chosen on screen to its storage value.
// Matching ignores case, accents, underscores and dashes, so "nao_realizou",
// "Não realizou" and "NÃO REALIZOU" are the same label.
func CompletudeFromLabel(label string) (models.Completude, bool) {
	c, ok := completudeByKey[normalizeLabel(label)]
	return c, ok
}

func normalizeLabel(label string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, label)
	if err != nil {
		folded = label
	}
	folded = strings.ToLower(folded)
	folded = strings.NewReplacer("_", " ", "-", " ").Replace(folded)
	return strings.Join(strings.Fields(folded), " ")
}
