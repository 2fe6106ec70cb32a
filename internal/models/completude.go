package models

// Completude is how much of a planned activity the aprendiz completed in a lesson
type Completude string

const (
	CompletudeNaoRealizou Completude = "Não Realizou"
	CompletudePoucas      Completude = "Poucas"
	CompletudeMetade      Completude = "Metade"
	CompletudeQuaseTudo   Completude = "Quase Tudo"
	CompletudeTudo        Completude = "Tudo"
)

// Completudes lists every storage value, from least to most complete
var Completudes = []Completude{
	CompletudeNaoRealizou,
	CompletudePoucas,
	CompletudeMetade,
	CompletudeQuaseTudo,
	CompletudeTudo,
}

// IsValid reports whether c is one of the five storage values
func (c Completude) IsValid() bool {
	for _, v := range Completudes {
		if c == v {
			return true
		}
	}
	return false
}
