package models

import "testing"

func TestCompletudeIsValid(t *testing.T) {
	tests := []struct {
		name string
		c    Completude
		want bool
	}{
		{name: "nao realizou", c: CompletudeNaoRealizou, want: true},
		{name: "quase tudo", c: CompletudeQuaseTudo, want: true},
		{name: "tudo", c: CompletudeTudo, want: true},
		{name: "lowercase label", c: "tudo", want: false},
		{name: "empty", c: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.IsValid(); got != tt.want {
				t.Errorf("Completude(%q).IsValid() = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestAulaDetalhadaMediaPontuacao(t *testing.T) {
	tests := []struct {
		name  string
		somas []int
		want  float64
	}{
		{name: "no activities", somas: nil, want: 0},
		{name: "single activity", somas: []int{18}, want: 18},
		{name: "mixed", somas: []int{10, 0, 5}, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aula := AulaDetalhada{}
			for _, s := range tt.somas {
				aula.Atividades = append(aula.Atividades, ProgressoAtividadeDetalhado{
					ProgressoAtividade: ProgressoAtividade{SomaPontuacao: s},
				})
			}
			if got := aula.MediaPontuacao(); got != tt.want {
				t.Errorf("MediaPontuacao() = %.2f, want %.2f", got, tt.want)
			}
		})
	}
}
