package validation

import (
	"errors"
	"testing"

	"protocolotea/internal/models"
)

func TestValidateEscala(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{name: "below range", value: 0, wantErr: true},
		{name: "lower bound", value: 1, wantErr: false},
		{name: "middle", value: 3, wantErr: false},
		{name: "upper bound", value: 4, wantErr: false},
		{name: "above range", value: 5, wantErr: true},
		{name: "negative", value: -2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEscala("frequencia", tt.value, "Frequência")
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEscala(%d) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCompletude(t *testing.T) {
	if err := ValidateCompletude(models.CompletudeMetade); err != nil {
		t.Errorf("ValidateCompletude(Metade) unexpected error: %v", err)
	}
	err := ValidateCompletude("meio")
	var vErr ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Field != "completude" {
		t.Errorf("Field = %q, want completude", vErr.Field)
	}
}

func TestValidateNonNegativeAndID(t *testing.T) {
	if err := ValidateNonNegative("soma_pontuacao", 0, "Pontuação"); err != nil {
		t.Errorf("zero should be accepted: %v", err)
	}
	if err := ValidateNonNegative("soma_pontuacao", -1, "Pontuação"); err == nil {
		t.Error("negative should be rejected")
	}
	if err := ValidateID("planejamento_atividade_id", 0, "required"); err == nil {
		t.Error("zero id should be rejected")
	}
	if err := ValidateID("planejamento_atividade_id", 7, "required"); err != nil {
		t.Errorf("positive id should be accepted: %v", err)
	}
}

func TestErrorsCollect(t *testing.T) {
	var errs Errors
	errs.Add(nil)
	if errs.Err() != nil {
		t.Fatal("empty Errors should yield nil error")
	}

	errs.Add(ValidationError{Field: "a", Message: "first"})
	errs.Add(Errors{{Field: "b", Message: "second"}, {Field: "c", Message: "third"}})
	errs.Add(errors.New("plain"))

	if len(errs) != 4 {
		t.Fatalf("len(errs) = %d, want 4", len(errs))
	}
	want := "first; second; third; plain"
	if errs.Error() != want {
		t.Errorf("Error() = %q, want %q", errs.Error(), want)
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid email", email: "responsavel@example.com", wantErr: false},
		{name: "valid email with plus", email: "mae+tea@example.com.br", wantErr: false},
		{name: "missing @", email: "responsavelexample.com", wantErr: true},
		{name: "empty string", email: "", wantErr: true},
		{name: "spaces in email", email: "mae @example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}
