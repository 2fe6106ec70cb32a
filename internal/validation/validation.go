package validation

import (
	"fmt"
	"regexp"
	"strings"

	"protocolotea/internal/models"
)

// Scale bounds for incident frequency and intensity
const (
	EscalaMin = 1
	EscalaMax = 4
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error on one field
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors collects every failed rule of a record or a batch
type Errors []ValidationError

func (e Errors) Error() string {
	return strings.Join(e.Messages(), "; ")
}

// Messages returns the human-readable message of each error, in order
func (e Errors) Messages() []string {
	messages := make([]string, len(e))
	for i, err := range e {
		messages[i] = err.Message
	}
	return messages
}

// Add appends err when it is a ValidationError or an Errors list; nil is ignored
func (e *Errors) Add(err error) {
	switch v := err.(type) {
	case nil:
	case ValidationError:
		*e = append(*e, v)
	case Errors:
		*e = append(*e, v...)
	default:
		*e = append(*e, ValidationError{Field: "", Message: err.Error()})
	}
}

// Err returns nil when no error was collected
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// ValidateID checks that a reference to another record is set
func ValidateID(field string, id int64, message string) error {
	if id <= 0 {
		return ValidationError{Field: field, Message: message}
	}
	return nil
}

// ValidateNonNegative checks counters such as attempts and scores
func ValidateNonNegative(field string, value int, label string) error {
	if value < 0 {
		return ValidationError{Field: field, Message: fmt.Sprintf("%s não pode ser negativo", label)}
	}
	return nil
}

// ValidateCompletude checks that c is one of the five storage values
func ValidateCompletude(c models.Completude) error {
	if !c.IsValid() {
		return ValidationError{Field: "completude", Message: fmt.Sprintf("completude inválida: %q", string(c))}
	}
	return nil
}

// ValidateEscala checks a frequency or intensity value against the 1-4 scale
func ValidateEscala(field string, value int, label string) error {
	if value < EscalaMin || value > EscalaMax {
		return ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s deve estar entre %d e %d", label, EscalaMin, EscalaMax),
		}
	}
	return nil
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}
