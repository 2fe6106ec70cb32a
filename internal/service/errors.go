package service

import (
	"errors"
	"fmt"

	"protocolotea/internal/validation"
)

// ErrNoActivities rejects a finalize with nothing staged, before any database call
var ErrNoActivities = validation.ValidationError{
	Field:   "atividades",
	Message: "Adicione ao menos uma atividade antes de finalizar a aula",
}

// PersistenceError is a database call that was rejected
type PersistenceError struct {
	Op    string
	Table string
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// UnexpectedError is any failure that is neither validation nor persistence
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected error: %v", e.Err)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a validation.ValidationError or validation.Errors
func IsValidation(err error) bool {
	var single validation.ValidationError
	var list validation.Errors
	return errors.As(err, &single) || errors.As(err, &list)
}

func persistenceError(op, table string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Table: table, Err: err}
}

// classify passes validation and persistence errors through and wraps anything else
func classify(err error) error {
	if err == nil || IsValidation(err) {
		return err
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	var ue *UnexpectedError
	if errors.As(err, &ue) {
		return err
	}
	return &UnexpectedError{Err: err}
}
