package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"protocolotea/internal/repository"
	"protocolotea/internal/service"
	"protocolotea/internal/staging"
	"protocolotea/internal/validation"
)

const (
	ErrInvalidJSON         = "Invalid JSON body"
	ErrInvalidID           = "Invalid id"
	ErrUnauthorized        = "Unauthorized"
	ErrInternalServerError = "Internal server error"
)

// errorBody is the JSON shape of every error response
type errorBody struct {
	Error    string      `json:"error"`
	Message  string      `json:"message,omitempty"`
	Messages []string    `json:"messages,omitempty"`
	Result   interface{} `json:"resultado,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	writeJSON(w, status, errorBody{Error: http.StatusText(status), Message: userMsg})
}

// respondWithServiceError maps err to a status code. result, when non-nil, is
// returned alongside the error so the client knows how far a finalize got.
func respondWithServiceError(w http.ResponseWriter, logMsg string, err error, result interface{}) {
	var list validation.Errors
	var single validation.ValidationError
	var pe *service.PersistenceError

	switch {
	case errors.As(err, &list):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "validation", Messages: list.Messages(), Result: result})
	case errors.As(err, &single):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "validation", Messages: []string{single.Message}, Result: result})
	case errors.Is(err, staging.ErrDraftNotFound),
		errors.Is(err, staging.ErrNotFound),
		errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not_found", Message: err.Error()})
	case errors.Is(err, staging.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorBody{Error: "forbidden", Message: err.Error()})
	case errors.As(err, &pe):
		log.Printf("%s: %v", logMsg, err)
		writeJSON(w, http.StatusBadGateway, errorBody{Error: "persistence", Message: pe.Error(), Result: result})
	default:
		log.Printf("%s: %v", logMsg, err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "unexpected", Message: ErrInternalServerError, Result: result})
	}
}
