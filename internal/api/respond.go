package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/tastyhub/ordering-service/internal/db/repository"
)

// RespondJSON writes a JSON response body
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func BadRequest(w http.ResponseWriter, message string) {
	http.Error(w, message, http.StatusBadRequest)
}

func NotFound(w http.ResponseWriter) {
	http.Error(w, "Not found", http.StatusNotFound)
}

func Unauthorized(w http.ResponseWriter, message string) {
	http.Error(w, message, http.StatusUnauthorized)
}

func InternalServerError(w http.ResponseWriter, err error) {
	log.Printf("Internal error: %v", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// Error maps a service error onto the right HTTP status: missing rows become
// 404, validation failures 400, everything else 500.
func Error(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(w)
	case IsValidation(err):
		BadRequest(w, err.Error())
	default:
		InternalServerError(w, err)
	}
}
