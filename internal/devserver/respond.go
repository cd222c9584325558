package devserver

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"tuninggarage/internal/domain"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ok writes a successful envelope.
func ok(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

// reject writes a business failure. The status stays 200: clients tell
// domain failures apart from transport failures by the success flag.
func reject(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, envelope{Success: false, Message: message})
}

// fail maps known domain errors to rejection messages and everything else
// to a plain 500.
func fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		reject(w, "No encontrado")
	case errors.Is(err, domain.ErrOutOfStock):
		reject(w, "Stock insuficiente")
	case errors.Is(err, domain.ErrListingClosed):
		reject(w, "La publicación está cerrada")
	case errors.Is(err, domain.ErrForbidden):
		reject(w, "Operación no permitida")
	case errors.Is(err, domain.ErrInvalidInput):
		reject(w, "Datos inválidos")
	default:
		log.Printf("internal error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
