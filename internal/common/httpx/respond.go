package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"comanda-pos/internal/domain"
)

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteProblem emits the simplified RFC7807 problem shape used across
// all handlers.
func WriteProblem(w http.ResponseWriter, code int, typ, detail string) {
	WriteJSON(w, code, map[string]any{
		"type":   typ,
		"title":  http.StatusText(code),
		"status": code,
		"detail": detail,
	})
}

// WriteDomainError maps domain errors onto problem responses. Anything
// unrecognized is treated as a persistence failure the client may retry.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		WriteProblem(w, http.StatusNotFound, "order_not_found", err.Error())
	case errors.Is(err, domain.ErrMenuItemNotFound):
		WriteProblem(w, http.StatusUnprocessableEntity, "menu_item_not_found", err.Error())
	case errors.Is(err, domain.ErrTableOccupied):
		WriteProblem(w, http.StatusConflict, "table_occupied", err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		WriteProblem(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, domain.ErrOrderLocked):
		WriteProblem(w, http.StatusConflict, "order_locked", err.Error())
	case errors.Is(err, domain.ErrEmptyOrder),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidSelection),
		errors.Is(err, domain.ErrInsufficientPayment):
		WriteProblem(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteProblem(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	default:
		WriteProblem(w, http.StatusInternalServerError, "persistence_error", "store unavailable, retry later")
	}
}
