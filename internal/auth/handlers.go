package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"comanda-pos/internal/common/httpx"
	"comanda-pos/internal/domain"
)

type Handler struct {
	service  *Service
	validate *validator.Validate
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s, validate: validator.New()}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.WriteProblem(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
