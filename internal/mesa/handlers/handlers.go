package handlers

import (
	"net/http"

	"comanda-pos/internal/common/httpx"
	"comanda-pos/internal/mesa/repository"
)

type MesaHandler struct {
	repo repository.MesasRepositoryInterface
}

func NewMesaHandler(repo repository.MesasRepositoryInterface) *MesaHandler {
	return &MesaHandler{repo: repo}
}

func (h *MesaHandler) ListTables(w http.ResponseWriter, r *http.Request) {
	mesas, err := h.repo.ListTables(r.Context())
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"mesas": mesas})
}
