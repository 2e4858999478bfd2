package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"comanda-pos/internal/common/httpx"
	"comanda-pos/internal/menu/repository"
)

type MenuHandler struct {
	repo repository.MenuRepositoryInterface
}

func NewMenuHandler(repo repository.MenuRepositoryInterface) *MenuHandler {
	return &MenuHandler{repo: repo}
}

func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.List(r.Context(), r.URL.Query().Get("categoria"))
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_id", "menu item id must be a positive integer")
		return
	}
	it, err := h.repo.Get(r.Context(), id)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, it)
}
