package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"comanda-pos/internal/comanda/service"
	"comanda-pos/internal/common/httpx"
	"comanda-pos/internal/domain"
)

type ComandaHandler struct {
	service service.ComandaServiceInterface
}

func NewComandaHandler(s service.ComandaServiceInterface) *ComandaHandler {
	return &ComandaHandler{service: s}
}

func (h *ComandaHandler) ListActiveOrders(w http.ResponseWriter, r *http.Request) {
	pedidos, err := h.service.ListActiveOrders(r.Context())
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"pedidos": pedidos,
		"count":   len(pedidos),
	})
}

func (h *ComandaHandler) StartPreparing(w http.ResponseWriter, r *http.Request) {
	h.advance(w, r, h.service.StartPreparing, domain.StatusInKitchen)
}

func (h *ComandaHandler) MarkServed(w http.ResponseWriter, r *http.Request) {
	h.advance(w, r, h.service.MarkServed, domain.StatusServed)
}

func (h *ComandaHandler) advance(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, pedidoID int64) error, target domain.Status) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_id", "pedido id must be a positive integer")
		return
	}
	if err := fn(r.Context(), id); err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"pedido_id": id, "status": target})
}
