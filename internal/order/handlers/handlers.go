package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-playground/validator/v10"

	"comanda-pos/internal/common/httpx"
	"comanda-pos/internal/domain"
	"comanda-pos/internal/order/service"
)

type OrderHandler struct {
	service  service.OrderServiceInterface
	validate *validator.Validate
}

func NewOrderHandler(s service.OrderServiceInterface) *OrderHandler {
	return &OrderHandler{service: s, validate: validator.New()}
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.WriteProblem(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
		return
	}

	resp, err := h.service.CreateOrder(r.Context(), req)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, resp)
}

func (h *OrderHandler) AppendItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pedidoID(w, r)
	if !ok {
		return
	}
	var req domain.AppendItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.WriteProblem(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
		return
	}

	d, err := h.service.AppendItem(r.Context(), id, req)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, d)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pedidoID(w, r)
	if !ok {
		return
	}
	p, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func pedidoID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_id", "pedido id must be a positive integer")
		return 0, false
	}
	return id, true
}
