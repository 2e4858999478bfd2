package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-playground/validator/v10"

	"comanda-pos/internal/caja/service"
	"comanda-pos/internal/common/httpx"
	"comanda-pos/internal/domain"
)

type CajaHandler struct {
	service  service.CajaServiceInterface
	validate *validator.Validate
}

func NewCajaHandler(s service.CajaServiceInterface) *CajaHandler {
	return &CajaHandler{service: s, validate: validator.New()}
}

func (h *CajaHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	id, ok := pedidoID(w, r)
	if !ok {
		return
	}
	p, err := h.service.Bill(r.Context(), id)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *CajaHandler) CloseOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pedidoID(w, r)
	if !ok {
		return
	}
	var req domain.CloseOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.WriteProblem(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
		return
	}

	resp, err := h.service.CloseOrder(r.Context(), id, req)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *CajaHandler) DailyStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.DailyStats(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, stats)
}

func pedidoID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_id", "pedido id must be a positive integer")
		return 0, false
	}
	return id, true
}
