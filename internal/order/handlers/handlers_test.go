package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"

	"comanda-pos/internal/domain"
)

type stubOrderService struct {
	createResp domain.CreateOrderResponse
	createErr  error
	pedido     domain.Pedido
	getErr     error
}

func (s *stubOrderService) CreateOrder(_ context.Context, _ domain.CreateOrderRequest) (domain.CreateOrderResponse, error) {
	return s.createResp, s.createErr
}

func (s *stubOrderService) AppendItem(_ context.Context, _ int64, _ domain.AppendItemRequest) (domain.DetallePedido, error) {
	return domain.DetallePedido{}, s.createErr
}

func (s *stubOrderService) AdvanceStatus(_ context.Context, _ int64, _ domain.Status, _ string) error {
	return nil
}

func (s *stubOrderService) GetOrder(_ context.Context, _ int64) (domain.Pedido, error) {
	return s.pedido, s.getErr
}

func testRouter(svc *stubOrderService) http.Handler {
	h := NewOrderHandler(svc)
	r := chi.NewRouter()
	r.Post("/pedidos", h.CreateOrder)
	r.Get("/pedidos/{id}", h.GetOrder)
	r.Post("/pedidos/{id}/items", h.AppendItem)
	return r
}

func TestCreateOrderCreated(t *testing.T) {
	svc := &stubOrderService{createResp: domain.CreateOrderResponse{PedidoID: 3, Status: domain.StatusOpen, Total: 120.0}}
	body := `{"mesa": 5, "items": [{"menu_item_id": 1, "cantidad": 2}]}`

	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/pedidos", bytes.NewBufferString(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp domain.CreateOrderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.PedidoID != 3 || resp.Total != 120.0 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestCreateOrderBadJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(&stubOrderService{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/pedidos", bytes.NewBufferString("{")))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("code = %d, want 400", rec.Code)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	// Empty item list fails validation before the service is reached.
	rec := httptest.NewRecorder()
	testRouter(&stubOrderService{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/pedidos", bytes.NewBufferString(`{"mesa": 5, "items": []}`)))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("code = %d, want 422", rec.Code)
	}
}

func TestCreateOrderTableOccupied(t *testing.T) {
	svc := &stubOrderService{createErr: domain.ErrTableOccupied}
	body := `{"mesa": 5, "items": [{"menu_item_id": 1, "cantidad": 1}]}`

	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/pedidos", bytes.NewBufferString(body)))
	if rec.Code != http.StatusConflict {
		t.Errorf("code = %d, want 409", rec.Code)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	svc := &stubOrderService{getErr: domain.ErrOrderNotFound}
	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pedidos/42", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("code = %d, want 404", rec.Code)
	}
}

func TestBadPedidoID(t *testing.T) {
	for _, path := range []string{"/pedidos/abc", "/pedidos/0", "/pedidos/-1"} {
		rec := httptest.NewRecorder()
		testRouter(&stubOrderService{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("GET %s = %d, want 400", path, rec.Code)
		}
	}
}

func TestAppendItemLocked(t *testing.T) {
	svc := &stubOrderService{createErr: domain.ErrOrderLocked}
	body := `{"menu_item_id": 2, "cantidad": 1}`

	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/pedidos/7/items", bytes.NewBufferString(body)))
	if rec.Code != http.StatusConflict {
		t.Errorf("code = %d, want 409", rec.Code)
	}
}
