package domain

import "time"

type CreateOrderItemRequest struct {
	MenuItemID       int64  `json:"menu_item_id" validate:"required,gt=0"`
	Cantidad         int    `json:"cantidad" validate:"required,gte=1"`
	Especificaciones string `json:"especificaciones,omitempty"`
	Notas            string `json:"notas,omitempty"`
}

// CreateOrderRequest carries either a mesa number or para_llevar=true.
type CreateOrderRequest struct {
	Mesa       *int                     `json:"mesa,omitempty" validate:"omitempty,gte=1"`
	ParaLlevar bool                     `json:"para_llevar,omitempty"`
	Items      []CreateOrderItemRequest `json:"items" validate:"min=1,dive"`
}

type CreateOrderResponse struct {
	PedidoID int64   `json:"pedido_id"`
	Status   Status  `json:"status"`
	Total    float64 `json:"total"`
}

type AppendItemRequest struct {
	MenuItemID       int64  `json:"menu_item_id" validate:"required,gt=0"`
	Cantidad         int    `json:"cantidad" validate:"required,gte=1"`
	Especificaciones string `json:"especificaciones,omitempty"`
	Notas            string `json:"notas,omitempty"`
}

type CloseOrderRequest struct {
	Metodo    string  `json:"metodo" validate:"required,oneof=efectivo tarjeta"`
	Entregado float64 `json:"entregado" validate:"gte=0"`
}

type CloseOrderResponse struct {
	Recibo string  `json:"recibo"`
	Total  float64 `json:"total"`
	Cambio float64 `json:"cambio"`
}

type LoginRequest struct {
	Nombre   string `json:"nombre" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DailyStats aggregates closed orders for one calendar day.
type DailyStats struct {
	PedidosCerrados int     `json:"pedidos_cerrados"`
	Ingresos        float64 `json:"ingresos"`
	TicketMedio     float64 `json:"ticket_medio"`
}
