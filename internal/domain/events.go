package domain

import "time"

type OrderItemMsg struct {
	Nombre           string `json:"nombre"`
	Cantidad         int    `json:"cantidad"`
	Especificaciones string `json:"especificaciones,omitempty"`
	Notas            string `json:"notas,omitempty"`
}

// OrderMessage is published to the comanda topic when a pedido is created.
type OrderMessage struct {
	PedidoID  int64          `json:"pedido_id"`
	Mesa      *int           `json:"mesa,omitempty"`
	Tipo      string         `json:"tipo"`
	Items     []OrderItemMsg `json:"items"`
	Total     float64        `json:"total"`
	CreatedAt time.Time      `json:"created_at"`
}

// StatusChangedMessage is published to the notifications fanout on every
// status transition.
type StatusChangedMessage struct {
	PedidoID  int64     `json:"pedido_id"`
	OldStatus Status    `json:"old_status"`
	NewStatus Status    `json:"new_status"`
	ChangedBy string    `json:"changed_by"`
	Timestamp time.Time `json:"timestamp"`
}
