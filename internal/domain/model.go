package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order types. "Comer aquí" maps to dine_in, "para llevar" to takeout.
const (
	TipoDineIn  = "dine_in"
	TipoTakeout = "takeout"
)

// Mesa is a physical table. Take-away orders carry no mesa at all
// (NULL reference), so there is no reserved table number for them.
type Mesa struct {
	Numero      int    `json:"numero"`
	Descripcion string `json:"descripcion,omitempty"`
	Ocupada     bool   `json:"ocupada"`
	PedidoID    *int64 `json:"pedido_id,omitempty"`
}

// Pedido is the aggregate root of one seating or take-away transaction.
// Mesa is nil for take-away. Total is snapshotted at order time and is
// not affected by later menu price changes.
type Pedido struct {
	ID        int64           `json:"id"`
	Mesa      *int            `json:"mesa,omitempty"`
	Tipo      string          `json:"tipo"`
	Status    Status          `json:"status"`
	Total     float64         `json:"total"`
	Items     []DetallePedido `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	ClosedAt  *time.Time      `json:"closed_at,omitempty"`
}

// DetallePedido is a single line item. Nombre and Precio are copied
// from menu_items when the line is inserted.
type DetallePedido struct {
	ID               int64   `json:"id"`
	PedidoID         int64   `json:"pedido_id"`
	MenuItemID       int64   `json:"menu_item_id"`
	Nombre           string  `json:"nombre"`
	Precio           float64 `json:"precio"`
	Cantidad         int     `json:"cantidad"`
	Especificaciones string  `json:"especificaciones,omitempty"`
	Notas            string  `json:"notas,omitempty"`
}

// NewItem is the input shape for a line item before it is persisted.
type NewItem struct {
	MenuItemID       int64
	Cantidad         int
	Especificaciones string
	Notas            string
}

type MenuItem struct {
	ID          int64   `json:"id"`
	Nombre      string  `json:"nombre"`
	Precio      float64 `json:"precio"`
	Categoria   string  `json:"categoria"`
	Descripcion string  `json:"descripcion,omitempty"`
}

const (
	CategoriaComida = "comida"
	CategoriaBebida = "bebida"
	CategoriaPostre = "postre"
)

// Pago records a cashier checkout against a closed pedido.
type Pago struct {
	ID        int64     `json:"id"`
	PedidoID  int64     `json:"pedido_id"`
	Recibo    uuid.UUID `json:"recibo"`
	Metodo    string    `json:"metodo"`
	Importe   float64   `json:"importe"`
	Entregado float64   `json:"entregado"`
	Cambio    float64   `json:"cambio"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	MetodoEfectivo = "efectivo"
	MetodoTarjeta  = "tarjeta"
)

// Usuario is a cashier-side account for the caja login gate.
type Usuario struct {
	ID           int64
	Nombre       string
	PasswordHash string
	Rol          string
}

// StatusLog is one audit entry of a pedido status change.
type StatusLog struct {
	ID        int64     `json:"id"`
	PedidoID  int64     `json:"pedido_id"`
	Status    Status    `json:"status"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
	Notes     string    `json:"notes,omitempty"`
}
