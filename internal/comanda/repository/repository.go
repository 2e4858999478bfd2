package repository

import (
	"context"
	"database/sql"
	"fmt"

	"comanda-pos/internal/domain"
)

type ComandaRepositoryInterface interface {
	ListActiveOrders(ctx context.Context) ([]domain.Pedido, error)
}

type ComandaRepository struct {
	db *sql.DB
}

func NewComandaRepository(db *sql.DB) ComandaRepositoryInterface {
	return &ComandaRepository{db: db}
}

// ListActiveOrders returns every pedido still representing kitchen work
// (open or in_kitchen), oldest first, with its full line-item list.
// One joined query, so each order is seen with all of its items.
func (r *ComandaRepository) ListActiveOrders(ctx context.Context) ([]domain.Pedido, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.mesa, p.tipo, p.status, p.total, p.created_at, p.updated_at,
		       d.id, d.menu_item_id, d.nombre, d.precio, d.cantidad, d.especificaciones, d.notas
		FROM pedidos p
		JOIN detalle_pedidos d ON d.pedido_id = p.id
		WHERE p.status IN ('open', 'in_kitchen')
		ORDER BY p.created_at ASC, p.id ASC, d.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select active orders: %w", err)
	}
	defer rows.Close()

	// Empty feed is a valid result, never nil.
	pedidos := []domain.Pedido{}
	for rows.Next() {
		var p domain.Pedido
		var d domain.DetallePedido
		if err := rows.Scan(
			&p.ID, &p.Mesa, &p.Tipo, &p.Status, &p.Total, &p.CreatedAt, &p.UpdatedAt,
			&d.ID, &d.MenuItemID, &d.Nombre, &d.Precio, &d.Cantidad, &d.Especificaciones, &d.Notas,
		); err != nil {
			return nil, fmt.Errorf("scan active order: %w", err)
		}
		d.PedidoID = p.ID

		if n := len(pedidos); n > 0 && pedidos[n-1].ID == p.ID {
			pedidos[n-1].Items = append(pedidos[n-1].Items, d)
			continue
		}
		p.Items = []domain.DetallePedido{d}
		pedidos = append(pedidos, p)
	}
	return pedidos, rows.Err()
}
