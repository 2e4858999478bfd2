package repository

import (
	"context"
	"database/sql"
	"fmt"

	"comanda-pos/internal/domain"
)

type MesasRepositoryInterface interface {
	ListTables(ctx context.Context) ([]domain.Mesa, error)
}

type MesasRepository struct {
	db *sql.DB
}

func NewMesasRepository(db *sql.DB) MesasRepositoryInterface {
	return &MesasRepository{db: db}
}

// ListTables returns every mesa with its occupancy derived from orders
// that have not been paid yet (open, in kitchen or served).
func (r *MesasRepository) ListTables(ctx context.Context) ([]domain.Mesa, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.numero, m.descripcion, p.id
		FROM mesas m
		LEFT JOIN pedidos p
		  ON p.mesa = m.numero AND p.status IN ('open', 'in_kitchen', 'served')
		ORDER BY m.numero
	`)
	if err != nil {
		return nil, fmt.Errorf("select mesas: %w", err)
	}
	defer rows.Close()

	mesas := []domain.Mesa{}
	for rows.Next() {
		var m domain.Mesa
		var pedido sql.NullInt64
		if err := rows.Scan(&m.Numero, &m.Descripcion, &pedido); err != nil {
			return nil, fmt.Errorf("scan mesa: %w", err)
		}
		if pedido.Valid {
			m.Ocupada = true
			m.PedidoID = &pedido.Int64
		}
		mesas = append(mesas, m)
	}
	return mesas, rows.Err()
}
