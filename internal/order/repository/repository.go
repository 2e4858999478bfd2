package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"comanda-pos/internal/domain"
)

// uniqueOpenOrderIdx is the partial unique index that makes the
// "one open order per mesa" check an atomic insert instead of a
// check-then-act race.
const uniqueOpenOrderIdx = "one_open_order_per_mesa"

type OrdersRepositoryInterface interface {
	CreateOrderTx(ctx context.Context, tipo string, mesa *int, items []domain.NewItem) (domain.Pedido, error)
	AppendItemTx(ctx context.Context, pedidoID int64, item domain.NewItem) (domain.DetallePedido, error)
	AdvanceStatusTx(ctx context.Context, pedidoID int64, target domain.Status, changedBy string) (domain.Status, error)
	GetOrder(ctx context.Context, pedidoID int64) (domain.Pedido, error)
}

type OrdersRepository struct {
	db *sql.DB
}

func NewOrdersRepository(db *sql.DB) OrdersRepositoryInterface {
	return &OrdersRepository{db: db}
}

// CreateOrderTx persists the pedido and its line items as one unit.
// Line prices and names are snapshotted from menu_items inside the same
// transaction, so later menu edits never change an existing bill.
func (r *OrdersRepository) CreateOrderTx(ctx context.Context, tipo string, mesa *int, items []domain.NewItem) (domain.Pedido, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Pedido{}, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	p := domain.Pedido{Mesa: mesa, Tipo: tipo}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO pedidos (mesa, tipo, status, total, created_at, updated_at)
		VALUES ($1, $2, 'open', 0, now(), now())
		RETURNING id, status, created_at, updated_at
	`, mesa, tipo).Scan(&p.ID, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Pedido{}, mapConstraint(fmt.Errorf("insert pedido: %w", err))
	}

	for _, it := range items {
		d, err := insertDetalle(ctx, tx, p.ID, it)
		if err != nil {
			return domain.Pedido{}, err
		}
		p.Items = append(p.Items, d)
		p.Total += d.Precio * float64(d.Cantidad)
	}

	if _, err = tx.ExecContext(ctx, `UPDATE pedidos SET total=$2 WHERE id=$1`, p.ID, p.Total); err != nil {
		return domain.Pedido{}, fmt.Errorf("update total: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO pedido_status_log (pedido_id, status, changed_by, changed_at)
		VALUES ($1, 'open', $2, now())
	`, p.ID, "pos"); err != nil {
		return domain.Pedido{}, fmt.Errorf("insert status log: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return domain.Pedido{}, mapConstraint(fmt.Errorf("commit: %w", err))
	}
	return p, nil
}

// AppendItemTx adds a line to an order that is still open. The status
// row is locked so a concurrent kitchen transition cannot slip between
// the check and the insert.
func (r *OrdersRepository) AppendItemTx(ctx context.Context, pedidoID int64, item domain.NewItem) (domain.DetallePedido, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.DetallePedido{}, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var status string
	err = tx.QueryRowContext(ctx, `SELECT status FROM pedidos WHERE id=$1 FOR UPDATE`, pedidoID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DetallePedido{}, domain.ErrOrderNotFound
	}
	if err != nil {
		return domain.DetallePedido{}, fmt.Errorf("lock pedido: %w", err)
	}
	if domain.Status(status) != domain.StatusOpen {
		return domain.DetallePedido{}, fmt.Errorf("status %s: %w", status, domain.ErrOrderLocked)
	}

	d, err := insertDetalle(ctx, tx, pedidoID, item)
	if err != nil {
		return domain.DetallePedido{}, err
	}
	if _, err = tx.ExecContext(ctx, `
		UPDATE pedidos SET total = total + $2, updated_at = now() WHERE id=$1
	`, pedidoID, d.Precio*float64(d.Cantidad)); err != nil {
		return domain.DetallePedido{}, fmt.Errorf("update total: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return domain.DetallePedido{}, fmt.Errorf("commit: %w", err)
	}
	return d, nil
}

// AdvanceStatusTx moves the pedido one step forward along
// open -> in_kitchen -> served -> closed and appends an audit entry.
// Returns the previous status.
func (r *OrdersRepository) AdvanceStatusTx(ctx context.Context, pedidoID int64, target domain.Status, changedBy string) (domain.Status, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var raw string
	err = tx.QueryRowContext(ctx, `SELECT status FROM pedidos WHERE id=$1 FOR UPDATE`, pedidoID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrOrderNotFound
	}
	if err != nil {
		return "", fmt.Errorf("lock pedido: %w", err)
	}

	cur, _ := domain.ParseStatus(raw)
	if !cur.CanTransitionTo(target) {
		return cur, fmt.Errorf("%s -> %s: %w", cur, target, domain.ErrInvalidTransition)
	}

	if target == domain.StatusClosed {
		_, err = tx.ExecContext(ctx, `
			UPDATE pedidos SET status=$2, closed_at=now(), updated_at=now() WHERE id=$1
		`, pedidoID, string(target))
	} else {
		_, err = tx.ExecContext(ctx, `
			UPDATE pedidos SET status=$2, updated_at=now() WHERE id=$1
		`, pedidoID, string(target))
	}
	if err != nil {
		return cur, fmt.Errorf("update status: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO pedido_status_log (pedido_id, status, changed_by, changed_at)
		VALUES ($1, $2, $3, now())
	`, pedidoID, string(target), changedBy); err != nil {
		return cur, fmt.Errorf("insert status log: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return cur, fmt.Errorf("commit: %w", err)
	}
	return cur, nil
}

// GetOrder reads one pedido plus its items inside a single transaction,
// so the caller never sees a half-written order.
func (r *OrdersRepository) GetOrder(ctx context.Context, pedidoID int64) (domain.Pedido, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return domain.Pedido{}, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var p domain.Pedido
	err = tx.QueryRowContext(ctx, `
		SELECT id, mesa, tipo, status, total, created_at, updated_at, closed_at
		FROM pedidos WHERE id=$1
	`, pedidoID).Scan(&p.ID, &p.Mesa, &p.Tipo, &p.Status, &p.Total, &p.CreatedAt, &p.UpdatedAt, &p.ClosedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Pedido{}, domain.ErrOrderNotFound
	}
	if err != nil {
		return domain.Pedido{}, fmt.Errorf("select pedido: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT id, menu_item_id, nombre, precio, cantidad, especificaciones, notas
		FROM detalle_pedidos WHERE pedido_id=$1 ORDER BY id
	`, pedidoID)
	if err != nil {
		return domain.Pedido{}, fmt.Errorf("select detalle: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		d := domain.DetallePedido{PedidoID: p.ID}
		if err := rows.Scan(&d.ID, &d.MenuItemID, &d.Nombre, &d.Precio, &d.Cantidad, &d.Especificaciones, &d.Notas); err != nil {
			return domain.Pedido{}, fmt.Errorf("scan detalle: %w", err)
		}
		p.Items = append(p.Items, d)
	}
	if err := rows.Err(); err != nil {
		return domain.Pedido{}, err
	}
	return p, tx.Commit()
}

func insertDetalle(ctx context.Context, tx *sql.Tx, pedidoID int64, it domain.NewItem) (domain.DetallePedido, error) {
	d := domain.DetallePedido{PedidoID: pedidoID}
	err := tx.QueryRowContext(ctx, `
		INSERT INTO detalle_pedidos (pedido_id, menu_item_id, nombre, precio, cantidad, especificaciones, notas)
		SELECT $1, m.id, m.nombre, m.precio, $3, $4, $5
		FROM menu_items m WHERE m.id = $2
		RETURNING id, menu_item_id, nombre, precio, cantidad, especificaciones, notas
	`, pedidoID, it.MenuItemID, it.Cantidad, it.Especificaciones, it.Notas).
		Scan(&d.ID, &d.MenuItemID, &d.Nombre, &d.Precio, &d.Cantidad, &d.Especificaciones, &d.Notas)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DetallePedido{}, fmt.Errorf("menu item %d: %w", it.MenuItemID, domain.ErrMenuItemNotFound)
	}
	if err != nil {
		return domain.DetallePedido{}, fmt.Errorf("insert detalle: %w", err)
	}
	return d, nil
}

func mapConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == uniqueOpenOrderIdx {
		return domain.ErrTableOccupied
	}
	return err
}
