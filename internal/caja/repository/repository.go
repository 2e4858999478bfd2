package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"comanda-pos/internal/domain"
)

type CajaRepositoryInterface interface {
	CloseOrderTx(ctx context.Context, pedidoID int64, allowedFrom []domain.Status, metodo string, entregado float64, recibo uuid.UUID) (domain.Pago, domain.Status, error)
	GetDailyStats(ctx context.Context, date string) (domain.DailyStats, error)
}

type CajaRepository struct {
	db *sql.DB
}

func NewCajaRepository(db *sql.DB) CajaRepositoryInterface {
	return &CajaRepository{db: db}
}

// CloseOrderTx finalizes billing: locks the pedido, checks the close
// policy, records the pago and moves the order to closed, all in one
// transaction. Returns the pago and the status the order closed from.
func (r *CajaRepository) CloseOrderTx(ctx context.Context, pedidoID int64, allowedFrom []domain.Status, metodo string, entregado float64, recibo uuid.UUID) (domain.Pago, domain.Status, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Pago{}, "", fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var raw string
	var total float64
	err = tx.QueryRowContext(ctx, `SELECT status, total FROM pedidos WHERE id=$1 FOR UPDATE`, pedidoID).Scan(&raw, &total)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Pago{}, "", domain.ErrOrderNotFound
	}
	if err != nil {
		return domain.Pago{}, "", fmt.Errorf("lock pedido: %w", err)
	}

	cur, _ := domain.ParseStatus(raw)
	pago, err := buildPago(cur, allowedFrom, total, metodo, entregado, recibo)
	if err != nil {
		return domain.Pago{}, cur, err
	}
	pago.PedidoID = pedidoID

	err = tx.QueryRowContext(ctx, `
		INSERT INTO pagos (pedido_id, recibo, metodo, importe, entregado, cambio, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		RETURNING id, created_at
	`, pedidoID, recibo.String(), pago.Metodo, pago.Importe, pago.Entregado, pago.Cambio).Scan(&pago.ID, &pago.CreatedAt)
	if err != nil {
		return domain.Pago{}, cur, fmt.Errorf("insert pago: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE pedidos SET status='closed', closed_at=now(), updated_at=now() WHERE id=$1
	`, pedidoID); err != nil {
		return domain.Pago{}, cur, fmt.Errorf("update status: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO pedido_status_log (pedido_id, status, changed_by, changed_at)
		VALUES ($1, 'closed', 'caja', now())
	`, pedidoID); err != nil {
		return domain.Pago{}, cur, fmt.Errorf("insert status log: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return domain.Pago{}, cur, fmt.Errorf("commit: %w", err)
	}
	return pago, cur, nil
}

func (r *CajaRepository) GetDailyStats(ctx context.Context, date string) (domain.DailyStats, error) {
	var s domain.DailyStats
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)::int,
		       COALESCE(SUM(total), 0)::float8,
		       COALESCE(AVG(total), 0)::float8
		FROM pedidos
		WHERE status = 'closed' AND closed_at::date = $1::date
	`, date).Scan(&s.PedidosCerrados, &s.Ingresos, &s.TicketMedio)
	if err != nil {
		return domain.DailyStats{}, fmt.Errorf("daily stats: %w", err)
	}
	return s, nil
}

func closableFrom(cur domain.Status, allowed []domain.Status) bool {
	for _, st := range allowed {
		if cur == st {
			return true
		}
	}
	return false
}

// buildPago applies the close policy and the cash rules: cash must cover
// the bill and yields change; card payments are taken at the exact total.
func buildPago(cur domain.Status, allowedFrom []domain.Status, total float64, metodo string, entregado float64, recibo uuid.UUID) (domain.Pago, error) {
	if !closableFrom(cur, allowedFrom) {
		return domain.Pago{}, fmt.Errorf("%s -> %s: %w", cur, domain.StatusClosed, domain.ErrInvalidTransition)
	}

	pago := domain.Pago{
		Recibo:    recibo,
		Metodo:    metodo,
		Importe:   total,
		Entregado: entregado,
	}
	if metodo == domain.MetodoEfectivo {
		if entregado < total {
			return domain.Pago{}, fmt.Errorf("entregado %.2f < total %.2f: %w", entregado, total, domain.ErrInsufficientPayment)
		}
		pago.Cambio = entregado - total
	} else {
		pago.Entregado = total
	}
	return pago, nil
}
