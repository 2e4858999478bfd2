package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"comanda-pos/internal/caja/repository"
	"comanda-pos/internal/domain"
)

// Publisher mirrors the lifecycle's notification side: closing an order
// is a status transition like any other.
type Publisher interface {
	PublishStatusChanged(ctx context.Context, msg domain.StatusChangedMessage) error
}

// OrderReader gives the cashier the bill view without owning order state.
type OrderReader interface {
	GetOrder(ctx context.Context, pedidoID int64) (domain.Pedido, error)
}

type CajaServiceInterface interface {
	CloseOrder(ctx context.Context, pedidoID int64, req domain.CloseOrderRequest) (domain.CloseOrderResponse, error)
	Bill(ctx context.Context, pedidoID int64) (domain.Pedido, error)
	DailyStats(ctx context.Context, date string) (domain.DailyStats, error)
}

type CajaService struct {
	repo      repository.CajaRepositoryInterface
	orders    OrderReader
	pub       Publisher
	closeFrom []domain.Status
	lg        *zap.SugaredLogger
}

func NewCajaService(repo repository.CajaRepositoryInterface, orders OrderReader, pub Publisher, closeFrom []domain.Status, lg *zap.SugaredLogger) CajaServiceInterface {
	return &CajaService{repo: repo, orders: orders, pub: pub, closeFrom: closeFrom, lg: lg}
}

func (s *CajaService) CloseOrder(ctx context.Context, pedidoID int64, req domain.CloseOrderRequest) (domain.CloseOrderResponse, error) {
	recibo := uuid.New()
	pago, old, err := s.repo.CloseOrderTx(ctx, pedidoID, s.closeFrom, req.Metodo, req.Entregado, recibo)
	if err != nil {
		return domain.CloseOrderResponse{}, err
	}

	if err := s.pub.PublishStatusChanged(ctx, domain.StatusChangedMessage{
		PedidoID:  pedidoID,
		OldStatus: old,
		NewStatus: domain.StatusClosed,
		ChangedBy: "caja",
		Timestamp: time.Now().UTC(),
	}); err != nil {
		s.lg.Warnw("close_publish_failed", "pedido_id", pedidoID, "error", err)
	}

	s.lg.Infow("order_closed", "pedido_id", pedidoID, "recibo", pago.Recibo.String(), "metodo", pago.Metodo, "importe", pago.Importe)
	return domain.CloseOrderResponse{
		Recibo: pago.Recibo.String(),
		Total:  pago.Importe,
		Cambio: pago.Cambio,
	}, nil
}

func (s *CajaService) Bill(ctx context.Context, pedidoID int64) (domain.Pedido, error) {
	return s.orders.GetOrder(ctx, pedidoID)
}

func (s *CajaService) DailyStats(ctx context.Context, date string) (domain.DailyStats, error) {
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	return s.repo.GetDailyStats(ctx, date)
}
