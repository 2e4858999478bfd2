package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"comanda-pos/internal/domain"
	"comanda-pos/internal/order/repository"
)

// Publisher is the event side of the lifecycle: order submissions go to
// the comanda topic, every transition to the notifications fanout.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, msg domain.OrderMessage) error
	PublishStatusChanged(ctx context.Context, msg domain.StatusChangedMessage) error
}

// OrderServiceInterface is the single authority for creating and
// transitioning persisted pedidos.
type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.CreateOrderResponse, error)
	AppendItem(ctx context.Context, pedidoID int64, req domain.AppendItemRequest) (domain.DetallePedido, error)
	AdvanceStatus(ctx context.Context, pedidoID int64, target domain.Status, changedBy string) error
	GetOrder(ctx context.Context, pedidoID int64) (domain.Pedido, error)
}

type OrderService struct {
	repo repository.OrdersRepositoryInterface
	pub  Publisher
	lg   *zap.SugaredLogger
}

func NewOrderService(repo repository.OrdersRepositoryInterface, pub Publisher, lg *zap.SugaredLogger) OrderServiceInterface {
	return &OrderService{repo: repo, pub: pub, lg: lg}
}

func (s *OrderService) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.CreateOrderResponse, error) {
	if req.Mesa == nil && !req.ParaLlevar {
		return domain.CreateOrderResponse{}, domain.ErrInvalidSelection
	}
	if req.Mesa != nil && req.ParaLlevar {
		return domain.CreateOrderResponse{}, fmt.Errorf("mesa and para_llevar are mutually exclusive: %w", domain.ErrInvalidSelection)
	}
	if req.Mesa != nil && *req.Mesa < 1 {
		return domain.CreateOrderResponse{}, fmt.Errorf("mesa %d: %w", *req.Mesa, domain.ErrInvalidSelection)
	}
	if len(req.Items) == 0 {
		return domain.CreateOrderResponse{}, domain.ErrEmptyOrder
	}

	items := make([]domain.NewItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Cantidad < 1 {
			return domain.CreateOrderResponse{}, fmt.Errorf("menu item %d: %w", it.MenuItemID, domain.ErrInvalidQuantity)
		}
		items = append(items, domain.NewItem{
			MenuItemID:       it.MenuItemID,
			Cantidad:         it.Cantidad,
			Especificaciones: it.Especificaciones,
			Notas:            it.Notas,
		})
	}

	tipo := domain.TipoDineIn
	if req.ParaLlevar {
		tipo = domain.TipoTakeout
	}

	p, err := s.repo.CreateOrderTx(ctx, tipo, req.Mesa, items)
	if err != nil {
		return domain.CreateOrderResponse{}, err
	}

	// The store is the source of truth; a failed publish must not fail
	// the already-committed order.
	msg := domain.OrderMessage{
		PedidoID:  p.ID,
		Mesa:      p.Mesa,
		Tipo:      p.Tipo,
		Total:     p.Total,
		CreatedAt: p.CreatedAt,
	}
	for _, d := range p.Items {
		msg.Items = append(msg.Items, domain.OrderItemMsg{
			Nombre:           d.Nombre,
			Cantidad:         d.Cantidad,
			Especificaciones: d.Especificaciones,
			Notas:            d.Notas,
		})
	}
	if err := s.pub.PublishOrderCreated(ctx, msg); err != nil {
		s.lg.Warnw("order_created_publish_failed", "pedido_id", p.ID, "error", err)
	}

	s.lg.Infow("order_created", "pedido_id", p.ID, "tipo", p.Tipo, "total", p.Total, "items", len(p.Items))
	return domain.CreateOrderResponse{PedidoID: p.ID, Status: p.Status, Total: p.Total}, nil
}

func (s *OrderService) AppendItem(ctx context.Context, pedidoID int64, req domain.AppendItemRequest) (domain.DetallePedido, error) {
	if req.Cantidad < 1 {
		return domain.DetallePedido{}, fmt.Errorf("menu item %d: %w", req.MenuItemID, domain.ErrInvalidQuantity)
	}
	d, err := s.repo.AppendItemTx(ctx, pedidoID, domain.NewItem{
		MenuItemID:       req.MenuItemID,
		Cantidad:         req.Cantidad,
		Especificaciones: req.Especificaciones,
		Notas:            req.Notas,
	})
	if err != nil {
		return domain.DetallePedido{}, err
	}
	s.lg.Infow("item_appended", "pedido_id", pedidoID, "menu_item_id", d.MenuItemID, "cantidad", d.Cantidad)
	return d, nil
}

func (s *OrderService) AdvanceStatus(ctx context.Context, pedidoID int64, target domain.Status, changedBy string) error {
	if !target.Valid() {
		return fmt.Errorf("unknown status %q: %w", target, domain.ErrInvalidTransition)
	}
	old, err := s.repo.AdvanceStatusTx(ctx, pedidoID, target, changedBy)
	if err != nil {
		return err
	}

	if err := s.pub.PublishStatusChanged(ctx, domain.StatusChangedMessage{
		PedidoID:  pedidoID,
		OldStatus: old,
		NewStatus: target,
		ChangedBy: changedBy,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		s.lg.Warnw("status_changed_publish_failed", "pedido_id", pedidoID, "error", err)
	}

	s.lg.Infow("status_changed", "pedido_id", pedidoID, "from", old, "to", target, "by", changedBy)
	return nil
}

func (s *OrderService) GetOrder(ctx context.Context, pedidoID int64) (domain.Pedido, error) {
	return s.repo.GetOrder(ctx, pedidoID)
}
