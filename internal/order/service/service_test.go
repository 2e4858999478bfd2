package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"comanda-pos/internal/domain"
)

// fakeOrdersRepo keeps pedidos in memory and enforces the same rules the
// database does: one active order per mesa, forward-only transitions,
// append only while open.
type fakeOrdersRepo struct {
	menu   map[int64]domain.MenuItem
	orders map[int64]*domain.Pedido
	nextID int64
}

func newFakeOrdersRepo() *fakeOrdersRepo {
	return &fakeOrdersRepo{
		menu: map[int64]domain.MenuItem{
			1: {ID: 1, Nombre: "Tacos al pastor", Precio: 95.0},
			2: {ID: 2, Nombre: "Agua de horchata", Precio: 30.0},
			3: {ID: 3, Nombre: "Flan", Precio: 45.0},
		},
		orders: map[int64]*domain.Pedido{},
	}
}

func (f *fakeOrdersRepo) CreateOrderTx(_ context.Context, tipo string, mesa *int, items []domain.NewItem) (domain.Pedido, error) {
	if mesa != nil {
		for _, p := range f.orders {
			if p.Mesa != nil && *p.Mesa == *mesa && p.Status.Active() {
				return domain.Pedido{}, domain.ErrTableOccupied
			}
		}
	}
	f.nextID++
	now := time.Now().UTC()
	p := &domain.Pedido{ID: f.nextID, Mesa: mesa, Tipo: tipo, Status: domain.StatusOpen, CreatedAt: now, UpdatedAt: now}
	for _, it := range items {
		m, ok := f.menu[it.MenuItemID]
		if !ok {
			return domain.Pedido{}, fmt.Errorf("menu item %d: %w", it.MenuItemID, domain.ErrMenuItemNotFound)
		}
		p.Items = append(p.Items, domain.DetallePedido{
			PedidoID:         p.ID,
			MenuItemID:       m.ID,
			Nombre:           m.Nombre,
			Precio:           m.Precio,
			Cantidad:         it.Cantidad,
			Especificaciones: it.Especificaciones,
			Notas:            it.Notas,
		})
		p.Total += m.Precio * float64(it.Cantidad)
	}
	f.orders[p.ID] = p
	return *p, nil
}

func (f *fakeOrdersRepo) AppendItemTx(_ context.Context, pedidoID int64, item domain.NewItem) (domain.DetallePedido, error) {
	p, ok := f.orders[pedidoID]
	if !ok {
		return domain.DetallePedido{}, domain.ErrOrderNotFound
	}
	if p.Status != domain.StatusOpen {
		return domain.DetallePedido{}, fmt.Errorf("status %s: %w", p.Status, domain.ErrOrderLocked)
	}
	m, ok := f.menu[item.MenuItemID]
	if !ok {
		return domain.DetallePedido{}, domain.ErrMenuItemNotFound
	}
	d := domain.DetallePedido{
		PedidoID:   pedidoID,
		MenuItemID: m.ID,
		Nombre:     m.Nombre,
		Precio:     m.Precio,
		Cantidad:   item.Cantidad,
	}
	p.Items = append(p.Items, d)
	p.Total += m.Precio * float64(item.Cantidad)
	return d, nil
}

func (f *fakeOrdersRepo) AdvanceStatusTx(_ context.Context, pedidoID int64, target domain.Status, _ string) (domain.Status, error) {
	p, ok := f.orders[pedidoID]
	if !ok {
		return "", domain.ErrOrderNotFound
	}
	if !p.Status.CanTransitionTo(target) {
		return p.Status, fmt.Errorf("%s -> %s: %w", p.Status, target, domain.ErrInvalidTransition)
	}
	old := p.Status
	p.Status = target
	return old, nil
}

func (f *fakeOrdersRepo) GetOrder(_ context.Context, pedidoID int64) (domain.Pedido, error) {
	p, ok := f.orders[pedidoID]
	if !ok {
		return domain.Pedido{}, domain.ErrOrderNotFound
	}
	return *p, nil
}

type fakePublisher struct {
	created []domain.OrderMessage
	changed []domain.StatusChangedMessage
	err     error
}

func (f *fakePublisher) PublishOrderCreated(_ context.Context, msg domain.OrderMessage) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, msg)
	return nil
}

func (f *fakePublisher) PublishStatusChanged(_ context.Context, msg domain.StatusChangedMessage) error {
	if f.err != nil {
		return f.err
	}
	f.changed = append(f.changed, msg)
	return nil
}

func newTestService() (OrderServiceInterface, *fakeOrdersRepo, *fakePublisher) {
	repo := newFakeOrdersRepo()
	pub := &fakePublisher{}
	return NewOrderService(repo, pub, zap.NewNop().Sugar()), repo, pub
}

func mesa(n int) *int { return &n }

func TestCreateOrderDineIn(t *testing.T) {
	svc, repo, pub := newTestService()

	resp, err := svc.CreateOrder(context.Background(), domain.CreateOrderRequest{
		Mesa: mesa(5),
		Items: []domain.CreateOrderItemRequest{
			{MenuItemID: 1, Cantidad: 2, Especificaciones: "sin cebolla"},
			{MenuItemID: 2, Cantidad: 1},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder = %v", err)
	}
	if resp.Status != domain.StatusOpen {
		t.Errorf("status = %s, want open", resp.Status)
	}
	if want := 2*95.0 + 30.0; resp.Total != want {
		t.Errorf("total = %.2f, want %.2f", resp.Total, want)
	}

	p, err := svc.GetOrder(context.Background(), resp.PedidoID)
	if err != nil {
		t.Fatalf("GetOrder = %v", err)
	}
	if len(p.Items) != 2 {
		t.Errorf("persisted %d items, want 2", len(p.Items))
	}
	if p.Items[0].Nombre != "Tacos al pastor" || p.Items[0].Precio != 95.0 {
		t.Errorf("line snapshot = %q %.2f, want menu values", p.Items[0].Nombre, p.Items[0].Precio)
	}
	if p.Tipo != domain.TipoDineIn {
		t.Errorf("tipo = %s, want %s", p.Tipo, domain.TipoDineIn)
	}

	if len(pub.created) != 1 || pub.created[0].PedidoID != resp.PedidoID {
		t.Errorf("expected one order_created event for pedido %d, got %+v", resp.PedidoID, pub.created)
	}
	_ = repo
}

func TestCreateOrderTakeAway(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.CreateOrder(context.Background(), domain.CreateOrderRequest{
		ParaLlevar: true,
		Items:      []domain.CreateOrderItemRequest{{MenuItemID: 3, Cantidad: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder = %v", err)
	}
	p, _ := svc.GetOrder(context.Background(), resp.PedidoID)
	if p.Mesa != nil {
		t.Errorf("take-away order has mesa %d, want none", *p.Mesa)
	}
	if p.Tipo != domain.TipoTakeout {
		t.Errorf("tipo = %s, want %s", p.Tipo, domain.TipoTakeout)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	items := []domain.CreateOrderItemRequest{{MenuItemID: 1, Cantidad: 1}}

	tests := []struct {
		name string
		req  domain.CreateOrderRequest
		want error
	}{
		{"no selection", domain.CreateOrderRequest{Items: items}, domain.ErrInvalidSelection},
		{"both mesa and para_llevar", domain.CreateOrderRequest{Mesa: mesa(2), ParaLlevar: true, Items: items}, domain.ErrInvalidSelection},
		{"mesa zero", domain.CreateOrderRequest{Mesa: mesa(0), Items: items}, domain.ErrInvalidSelection},
		{"empty items", domain.CreateOrderRequest{Mesa: mesa(2)}, domain.ErrEmptyOrder},
		{"zero cantidad", domain.CreateOrderRequest{Mesa: mesa(2), Items: []domain.CreateOrderItemRequest{{MenuItemID: 1, Cantidad: 0}}}, domain.ErrInvalidQuantity},
		{"unknown menu item", domain.CreateOrderRequest{Mesa: mesa(2), Items: []domain.CreateOrderItemRequest{{MenuItemID: 99, Cantidad: 1}}}, domain.ErrMenuItemNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateOrder(ctx, tt.req); !errors.Is(err, tt.want) {
				t.Errorf("CreateOrder = %v, want %v", err, tt.want)
			}
		})
	}
	if len(repo.orders) != 0 {
		t.Errorf("rejected orders must not be persisted, store has %d", len(repo.orders))
	}
}

func TestTableExclusivity(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	items := []domain.CreateOrderItemRequest{{MenuItemID: 1, Cantidad: 1}}

	first, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{Mesa: mesa(5), Items: items})
	if err != nil {
		t.Fatalf("first order: %v", err)
	}
	if _, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{Mesa: mesa(5), Items: items}); !errors.Is(err, domain.ErrTableOccupied) {
		t.Fatalf("second order on mesa 5 = %v, want ErrTableOccupied", err)
	}
	// A different mesa is fine.
	if _, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{Mesa: mesa(6), Items: items}); err != nil {
		t.Fatalf("mesa 6: %v", err)
	}
	// Take-away orders never hold a mesa; many can coexist.
	for i := 0; i < 3; i++ {
		if _, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{ParaLlevar: true, Items: items}); err != nil {
			t.Fatalf("take-away #%d: %v", i, err)
		}
	}

	// Closing the order frees the mesa for the next party.
	for _, st := range []domain.Status{domain.StatusInKitchen, domain.StatusServed, domain.StatusClosed} {
		if err := svc.AdvanceStatus(ctx, first.PedidoID, st, "test"); err != nil {
			t.Fatalf("advance to %s: %v", st, err)
		}
	}
	if _, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{Mesa: mesa(5), Items: items}); err != nil {
		t.Fatalf("mesa 5 after close: %v", err)
	}
}

// The full lifecycle as lived from the floor: once the comanda is in the
// kitchen the ticket is locked, and closing cannot skip served.
func TestLifecycleLocksAndOrdering(t *testing.T) {
	svc, _, pub := newTestService()
	ctx := context.Background()

	resp, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{
		Mesa: mesa(5),
		Items: []domain.CreateOrderItemRequest{
			{MenuItemID: 1, Cantidad: 2},
			{MenuItemID: 2, Cantidad: 1},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder = %v", err)
	}

	// Still open: the waiter can add a line.
	if _, err := svc.AppendItem(ctx, resp.PedidoID, domain.AppendItemRequest{MenuItemID: 3, Cantidad: 1}); err != nil {
		t.Fatalf("AppendItem while open = %v", err)
	}

	if err := svc.AdvanceStatus(ctx, resp.PedidoID, domain.StatusInKitchen, "comanda"); err != nil {
		t.Fatalf("advance to in_kitchen = %v", err)
	}

	// In the kitchen: the ticket is locked.
	if _, err := svc.AppendItem(ctx, resp.PedidoID, domain.AppendItemRequest{MenuItemID: 3, Cantidad: 1}); !errors.Is(err, domain.ErrOrderLocked) {
		t.Errorf("AppendItem in kitchen = %v, want ErrOrderLocked", err)
	}

	// Skipping served is not allowed.
	if err := svc.AdvanceStatus(ctx, resp.PedidoID, domain.StatusClosed, "caja"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("in_kitchen -> closed = %v, want ErrInvalidTransition", err)
	}
	// Neither is going backwards.
	if err := svc.AdvanceStatus(ctx, resp.PedidoID, domain.StatusOpen, "comanda"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("in_kitchen -> open = %v, want ErrInvalidTransition", err)
	}

	if err := svc.AdvanceStatus(ctx, resp.PedidoID, domain.StatusServed, "comanda"); err != nil {
		t.Fatalf("advance to served = %v", err)
	}
	if err := svc.AdvanceStatus(ctx, resp.PedidoID, domain.StatusClosed, "caja"); err != nil {
		t.Fatalf("advance to closed = %v", err)
	}
	// Closed is terminal.
	if err := svc.AdvanceStatus(ctx, resp.PedidoID, domain.StatusInKitchen, "comanda"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("closed -> in_kitchen = %v, want ErrInvalidTransition", err)
	}

	if len(pub.changed) != 3 {
		t.Fatalf("published %d status events, want 3", len(pub.changed))
	}
	if pub.changed[0].OldStatus != domain.StatusOpen || pub.changed[2].NewStatus != domain.StatusClosed {
		t.Errorf("unexpected event sequence: %+v", pub.changed)
	}
}

func TestAdvanceStatusRejectsUnknownTarget(t *testing.T) {
	svc, _, _ := newTestService()
	if err := svc.AdvanceStatus(context.Background(), 1, domain.Status("paid"), "caja"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("unknown status = %v, want ErrInvalidTransition", err)
	}
}

func TestAppendItemValidatesQuantity(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.AppendItem(context.Background(), 1, domain.AppendItemRequest{MenuItemID: 1, Cantidad: 0}); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Errorf("AppendItem qty 0 = %v, want ErrInvalidQuantity", err)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.GetOrder(context.Background(), 404); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("GetOrder = %v, want ErrOrderNotFound", err)
	}
}

// A broken broker must never fail an already-committed order.
func TestPublishFailureDoesNotFailOrder(t *testing.T) {
	repo := newFakeOrdersRepo()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewOrderService(repo, pub, zap.NewNop().Sugar())
	ctx := context.Background()

	resp, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{
		Mesa:  mesa(2),
		Items: []domain.CreateOrderItemRequest{{MenuItemID: 1, Cantidad: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder with dead broker = %v", err)
	}
	if err := svc.AdvanceStatus(ctx, resp.PedidoID, domain.StatusInKitchen, "comanda"); err != nil {
		t.Fatalf("AdvanceStatus with dead broker = %v", err)
	}
}
