package service

import (
	"context"

	"comanda-pos/internal/comanda/repository"
	"comanda-pos/internal/domain"
)

// changedBy value written to the status log for kitchen actions.
const actor = "comanda"

// Lifecycle is the slice of the order lifecycle manager the kitchen
// needs: all transitions route through it.
type Lifecycle interface {
	AdvanceStatus(ctx context.Context, pedidoID int64, target domain.Status, changedBy string) error
}

type ComandaServiceInterface interface {
	ListActiveOrders(ctx context.Context) ([]domain.Pedido, error)
	StartPreparing(ctx context.Context, pedidoID int64) error
	MarkServed(ctx context.Context, pedidoID int64) error
}

type ComandaService struct {
	repo      repository.ComandaRepositoryInterface
	lifecycle Lifecycle
}

func NewComandaService(repo repository.ComandaRepositoryInterface, lifecycle Lifecycle) ComandaServiceInterface {
	return &ComandaService{repo: repo, lifecycle: lifecycle}
}

func (s *ComandaService) ListActiveOrders(ctx context.Context) ([]domain.Pedido, error) {
	return s.repo.ListActiveOrders(ctx)
}

func (s *ComandaService) StartPreparing(ctx context.Context, pedidoID int64) error {
	return s.lifecycle.AdvanceStatus(ctx, pedidoID, domain.StatusInKitchen, actor)
}

func (s *ComandaService) MarkServed(ctx context.Context, pedidoID int64) error {
	return s.lifecycle.AdvanceStatus(ctx, pedidoID, domain.StatusServed, actor)
}
