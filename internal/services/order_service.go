package services

import (
	"context"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/jackc/pgx/v5"
)

// OrderQueryService serves the read side of orders
type OrderQueryService interface {
	ListOrders(ctx context.Context, userID string) ([]*models.OrderSummary, error)
	GetAllOrders(ctx context.Context, userID string) ([]*models.OrderDetailRow, error)
	GetOrderDetail(ctx context.Context, orderID string) ([]*models.OrderDetailRow, error)
}

type orderQueryService struct {
	db        repositories.DBTX
	orderRepo repositories.OrderRepository
}

func NewOrderQueryService(db repositories.DBTX, orderRepo repositories.OrderRepository) OrderQueryService {
	return &orderQueryService{
		db:        db,
		orderRepo: orderRepo,
	}
}

func (s *orderQueryService) ListOrders(ctx context.Context, userID string) ([]*models.OrderSummary, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for %s: %w", userID, err)
	}
	return orders, nil
}

// GetAllOrders reads every order of the user in one read-only transaction
// so the ids and their details come from the same snapshot.
func (s *orderQueryService) GetAllOrders(ctx context.Context, userID string) ([]*models.OrderDetailRow, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to begin read transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	ids, err := s.orderRepo.ListIDsByUser(ctx, tx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order ids for %s: %w", userID, err)
	}

	rows := []*models.OrderDetailRow{}
	for _, id := range ids {
		detail, err := s.orderRepo.GetDetail(ctx, tx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load order %s: %w", id, err)
		}
		rows = append(rows, detail...)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to end read transaction: %w", err)
	}
	return rows, nil
}

func (s *orderQueryService) GetOrderDetail(ctx context.Context, orderID string) ([]*models.OrderDetailRow, error) {
	rows, err := s.orderRepo.GetDetail(ctx, s.db, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order %s: %w", orderID, err)
	}
	return rows, nil
}
