package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// OrderIDGenerator produces order identifiers
type OrderIDGenerator interface {
	NewOrderID() string
}

// DateOrderIDGenerator builds ids as UTC YYYYMMDD followed by a zero-padded 4-digit random suffix.
// Collisions are possible and are left to the primary key to detect.
type DateOrderIDGenerator struct {
	Now    func() time.Time
	Suffix func() int
}

func NewDateOrderIDGenerator() *DateOrderIDGenerator {
	return &DateOrderIDGenerator{
		Now:    time.Now,
		Suffix: func() int { return rand.IntN(10000) },
	}
}

func (g *DateOrderIDGenerator) NewOrderID() string {
	return g.Now().UTC().Format("20060102") + fmt.Sprintf("%04d", g.Suffix()%10000)
}

// OrderWriter stages an order header and its sub-orders on the caller's transaction
type OrderWriter interface {
	Write(ctx context.Context, q repositories.Querier, req *models.OrderRequest) (string, error)
}

type orderWriter struct {
	orderRepo repositories.OrderRepository
	ids       OrderIDGenerator
}

func NewOrderWriter(orderRepo repositories.OrderRepository, ids OrderIDGenerator) OrderWriter {
	return &orderWriter{
		orderRepo: orderRepo,
		ids:       ids,
	}
}

// Write inserts the header and then one sub-order per line with sub ids 1..N in submission order.
// A unique violation is reported as UniquenessViolationError and is not retried.
func (w *orderWriter) Write(ctx context.Context, q repositories.Querier, req *models.OrderRequest) (string, error) {
	order := &models.Order{
		OrderID:    w.ids.NewOrderID(),
		UserID:     req.UserID,
		TotalPrice: req.TotalPriceAll,
		AddressID:  req.AddressID,
	}
	if err := w.orderRepo.CreateHeader(ctx, q, order); err != nil {
		return "", classifyStoreError(fmt.Errorf("failed to insert order %s: %w", order.OrderID, err))
	}

	for i, line := range req.Products {
		sub := &models.SubOrder{
			OrderID:    order.OrderID,
			SubID:      i + 1,
			ProductID:  line.ProductID,
			Qty:        line.Qty,
			TotalPrice: line.TotalPriceSub,
		}
		if err := w.orderRepo.CreateSubOrder(ctx, q, sub); err != nil {
			return "", classifyStoreError(fmt.Errorf("failed to insert sub-order %d of %s: %w", sub.SubID, order.OrderID, err))
		}
	}
	return order.OrderID, nil
}
