package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/jackc/pgx/v5"
)

// StockSnapshot holds per-product stock as read, and locked, at check time
type StockSnapshot map[string]int

// StockReservation checks and commits stock for an order inside the caller's transaction
type StockReservation interface {
	CheckStock(ctx context.Context, q repositories.Querier, req *models.OrderRequest) (StockSnapshot, error)
	CommitStock(ctx context.Context, q repositories.Querier, req *models.OrderRequest, snapshot StockSnapshot) error
}

type stockReservation struct {
	productRepo repositories.ProductRepository
}

func NewStockReservation(productRepo repositories.ProductRepository) StockReservation {
	return &stockReservation{productRepo: productRepo}
}

// reservedLine is the total quantity requested for one product across all lines
type reservedLine struct {
	productID string
	qty       int
}

// accumulate sums quantities per distinct product, keeping first-seen order.
// Totals saturate at math.MaxInt so no sum wraps below the stock it is checked against.
func accumulate(lines []models.LineItem) []reservedLine {
	index := make(map[string]int, len(lines))
	var out []reservedLine
	for _, line := range lines {
		if i, ok := index[line.ProductID]; ok {
			out[i].qty = addQty(out[i].qty, line.Qty)
			continue
		}
		index[line.ProductID] = len(out)
		out = append(out, reservedLine{productID: line.ProductID, qty: line.Qty})
	}
	return out
}

func addQty(total, qty int) int {
	if qty > 0 && total > math.MaxInt-qty {
		return math.MaxInt
	}
	return total + qty
}

// CheckStock locks each product row once and rejects when stock minus the total
// requested is zero or less. Nothing is written.
func (s *stockReservation) CheckStock(ctx context.Context, q repositories.Querier, req *models.OrderRequest) (StockSnapshot, error) {
	snapshot := make(StockSnapshot)
	for _, r := range accumulate(req.Products) {
		stock, err := s.productRepo.GetStockForUpdate(ctx, q, r.productID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, &InvalidProductError{ProductID: r.productID}
			}
			return nil, fmt.Errorf("failed to read stock for %s: %w", r.productID, err)
		}
		// same as stock-qty <= 0, without the subtraction
		if r.qty <= 0 || r.qty >= stock {
			return nil, &InsufficientStockError{ProductID: r.productID}
		}
		snapshot[r.productID] = stock
	}
	return snapshot, nil
}

// CommitStock writes snapshot minus total requested, once per distinct product
func (s *stockReservation) CommitStock(ctx context.Context, q repositories.Querier, req *models.OrderRequest, snapshot StockSnapshot) error {
	for _, r := range accumulate(req.Products) {
		before, ok := snapshot[r.productID]
		if !ok {
			return fmt.Errorf("no reservation snapshot for product %s", r.productID)
		}
		if err := s.productRepo.SetStock(ctx, q, r.productID, before-r.qty); err != nil {
			return fmt.Errorf("failed to update stock for %s: %w", r.productID, err)
		}
	}
	return nil
}
