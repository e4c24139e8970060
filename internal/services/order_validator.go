package services

import (
	"context"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// OrderValidator checks referential integrity of an order request
type OrderValidator interface {
	Validate(ctx context.Context, q repositories.Querier, req *models.OrderRequest) error
}

type orderValidator struct {
	productRepo repositories.ProductRepository
	addressRepo repositories.AddressRepository
}

func NewOrderValidator(productRepo repositories.ProductRepository, addressRepo repositories.AddressRepository) OrderValidator {
	return &orderValidator{
		productRepo: productRepo,
		addressRepo: addressRepo,
	}
}

// Validate reads through q so the checks see the same snapshot as the reservation that follows.
// Products are checked in submission order before the address.
func (v *orderValidator) Validate(ctx context.Context, q repositories.Querier, req *models.OrderRequest) error {
	checked := make(map[string]bool, len(req.Products))
	for _, line := range req.Products {
		if checked[line.ProductID] {
			continue
		}
		exists, err := v.productRepo.Exists(ctx, q, line.ProductID)
		if err != nil {
			return fmt.Errorf("failed to look up product %s: %w", line.ProductID, err)
		}
		if !exists {
			return &InvalidProductError{ProductID: line.ProductID}
		}
		checked[line.ProductID] = true
	}

	owned, err := v.addressRepo.BelongsTo(ctx, q, req.UserID, req.AddressID)
	if err != nil {
		return fmt.Errorf("failed to look up address %s: %w", req.AddressID, err)
	}
	if !owned {
		return &InvalidAddressError{AddressID: req.AddressID}
	}
	return nil
}
