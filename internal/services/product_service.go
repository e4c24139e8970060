package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"storefront/internal/caching"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/jackc/pgx/v5"
)

type ProductService interface {
	ListProducts(ctx context.Context) ([]*models.ProductSummary, error)
	// UpsertProduct reports whether the product was inserted rather than updated
	UpsertProduct(ctx context.Context, product *models.ProductUpsert) (bool, error)
	WarmCache(ctx context.Context) error
}

type productService struct {
	db           repositories.DBTX
	productRepo  repositories.ProductRepository
	cacheService caching.CacheService
	cacheTTL     time.Duration
}

// NewProductService accepts a nil cacheService, in which case every listing reads the store
func NewProductService(db repositories.DBTX, productRepo repositories.ProductRepository, cacheService caching.CacheService, cacheTTL time.Duration) ProductService {
	return &productService{
		db:           db,
		productRepo:  productRepo,
		cacheService: cacheService,
		cacheTTL:     cacheTTL,
	}
}

func (s *productService) ListProducts(ctx context.Context) ([]*models.ProductSummary, error) {
	if s.cacheService != nil {
		cached, err := s.cacheService.GetProducts(ctx)
		if err != nil {
			log.Printf("product cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if s.cacheService != nil {
		if err := s.cacheService.SetProducts(ctx, products, s.cacheTTL); err != nil {
			log.Printf("product cache write failed: %v", err)
		}
	}
	return products, nil
}

func (s *productService) UpsertProduct(ctx context.Context, product *models.ProductUpsert) (bool, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	inserted := false
	_, err = s.productRepo.GetByID(ctx, tx, product.ProductID)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		if err := s.productRepo.Insert(ctx, tx, product); err != nil {
			return false, fmt.Errorf("failed to insert product %s: %w", product.ProductID, err)
		}
		inserted = true
	case err != nil:
		return false, fmt.Errorf("failed to look up product %s: %w", product.ProductID, err)
	default:
		if err := s.productRepo.Update(ctx, tx, product); err != nil {
			return false, fmt.Errorf("failed to update product %s: %w", product.ProductID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit product %s: %w", product.ProductID, err)
	}

	if s.cacheService != nil {
		if err := s.cacheService.InvalidateProducts(ctx); err != nil {
			log.Printf("product cache invalidation failed: %v", err)
		}
	}
	return inserted, nil
}

// WarmCache reloads the product list into the cache
func (s *productService) WarmCache(ctx context.Context) error {
	if s.cacheService == nil {
		return nil
	}
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}
	return s.cacheService.SetProducts(ctx, products, s.cacheTTL)
}
