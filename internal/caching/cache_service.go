package caching

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"storefront/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	productListKey       = "storefront:products:all"
	activityWatermarkKey = "storefront:activity:archived_until"
)

type CacheService interface {
	// Product list, as served by getProducts
	GetProducts(ctx context.Context) ([]*models.ProductSummary, error)
	SetProducts(ctx context.Context, products []*models.ProductSummary, ttl time.Duration) error
	InvalidateProducts(ctx context.Context) error

	// Activity archive progress
	GetArchiveWatermark(ctx context.Context) (time.Time, error)
	SetArchiveWatermark(ctx context.Context, until time.Time) error

	Ping(ctx context.Context) error
	Close() error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsedAddr = strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	} else {
		log.Printf("Redis connected at %s", parsedAddr)
	}

	return &redisCacheService{client: client}
}

// GetProducts returns nil, nil on a cache miss
func (r *redisCacheService) GetProducts(ctx context.Context) ([]*models.ProductSummary, error) {
	data, err := r.client.Get(ctx, productListKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	products := []*models.ProductSummary{}
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *redisCacheService) SetProducts(ctx context.Context, products []*models.ProductSummary, ttl time.Duration) error {
	data, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, productListKey, data, ttl).Err()
}

func (r *redisCacheService) InvalidateProducts(ctx context.Context) error {
	return r.client.Del(ctx, productListKey).Err()
}

// GetArchiveWatermark returns the zero time when nothing was archived yet
func (r *redisCacheService) GetArchiveWatermark(ctx context.Context) (time.Time, error) {
	value, err := r.client.Get(ctx, activityWatermarkKey).Result()
	if err != nil {
		if err == redis.Nil {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339Nano, value)
}

func (r *redisCacheService) SetArchiveWatermark(ctx context.Context, until time.Time) error {
	return r.client.Set(ctx, activityWatermarkKey, until.UTC().Format(time.RFC3339Nano), 0).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisCacheService) Close() error {
	return r.client.Close()
}
