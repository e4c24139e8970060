package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"storefront/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestDateOrderIDGenerator(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	gen := &DateOrderIDGenerator{
		Now:    func() time.Time { return time.Date(2026, 10, 15, 1, 30, 0, 0, loc) },
		Suffix: func() int { return 42 },
	}

	assert.Equal(t, "202610140042", gen.NewOrderID())
}

func TestDateOrderIDGenerator_DefaultShape(t *testing.T) {
	id := NewDateOrderIDGenerator().NewOrderID()

	assert.Len(t, id, 12)
	assert.Regexp(t, `^\d{12}$`, id)
}

func TestAccumulate(t *testing.T) {
	lines := []models.LineItem{
		{ProductID: "P2", Qty: 1},
		{ProductID: "P1", Qty: 6},
		{ProductID: "P2", Qty: 4},
		{ProductID: "P1", Qty: 6},
	}

	assert.Equal(t, []reservedLine{{productID: "P2", qty: 5}, {productID: "P1", qty: 12}}, accumulate(lines))
}

func TestAccumulate_SaturatesInsteadOfWrapping(t *testing.T) {
	lines := []models.LineItem{
		{ProductID: "P1", Qty: math.MaxInt},
		{ProductID: "P1", Qty: math.MaxInt},
		{ProductID: "P1", Qty: 1},
	}

	assert.Equal(t, []reservedLine{{productID: "P1", qty: math.MaxInt}}, accumulate(lines))
}

func TestClassifyStoreError(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(t *testing.T, got error)
	}{
		{
			name: "order errors pass through",
			err:  &InsufficientStockError{ProductID: "P1"},
			check: func(t *testing.T, got error) {
				var target *InsufficientStockError
				assert.ErrorAs(t, got, &target)
			},
		},
		{
			name: "unique violation",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "customer_order_pkey"},
			check: func(t *testing.T, got error) {
				var target *UniquenessViolationError
				assert.ErrorAs(t, got, &target)
			},
		},
		{
			name: "deadline",
			err:  context.DeadlineExceeded,
			check: func(t *testing.T, got error) {
				var target *StoreUnavailableError
				assert.ErrorAs(t, got, &target)
			},
		},
		{
			name: "unrecognized",
			err:  errors.New("syntax error"),
			check: func(t *testing.T, got error) {
				var target OrderError
				assert.False(t, errors.As(got, &target))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, classifyStoreError(tt.err))
		})
	}
	assert.Nil(t, classifyStoreError(nil))
}

func TestIsBusinessRuleError(t *testing.T) {
	assert.True(t, IsBusinessRuleError(&InvalidAddressError{AddressID: "A2"}))
	assert.False(t, IsBusinessRuleError(&StoreUnavailableError{Err: errors.New("down")}))
	assert.False(t, IsBusinessRuleError(errors.New("plain")))
}
