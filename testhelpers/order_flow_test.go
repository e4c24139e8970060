package testhelpers

import (
	"context"
	"sync"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type discardSink struct{}

func (discardSink) Dispatch(models.ActivityRecord) {}

func newOrderTransaction(db *TestDB) services.OrderTransaction {
	productRepo := repositories.NewProductRepo(db.Pool)
	addressRepo := repositories.NewAddressRepo(db.Pool)
	orderRepo := repositories.NewOrderRepo(db.Pool)

	return services.NewOrderTransaction(services.OrderTransactionDeps{
		DB:          db.Pool,
		Validator:   services.NewOrderValidator(productRepo, addressRepo),
		Reservation: services.NewStockReservation(productRepo),
		Writer:      services.NewOrderWriter(orderRepo, services.NewDateOrderIDGenerator()),
		Activity:    discardSink{},
	})
}

func TestOrderTransaction_Integration(t *testing.T) {
	testDB := SetupTestDB(t)
	defer testDB.Cleanup()

	userID := SetupTestCustomer(t, testDB)
	addressID := SetupTestAddress(t, testDB, userID)
	SetupTestProduct(t, testDB, "P1", 20, 10)
	SetupTestProduct(t, testDB, "P2", 5, 1)

	orderTx := newOrderTransaction(testDB)
	ctx := context.Background()

	t.Run("Commit", func(t *testing.T) {
		result, err := orderTx.CreateOrder(ctx, &models.OrderRequest{
			Products:      []models.LineItem{{ProductID: "P1", Qty: 2, TotalPriceSub: 40}},
			UserID:        userID,
			AddressID:     addressID,
			TotalPriceAll: 40,
		})
		require.NoError(t, err)
		assert.Len(t, result.OrderID, 12)
		assert.Equal(t, 8, ProductStock(t, testDB, "P1"))
		assert.Equal(t, 1, CountOrders(t, testDB, userID))
	})

	t.Run("RollbackLeavesNoTrace", func(t *testing.T) {
		_, err := orderTx.CreateOrder(ctx, &models.OrderRequest{
			Products: []models.LineItem{
				{ProductID: "P1", Qty: 1, TotalPriceSub: 20},
				{ProductID: "P2", Qty: 1, TotalPriceSub: 5},
			},
			UserID:        userID,
			AddressID:     addressID,
			TotalPriceAll: 25,
		})
		var stockErr *services.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "P2", stockErr.ProductID)
		assert.Equal(t, 8, ProductStock(t, testDB, "P1"))
		assert.Equal(t, 1, ProductStock(t, testDB, "P2"))
		assert.Equal(t, 1, CountOrders(t, testDB, userID))
	})

	t.Run("ConcurrentOrdersNeverOversell", func(t *testing.T) {
		// 8 left, each order takes 3: at most two can commit and leave positive stock
		var wg sync.WaitGroup
		errs := make([]error, 5)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = orderTx.CreateOrder(ctx, &models.OrderRequest{
					Products:      []models.LineItem{{ProductID: "P1", Qty: 3, TotalPriceSub: 60}},
					UserID:        userID,
					AddressID:     addressID,
					TotalPriceAll: 60,
				})
			}(i)
		}
		wg.Wait()

		committed := 0
		for _, err := range errs {
			if err == nil {
				committed++
			}
		}
		assert.Equal(t, 8-3*committed, ProductStock(t, testDB, "P1"))
		assert.Greater(t, ProductStock(t, testDB, "P1"), 0)
	})
}
