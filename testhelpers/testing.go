package testhelpers

import (
	"context"
	"os"
	"testing"

	"storefront/internal/schema"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func()
}

// SetupTestDB connects to TEST_DATABASE_URL, migrates the schema and empties every table.
// The test is skipped in short mode or when no database is configured.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	gormDB, err := gorm.Open(postgres.Open(connString), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := schema.Migrate(gormDB); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		sqlDB.Close()
	}

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	truncate(t, pool)

	return &TestDB{
		Pool: pool,
		Cleanup: func() {
			truncate(t, pool)
			pool.Close()
		},
	}
}

func truncate(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
		TRUNCATE customer_suborder, customer_order, customer_address, product, user_activity, app_authority, customer CASCADE
	`)
	if err != nil {
		t.Fatalf("Failed to clean test database: %v", err)
	}
}

func shortID() string {
	return uuid.NewString()[:10]
}

// SetupTestCustomer inserts a customer and returns its user id
func SetupTestCustomer(t *testing.T, db *TestDB) string {
	t.Helper()

	userID := shortID()
	_, err := db.Pool.Exec(context.Background(), `
		INSERT INTO customer (user_id, first_name, last_name, email, password, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, userID, "Test", "Customer", userID+"@example.com", "x", "(555)-"+userID[:3]+"-00-00")
	if err != nil {
		t.Fatalf("Failed to create test customer: %v", err)
	}
	return userID
}

// SetupTestAddress inserts an address owned by userID and returns its id
func SetupTestAddress(t *testing.T, db *TestDB, userID string) string {
	t.Helper()

	addressID := shortID()
	_, err := db.Pool.Exec(context.Background(), `
		INSERT INTO customer_address (address_id, user_id, city, neighborhood, country, street)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, addressID, userID, "Ankara", "Çankaya", "Türkiye", "Atatürk Blv.")
	if err != nil {
		t.Fatalf("Failed to create test address: %v", err)
	}
	return addressID
}

// SetupTestProduct inserts a product with the given stock
func SetupTestProduct(t *testing.T, db *TestDB, productID string, price float64, stock int) {
	t.Helper()

	_, err := db.Pool.Exec(context.Background(), `
		INSERT INTO product (product_id, price, name, stock)
		VALUES ($1, $2, $3, $4)
	`, productID, price, "Test "+productID, stock)
	if err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}
}

// ProductStock reads the current stock of productID
func ProductStock(t *testing.T, db *TestDB, productID string) int {
	t.Helper()

	var stock int
	if err := db.Pool.QueryRow(context.Background(), `SELECT stock FROM product WHERE product_id = $1`, productID).Scan(&stock); err != nil {
		t.Fatalf("Failed to read stock of %s: %v", productID, err)
	}
	return stock
}

// CountOrders returns the number of order headers stored for userID
func CountOrders(t *testing.T, db *TestDB, userID string) int {
	t.Helper()

	var n int
	if err := db.Pool.QueryRow(context.Background(), `SELECT count(*) FROM customer_order WHERE user_id = $1`, userID).Scan(&n); err != nil {
		t.Fatalf("Failed to count orders: %v", err)
	}
	return n
}
