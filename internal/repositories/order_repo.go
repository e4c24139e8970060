package repositories

import (
	"context"

	"storefront/internal/models"
)

type OrderRepository interface {
	CreateHeader(ctx context.Context, q Querier, order *models.Order) error
	CreateSubOrder(ctx context.Context, q Querier, sub *models.SubOrder) error
	ListByUser(ctx context.Context, userID string) ([]*models.OrderSummary, error)
	ListIDsByUser(ctx context.Context, q Querier, userID string) ([]string, error)
	GetDetail(ctx context.Context, q Querier, orderID string) ([]*models.OrderDetailRow, error)
}

type orderRepo struct {
	db Querier
}

func NewOrderRepo(db Querier) OrderRepository {
	return &orderRepo{db: db}
}

// CreateHeader inserts the order row and fills CreatedAt from the store clock
func (r *orderRepo) CreateHeader(ctx context.Context, q Querier, order *models.Order) error {
	query := `
		INSERT INTO customer_order (order_id, user_id, total_price, address_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`
	return q.QueryRow(ctx, query, order.OrderID, order.UserID, order.TotalPrice, order.AddressID).Scan(&order.CreatedAt)
}

func (r *orderRepo) CreateSubOrder(ctx context.Context, q Querier, sub *models.SubOrder) error {
	query := `
		INSERT INTO customer_suborder (order_id, sub_id, product_id, qty, total_price)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := q.Exec(ctx, query, sub.OrderID, sub.SubID, sub.ProductID, sub.Qty, sub.TotalPrice)
	return err
}

func (r *orderRepo) ListByUser(ctx context.Context, userID string) ([]*models.OrderSummary, error) {
	query := `
		SELECT order_id, total_price
		FROM customer_order
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*models.OrderSummary{}
	for rows.Next() {
		o := &models.OrderSummary{}
		if err := rows.Scan(&o.OrderID, &o.TotalPrice); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *orderRepo) ListIDsByUser(ctx context.Context, q Querier, userID string) ([]string, error) {
	query := `SELECT order_id FROM customer_order WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetDetail returns the header joined with each sub-order, ordered by sub id
func (r *orderRepo) GetDetail(ctx context.Context, q Querier, orderID string) ([]*models.OrderDetailRow, error) {
	query := `
		SELECT co.order_id, co.user_id, co.total_price, co.address_id, co.created_at, cs.sub_id, cs.product_id, cs.qty, cs.total_price
		FROM customer_order co
		JOIN customer_suborder cs ON co.order_id = cs.order_id
		WHERE co.order_id = $1
		ORDER BY cs.sub_id
	`
	rows, err := q.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := []*models.OrderDetailRow{}
	for rows.Next() {
		d := &models.OrderDetailRow{}
		if err := rows.Scan(&d.OrderID, &d.UserID, &d.TotalPrice, &d.AddressID, &d.CreatedAt, &d.SubID, &d.ProductID, &d.Qty, &d.SubTotal); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
