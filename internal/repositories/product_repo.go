package repositories

import (
	"context"

	"storefront/internal/models"
)

// ProductRepository is the catalog store. Methods taking a Querier run on the
// caller's transaction; the rest run on the repository's own handle.
type ProductRepository interface {
	List(ctx context.Context) ([]*models.ProductSummary, error)
	GetByID(ctx context.Context, q Querier, productID string) (*models.Product, error)
	Exists(ctx context.Context, q Querier, productID string) (bool, error)
	GetStockForUpdate(ctx context.Context, q Querier, productID string) (int, error)
	SetStock(ctx context.Context, q Querier, productID string, stock int) error
	Insert(ctx context.Context, q Querier, product *models.ProductUpsert) error
	Update(ctx context.Context, q Querier, product *models.ProductUpsert) error
}

type productRepo struct {
	db Querier
}

func NewProductRepo(db Querier) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) List(ctx context.Context) ([]*models.ProductSummary, error) {
	query := `
		SELECT product_id, price, name
		FROM product
		ORDER BY product_id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []*models.ProductSummary{}
	for rows.Next() {
		p := &models.ProductSummary{}
		if err := rows.Scan(&p.ProductID, &p.Price, &p.Name); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productRepo) GetByID(ctx context.Context, q Querier, productID string) (*models.Product, error) {
	product := &models.Product{}
	query := `
		SELECT product_id, price, name, description, stock, updated_by
		FROM product
		WHERE product_id = $1
	`
	err := q.QueryRow(ctx, query, productID).Scan(&product.ProductID, &product.Price, &product.Name, &product.Description, &product.Stock, &product.UpdatedBy)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) Exists(ctx context.Context, q Querier, productID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM product WHERE product_id = $1)`
	if err := q.QueryRow(ctx, query, productID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// GetStockForUpdate reads stock and locks the row until the transaction ends
func (r *productRepo) GetStockForUpdate(ctx context.Context, q Querier, productID string) (int, error) {
	var stock int
	query := `SELECT stock FROM product WHERE product_id = $1 FOR UPDATE`
	if err := q.QueryRow(ctx, query, productID).Scan(&stock); err != nil {
		return 0, err
	}
	return stock, nil
}

func (r *productRepo) SetStock(ctx context.Context, q Querier, productID string, stock int) error {
	query := `UPDATE product SET stock = $1 WHERE product_id = $2`
	_, err := q.Exec(ctx, query, stock, productID)
	return err
}

func (r *productRepo) Insert(ctx context.Context, q Querier, product *models.ProductUpsert) error {
	query := `
		INSERT INTO product (product_id, price, name, description, stock, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := q.Exec(ctx, query, product.ProductID, product.Price, product.Name, product.Description, product.Stock, product.UpdatedBy)
	return err
}

// Update overwrites only the fields that are set
func (r *productRepo) Update(ctx context.Context, q Querier, product *models.ProductUpsert) error {
	query := `
		UPDATE product
		SET name = COALESCE($3, name), price = COALESCE($2, price), description = COALESCE($4, description), stock = COALESCE($5, stock), updated_by = COALESCE($6, updated_by)
		WHERE product_id = $1
	`
	_, err := q.Exec(ctx, query, product.ProductID, product.Price, product.Name, product.Description, product.Stock, product.UpdatedBy)
	return err
}
