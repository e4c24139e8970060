package repositories

import (
	"context"

	"storefront/internal/models"
)

type AddressRepository interface {
	Create(ctx context.Context, address *models.Address) error
	BelongsTo(ctx context.Context, q Querier, userID, addressID string) (bool, error)
}

type addressRepo struct {
	db Querier
}

func NewAddressRepo(db Querier) AddressRepository {
	return &addressRepo{db: db}
}

func (r *addressRepo) Create(ctx context.Context, address *models.Address) error {
	query := `
		INSERT INTO customer_address (address_id, user_id, city, neighborhood, country, street, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query, address.AddressID, address.UserID, address.City, address.Neighborhood, address.Country, address.Street, address.Description)
	return err
}

// BelongsTo reports whether addressID exists and is owned by userID
func (r *addressRepo) BelongsTo(ctx context.Context, q Querier, userID, addressID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM customer_address WHERE user_id = $1 AND address_id = $2)`
	if err := q.QueryRow(ctx, query, userID, addressID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
