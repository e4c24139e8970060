package repositories

import (
	"context"

	"storefront/internal/models"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
}

type customerRepo struct {
	db Querier
}

func NewCustomerRepo(db Querier) CustomerRepository {
	return &customerRepo{db: db}
}

// Create relies on the email_unique and unique_phone_number constraints for duplicates
func (r *customerRepo) Create(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customer (user_id, first_name, last_name, email, password, birth_date, phone_number, last_order_address_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query, customer.UserID, customer.FirstName, customer.LastName, customer.Email, customer.PasswordHash, customer.BirthDate, customer.PhoneNumber, customer.LastOrderAddressID)
	return err
}

func (r *customerRepo) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	customer := &models.Customer{}
	query := `
		SELECT user_id, first_name, last_name, email, password, birth_date, phone_number, last_order_address_id
		FROM customer
		WHERE email = $1
	`
	err := r.db.QueryRow(ctx, query, email).Scan(&customer.UserID, &customer.FirstName, &customer.LastName, &customer.Email, &customer.PasswordHash, &customer.BirthDate, &customer.PhoneNumber, &customer.LastOrderAddressID)
	if err != nil {
		return nil, err
	}
	return customer, nil
}

type AuthorityRepository interface {
	Create(ctx context.Context, authority *models.Authority) error
	GetByEmail(ctx context.Context, email string) (*models.Authority, error)
}

type authorityRepo struct {
	db Querier
}

func NewAuthorityRepo(db Querier) AuthorityRepository {
	return &authorityRepo{db: db}
}

func (r *authorityRepo) Create(ctx context.Context, authority *models.Authority) error {
	query := `
		INSERT INTO app_authority (user_id, first_name, last_name, app_role, email, phone_number, password)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query, authority.UserID, authority.FirstName, authority.LastName, authority.AppRole, authority.Email, authority.PhoneNumber, authority.PasswordHash)
	return err
}

func (r *authorityRepo) GetByEmail(ctx context.Context, email string) (*models.Authority, error) {
	authority := &models.Authority{}
	query := `
		SELECT user_id, first_name, last_name, app_role, email, phone_number, password
		FROM app_authority
		WHERE email = $1
	`
	err := r.db.QueryRow(ctx, query, email).Scan(&authority.UserID, &authority.FirstName, &authority.LastName, &authority.AppRole, &authority.Email, &authority.PhoneNumber, &authority.PasswordHash)
	if err != nil {
		return nil, err
	}
	return authority, nil
}
