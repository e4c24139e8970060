package models

import "time"

const (
	RoleCustomer     = "customer"
	RoleAppAuthority = "app_authority"

	AppRoleAdmin        = "Admin"
	AppRoleProductAdmin = "Admin_product"
)

type Customer struct {
	UserID             string     `json:"user_id" db:"user_id"`
	FirstName          string     `json:"first_name" db:"first_name"`
	LastName           string     `json:"last_name" db:"last_name"`
	Email              string     `json:"email" db:"email"`
	PasswordHash       string     `json:"-" db:"password"` // Never serialize in JSON
	BirthDate          *time.Time `json:"birth_date,omitempty" db:"birth_date"`
	PhoneNumber        string     `json:"phone_number" db:"phone_number"`
	LastOrderAddressID *string    `json:"last_order_address_id,omitempty" db:"last_order_address_id"`
}

// Authority is a back-office account. AppRole decides which guarded routes it may call.
type Authority struct {
	UserID       string `json:"userId" db:"user_id"`
	FirstName    string `json:"firstName" db:"first_name"`
	LastName     string `json:"lastName" db:"last_name"`
	AppRole      string `json:"appRole" db:"app_role"`
	Email        string `json:"-" db:"email"`
	PhoneNumber  string `json:"-" db:"phone_number"`
	PasswordHash string `json:"-" db:"password"`
}

type Address struct {
	AddressID    string  `json:"address_id" db:"address_id"`
	UserID       string  `json:"user_id" db:"user_id"`
	City         string  `json:"city" db:"city"`
	Neighborhood string  `json:"neighborhood" db:"neighborhood"`
	Country      string  `json:"country" db:"country"`
	Street       string  `json:"street" db:"street"`
	Description  *string `json:"description,omitempty" db:"description"`
}
