package models

import "time"

// LineItem is one product entry of an order request
type LineItem struct {
	ProductID     string  `json:"productId" validate:"required,max=12"`
	Qty           int     `json:"qty" validate:"required,gt=0,max=2147483647"`
	TotalPriceSub float64 `json:"totalPriceSub" validate:"gte=0"`
}

// OrderRequest is the structurally valid input of the order transaction.
// Products keep submission order; sub ids are derived from it.
type OrderRequest struct {
	Products      []LineItem `json:"products" validate:"required,min=1,dive"`
	UserID        string     `json:"userId" validate:"required,max=10"`
	AddressID     string     `json:"addressId" validate:"required"`
	TotalPriceAll float64    `json:"totalPriceAll" validate:"gte=0"`
}

type Order struct {
	OrderID    string    `json:"orderId" db:"order_id"`
	UserID     string    `json:"userId" db:"user_id"`
	TotalPrice float64   `json:"totalPrice" db:"total_price"`
	AddressID  string    `json:"addressId" db:"address_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// SubOrder is the persisted form of one line item, keyed by (OrderID, SubID)
type SubOrder struct {
	OrderID    string  `json:"order_id" db:"order_id"`
	SubID      int     `json:"sub_id" db:"sub_id"`
	ProductID  string  `json:"product_id" db:"product_id"`
	Qty        int     `json:"qty" db:"qty"`
	TotalPrice float64 `json:"total_price" db:"total_price"`
}

// OrderSummary is a row of the order listing
type OrderSummary struct {
	OrderID    string  `json:"orderId"`
	TotalPrice float64 `json:"totalPrice"`
}

// OrderDetailRow is a header joined with one of its sub-orders
type OrderDetailRow struct {
	OrderID    string    `json:"order_id"`
	UserID     string    `json:"user_id"`
	TotalPrice float64   `json:"total_price"`
	AddressID  string    `json:"address_id"`
	CreatedAt  time.Time `json:"created_at"`
	SubID      int       `json:"sub_id"`
	ProductID  string    `json:"product_id"`
	Qty        int       `json:"qty"`
	SubTotal   float64   `json:"sub_total_price"`
}

// OrderCreatedEvent is published once an order transaction has committed
type OrderCreatedEvent struct {
	OrderID    string     `json:"orderId"`
	UserID     string     `json:"userId"`
	AddressID  string     `json:"addressId"`
	TotalPrice float64    `json:"totalPrice"`
	Lines      []LineItem `json:"lines"`
	CreatedAt  time.Time  `json:"createdAt"`
}
