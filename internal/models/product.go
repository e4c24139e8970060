package models

// Product is a catalog entry. Stock is decremented only by a committed order.
type Product struct {
	ProductID   string  `json:"product_id" db:"product_id"`
	Price       float64 `json:"price" db:"price"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description,omitempty" db:"description"`
	Stock       int     `json:"stock" db:"stock"`
	UpdatedBy   *string `json:"updated_by,omitempty" db:"updated_by"`
}

// ProductSummary is the public projection returned by the product listing
type ProductSummary struct {
	ProductID string  `json:"product_id"`
	Price     float64 `json:"price"`
	Name      string  `json:"name"`
}

// ProductUpsert carries a catalog write. Nil fields keep their stored value on update.
type ProductUpsert struct {
	ProductID   string   `json:"productId" validate:"required,max=12"`
	Price       *float64 `json:"price" validate:"required"`
	Name        *string  `json:"name" validate:"required,max=20"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=100"`
	Stock       *int     `json:"stock" validate:"required,min=0"`
	UpdatedBy   *string  `json:"updatedBy,omitempty" validate:"omitempty,max=10"`
}
