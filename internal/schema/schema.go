package schema

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Customer mirrors the customer table. Constraint names are matched by the
// service's Postgres error translation and must not change.
type Customer struct {
	UserID             string     `gorm:"column:user_id;type:varchar(10);primaryKey"`
	FirstName          string     `gorm:"column:first_name;type:varchar(15);not null"`
	LastName           string     `gorm:"column:last_name;type:varchar(30)"`
	Email              string     `gorm:"column:email;type:varchar(100);not null;uniqueIndex:email_unique"`
	Password           string     `gorm:"column:password;type:varchar(100);not null"`
	BirthDate          *time.Time `gorm:"column:birth_date;type:date"`
	PhoneNumber        string     `gorm:"column:phone_number;type:varchar(20);not null;uniqueIndex:unique_phone_number"`
	LastOrderAddressID *string    `gorm:"column:last_order_address_id;type:varchar(10)"`
}

func (Customer) TableName() string { return "customer" }

type AppAuthority struct {
	UserID      string `gorm:"column:user_id;type:varchar(10);primaryKey"`
	FirstName   string `gorm:"column:first_name;type:varchar(15);not null"`
	LastName    string `gorm:"column:last_name;type:varchar(30)"`
	AppRole     string `gorm:"column:app_role;type:varchar(20);not null"`
	Email       string `gorm:"column:email;type:varchar(100);not null;uniqueIndex:authority_email_unique"`
	PhoneNumber string `gorm:"column:phone_number;type:varchar(20);not null;uniqueIndex:authority_unique_phone_number"`
	Password    string `gorm:"column:password;type:varchar(100);not null"`
}

func (AppAuthority) TableName() string { return "app_authority" }

type CustomerAddress struct {
	AddressID    string  `gorm:"column:address_id;type:varchar(10);primaryKey"`
	UserID       string  `gorm:"column:user_id;type:varchar(10);not null;index"`
	City         string  `gorm:"column:city;type:varchar(50);not null"`
	Neighborhood string  `gorm:"column:neighborhood;type:varchar(50);not null"`
	Country      string  `gorm:"column:country;type:varchar(50);not null"`
	Street       string  `gorm:"column:street;type:varchar(100);not null"`
	Description  *string `gorm:"column:description;type:varchar(100)"`
}

func (CustomerAddress) TableName() string { return "customer_address" }

// Product carries the stock >= 0 check that backs the stock reservation rule
type Product struct {
	ProductID   string  `gorm:"column:product_id;type:varchar(12);primaryKey"`
	Price       float64 `gorm:"column:price;type:numeric;not null"`
	Name        string  `gorm:"column:name;type:varchar(20);not null"`
	Description *string `gorm:"column:description;type:varchar(100)"`
	Stock       int     `gorm:"column:stock;type:integer;not null;default:0;check:product_stock_check,stock >= 0"`
	UpdatedBy   *string `gorm:"column:updated_by;type:varchar(10)"`
}

func (Product) TableName() string { return "product" }

type CustomerOrder struct {
	OrderID    string    `gorm:"column:order_id;type:varchar(12);primaryKey"`
	UserID     string    `gorm:"column:user_id;type:varchar(10);not null;index"`
	TotalPrice float64   `gorm:"column:total_price;type:numeric;not null"`
	AddressID  string    `gorm:"column:address_id;type:varchar(10);not null"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;default:now()"`
}

func (CustomerOrder) TableName() string { return "customer_order" }

type CustomerSuborder struct {
	OrderID    string  `gorm:"column:order_id;type:varchar(12);primaryKey"`
	SubID      int     `gorm:"column:sub_id;primaryKey;autoIncrement:false"`
	ProductID  string  `gorm:"column:product_id;type:varchar(12);not null"`
	Qty        int     `gorm:"column:qty;type:integer;not null;check:suborder_qty_check,qty > 0"`
	TotalPrice float64 `gorm:"column:total_price;type:numeric;not null"`
}

func (CustomerSuborder) TableName() string { return "customer_suborder" }

type UserActivity struct {
	LogID              string    `gorm:"column:log_id;type:varchar(10);primaryKey"`
	UserID             string    `gorm:"column:user_id;type:varchar(10)"`
	LogDate            time.Time `gorm:"column:log_date;not null;default:now();index"`
	RequestType        string    `gorm:"column:request_type;type:varchar(30);not null"`
	ResponseStatusCode string    `gorm:"column:response_status_code;type:varchar(3);not null"`
	UserRole           string    `gorm:"column:user_role;type:varchar(20)"`
}

func (UserActivity) TableName() string { return "user_activity" }

// Models lists every table in creation order
func Models() []interface{} {
	return []interface{}{
		&Customer{},
		&AppAuthority{},
		&CustomerAddress{},
		&Product{},
		&CustomerOrder{},
		&CustomerSuborder{},
		&UserActivity{},
	}
}

// ForeignKey is a named constraint added after the tables exist
type ForeignKey struct {
	Model      interface{}
	Table      string
	Name       string
	Definition string
}

// ForeignKeys are declared by hand so their names stay stable across migrations
func ForeignKeys() []ForeignKey {
	return []ForeignKey{
		{&CustomerAddress{}, "customer_address", "useraddress_userid_fkey", "FOREIGN KEY (user_id) REFERENCES customer(user_id)"},
		{&CustomerOrder{}, "customer_order", "orders_userid_fkey", "FOREIGN KEY (user_id) REFERENCES customer(user_id)"},
		{&CustomerOrder{}, "customer_order", "orders_addressid_fkey", "FOREIGN KEY (address_id) REFERENCES customer_address(address_id)"},
		{&CustomerSuborder{}, "customer_suborder", "suborder_orderid_fkey", "FOREIGN KEY (order_id) REFERENCES customer_order(order_id) ON DELETE CASCADE"},
		{&CustomerSuborder{}, "customer_suborder", "suborder_productid_fkey", "FOREIGN KEY (product_id) REFERENCES product(product_id)"},
	}
}

// Migrate creates or updates every table and adds the missing foreign keys
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, fk := range ForeignKeys() {
		if db.Migrator().HasConstraint(fk.Model, fk.Name) {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s %s", fk.Table, fk.Name, fk.Definition)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("add constraint %s: %w", fk.Name, err)
		}
	}
	return nil
}
