package models

import "time"

// Activity actions recorded in user_activity
const (
	ActionRegister      = "register"
	ActionLogin         = "login"
	ActionAddAddress    = "add_address"
	ActionCreateOrder   = "create_order"
	ActionUpsertProduct = "upsert_product"
	ActionAddAuthority  = "add_user_by_admin"
)

// ActivityLog is one row of user_activity. StatusCode holds the HTTP status sent to the client.
type ActivityLog struct {
	LogID      string    `json:"log_id" db:"log_id"`
	UserID     string    `json:"user_id" db:"user_id"`
	LogDate    time.Time `json:"log_date" db:"log_date"`
	Action     string    `json:"request_type" db:"request_type"`
	StatusCode string    `json:"response_status_code" db:"response_status_code"`
	UserRole   string    `json:"user_role" db:"user_role"`
}

// ActivityRecord is what request paths hand to the dispatcher; the id and timestamp are assigned on persist
type ActivityRecord struct {
	UserID     string
	Action     string
	UserRole   string
	StatusCode int
}
