package services

import (
	"context"
	"errors"
	"fmt"
	"net"

	"storefront/internal/common"

	"github.com/jackc/pgx/v5/pgconn"
)

// OrderError is the closed set of failures an order transaction reports.
// Only the variants in this file implement it.
type OrderError interface {
	error
	// UserMessage is the localized text safe to show the client
	UserMessage() string
	orderError()
}

// InvalidProductError reports a line whose product is not in the catalog.
type InvalidProductError struct {
	ProductID string
}

func (e *InvalidProductError) Error() string {
	return fmt.Sprintf("invalid product %q", e.ProductID)
}

func (e *InvalidProductError) UserMessage() string {
	return fmt.Sprintf(common.MsgInvalidProductFmt, e.ProductID)
}

func (*InvalidProductError) orderError() {}

// InvalidAddressError reports an address that is absent or owned by another user.
type InvalidAddressError struct {
	AddressID string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid address %q", e.AddressID)
}

func (e *InvalidAddressError) UserMessage() string {
	return fmt.Sprintf(common.MsgInvalidAddressFmt, e.AddressID)
}

func (*InvalidAddressError) orderError() {}

// InsufficientStockError reports a product whose stock would not stay positive after the order.
type InsufficientStockError struct {
	ProductID string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q", e.ProductID)
}

func (e *InsufficientStockError) UserMessage() string {
	return fmt.Sprintf(common.MsgInsufficientStockFmt, e.ProductID)
}

func (*InsufficientStockError) orderError() {}

// UniquenessViolationError reports an insert that collided with an existing row, usually on the generated order id.
type UniquenessViolationError struct {
	Constraint string
}

func (e *UniquenessViolationError) Error() string {
	return fmt.Sprintf("uniqueness violation on %q", e.Constraint)
}

func (e *UniquenessViolationError) UserMessage() string {
	return common.MsgGenericError
}

func (*UniquenessViolationError) orderError() {}

// StoreUnavailableError reports a store that could not be reached or did not answer in time.
type StoreUnavailableError struct {
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable: %v", e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

func (e *StoreUnavailableError) UserMessage() string {
	return common.MsgGenericError
}

func (*StoreUnavailableError) orderError() {}

// IsBusinessRuleError reports whether err is a client-caused order failure (400-class)
func IsBusinessRuleError(err error) bool {
	var oe OrderError
	if !errors.As(err, &oe) {
		return false
	}
	switch oe.(type) {
	case *InvalidProductError, *InvalidAddressError, *InsufficientStockError, *UniquenessViolationError:
		return true
	default:
		return false
	}
}

// classifyStoreError turns driver errors into order variants. Errors it does not
// recognize are returned unchanged and stay unclassified.
func classifyStoreError(err error) error {
	if err == nil {
		return nil
	}
	var oe OrderError
	if errors.As(err, &oe) {
		return err
	}
	if constraint, ok := common.IsUniqueViolation(err); ok {
		return &UniquenessViolationError{Constraint: constraint}
	}
	if isUnavailable(err) {
		return &StoreUnavailableError{Err: err}
	}
	return err
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
