package handlers

import (
	"errors"

	"storefront/internal/common"
	"storefront/internal/models"
	"storefront/pkg/validator"

	"github.com/labstack/echo/v4"
)

// validationMessage maps the first failing field to the message clients expect
func validationMessage(field string) string {
	switch field {
	case "phoneNumber":
		return common.MsgInvalidPhone
	case "email":
		return common.MsgInvalidEmail
	case "firstName":
		return common.MsgFirstNameLength
	case "lastName":
		return common.MsgLastNameLength
	case "birthDate":
		return common.MsgBirthDateFormat
	default:
		return common.MsgFillAllFields
	}
}

// bindRequest binds and validates dst. When ok is false the 400 has already been written
// and err is the result of writing it.
func bindRequest(c echo.Context, dst interface{}) (bool, error) {
	if err := c.Bind(dst); err != nil {
		return false, common.SendValidationError(c, "body", common.MsgFillAllFields)
	}
	if err := c.Validate(dst); err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			field := verr.Field()
			return false, common.SendValidationError(c, field, validationMessage(field))
		}
		return false, common.SendValidationError(c, "body", common.MsgFillAllFields)
	}
	return true, nil
}

// sendStoreError answers 400 with the translated constraint message, or the generic one
func sendStoreError(c echo.Context, op string, err error) error {
	if msg, ok := common.PostgresMessage(err); ok {
		return common.SendClientError(c, msg)
	}
	c.Logger().Errorf("%s: %v", op, err)
	return common.SendClientError(c, common.MsgGenericError)
}

// canActFor reports whether the caller may act on userID. Customers are limited
// to their own id; authority tokens may act on any.
func canActFor(c echo.Context, userID string) bool {
	ctx := c.Request().Context()
	role, _ := common.GetRoleFromContext(ctx)
	if role != models.RoleCustomer {
		return true
	}
	caller, _ := common.GetUserIDFromContext(ctx)
	return caller == userID
}
