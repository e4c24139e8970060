package handlers

import (
	"errors"
	"net/http"
	"time"

	"storefront/internal/common"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles registration and login for customers and authorities
type AuthHandlers struct {
	authService services.AuthService
}

func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

type RegisterCustomerRequest struct {
	FirstName          string  `json:"firstName" validate:"required,min=3,max=15"`
	LastName           string  `json:"lastName" validate:"max=30"`
	LastOrderAddressID *string `json:"lastOrderAddressId,omitempty"`
	BirthDate          string  `json:"birthDate,omitempty" validate:"omitempty,ymd"`
	Email              string  `json:"email" validate:"required,email"`
	PhoneNumber        string  `json:"phoneNumber" validate:"required,phone"`
	Password           string  `json:"password" validate:"required,min=4,max=30"`
}

type RegisteredUser struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type RegisterCustomerResponse struct {
	Msg  string         `json:"msg"`
	User RegisteredUser `json:"user"`
}

// LoginRequest is shared by customer and authority login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4,max=30"`
}

// RegisterCustomer handles POST /api/customer/registerCustomer
func (h *AuthHandlers) RegisterCustomer(c echo.Context) error {
	var req RegisterCustomerRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	customer := &models.Customer{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              req.Email,
		PhoneNumber:        req.PhoneNumber,
		LastOrderAddressID: req.LastOrderAddressID,
	}
	if req.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return common.SendValidationError(c, "birthDate", common.MsgBirthDateFormat)
		}
		customer.BirthDate = &birthDate
	}

	err := h.authService.RegisterCustomer(c.Request().Context(), customer, req.Password)
	c.Set(common.ActivityUserKey, customer.UserID)
	if err != nil {
		return sendStoreError(c, "register customer", err)
	}

	return c.JSON(http.StatusCreated, RegisterCustomerResponse{
		Msg:  common.MsgRegistered,
		User: RegisteredUser{FirstName: customer.FirstName, LastName: customer.LastName},
	})
}

// LoginCustomer handles POST /api/customer/loginCustomer
func (h *AuthHandlers) LoginCustomer(c echo.Context) error {
	var req LoginRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	customer, token, err := h.authService.LoginCustomer(c.Request().Context(), req.Email, req.Password)
	if customer != nil {
		c.Set(common.ActivityUserKey, customer.UserID)
	}
	return h.loginResult(c, token, err)
}

// LoginAuthority handles POST /api/authority/loginAuthority
func (h *AuthHandlers) LoginAuthority(c echo.Context) error {
	var req LoginRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	authority, token, err := h.authService.LoginAuthority(c.Request().Context(), req.Email, req.Password)
	if authority != nil {
		c.Set(common.ActivityUserKey, authority.UserID)
	}
	return h.loginResult(c, token, err)
}

func (h *AuthHandlers) loginResult(c echo.Context, token *models.TokenResponse, err error) error {
	if errors.Is(err, services.ErrInvalidCredentials) {
		return common.SendClientError(c, common.MsgBadCredentials)
	}
	if err != nil {
		c.Logger().Errorf("login: %v", err)
		return common.SendServerError(c, common.MsgGenericError)
	}
	return c.JSON(http.StatusOK, token)
}
