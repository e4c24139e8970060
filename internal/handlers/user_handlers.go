package handlers

import (
	"net/http"

	"storefront/internal/common"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/labstack/echo/v4"
)

// UserHandlers handles customer addresses and back-office accounts
type UserHandlers struct {
	authService    services.AuthService
	addressService services.AddressService
}

func NewUserHandlers(authService services.AuthService, addressService services.AddressService) *UserHandlers {
	return &UserHandlers{
		authService:    authService,
		addressService: addressService,
	}
}

type AddAddressRequest struct {
	UserID       string  `json:"userId" validate:"required,max=10"`
	City         string  `json:"city" validate:"required"`
	Neighborhood string  `json:"neighborhood" validate:"required"`
	Country      string  `json:"country" validate:"required"`
	Street       string  `json:"street" validate:"required"`
	Description  *string `json:"description,omitempty"`
}

type AddAuthorityRequest struct {
	FirstName   string `json:"firstName" validate:"required,min=3,max=15"`
	LastName    string `json:"lastName" validate:"max=30"`
	AppRole     string `json:"appRole" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required,phone"`
	Password    string `json:"password" validate:"required,min=4,max=30"`
}

type AddAuthorityResponse struct {
	Msg  string            `json:"msg"`
	User *models.Authority `json:"user"`
}

// AddAddress handles POST /api/customer/addAddress
func (h *UserHandlers) AddAddress(c echo.Context) error {
	var req AddAddressRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}
	c.Set(common.ActivityUserKey, req.UserID)
	if !canActFor(c, req.UserID) {
		return common.SendForbiddenError(c)
	}

	address := &models.Address{
		UserID:       req.UserID,
		City:         req.City,
		Neighborhood: req.Neighborhood,
		Country:      req.Country,
		Street:       req.Street,
		Description:  req.Description,
	}
	if err := h.addressService.AddAddress(c.Request().Context(), address); err != nil {
		return sendStoreError(c, "add address", err)
	}

	return c.JSON(http.StatusCreated, common.MessageResponse{Msg: common.MsgAddressAdded})
}

// AddUserByAdmin handles POST /api/authority/addUserByAdmin
func (h *UserHandlers) AddUserByAdmin(c echo.Context) error {
	var req AddAuthorityRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	authority := &models.Authority{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		AppRole:     req.AppRole,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}
	err := h.authService.AddAuthority(c.Request().Context(), authority, req.Password)
	c.Set(common.ActivityUserKey, authority.UserID)
	if err != nil {
		if _, dup := common.IsUniqueViolation(err); dup {
			return common.SendClientError(c, common.MsgEmailTaken)
		}
		c.Logger().Errorf("add authority: %v", err)
		return common.SendServerError(c, common.MsgGenericError)
	}

	return c.JSON(http.StatusCreated, AddAuthorityResponse{Msg: common.MsgRegistered, User: authority})
}
