package handlers

import (
	"errors"
	"net/http"

	"storefront/internal/common"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/labstack/echo/v4"
)

// OrderHandlers handles HTTP requests for orders
type OrderHandlers struct {
	orderTx      services.OrderTransaction
	orderQueries services.OrderQueryService
}

func NewOrderHandlers(orderTx services.OrderTransaction, orderQueries services.OrderQueryService) *OrderHandlers {
	return &OrderHandlers{
		orderTx:      orderTx,
		orderQueries: orderQueries,
	}
}

type OrderListResponse struct {
	Msg    string                 `json:"msg"`
	Orders []*models.OrderSummary `json:"orders"`
}

type OrderDetailsResponse struct {
	Msg    string                   `json:"msg"`
	Orders []*models.OrderDetailRow `json:"orders"`
}

type OrderDetailResponse struct {
	Msg   string                   `json:"msg"`
	Order []*models.OrderDetailRow `json:"order"`
}

// CreateOrder handles POST /api/customer/createOrder
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	var req models.OrderRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}
	if !canActFor(c, req.UserID) {
		return common.SendForbiddenError(c)
	}

	result, err := h.orderTx.CreateOrder(c.Request().Context(), &req)
	if err != nil {
		return h.sendOrderError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// sendOrderError answers business rule failures with 400 and their code; everything else is a generic 500
func (h *OrderHandlers) sendOrderError(c echo.Context, err error) error {
	var orderErr services.OrderError
	if errors.As(err, &orderErr) {
		switch orderErr.(type) {
		case *services.InvalidProductError:
			return common.SendCodedClientError(c, "INVALID_PRODUCT", orderErr.UserMessage())
		case *services.InvalidAddressError:
			return common.SendCodedClientError(c, "INVALID_ADDRESS", orderErr.UserMessage())
		case *services.InsufficientStockError:
			return common.SendCodedClientError(c, "INSUFFICIENT_STOCK", orderErr.UserMessage())
		case *services.UniquenessViolationError:
			c.Logger().Errorf("create order: %v", err)
			return common.SendCodedClientError(c, "UNIQUENESS_VIOLATION", orderErr.UserMessage())
		}
	}
	c.Logger().Errorf("create order: %v", err)
	return common.SendServerError(c, common.MsgGenericError)
}

func (h *OrderHandlers) userIDParam(c echo.Context) (string, bool, error) {
	userID := c.QueryParam("userId")
	if userID == "" || len(userID) > 10 {
		return "", false, common.SendValidationError(c, "userId", common.MsgFillAllFields)
	}
	if !canActFor(c, userID) {
		return "", false, common.SendForbiddenError(c)
	}
	return userID, true, nil
}

// ListOrders handles GET /api/customer/listOrders?userId=
func (h *OrderHandlers) ListOrders(c echo.Context) error {
	userID, ok, err := h.userIDParam(c)
	if !ok {
		return err
	}

	orders, err := h.orderQueries.ListOrders(c.Request().Context(), userID)
	if err != nil {
		c.Logger().Errorf("list orders: %v", err)
		return common.SendServerError(c, common.MsgGenericError)
	}
	return c.JSON(http.StatusOK, OrderListResponse{Msg: common.MsgAllOrders, Orders: orders})
}

// GetAllOrders handles GET /api/customer/getAllOrders?userId=
func (h *OrderHandlers) GetAllOrders(c echo.Context) error {
	userID, ok, err := h.userIDParam(c)
	if !ok {
		return err
	}

	rows, err := h.orderQueries.GetAllOrders(c.Request().Context(), userID)
	if err != nil {
		c.Logger().Errorf("get all orders: %v", err)
		return common.SendServerError(c, common.MsgGenericError)
	}
	return c.JSON(http.StatusOK, OrderDetailsResponse{Msg: common.MsgAllOrders, Orders: rows})
}

// GetOrderWithOrderID handles GET /api/customer/getOrderWithOrderId?orderId=
func (h *OrderHandlers) GetOrderWithOrderID(c echo.Context) error {
	orderID := c.QueryParam("orderId")
	if orderID == "" || len(orderID) > 12 {
		return common.SendValidationError(c, "orderId", common.MsgFillAllFields)
	}

	rows, err := h.orderQueries.GetOrderDetail(c.Request().Context(), orderID)
	if err != nil {
		c.Logger().Errorf("get order %s: %v", orderID, err)
		return common.SendServerError(c, common.MsgGenericError)
	}
	if len(rows) > 0 && !canActFor(c, rows[0].UserID) {
		return common.SendForbiddenError(c)
	}
	return c.JSON(http.StatusOK, OrderDetailResponse{Msg: common.MsgOrderDetail, Order: rows})
}
