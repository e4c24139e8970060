package handlers

import (
	"net/http"

	"storefront/internal/common"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/labstack/echo/v4"
)

// ProductHandlers handles catalog reads and writes
type ProductHandlers struct {
	productService services.ProductService
}

func NewProductHandlers(productService services.ProductService) *ProductHandlers {
	return &ProductHandlers{productService: productService}
}

type ProductListResponse struct {
	Msg      string                   `json:"msg"`
	Products []*models.ProductSummary `json:"products"`
}

// GetProducts handles GET /api/customer/getProducts
func (h *ProductHandlers) GetProducts(c echo.Context) error {
	products, err := h.productService.ListProducts(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list products: %v", err)
		return common.SendServerError(c, common.MsgGenericError)
	}
	return c.JSON(http.StatusOK, ProductListResponse{Msg: common.MsgAllProducts, Products: products})
}

// UpsertProduct handles POST /api/authority/upsertProduct
func (h *ProductHandlers) UpsertProduct(c echo.Context) error {
	var req models.ProductUpsert
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}
	c.Set(common.ActivityUserKey, common.SafeString(req.UpdatedBy))

	inserted, err := h.productService.UpsertProduct(c.Request().Context(), &req)
	if err != nil {
		return sendStoreError(c, "upsert product", err)
	}

	msg := common.MsgProductUpdated
	if inserted {
		msg = common.MsgProductInserted
	}
	return c.JSON(http.StatusOK, common.MessageResponse{Msg: msg})
}
