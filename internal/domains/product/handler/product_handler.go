package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmastore-backend/internal/domains/product/model"
	"pharmastore-backend/internal/domains/product/service"
	"pharmastore-backend/internal/shared/response"
)

// Handler handles HTTP requests for the product catalog
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// GetProduct handles GET /products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	productID := c.Param("id")

	product, err := h.service.GetProduct(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			response.NotFound(c, "Product not found")
			return
		}
		response.InternalServerError(c, "Failed to get product")
		return
	}

	response.Success(c, http.StatusOK, product)
}

// GetStock handles GET /products/:id/stock
// Returns the live (short-cached) stock count the cart reconciles
// against.
func (h *Handler) GetStock(c *gin.Context) {
	productID := c.Param("id")
	variantID := c.Query("variant_id")

	stock, err := h.service.GetStock(c.Request.Context(), productID, variantID)
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) || errors.Is(err, model.ErrVariantNotFound) {
			response.NotFound(c, "Product not found")
			return
		}
		response.ServiceUnavailable(c, "Stock lookup failed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"product_id": productID,
		"variant_id": variantID,
		"stock":      stock,
	})
}
