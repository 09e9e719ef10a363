package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmastore-backend/internal/domains/cart/model"
	"pharmastore-backend/internal/domains/cart/service"
	productModel "pharmastore-backend/internal/domains/product/model"
	"pharmastore-backend/internal/shared/middleware"
	"pharmastore-backend/internal/shared/response"
)

// Handler handles HTTP requests for the cart
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// GetCart handles GET /me/cart
func (h *Handler) GetCart(c *gin.Context) {
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		response.BadRequest(c, "Missing cart session")
		return
	}

	cart, err := h.service.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		response.InternalServerError(c, "Failed to get cart")
		return
	}

	response.Success(c, http.StatusOK, cart)
}

// AddItem handles POST /me/cart/items
//
// Stock and variant outcomes are expected conditions and map to 4xx
// with machine-readable codes; the cart never 500s on "only N left".
func (h *Handler) AddItem(c *gin.Context) {
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		response.BadRequest(c, "Missing cart session")
		return
	}

	var req model.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.service.AddItem(c.Request.Context(), sessionID, req)
	if err != nil {
		h.writeAddItemError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, cart)
}

func (h *Handler) writeAddItemError(c *gin.Context, err error) {
	var variantRequired *model.VariantRequiredError
	var insufficient *model.InsufficientStockError

	switch {
	case errors.As(err, &variantRequired):
		response.ErrorWithDetails(c, http.StatusConflict, model.ErrCodeVariantRequired,
			"Select a variant before adding this product",
			model.VariantRequiredResponse{
				ProductID: variantRequired.ProductID,
				Variants:  variantRequired.Variants,
			})

	case errors.As(err, &insufficient):
		response.ErrorWithDetails(c, http.StatusConflict, model.ErrCodeInsufficientStock,
			fmt.Sprintf("Only %d left in stock", insufficient.Available),
			gin.H{"available": insufficient.Available})

	case errors.Is(err, model.ErrOutOfStock):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeOutOfStock,
			"Product is out of stock")

	case errors.Is(err, productModel.ErrProductNotFound),
		errors.Is(err, productModel.ErrVariantNotFound):
		response.NotFound(c, "Product not found")

	case errors.Is(err, model.ErrStockLookupFailed):
		response.ServiceUnavailable(c, "Stock lookup failed, try again")

	default:
		if isValidationError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalServerError(c, "Failed to add item")
	}
}

// UpdateQuantity handles PUT /me/cart/items/:line_id
func (h *Handler) UpdateQuantity(c *gin.Context) {
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		response.BadRequest(c, "Missing cart session")
		return
	}

	lineID := c.Param("line_id")

	var req model.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.service.UpdateQuantity(c.Request.Context(), sessionID, lineID, req)
	if err != nil {
		if isValidationError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalServerError(c, "Failed to update quantity")
		return
	}

	response.Success(c, http.StatusOK, cart)
}

// RemoveItem handles DELETE /me/cart/items/:line_id
func (h *Handler) RemoveItem(c *gin.Context) {
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		response.BadRequest(c, "Missing cart session")
		return
	}

	cart, err := h.service.RemoveItem(c.Request.Context(), sessionID, c.Param("line_id"))
	if err != nil {
		response.InternalServerError(c, "Failed to remove item")
		return
	}

	response.Success(c, http.StatusOK, cart)
}

// ClearCart handles DELETE /me/cart
func (h *Handler) ClearCart(c *gin.Context) {
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		response.BadRequest(c, "Missing cart session")
		return
	}

	if err := h.service.ClearCart(c.Request.Context(), sessionID); err != nil {
		response.InternalServerError(c, "Failed to clear cart")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cleared": true})
}

// Checkout handles POST /me/cart/checkout
func (h *Handler) Checkout(c *gin.Context) {
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		response.BadRequest(c, "Missing cart session")
		return
	}

	result, err := h.service.Checkout(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, model.ErrCartEmpty) {
			response.BadRequest(c, "Cart is empty")
			return
		}
		response.InternalServerError(c, "Failed to checkout")
		return
	}

	response.Success(c, http.StatusOK, result)
}
