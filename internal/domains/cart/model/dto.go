package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	productModel "pharmastore-backend/internal/domains/product/model"
)

// AddItemRequest adds one unit of a product (optionally a specific
// variant) to the cart
type AddItemRequest struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id,omitempty"`

	// Stock is an optional client-side hint (e.g. the count shown on
	// the listing page), used only when the live lookup fails
	Stock *int `json:"stock,omitempty"`
}

func (r AddItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required, validation.Length(1, 64)),
		validation.Field(&r.VariantID, validation.Length(0, 64)),
		validation.Field(&r.Stock, validation.Min(0)),
	)
}

// UpdateQuantityRequest sets a line's quantity. Quantity 0 removes
// the line. Stock, when supplied, is a fresher bound than the line's
// stored one and silently clamps the request.
type UpdateQuantityRequest struct {
	Quantity int  `json:"quantity"`
	Stock    *int `json:"stock,omitempty"`
}

func (r UpdateQuantityRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Quantity, validation.Min(0)),
		validation.Field(&r.Stock, validation.Min(0)),
	)
}

// CartLineResponse mirrors CartLine for API responses
type CartLineResponse struct {
	LineID          string           `json:"line_id"`
	ProductID       string           `json:"product_id"`
	VariantID       string           `json:"variant_id,omitempty"`
	Name            string           `json:"name"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price,omitempty"`
	Quantity        int              `json:"quantity"`
	KnownStock      *int             `json:"known_stock,omitempty"`
	ImageRef        string           `json:"image_ref,omitempty"`
	Size            string           `json:"size,omitempty"`
	SellerRef       string           `json:"seller_ref,omitempty"`
}

// CartResponse is the full cart view returned by every mutation
type CartResponse struct {
	Lines           []CartLineResponse `json:"lines"`
	TotalQuantity   int                `json:"total_quantity"`
	TotalPrice      decimal.Decimal    `json:"total_price"`
	DiscountedTotal decimal.Decimal    `json:"discounted_total"`
}

// VariantRequiredResponse is returned when an add is interrupted for
// variant selection; the client re-submits with variant_id set
type VariantRequiredResponse struct {
	ProductID string                 `json:"product_id"`
	Variants  []productModel.Variant `json:"variants"`
}

// CheckoutResponse acknowledges checkout completion; the cart is
// cleared asynchronously
type CheckoutResponse struct {
	SessionID     string          `json:"session_id"`
	TotalQuantity int             `json:"total_quantity"`
	Total         decimal.Decimal `json:"total"`
}

// ToResponse converts CartState into the API shape
func (s *CartState) ToResponse() *CartResponse {
	lines := make([]CartLineResponse, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = CartLineResponse{
			LineID:          l.LineID,
			ProductID:       l.ProductID,
			VariantID:       l.VariantID,
			Name:            l.Name,
			UnitPrice:       l.UnitPrice,
			DiscountedPrice: l.DiscountedPrice,
			Quantity:        l.Quantity,
			KnownStock:      l.KnownStock,
			ImageRef:        l.ImageRef,
			Size:            l.Size,
			SellerRef:       l.SellerRef,
		}
	}

	return &CartResponse{
		Lines:           lines,
		TotalQuantity:   s.TotalQuantity,
		TotalPrice:      s.TotalPrice,
		DiscountedTotal: s.DiscountedTotal,
	}
}
