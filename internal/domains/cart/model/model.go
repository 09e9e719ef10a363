package model

import (
	"github.com/shopspring/decimal"

	productModel "pharmastore-backend/internal/domains/product/model"
)

// CartLine represents one purchasable entry in the cart.
// A line is identified by LineID: the product id alone, or
// "{productId}-{variantId}" when a variant was selected.
type CartLine struct {
	LineID          string           `json:"lineId"`
	ProductID       string           `json:"productId"`
	VariantID       string           `json:"variantId,omitempty"`
	Name            string           `json:"name"`
	UnitPrice       decimal.Decimal  `json:"unitPrice"`
	DiscountedPrice *decimal.Decimal `json:"discountedPrice,omitempty"`
	Quantity        int              `json:"quantity"`

	// KnownStock is the last stock count observed for this line.
	// nil means unknown - quantities are never clamped against nil.
	KnownStock *int `json:"stock,omitempty"`

	// Display metadata, carried through unchanged
	ImageRef  string `json:"imageRef,omitempty"`
	Size      string `json:"size,omitempty"`
	SellerRef string `json:"sellerRef,omitempty"`
}

// LineID derives the cart line identity for a product + optional variant
func LineID(productID, variantID string) string {
	if variantID == "" {
		return productID
	}
	return productID + "-" + variantID
}

// EffectivePrice returns the price used for totals: the discounted
// price when present and strictly lower than the unit price.
func (l *CartLine) EffectivePrice() decimal.Decimal {
	if l.DiscountedPrice != nil && l.DiscountedPrice.LessThan(l.UnitPrice) {
		return *l.DiscountedPrice
	}
	return l.UnitPrice
}

// CartState is the cart aggregate. Lines keep insertion order.
// Totals are derived from Lines and recomputed on every mutation -
// never hand-patched - so they cannot drift.
type CartState struct {
	Lines           []CartLine      `json:"lines"`
	TotalQuantity   int             `json:"totalQuantity"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	DiscountedTotal decimal.Decimal `json:"discountedTotal"`
}

func NewCartState() *CartState {
	return &CartState{
		Lines:           []CartLine{},
		TotalPrice:      decimal.Zero,
		DiscountedTotal: decimal.Zero,
	}
}

// RecomputeTotals rebuilds every derived field from Lines
func (s *CartState) RecomputeTotals() {
	totalQuantity := 0
	totalPrice := decimal.Zero
	discountedTotal := decimal.Zero

	for i := range s.Lines {
		line := &s.Lines[i]
		qty := decimal.NewFromInt(int64(line.Quantity))

		totalQuantity += line.Quantity
		totalPrice = totalPrice.Add(line.UnitPrice.Mul(qty))
		discountedTotal = discountedTotal.Add(line.EffectivePrice().Mul(qty))
	}

	s.TotalQuantity = totalQuantity
	s.TotalPrice = totalPrice
	s.DiscountedTotal = discountedTotal
}

// FindLine returns the index of the line with the given id, or -1
func (s *CartState) FindLine(lineID string) int {
	for i := range s.Lines {
		if s.Lines[i].LineID == lineID {
			return i
		}
	}
	return -1
}

// AddCandidate describes a product about to be added to the cart.
// Built by the cart service from the product catalog; the store never
// talks to the catalog directly.
type AddCandidate struct {
	ProductID       string
	Name            string
	UnitPrice       decimal.Decimal
	DiscountedPrice *decimal.Decimal

	// StockHint is a locally known stock count (e.g. from the listing
	// page). Used as fallback when the live lookup fails.
	StockHint *int

	// Variants lists the purchasable sub-options. When non-empty and no
	// variant has been resolved, the add is interrupted for selection.
	Variants []productModel.Variant

	ImageRef  string
	Size      string
	SellerRef string
}

// ResolveVariant returns the variant with the given id, or nil
func (c *AddCandidate) ResolveVariant(variantID string) *productModel.Variant {
	for i := range c.Variants {
		if c.Variants[i].ID == variantID {
			return &c.Variants[i]
		}
	}
	return nil
}
