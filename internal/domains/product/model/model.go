package model

import (
	"github.com/shopspring/decimal"
)

// Product represents a catalog entry the cart can reference.
// Stock lives on the product row, or per variant when variants exist.
type Product struct {
	ID              string           `json:"id" db:"id"`
	Name            string           `json:"name" db:"name"`
	Manufacturer    string           `json:"manufacturer" db:"manufacturer"`
	UnitPrice       decimal.Decimal  `json:"unit_price" db:"unit_price"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price,omitempty" db:"discounted_price"`
	Stock           int              `json:"stock" db:"stock"`
	ImageRef        string           `json:"image_ref" db:"image_ref"`
	SellerRef       string           `json:"seller_ref" db:"seller_ref"`
	Size            string           `json:"size" db:"size"`
	IsActive        bool             `json:"is_active" db:"is_active"`

	// Variants are the purchasable sub-options (e.g. pack sizes),
	// each with its own price and stock
	Variants []Variant `json:"variants,omitempty"`
}

// HasVariants reports whether adding this product requires a
// variant selection first
func (p *Product) HasVariants() bool {
	return len(p.Variants) > 0
}

// Variant is a purchasable sub-option of a product
type Variant struct {
	ID              string           `json:"id" db:"id"`
	ProductID       string           `json:"product_id" db:"product_id"`
	Name            string           `json:"name" db:"name"`
	Size            string           `json:"size" db:"size"`
	UnitPrice       decimal.Decimal  `json:"unit_price" db:"unit_price"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price,omitempty" db:"discounted_price"`
	Stock           int              `json:"stock" db:"stock"`
}
