// Package catalog turns store records into the product shape served by the
// API. Everything here is pure: no I/O, no errors.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// prices are JSON numbers on the wire
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is the normalized API shape. Description and OriginalPrice
// encode as explicit nulls when absent.
type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   *string          `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
	Image         string           `json:"image"`
	Category      string           `json:"category"`
	IsNew         bool             `json:"isNew"`
	IsOnSale      bool             `json:"isOnSale"`
	Stock         int              `json:"stock"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
	Variants      []VariantGroup   `json:"variants"`
}

type VariantGroup struct {
	Name    string   `json:"name"`
	Options []Option `json:"options"`
}

type Option struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

// ProductVariants is the element of GET /api/products/variants.
type ProductVariants struct {
	ID       string         `json:"id"`
	Variants []VariantGroup `json:"variants"`
}

// VariantsOf projects products onto their variant trees, preserving order.
func VariantsOf(products []Product) []ProductVariants {
	out := make([]ProductVariants, len(products))
	for i, p := range products {
		out[i] = ProductVariants{ID: p.ID, Variants: p.Variants}
	}
	return out
}
