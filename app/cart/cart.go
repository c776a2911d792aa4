// Package cart builds the starter cart shown on an empty session from the
// head of the catalog.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/storefront/app/catalog"
	"github.com/shashiranjanraj/storefront/pkg/collection"
)

// SeedLimit is how many catalog products the starter cart takes.
const SeedLimit = 3

// LineItem is a derived cart row. It is never persisted.
type LineItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
}

// Assemble takes the first SeedLimit products in the given order. The
// first line gets quantity 2, every other line quantity 1.
func Assemble(products []catalog.Product) []LineItem {
	head := collection.Take(products, SeedLimit)

	items := make([]LineItem, len(head))
	for i, p := range head {
		items[i] = LineItem{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Image:       p.Image,
			Category:    p.Category,
			Quantity:    seedQuantity(i),
		}
	}
	return items
}

func seedQuantity(index int) int {
	if index == 0 {
		return 2
	}
	return 1
}

// Total sums price times quantity over items.
func Total(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
