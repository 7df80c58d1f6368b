package domain

import (
	"time"

	catalog "github.com/campuscart/campuscart/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

// TaxRate is the fixed sales tax rate applied to the cart subtotal (8%).
var TaxRate = decimal.New(8, -2)

// CartItem pairs a product with a quantity. The product is a snapshot taken
// when the item was first added; later catalog edits do not affect it.
type CartItem struct {
	ProductID string          `json:"product_id"`
	Product   catalog.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	AddedAt   time.Time       `json:"added_at"`
}

// Cart holds the session's selected items plus derived totals. The derived
// fields are recomputed after every mutation and are never stale.
type Cart struct {
	Items      []CartItem      `json:"items"`
	TotalItems int             `json:"total_items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
}

func Empty() Cart {
	return Cart{
		Items:    []CartItem{},
		Subtotal: decimal.Zero,
		Tax:      decimal.Zero,
		Total:    decimal.Zero,
	}
}

// Recalculate rebuilds the derived totals from the item collection.
// Tax is rounded to cents.
func (c *Cart) Recalculate() {
	totalItems := 0
	subtotal := decimal.Zero

	for _, item := range c.Items {
		totalItems += item.Quantity
		subtotal = subtotal.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	c.TotalItems = totalItems
	c.Subtotal = subtotal
	c.Tax = subtotal.Mul(TaxRate).Round(2)
	c.Total = subtotal.Add(c.Tax)
}

// IndexOf returns the position of the item for the given product, or -1.
func (c *Cart) IndexOf(productID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
