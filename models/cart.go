package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID         int        `json:"id"`
	CartCode   string     `json:"cart_code"`
	UserID     *int       `json:"user_id,omitempty"`
	Paid       bool       `json:"paid"`
	Items      []CartItem `json:"items"`
	CreatedAt  time.Time  `json:"created_at"`
	ModifiedAt time.Time  `json:"modified_at"`
}

type CartItem struct {
	ID        int      `json:"id"`
	CartID    int      `json:"cart_id"`
	ProductID int      `json:"product_id"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int      `json:"quantity"`
}

// Total is the item's line total, price times quantity. Zero when the
// product has not been loaded.
func (i CartItem) Total() decimal.Decimal {
	if i.Product == nil {
		return decimal.Zero
	}
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SumTotal recomputes the cart total from its current line items. Totals
// are never persisted, so there is nothing to go stale.
func (c Cart) SumTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Total())
	}
	return total
}

// NumItems is the total quantity across all lines, not the line count.
func (c Cart) NumItems() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// CartSummary is the get_cart_stat payload.
type CartSummary struct {
	ID       int             `json:"id"`
	CartCode string          `json:"cart_code"`
	NumItems int             `json:"num_of_items"`
	SumTotal decimal.Decimal `json:"sum_total"`
}
