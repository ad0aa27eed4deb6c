package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one product line inside a cart.
type LineItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Items holds the cart lines in insertion order, at most one line per product.
type Items []LineItem

// Add returns a new slice with the item merged in: an existing product line
// has its quantity incremented by one, otherwise the item is appended with
// quantity one.
func (items Items) Add(item LineItem) Items {
	next := make(Items, len(items))
	copy(next, items)
	for i := range next {
		if next[i].ProductID == item.ProductID {
			next[i].Quantity++
			return next
		}
	}
	item.Quantity = 1
	return append(next, item)
}

// Remove returns a new slice without the product line. Absent ids are a no-op.
func (items Items) Remove(productID uuid.UUID) Items {
	next := make(Items, 0, len(items))
	for _, item := range items {
		if item.ProductID == productID {
			continue
		}
		next = append(next, item)
	}
	return next
}

// Clear returns an empty slice.
func (items Items) Clear() Items {
	return Items{}
}

// Total sums unit price times quantity across all lines.
func (items Items) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Count sums the quantities across all lines.
func (items Items) Count() int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}
