package models

// CartItem is a dish snapshot plus the ordered quantity.
// A stored item always has Quantity >= 1; quantity zero means removal.
type CartItem struct {
	Dish
	Quantity int `json:"quantity"`
}

// Subtotal returns price times quantity for this line.
func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// CartTotals holds the derived cart totals.
type CartTotals struct {
	TotalItems int     `json:"totalItems"`
	TotalPrice float64 `json:"totalPrice"`
}

// CategoryGroup is a run of cart items sharing a category, in the order the
// items were added. Used by the order-detail view.
type CategoryGroup struct {
	Category string     `json:"category"`
	Items    []CartItem `json:"items"`
}
