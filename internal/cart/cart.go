// Package cart holds the order-cart state machine. The cart is purely local
// state: operations never touch the network and never fail, invalid inputs
// are normalized instead of rejected.
package cart

import (
	"sync"

	"github.com/sggmico/skitchen/internal/models"
)

// Cart is an insertion-ordered collection of cart items, unique by dish id.
type Cart struct {
	mu    sync.Mutex
	items []models.CartItem
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem adds one unit of the dish. If the dish is already in the cart its
// quantity goes up by one, otherwise a new line is appended at the end.
func (c *Cart) AddItem(d models.Dish) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == d.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, models.CartItem{Dish: d, Quantity: 1})
}

// SetQuantity sets the quantity for the dish. Zero or negative removes the
// line; quantity is never clamped upward. Unknown ids are a no-op.
func (c *Cart) SetQuantity(dishID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.remove(dishID)
		return
	}
	for i := range c.items {
		if c.items[i].ID == dishID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem removes the dish's line. Unknown ids are a no-op.
func (c *Cart) RemoveItem(dishID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.remove(dishID)
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Totals derives the item count and price total. Recomputed on every call so
// a read can never be stale relative to the cart.
func (c *Cart) Totals() models.CartTotals {
	c.mu.Lock()
	defer c.mu.Unlock()

	var t models.CartTotals
	for _, item := range c.items {
		t.TotalItems += item.Quantity
		t.TotalPrice += item.Subtotal()
	}
	return t
}

// GroupByCategory partitions the cart lines by dish category for the order
// detail view. Categories appear in first-seen order, items keep their
// insertion order within each group.
func (c *Cart) GroupByCategory() []models.CategoryGroup {
	c.mu.Lock()
	defer c.mu.Unlock()

	var groups []models.CategoryGroup
	index := make(map[string]int)
	for _, item := range c.items {
		i, ok := index[item.Category]
		if !ok {
			i = len(groups)
			index[item.Category] = i
			groups = append(groups, models.CategoryGroup{Category: item.Category})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// remove expects c.mu to be held.
func (c *Cart) remove(dishID string) {
	for i := range c.items {
		if c.items[i].ID == dishID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}
