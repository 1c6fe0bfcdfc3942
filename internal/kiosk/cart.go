// Package kiosk holds the client-side application core: the cart, the
// controller that drives the customer and admin flows, and the background
// poller. It contains no transport or rendering code; the frontend binary
// and the REST client plug into it through small interfaces.
package kiosk

import "github.com/tastyhub/ordering-service/internal/models"

// RemoveEntirely, passed as a quantity delta, drops a cart entry regardless
// of its current quantity.
const RemoveEntirely = -1 << 30

// CartItem is a catalog item plus the quantity of it in the cart.
type CartItem struct {
	models.MenuItem
	Quantity int
}

// Cart accumulates the customer's selection before checkout. Entries keep
// insertion order; a quantity never drops to zero without the entry being
// removed. Cart is not safe for concurrent use; the Controller guards it.
type Cart struct {
	items []CartItem
}

// Add puts one unit of the item into the cart, merging with an existing
// entry for the same item ID.
func (c *Cart) Add(item models.MenuItem) {
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, CartItem{MenuItem: item, Quantity: 1})
}

// Adjust changes the quantity of the entry with the given item ID by delta.
// If the quantity reaches zero or below the entry is removed. Unknown IDs
// are ignored.
func (c *Cart) Adjust(itemID string, delta int) {
	for i := range c.items {
		if c.items[i].ID != itemID {
			continue
		}
		c.items[i].Quantity += delta
		if c.items[i].Quantity <= 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
		}
		return
	}
}

// Items returns a copy of the cart entries in insertion order.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Count returns the total number of units across all entries.
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Total returns the sum of price times quantity over all entries. An empty
// cart totals zero.
func (c *Cart) Total() int {
	sum := 0
	for _, it := range c.items {
		sum += it.Price * it.Quantity
	}
	return sum
}

// Empty reports whether the cart has no entries.
func (c *Cart) Empty() bool {
	return len(c.items) == 0
}

// Clear removes every entry.
func (c *Cart) Clear() {
	c.items = nil
}

// Lines converts the cart into order lines for submission. Names and prices
// are snapshotted so later catalog edits cannot change the order.
func (c *Cart) Lines() []models.OrderLine {
	lines := make([]models.OrderLine, 0, len(c.items))
	for _, it := range c.items {
		lines = append(lines, models.OrderLine{
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}
	return lines
}
