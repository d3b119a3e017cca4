package domain

import (
	"slices"
	"time"
)

// FlatShippingFee is charged on any cart with a positive subtotal.
const FlatShippingFee = 5.0

// Cart represents a shopper's cart. Version is bumped on every save and used
// for optimistic locking.
type Cart struct {
	UserID    string     `json:"userId"`
	Items     []CartItem `json:"items"`
	Version   int        `json:"version"`
	UpdatedAt time.Time  `json:"updatedAt"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

// CartItem is one cart line. The same product in a different size or color
// is a separate line.
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
	Category  string  `json:"category,omitempty"`
}

// LineKey identifies a cart line.
type LineKey struct {
	ProductID string
	Size      string
	Color     string
}

// Key returns the line key of the item.
func (i CartItem) Key() LineKey {
	return LineKey{ProductID: i.ProductID, Size: i.Size, Color: i.Color}
}

// CartSnapshot is a read-only view of a cart with its totals.
type CartSnapshot struct {
	UserID    string     `json:"userId"`
	Items     []CartItem `json:"items"`
	ItemCount int        `json:"itemCount"`
	Subtotal  float64    `json:"subtotal"`
	Shipping  float64    `json:"shipping"`
	Total     float64    `json:"total"`
}

// NewCart returns an empty cart for userID.
func NewCart(userID string) *Cart {
	return &Cart{UserID: userID, Items: []CartItem{}}
}

// FindItemIndex returns the index of the line with the given key, or -1.
func (c *Cart) FindItemIndex(key LineKey) int {
	return slices.IndexFunc(c.Items, func(it CartItem) bool { return it.Key() == key })
}

// Add merges item into the cart. An existing line has its quantity increased
// and its descriptive fields refreshed.
func (c *Cart) Add(item CartItem) {
	if i := c.FindItemIndex(item.Key()); i >= 0 {
		item.Quantity += c.Items[i].Quantity
		c.Items[i] = item
		return
	}
	c.Items = append(c.Items, item)
}

// Remove deletes the line with the given key and reports whether it existed.
func (c *Cart) Remove(key LineKey) bool {
	i := c.FindItemIndex(key)
	if i < 0 {
		return false
	}
	c.Items = slices.Delete(c.Items, i, i+1)
	return true
}

// UpdateQuantity sets the quantity of a line. A quantity of 0 or less removes
// it. Reports whether the line existed.
func (c *Cart) UpdateQuantity(key LineKey, quantity int) bool {
	if quantity <= 0 {
		return c.Remove(key)
	}
	i := c.FindItemIndex(key)
	if i < 0 {
		return false
	}
	c.Items[i].Quantity = quantity
	return true
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

// ItemCount returns the total number of units in the cart.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal sums price times quantity across all lines.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return roundTo(total, 2)
}

// Snapshot returns a copy of the cart contents with computed totals.
func (c *Cart) Snapshot() CartSnapshot {
	subtotal := c.Subtotal()
	shipping := 0.0
	if subtotal > 0 {
		shipping = FlatShippingFee
	}
	items := slices.Clone(c.Items)
	if items == nil {
		items = []CartItem{}
	}
	return CartSnapshot{
		UserID:    c.UserID,
		Items:     items,
		ItemCount: c.ItemCount(),
		Subtotal:  subtotal,
		Shipping:  shipping,
		Total:     roundTo(subtotal+shipping, 2),
	}
}
