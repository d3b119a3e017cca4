package domain

import (
	"slices"
	"time"
)

// Order status constants.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order is a placed storefront order. Items are a snapshot of the cart at
// checkout time.
type Order struct {
	ID              string      `json:"id" bson:"-"`
	User            string      `json:"user" bson:"user"`
	Items           []OrderItem `json:"items" bson:"items"`
	Total           float64     `json:"total" bson:"total"`
	Status          string      `json:"status" bson:"status"`
	ShippingAddress string      `json:"shippingAddress" bson:"shippingAddress"`
	PaymentID       string      `json:"paymentId,omitempty" bson:"paymentId,omitempty"`
	CreatedAt       time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID string   `json:"productId" bson:"productId" validate:"required"`
	Name      string   `json:"name" bson:"name"`
	Image     string   `json:"image" bson:"image"`
	Price     float64  `json:"price" bson:"price" validate:"gte=0"`
	Quantity  int      `json:"quantity" bson:"quantity" validate:"gte=1"`
	Sizes     []string `json:"sizes,omitempty" bson:"sizes,omitempty"`
	Colors    []string `json:"colors,omitempty" bson:"colors,omitempty"`
	Category  string   `json:"category,omitempty" bson:"category,omitempty"`
}

// ItemsTotal sums price times quantity across the order lines.
func (o *Order) ItemsTotal() float64 {
	var total float64
	for _, it := range o.Items {
		total += it.Price * float64(it.Quantity)
	}
	return roundTo(total, 2)
}

// OrderPatch carries the mutable fields of an order. Nil fields are unchanged.
type OrderPatch struct {
	Status          *string
	ShippingAddress *string
	PaymentID       *string
}

// IsEmpty reports whether the patch changes nothing.
func (p OrderPatch) IsEmpty() bool {
	return p.Status == nil && p.ShippingAddress == nil && p.PaymentID == nil
}

// Apply copies the set fields of patch onto o.
func (o *Order) Apply(patch OrderPatch) {
	if patch.Status != nil {
		o.Status = *patch.Status
	}
	if patch.ShippingAddress != nil {
		o.ShippingAddress = *patch.ShippingAddress
	}
	if patch.PaymentID != nil {
		o.PaymentID = *patch.PaymentID
	}
}

// ValidOrderStatuses returns all valid order statuses.
func ValidOrderStatuses() []string {
	return []string{
		OrderStatusPending,
		OrderStatusPaid,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}

// IsValidOrderStatus checks whether the given status is a valid order status.
func IsValidOrderStatus(status string) bool {
	return slices.Contains(ValidOrderStatuses(), status)
}
