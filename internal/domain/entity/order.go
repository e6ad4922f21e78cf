package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Order.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// OrderItem línea de una orden. UnitPrice y Title son snapshots al momento
// de la compra, no referencias vivas al Product.
type OrderItem struct {
	ProductID string
	Title     string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Order pertenece a un cliente (UserID) y a un vendedor (VendorID).
type Order struct {
	ID        string
	UserID    string
	VendorID  string
	Items     []OrderItem
	Status    string // pending, processing, shipped, delivered, cancelled
	Total     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidOrderStatus indica si el valor es un estado conocido.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// ComputeTotal suma quantity × unit_price de todas las líneas.
func (o *Order) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
