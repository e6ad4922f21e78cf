package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderItem línea del checkout. El precio no se acepta del cliente:
// se captura del producto al momento de la compra.
type CreateOrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest entrada del checkout. Todos los ítems deben pertenecer
// al mismo vendedor.
type CreateOrderRequest struct {
	VendorID string            `json:"vendorId"`
	Items    []CreateOrderItem `json:"items"`
}

// UpdateOrderRequest cambio de estado de la orden.
type UpdateOrderRequest struct {
	Status string `json:"status"`
}

// OrderItemResponse línea de orden con el precio snapshot.
type OrderItemResponse struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"userId"`
	VendorID  string              `json:"vendorId"`
	Items     []OrderItemResponse `json:"items"`
	Status    string              `json:"status"`
	Total     decimal.Decimal     `json:"total"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}
