package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product pertenece a exactamente un Vendor. Stock nunca baja de cero:
// el descuento se hace con un UPDATE condicional en la capa de persistencia,
// no con read-then-write.
type Product struct {
	ID          string
	VendorID    string
	CategoryID  string
	Title       string
	Description string
	Price       decimal.Decimal // precio de venta vigente
	Stock       int
	Images      []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
