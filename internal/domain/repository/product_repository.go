package repository

import (
	"context"

	"github.com/jhoicas/mercado-api/internal/domain/entity"
)

// ProductFilter filtros del listado de productos. VendorID y CategoryID son
// match exacto; Query es substring case-insensitive sobre el título.
type ProductFilter struct {
	VendorID   string
	CategoryID string
	Query      string
}

// ProductRepository puerto de persistencia para productos.
// Los Get* devuelven (nil, nil) cuando el registro no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, int, error)
	// DecrementStock descuenta qty de forma atómica solo si el stock resultante
	// no queda negativo. Devuelve false si no había stock suficiente (o el
	// producto no existe); el caller decide abortar la transacción.
	DecrementStock(ctx context.Context, productID string, qty int) (bool, error)
}
