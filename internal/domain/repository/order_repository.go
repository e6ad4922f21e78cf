package repository

import (
	"context"

	"github.com/jhoicas/mercado-api/internal/domain/entity"
)

// OrderFilter restringe el listado según el rol del caller:
// customer ve sus órdenes (UserID), vendor las de su tienda (VendorID),
// admin todas (ambos vacíos).
type OrderFilter struct {
	UserID   string
	VendorID string
	Status   string
}

// OrderRepository puerto de persistencia para órdenes.
// Los Get* devuelven (nil, nil) cuando el registro no existe.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter OrderFilter, limit, offset int) ([]*entity.Order, int, error)
}
