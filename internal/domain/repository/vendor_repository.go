package repository

import (
	"context"

	"github.com/jhoicas/mercado-api/internal/domain/entity"
)

// VendorRepository puerto de persistencia para perfiles de tienda.
// Los Get* devuelven (nil, nil) cuando el registro no existe.
type VendorRepository interface {
	Create(ctx context.Context, vendor *entity.Vendor) error
	GetByID(ctx context.Context, id string) (*entity.Vendor, error)
	GetByOwnerUser(ctx context.Context, userID string) (*entity.Vendor, error)
	Update(ctx context.Context, vendor *entity.Vendor) error
	Delete(ctx context.Context, id string) error
	// List filtra por etapa si stage no es vacío. Devuelve total para paginación.
	List(ctx context.Context, stage string, limit, offset int) ([]*entity.Vendor, int, error)
}
