package repository

import (
	"context"

	"github.com/jhoicas/mercado-api/internal/domain/entity"
)

// CategoryRepository puerto de persistencia para categorías.
// Los Get* devuelven (nil, nil) cuando el registro no existe.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
	// ListActive devuelve solo categorías activas ordenadas por nombre,
	// con total de activas para paginación.
	ListActive(ctx context.Context, limit, offset int) ([]*entity.Category, int, error)
}
