package repository

import (
	"context"

	"github.com/jhoicas/mercado-api/internal/domain/entity"
)

// UserRepository puerto de persistencia para usuarios.
// Los Get* devuelven (nil, nil) cuando el registro no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateLastLogin(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, int, error)
}
