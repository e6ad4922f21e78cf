// Package users administra las cuentas de usuario (solo admin): listado,
// consulta, cambio de roles y activación/desactivación.
package users

import (
	"context"
	"time"

	"github.com/jhoicas/mercado-api/internal/application/auth"
	"github.com/jhoicas/mercado-api/internal/application/dto"
	"github.com/jhoicas/mercado-api/internal/domain"
	"github.com/jhoicas/mercado-api/internal/domain/entity"
	"github.com/jhoicas/mercado-api/internal/domain/repository"
)

// UserAdminUseCase administración de cuentas.
type UserAdminUseCase struct {
	repo repository.UserRepository
}

// NewUserAdminUseCase construye el caso de uso.
func NewUserAdminUseCase(repo repository.UserRepository) *UserAdminUseCase {
	return &UserAdminUseCase{repo: repo}
}

// List lista usuarios con paginación.
func (uc *UserAdminUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.UserResponse, *dto.Pagination, error) {
	list, total, err := uc.repo.List(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return items, dto.NewPagination(page.Page, page.Limit, total), nil
}

// GetByID obtiene un usuario. (nil, nil) si no existe.
func (uc *UserAdminUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return auth.ToUserResponse(user), nil
}

// Update cambia roles y/o el flag de actividad. Desactivar una cuenta también
// incrementa token_version: los refresh tokens vigentes dejan de servir.
func (uc *UserAdminUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		user.Name = *in.Name
	}
	if in.Roles != nil {
		for _, role := range in.Roles {
			if role != entity.RoleCustomer && role != entity.RoleVendor && role != entity.RoleAdmin {
				return nil, domain.ErrInvalidInput
			}
		}
		user.Roles = in.Roles
	}
	if in.Active != nil && *in.Active != user.Active {
		user.Active = *in.Active
		if !user.Active {
			user.TokenVersion++
		}
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}
