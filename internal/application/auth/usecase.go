package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/mercado-api/internal/application/dto"
	"github.com/jhoicas/mercado-api/internal/domain"
	"github.com/jhoicas/mercado-api/internal/domain/entity"
	"github.com/jhoicas/mercado-api/internal/domain/repository"
	"github.com/jhoicas/mercado-api/pkg/token"
)

// UserAuthUseCase autenticación de usuarios finales (familia user):
// registro, login, refresh, logout, perfil y cambio de contraseña.
type UserAuthUseCase struct {
	userRepo repository.UserRepository
	tokens   *token.Service
	denylist Denylist
}

// NewUserAuthUseCase construye el caso de uso de auth de usuarios.
func NewUserAuthUseCase(userRepo repository.UserRepository, tokens *token.Service, denylist Denylist) *UserAuthUseCase {
	return &UserAuthUseCase{userRepo: userRepo, tokens: tokens, denylist: denylist}
}

// Register crea un usuario: hashea password con bcrypt y persiste con rol customer.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *UserAuthUseCase) Register(ctx context.Context, in dto.SignUpRequest) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Roles:        []string{entity.RoleCustomer},
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica credenciales, marca last_login y emite el par access/refresh.
func (uc *UserAuthUseCase) Login(ctx context.Context, in dto.SignInRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	if err := uc.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}
	sub := token.Subject{ID: user.ID, Email: user.Email, Roles: user.Roles, TokenVersion: user.TokenVersion}
	access, err := uc.tokens.IssueAccess(sub)
	if err != nil {
		return nil, err
	}
	refresh, err := uc.tokens.IssueRefresh(sub)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		User:         ToUserResponse(user),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Refresh canjea un refresh token vigente por un access token nuevo.
// Rechaza tokens revocados (denylist) y tokens de una token_version anterior
// (cambio de contraseña).
func (uc *UserAuthUseCase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := uc.tokens.Verify(refreshToken)
	if err != nil {
		return "", domain.ErrUnauthorized
	}
	if claims.TokenType != token.TypeRefresh {
		return "", domain.ErrUnauthorized
	}
	revoked, err := uc.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return "", err
	}
	if revoked {
		return "", domain.ErrTokenRevoked
	}
	user, err := uc.userRepo.GetByID(ctx, claims.Subject)
	if err != nil {
		return "", err
	}
	if user == nil || !user.Active {
		return "", domain.ErrUnauthorized
	}
	if claims.TokenVersion != user.TokenVersion {
		return "", domain.ErrTokenRevoked
	}
	// Roles frescos desde la DB, no los del token viejo.
	sub := token.Subject{ID: user.ID, Email: user.Email, Roles: user.Roles, TokenVersion: user.TokenVersion}
	return uc.tokens.IssueAccess(sub)
}

// Logout revoca el refresh token en el denylist hasta su expiración natural.
// Un token ya vencido o inválido no necesita revocación: logout siempre responde ok.
func (uc *UserAuthUseCase) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := uc.tokens.Verify(refreshToken)
	if err != nil || claims.TokenType != token.TypeRefresh {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return uc.denylist.Revoke(ctx, claims.ID, ttl)
}

// Me devuelve el perfil del usuario autenticado.
func (uc *UserAuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// ChangePassword verifica la contraseña actual, guarda el hash nuevo e
// incrementa token_version: todos los refresh tokens vigentes quedan inválidos.
func (uc *UserAuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.TokenVersion++
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(ctx, user)
}

// ToUserResponse mapea la entidad al DTO de salida (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Roles:       u.Roles,
		Active:      u.Active,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
