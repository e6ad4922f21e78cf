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

// VendorAuthUseCase autenticación de vendedores (familia vendor).
// No existe credencial propia del Vendor: se autentica la contraseña del User
// dueño y el token lleva el vendor_id como claim.
type VendorAuthUseCase struct {
	userRepo   repository.UserRepository
	vendorRepo repository.VendorRepository
	tokens     *token.Service
	denylist   Denylist
}

// NewVendorAuthUseCase construye el caso de uso de auth de vendedores.
func NewVendorAuthUseCase(userRepo repository.UserRepository, vendorRepo repository.VendorRepository, tokens *token.Service, denylist Denylist) *VendorAuthUseCase {
	return &VendorAuthUseCase{userRepo: userRepo, vendorRepo: vendorRepo, tokens: tokens, denylist: denylist}
}

// Register crea el User dueño (roles customer+vendor) y su perfil Vendor en
// etapa applied. Devuelve ErrEmailAlreadyExists si el email está tomado.
func (uc *VendorAuthUseCase) Register(ctx context.Context, in dto.VendorRegisterRequest) (*dto.VendorResponse, error) {
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
		name = in.StoreName
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Roles:        []string{entity.RoleCustomer, entity.RoleVendor},
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	vendor := &entity.Vendor{
		ID:             uuid.New().String(),
		OwnerUserID:    user.ID,
		StoreName:      in.StoreName,
		Description:    in.Description,
		SupportEmail:   in.SupportEmail,
		LifecycleStage: entity.StageApplied,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, err
	}
	return ToVendorResponse(vendor), nil
}

// Login autentica la credencial del dueño y emite tokens de la familia vendor.
// Solo tiendas approved pueden operar.
func (uc *VendorAuthUseCase) Login(ctx context.Context, in dto.SignInRequest) (*dto.AuthResponse, error) {
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
	vendor, err := uc.vendorRepo.GetByOwnerUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, domain.ErrVendorNotFound
	}
	if !vendor.IsApproved() {
		return nil, domain.ErrVendorNotApproved
	}
	if err := uc.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}
	sub := token.Subject{
		ID:           user.ID,
		Email:        user.Email,
		Roles:        user.Roles,
		VendorID:     vendor.ID,
		TokenVersion: user.TokenVersion,
	}
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

// Refresh canjea el refresh token vendor por un access token nuevo.
// Además de denylist y token_version, exige que la tienda siga approved:
// suspender un vendedor corta sus sesiones en el siguiente refresh.
func (uc *VendorAuthUseCase) Refresh(ctx context.Context, refreshToken string) (string, error) {
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
	vendor, err := uc.vendorRepo.GetByOwnerUser(ctx, user.ID)
	if err != nil {
		return "", err
	}
	if vendor == nil || !vendor.IsApproved() {
		return "", domain.ErrVendorNotApproved
	}
	sub := token.Subject{
		ID:           user.ID,
		Email:        user.Email,
		Roles:        user.Roles,
		VendorID:     vendor.ID,
		TokenVersion: user.TokenVersion,
	}
	return uc.tokens.IssueAccess(sub)
}

// Logout revoca el refresh token vendor. Siempre responde ok.
func (uc *VendorAuthUseCase) Logout(ctx context.Context, refreshToken string) error {
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

// Me devuelve el perfil de tienda del vendedor autenticado.
func (uc *VendorAuthUseCase) Me(ctx context.Context, vendorID string) (*dto.VendorResponse, error) {
	vendor, err := uc.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, domain.ErrVendorNotFound
	}
	return ToVendorResponse(vendor), nil
}

// ToVendorResponse mapea la entidad al DTO de salida.
func ToVendorResponse(v *entity.Vendor) *dto.VendorResponse {
	if v == nil {
		return nil
	}
	return &dto.VendorResponse{
		ID:             v.ID,
		OwnerUserID:    v.OwnerUserID,
		StoreName:      v.StoreName,
		Description:    v.Description,
		SupportEmail:   v.SupportEmail,
		LifecycleStage: v.LifecycleStage,
		ShippingPolicy: v.Policies.ShippingPolicy,
		ReturnPolicy:   v.Policies.ReturnPolicy,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}
