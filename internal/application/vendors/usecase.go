// Package vendors implementa el ciclo de vida de los perfiles de tienda:
// solicitud (apply / become-a-vendor), revisión y transiciones de etapa
// (aprobar, rechazar, suspender), además del CRUD administrativo.
package vendors

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/mercado-api/internal/application/auth"
	"github.com/jhoicas/mercado-api/internal/application/dto"
	"github.com/jhoicas/mercado-api/internal/domain"
	"github.com/jhoicas/mercado-api/internal/domain/entity"
	"github.com/jhoicas/mercado-api/internal/domain/repository"
)

// VendorUseCase ciclo de vida y CRUD de vendedores.
type VendorUseCase struct {
	vendorRepo repository.VendorRepository
	userRepo   repository.UserRepository
	mailer     Mailer
}

// NewVendorUseCase construye el caso de uso. mailer puede ser NopMailer.
func NewVendorUseCase(vendorRepo repository.VendorRepository, userRepo repository.UserRepository, mailer Mailer) *VendorUseCase {
	if mailer == nil {
		mailer = NopMailer{}
	}
	return &VendorUseCase{vendorRepo: vendorRepo, userRepo: userRepo, mailer: mailer}
}

// Apply crea el perfil de tienda (etapa applied) para un usuario autenticado
// y le agrega el rol vendor. Un usuario solo puede tener un perfil.
func (uc *VendorUseCase) Apply(ctx context.Context, userID string, in dto.VendorApplyRequest) (*dto.VendorResponse, error) {
	if in.StoreName == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	existing, err := uc.vendorRepo.GetByOwnerUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	vendor := &entity.Vendor{
		ID:             uuid.New().String(),
		OwnerUserID:    userID,
		StoreName:      in.StoreName,
		Description:    in.Description,
		SupportEmail:   in.SupportEmail,
		LifecycleStage: entity.StageApplied,
		Policies: entity.VendorPolicies{
			ShippingPolicy: in.ShippingPolicy,
			ReturnPolicy:   in.ReturnPolicy,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, err
	}
	if !user.HasRole(entity.RoleVendor) {
		user.Roles = append(user.Roles, entity.RoleVendor)
		user.UpdatedAt = now
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}
	return auth.ToVendorResponse(vendor), nil
}

// CheckEmail indica si un email está libre para registro de vendedor.
func (uc *VendorUseCase) CheckEmail(ctx context.Context, email string) (*dto.CheckEmailResponse, error) {
	if email == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &dto.CheckEmailResponse{Email: email, Available: user == nil}, nil
}

// GetByID obtiene un perfil por ID. (nil, nil) si no existe.
func (uc *VendorUseCase) GetByID(ctx context.Context, id string) (*dto.VendorResponse, error) {
	vendor, err := uc.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, nil
	}
	return auth.ToVendorResponse(vendor), nil
}

// List lista perfiles, opcionalmente filtrados por etapa.
func (uc *VendorUseCase) List(ctx context.Context, stage string, page dto.PageRequest) ([]dto.VendorResponse, *dto.Pagination, error) {
	if stage != "" && !entity.ValidStage(stage) {
		return nil, nil, domain.ErrInvalidInput
	}
	list, total, err := uc.vendorRepo.List(ctx, stage, page.Limit, page.Offset())
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.VendorResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *auth.ToVendorResponse(v))
	}
	return items, dto.NewPagination(page.Page, page.Limit, total), nil
}

// Update actualiza el perfil. El cambio de etapa valida la transición y
// notifica por correo al dueño en aprobación/rechazo.
func (uc *VendorUseCase) Update(ctx context.Context, id string, in dto.UpdateVendorRequest) (*dto.VendorResponse, error) {
	vendor, err := uc.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, nil
	}
	if in.StoreName != nil {
		if *in.StoreName == "" {
			return nil, domain.ErrInvalidInput
		}
		vendor.StoreName = *in.StoreName
	}
	if in.Description != nil {
		vendor.Description = *in.Description
	}
	if in.SupportEmail != nil {
		vendor.SupportEmail = *in.SupportEmail
	}
	if in.ShippingPolicy != nil {
		vendor.Policies.ShippingPolicy = *in.ShippingPolicy
	}
	if in.ReturnPolicy != nil {
		vendor.Policies.ReturnPolicy = *in.ReturnPolicy
	}
	var stageChanged string
	if in.LifecycleStage != nil && *in.LifecycleStage != vendor.LifecycleStage {
		if !entity.ValidStage(*in.LifecycleStage) {
			return nil, domain.ErrInvalidInput
		}
		if !vendor.CanTransitionTo(*in.LifecycleStage) {
			return nil, domain.ErrConflict
		}
		vendor.LifecycleStage = *in.LifecycleStage
		stageChanged = *in.LifecycleStage
	}
	vendor.UpdatedAt = time.Now()
	if err := uc.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, err
	}
	if stageChanged == entity.StageApproved || stageChanged == entity.StageRejected {
		uc.notifyStageChange(ctx, vendor, stageChanged)
	}
	return auth.ToVendorResponse(vendor), nil
}

// Delete elimina un perfil de tienda (solo admin).
func (uc *VendorUseCase) Delete(ctx context.Context, id string) error {
	vendor, err := uc.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if vendor == nil {
		return domain.ErrNotFound
	}
	return uc.vendorRepo.Delete(ctx, id)
}

// notifyStageChange envía el correo de aprobación/rechazo al dueño.
// Un fallo de SMTP no revierte la transición: solo se registra.
func (uc *VendorUseCase) notifyStageChange(ctx context.Context, vendor *entity.Vendor, stage string) {
	owner, err := uc.userRepo.GetByID(ctx, vendor.OwnerUserID)
	if err != nil || owner == nil {
		log.Warn().Str("vendor_id", vendor.ID).Msg("no se encontró el dueño para notificar")
		return
	}
	var subject, body string
	if stage == entity.StageApproved {
		subject = "Tu tienda fue aprobada"
		body = fmt.Sprintf("Hola %s, tu tienda %q ya está aprobada y puede publicar productos.", owner.Name, vendor.StoreName)
	} else {
		subject = "Tu solicitud de tienda fue rechazada"
		body = fmt.Sprintf("Hola %s, tu solicitud para la tienda %q fue rechazada. Puedes corregirla y volver a enviarla a revisión.", owner.Name, vendor.StoreName)
	}
	if err := uc.mailer.Send(ctx, owner.Email, subject, body); err != nil {
		log.Error().Err(err).Str("vendor_id", vendor.ID).Msg("envío de correo de ciclo de vida")
	}
}
