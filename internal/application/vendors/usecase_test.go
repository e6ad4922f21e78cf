package vendors_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mercado-api/internal/application/dto"
	"github.com/jhoicas/mercado-api/internal/application/vendors"
	"github.com/jhoicas/mercado-api/internal/domain"
	"github.com/jhoicas/mercado-api/internal/domain/entity"
)

type fakeVendorRepo struct {
	vendors map[string]*entity.Vendor
}

func newFakeVendorRepo() *fakeVendorRepo {
	return &fakeVendorRepo{vendors: make(map[string]*entity.Vendor)}
}

func (r *fakeVendorRepo) Create(_ context.Context, v *entity.Vendor) error {
	for _, existing := range r.vendors {
		if existing.OwnerUserID == v.OwnerUserID {
			return domain.ErrDuplicate
		}
	}
	cp := *v
	r.vendors[v.ID] = &cp
	return nil
}

func (r *fakeVendorRepo) GetByID(_ context.Context, id string) (*entity.Vendor, error) {
	v, ok := r.vendors[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVendorRepo) GetByOwnerUser(_ context.Context, userID string) (*entity.Vendor, error) {
	for _, v := range r.vendors {
		if v.OwnerUserID == userID {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeVendorRepo) Update(_ context.Context, v *entity.Vendor) error {
	cp := *v
	r.vendors[v.ID] = &cp
	return nil
}

func (r *fakeVendorRepo) Delete(_ context.Context, id string) error {
	delete(r.vendors, id)
	return nil
}

func (r *fakeVendorRepo) List(_ context.Context, stage string, limit, offset int) ([]*entity.Vendor, int, error) {
	var list []*entity.Vendor
	for _, v := range r.vendors {
		if stage == "" || v.LifecycleStage == stage {
			cp := *v
			list = append(list, &cp)
		}
	}
	total := len(list)
	if offset >= len(list) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end], total, nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, _ string) error { return nil }

func (r *fakeUserRepo) List(_ context.Context, _, _ int) ([]*entity.User, int, error) {
	return nil, 0, nil
}

// recordingMailer captura los correos enviados.
type recordingMailer struct {
	sent []string // "to|subject"
}

func (m *recordingMailer) Send(_ context.Context, to, subject, _ string) error {
	m.sent = append(m.sent, to+"|"+subject)
	return nil
}

func fixture(t *testing.T) (*vendors.VendorUseCase, *fakeVendorRepo, *fakeUserRepo, *recordingMailer) {
	t.Helper()
	vendorRepo := newFakeVendorRepo()
	userRepo := newFakeUserRepo()
	mailer := &recordingMailer{}
	userRepo.users["u1"] = &entity.User{
		ID: "u1", Email: "ana@example.com", Name: "Ana",
		Roles: []string{entity.RoleCustomer}, Active: true,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	return vendors.NewVendorUseCase(vendorRepo, userRepo, mailer), vendorRepo, userRepo, mailer
}

func TestApply_CreaTiendaYAgregaRolVendor(t *testing.T) {
	uc, _, userRepo, _ := fixture(t)
	ctx := context.Background()

	out, err := uc.Apply(ctx, "u1", dto.VendorApplyRequest{StoreName: "Tienda Ana"})
	require.NoError(t, err)
	assert.Equal(t, entity.StageApplied, out.LifecycleStage)
	assert.Equal(t, "u1", out.OwnerUserID)

	user, _ := userRepo.GetByID(ctx, "u1")
	assert.True(t, user.HasRole(entity.RoleVendor))
}

// Invariante: un usuario solo puede tener un perfil de tienda.
func TestApply_SegundaSolicitudFalla(t *testing.T) {
	uc, _, _, _ := fixture(t)
	ctx := context.Background()

	_, err := uc.Apply(ctx, "u1", dto.VendorApplyRequest{StoreName: "Tienda Ana"})
	require.NoError(t, err)
	_, err = uc.Apply(ctx, "u1", dto.VendorApplyRequest{StoreName: "Otra tienda"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCheckEmail(t *testing.T) {
	uc, _, _, _ := fixture(t)
	ctx := context.Background()

	out, err := uc.CheckEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.False(t, out.Available)

	out, err = uc.CheckEmail(ctx, "libre@example.com")
	require.NoError(t, err)
	assert.True(t, out.Available)
}

func TestUpdate_TransicionValidaNotificaPorCorreo(t *testing.T) {
	uc, _, _, mailer := fixture(t)
	ctx := context.Background()

	created, err := uc.Apply(ctx, "u1", dto.VendorApplyRequest{StoreName: "Tienda Ana"})
	require.NoError(t, err)

	// applied -> under_review -> approved
	review := entity.StageUnderReview
	_, err = uc.Update(ctx, created.ID, dto.UpdateVendorRequest{LifecycleStage: &review})
	require.NoError(t, err)
	assert.Empty(t, mailer.sent, "la revisión no notifica")

	approved := entity.StageApproved
	out, err := uc.Update(ctx, created.ID, dto.UpdateVendorRequest{LifecycleStage: &approved})
	require.NoError(t, err)
	assert.Equal(t, entity.StageApproved, out.LifecycleStage)
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0], "ana@example.com")
	assert.Contains(t, mailer.sent[0], "aprobada")
}

// Invariante: las transiciones fuera del mapa se rechazan sin tocar la tienda.
func TestUpdate_TransicionInvalida(t *testing.T) {
	uc, vendorRepo, _, _ := fixture(t)
	ctx := context.Background()

	created, err := uc.Apply(ctx, "u1", dto.VendorApplyRequest{StoreName: "Tienda Ana"})
	require.NoError(t, err)

	// applied -> suspended no es una transición válida.
	suspended := entity.StageSuspended
	_, err = uc.Update(ctx, created.ID, dto.UpdateVendorRequest{LifecycleStage: &suspended})
	assert.ErrorIs(t, err, domain.ErrConflict)

	stored, _ := vendorRepo.GetByID(ctx, created.ID)
	assert.Equal(t, entity.StageApplied, stored.LifecycleStage)
}

func TestUpdate_EtapaInvalida(t *testing.T) {
	uc, _, _, _ := fixture(t)
	ctx := context.Background()

	created, err := uc.Apply(ctx, "u1", dto.VendorApplyRequest{StoreName: "Tienda Ana"})
	require.NoError(t, err)

	bogus := "inventada"
	_, err = uc.Update(ctx, created.ID, dto.UpdateVendorRequest{LifecycleStage: &bogus})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_FiltraPorEtapa(t *testing.T) {
	uc, _, userRepo, _ := fixture(t)
	ctx := context.Background()
	userRepo.users["u2"] = &entity.User{ID: "u2", Email: "beto@example.com", Name: "Beto", Active: true}

	first, err := uc.Apply(ctx, "u1", dto.VendorApplyRequest{StoreName: "Tienda Ana"})
	require.NoError(t, err)
	_, err = uc.Apply(ctx, "u2", dto.VendorApplyRequest{StoreName: "Tienda Beto"})
	require.NoError(t, err)

	review := entity.StageUnderReview
	_, err = uc.Update(ctx, first.ID, dto.UpdateVendorRequest{LifecycleStage: &review})
	require.NoError(t, err)

	page := dto.PageRequest{}
	page.Normalize(20)
	items, pagination, err := uc.List(ctx, entity.StageApplied, page)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Tienda Beto", items[0].StoreName)
	assert.Equal(t, 1, pagination.Total)
}
