package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mercado-api/internal/application/auth"
	"github.com/jhoicas/mercado-api/internal/application/dto"
	"github.com/jhoicas/mercado-api/internal/domain"
	"github.com/jhoicas/mercado-api/internal/domain/entity"
	"github.com/jhoicas/mercado-api/pkg/token"
)

// fakeUserRepo repositorio en memoria con la semántica (nil, nil) del adaptador.
type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
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

func newAuthFixture(t *testing.T) (*auth.UserAuthUseCase, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	tokens := token.NewService("secreto-user", "test", 0, 0)
	return auth.NewUserAuthUseCase(repo, tokens, auth.NewLocalDenylist()), repo
}

func signUpAndIn(t *testing.T, uc *auth.UserAuthUseCase) *dto.AuthResponse {
	t.Helper()
	ctx := context.Background()
	_, err := uc.Register(ctx, dto.SignUpRequest{Email: "ana@example.com", Password: "contraseña8", Name: "Ana"})
	require.NoError(t, err)
	out, err := uc.Login(ctx, dto.SignInRequest{Email: "ana@example.com", Password: "contraseña8"})
	require.NoError(t, err)
	return out
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newAuthFixture(t)
	ctx := context.Background()
	_, err := uc.Register(ctx, dto.SignUpRequest{Email: "ana@example.com", Password: "contraseña8"})
	require.NoError(t, err)
	_, err = uc.Register(ctx, dto.SignUpRequest{Email: "ana@example.com", Password: "otracontraseña"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_CredencialIncorrecta(t *testing.T) {
	uc, _ := newAuthFixture(t)
	ctx := context.Background()
	_, err := uc.Register(ctx, dto.SignUpRequest{Email: "ana@example.com", Password: "contraseña8"})
	require.NoError(t, err)
	_, err = uc.Login(ctx, dto.SignInRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefresh_EmiteAccessNuevo(t *testing.T) {
	uc, _ := newAuthFixture(t)
	session := signUpAndIn(t, uc)

	access, err := uc.Refresh(context.Background(), session.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
}

func TestRefresh_AccessTokenNoSirveComoRefresh(t *testing.T) {
	uc, _ := newAuthFixture(t)
	session := signUpAndIn(t, uc)

	_, err := uc.Refresh(context.Background(), session.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Propiedad: tras logout el refresh token queda en el denylist y ya no canjea.
func TestLogout_RevocaElRefresh(t *testing.T) {
	uc, _ := newAuthFixture(t)
	session := signUpAndIn(t, uc)
	ctx := context.Background()

	require.NoError(t, uc.Logout(ctx, session.RefreshToken))
	_, err := uc.Refresh(ctx, session.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)
}

// Propiedad: cambiar la contraseña incrementa token_version y mata todos los
// refresh tokens emitidos antes, sin pasar por el denylist.
func TestChangePassword_InvalidaRefreshAnteriores(t *testing.T) {
	uc, _ := newAuthFixture(t)
	session := signUpAndIn(t, uc)
	ctx := context.Background()

	err := uc.ChangePassword(ctx, session.User.ID, dto.ChangePasswordRequest{
		OldPassword: "contraseña8",
		NewPassword: "nuevacontraseña",
	})
	require.NoError(t, err)

	_, err = uc.Refresh(ctx, session.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)

	// La sesión nueva funciona con la contraseña nueva.
	out, err := uc.Login(ctx, dto.SignInRequest{Email: "ana@example.com", Password: "nuevacontraseña"})
	require.NoError(t, err)
	_, err = uc.Refresh(ctx, out.RefreshToken)
	assert.NoError(t, err)
}

func TestRefresh_UsuarioDesactivado(t *testing.T) {
	uc, repo := newAuthFixture(t)
	session := signUpAndIn(t, uc)
	ctx := context.Background()

	user := repo.users[session.User.ID]
	user.Active = false

	_, err := uc.Refresh(ctx, session.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
