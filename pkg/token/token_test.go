package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mercado-api/pkg/token"
)

const (
	testUserSecret   = "user-secret-for-unit-tests"
	testVendorSecret = "vendor-secret-for-unit-tests"
	testIssuer       = "mercado-api-test"
)

func userService() *token.Service {
	return token.NewService(testUserSecret, testIssuer, 0, 0)
}

func vendorService() *token.Service {
	return token.NewService(testVendorSecret, testIssuer, 0, 0)
}

func testSubject() token.Subject {
	return token.Subject{
		ID:           "00000000-0000-0000-0000-000000000001",
		Email:        "cliente@example.com",
		Roles:        []string{"customer", "admin"},
		TokenVersion: 3,
	}
}

// Propiedad: un token emitido y verificado de inmediato con la misma familia
// devuelve los claims originales sin cambios (round-trip).
func TestVerify_RoundTripConservaClaims(t *testing.T) {
	svc := userService()
	sub := testSubject()

	tok, err := svc.IssueAccess(sub)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := svc.Verify(tok)
	require.NoError(t, err)

	assert.Equal(t, sub.ID, claims.Subject)
	assert.Equal(t, sub.Email, claims.Email)
	assert.Equal(t, sub.Roles, claims.Roles)
	assert.Equal(t, sub.TokenVersion, claims.TokenVersion)
	assert.Equal(t, token.TypeAccess, claims.TokenType)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID, "el refresh flow necesita jti también en access")
}

// Propiedad: un token vencido reporta ErrExpired, no ErrInvalid.
func TestVerify_TokenVencidoReportaExpirado(t *testing.T) {
	// TTL negativo: el token nace vencido (mismo truco que con ExpMinutes=-1).
	svc := token.NewService(testUserSecret, testIssuer, -time.Second, 0)

	tok, err := svc.IssueAccess(testSubject())
	require.NoError(t, err)

	claims, err := userService().Verify(tok)
	assert.ErrorIs(t, err, token.ErrExpired)
	assert.NotErrorIs(t, err, token.ErrInvalid)
	if assert.NotNil(t, claims, "un token vencido bien formado conserva sus claims") {
		assert.Equal(t, "cliente@example.com", claims.Email)
	}
}

// Propiedad: aislamiento de familias. Un token firmado con el secret de vendor
// no verifica contra la familia user, y viceversa.
func TestVerify_AislamientoDeFamilias(t *testing.T) {
	userSvc := userService()
	vendorSvc := vendorService()

	userTok, err := userSvc.IssueAccess(testSubject())
	require.NoError(t, err)

	vendorTok, err := vendorSvc.IssueAccess(token.Subject{
		ID:       "00000000-0000-0000-0000-000000000002",
		VendorID: "00000000-0000-0000-0000-000000000099",
		Roles:    []string{"vendor"},
	})
	require.NoError(t, err)

	_, err = vendorSvc.Verify(userTok)
	assert.ErrorIs(t, err, token.ErrInvalid, "token user no debe validar en familia vendor")

	_, err = userSvc.Verify(vendorTok)
	assert.ErrorIs(t, err, token.ErrInvalid, "token vendor no debe validar en familia user")
}

// Un token manipulado (payload alterado) es inválido, no expirado.
func TestVerify_TokenManipuladoEsInvalido(t *testing.T) {
	svc := userService()
	tok, err := svc.IssueAccess(testSubject())
	require.NoError(t, err)

	tampered := tok[:len(tok)-4] + "xxxx"
	_, err = svc.Verify(tampered)
	assert.ErrorIs(t, err, token.ErrInvalid)
}

func TestVerify_RefreshLlevaJTI(t *testing.T) {
	svc := userService()
	tok, err := svc.IssueRefresh(testSubject())
	require.NoError(t, err)

	claims, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, token.TypeRefresh, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
}

func TestNewService_TTLsPorDefecto(t *testing.T) {
	svc := token.NewService(testUserSecret, testIssuer, 0, 0)
	assert.Equal(t, 15*time.Minute, svc.AccessTTL())
	assert.Equal(t, 7*24*time.Hour, svc.RefreshTTL())
}
