// Package token implementa el servicio de tokens JWT con dos familias de firma
// independientes (usuarios y vendedores). Cada familia emite un access token de
// vida corta y un refresh token de vida larga; un token nunca es válido en la
// familia contraria porque los secrets difieren.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Tipos de token en el claim "typ".
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Errores de verificación. El Route Guard reacciona distinto a cada uno:
// ErrExpired permite intentar el refresh silencioso; ErrInvalid fuerza re-login.
var (
	ErrExpired = errors.New("token expirado")
	ErrInvalid = errors.New("token inválido")
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Roles viaja en el token para que el guard aplique RBAC sin consultar la DB;
// TokenVersion permite invalidar todos los refresh tokens de un usuario a la vez.
type Claims struct {
	jwt.RegisteredClaims
	Email        string   `json:"email,omitempty"`
	Roles        []string `json:"roles,omitempty"`
	VendorID     string   `json:"vendor_id,omitempty"`
	TokenType    string   `json:"typ"`
	TokenVersion int      `json:"token_version,omitempty"`
}

// Subject identidad a codificar en un token.
type Subject struct {
	ID           string
	Email        string
	Roles        []string
	VendorID     string // solo familia vendor
	TokenVersion int
}

// Service emite y verifica tokens de UNA familia de firma.
// Construir una instancia por familia (user y vendor) con secrets distintos.
type Service struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewService construye el servicio de una familia. TTLs en cero aplican los
// valores del contrato: 15 minutos para access y 7 días para refresh.
// Un TTL negativo emite tokens ya vencidos (útil en tests).
func NewService(secret, issuer string, accessTTL, refreshTTL time.Duration) *Service {
	if accessTTL == 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL == 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Service{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// AccessTTL vida del access token.
func (s *Service) AccessTTL() time.Duration { return s.accessTTL }

// RefreshTTL vida del refresh token.
func (s *Service) RefreshTTL() time.Duration { return s.refreshTTL }

// IssueAccess genera el access token firmado del sujeto.
func (s *Service) IssueAccess(sub Subject) (string, error) {
	return s.issue(sub, TypeAccess, s.accessTTL)
}

// IssueRefresh genera el refresh token firmado del sujeto. Lleva jti (uuid)
// para poder anotarlo en el denylist al hacer logout.
func (s *Service) IssueRefresh(sub Subject) (string, error) {
	return s.issue(sub, TypeRefresh, s.refreshTTL)
}

func (s *Service) issue(sub Subject, typ string, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   sub.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email:        sub.Email,
		Roles:        sub.Roles,
		VendorID:     sub.VendorID,
		TokenType:    typ,
		TokenVersion: sub.TokenVersion,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify valida firma y vigencia. Distingue dos salidas de error:
//   - ErrExpired: estructura y firma correctas pero vencido (devuelve también
//     los claims decodificados, útiles para diagnóstico).
//   - ErrInvalid: cualquier otro fallo (firma de otra familia, manipulación,
//     formato corrupto).
func (s *Service) Verify(tokenString string) (*Claims, error) {
	if len(s.secret) == 0 {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			// La librería decodifica los claims aunque el token esté vencido.
			if token != nil {
				if claims, ok := token.Claims.(*Claims); ok {
					return claims, ErrExpired
				}
			}
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalid
	}
	return claims, nil
}

// SubjectFromClaims reconstruye el Subject a partir de claims verificados
// (usado por el guard para re-emitir el access token desde el refresh).
func SubjectFromClaims(c *Claims) Subject {
	return Subject{
		ID:           c.Subject,
		Email:        c.Email,
		Roles:        c.Roles,
		VendorID:     c.VendorID,
		TokenVersion: c.TokenVersion,
	}
}
