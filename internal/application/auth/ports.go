package auth

import (
	"context"
	"sync"
	"time"
)

// Denylist registra refresh tokens revocados (por jti) hasta su expiración
// natural. Los tokens son stateless: sin este registro, un refresh token
// robado seguiría siendo válido hasta vencer.
type Denylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// LocalDenylist implementación en memoria del proceso. Fallback para entornos
// sin Redis: el logout funciona, pero la revocación no sobrevive reinicios ni
// se comparte entre réplicas.
type LocalDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time // jti -> expiración de la entrada
}

// NewLocalDenylist construye el denylist en memoria.
func NewLocalDenylist() *LocalDenylist {
	return &LocalDenylist{revoked: make(map[string]time.Time)}
}

// Revoke anota el jti hasta now+ttl.
func (d *LocalDenylist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.purgeLocked()
	d.revoked[jti] = time.Now().Add(ttl)
	return nil
}

// IsRevoked consulta si el jti está revocado y vigente.
func (d *LocalDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	exp, ok := d.revoked[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(exp) {
		delete(d.revoked, jti)
		return false, nil
	}
	return true, nil
}

// purgeLocked limpia entradas vencidas. Llamar con el mutex tomado.
func (d *LocalDenylist) purgeLocked() {
	now := time.Now()
	for jti, exp := range d.revoked {
		if now.After(exp) {
			delete(d.revoked, jti)
		}
	}
}
