// Package redis implementa el denylist de refresh tokens sobre Redis, para que
// la revocación sobreviva reinicios y se comparta entre réplicas.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/mercado-api/internal/application/auth"
	"github.com/jhoicas/mercado-api/pkg/config"
)

var _ auth.Denylist = (*Denylist)(nil)

const keyPrefix = "denylist:jti:"

// Denylist registra jtis revocados como claves con TTL: Redis las expira solo
// cuando el token ya habría vencido de todos modos.
type Denylist struct {
	client *redis.Client
}

// NewDenylist conecta a Redis y verifica la conexión.
func NewDenylist(ctx context.Context, cfg config.RedisConfig) (*Denylist, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Denylist{client: client}, nil
}

// Revoke anota el jti con expiración ttl.
func (d *Denylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// El token ya venció: no hay nada que revocar.
		return nil
	}
	if err := d.client.Set(ctx, keyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke jti: %w", err)
	}
	return nil
}

// IsRevoked consulta si el jti sigue revocado.
func (d *Denylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check jti: %w", err)
	}
	return n > 0, nil
}

// Close libera la conexión.
func (d *Denylist) Close() error {
	return d.client.Close()
}
