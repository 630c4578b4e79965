package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked:"

// Denylist stores revoked token ids until the token would have expired anyway.
// Key format: revoked:<jti>
type Denylist struct {
	client redis.Cmdable
	now    func() time.Time
}

func NewDenylist(client redis.Cmdable) *Denylist {
	return &Denylist{client: client, now: time.Now}
}

// Revoke marks tokenID as revoked. Tokens that are already expired are not
// stored.
func (d *Denylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, d.key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("denylist revoke: %w", err)
	}
	return nil
}

// IsRevoked fails closed: when redis cannot answer, the token is treated as
// revoked and the error is returned alongside.
func (d *Denylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(tokenID)).Result()
	if err != nil {
		return true, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

func (d *Denylist) key(tokenID string) string {
	return revokedKeyPrefix + tokenID
}
