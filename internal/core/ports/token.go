package ports

import (
	"context"
	"time"

	"github.com/todoapp/todo-api/internal/core/domain"
)

// TokenIssuer mints signed access tokens.
type TokenIssuer interface {
	Issue(username string, userID uint64, role string, ttl time.Duration) (string, time.Time, error)
}

// TokenVerifier resolves an access token to an identity.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

// PasswordHasher hashes and checks credentials.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenDenylist records tokens revoked before their natural expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
