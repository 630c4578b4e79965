package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/todoapp/todo-api/internal/core/domain"
)

// TokenType is the OAuth2 token_type returned alongside access tokens.
const TokenType = "bearer"

var ErrEmptySigningKey = errors.New("token signing key must not be empty")

// FailureKind classifies why a token was rejected.
type FailureKind string

const (
	InvalidSignature FailureKind = "invalid_signature"
	Expired          FailureKind = "expired"
	Malformed        FailureKind = "malformed"
)

// TokenError is returned by Verify. Callers facing clients must not
// expose Kind.
type TokenError struct {
	Kind FailureKind
	Err  error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("token %s: %v", e.Kind, e.Err)
}

func (e *TokenError) Unwrap() error { return e.Err }

// KindOf returns the failure kind carried by err, or "" when err is not a
// *TokenError.
func KindOf(err error) FailureKind {
	var te *TokenError
	if errors.As(err, &te) {
		return te.Kind
	}
	return ""
}

// Claims is the signed payload: sub, id, role, exp, iat, jti.
type Claims struct {
	UserID uint64 `json:"id,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 access tokens with a key fixed
// at construction.
type TokenService struct {
	key []byte
	now func() time.Time
}

// TokenOption customises a TokenService.
type TokenOption func(*TokenService)

// WithClock overrides the time source used for issuing and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

func NewTokenService(signingKey string, opts ...TokenOption) (*TokenService, error) {
	if signingKey == "" {
		return nil, ErrEmptySigningKey
	}
	s := &TokenService{key: []byte(signingKey), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue mints a token for the given identity that expires after ttl.
func (s *TokenService) Issue(username string, userID uint64, role string, ttl time.Duration) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(ttl)
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims.ExpiresAt.Time.UTC(), nil
}

// Verify checks signature, expiry and required claims and returns the
// embedded identity. Failures are always *TokenError.
func (s *TokenService) Verify(token string) (domain.Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return domain.Identity{}, classify(err)
	}

	if claims.Subject == "" || claims.UserID == 0 {
		return domain.Identity{}, &TokenError{Kind: Malformed, Err: errors.New("missing sub or id claim")}
	}

	return domain.Identity{
		Username:  claims.Subject,
		UserID:    claims.UserID,
		Role:      claims.Role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}

// classify maps jwt parse errors onto a FailureKind. Anything that could
// not be decoded or verified is treated as a signature failure.
func classify(err error) *TokenError {
	switch {
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return &TokenError{Kind: Malformed, Err: err}
	case errors.Is(err, jwt.ErrTokenExpired):
		return &TokenError{Kind: Expired, Err: err}
	default:
		return &TokenError{Kind: InvalidSignature, Err: err}
	}
}
