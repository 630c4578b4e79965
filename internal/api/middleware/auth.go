package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/todoapp/todo-api/internal/core/auth"
	"github.com/todoapp/todo-api/internal/core/domain"
	"github.com/todoapp/todo-api/internal/core/ports"
	"github.com/todoapp/todo-api/internal/pkg/metrics"
)

const (
	identityKey = "identity"

	// AccessTokenCookie carries the token for browser pages.
	AccessTokenCookie = "access_token"
)

var errMissingToken = errors.New("missing access token")

// AuthConfig is shared by every authentication middleware.
type AuthConfig struct {
	Verifier ports.TokenVerifier
	// Denylist is optional. When set, revoked tokens are rejected.
	Denylist ports.TokenDenylist
	Logger   zerolog.Logger
}

// Auth validates the bearer token and stores the caller's identity in the
// context. Every failure becomes the same 401.
func Auth(cfg AuthConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := cfg.authenticate(c, bearerToken(c))
			if err != nil {
				return unauthenticated(c, err)
			}
			SetIdentity(c, id)
			return next(c)
		}
	}
}

// AuthOrCookie accepts a bearer token and falls back to the access token
// cookie.
func AuthOrCookie(cfg AuthConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c)
			if raw == "" {
				raw = cookieToken(c)
			}
			id, err := cfg.authenticate(c, raw)
			if err != nil {
				return unauthenticated(c, err)
			}
			SetIdentity(c, id)
			return next(c)
		}
	}
}

func (cfg AuthConfig) authenticate(c echo.Context, raw string) (domain.Identity, error) {
	if raw == "" {
		metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
		return domain.Identity{}, errMissingToken
	}

	id, err := cfg.Verifier.Verify(raw)
	if err != nil {
		reason := string(auth.KindOf(err))
		if reason == "" {
			reason = "unknown"
		}
		metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
		cfg.Logger.Debug().Str("reason", reason).Str("path", c.Path()).Msg("token rejected")
		return domain.Identity{}, err
	}

	if cfg.Denylist != nil && id.TokenID != "" {
		revoked, err := cfg.Denylist.IsRevoked(c.Request().Context(), id.TokenID)
		if err != nil {
			cfg.Logger.Error().Err(err).Msg("denylist unavailable, rejecting token")
		}
		if revoked {
			metrics.TokenRejectionsTotal.WithLabelValues("revoked").Inc()
			return domain.Identity{}, errors.New("token revoked")
		}
	}
	return id, nil
}

func unauthenticated(c echo.Context, cause error) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error()).SetInternal(cause)
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func cookieToken(c echo.Context) string {
	cookie, err := c.Cookie(AccessTokenCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func SetIdentity(c echo.Context, id domain.Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the identity stored by one of the auth middlewares.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}
