package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-api/internal/core/domain"
)

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name    string
		id      *domain.Identity
		allowed bool
	}{
		{"admin", &domain.Identity{Username: "root", UserID: 1, Role: domain.RoleAdmin}, true},
		{"user", &domain.Identity{Username: "alice", UserID: 2, Role: domain.RoleUser}, false},
		{"empty role", &domain.Identity{Username: "bob", UserID: 3}, false},
		{"no identity", nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/admin/todos", nil), rec)
			if tc.id != nil {
				SetIdentity(c, *tc.id)
			}

			called := false
			err := RequireAdmin()(func(c echo.Context) error {
				called = true
				return c.NoContent(http.StatusOK)
			})(c)

			if called != tc.allowed {
				t.Fatalf("expected allowed=%v, next called=%v", tc.allowed, called)
			}
			if tc.allowed {
				return
			}

			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %v", err)
			}
			if !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("expected ErrForbidden as internal error, got %v", err)
			}
		})
	}
}
