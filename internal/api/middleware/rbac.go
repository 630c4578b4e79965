package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-api/internal/core/auth"
	"github.com/todoapp/todo-api/internal/core/domain"
	"github.com/todoapp/todo-api/internal/pkg/metrics"
)

// RequireAdmin must run after Auth. Non-admins get a 401, not a 403.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, _ := IdentityFrom(c)
			if err := auth.AdminOnly(id); err != nil {
				metrics.AccessDeniedTotal.WithLabelValues("admin").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrForbidden.Error()).SetInternal(err)
			}
			return next(c)
		}
	}
}
