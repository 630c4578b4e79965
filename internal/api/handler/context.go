package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-api/internal/api/middleware"
	"github.com/todoapp/todo-api/internal/core/domain"
)

// currentIdentity returns the identity set by the auth middleware. A route
// wired without it fails closed.
func currentIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok || id.UserID == 0 {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return id, nil
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", domain.ErrValidation, name)
	}
	return id, nil
}

// bindAndValidate binds the request body and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
	}
	return c.Validate(req)
}
