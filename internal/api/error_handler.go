package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/todoapp/todo-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain
// errors to status codes, logs unexpected ones and renders
// {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			logUnexpected(log, c, err)
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrIncorrectPassword),
		errors.Is(err, domain.ErrForbidden):
		return http.StatusUnauthorized, rootMessage(err)
	case errors.Is(err, domain.ErrTodoNotFound), errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, rootMessage(err)
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, domain.ErrUserExists.Error()
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrRoleNotAllowed):
		return http.StatusUnprocessableEntity, domain.ErrRoleNotAllowed.Error()
	}

	logUnexpected(log, c, err)
	return http.StatusInternalServerError, "internal server error"
}

// rootMessage returns the sentinel text without any wrapping context.
func rootMessage(err error) string {
	for _, sentinel := range []error{
		domain.ErrUnauthenticated,
		domain.ErrInvalidCredentials,
		domain.ErrIncorrectPassword,
		domain.ErrForbidden,
		domain.ErrTodoNotFound,
		domain.ErrUserNotFound,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

func logUnexpected(log zerolog.Logger, c echo.Context, err error) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")
}
