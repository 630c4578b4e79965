package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-api/internal/api/middleware"
	"github.com/todoapp/todo-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	// secureCookie marks the access token cookie Secure.
	secureCookie bool
}

func NewAuthHandler(authService ports.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/ [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	if fromBrowserForm(c) {
		return c.Redirect(http.StatusSeeOther, LoginPagePath)
	}
	return c.JSON(http.StatusCreated, user)
}

// Login exchanges credentials for an access token. The token is also set
// as an HttpOnly cookie for the HTML pages, and a browser form submission
// is redirected to the todo page.
//
// @Summary      Obtain an access token
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Accept       json
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      200       {object}  tokenResponse
// @Failure      401       {object}  errorResponse
// @Failure      422       {object}  errorResponse
// @Router       /auth/token [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	tok, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    tok.Token,
		Path:     "/",
		Expires:  tok.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	if fromBrowserForm(c) {
		return c.Redirect(http.StatusSeeOther, TodoPagePath)
	}
	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: tok.Token,
		TokenType:   tok.TokenType,
		ExpiresIn:   int64(time.Until(tok.ExpiresAt).Seconds()),
	})
}

// Logout revokes the caller's token when revocation is enabled and clears
// the cookie.
//
// @Summary      Log out
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), id); err != nil {
		return err
	}

	middleware.ClearAccessCookie(c)
	if fromBrowserForm(c) {
		return c.Redirect(http.StatusSeeOther, LoginPagePath)
	}
	return c.NoContent(http.StatusNoContent)
}
