package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PageAuth guards HTML pages with the access token cookie. Any failure
// clears the cookie and redirects to loginPath.
func PageAuth(cfg AuthConfig, loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := cfg.authenticate(c, cookieToken(c))
			if err != nil {
				ClearAccessCookie(c)
				return c.Redirect(http.StatusFound, loginPath)
			}
			SetIdentity(c, id)
			return next(c)
		}
	}
}

// ClearAccessCookie expires the access token cookie on the client.
func ClearAccessCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
