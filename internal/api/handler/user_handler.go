package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-api/internal/core/domain"
	"github.com/todoapp/todo-api/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Profile returns the caller's account.
//
// @Summary      Current user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/ [get]
func (h *UserHandler) Profile(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.service.Profile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ChangePassword replaces the caller's password.
//
// @Summary      Change password
// @Tags         users
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  changePasswordRequest  true  "Current and new password"
// @Success      204
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /users/password [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.ChangePassword(c.Request().Context(), id, req.Password, req.NewPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ChangePhoneNumber sets the caller's phone number.
//
// @Summary      Change phone number
// @Tags         users
// @Security     BearerAuth
// @Param        phone_number  path  string  true  "New phone number"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /users/change_phone_number/{phone_number} [put]
func (h *UserHandler) ChangePhoneNumber(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	phone := c.Param("phone_number")
	if phone == "" || len(phone) > 32 {
		return fmt.Errorf("%w: phone_number must be 1 to 32 characters", domain.ErrValidation)
	}

	if err := h.service.ChangePhoneNumber(c.Request().Context(), id, phone); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
