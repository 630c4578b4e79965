package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-api/internal/core/ports"
)

// TodoHandler serves the caller's own todos.
type TodoHandler struct {
	service ports.TodoService
}

func NewTodoHandler(service ports.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

// List returns every todo owned by the caller.
//
// @Summary      List own todos
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Todo
// @Failure      401  {object}  errorResponse
// @Router       /todos/ [get]
func (h *TodoHandler) List(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	todos, err := h.service.List(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, todoListResponse(todos))
}

// Get returns a single todo. Another user's todo is reported as not found.
//
// @Summary      Get a todo
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Todo ID"
// @Success      200  {object}  domain.Todo
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /todos/todo/{id} [get]
func (h *TodoHandler) Get(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	todoID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	todo, err := h.service.Get(c.Request().Context(), id, todoID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, todo)
}

// Create adds a todo owned by the caller.
//
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      todoRequest  true  "Todo"
// @Success      201   {object}  domain.Todo
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /todos/todo [post]
func (h *TodoHandler) Create(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req todoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	todo, err := h.service.Create(c.Request().Context(), id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, todo)
}

// Update replaces the writable fields of one of the caller's todos.
//
// @Summary      Update a todo
// @Tags         todos
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  int          true  "Todo ID"
// @Param        body  body  todoRequest  true  "Todo"
// @Success      204
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /todos/todo/{id} [put]
func (h *TodoHandler) Update(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	todoID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req todoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.Update(c.Request().Context(), id, todoID, req.toInput()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes one of the caller's todos.
//
// @Summary      Delete a todo
// @Tags         todos
// @Security     BearerAuth
// @Param        id   path  int  true  "Todo ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /todos/todo/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	todoID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id, todoID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
