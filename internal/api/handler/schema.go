package handler

import (
	"github.com/todoapp/todo-api/internal/core/domain"
	"github.com/todoapp/todo-api/internal/core/ports"
)

// --- Auth ---

type registerRequest struct {
	Username    string `json:"username"     form:"username"     validate:"required,max=64"`
	Email       string `json:"email"        form:"email"        validate:"omitempty,email"`
	FirstName   string `json:"first_name"   form:"first_name"   validate:"max=100"`
	LastName    string `json:"last_name"    form:"last_name"    validate:"max=100"`
	Password    string `json:"password"     form:"password"     validate:"required,bcryptmax"`
	Role        string `json:"role"         form:"role"`
	PhoneNumber string `json:"phone_number" form:"phone_number" validate:"max=32"`
}

func (r registerRequest) toInput() ports.RegisterInput {
	return ports.RegisterInput{
		Username:    r.Username,
		Email:       r.Email,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Password:    r.Password,
		Role:        r.Role,
		PhoneNumber: r.PhoneNumber,
	}
}

// loginRequest accepts both OAuth2 password form fields and JSON.
type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// --- Todos ---

type todoRequest struct {
	Title       string `json:"title"       validate:"required,min=3"`
	Description string `json:"description" validate:"required,min=3,max=100"`
	Priority    int    `json:"priority"    validate:"gte=1,lte=5"`
	IsComplete  bool   `json:"is_complete"`
}

func (r todoRequest) toInput() ports.TodoInput {
	return ports.TodoInput{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Complete:    r.IsComplete,
	}
}

type todoListResponse []*domain.Todo

// --- Users ---

type changePasswordRequest struct {
	Password    string `json:"password"     validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,bcryptmax"`
}

type errorResponse struct {
	Error string `json:"error"`
}
