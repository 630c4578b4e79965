package ports

import (
	"context"
	"time"

	"github.com/todoapp/todo-api/internal/core/domain"
)

// RegisterInput carries a self-service registration.
type RegisterInput struct {
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Password    string
	Role        string
	PhoneNumber string
}

// AccessToken is the result of a successful login.
type AccessToken struct {
	Token     string
	TokenType string
	ExpiresAt time.Time
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*AccessToken, error)
	Logout(ctx context.Context, id domain.Identity) error
}
