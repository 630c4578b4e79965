package ports

import (
	"context"

	"github.com/todoapp/todo-api/internal/core/domain"
)

type UserService interface {
	Profile(ctx context.Context, id domain.Identity) (*domain.User, error)
	ChangePassword(ctx context.Context, id domain.Identity, current, next string) error
	ChangePhoneNumber(ctx context.Context, id domain.Identity, phoneNumber string) error
}
