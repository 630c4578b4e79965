package ports

import (
	"context"

	"github.com/todoapp/todo-api/internal/core/domain"
)

// UserRepository persists users. Lookups of a missing row return
// domain.ErrUserNotFound; a taken username on Create returns
// domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id uint64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}
