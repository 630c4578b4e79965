package ports

import (
	"context"

	"github.com/todoapp/todo-api/internal/core/domain"
)

// TodoRepository persists todos. Lookups of a missing row return
// domain.ErrTodoNotFound.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	FindByID(ctx context.Context, id uint64) (*domain.Todo, error)
	ListByOwner(ctx context.Context, ownerID uint64) ([]*domain.Todo, error)
	ListAll(ctx context.Context) ([]*domain.Todo, error)
	// Update writes title, description, priority and complete. OwnerID is
	// never changed.
	Update(ctx context.Context, todo *domain.Todo) error
	Delete(ctx context.Context, id uint64) error
}
