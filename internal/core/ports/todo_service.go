package ports

import (
	"context"

	"github.com/todoapp/todo-api/internal/core/domain"
)

// TodoInput is the writable part of a todo.
type TodoInput struct {
	Title       string
	Description string
	Priority    int
	Complete    bool
}

// TodoService manages the caller's own todos. Another user's todo is
// reported as domain.ErrTodoNotFound.
type TodoService interface {
	List(ctx context.Context, id domain.Identity) ([]*domain.Todo, error)
	Get(ctx context.Context, id domain.Identity, todoID uint64) (*domain.Todo, error)
	Create(ctx context.Context, id domain.Identity, input TodoInput) (*domain.Todo, error)
	Update(ctx context.Context, id domain.Identity, todoID uint64, input TodoInput) error
	Delete(ctx context.Context, id domain.Identity, todoID uint64) error
}

// AdminService exposes every user's todos to admins.
type AdminService interface {
	ListAll(ctx context.Context, id domain.Identity) ([]*domain.Todo, error)
	Delete(ctx context.Context, id domain.Identity, todoID uint64) error
}
