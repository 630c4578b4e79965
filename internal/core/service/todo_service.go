package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/todoapp/todo-api/internal/core/auth"
	"github.com/todoapp/todo-api/internal/core/domain"
	"github.com/todoapp/todo-api/internal/core/ports"
	"github.com/todoapp/todo-api/internal/pkg/metrics"
)

// TodoService scopes every operation to the caller's own todos.
type TodoService struct {
	repo   ports.TodoRepository
	logger zerolog.Logger
}

func NewTodoService(repo ports.TodoRepository, logger zerolog.Logger) *TodoService {
	return &TodoService{repo: repo, logger: logger}
}

func (s *TodoService) List(ctx context.Context, id domain.Identity) ([]*domain.Todo, error) {
	return s.repo.ListByOwner(ctx, id.UserID)
}

func (s *TodoService) Get(ctx context.Context, id domain.Identity, todoID uint64) (*domain.Todo, error) {
	return s.owned(ctx, id, todoID)
}

func (s *TodoService) Create(ctx context.Context, id domain.Identity, input ports.TodoInput) (*domain.Todo, error) {
	if err := validateTodo(input); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Todo{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Complete:    input.Complete,
		OwnerID:     id.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}

	metrics.TodosCreatedTotal.Inc()
	s.logger.Debug().Uint64("todo_id", created.ID).Uint64("owner_id", created.OwnerID).Msg("todo created")
	return created, nil
}

func (s *TodoService) Update(ctx context.Context, id domain.Identity, todoID uint64, input ports.TodoInput) error {
	if err := validateTodo(input); err != nil {
		return err
	}

	todo, err := s.owned(ctx, id, todoID)
	if err != nil {
		return err
	}

	todo.Title = input.Title
	todo.Description = input.Description
	todo.Priority = input.Priority
	todo.Complete = input.Complete

	if err := s.repo.Update(ctx, todo); err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	return nil
}

func (s *TodoService) Delete(ctx context.Context, id domain.Identity, todoID uint64) error {
	if _, err := s.owned(ctx, id, todoID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, todoID); err != nil {
		return err
	}

	metrics.TodosDeletedTotal.WithLabelValues("owner").Inc()
	return nil
}

// owned loads a todo and applies the owner-only guard. A todo owned by
// someone else is indistinguishable from a missing one.
func (s *TodoService) owned(ctx context.Context, id domain.Identity, todoID uint64) (*domain.Todo, error) {
	todo, err := s.repo.FindByID(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if err := auth.OwnerOnly(id, todo.OwnerID); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, err
	}
	return todo, nil
}

func validateTodo(input ports.TodoInput) error {
	descLen := utf8.RuneCountInString(input.Description)
	switch {
	case utf8.RuneCountInString(input.Title) < 3:
		return fmt.Errorf("%w: title must be at least 3 characters", domain.ErrValidation)
	case descLen < 3 || descLen > 100:
		return fmt.Errorf("%w: description must be between 3 and 100 characters", domain.ErrValidation)
	case !domain.ValidPriority(input.Priority):
		return fmt.Errorf("%w: priority must be between %d and %d", domain.ErrValidation, domain.MinPriority, domain.MaxPriority)
	}
	return nil
}

// AdminService lets admins see and delete every user's todos.
type AdminService struct {
	repo   ports.TodoRepository
	logger zerolog.Logger
}

func NewAdminService(repo ports.TodoRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{repo: repo, logger: logger}
}

func (s *AdminService) ListAll(ctx context.Context, id domain.Identity) ([]*domain.Todo, error) {
	if err := auth.AdminOnly(id); err != nil {
		return nil, err
	}
	return s.repo.ListAll(ctx)
}

func (s *AdminService) Delete(ctx context.Context, id domain.Identity, todoID uint64) error {
	if err := auth.AdminOnly(id); err != nil {
		return err
	}
	todo, err := s.repo.FindByID(ctx, todoID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, todo.ID); err != nil {
		return err
	}

	metrics.TodosDeletedTotal.WithLabelValues("admin").Inc()
	s.logger.Info().Uint64("todo_id", todo.ID).Uint64("owner_id", todo.OwnerID).Str("admin", id.Username).Msg("todo deleted by admin")
	return nil
}
