package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/todoapp/todo-api/internal/core/auth"
	"github.com/todoapp/todo-api/internal/core/domain"
	"github.com/todoapp/todo-api/internal/core/ports"
)

const minPasswordLength = 6

// UserService manages the caller's own account.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, logger: logger}
}

func (s *UserService) Profile(ctx context.Context, id domain.Identity) (*domain.User, error) {
	return s.repo.FindByID(ctx, id.UserID)
}

// ChangePassword replaces the password after checking the current one.
func (s *UserService) ChangePassword(ctx context.Context, id domain.Identity, current, next string) error {
	if len(next) < minPasswordLength {
		return fmt.Errorf("%w: new_password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}
	if err := auth.CheckPasswordLength(next); err != nil {
		return fmt.Errorf("%w: new_%s", domain.ErrValidation, err)
	}

	user, err := s.repo.FindByID(ctx, id.UserID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(current, user.PasswordHash) {
		return domain.ErrIncorrectPassword
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash

	if err := s.repo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	s.logger.Info().Uint64("user_id", user.ID).Msg("password changed")
	return nil
}

func (s *UserService) ChangePhoneNumber(ctx context.Context, id domain.Identity, phoneNumber string) error {
	user, err := s.repo.FindByID(ctx, id.UserID)
	if err != nil {
		return err
	}
	user.PhoneNumber = phoneNumber

	if err := s.repo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}
